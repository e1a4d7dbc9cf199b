package auth

import (
	"os"
	"time"

	"go-lms/internal/authz"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is the fixed session lifetime. There is no refresh endpoint;
// clients log in again once the token expires.
const TokenTTL = 45 * time.Minute

// IssueToken signs an HS256 session token binding identity and role.
func IssueToken(userID, email, name string, role authz.Role) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"name":    name,
		"role":    role.String(),
		"exp":     time.Now().Add(TokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}
