package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	autherrors "go-lms/internal/auth/errors"
	"go-lms/internal/authz"
	"go-lms/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	ContextUserID = "user_id"
	ContextEmail  = "email"
	ContextName   = "name"
	ContextRole   = "role"
)

// AuthMiddleware verifies the bearer token and loads the identity claim into
// the request context. Missing, malformed and expired tokens are all rejected
// with 401; expiry carries its own code.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found {
			tokenString = ""
		}

		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Token not found", nil)
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(os.Getenv("JWT_SECRET")), nil
		})

		if err != nil || !token.Valid {
			errObj := autherrors.ErrInvalidToken
			if errors.Is(err, jwt.ErrTokenExpired) {
				errObj = autherrors.ErrTokenExpired
			}
			response.Error(c, errObj.HTTPStatus, errObj.Code, errObj.Message, nil)
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid token claims", nil)
			c.Abort()
			return
		}

		userID, ok := claims["user_id"].(string)
		if !ok || userID == "" {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "User ID not found in token", nil)
			c.Abort()
			return
		}

		roleClaim, _ := claims["role"].(string)
		role, err := authz.ParseRole(roleClaim)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Unknown role in token", nil)
			c.Abort()
			return
		}

		email, _ := claims["email"].(string)
		name, _ := claims["name"].(string)

		c.Set(ContextUserID, userID)
		c.Set(ContextEmail, email)
		c.Set(ContextName, name)
		c.Set(ContextRole, role.String())

		c.Next()
	}
}

// CurrentClaim rebuilds the verified claim placed in the context by
// AuthMiddleware.
func CurrentClaim(c *gin.Context) (authz.Claim, bool) {
	userID := c.GetString(ContextUserID)
	if userID == "" {
		return authz.Claim{}, false
	}

	role, err := authz.ParseRole(c.GetString(ContextRole))
	if err != nil {
		return authz.Claim{}, false
	}

	return authz.Claim{
		UserID: userID,
		Email:  c.GetString(ContextEmail),
		Name:   c.GetString(ContextName),
		Role:   role,
	}, true
}
