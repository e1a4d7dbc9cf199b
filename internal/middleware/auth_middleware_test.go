package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"go-lms/internal/auth"
	"go-lms/internal/authz"
	"go-lms/internal/middleware"
)

type errorEnvelope struct {
	Ok    bool                   `json:"ok"`
	Error map[string]interface{} `json:"error"`
}

func signToken(t *testing.T, secret string, expiresAt time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": uuid.New().String(),
		"email":   "anik@university.edu",
		"name":    "Anik Rahman",
		"role":    "student",
		"exp":     expiresAt.Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	assert.NoError(t, err)
	return signed
}

func runAuthMiddleware(t *testing.T, authHeader string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/requests", nil)
	if authHeader != "" {
		c.Request.Header.Set("Authorization", authHeader)
	}

	middleware.AuthMiddleware()(c)
	return c, w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) errorEnvelope {
	t.Helper()
	var env errorEnvelope
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestAuthMiddleware(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	t.Run("valid token passes and loads the claim", func(t *testing.T) {
		userID := uuid.New().String()
		token, err := auth.IssueToken(userID, "anik@university.edu", "Anik Rahman", authz.RoleStudent)
		assert.NoError(t, err)

		c, w := runAuthMiddleware(t, "Bearer "+token)

		assert.False(t, c.IsAborted())
		assert.Equal(t, http.StatusOK, w.Code)

		claim, ok := middleware.CurrentClaim(c)
		assert.True(t, ok)
		assert.Equal(t, userID, claim.UserID)
		assert.Equal(t, authz.RoleStudent, claim.Role)
	})

	t.Run("expired token gets its own code", func(t *testing.T) {
		token := signToken(t, "test-secret", time.Now().Add(-time.Minute))

		c, w := runAuthMiddleware(t, "Bearer "+token)

		assert.True(t, c.IsAborted())
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		env := decodeError(t, w)
		assert.False(t, env.Ok)
		assert.Equal(t, "TOKEN_EXPIRED", env.Error["code"])
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		c, w := runAuthMiddleware(t, "")

		assert.True(t, c.IsAborted())
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "UNAUTHORIZED", decodeError(t, w).Error["code"])
	})

	t.Run("token signed with another secret is rejected", func(t *testing.T) {
		token := signToken(t, "another-secret", time.Now().Add(time.Hour))

		c, w := runAuthMiddleware(t, "Bearer "+token)

		assert.True(t, c.IsAborted())
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "UNAUTHORIZED", decodeError(t, w).Error["code"])
	})
}
