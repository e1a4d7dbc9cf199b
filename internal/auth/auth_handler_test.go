package auth_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-lms/internal/auth"
	autherrors "go-lms/internal/auth/errors"
	"go-lms/internal/authz"
	"go-lms/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

func decodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

type fakeAuthService struct {
	loginFn    func(ctx context.Context, email, password, role string) (string, auth.AuthResponse, error)
	registerFn func(ctx context.Context, req auth.RegisterRequest) (string, auth.AuthResponse, error)
	getMeFn    func(ctx context.Context, claim authz.Claim) (*auth.AuthResponse, error)
}

func (f *fakeAuthService) Login(ctx context.Context, email, password, role string) (string, auth.AuthResponse, error) {
	return f.loginFn(ctx, email, password, role)
}
func (f *fakeAuthService) Register(ctx context.Context, req auth.RegisterRequest) (string, auth.AuthResponse, error) {
	return f.registerFn(ctx, req)
}
func (f *fakeAuthService) GetMe(ctx context.Context, claim authz.Claim) (*auth.AuthResponse, error) {
	return f.getMeFn(ctx, claim)
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("success returns token and user", func(t *testing.T) {
		svc := &fakeAuthService{
			loginFn: func(ctx context.Context, email, password, role string) (string, auth.AuthResponse, error) {
				assert.Equal(t, "student@campus.test", email)
				assert.Equal(t, "student", role)
				return "signed-token", auth.AuthResponse{
					ID:    uuid.New().String(),
					Name:  "Student One",
					Email: email,
					Role:  role,
				}, nil
			},
		}

		h := auth.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"email":"student@campus.test","password":"secret123","role":"student"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Login(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)

		var got struct {
			Token string            `json:"token"`
			User  auth.AuthResponse `json:"user"`
		}
		assert.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Equal(t, "signed-token", got.Token)
		assert.Equal(t, "student@campus.test", got.User.Email)
	})

	t.Run("negative bad credentials map to 401", func(t *testing.T) {
		svc := &fakeAuthService{
			loginFn: func(ctx context.Context, email, password, role string) (string, auth.AuthResponse, error) {
				return "", auth.AuthResponse{}, autherrors.ErrInvalidCredentials
			},
		}

		h := auth.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"email":"student@campus.test","password":"wrong","role":"student"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Login(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
	})

	t.Run("negative role mismatch maps to 403", func(t *testing.T) {
		svc := &fakeAuthService{
			loginFn: func(ctx context.Context, email, password, role string) (string, auth.AuthResponse, error) {
				return "", auth.AuthResponse{}, autherrors.ErrRoleMismatch
			},
		}

		h := auth.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"email":"student@campus.test","password":"secret123","role":"faculty"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Login(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("negative unknown role rejected by binding", func(t *testing.T) {
		h := auth.NewHandler(&fakeAuthService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"email":"student@campus.test","password":"secret123","role":"superuser"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Login(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuthHandler_Register(t *testing.T) {
	t.Run("success returns 201", func(t *testing.T) {
		svc := &fakeAuthService{
			registerFn: func(ctx context.Context, req auth.RegisterRequest) (string, auth.AuthResponse, error) {
				return "signed-token", auth.AuthResponse{
					ID:    uuid.New().String(),
					Name:  req.Name,
					Email: req.Email,
					Role:  req.Role,
				}, nil
			},
		}

		h := auth.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"name":"Student One","email":"student@campus.test","password":"secret123","role":"student"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Register(c)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("negative admin role rejected by binding", func(t *testing.T) {
		h := auth.NewHandler(&fakeAuthService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"name":"Impostor","email":"x@campus.test","password":"secret123","role":"admin"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Register(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuthHandler_Me(t *testing.T) {
	t.Run("success with verified claim", func(t *testing.T) {
		actorID := uuid.New().String()
		svc := &fakeAuthService{
			getMeFn: func(ctx context.Context, claim authz.Claim) (*auth.AuthResponse, error) {
				assert.Equal(t, actorID, claim.UserID)
				return &auth.AuthResponse{ID: claim.UserID, Role: claim.Role.String()}, nil
			},
		}

		h := auth.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		c.Set(middleware.ContextUserID, actorID)
		c.Set(middleware.ContextEmail, "student@campus.test")
		c.Set(middleware.ContextName, "Student One")
		c.Set(middleware.ContextRole, "student")

		h.Me(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("negative without claim returns 401", func(t *testing.T) {
		h := auth.NewHandler(&fakeAuthService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/auth/me", nil)

		h.Me(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
