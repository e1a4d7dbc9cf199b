package account_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-lms/internal/account"
	accounterrors "go-lms/internal/account/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type fakeService struct {
	listFn   func(ctx context.Context) (account.AccountListResponse, error)
	deleteFn func(ctx context.Context, id string) error
}

func (f *fakeService) List(ctx context.Context) (account.AccountListResponse, error) {
	return f.listFn(ctx)
}

func (f *fakeService) Delete(ctx context.Context, id string) error {
	return f.deleteFn(ctx, id)
}

func TestAccountHandler_List(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeService{
			listFn: func(ctx context.Context) (account.AccountListResponse, error) {
				return account.AccountListResponse{
					Students: []account.AccountResponse{{ID: uuid.New().String(), Name: "Student One"}},
					Faculty:  []account.AccountResponse{},
				}, nil
			},
		}

		h := account.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/accounts", nil)

		h.List(c)

		assert.Equal(t, http.StatusOK, w.Code)
		var env apiEnvelope
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		assert.True(t, env.Ok)

		var got account.AccountListResponse
		assert.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Len(t, got.Students, 1)
	})
}

func TestAccountHandler_Delete(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		id := uuid.New().String()
		svc := &fakeService{
			deleteFn: func(ctx context.Context, targetID string) error {
				assert.Equal(t, id, targetID)
				return nil
			},
		}

		h := account.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodDelete, "/accounts/"+id, nil)
		c.Params = gin.Params{{Key: "id", Value: id}}

		h.Delete(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("negative not found maps to 404", func(t *testing.T) {
		svc := &fakeService{
			deleteFn: func(ctx context.Context, targetID string) error {
				return accounterrors.ErrAccountNotFound
			},
		}

		h := account.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodDelete, "/accounts/"+uuid.New().String(), nil)
		c.Params = gin.Params{{Key: "id", Value: uuid.New().String()}}

		h.Delete(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
		var env apiEnvelope
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		assert.False(t, env.Ok)
		assert.Equal(t, "NOT_FOUND", env.Error.Code)
	})
}
