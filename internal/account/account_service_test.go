package account_test

import (
	"context"
	"errors"
	"testing"

	"go-lms/internal/account"
	accounterrors "go-lms/internal/account/errors"
	"go-lms/internal/authz"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepository struct {
	createFn     func(ctx context.Context, a *account.Account) error
	getByEmailFn func(ctx context.Context, email string) (*account.Account, error)
	getByIDFn    func(ctx context.Context, id uuid.UUID) (*account.Account, error)
	findByRoleFn func(ctx context.Context, role string) ([]account.Account, error)
	deleteFn     func(ctx context.Context, id uuid.UUID) (int64, error)
}

func (f *fakeRepository) Create(ctx context.Context, a *account.Account) error {
	if f.createFn != nil {
		return f.createFn(ctx, a)
	}
	return nil
}

func (f *fakeRepository) GetByEmail(ctx context.Context, email string) (*account.Account, error) {
	if f.getByEmailFn != nil {
		return f.getByEmailFn(ctx, email)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepository) GetByID(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepository) FindByRole(ctx context.Context, role string) ([]account.Account, error) {
	if f.findByRoleFn != nil {
		return f.findByRoleFn(ctx, role)
	}
	return nil, nil
}

func (f *fakeRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return 1, nil
}

func TestAccountService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("success splits students and faculty", func(t *testing.T) {
		repo := &fakeRepository{
			findByRoleFn: func(ctx context.Context, role string) ([]account.Account, error) {
				switch role {
				case authz.RoleStudent.String():
					return []account.Account{
						{ID: uuid.New(), Name: "Student One", Email: "s1@campus.test", Role: role},
						{ID: uuid.New(), Name: "Student Two", Email: "s2@campus.test", Role: role},
					}, nil
				case authz.RoleFaculty.String():
					return []account.Account{
						{ID: uuid.New(), Name: "Prof. Two", Email: "f1@campus.test", Role: role},
					}, nil
				default:
					t.Fatalf("unexpected role %q", role)
					return nil, nil
				}
			},
		}
		svc := account.NewService(repo)

		resp, err := svc.List(ctx)

		assert.NoError(t, err)
		assert.Len(t, resp.Students, 2)
		assert.Len(t, resp.Faculty, 1)
		assert.Equal(t, "Prof. Two", resp.Faculty[0].Name)
	})

	t.Run("negative repo error surfaces", func(t *testing.T) {
		repo := &fakeRepository{
			findByRoleFn: func(ctx context.Context, role string) ([]account.Account, error) {
				return nil, errors.New("db down")
			},
		}
		svc := account.NewService(repo)

		_, err := svc.List(ctx)

		assert.Error(t, err)
	})
}

func TestAccountService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		id := uuid.New()
		repo := &fakeRepository{
			deleteFn: func(ctx context.Context, targetID uuid.UUID) (int64, error) {
				assert.Equal(t, id, targetID)
				return 1, nil
			},
		}
		svc := account.NewService(repo)

		err := svc.Delete(ctx, id.String())

		assert.NoError(t, err)
	})

	t.Run("negative malformed id", func(t *testing.T) {
		svc := account.NewService(&fakeRepository{})

		err := svc.Delete(ctx, "not-a-uuid")

		assert.ErrorIs(t, err, accounterrors.ErrInvalidAccountID)
	})

	t.Run("negative missing account", func(t *testing.T) {
		repo := &fakeRepository{
			deleteFn: func(ctx context.Context, targetID uuid.UUID) (int64, error) {
				return 0, nil
			},
		}
		svc := account.NewService(repo)

		err := svc.Delete(ctx, uuid.New().String())

		assert.ErrorIs(t, err, accounterrors.ErrAccountNotFound)
	})
}
