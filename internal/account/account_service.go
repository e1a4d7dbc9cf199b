package account

import (
	"context"

	accounterrors "go-lms/internal/account/errors"
	"go-lms/internal/authz"
	"go-lms/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=account_service.go -destination=mock/account_service_mock.go -package=mock
type Service interface {
	List(ctx context.Context) (AccountListResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("account.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("account.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) List(ctx context.Context) (AccountListResponse, error) {
	students, err := s.repo.FindByRole(ctx, authz.RoleStudent.String())
	if err != nil {
		s.logger.Error("list student accounts failed", zap.Error(err))
		return AccountListResponse{}, err
	}

	faculty, err := s.repo.FindByRole(ctx, authz.RoleFaculty.String())
	if err != nil {
		s.logger.Error("list faculty accounts failed", zap.Error(err))
		return AccountListResponse{}, err
	}

	return AccountListResponse{
		Students: mapToListResponse(students),
		Faculty:  mapToListResponse(faculty),
	}, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	accountID, err := uuid.Parse(id)
	if err != nil {
		return accounterrors.ErrInvalidAccountID
	}

	affected, err := s.repo.Delete(ctx, accountID)
	if err != nil {
		s.logger.Error("delete account failed", zap.String("account_id", id), zap.Error(err))
		return err
	}
	if affected == 0 {
		return accounterrors.ErrAccountNotFound
	}

	s.logger.Info("account deleted",
		zap.String("account_id", id),
		zap.String("actor_id", contextutil.GetUserID(ctx)),
	)
	return nil
}
