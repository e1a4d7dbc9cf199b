package auth

import (
	"context"
	"crypto/subtle"
	"os"

	"go-lms/internal/account"
	accounterrors "go-lms/internal/account/errors"
	autherrors "go-lms/internal/auth/errors"
	"go-lms/internal/authz"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, email, password, role string) (token string, resp AuthResponse, err error)
	Register(ctx context.Context, req RegisterRequest) (token string, resp AuthResponse, err error)
	GetMe(ctx context.Context, claim authz.Claim) (*AuthResponse, error)
}

type service struct {
	accounts account.Repository
	logger   *zap.Logger
}

func NewService(accounts account.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{accounts: accounts, logger: l}
}

// BootstrapAdminID derives a stable uuid for the environment-configured admin
// so its reviews carry a well-formed reviewer reference without a stored row.
func BootstrapAdminID(email string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("lms-admin:"+email))
}

func (s *service) Login(ctx context.Context, email, password, role string) (string, AuthResponse, error) {
	requestedRole, err := authz.ParseRole(role)
	if err != nil {
		return "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	// The admin identity lives in the environment, not the store.
	if requestedRole == authz.RoleAdmin {
		return s.loginBootstrapAdmin(email, password)
	}

	acct, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		return "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acct.Password), []byte(password)); err != nil {
		return "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	if acct.Role != requestedRole.String() {
		s.logger.Warn("login role mismatch",
			zap.String("account_id", acct.ID.String()),
			zap.String("requested_role", role),
		)
		return "", AuthResponse{}, autherrors.ErrRoleMismatch
	}

	token, err := IssueToken(acct.ID.String(), acct.Email, acct.Name, requestedRole)
	if err != nil {
		return "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	s.logger.Info("login success",
		zap.String("account_id", acct.ID.String()),
		zap.String("role", acct.Role),
	)

	return token, AuthResponse{
		ID:    acct.ID.String(),
		Name:  acct.Name,
		Email: acct.Email,
		Role:  acct.Role,
	}, nil
}

func (s *service) loginBootstrapAdmin(email, password string) (string, AuthResponse, error) {
	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminEmail == "" || adminPassword == "" {
		return "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(adminEmail)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(adminPassword)) == 1
	if !emailOK || !passOK {
		return "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	adminID := BootstrapAdminID(adminEmail).String()
	token, err := IssueToken(adminID, adminEmail, "Administrator", authz.RoleAdmin)
	if err != nil {
		return "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	s.logger.Info("bootstrap admin login success")

	return token, AuthResponse{
		ID:    adminID,
		Name:  "Administrator",
		Email: adminEmail,
		Role:  authz.RoleAdmin.String(),
	}, nil
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (string, AuthResponse, error) {
	role, err := authz.ParseRole(req.Role)
	if err != nil || (role != authz.RoleStudent && role != authz.RoleFaculty) {
		return "", AuthResponse{}, autherrors.ErrInvalidRegistrationRole
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", AuthResponse{}, err
	}

	acct := &account.Account{
		ID:       uuid.New(),
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashed),
		Role:     role.String(),
	}

	if err := s.accounts.Create(ctx, acct); err != nil {
		s.logger.Warn("register create failed", zap.String("email", req.Email), zap.Error(err))
		return "", AuthResponse{}, accounterrors.ErrEmailAlreadyRegistered
	}

	token, err := IssueToken(acct.ID.String(), acct.Email, acct.Name, role)
	if err != nil {
		return "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	s.logger.Info("register success",
		zap.String("account_id", acct.ID.String()),
		zap.String("role", acct.Role),
	)

	return token, AuthResponse{
		ID:    acct.ID.String(),
		Name:  acct.Name,
		Email: acct.Email,
		Role:  acct.Role,
	}, nil
}

func (s *service) GetMe(ctx context.Context, claim authz.Claim) (*AuthResponse, error) {
	id, err := uuid.Parse(claim.UserID)
	if err != nil {
		return nil, autherrors.ErrInvalidToken
	}

	// The bootstrap admin has no stored account; answer from the claim.
	if claim.Role == authz.RoleAdmin && id == BootstrapAdminID(claim.Email) {
		return &AuthResponse{
			ID:    claim.UserID,
			Name:  claim.Name,
			Email: claim.Email,
			Role:  claim.Role.String(),
		}, nil
	}

	acct, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		return nil, accounterrors.ErrAccountNotFound
	}

	return &AuthResponse{
		ID:    acct.ID.String(),
		Name:  acct.Name,
		Email: acct.Email,
		Role:  acct.Role,
	}, nil
}
