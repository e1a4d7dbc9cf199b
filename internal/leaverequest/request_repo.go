package leaverequest

import (
	"context"
	"database/sql"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

//go:generate mockgen -source=request_repo.go -destination=mock/request_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, r *LeaveRequest) error
	FindByID(ctx context.Context, id string) (*LeaveRequest, error)
	FindByRequester(ctx context.Context, requesterID string) ([]LeaveRequest, error)
	FindQueue(ctx context.Context, filter QueueFilter) ([]LeaveRequest, error)
	Update(ctx context.Context, r *LeaveRequest) error
	Delete(ctx context.Context, id string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx rebinds the repository onto the caller's transaction so the
// request write and the outbox row commit together.
func (r *repository) WithTx(tx *sql.Tx) Repository {
	txdb, err := gorm.Open(postgres.New(postgres.Config{Conn: tx}), &gorm.Config{SkipDefaultTransaction: true})
	if err != nil {
		return r
	}
	return &repository{db: txdb}
}

func (r *repository) Create(ctx context.Context, req *LeaveRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*LeaveRequest, error) {
	var req LeaveRequest
	err := r.db.WithContext(ctx).First(&req, "id = ?", id).Error
	return &req, err
}

// FindByRequester scopes strictly by owner; it is the only listing path
// available to non-reviewers.
func (r *repository) FindByRequester(ctx context.Context, requesterID string) ([]LeaveRequest, error) {
	var requests []LeaveRequest
	err := r.db.WithContext(ctx).
		Where("requester_id = ?", requesterID).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

func (r *repository) FindQueue(ctx context.Context, filter QueueFilter) ([]LeaveRequest, error) {
	db := r.db.WithContext(ctx).Where("kind = ?", filter.Kind)

	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.Department != "" {
		db = db.Where("department = ?", filter.Department)
	}

	var requests []LeaveRequest
	err := db.Order("created_at DESC").Find(&requests).Error
	return requests, err
}

func (r *repository) Update(ctx context.Context, req *LeaveRequest) error {
	return r.db.WithContext(ctx).Save(req).Error
}

// Delete removes the row permanently; the record is gone, not tombstoned.
func (r *repository) Delete(ctx context.Context, id string) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&LeaveRequest{}, "id = ?", id)
	return res.RowsAffected, res.Error
}
