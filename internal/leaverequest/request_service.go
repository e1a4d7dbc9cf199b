package leaverequest

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-lms/internal/account"
	"go-lms/internal/authz"
	"go-lms/internal/events"
	requesterrors "go-lms/internal/leaverequest/errors"
	"go-lms/internal/messaging/kafka"
	"go-lms/internal/shared/contextutil"
	"go-lms/internal/shared/counter"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const queueCacheKeyPrefix = "requests:queue:"

func queueCacheKey(kind Kind) string {
	return queueCacheKeyPrefix + string(kind)
}

//go:generate mockgen -source=request_service.go -destination=mock/request_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, claim authz.Claim, input CreateRequestInput) (RequestResponse, error)
	ListOwn(ctx context.Context, claim authz.Claim) ([]RequestResponse, error)
	ListQueue(ctx context.Context, claim authz.Claim, filter QueueFilter) ([]RequestResponse, error)
	GetByID(ctx context.Context, claim authz.Claim, id string) (RequestResponse, error)
	Review(ctx context.Context, claim authz.Claim, id string, input ReviewRequestInput) (RequestResponse, error)
	Delete(ctx context.Context, claim authz.Claim, id string) error
}

type service struct {
	db       *sql.DB
	repo     Repository
	accounts account.Repository
	guard    *authz.Guard
	counter  counter.Repository
	outbox   kafka.OutboxRepository
	rdb      *redis.Client
	sf       *singleflight.Group
	logger   *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	accounts account.Repository,
	guard *authz.Guard,
	counterRepo counter.Repository,
	logger ...*zap.Logger,
) Service {
	return NewServiceWithOutbox(db, repo, accounts, guard, counterRepo, nil, nil, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	accounts account.Repository,
	guard *authz.Guard,
	counterRepo counter.Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leaverequest.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leaverequest.service")
	}
	return &service{
		db:       db,
		repo:     repo,
		accounts: accounts,
		guard:    guard,
		counter:  counterRepo,
		outbox:   outboxRepo,
		rdb:      rdb,
		sf:       &singleflight.Group{},
		logger:   l,
	}
}

func (s *service) Create(ctx context.Context, claim authz.Claim, input CreateRequestInput) (RequestResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("create request requested",
		zap.String("requester_id", claim.UserID),
		zap.String("kind", input.Kind),
	)

	kind, ok := ParseKind(input.Kind)
	if !ok {
		return RequestResponse{}, requesterrors.ErrInvalidKind
	}

	if err := s.guard.Authorize(claim, kind.PolicyObject(), authz.ActionCreate); err != nil {
		log.Warn("create request denied",
			zap.String("requester_id", claim.UserID),
			zap.String("role", claim.Role.String()),
			zap.String("kind", input.Kind),
		)
		return RequestResponse{}, err
	}

	requesterID, err := uuid.Parse(claim.UserID)
	if err != nil {
		return RequestResponse{}, requesterrors.ErrInvalidRequesterID
	}

	fromDate, err := parseDate(input.FromDate)
	if err != nil {
		return RequestResponse{}, err
	}
	toDate, err := parseDate(input.ToDate)
	if err != nil {
		return RequestResponse{}, err
	}
	if fromDate.After(toDate) {
		return RequestResponse{}, requesterrors.ErrInvalidDateRange
	}

	if err := validatePayload(kind, input); err != nil {
		log.Warn("create request payload invalid", zap.String("kind", input.Kind), zap.Error(err))
		return RequestResponse{}, err
	}

	nextVal, err := s.counter.GetNextValue(ctx, "request_number")
	if err != nil {
		log.Error("create request generate number failed", zap.Error(err))
		return RequestResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("create request begin tx failed", zap.Error(err))
		return RequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	r := &LeaveRequest{
		ID:            uuid.New(),
		RequestNumber: fmt.Sprintf("REQ-%06d", nextVal),
		Kind:          kind,
		RequesterID:   requesterID,
		Year:          input.Year,
		Department:    input.Department,
		FacultyName:   input.FacultyName,
		LeaveType:     input.LeaveType,
		FromDate:      fromDate,
		ToDate:        toDate,
		Reason:        input.Reason,
		AttachmentURL: input.AttachmentURL,
		Status:        StatusPending,
	}

	if err := qtx.Create(ctx, r); err != nil {
		log.Error("create request persist failed", zap.Error(err))
		return RequestResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("create request commit failed", zap.Error(err))
		return RequestResponse{}, err
	}

	s.invalidateQueueCache(ctx, kind)
	log.Info("create request success",
		zap.String("leave_request_id", r.ID.String()),
		zap.String("request_number", r.RequestNumber),
		zap.String("kind", string(kind)),
	)

	return mapToResponse(*r), nil
}

func (s *service) ListOwn(ctx context.Context, claim authz.Claim) ([]RequestResponse, error) {
	if _, err := uuid.Parse(claim.UserID); err != nil {
		return nil, requesterrors.ErrInvalidRequesterID
	}

	requests, err := s.repo.FindByRequester(ctx, claim.UserID)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("list own requests failed", zap.String("requester_id", claim.UserID), zap.Error(err))
		return nil, err
	}
	return mapToListResponse(requests), nil
}

func (s *service) ListQueue(ctx context.Context, claim authz.Claim, filter QueueFilter) ([]RequestResponse, error) {
	if err := s.guard.Authorize(claim, filter.Kind.PolicyObject(), authz.ActionReadQueue); err != nil {
		return nil, err
	}

	// Filtered queries go straight to the store; only the plain per-kind
	// queue is worth caching.
	if filter.Status != "" || filter.Department != "" || s.rdb == nil {
		requests, err := s.repo.FindQueue(ctx, filter)
		if err != nil {
			return nil, err
		}
		return mapToListResponse(requests), nil
	}

	cacheKey := queueCacheKey(filter.Kind)
	if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
		var resp []RequestResponse
		if json.Unmarshal([]byte(cached), &resp) == nil {
			return resp, nil
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		requests, err := s.repo.FindQueue(ctx, filter)
		if err != nil {
			return nil, err
		}

		resp := mapToListResponse(requests)
		if jsonData, err := json.Marshal(resp); err == nil {
			s.rdb.Set(ctx, cacheKey, jsonData, time.Minute)
		}
		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]RequestResponse), nil
}

func (s *service) GetByID(ctx context.Context, claim authz.Claim, id string) (RequestResponse, error) {
	r, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RequestResponse{}, requesterrors.ErrRequestNotFound
		}
		return RequestResponse{}, err
	}

	if err := s.guard.AuthorizeOwner(claim, r.RequesterID.String(), r.Kind.PolicyObject(), authz.ActionReadQueue); err != nil {
		return RequestResponse{}, err
	}

	return mapToResponse(*r), nil
}

func (s *service) Review(ctx context.Context, claim authz.Claim, id string, input ReviewRequestInput) (RequestResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("review request requested",
		zap.String("leave_request_id", id),
		zap.String("reviewer_id", claim.UserID),
		zap.String("target_status", input.Status),
	)

	reviewerID, err := uuid.Parse(claim.UserID)
	if err != nil {
		return RequestResponse{}, requesterrors.ErrInvalidReviewerID
	}

	if input.Status != StatusApproved && input.Status != StatusRejected {
		return RequestResponse{}, requesterrors.ErrInvalidStatus
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("review request begin tx failed", zap.Error(err))
		return RequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	r, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RequestResponse{}, requesterrors.ErrRequestNotFound
		}
		return RequestResponse{}, err
	}

	if err := s.guard.Authorize(claim, r.Kind.PolicyObject(), authz.ActionReview); err != nil {
		log.Warn("review request denied",
			zap.String("leave_request_id", id),
			zap.String("reviewer_id", claim.UserID),
			zap.String("role", claim.Role.String()),
			zap.String("kind", string(r.Kind)),
		)
		return RequestResponse{}, err
	}

	// Terminal states accept no further review; the decision stands.
	if isTerminal(r.Status) {
		return RequestResponse{}, requesterrors.ErrAlreadyReviewed
	}
	if !canTransition(r.Status, input.Status) {
		return RequestResponse{}, requesterrors.ErrInvalidStatus
	}

	now := time.Now().UTC()
	r.Status = input.Status
	r.Comment = input.Comment
	r.ReviewedBy = &reviewerID
	r.ReviewedAt = &now

	if err := qtx.Update(ctx, r); err != nil {
		log.Error("review request persist failed",
			zap.String("leave_request_id", id),
			zap.Error(err),
		)
		return RequestResponse{}, err
	}

	s.queueNotification(ctx, tx, events.TypeRequestReviewed, r, claim)

	if err := tx.Commit(); err != nil {
		log.Error("review request commit failed",
			zap.String("leave_request_id", id),
			zap.Error(err),
		)
		return RequestResponse{}, err
	}

	s.invalidateQueueCache(ctx, r.Kind)
	log.Info("review request success",
		zap.String("leave_request_id", id),
		zap.String("status", r.Status),
	)

	return mapToResponse(*r), nil
}

func (s *service) Delete(ctx context.Context, claim authz.Claim, id string) error {
	log := contextutil.GetLogger(ctx, s.logger)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	r, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return requesterrors.ErrRequestNotFound
		}
		return err
	}

	// Requesters may always remove their own record, at any status.
	if err := s.guard.AuthorizeOwner(claim, r.RequesterID.String(), r.Kind.PolicyObject(), authz.ActionDelete); err != nil {
		log.Warn("delete request denied",
			zap.String("leave_request_id", id),
			zap.String("actor_id", claim.UserID),
			zap.String("role", claim.Role.String()),
		)
		return err
	}

	affected, err := qtx.Delete(ctx, id)
	if err != nil {
		log.Error("delete request persist failed", zap.String("leave_request_id", id), zap.Error(err))
		return err
	}
	if affected == 0 {
		return requesterrors.ErrRequestNotFound
	}

	// Only reviewer-initiated deletes notify the requester.
	if claim.UserID != r.RequesterID.String() {
		s.queueNotification(ctx, tx, events.TypeRequestDeleted, r, claim)
	}

	if err := tx.Commit(); err != nil {
		log.Error("delete request commit failed", zap.String("leave_request_id", id), zap.Error(err))
		return err
	}

	s.invalidateQueueCache(ctx, r.Kind)
	log.Info("delete request success",
		zap.String("leave_request_id", id),
		zap.String("actor_id", claim.UserID),
	)
	return nil
}

// queueNotification stages a best-effort notification in the outbox. Any
// failure here is logged and swallowed: the status mutation must never be
// held hostage by the notification channel.
func (s *service) queueNotification(ctx context.Context, tx *sql.Tx, eventType string, r *LeaveRequest, claim authz.Claim) {
	if s.outbox == nil {
		return
	}

	recipient, err := s.accounts.GetByID(ctx, r.RequesterID)
	if err != nil {
		// Requester account may already be gone (e.g. deleted by admin).
		contextutil.GetLogger(ctx, s.logger).Warn("notification recipient unresolved, skipping",
			zap.String("leave_request_id", r.ID.String()),
			zap.String("requester_id", r.RequesterID.String()),
			zap.Error(err),
		)
		return
	}

	event := events.RequestNotificationEvent{
		EventType:      eventType,
		RequestID:      r.ID.String(),
		RequestNumber:  r.RequestNumber,
		Kind:           string(r.Kind),
		Status:         r.Status,
		Comment:        r.Comment,
		ReviewerName:   claim.Name,
		RecipientName:  recipient.Name,
		RecipientEmail: recipient.Email,
		OccurredAt:     time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("marshal notification event failed", zap.Error(err))
		return
	}

	err = s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "leave_request",
		AggregateID:   r.ID.String(),
		EventType:     eventType,
		Topic:         events.RequestNotificationTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("queue notification outbox failed",
			zap.String("leave_request_id", r.ID.String()),
			zap.Error(err),
		)
	}
}

func (s *service) invalidateQueueCache(ctx context.Context, kind Kind) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, queueCacheKey(kind)).Err(); err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("invalidate queue cache failed",
			zap.String("kind", string(kind)),
			zap.Error(err),
		)
	}
}

// validatePayload enforces the per-kind required fields the shared binding
// tags cannot express.
func validatePayload(kind Kind, input CreateRequestInput) error {
	switch kind {
	case KindStandard:
		if input.Year == "" || input.LeaveType == "" || input.FacultyName == "" {
			return requesterrors.ErrMissingPayloadField
		}
	case KindExam:
		if input.Year == "" || input.Department == "" || input.FacultyName == "" {
			return requesterrors.ErrMissingPayloadField
		}
	case KindFaculty:
		if input.Department == "" || input.LeaveType == "" {
			return requesterrors.ErrMissingPayloadField
		}
	}
	return nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, requesterrors.ErrInvalidDateFormat
	}
	return t, nil
}
