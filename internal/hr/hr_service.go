package hr

import (
	"context"
	"database/sql"
	"strings"

	hrerrors "go-elms/internal/hr/errors"
	"go-elms/internal/identity"
	"go-elms/internal/notification"
	"go-elms/internal/observability/metrics"
	"go-elms/internal/shared/apperror"
	"go-elms/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=hr_service.go -destination=mock/hr_service_mock.go -package=mock
type Service interface {
	Register(ctx context.Context, req RegisterHRRequest) (HRResponse, error)
	ListPending(ctx context.Context) ([]HRResponse, error)
	ReviewRegistration(ctx context.Context, id string, approve bool) (ReviewResponse, error)
}

type service struct {
	db          *sql.DB
	repo        Repository
	queue       notification.Queue
	frontendURL string
	now         identity.Clock
	logger      *zap.Logger
}

func NewService(db *sql.DB, repo Repository, queue notification.Queue, frontendURL string, logger ...*zap.Logger) Service {
	l := zap.L().Named("hr.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("hr.service")
	}
	return &service{
		db:          db,
		repo:        repo,
		queue:       queue,
		frontendURL: frontendURL,
		now:         identity.SystemClock,
		logger:      l,
	}
}

// NewServiceWithClock is NewService with a fixed clock.
func NewServiceWithClock(db *sql.DB, repo Repository, queue notification.Queue, frontendURL string, now identity.Clock, logger ...*zap.Logger) Service {
	s := NewService(db, repo, queue, frontendURL, logger...).(*service)
	s.now = now
	return s
}

func (s *service) Register(ctx context.Context, req RegisterHRRequest) (HRResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	h := &HR{
		ID:         uuid.New(),
		Username:   strings.TrimSpace(req.Username),
		Email:      identity.NormalizeEmail(req.Email),
		Phone:      strings.TrimSpace(req.Phone),
		Department: strings.TrimSpace(req.Department),
		IsApproved: false,
	}

	if err := s.repo.Create(ctx, h); err != nil {
		s.logger.Warn("register hr persist failed", zap.String("request_id", rid), zap.Error(err))
		return HRResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("register hr success", zap.String("request_id", rid), zap.String("hr_id", h.ID.String()))
	return mapToResponse(*h), nil
}

func (s *service) ListPending(ctx context.Context) ([]HRResponse, error) {
	hrs, err := s.repo.FindPending(ctx)
	if err != nil {
		s.logger.Error("list pending hr failed", zap.String("request_id", contextutil.GetRequestID(ctx)), zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	res := make([]HRResponse, len(hrs))
	for i, h := range hrs {
		res[i] = mapToResponse(h)
	}
	return res, nil
}

// ReviewRegistration approves or rejects a pending HR. Approval issues an
// activation token; rejection deletes the record. Either way the mail is
// written to the outbox in the same transaction.
func (s *service) ReviewRegistration(ctx context.Context, id string, approve bool) (ReviewResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	if _, err := uuid.Parse(id); err != nil {
		return ReviewResponse{}, hrerrors.ErrHRNotFound
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("review hr begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return ReviewResponse{}, apperror.Unavailable(err)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	h, err := qtx.FindPendingByID(ctx, id)
	if err != nil {
		return ReviewResponse{}, mapRepositoryError(err)
	}

	var (
		mail     notification.Email
		decision string
		changed  bool
	)
	if approve {
		token, err := identity.NewResetToken(s.now())
		if err != nil {
			return ReviewResponse{}, apperror.ErrInternal
		}
		changed, err = qtx.Approve(ctx, id, token.Digest, token.ExpiresAt)
		if err != nil {
			s.logger.Error("approve hr persist failed", zap.String("request_id", rid), zap.Error(err))
			return ReviewResponse{}, mapRepositoryError(err)
		}
		link := notification.ResetLink(s.frontendURL, identity.RoleHR, token.Plain)
		mail = notification.HRActivation(h.Email, h.Username, link)
		decision = ReviewApproved
	} else {
		changed, err = qtx.DeletePending(ctx, id)
		if err != nil {
			s.logger.Error("reject hr delete failed", zap.String("request_id", rid), zap.Error(err))
			return ReviewResponse{}, mapRepositoryError(err)
		}
		mail = notification.HRRejection(h.Email, h.Username)
		decision = ReviewRejected
	}
	if !changed {
		return ReviewResponse{}, hrerrors.ErrHRNotFound
	}

	if err := s.queue.Enqueue(ctx, tx, "hr", id, mail); err != nil {
		s.logger.Error("review hr enqueue failed", zap.String("request_id", rid), zap.Error(err))
		return ReviewResponse{}, apperror.Unavailable(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("review hr commit failed", zap.String("request_id", rid), zap.Error(err))
		return ReviewResponse{}, apperror.Unavailable(err)
	}

	metrics.ObserveHRReview(decision)
	s.logger.Info("review hr success",
		zap.String("request_id", rid),
		zap.String("hr_id", id),
		zap.String("decision", decision),
	)
	return ReviewResponse{ID: id, Decision: decision}, nil
}

func mapToResponse(h HR) HRResponse {
	return HRResponse{
		ID:         h.ID.String(),
		Username:   h.Username,
		Email:      h.Email,
		Phone:      h.Phone,
		Department: h.Department,
		IsApproved: h.IsApproved,
		CreatedAt:  h.CreatedAt,
	}
}
