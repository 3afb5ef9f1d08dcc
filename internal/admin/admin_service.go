package admin

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	adminerrors "go-elms/internal/admin/errors"
	"go-elms/internal/identity"
	"go-elms/internal/notification"
	"go-elms/internal/shared/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=admin_service.go -destination=mock/admin_service_mock.go -package=mock
type Service interface {
	Bootstrap(ctx context.Context, req BootstrapRequest) (AdminResponse, error)
}

type service struct {
	db          *sql.DB
	repo        Repository
	queue       notification.Queue
	frontendURL string
	validate    *validator.Validate
	logger      *zap.Logger
}

func NewService(db *sql.DB, repo Repository, queue notification.Queue, frontendURL string, logger ...*zap.Logger) Service {
	l := zap.L().Named("admin.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("admin.service")
	}
	return &service{
		db:          db,
		repo:        repo,
		queue:       queue,
		frontendURL: frontendURL,
		validate:    validator.New(),
		logger:      l,
	}
}

// Bootstrap creates an Admin with a known password and queues a welcome mail.
func (s *service) Bootstrap(ctx context.Context, req BootstrapRequest) (AdminResponse, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = identity.NormalizeEmail(req.Email)
	if err := s.validate.Struct(req); err != nil {
		return AdminResponse{}, apperror.MapValidationError(err)
	}

	hash, err := identity.HashPassword(req.Password)
	if err != nil {
		return AdminResponse{}, apperror.ErrInternal
	}

	a := &Admin{
		ID:           uuid.New(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: &hash,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AdminResponse{}, apperror.Unavailable(err)
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Create(ctx, a); err != nil {
		s.logger.Warn("bootstrap admin persist failed", zap.Error(err))
		return AdminResponse{}, mapRepositoryError(err)
	}

	mail := notification.AdminWelcome(a.Email, a.Username, s.frontendURL)
	if err := s.queue.Enqueue(ctx, tx, "admin", a.ID.String(), mail); err != nil {
		s.logger.Error("bootstrap admin enqueue failed", zap.Error(err))
		return AdminResponse{}, apperror.Unavailable(err)
	}

	if err := tx.Commit(); err != nil {
		return AdminResponse{}, apperror.Unavailable(err)
	}

	s.logger.Info("bootstrap admin success", zap.String("admin_id", a.ID.String()))
	return AdminResponse{ID: a.ID.String(), Username: a.Username, Email: a.Email}, nil
}

func mapRepositoryError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return adminerrors.ErrAdminAlreadyExists
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return adminerrors.ErrAdminAlreadyExists
	}
	return apperror.Unavailable(err)
}
