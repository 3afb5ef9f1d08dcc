package employee

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"go-elms/internal/identity"
	"go-elms/internal/notification"
	"go-elms/internal/shared/apperror"
	"go-elms/internal/shared/contextutil"
	"go-elms/internal/shared/counter"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CounterEmployeeID is the sequence behind generated employee ids.
const CounterEmployeeID = "employee_id"

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Provision(ctx context.Context, req ProvisionEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context) ([]EmployeeResponse, error)
}

type service struct {
	db          *sql.DB
	repo        Repository
	counter     counter.Repository
	queue       notification.Queue
	frontendURL string
	now         identity.Clock
	logger      *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	counter counter.Repository,
	queue notification.Queue,
	frontendURL string,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:          db,
		repo:        repo,
		counter:     counter,
		queue:       queue,
		frontendURL: frontendURL,
		now:         identity.SystemClock,
		logger:      l,
	}
}

// Provision creates an employee without a password and mails a set-password
// link. The row and the outbox entry commit together.
func (s *service) Provision(ctx context.Context, req ProvisionEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	email := identity.NormalizeEmail(req.Email)
	s.logger.Debug("provision employee requested",
		zap.String("request_id", rid),
		zap.String("email", email),
	)

	code := strings.TrimSpace(req.EmployeeID)
	if code == "" {
		next, err := s.counter.GetNextValue(ctx, CounterEmployeeID)
		if err != nil {
			s.logger.Error("provision employee generate id failed", zap.String("request_id", rid), zap.Error(err))
			return EmployeeResponse{}, apperror.Unavailable(err)
		}
		code = fmt.Sprintf("EMP-%06d", next)
	}

	token, err := identity.NewResetToken(s.now())
	if err != nil {
		return EmployeeResponse{}, apperror.ErrInternal
	}

	empl := &Employee{
		ID:                  uuid.New(),
		EmployeeCode:        code,
		Username:            strings.TrimSpace(req.Username),
		Email:               email,
		Phone:               strings.TrimSpace(req.Phone),
		Gender:              req.Gender,
		Department:          strings.TrimSpace(req.Department),
		ResetTokenHash:      &token.Digest,
		ResetTokenExpiresAt: &token.ExpiresAt,
		LeaveQuota:          DefaultLeaveQuota,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("provision employee begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, apperror.Unavailable(err)
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Create(ctx, empl); err != nil {
		s.logger.Warn("provision employee persist failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	link := notification.ResetLink(s.frontendURL, identity.RoleEmployee, token.Plain)
	mail := notification.EmployeeInvite(empl.Email, empl.Username, link)
	if err := s.queue.Enqueue(ctx, tx, "employee", empl.ID.String(), mail); err != nil {
		s.logger.Error("provision employee enqueue invite failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, apperror.Unavailable(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("provision employee commit failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, apperror.Unavailable(err)
	}

	s.logger.Info("provision employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", empl.ID.String()),
		zap.String("employee_code", empl.EmployeeCode),
	)
	return mapToResponse(*empl), nil
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeResponse, error) {
	empls, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("get all employees failed", zap.String("request_id", contextutil.GetRequestID(ctx)), zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(empls), nil
}

func mapToResponse(empl Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:           empl.ID.String(),
		EmployeeID:   empl.EmployeeCode,
		Username:     empl.Username,
		Email:        empl.Email,
		Phone:        empl.Phone,
		Gender:       empl.Gender,
		Department:   empl.Department,
		ProfileImage: empl.ProfileImage,
		LeaveQuota:   empl.LeaveQuota,
		CreatedAt:    empl.CreatedAt,
	}
}

func mapToListResponse(empls []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(empls))
	for i, e := range empls {
		res[i] = mapToResponse(e)
	}
	return res
}

// WithClock overrides the clock used for invite token expiry.
func WithClock(svc Service, now identity.Clock) Service {
	if s, ok := svc.(*service); ok {
		s.now = now
	}
	return svc
}
