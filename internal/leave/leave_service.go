package leave

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"go-elms/internal/identity"
	leaveerrors "go-elms/internal/leave/errors"
	"go-elms/internal/notification"
	"go-elms/internal/observability/metrics"
	"go-elms/internal/shared/apperror"
	"go-elms/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const dateLayout = "2006-01-02"

const listAllTimeout = 10 * time.Second

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Apply(ctx context.Context, caller identity.Caller, req ApplyLeaveRequest) (LeaveResponse, error)
	ListMine(ctx context.Context, caller identity.Caller) ([]LeaveResponse, error)
	ListAll(ctx context.Context, caller identity.Caller) ([]LeaveResponse, error)
	Decide(ctx context.Context, caller identity.Caller, id string, req DecideLeaveRequest) (LeaveResponse, error)
	GetBalance(ctx context.Context, caller identity.Caller) (BalanceResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	queue  notification.Queue
	now    identity.Clock
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, queue notification.Queue, logger ...*zap.Logger) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		queue:  queue,
		now:    identity.SystemClock,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

// NewServiceWithClock is NewService with a fixed clock.
func NewServiceWithClock(db *sql.DB, repo Repository, queue notification.Queue, now identity.Clock, logger ...*zap.Logger) Service {
	s := NewService(db, repo, queue, logger...).(*service)
	s.now = now
	return s
}

func (s *service) Apply(ctx context.Context, caller identity.Caller, req ApplyLeaveRequest) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	if caller.Role != identity.RoleEmployee {
		return LeaveResponse{}, apperror.ErrForbidden
	}
	s.logger.Debug("apply leave requested",
		zap.String("request_id", rid),
		zap.String("employee_id", caller.IdentityID),
		zap.String("leave_type", req.LeaveType),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	employeeID, startDate, endDate, err := validateApplyRequest(caller.IdentityID, req)
	if err != nil {
		s.logger.Warn("apply leave validation failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("apply leave begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, apperror.Unavailable(err)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	empl, err := qtx.FindEmployee(ctx, caller.IdentityID)
	if err != nil {
		s.logger.Warn("apply leave employee lookup failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, mapEmployeeError(err)
	}

	totalDays := int(endDate.Sub(startDate).Hours()/24) + 1
	l := &Leave{
		ID:         uuid.New(),
		EmployeeID: employeeID,
		LeaveType:  req.LeaveType,
		StartDate:  startDate,
		EndDate:    endDate,
		TotalDays:  totalDays,
		Reason:     strings.TrimSpace(req.Reason),
		Status:     StatusPending,
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
		OriginIP:   req.OriginIP,
		AppliedAt:  s.now(),
	}

	if err := qtx.Create(ctx, l); err != nil {
		s.logger.Error("apply leave persist failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, mapLeaveError(err)
	}

	if err := qtx.AdjustBalance(ctx, caller.IdentityID, l.LeaveType, 0, totalDays); err != nil {
		s.logger.Error("apply leave balance update failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, mapEmployeeError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("apply leave commit failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, apperror.Unavailable(err)
	}

	metrics.ObserveLeaveApplied(l.LeaveType)
	s.logger.Info("apply leave success",
		zap.String("request_id", rid),
		zap.String("leave_id", l.ID.String()),
		zap.Int("total_days", totalDays),
	)

	l.Employee = empl
	return mapToResponse(*l), nil
}

func (s *service) ListMine(ctx context.Context, caller identity.Caller) ([]LeaveResponse, error) {
	if caller.Role != identity.RoleEmployee {
		return nil, apperror.ErrForbidden
	}
	if _, err := uuid.Parse(caller.IdentityID); err != nil {
		return nil, leaveerrors.ErrEmployeeNotFound
	}

	leaves, err := s.repo.FindByEmployee(ctx, caller.IdentityID)
	if err != nil {
		s.logger.Error("list own leaves failed",
			zap.String("request_id", contextutil.GetRequestID(ctx)),
			zap.String("employee_id", caller.IdentityID),
			zap.Error(err),
		)
		return nil, mapLeaveError(err)
	}
	return mapToListResponse(leaves), nil
}

// ListAll joins employee identity into every leave. Concurrent identical
// reads share one query; nothing is kept once it returns.
func (s *service) ListAll(ctx context.Context, caller identity.Caller) ([]LeaveResponse, error) {
	if !caller.Role.IsReviewer() {
		return nil, apperror.ErrForbidden
	}

	// The shared query must outlive any single caller; each caller still
	// stops waiting when its own request ends.
	ch := s.sf.DoChan("leaves:all", func() (interface{}, error) {
		qctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), listAllTimeout)
		defer cancel()

		leaves, err := s.repo.FindAll(qctx)
		if err != nil {
			s.logger.Error("list all leaves failed", zap.String("request_id", contextutil.GetRequestID(ctx)), zap.Error(err))
			return nil, mapLeaveError(err)
		}
		return mapToListResponse(leaves), nil
	})

	select {
	case <-ctx.Done():
		return nil, apperror.Unavailable(ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		shared := res.Val.([]LeaveResponse)
		out := make([]LeaveResponse, len(shared))
		copy(out, shared)
		return out, nil
	}
}

// Decide moves a Pending leave to Approved or Rejected. The reviewer role
// is always the caller's authenticated role. The decision mail is queued
// after commit and its failure is only logged.
func (s *service) Decide(ctx context.Context, caller identity.Caller, id string, req DecideLeaveRequest) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	if !caller.Role.IsReviewer() {
		return LeaveResponse{}, apperror.ErrForbidden
	}
	if req.Action != StatusApproved && req.Action != StatusRejected {
		return LeaveResponse{}, leaveerrors.ErrInvalidAction
	}
	if _, err := uuid.Parse(id); err != nil {
		return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
	}
	s.logger.Debug("decide leave requested",
		zap.String("request_id", rid),
		zap.String("leave_id", id),
		zap.String("action", req.Action),
		zap.String("reviewer_role", string(caller.Role)),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("decide leave begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, apperror.Unavailable(err)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByID(ctx, id)
	if err != nil {
		return LeaveResponse{}, mapLeaveError(err)
	}
	if l.Status != StatusPending {
		return LeaveResponse{}, leaveerrors.ErrAlreadyDecided
	}

	decision := Decision{
		Status:     req.Action,
		Reviewer:   Reviewer{Username: caller.DisplayName, Role: caller.Role},
		ReviewedAt: s.now(),
	}
	if req.Action == StatusRejected {
		if reason := strings.TrimSpace(req.Reason); reason != "" {
			decision.Comment = &reason
		}
	}

	won, err := qtx.Decide(ctx, id, decision)
	if err != nil {
		s.logger.Error("decide leave persist failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, mapLeaveError(err)
	}
	if !won {
		s.logger.Warn("decide leave lost race", zap.String("request_id", rid), zap.String("leave_id", id))
		return LeaveResponse{}, leaveerrors.ErrAlreadyDecided
	}

	takenDelta := 0
	if req.Action == StatusApproved {
		takenDelta = l.TotalDays
	}
	if err := qtx.AdjustBalance(ctx, l.EmployeeID.String(), l.LeaveType, takenDelta, -l.TotalDays); err != nil {
		s.logger.Error("decide leave balance update failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, mapEmployeeError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("decide leave commit failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, apperror.Unavailable(err)
	}

	l.Status = decision.Status
	username := decision.Reviewer.Username
	role := string(decision.Reviewer.Role)
	l.ReviewedByUsername = &username
	l.ReviewedByRole = &role
	l.ReviewedAt = &decision.ReviewedAt
	l.Comment = decision.Comment

	metrics.ObserveLeaveDecision(l.Status, role)
	s.logger.Info("decide leave success",
		zap.String("request_id", rid),
		zap.String("leave_id", id),
		zap.String("status", l.Status),
		zap.String("reviewer_role", role),
	)

	s.notifyDecision(ctx, l, decision)
	return mapToResponse(*l), nil
}

func (s *service) notifyDecision(ctx context.Context, l *Leave, d Decision) {
	if l.Employee == nil || l.Employee.Email == "" {
		s.logger.Warn("decision mail skipped, employee email unknown", zap.String("leave_id", l.ID.String()))
		return
	}

	reason := ""
	if d.Comment != nil {
		reason = *d.Comment
	}
	mail := notification.LeaveDecisionEmail(notification.LeaveDecision{
		To:           l.Employee.Email,
		Username:     l.Employee.Username,
		StartDate:    l.StartDate,
		EndDate:      l.EndDate,
		Action:       d.Status,
		Reason:       reason,
		ReviewerName: d.Reviewer.Username,
		ReviewerRole: d.Reviewer.Role,
		ReviewedAt:   d.ReviewedAt,
	})

	if err := s.queue.Enqueue(context.WithoutCancel(ctx), nil, "leave", l.ID.String(), mail); err != nil {
		metrics.ObserveNotification("enqueue", "failed")
		s.logger.Error("decision mail enqueue failed",
			zap.String("request_id", contextutil.GetRequestID(ctx)),
			zap.String("leave_id", l.ID.String()),
			zap.Error(err),
		)
		return
	}
	metrics.ObserveNotification("enqueue", "succeeded")
}

func (s *service) GetBalance(ctx context.Context, caller identity.Caller) (BalanceResponse, error) {
	if caller.Role != identity.RoleEmployee {
		return BalanceResponse{}, apperror.ErrForbidden
	}
	if _, err := uuid.Parse(caller.IdentityID); err != nil {
		return BalanceResponse{}, leaveerrors.ErrEmployeeNotFound
	}

	e, err := s.repo.FindEmployee(ctx, caller.IdentityID)
	if err != nil {
		s.logger.Error("get leave balance failed", zap.String("request_id", contextutil.GetRequestID(ctx)), zap.Error(err))
		return BalanceResponse{}, mapEmployeeError(err)
	}

	return BalanceResponse{
		Quota:     e.LeaveQuota,
		Remaining: e.LeaveQuota - e.TotalTaken(),
		Earned:    BalanceBucket{Taken: e.EarnedTaken, Pending: e.EarnedPending},
		Sick:      BalanceBucket{Taken: e.SickTaken, Pending: e.SickPending},
		Casual:    BalanceBucket{Taken: e.CasualTaken, Pending: e.CasualPending},
	}, nil
}

func validateApplyRequest(employeeID string, req ApplyLeaveRequest) (uuid.UUID, time.Time, time.Time, error) {
	empUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return uuid.Nil, time.Time{}, time.Time{}, leaveerrors.ErrEmployeeNotFound
	}
	if !ValidLeaveType(req.LeaveType) {
		return uuid.Nil, time.Time{}, time.Time{}, leaveerrors.ErrInvalidLeaveType
	}
	if strings.TrimSpace(req.Reason) == "" {
		return uuid.Nil, time.Time{}, time.Time{}, leaveerrors.ErrReasonRequired
	}

	startDate, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return uuid.Nil, time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	endDate, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		return uuid.Nil, time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	if endDate.Before(startDate) {
		return uuid.Nil, time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateRange
	}

	return empUUID, startDate, endDate, nil
}

func mapToResponse(l Leave) LeaveResponse {
	resp := LeaveResponse{
		ID:         l.ID.String(),
		EmployeeID: l.EmployeeID.String(),
		LeaveType:  l.LeaveType,
		StartDate:  l.StartDate.Format(dateLayout),
		EndDate:    l.EndDate.Format(dateLayout),
		TotalDays:  l.TotalDays,
		Reason:     l.Reason,
		Status:     l.Status,
		ReviewedAt: l.ReviewedAt,
		Comment:    l.Comment,
		Latitude:   l.Latitude,
		Longitude:  l.Longitude,
		OriginIP:   l.OriginIP,
		AppliedAt:  l.AppliedAt,
	}
	if r := l.Reviewer(); r != nil {
		resp.ReviewedBy = &ReviewerResponse{Username: r.Username, Role: string(r.Role)}
	}
	if l.Employee != nil {
		resp.Employee = &LeaveEmployeeResponse{
			ID:         l.Employee.ID.String(),
			EmployeeID: l.Employee.EmployeeCode,
			Username:   l.Employee.Username,
			Email:      l.Employee.Email,
			Department: l.Employee.Department,
		}
	}
	return resp
}

func mapToListResponse(leaves []Leave) []LeaveResponse {
	res := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		res[i] = mapToResponse(l)
	}
	return res
}
