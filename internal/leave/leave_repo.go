package leave

import (
	"context"
	"database/sql"

	"go-elms/internal/employee"
	"go-elms/internal/shared/dbtx"

	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *Leave) error
	FindByID(ctx context.Context, id string) (*Leave, error)
	FindByEmployee(ctx context.Context, employeeID string) ([]Leave, error)
	FindAll(ctx context.Context) ([]Leave, error)
	// Decide applies d only while the leave is still Pending and reports
	// whether this call made the transition.
	Decide(ctx context.Context, id string, d Decision) (bool, error)
	AdjustBalance(ctx context.Context, employeeID, leaveType string, takenDelta, pendingDelta int) error
	FindEmployee(ctx context.Context, employeeID string) (*employee.Employee, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	return dbtx.Conn(ctx, r.db, r.tx)
}

func (r *repository) Create(ctx context.Context, l *Leave) error {
	return r.conn(ctx).Omit("Employee").Create(l).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Leave, error) {
	var l Leave
	err := r.conn(ctx).
		Preload("Employee").
		First(&l, "id = ?", id).Error
	return &l, err
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID string) ([]Leave, error) {
	var leaves []Leave
	err := r.conn(ctx).
		Where("employee_id = ?", employeeID).
		Order("applied_at DESC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindAll(ctx context.Context) ([]Leave, error) {
	var leaves []Leave
	err := r.conn(ctx).
		Preload("Employee").
		Order("applied_at DESC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) Decide(ctx context.Context, id string, d Decision) (bool, error) {
	role := string(d.Reviewer.Role)
	res := r.conn(ctx).
		Model(&Leave{}).
		Where("id = ? AND status = ?", id, StatusPending).
		Updates(map[string]any{
			"status":               d.Status,
			"reviewed_by_username": d.Reviewer.Username,
			"reviewed_by_role":     role,
			"reviewed_at":          d.ReviewedAt,
			"comment":              d.Comment,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *repository) AdjustBalance(ctx context.Context, employeeID, leaveType string, takenDelta, pendingDelta int) error {
	prefix, ok := balancePrefix[leaveType]
	if !ok {
		return nil
	}
	taken := prefix + "_taken"
	pending := prefix + "_pending"
	return r.conn(ctx).
		Model(&employee.Employee{}).
		Where("id = ?", employeeID).
		Updates(map[string]any{
			taken:   gorm.Expr("GREATEST("+taken+" + ?, 0)", takenDelta),
			pending: gorm.Expr("GREATEST("+pending+" + ?, 0)", pendingDelta),
		}).Error
}

func (r *repository) FindEmployee(ctx context.Context, employeeID string) (*employee.Employee, error) {
	var e employee.Employee
	err := r.conn(ctx).First(&e, "id = ?", employeeID).Error
	return &e, err
}
