package hr

import (
	"context"
	"database/sql"
	"time"

	"go-elms/internal/shared/dbtx"

	"gorm.io/gorm"
)

//go:generate mockgen -source=hr_repo.go -destination=mock/hr_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, h *HR) error
	FindPending(ctx context.Context) ([]HR, error)
	FindPendingByID(ctx context.Context, id string) (*HR, error)
	// Approve and DeletePending only touch rows still awaiting review and
	// report whether this call changed one.
	Approve(ctx context.Context, id, tokenDigest string, expiresAt time.Time) (bool, error)
	DeletePending(ctx context.Context, id string) (bool, error)
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

func (r *repository) Create(ctx context.Context, h *HR) error {
	return r.conn(ctx).Create(h).Error
}

func (r *repository) FindPending(ctx context.Context) ([]HR, error) {
	var hrs []HR
	err := r.conn(ctx).
		Where("is_approved = ?", false).
		Order("created_at ASC").
		Find(&hrs).Error
	return hrs, err
}

func (r *repository) FindPendingByID(ctx context.Context, id string) (*HR, error) {
	var h HR
	err := r.conn(ctx).
		Where("is_approved = ?", false).
		First(&h, "id = ?", id).Error
	return &h, err
}

func (r *repository) Approve(ctx context.Context, id, tokenDigest string, expiresAt time.Time) (bool, error) {
	res := r.conn(ctx).
		Model(&HR{}).
		Where("id = ? AND is_approved = ?", id, false).
		Updates(map[string]any{
			"is_approved":            true,
			"reset_token_hash":       tokenDigest,
			"reset_token_expires_at": expiresAt,
		})
	return res.RowsAffected == 1, res.Error
}

func (r *repository) DeletePending(ctx context.Context, id string) (bool, error) {
	res := r.conn(ctx).
		Where("id = ? AND is_approved = ?", id, false).
		Delete(&HR{})
	return res.RowsAffected == 1, res.Error
}
