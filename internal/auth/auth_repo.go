package auth

import (
	"context"
	"database/sql"
	"time"

	"go-elms/internal/identity"
	"go-elms/internal/shared/dbtx"

	"gorm.io/gorm"
)

// AccountTable names the table behind one role and, for roles that need
// it, the boolean column gating authentication.
type AccountTable struct {
	Name           string
	ApprovalColumn string
}

type accountStore struct {
	db    *gorm.DB
	tx    *sql.Tx
	table AccountTable
}

func NewAccountStore(db *gorm.DB, table AccountTable) identity.AccountStore {
	return &accountStore{db: db, table: table}
}

func (s *accountStore) WithTx(tx *sql.Tx) identity.AccountStore {
	return &accountStore{db: s.db, tx: tx, table: s.table}
}

func (s *accountStore) selectColumns() string {
	approved := "TRUE"
	if s.table.ApprovalColumn != "" {
		approved = s.table.ApprovalColumn
	}
	return "id, username, email, password_hash, " + approved + " AS approved, reset_token_expires_at"
}

func (s *accountStore) find(ctx context.Context, column, value string) (identity.Account, error) {
	var rows []accountRow
	err := dbtx.Conn(ctx, s.db, s.tx).
		Table(s.table.Name).
		Select(s.selectColumns()).
		Where(column+" = ?", value).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return identity.Account{}, err
	}
	if len(rows) == 0 {
		return identity.Account{}, identity.ErrAccountNotFound
	}

	row := rows[0]
	return identity.Account{
		ID:             row.ID,
		Username:       row.Username,
		Email:          row.Email,
		PasswordHash:   row.PasswordHash,
		Approved:       row.Approved,
		ResetExpiresAt: row.ResetTokenExpiresAt,
	}, nil
}

func (s *accountStore) FindAccountByEmail(ctx context.Context, email string) (identity.Account, error) {
	return s.find(ctx, "email", identity.NormalizeEmail(email))
}

func (s *accountStore) FindAccountByResetDigest(ctx context.Context, digest string) (identity.Account, error) {
	return s.find(ctx, "reset_token_hash", digest)
}

func (s *accountStore) SaveResetToken(ctx context.Context, id, digest string, expiresAt time.Time) error {
	return dbtx.Conn(ctx, s.db, s.tx).
		Table(s.table.Name).
		Where("id = ?", id).
		Updates(map[string]any{
			"reset_token_hash":       digest,
			"reset_token_expires_at": expiresAt,
		}).Error
}

func (s *accountStore) SetPassword(ctx context.Context, id, digest, hash string) (bool, error) {
	res := dbtx.Conn(ctx, s.db, s.tx).
		Table(s.table.Name).
		Where("id = ? AND reset_token_hash = ?", id, digest).
		Updates(map[string]any{
			"password_hash":          hash,
			"reset_token_hash":       nil,
			"reset_token_expires_at": nil,
		})
	return res.RowsAffected == 1, res.Error
}
