package auth

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	autherrors "go-elms/internal/auth/errors"
	"go-elms/internal/identity"
	"go-elms/internal/notification"
	"go-elms/internal/shared/apperror"
	"go-elms/internal/shared/contextutil"

	"go.uber.org/zap"
)

// Authenticator is the credential side of one role's auth surface.
//
//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (identity.Caller, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}

type CredentialConfig struct {
	Role        identity.Role
	FrontendURL string
	// RequireApproval rejects accounts whose Approved flag is false.
	RequireApproval bool
}

type credentialService struct {
	db     *sql.DB
	store  identity.AccountStore
	queue  notification.Queue
	cfg    CredentialConfig
	now    identity.Clock
	logger *zap.Logger
}

func NewCredentialService(
	db *sql.DB,
	store identity.AccountStore,
	queue notification.Queue,
	cfg CredentialConfig,
	logger ...*zap.Logger,
) Authenticator {
	name := "auth." + cfg.Role.Slug() + ".service"
	l := zap.L().Named(name)
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named(name)
	}
	return &credentialService{db: db, store: store, queue: queue, cfg: cfg, now: identity.SystemClock, logger: l}
}

// NewCredentialServiceWithClock is NewCredentialService with a fixed clock.
func NewCredentialServiceWithClock(
	db *sql.DB,
	store identity.AccountStore,
	queue notification.Queue,
	cfg CredentialConfig,
	now identity.Clock,
	logger ...*zap.Logger,
) Authenticator {
	s := NewCredentialService(db, store, queue, cfg, logger...).(*credentialService)
	s.now = now
	return s
}

func (s *credentialService) Authenticate(ctx context.Context, email, password string) (identity.Caller, error) {
	acct, err := s.store.FindAccountByEmail(ctx, email)
	if errors.Is(err, identity.ErrAccountNotFound) {
		identity.VerifyPassword(nil, password)
		return identity.Caller{}, autherrors.ErrInvalidCredentials
	}
	if err != nil {
		s.logger.Error("authenticate lookup failed", zap.String("request_id", contextutil.GetRequestID(ctx)), zap.Error(err))
		return identity.Caller{}, apperror.Unavailable(err)
	}

	if !identity.VerifyPassword(acct.PasswordHash, password) {
		return identity.Caller{}, autherrors.ErrInvalidCredentials
	}

	if s.cfg.RequireApproval && !acct.Approved {
		return identity.Caller{}, autherrors.ErrNotApproved
	}

	return identity.Caller{
		Role:        s.cfg.Role,
		IdentityID:  acct.ID,
		DisplayName: acct.Username,
		Email:       acct.Email,
	}, nil
}

// RequestPasswordReset answers the same way whether or not the email is known.
func (s *credentialService) RequestPasswordReset(ctx context.Context, email string) error {
	rid := contextutil.GetRequestID(ctx)

	acct, err := s.store.FindAccountByEmail(ctx, email)
	if errors.Is(err, identity.ErrAccountNotFound) {
		s.logger.Info("password reset for unknown email ignored", zap.String("request_id", rid))
		return nil
	}
	if err != nil {
		s.logger.Error("password reset lookup failed", zap.String("request_id", rid), zap.Error(err))
		return apperror.Unavailable(err)
	}
	if s.cfg.RequireApproval && !acct.Approved {
		s.logger.Info("password reset for unapproved account ignored", zap.String("request_id", rid), zap.String("account_id", acct.ID))
		return nil
	}

	token, err := identity.NewResetToken(s.now())
	if err != nil {
		return apperror.ErrInternal
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("password reset begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return apperror.Unavailable(err)
	}
	defer tx.Rollback()

	if err := s.store.WithTx(tx).SaveResetToken(ctx, acct.ID, token.Digest, token.ExpiresAt); err != nil {
		s.logger.Error("password reset persist failed", zap.String("request_id", rid), zap.Error(err))
		return apperror.Unavailable(err)
	}

	link := notification.ResetLink(s.cfg.FrontendURL, s.cfg.Role, token.Plain)
	mail := notification.PasswordReset(s.cfg.Role, acct.Email, acct.Username, link)
	if err := s.queue.Enqueue(ctx, tx, s.cfg.Role.Slug(), acct.ID, mail); err != nil {
		s.logger.Error("password reset enqueue failed", zap.String("request_id", rid), zap.Error(err))
		return apperror.Unavailable(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("password reset commit failed", zap.String("request_id", rid), zap.Error(err))
		return apperror.Unavailable(err)
	}

	s.logger.Info("password reset issued", zap.String("request_id", rid), zap.String("account_id", acct.ID))
	return nil
}

func (s *credentialService) ResetPassword(ctx context.Context, token, newPassword string) error {
	rid := contextutil.GetRequestID(ctx)

	token = strings.TrimSpace(token)
	if token == "" {
		return autherrors.ErrInvalidToken
	}
	if len(newPassword) < identity.MinPasswordLength {
		return autherrors.ErrPasswordTooShort
	}

	digest := identity.DigestToken(token)
	acct, err := s.store.FindAccountByResetDigest(ctx, digest)
	if errors.Is(err, identity.ErrAccountNotFound) {
		return autherrors.ErrInvalidToken
	}
	if err != nil {
		s.logger.Error("reset password lookup failed", zap.String("request_id", rid), zap.Error(err))
		return apperror.Unavailable(err)
	}
	if !identity.TokenUsable(acct.ResetExpiresAt, s.now()) {
		return autherrors.ErrInvalidToken
	}
	if s.cfg.RequireApproval && !acct.Approved {
		return autherrors.ErrInvalidToken
	}

	hash, err := identity.HashPassword(newPassword)
	if err != nil {
		return apperror.ErrInternal
	}

	updated, err := s.store.SetPassword(ctx, acct.ID, digest, hash)
	if err != nil {
		s.logger.Error("reset password persist failed", zap.String("request_id", rid), zap.Error(err))
		return apperror.Unavailable(err)
	}
	if !updated {
		// consumed concurrently
		return autherrors.ErrInvalidToken
	}

	s.logger.Info("password reset completed", zap.String("request_id", rid), zap.String("account_id", acct.ID))
	return nil
}
