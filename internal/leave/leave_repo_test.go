package leave_test

import (
	"context"
	"testing"
	"time"

	"go-elms/internal/identity"
	"go-elms/internal/leave"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupRepoTest(t *testing.T) (leave.Repository, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{SkipDefaultTransaction: true})
	assert.NoError(t, err)
	return leave.NewRepository(gdb), mock
}

func TestLeaveRepository_Decide(t *testing.T) {
	ctx := context.Background()
	decision := leave.Decision{
		Status:     leave.StatusApproved,
		Reviewer:   leave.Reviewer{Username: "Hana", Role: identity.RoleHR},
		ReviewedAt: time.Date(2024, 2, 21, 9, 0, 0, 0, time.UTC),
	}
	const guarded = `UPDATE "leaves" SET .*"status"=\$5.* WHERE id = \$7 AND status = \$8`

	t.Run("updates only a pending leave", func(t *testing.T) {
		repo, mock := setupRepoTest(t)
		id := uuid.NewString()

		mock.ExpectExec(guarded).
			WithArgs(
				sqlmock.AnyArg(), sqlmock.AnyArg(), string(identity.RoleHR), "Hana",
				leave.StatusApproved, sqlmock.AnyArg(), id, leave.StatusPending,
			).
			WillReturnResult(sqlmock.NewResult(0, 1))

		won, err := repo.Decide(ctx, id, decision)
		assert.NoError(t, err)
		assert.True(t, won)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("already decided leave is not a win", func(t *testing.T) {
		repo, mock := setupRepoTest(t)
		id := uuid.NewString()

		mock.ExpectExec(guarded).WillReturnResult(sqlmock.NewResult(0, 0))

		won, err := repo.Decide(ctx, id, decision)
		assert.NoError(t, err)
		assert.False(t, won)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("storage error is returned", func(t *testing.T) {
		repo, mock := setupRepoTest(t)

		mock.ExpectExec(guarded).WillReturnError(assert.AnError)

		won, err := repo.Decide(ctx, uuid.NewString(), decision)
		assert.ErrorIs(t, err, assert.AnError)
		assert.False(t, won)
	})
}

func TestLeaveRepository_AdjustBalance(t *testing.T) {
	ctx := context.Background()

	t.Run("moves counters of the leave type floored at zero", func(t *testing.T) {
		repo, mock := setupRepoTest(t)
		employeeID := uuid.NewString()

		mock.ExpectExec(`UPDATE "employees" SET "sick_pending"=GREATEST\(sick_pending \+ \$1, 0\),"sick_taken"=GREATEST\(sick_taken \+ \$2, 0\),"updated_at"=\$3 WHERE id = \$4`).
			WithArgs(-3, 3, sqlmock.AnyArg(), employeeID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.AdjustBalance(ctx, employeeID, leave.TypeSick, 3, -3)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown leave type touches nothing", func(t *testing.T) {
		repo, mock := setupRepoTest(t)

		err := repo.AdjustBalance(ctx, uuid.NewString(), "Sabbatical", 1, 1)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
