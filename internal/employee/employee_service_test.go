package employee_test

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"go-elms/internal/employee"
	employeeerrors "go-elms/internal/employee/errors"
	"go-elms/internal/identity"
	"go-elms/internal/notification"
	notificationMock "go-elms/internal/notification/mock"
	"go-elms/internal/shared/apperror"
	counterMock "go-elms/internal/shared/counter/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type fakeRepo struct {
	createFn  func(ctx context.Context, e *employee.Employee) error
	findAllFn func(ctx context.Context) ([]employee.Employee, error)
	findFn    func(ctx context.Context, id string) (*employee.Employee, error)
	txSeen    *sql.Tx
}

func (f *fakeRepo) WithTx(tx *sql.Tx) employee.Repository {
	f.txSeen = tx
	return f
}
func (f *fakeRepo) Create(ctx context.Context, e *employee.Employee) error {
	return f.createFn(ctx, e)
}
func (f *fakeRepo) FindAll(ctx context.Context) ([]employee.Employee, error) {
	return f.findAllFn(ctx)
}
func (f *fakeRepo) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	return f.findFn(ctx, id)
}

type serviceDeps struct {
	sqlMock sqlmock.Sqlmock
	repo    *fakeRepo
	counter *counterMock.MockRepository
	queue   *notificationMock.MockQueue
	service employee.Service
}

func setupServiceTest(t *testing.T) *serviceDeps {
	t.Helper()
	ctrl := gomock.NewController(t)

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	deps := &serviceDeps{
		sqlMock: sqlMock,
		repo:    &fakeRepo{},
		counter: counterMock.NewMockRepository(ctrl),
		queue:   notificationMock.NewMockQueue(ctrl),
	}
	svc := employee.NewService(db, deps.repo, deps.counter, deps.queue, "https://elms.io")
	now := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)
	deps.service = employee.WithClock(svc, func() time.Time { return now })
	return deps
}

func validRequest() employee.ProvisionEmployeeRequest {
	return employee.ProvisionEmployeeRequest{
		Username:   "Eli Tan",
		Email:      "Eli.Tan@Corp.io",
		Phone:      "0812345",
		Gender:     "Female",
		Department: "Finance",
	}
}

func TestEmployeeService_Provision(t *testing.T) {
	ctx := context.Background()

	t.Run("success - generates employee id and queues invite", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		deps.counter.EXPECT().
			GetNextValue(ctx, employee.CounterEmployeeID).
			Return(int64(42), nil)

		var stored *employee.Employee
		deps.repo.createFn = func(_ context.Context, e *employee.Employee) error {
			stored = e
			return nil
		}

		deps.queue.EXPECT().
			Enqueue(ctx, gomock.Any(), "employee", gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, tx *sql.Tx, _ string, aggregateID string, mail notification.Email) error {
				assert.NotNil(t, tx)
				assert.Equal(t, stored.ID.String(), aggregateID)
				assert.Equal(t, "eli.tan@corp.io", mail.To)
				assert.Contains(t, mail.Body, "https://elms.io/employee/reset-password/")

				token := strings.Fields(mail.Body[strings.Index(mail.Body, "/reset-password/")+len("/reset-password/"):])[0]
				assert.Equal(t, identity.DigestToken(token), *stored.ResetTokenHash)
				return nil
			})

		resp, err := deps.service.Provision(ctx, validRequest())

		assert.NoError(t, err)
		assert.Equal(t, "EMP-000042", resp.EmployeeID)
		assert.Equal(t, "eli.tan@corp.io", resp.Email)
		assert.Equal(t, employee.DefaultLeaveQuota, resp.LeaveQuota)
		assert.Nil(t, stored.PasswordHash)
		assert.Equal(t, time.Date(2026, 2, 1, 8, 15, 0, 0, time.UTC), *stored.ResetTokenExpiresAt)
		assert.NotNil(t, deps.repo.txSeen)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("success - keeps supplied employee id", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		deps.repo.createFn = func(_ context.Context, e *employee.Employee) error { return nil }
		deps.queue.EXPECT().Enqueue(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		req := validRequest()
		req.EmployeeID = " FIN-7 "
		resp, err := deps.service.Provision(ctx, req)

		assert.NoError(t, err)
		assert.Equal(t, "FIN-7", resp.EmployeeID)
	})

	t.Run("conflict - duplicate email", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		deps.counter.EXPECT().GetNextValue(gomock.Any(), gomock.Any()).Return(int64(1), nil)
		deps.repo.createFn = func(_ context.Context, e *employee.Employee) error {
			return &pgconn.PgError{Code: "23505", ConstraintName: "uq_employee_email"}
		}

		_, err := deps.service.Provision(ctx, validRequest())

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeAlreadyExists)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("conflict - duplicate employee id", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		deps.repo.createFn = func(_ context.Context, e *employee.Employee) error {
			return &pgconn.PgError{Code: "23505", ConstraintName: "uq_employee_code"}
		}

		req := validRequest()
		req.EmployeeID = "EMP-000001"
		_, err := deps.service.Provision(ctx, req)

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeIDAlreadyExists)
	})

	t.Run("error - outbox failure rolls back", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		deps.counter.EXPECT().GetNextValue(gomock.Any(), gomock.Any()).Return(int64(3), nil)
		deps.repo.createFn = func(_ context.Context, e *employee.Employee) error { return nil }
		deps.queue.EXPECT().
			Enqueue(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("outbox down"))

		_, err := deps.service.Provision(ctx, validRequest())

		assert.True(t, apperror.Is(err, apperror.CodeServiceUnavailable))
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("error - counter unavailable", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.counter.EXPECT().GetNextValue(gomock.Any(), gomock.Any()).Return(int64(0), errors.New("db down"))

		_, err := deps.service.Provision(ctx, validRequest())

		assert.True(t, apperror.Is(err, apperror.CodeServiceUnavailable))
	})
}

func TestEmployeeService_GetAll(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.findAllFn = func(context.Context) ([]employee.Employee, error) {
			return []employee.Employee{
				{EmployeeCode: "EMP-000002", Username: "Bo", Email: "bo@corp.io"},
				{EmployeeCode: "EMP-000001", Username: "Al", Email: "al@corp.io"},
			}, nil
		}

		resp, err := deps.service.GetAll(ctx)

		assert.NoError(t, err)
		assert.Len(t, resp, 2)
		assert.Equal(t, "EMP-000002", resp[0].EmployeeID)
	})

	t.Run("storage failure hides details", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.findAllFn = func(context.Context) ([]employee.Employee, error) {
			return nil, errors.New("dial tcp 10.0.0.5:5432: connection refused")
		}

		_, err := deps.service.GetAll(ctx)

		httpErr := apperror.ToHTTP(err)
		assert.Equal(t, 503, httpErr.Status)
		assert.NotContains(t, httpErr.Message, "10.0.0.5")
	})
}
