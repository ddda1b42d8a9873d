package store

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"

	"employee-api/internal/apperror"
	"employee-api/internal/db"
	"employee-api/internal/logging"
)

func newPostgresMock(t *testing.T) (*GormStore, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	database, err := db.Open(postgres.New(postgres.Config{Conn: conn}), logging.Discard())
	require.NoError(t, err)

	return NewGormStore(database), mock
}

func TestGormCreateMapsDatabaseErrors(t *testing.T) {
	tests := []struct {
		desc    string
		mockErr error
		code    apperror.Code
	}{
		{"unique violation", &pgconn.PgError{Code: "23505"}, apperror.CodeConflict},
		{"not null violation", &pgconn.PgError{Code: "23502"}, apperror.CodeValidation},
		{"other postgres error", &pgconn.PgError{Code: "57014"}, apperror.CodeInternal},
	}

	for i, tc := range tests {
		s, mock := newPostgresMock(t)

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "employees"`)).
			WithArgs("Bilbo Baggins", "burglar").
			WillReturnError(tc.mockErr)
		mock.ExpectRollback()

		_, err := s.Create(context.Background(), Fields{Name: "Bilbo Baggins", Role: "burglar"})
		assert.Equal(t, tc.code, apperror.GetCode(err), "TEST[%d], failed.\n%s", i, tc.desc)
		assert.NoError(t, mock.ExpectationsWereMet(), "TEST[%d], failed.\n%s", i, tc.desc)
	}
}

func TestGormDeleteIssuesSingleStatement(t *testing.T) {
	s, mock := newPostgresMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "employees" WHERE "employees"."id" = $1`)).
		WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	require.NoError(t, s.Delete(context.Background(), 7))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormUpsertCreateAdvancesSequence(t *testing.T) {
	s, mock := newPostgresMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "employees" WHERE "employees"."id" = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "role"}))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "employees"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectExec(regexp.QuoteMeta(
		`SELECT setval(pg_get_serial_sequence('employees', 'id'), GREATEST($1, (SELECT last_value FROM employees_id_seq)))`,
	)).
		WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	employee, created, err := s.Upsert(context.Background(), 7, Fields{Name: "Samwise Gamgee", Role: "gardener"})
	require.NoError(t, err)
	assert.True(t, created)
	assert.EqualValues(t, 7, employee.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormUpsertReplaceSkipsSequence(t *testing.T) {
	s, mock := newPostgresMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "employees" WHERE "employees"."id" = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "role"}).AddRow(3, "Samwise Gamgee", "gardener"))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "employees" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	employee, created, err := s.Upsert(context.Background(), 3, Fields{Name: "Samwise Gamgee", Role: "ring bearer"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "ring bearer", employee.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}
