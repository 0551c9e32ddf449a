package repository

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"
	"github.com/untibullet/idea-hub/internal/models"
)

func newMockRepo(t *testing.T) (pgxmock.PgxPoolIface, *Repository) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })
	return mock, New(mock)
}

func TestSetApplicationStatusAcceptedMaterializesMembership(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT project_id, applicant_id, role_applied_for FROM applications`).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{"project_id", "applicant_id", "role_applied_for"}).
			AddRow(int64(1), int64(2), "Frontend"))
	mock.ExpectExec(`UPDATE applications SET status`).
		WithArgs(models.ApplicationAccepted, int64(7)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(int64(1), int64(2)).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec(`INSERT INTO project_members`).
		WithArgs(int64(1), int64(2), "Frontend").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	err := repo.SetApplicationStatus(context.Background(), 7, models.ApplicationAccepted)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

// Повторный Accepted по той же заявке не создает вторую строку членства
func TestSetApplicationStatusAcceptedIdempotent(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT project_id, applicant_id, role_applied_for FROM applications`).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{"project_id", "applicant_id", "role_applied_for"}).
			AddRow(int64(1), int64(2), "Frontend"))
	mock.ExpectExec(`UPDATE applications SET status`).
		WithArgs(models.ApplicationAccepted, int64(7)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(int64(1), int64(2)).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectCommit()

	err := repo.SetApplicationStatus(context.Background(), 7, models.ApplicationAccepted)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

// Любой статус кроме Accepted сохраняется без обращения к project_members
func TestSetApplicationStatusRejectedSkipsLedger(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT project_id, applicant_id, role_applied_for FROM applications`).
		WithArgs(int64(9)).
		WillReturnRows(pgxmock.NewRows([]string{"project_id", "applicant_id", "role_applied_for"}).
			AddRow(int64(1), int64(2), "Backend"))
	mock.ExpectExec(`UPDATE applications SET status`).
		WithArgs(models.ApplicationRejected, int64(9)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	err := repo.SetApplicationStatus(context.Background(), 9, models.ApplicationRejected)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSetApplicationStatusNotFound(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT project_id, applicant_id, role_applied_for FROM applications`).
		WithArgs(int64(404)).
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectRollback()

	err := repo.SetApplicationStatus(context.Background(), 404, models.ApplicationAccepted)
	require.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

// Ошибка на вставке членства откатывает и смену статуса: операция атомарна
func TestSetApplicationStatusRollsBackOnMemberInsertFailure(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT project_id, applicant_id, role_applied_for FROM applications`).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{"project_id", "applicant_id", "role_applied_for"}).
			AddRow(int64(1), int64(2), "Frontend"))
	mock.ExpectExec(`UPDATE applications SET status`).
		WithArgs(models.ApplicationAccepted, int64(7)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(int64(1), int64(2)).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec(`INSERT INTO project_members`).
		WithArgs(int64(1), int64(2), "Frontend").
		WillReturnError(&pgconn.PgError{Code: "57014"})
	mock.ExpectRollback()

	err := repo.SetApplicationStatus(context.Background(), 7, models.ApplicationAccepted)
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateApplicationInsertsPending(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectExec(`INSERT INTO applications`).
		WithArgs(int64(1), int64(2), "Frontend", "hi").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := repo.CreateApplication(context.Background(), models.ApplicationInput{
		ProjectID:      1,
		ApplicantID:    2,
		RoleAppliedFor: "Frontend",
		Message:        "hi",
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

// Нарушение уникальности при подаче транслируется в ErrAlreadyExists
func TestCreateApplicationDuplicateMapsToConflict(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectExec(`INSERT INTO applications`).
		WithArgs(int64(1), int64(2), "Frontend", "hi").
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := repo.CreateApplication(context.Background(), models.ApplicationInput{
		ProjectID:      1,
		ApplicantID:    2,
		RoleAppliedFor: "Frontend",
		Message:        "hi",
	})
	require.ErrorIs(t, err, ErrAlreadyExists)
	require.NoError(t, mock.ExpectationsWereMet())
}
