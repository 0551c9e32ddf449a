package repository

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"
	"github.com/untibullet/idea-hub/internal/models"
)

// Несовпадение самозаявленного owner_id с сохраненным прерывает обновление
func TestUpdateProjectForbiddenForNonOwner(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectQuery(`SELECT owner_id FROM projects`).
		WithArgs(int64(10)).
		WillReturnRows(pgxmock.NewRows([]string{"owner_id"}).AddRow(int64(1)))

	err := repo.UpdateProject(context.Background(), 10, models.ProjectInput{OwnerID: 2, Title: "x"})
	require.ErrorIs(t, err, ErrForbidden)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateProjectByOwner(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectQuery(`SELECT owner_id FROM projects`).
		WithArgs(int64(10)).
		WillReturnRows(pgxmock.NewRows([]string{"owner_id"}).AddRow(int64(1)))
	mock.ExpectExec(`UPDATE projects`).
		WithArgs("x", "d", []string{}, "Web", "Beginner", []string{}, "Idea", (*string)(nil), int64(10)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := repo.UpdateProject(context.Background(), 10, models.ProjectInput{
		OwnerID:       1,
		Title:         "x",
		Description:   "d",
		Tags:          []string{},
		Domain:        "Web",
		Difficulty:    "Beginner",
		RequiredRoles: []string{},
		Stage:         "Idea",
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteProjectNotFound(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectQuery(`SELECT owner_id FROM projects`).
		WithArgs(int64(99)).
		WillReturnError(pgx.ErrNoRows)

	err := repo.DeleteProject(context.Background(), 99, 1)
	require.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateTaskStatusNotFound(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectExec(`UPDATE tasks SET status`).
		WithArgs("Done", int64(77)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.UpdateTaskStatus(context.Background(), 77, "Done")
	require.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
