package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/untibullet/idea-hub/internal/models"
)

// CreateApplication подает заявку на вступление в проект в статусе Pending.
// Членство на этом шаге не материализуется.
func (r *Repository) CreateApplication(ctx context.Context, a models.ApplicationInput) error {
	query := `
        INSERT INTO applications (project_id, applicant_id, role_applied_for, message)
        VALUES ($1, $2, $3, $4)
    `

	_, err := r.pool.Exec(ctx, query, a.ProjectID, a.ApplicantID, a.RoleAppliedFor, a.Message)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrAlreadyExists
		}
		return fmt.Errorf("failed to create application: %w", err)
	}

	return nil
}

// SetApplicationStatus переводит заявку в новый статус. Статус сохраняется
// как есть, без валидации значения и без запрета повторных переходов.
//
// Если новый статус — Accepted, в той же транзакции заявка материализуется
// в строку project_members, если такой строки еще нет. Повторный Accepted
// по той же заявке — no-op: пара (project_id, user_id) остается уникальной.
// Вставка идет через ON CONFLICT DO NOTHING, уникальный индекс служит
// страховкой от гонки двух одновременных Accepted.
func (r *Repository) SetApplicationStatus(ctx context.Context, applicationID int64, status string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var projectID, applicantID int64
	var roleAppliedFor string
	appQuery := `SELECT project_id, applicant_id, role_applied_for FROM applications WHERE id = $1`
	err = tx.QueryRow(ctx, appQuery, applicationID).Scan(&projectID, &applicantID, &roleAppliedFor)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to get application: %w", err)
	}

	_, err = tx.Exec(ctx, `UPDATE applications SET status = $1 WHERE id = $2`, status, applicationID)
	if err != nil {
		return fmt.Errorf("failed to update application status: %w", err)
	}

	if status == models.ApplicationAccepted {
		exists, err := memberExists(ctx, tx, projectID, applicantID)
		if err != nil {
			return err
		}
		if !exists {
			insertQuery := `
                INSERT INTO project_members (project_id, user_id, role)
                VALUES ($1, $2, $3)
                ON CONFLICT (project_id, user_id) DO NOTHING
            `
			if _, err := tx.Exec(ctx, insertQuery, projectID, applicantID, roleAppliedFor); err != nil {
				return fmt.Errorf("failed to add project member: %w", err)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// memberExists проверяет наличие строки членства внутри текущей транзакции
func memberExists(ctx context.Context, tx pgx.Tx, projectID, userID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM project_members WHERE project_id = $1 AND user_id = $2)`
	if err := tx.QueryRow(ctx, query, projectID, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check membership: %w", err)
	}
	return exists, nil
}

// ListUserApplications получает заявки пользователя с названиями проектов
func (r *Repository) ListUserApplications(ctx context.Context, userID int64) ([]models.Application, error) {
	query := `
        SELECT a.id, a.project_id, a.applicant_id, a.role_applied_for, a.status, a.message, a.created_at,
               p.title AS project_title
        FROM applications a
        JOIN projects p ON a.project_id = p.id
        WHERE a.applicant_id = $1
    `

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user applications: %w", err)
	}
	defer rows.Close()

	var apps []models.Application
	for rows.Next() {
		var a models.Application
		if err := rows.Scan(
			&a.ID, &a.ProjectID, &a.ApplicantID, &a.RoleAppliedFor, &a.Status, &a.Message, &a.CreatedAt,
			&a.ProjectTitle,
		); err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		apps = append(apps, a)
	}

	return apps, rows.Err()
}

// ListProjectApplications получает заявки на проект с профилями кандидатов
func (r *Repository) ListProjectApplications(ctx context.Context, projectID int64) ([]models.Application, error) {
	query := `
        SELECT a.id, a.project_id, a.applicant_id, a.role_applied_for, a.status, a.message, a.created_at,
               u.full_name, u.skills, u.bio
        FROM applications a
        JOIN users u ON a.applicant_id = u.id
        WHERE a.project_id = $1
    `

	rows, err := r.pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list project applications: %w", err)
	}
	defer rows.Close()

	var apps []models.Application
	for rows.Next() {
		var a models.Application
		if err := rows.Scan(
			&a.ID, &a.ProjectID, &a.ApplicantID, &a.RoleAppliedFor, &a.Status, &a.Message, &a.CreatedAt,
			&a.ApplicantName, &a.ApplicantSkills, &a.ApplicantBio,
		); err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		apps = append(apps, a)
	}

	return apps, rows.Err()
}
