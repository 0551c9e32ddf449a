package repository

import (
	"context"
	"fmt"

	"github.com/untibullet/idea-hub/internal/models"
)

// CreateTask создает задачу на Kanban-доске проекта и возвращает ее ID
func (r *Repository) CreateTask(ctx context.Context, t models.TaskInput) (int64, error) {
	query := `
        INSERT INTO tasks (project_id, assigned_to, title, status, priority)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id
    `

	var id int64
	err := r.pool.QueryRow(ctx, query, t.ProjectID, t.AssignedTo, t.Title, t.Status, t.Priority).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create task: %w", err)
	}

	return id, nil
}

// UpdateTaskStatus обновляет статус задачи без проверки участия в проекте.
// Статус принимается как есть, значение не валидируется.
func (r *Repository) UpdateTaskStatus(ctx context.Context, taskID int64, status string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE tasks SET status = $1 WHERE id = $2`, status, taskID)
	if err != nil {
		return fmt.Errorf("failed to update task status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
