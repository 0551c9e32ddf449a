package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/untibullet/idea-hub/internal/models"
)

// ListProjects получает проекты с необязательными фильтрами: по владельцу
// (mine=true + ownerID) либо по тегу через JSONB-проверку вхождения.
// Каждая строка дополняется именем и аватаром владельца.
func (r *Repository) ListProjects(ctx context.Context, tag string, ownerID int64) ([]models.Project, error) {
	query := `
        SELECT p.id, p.owner_id, p.title, p.description, p.tags, p.domain, p.difficulty,
               p.required_roles, p.stage, p.repo_link, p.created_at, p.likes_count,
               u.full_name AS owner_name, u.avatar_url AS owner_avatar
        FROM projects p
        JOIN users u ON p.owner_id = u.id
    `
	var params []any

	if ownerID > 0 {
		params = append(params, ownerID)
		query += " WHERE p.owner_id = $1"
	} else if tag != "" {
		params = append(params, []string{tag})
		query += " WHERE p.tags @> $1"
	}
	query += " ORDER BY p.created_at DESC"

	rows, err := r.pool.Query(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		var p models.Project
		if err := rows.Scan(
			&p.ID, &p.OwnerID, &p.Title, &p.Description, &p.Tags, &p.Domain, &p.Difficulty,
			&p.RequiredRoles, &p.Stage, &p.RepoLink, &p.CreatedAt, &p.LikesCount,
			&p.OwnerName, &p.OwnerAvatar,
		); err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, p)
	}

	return projects, rows.Err()
}

// GetProjectDetail получает карточку проекта: сам проект, участников и задачи
func (r *Repository) GetProjectDetail(ctx context.Context, projectID int64) (*models.ProjectDetail, error) {
	projectQuery := `
        SELECT p.id, p.owner_id, p.title, p.description, p.tags, p.domain, p.difficulty,
               p.required_roles, p.stage, p.repo_link, p.created_at, p.likes_count,
               u.full_name AS owner_name
        FROM projects p
        JOIN users u ON p.owner_id = u.id
        WHERE p.id = $1
    `

	var p models.Project
	err := r.pool.QueryRow(ctx, projectQuery, projectID).Scan(
		&p.ID, &p.OwnerID, &p.Title, &p.Description, &p.Tags, &p.Domain, &p.Difficulty,
		&p.RequiredRoles, &p.Stage, &p.RepoLink, &p.CreatedAt, &p.LikesCount,
		&p.OwnerName,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	membersQuery := `
        SELECT pm.id, pm.project_id, pm.user_id, pm.role, pm.joined_at, u.full_name
        FROM project_members pm
        JOIN users u ON pm.user_id = u.id
        WHERE pm.project_id = $1
    `
	rows, err := r.pool.Query(ctx, membersQuery, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project members: %w", err)
	}
	defer rows.Close()

	members := []models.ProjectMember{}
	for rows.Next() {
		var m models.ProjectMember
		if err := rows.Scan(&m.ID, &m.ProjectID, &m.UserID, &m.Role, &m.JoinedAt, &m.FullName); err != nil {
			return nil, fmt.Errorf("failed to scan project member: %w", err)
		}
		members = append(members, m)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate project members: %w", err)
	}

	tasksQuery := `
        SELECT id, project_id, assigned_to, title, status, priority, created_at
        FROM tasks
        WHERE project_id = $1
    `
	taskRows, err := r.pool.Query(ctx, tasksQuery, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project tasks: %w", err)
	}
	defer taskRows.Close()

	tasks := []models.Task{}
	for taskRows.Next() {
		var t models.Task
		if err := taskRows.Scan(&t.ID, &t.ProjectID, &t.AssignedTo, &t.Title, &t.Status, &t.Priority, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := taskRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tasks: %w", err)
	}

	return &models.ProjectDetail{Project: &p, Members: members, Tasks: tasks}, nil
}

// CreateProject создает новый проект и возвращает его ID
func (r *Repository) CreateProject(ctx context.Context, p models.ProjectInput) (int64, error) {
	query := `
        INSERT INTO projects (owner_id, title, description, tags, domain, difficulty, required_roles, stage, repo_link)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING id
    `

	var id int64
	err := r.pool.QueryRow(ctx, query,
		p.OwnerID, p.Title, p.Description, p.Tags, p.Domain, p.Difficulty,
		p.RequiredRoles, p.Stage, p.RepoLink,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create project: %w", err)
	}

	return id, nil
}

// UpdateProject обновляет проект после проверки владельца.
// Проверка идентичности самозаявленная: переданный owner_id сравнивается
// с сохраненным, криптографической верификации нет.
func (r *Repository) UpdateProject(ctx context.Context, projectID int64, p models.ProjectInput) error {
	ownerID, err := r.getProjectOwner(ctx, projectID)
	if err != nil {
		return err
	}
	if ownerID != p.OwnerID {
		return ErrForbidden
	}

	query := `
        UPDATE projects
        SET title = $1, description = $2, tags = $3, domain = $4, difficulty = $5,
            required_roles = $6, stage = $7, repo_link = $8
        WHERE id = $9
    `
	_, err = r.pool.Exec(ctx, query,
		p.Title, p.Description, p.Tags, p.Domain, p.Difficulty,
		p.RequiredRoles, p.Stage, p.RepoLink, projectID,
	)
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}

	return nil
}

// DeleteProject удаляет проект после проверки владельца.
// Участники, задачи, заявки и чат удаляются каскадно на уровне схемы.
func (r *Repository) DeleteProject(ctx context.Context, projectID, userID int64) error {
	ownerID, err := r.getProjectOwner(ctx, projectID)
	if err != nil {
		return err
	}
	if ownerID != userID {
		return ErrForbidden
	}

	if _, err := r.pool.Exec(ctx, `DELETE FROM projects WHERE id = $1`, projectID); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	return nil
}

// getProjectOwner получает владельца проекта по его ID
func (r *Repository) getProjectOwner(ctx context.Context, projectID int64) (int64, error) {
	var ownerID int64
	err := r.pool.QueryRow(ctx, `SELECT owner_id FROM projects WHERE id = $1`, projectID).Scan(&ownerID)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get project owner: %w", err)
	}
	return ownerID, nil
}
