package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/untibullet/idea-hub/internal/models"
)

// CreateUser регистрирует нового пользователя.
// При дубликате email возвращает ErrAlreadyExists.
func (r *Repository) CreateUser(ctx context.Context, user models.User) (*models.User, error) {
	query := `
        INSERT INTO users (full_name, email, password_hash, role, skills, bio, portfolio_links, avatar_url, phone_number)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING id, full_name, role
    `

	created := &models.User{}
	err := r.pool.QueryRow(ctx, query,
		user.FullName, user.Email, user.PasswordHash, user.Role,
		user.Skills, user.Bio, user.PortfolioLinks, user.AvatarURL, user.PhoneNumber,
	).Scan(&created.ID, &created.FullName, &created.Role)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrAlreadyExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return created, nil
}

// GetUserByEmail получает пользователя по email вместе с хешем пароля
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
        SELECT id, full_name, email, password_hash, role, skills, bio, portfolio_links, avatar_url, phone_number, created_at
        FROM users
        WHERE email = $1
    `

	var user models.User
	err := r.pool.QueryRow(ctx, query, email).Scan(
		&user.ID, &user.FullName, &user.Email, &user.PasswordHash, &user.Role,
		&user.Skills, &user.Bio, &user.PortfolioLinks, &user.AvatarURL, &user.PhoneNumber, &user.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return &user, nil
}

// ListUsers получает пользователей с необязательными фильтрами по роли и навыку.
// Фильтр по навыку использует JSONB-проверку вхождения (skills @> [skill]).
func (r *Repository) ListUsers(ctx context.Context, role, skill string) ([]models.User, error) {
	query := `
        SELECT id, full_name, email, role, skills, bio, portfolio_links, avatar_url, phone_number, created_at
        FROM users
    `
	var conditions []string
	var params []any

	if role != "" && role != "All" {
		params = append(params, role)
		conditions = append(conditions, fmt.Sprintf("role = $%d", len(params)))
	}
	if skill != "" {
		params = append(params, []string{skill})
		conditions = append(conditions, fmt.Sprintf("skills @> $%d", len(params)))
	}

	for i, cond := range conditions {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.pool.Query(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(
			&u.ID, &u.FullName, &u.Email, &u.Role, &u.Skills,
			&u.Bio, &u.PortfolioLinks, &u.AvatarURL, &u.PhoneNumber, &u.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}

	return users, rows.Err()
}
