package repository

import (
	"context"
	"fmt"

	"github.com/untibullet/idea-hub/internal/models"
)

// CreateChatMessage добавляет сообщение в чат проекта и возвращает его метаданные
func (r *Repository) CreateChatMessage(ctx context.Context, projectID, senderID int64, message string) (*models.MessageMeta, error) {
	query := `
        INSERT INTO chats (project_id, sender_id, message)
        VALUES ($1, $2, $3)
        RETURNING id, created_at
    `

	meta := &models.MessageMeta{}
	err := r.pool.QueryRow(ctx, query, projectID, senderID, message).Scan(&meta.ID, &meta.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat message: %w", err)
	}

	return meta, nil
}

// ListProjectChat получает сообщения чата проекта по возрастанию created_at.
// Имя и аватар отправителя подтягиваются джойном на чтении, не хранятся.
func (r *Repository) ListProjectChat(ctx context.Context, projectID int64) ([]models.ChatMessage, error) {
	query := `
        SELECT c.id, c.project_id, c.sender_id, c.message, c.created_at,
               u.full_name AS sender_name, u.avatar_url AS sender_avatar
        FROM chats c
        JOIN users u ON c.sender_id = u.id
        WHERE c.project_id = $1
        ORDER BY c.created_at ASC
    `

	rows, err := r.pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list project chat: %w", err)
	}
	defer rows.Close()

	messages := []models.ChatMessage{}
	for rows.Next() {
		var m models.ChatMessage
		if err := rows.Scan(&m.ID, &m.ProjectID, &m.SenderID, &m.Message, &m.CreatedAt, &m.SenderName, &m.SenderAvatar); err != nil {
			return nil, fmt.Errorf("failed to scan chat message: %w", err)
		}
		messages = append(messages, m)
	}

	return messages, rows.Err()
}

// CreateDirectMessage отправляет личное сообщение и возвращает его метаданные
func (r *Repository) CreateDirectMessage(ctx context.Context, senderID, receiverID int64, message string) (*models.MessageMeta, error) {
	query := `
        INSERT INTO direct_messages (sender_id, receiver_id, message)
        VALUES ($1, $2, $3)
        RETURNING id, created_at
    `

	meta := &models.MessageMeta{}
	err := r.pool.QueryRow(ctx, query, senderID, receiverID, message).Scan(&meta.ID, &meta.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create direct message: %w", err)
	}

	return meta, nil
}

// GetConversation получает переписку двух пользователей в обоих направлениях
// по возрастанию created_at
func (r *Repository) GetConversation(ctx context.Context, userID, otherUserID int64) ([]models.DirectMessage, error) {
	query := `
        SELECT m.id, m.sender_id, m.receiver_id, m.message, m.is_read, m.created_at,
               u.full_name AS sender_name, u.avatar_url AS sender_avatar, u.phone_number AS sender_phone
        FROM direct_messages m
        JOIN users u ON m.sender_id = u.id
        WHERE (m.sender_id = $1 AND m.receiver_id = $2)
           OR (m.sender_id = $2 AND m.receiver_id = $1)
        ORDER BY m.created_at ASC
    `

	rows, err := r.pool.Query(ctx, query, userID, otherUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get conversation: %w", err)
	}
	defer rows.Close()

	messages := []models.DirectMessage{}
	for rows.Next() {
		var m models.DirectMessage
		if err := rows.Scan(
			&m.ID, &m.SenderID, &m.ReceiverID, &m.Message, &m.IsRead, &m.CreatedAt,
			&m.SenderName, &m.SenderAvatar, &m.SenderPhone,
		); err != nil {
			return nil, fmt.Errorf("failed to scan direct message: %w", err)
		}
		messages = append(messages, m)
	}

	return messages, rows.Err()
}

// ListConversations строит сводку диалогов пользователя: по одному контакту
// на каждого собеседника, с последним сообщением и его временем, новые сверху.
//
// Сначала вычисляется множество контактов; если оно пустое, дальнейших
// запросов нет. Затем для контактов одним запросом подтягиваются профили и
// коррелированные подзапросы последнего сообщения. Линейный фан-аут по числу
// контактов — кандидат на оконный агрегат при росте нагрузки.
func (r *Repository) ListConversations(ctx context.Context, userID int64) ([]models.Conversation, error) {
	contactsQuery := `
        SELECT DISTINCT
            CASE WHEN sender_id = $1 THEN receiver_id ELSE sender_id END AS contact_id
        FROM direct_messages
        WHERE sender_id = $1 OR receiver_id = $1
    `

	rows, err := r.pool.Query(ctx, contactsQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get contacts: %w", err)
	}

	var contactIDs []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan contact id: %w", err)
		}
		contactIDs = append(contactIDs, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate contacts: %w", err)
	}

	if len(contactIDs) == 0 {
		return []models.Conversation{}, nil
	}

	summaryQuery := `
        SELECT u.id, u.full_name, u.role, u.avatar_url, u.phone_number,
            (SELECT m.message FROM direct_messages m
             WHERE (m.sender_id = u.id AND m.receiver_id = $1) OR (m.sender_id = $1 AND m.receiver_id = u.id)
             ORDER BY m.created_at DESC LIMIT 1) AS last_message,
            (SELECT m.created_at FROM direct_messages m
             WHERE (m.sender_id = u.id AND m.receiver_id = $1) OR (m.sender_id = $1 AND m.receiver_id = u.id)
             ORDER BY m.created_at DESC LIMIT 1) AS last_message_time
        FROM users u
        WHERE u.id = ANY($2)
        ORDER BY last_message_time DESC
    `

	summaryRows, err := r.pool.Query(ctx, summaryQuery, userID, contactIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get conversation summaries: %w", err)
	}
	defer summaryRows.Close()

	conversations := []models.Conversation{}
	for summaryRows.Next() {
		var c models.Conversation
		if err := summaryRows.Scan(
			&c.ContactID, &c.FullName, &c.Role, &c.AvatarURL, &c.PhoneNumber,
			&c.LastMessage, &c.LastMessageTime,
		); err != nil {
			return nil, fmt.Errorf("failed to scan conversation: %w", err)
		}
		conversations = append(conversations, c)
	}

	return conversations, summaryRows.Err()
}
