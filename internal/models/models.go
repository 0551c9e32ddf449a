// models/models.go
package models

import "time"

// User представляет пользователя платформы.
// PasswordHash никогда не сериализуется в ответах API.
type User struct {
	ID             int64     `json:"id" db:"id"`
	FullName       string    `json:"full_name" db:"full_name"`
	Email          string    `json:"email" db:"email"`
	PasswordHash   string    `json:"-" db:"password_hash"`
	Role           string    `json:"role" db:"role"`
	Skills         []string  `json:"skills" db:"skills"`
	Bio            *string   `json:"bio" db:"bio"`
	PortfolioLinks []string  `json:"portfolio_links" db:"portfolio_links"`
	AvatarURL      *string   `json:"avatar_url" db:"avatar_url"`
	PhoneNumber    *string   `json:"phone_number" db:"phone_number"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

// Project представляет проект (идею) с метаданными для подбора участников
type Project struct {
	ID            int64     `json:"id" db:"id"`
	OwnerID       int64     `json:"owner_id" db:"owner_id"`
	Title         string    `json:"title" db:"title"`
	Description   string    `json:"description" db:"description"`
	Tags          []string  `json:"tags" db:"tags"`
	Domain        string    `json:"domain" db:"domain"`
	Difficulty    string    `json:"difficulty" db:"difficulty"`
	RequiredRoles []string  `json:"required_roles" db:"required_roles"`
	Stage         string    `json:"stage" db:"stage"`
	RepoLink      *string   `json:"repo_link" db:"repo_link"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	LikesCount    int       `json:"likes_count" db:"likes_count"`

	// Денормализованные поля владельца, заполняются только в списках
	OwnerName   string  `json:"owner_name,omitempty" db:"-"`
	OwnerAvatar *string `json:"owner_avatar,omitempty" db:"-"`
}

// ProjectInput представляет тело запроса на создание/обновление проекта
type ProjectInput struct {
	OwnerID       int64    `json:"owner_id"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Tags          []string `json:"tags"`
	Domain        string   `json:"domain"`
	Difficulty    string   `json:"difficulty"`
	RequiredRoles []string `json:"required_roles"`
	Stage         string   `json:"stage"`
	RepoLink      *string  `json:"repo_link"`
}

// ProjectMember представляет подтвержденное участие пользователя в проекте.
// Пара (project_id, user_id) уникальна: одна роль на проект.
type ProjectMember struct {
	ID        int64     `json:"id" db:"id"`
	ProjectID int64     `json:"project_id" db:"project_id"`
	UserID    int64     `json:"user_id" db:"user_id"`
	Role      string    `json:"role" db:"role"`
	JoinedAt  time.Time `json:"joined_at" db:"joined_at"`

	FullName string `json:"full_name,omitempty" db:"-"`
}

// ProjectDetail представляет карточку проекта с участниками и задачами
type ProjectDetail struct {
	Project *Project        `json:"project"`
	Members []ProjectMember `json:"members"`
	Tasks   []Task          `json:"tasks"`
}

// Task представляет задачу Kanban-доски проекта
type Task struct {
	ID         int64     `json:"id" db:"id"`
	ProjectID  int64     `json:"project_id" db:"project_id"`
	AssignedTo *int64    `json:"assigned_to" db:"assigned_to"`
	Title      string    `json:"title" db:"title"`
	Status     string    `json:"status" db:"status"`
	Priority   string    `json:"priority" db:"priority"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// TaskInput представляет тело запроса на создание задачи
type TaskInput struct {
	ProjectID  int64  `json:"project_id"`
	AssignedTo *int64 `json:"assigned_to"`
	Title      string `json:"title"`
	Status     string `json:"status"`
	Priority   string `json:"priority"`
}

// Application представляет заявку пользователя на вступление в проект
type Application struct {
	ID             int64     `json:"id" db:"id"`
	ProjectID      int64     `json:"project_id" db:"project_id"`
	ApplicantID    int64     `json:"applicant_id" db:"applicant_id"`
	RoleAppliedFor string    `json:"role_applied_for" db:"role_applied_for"`
	Status         string    `json:"status" db:"status"`
	Message        string    `json:"message" db:"message"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`

	// Денормализованные поля, заполняются только в списках заявок
	ProjectTitle    string   `json:"project_title,omitempty" db:"-"`
	ApplicantName   string   `json:"full_name,omitempty" db:"-"`
	ApplicantSkills []string `json:"skills,omitempty" db:"-"`
	ApplicantBio    *string  `json:"bio,omitempty" db:"-"`
}

// ApplicationInput представляет тело запроса на подачу заявки
type ApplicationInput struct {
	ProjectID      int64  `json:"project_id"`
	ApplicantID    int64  `json:"applicant_id"`
	RoleAppliedFor string `json:"role_applied_for"`
	Message        string `json:"message"`
}

// ChatMessage представляет сообщение в чате проекта (append-only лог)
type ChatMessage struct {
	ID        int64     `json:"id" db:"id"`
	ProjectID int64     `json:"project_id" db:"project_id"`
	SenderID  int64     `json:"sender_id" db:"sender_id"`
	Message   string    `json:"message" db:"message"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	SenderName   string  `json:"sender_name,omitempty" db:"-"`
	SenderAvatar *string `json:"sender_avatar,omitempty" db:"-"`
}

// MessageMeta представляет подтверждение записи сообщения
type MessageMeta struct {
	ID        int64     `json:"id" db:"id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// DirectMessage представляет личное сообщение между двумя пользователями.
// Диалог не хранится отдельной сущностью, он выводится из пары (sender, receiver).
type DirectMessage struct {
	ID         int64     `json:"id" db:"id"`
	SenderID   int64     `json:"sender_id" db:"sender_id"`
	ReceiverID int64     `json:"receiver_id" db:"receiver_id"`
	Message    string    `json:"message" db:"message"`
	IsRead     bool      `json:"is_read" db:"is_read"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`

	SenderName   string  `json:"sender_name,omitempty" db:"-"`
	SenderAvatar *string `json:"sender_avatar,omitempty" db:"-"`
	SenderPhone  *string `json:"sender_phone,omitempty" db:"-"`
}

// Conversation представляет сводку диалога с одним контактом
type Conversation struct {
	ContactID       int64      `json:"id" db:"id"`
	FullName        string     `json:"full_name" db:"full_name"`
	Role            string     `json:"role" db:"role"`
	AvatarURL       *string    `json:"avatar_url" db:"avatar_url"`
	PhoneNumber     *string    `json:"phone_number" db:"phone_number"`
	LastMessage     *string    `json:"last_message" db:"last_message"`
	LastMessageTime *time.Time `json:"last_message_time" db:"last_message_time"`
}

// Константы статусов заявки
const (
	ApplicationPending  = "Pending"
	ApplicationAccepted = "Accepted"
	ApplicationRejected = "Rejected"
)

// Константы стадий проекта
const (
	StageIdea      = "Idea"
	StagePrototype = "Prototype"
	StageMVP       = "MVP"
)

// Константы статусов задач
const (
	TaskToDo       = "To Do"
	TaskInProgress = "In Progress"
	TaskDone       = "Done"
)
