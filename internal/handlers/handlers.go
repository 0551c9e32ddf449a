package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/untibullet/idea-hub/internal/models"
	"go.uber.org/zap"
)

// Коды ошибок для API
const (
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeForbidden          = "FORBIDDEN"
	ErrCodeConflict           = "CONFLICT"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeBadRequest         = "BAD_REQUEST"
	ErrCodeInternal           = "INTERNAL"
)

// Store описывает операции хранилища, которые использует API.
// Реализуется repository.Repository; в тестах подменяется фейком.
type Store interface {
	CreateUser(ctx context.Context, user models.User) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context, role, skill string) ([]models.User, error)

	ListProjects(ctx context.Context, tag string, ownerID int64) ([]models.Project, error)
	GetProjectDetail(ctx context.Context, projectID int64) (*models.ProjectDetail, error)
	CreateProject(ctx context.Context, p models.ProjectInput) (int64, error)
	UpdateProject(ctx context.Context, projectID int64, p models.ProjectInput) error
	DeleteProject(ctx context.Context, projectID, userID int64) error

	CreateTask(ctx context.Context, t models.TaskInput) (int64, error)
	UpdateTaskStatus(ctx context.Context, taskID int64, status string) error

	CreateApplication(ctx context.Context, a models.ApplicationInput) error
	SetApplicationStatus(ctx context.Context, applicationID int64, status string) error
	ListUserApplications(ctx context.Context, userID int64) ([]models.Application, error)
	ListProjectApplications(ctx context.Context, projectID int64) ([]models.Application, error)

	CreateChatMessage(ctx context.Context, projectID, senderID int64, message string) (*models.MessageMeta, error)
	ListProjectChat(ctx context.Context, projectID int64) ([]models.ChatMessage, error)
	CreateDirectMessage(ctx context.Context, senderID, receiverID int64, message string) (*models.MessageMeta, error)
	GetConversation(ctx context.Context, userID, otherUserID int64) ([]models.DirectMessage, error)
	ListConversations(ctx context.Context, userID int64) ([]models.Conversation, error)
}

type Handler struct {
	store      Store
	logger     *zap.Logger
	bcryptCost int
}

// New создает новый экземпляр обработчика
func New(store Store, logger *zap.Logger, bcryptCost int) *Handler {
	return &Handler{
		store:      store,
		logger:     logger,
		bcryptCost: bcryptCost,
	}
}

// ErrorResponse представляет структуру ошибки API
type ErrorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// newErrorResponse создает стандартный ответ с ошибкой
func newErrorResponse(code, message string) ErrorResponse {
	var resp ErrorResponse
	resp.Error.Code = code
	resp.Error.Message = message
	return resp
}

// pathID извлекает числовой параметр пути
func pathID(c echo.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}

// queryID извлекает числовой параметр запроса
func queryID(c echo.Context, name string) (int64, error) {
	return strconv.ParseInt(c.QueryParam(name), 10, 64)
}

// Root отвечает на корневой запрос для проверки доступности API
func (h *Handler) Root(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"message": "Student Idea Hub V2 API Ready"})
}

// RegisterRoutes регистрирует все маршруты API
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Root)

	// Auth & Users
	e.POST("/auth/signup", h.Signup)
	e.POST("/auth/login", h.Login)
	e.GET("/users", h.ListUsers)
	e.GET("/users/:user_id/applications", h.ListUserApplications)

	// Projects
	e.GET("/projects", h.ListProjects)
	e.POST("/projects", h.CreateProject)
	e.GET("/projects/:project_id", h.GetProjectDetail)
	e.PUT("/projects/:project_id", h.UpdateProject)
	e.DELETE("/projects/:project_id", h.DeleteProject)
	e.GET("/projects/:project_id/applications", h.ListProjectApplications)

	// Project chat
	e.GET("/projects/:project_id/chat", h.GetProjectChat)
	e.POST("/projects/:project_id/chat", h.PostProjectChat)

	// Tasks (Kanban)
	e.POST("/tasks", h.CreateTask)
	e.PUT("/tasks/:task_id/status", h.UpdateTaskStatus)

	// Applications (Matchmaking)
	e.POST("/applications", h.SubmitApplication)
	e.PUT("/applications/:application_id/status", h.SetApplicationStatus)

	// Direct messages
	e.POST("/messages", h.SendDirectMessage)
	e.GET("/messages/conversations/list", h.ListConversations)
	e.GET("/messages/:other_user_id", h.GetConversation)
}
