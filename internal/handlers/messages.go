package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// GetProjectChat получает сообщения чата проекта по возрастанию времени.
// Доступ не ограничен: чат читается по одному project_id.
func (h *Handler) GetProjectChat(c echo.Context) error {
	projectID, err := pathID(c, "project_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, newErrorResponse(ErrCodeBadRequest, "invalid project id"))
	}

	h.logger.Info("GetProjectChat: получение чата проекта", zap.Int64("project_id", projectID))

	messages, err := h.store.ListProjectChat(c.Request().Context(), projectID)
	if err != nil {
		h.logger.Error("GetProjectChat: ошибка получения чата", zap.Error(err), zap.Int64("project_id", projectID))
		return c.JSON(http.StatusInternalServerError, newErrorResponse(ErrCodeInternal, "failed to get project chat"))
	}

	return c.JSON(http.StatusOK, messages)
}

// PostProjectChat добавляет сообщение в чат проекта.
// project_id берется из пути, sender_id — из тела запроса.
func (h *Handler) PostProjectChat(c echo.Context) error {
	projectID, err := pathID(c, "project_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, newErrorResponse(ErrCodeBadRequest, "invalid project id"))
	}

	var req struct {
		ProjectID int64  `json:"project_id"`
		SenderID  int64  `json:"sender_id"`
		Message   string `json:"message"`
	}
	if err := c.Bind(&req); err != nil {
		h.logger.Error("PostProjectChat: ошибка парсинга тела запроса", zap.Error(err))
		return c.JSON(http.StatusBadRequest, newErrorResponse(ErrCodeBadRequest, "invalid request body"))
	}

	h.logger.Info("PostProjectChat: отправка сообщения в чат",
		zap.Int64("project_id", projectID),
		zap.Int64("sender_id", req.SenderID))

	meta, err := h.store.CreateChatMessage(c.Request().Context(), projectID, req.SenderID, req.Message)
	if err != nil {
		h.logger.Error("PostProjectChat: ошибка записи сообщения", zap.Error(err), zap.Int64("project_id", projectID))
		return c.JSON(http.StatusInternalServerError, newErrorResponse(ErrCodeInternal, "failed to post chat message"))
	}

	return c.JSON(http.StatusOK, meta)
}

// SendDirectMessage отправляет личное сообщение.
// Отправитель — самозаявленный user_id из параметров запроса.
func (h *Handler) SendDirectMessage(c echo.Context) error {
	senderID, err := queryID(c, "user_id")
	if err != nil {
		h.logger.Warn("SendDirectMessage: некорректный user_id", zap.String("user_id", c.QueryParam("user_id")))
		return c.JSON(http.StatusBadRequest, newErrorResponse(ErrCodeBadRequest, "invalid user_id"))
	}

	var req struct {
		ReceiverID int64  `json:"receiver_id"`
		Message    string `json:"message"`
	}
	if err := c.Bind(&req); err != nil {
		h.logger.Error("SendDirectMessage: ошибка парсинга тела запроса", zap.Error(err))
		return c.JSON(http.StatusBadRequest, newErrorResponse(ErrCodeBadRequest, "invalid request body"))
	}

	h.logger.Info("SendDirectMessage: отправка личного сообщения",
		zap.Int64("sender_id", senderID),
		zap.Int64("receiver_id", req.ReceiverID))

	meta, err := h.store.CreateDirectMessage(c.Request().Context(), senderID, req.ReceiverID, req.Message)
	if err != nil {
		h.logger.Error("SendDirectMessage: ошибка отправки сообщения", zap.Error(err), zap.Int64("sender_id", senderID))
		return c.JSON(http.StatusInternalServerError, newErrorResponse(ErrCodeInternal, "failed to send message"))
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":     "Message sent",
		"id":         meta.ID,
		"created_at": meta.CreatedAt,
	})
}

// GetConversation получает переписку с другим пользователем в обоих
// направлениях по возрастанию времени
func (h *Handler) GetConversation(c echo.Context) error {
	otherUserID, err := pathID(c, "other_user_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, newErrorResponse(ErrCodeBadRequest, "invalid other_user_id"))
	}

	userID, err := queryID(c, "user_id")
	if err != nil {
		h.logger.Warn("GetConversation: некорректный user_id", zap.String("user_id", c.QueryParam("user_id")))
		return c.JSON(http.StatusBadRequest, newErrorResponse(ErrCodeBadRequest, "invalid user_id"))
	}

	h.logger.Info("GetConversation: получение переписки",
		zap.Int64("user_id", userID),
		zap.Int64("other_user_id", otherUserID))

	messages, err := h.store.GetConversation(c.Request().Context(), userID, otherUserID)
	if err != nil {
		h.logger.Error("GetConversation: ошибка получения переписки", zap.Error(err), zap.Int64("user_id", userID))
		return c.JSON(http.StatusInternalServerError, newErrorResponse(ErrCodeInternal, "failed to get conversation"))
	}

	return c.JSON(http.StatusOK, messages)
}

// ListConversations получает сводку диалогов пользователя, новые сверху.
// Для пользователя без переписки возвращается пустой список.
func (h *Handler) ListConversations(c echo.Context) error {
	userID, err := queryID(c, "user_id")
	if err != nil {
		h.logger.Warn("ListConversations: некорректный user_id", zap.String("user_id", c.QueryParam("user_id")))
		return c.JSON(http.StatusBadRequest, newErrorResponse(ErrCodeBadRequest, "invalid user_id"))
	}

	h.logger.Info("ListConversations: получение списка диалогов", zap.Int64("user_id", userID))

	conversations, err := h.store.ListConversations(c.Request().Context(), userID)
	if err != nil {
		h.logger.Error("ListConversations: ошибка получения диалогов", zap.Error(err), zap.Int64("user_id", userID))
		return c.JSON(http.StatusInternalServerError, newErrorResponse(ErrCodeInternal, "failed to list conversations"))
	}

	h.logger.Info("ListConversations: диалоги получены",
		zap.Int64("user_id", userID),
		zap.Int("count", len(conversations)))
	return c.JSON(http.StatusOK, conversations)
}
