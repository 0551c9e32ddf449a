package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/untibullet/idea-hub/internal/models"
	"github.com/untibullet/idea-hub/internal/repository"
	"go.uber.org/zap"
)

// CreateTask создает задачу на Kanban-доске проекта
func (h *Handler) CreateTask(c echo.Context) error {
	h.logger.Info("CreateTask: начало обработки запроса")

	var req models.TaskInput
	if err := c.Bind(&req); err != nil {
		h.logger.Error("CreateTask: ошибка парсинга тела запроса", zap.Error(err))
		return c.JSON(http.StatusBadRequest, newErrorResponse(ErrCodeBadRequest, "invalid request body"))
	}

	if req.Status == "" {
		req.Status = models.TaskToDo
	}
	if req.Priority == "" {
		req.Priority = "Medium"
	}

	id, err := h.store.CreateTask(c.Request().Context(), req)
	if err != nil {
		h.logger.Error("CreateTask: ошибка создания задачи", zap.Error(err), zap.Int64("project_id", req.ProjectID))
		return c.JSON(http.StatusInternalServerError, newErrorResponse(ErrCodeInternal, "failed to create task"))
	}

	h.logger.Info("CreateTask: задача создана", zap.Int64("task_id", id), zap.Int64("project_id", req.ProjectID))
	return c.JSON(http.StatusOK, map[string]interface{}{"message": "Task added", "id": id})
}

// UpdateTaskStatus обновляет статус задачи. Участие в проекте не проверяется,
// статус принимается любой.
func (h *Handler) UpdateTaskStatus(c echo.Context) error {
	taskID, err := pathID(c, "task_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, newErrorResponse(ErrCodeBadRequest, "invalid task id"))
	}

	status := c.QueryParam("status")
	if status == "" {
		h.logger.Warn("UpdateTaskStatus: параметр status отсутствует", zap.Int64("task_id", taskID))
		return c.JSON(http.StatusBadRequest, newErrorResponse(ErrCodeBadRequest, "status parameter is required"))
	}

	h.logger.Info("UpdateTaskStatus: обновление статуса задачи", zap.Int64("task_id", taskID), zap.String("status", status))

	if err := h.store.UpdateTaskStatus(c.Request().Context(), taskID, status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.logger.Warn("UpdateTaskStatus: задача не найдена", zap.Int64("task_id", taskID))
			return c.JSON(http.StatusNotFound, newErrorResponse(ErrCodeNotFound, "task not found"))
		}
		h.logger.Error("UpdateTaskStatus: ошибка обновления статуса", zap.Error(err), zap.Int64("task_id", taskID))
		return c.JSON(http.StatusInternalServerError, newErrorResponse(ErrCodeInternal, "failed to update task status"))
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Status updated"})
}
