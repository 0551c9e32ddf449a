package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/untibullet/idea-hub/internal/models"
	"github.com/untibullet/idea-hub/internal/repository"
	"go.uber.org/zap"
)

// ListProjects получает проекты с фильтрами: mine=true&user_id=N — только
// проекты пользователя, tag=T — проекты с тегом
func (h *Handler) ListProjects(c echo.Context) error {
	tag := c.QueryParam("tag")

	var ownerID int64
	if c.QueryParam("mine") == "true" {
		id, err := queryID(c, "user_id")
		if err != nil {
			h.logger.Warn("ListProjects: некорректный user_id", zap.String("user_id", c.QueryParam("user_id")))
			return c.JSON(http.StatusBadRequest, newErrorResponse(ErrCodeBadRequest, "invalid user_id"))
		}
		ownerID = id
	}

	h.logger.Info("ListProjects: получение проектов", zap.String("tag", tag), zap.Int64("owner_id", ownerID))

	projects, err := h.store.ListProjects(c.Request().Context(), tag, ownerID)
	if err != nil {
		h.logger.Error("ListProjects: ошибка получения проектов", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, newErrorResponse(ErrCodeInternal, "failed to list projects"))
	}

	if projects == nil {
		projects = []models.Project{}
	}
	return c.JSON(http.StatusOK, projects)
}

// GetProjectDetail получает карточку проекта с участниками и задачами
func (h *Handler) GetProjectDetail(c echo.Context) error {
	projectID, err := pathID(c, "project_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, newErrorResponse(ErrCodeBadRequest, "invalid project id"))
	}

	h.logger.Info("GetProjectDetail: получение проекта", zap.Int64("project_id", projectID))

	detail, err := h.store.GetProjectDetail(c.Request().Context(), projectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.logger.Warn("GetProjectDetail: проект не найден", zap.Int64("project_id", projectID))
			return c.JSON(http.StatusNotFound, newErrorResponse(ErrCodeNotFound, "project not found"))
		}
		h.logger.Error("GetProjectDetail: ошибка получения проекта", zap.Error(err), zap.Int64("project_id", projectID))
		return c.JSON(http.StatusInternalServerError, newErrorResponse(ErrCodeInternal, "failed to get project"))
	}

	return c.JSON(http.StatusOK, detail)
}

// CreateProject создает новый проект
func (h *Handler) CreateProject(c echo.Context) error {
	h.logger.Info("CreateProject: начало обработки запроса")

	var req models.ProjectInput
	if err := c.Bind(&req); err != nil {
		h.logger.Error("CreateProject: ошибка парсинга тела запроса", zap.Error(err))
		return c.JSON(http.StatusBadRequest, newErrorResponse(ErrCodeBadRequest, "invalid request body"))
	}

	if req.Stage == "" {
		req.Stage = models.StageIdea
	}
	if req.Tags == nil {
		req.Tags = []string{}
	}
	if req.RequiredRoles == nil {
		req.RequiredRoles = []string{}
	}

	id, err := h.store.CreateProject(c.Request().Context(), req)
	if err != nil {
		h.logger.Error("CreateProject: ошибка создания проекта", zap.Error(err), zap.String("title", req.Title))
		return c.JSON(http.StatusInternalServerError, newErrorResponse(ErrCodeInternal, "failed to create project"))
	}

	h.logger.Info("CreateProject: проект создан", zap.Int64("project_id", id))
	return c.JSON(http.StatusOK, map[string]interface{}{"message": "Project created", "id": id})
}

// UpdateProject обновляет проект. Владелец подтверждается сравнением
// owner_id из тела запроса с сохраненным значением.
func (h *Handler) UpdateProject(c echo.Context) error {
	projectID, err := pathID(c, "project_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, newErrorResponse(ErrCodeBadRequest, "invalid project id"))
	}

	var req models.ProjectInput
	if err := c.Bind(&req); err != nil {
		h.logger.Error("UpdateProject: ошибка парсинга тела запроса", zap.Error(err))
		return c.JSON(http.StatusBadRequest, newErrorResponse(ErrCodeBadRequest, "invalid request body"))
	}

	h.logger.Info("UpdateProject: обновление проекта", zap.Int64("project_id", projectID))

	if err := h.store.UpdateProject(c.Request().Context(), projectID, req); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			h.logger.Warn("UpdateProject: проект не найден", zap.Int64("project_id", projectID))
			return c.JSON(http.StatusNotFound, newErrorResponse(ErrCodeNotFound, "project not found"))
		case errors.Is(err, repository.ErrForbidden):
			h.logger.Warn("UpdateProject: запрос не от владельца", zap.Int64("project_id", projectID), zap.Int64("owner_id", req.OwnerID))
			return c.JSON(http.StatusForbidden, newErrorResponse(ErrCodeForbidden, "not authorized"))
		default:
			h.logger.Error("UpdateProject: ошибка обновления проекта", zap.Error(err), zap.Int64("project_id", projectID))
			return c.JSON(http.StatusInternalServerError, newErrorResponse(ErrCodeInternal, "failed to update project"))
		}
	}

	h.logger.Info("UpdateProject: проект обновлен", zap.Int64("project_id", projectID))
	return c.JSON(http.StatusOK, map[string]string{"message": "Project updated"})
}

// DeleteProject удаляет проект вместе с зависимыми записями (каскад в схеме)
func (h *Handler) DeleteProject(c echo.Context) error {
	projectID, err := pathID(c, "project_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, newErrorResponse(ErrCodeBadRequest, "invalid project id"))
	}

	userID, err := queryID(c, "user_id")
	if err != nil {
		h.logger.Warn("DeleteProject: некорректный user_id", zap.String("user_id", c.QueryParam("user_id")))
		return c.JSON(http.StatusBadRequest, newErrorResponse(ErrCodeBadRequest, "invalid user_id"))
	}

	h.logger.Info("DeleteProject: удаление проекта", zap.Int64("project_id", projectID), zap.Int64("user_id", userID))

	if err := h.store.DeleteProject(c.Request().Context(), projectID, userID); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			h.logger.Warn("DeleteProject: проект не найден", zap.Int64("project_id", projectID))
			return c.JSON(http.StatusNotFound, newErrorResponse(ErrCodeNotFound, "project not found"))
		case errors.Is(err, repository.ErrForbidden):
			h.logger.Warn("DeleteProject: запрос не от владельца", zap.Int64("project_id", projectID), zap.Int64("user_id", userID))
			return c.JSON(http.StatusForbidden, newErrorResponse(ErrCodeForbidden, "not authorized"))
		default:
			h.logger.Error("DeleteProject: ошибка удаления проекта", zap.Error(err), zap.Int64("project_id", projectID))
			return c.JSON(http.StatusInternalServerError, newErrorResponse(ErrCodeInternal, "failed to delete project"))
		}
	}

	h.logger.Info("DeleteProject: проект удален", zap.Int64("project_id", projectID))
	return c.JSON(http.StatusOK, map[string]string{"message": "Project deleted"})
}
