package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/untibullet/idea-hub/internal/models"
	"github.com/untibullet/idea-hub/internal/repository"
	"go.uber.org/zap"
)

// SubmitApplication подает заявку на вступление в проект.
//
// Отказ хранилища (например, повторная подача) возвращается мягко: HTTP 200
// с телом {"error": ...}, чтобы ожидаемый дубль не ломал клиентский поток.
// Жесткие ошибки этот маршрут не отдает.
func (h *Handler) SubmitApplication(c echo.Context) error {
	h.logger.Info("SubmitApplication: начало обработки запроса")

	var req models.ApplicationInput
	if err := c.Bind(&req); err != nil {
		h.logger.Error("SubmitApplication: ошибка парсинга тела запроса", zap.Error(err))
		return c.JSON(http.StatusBadRequest, newErrorResponse(ErrCodeBadRequest, "invalid request body"))
	}

	h.logger.Info("SubmitApplication: подача заявки",
		zap.Int64("project_id", req.ProjectID),
		zap.Int64("applicant_id", req.ApplicantID),
		zap.String("role", req.RoleAppliedFor))

	if err := h.store.CreateApplication(c.Request().Context(), req); err != nil {
		h.logger.Warn("SubmitApplication: заявка отклонена хранилищем",
			zap.Error(err),
			zap.Int64("project_id", req.ProjectID),
			zap.Int64("applicant_id", req.ApplicantID))
		return c.JSON(http.StatusOK, map[string]string{"error": err.Error()})
	}

	h.logger.Info("SubmitApplication: заявка подана",
		zap.Int64("project_id", req.ProjectID),
		zap.Int64("applicant_id", req.ApplicantID))
	return c.JSON(http.StatusOK, map[string]string{"message": "Application sent"})
}

// SetApplicationStatus переводит заявку в новый статус; при Accepted
// заявитель идемпотентно становится участником проекта.
//
// Значение статуса не валидируется и терминальность не проверяется:
// переходы намеренно разрешены любые, побочный эффект дает только
// точное совпадение со статусом Accepted.
func (h *Handler) SetApplicationStatus(c echo.Context) error {
	applicationID, err := pathID(c, "application_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, newErrorResponse(ErrCodeBadRequest, "invalid application id"))
	}

	status := c.QueryParam("status")
	if status == "" {
		h.logger.Warn("SetApplicationStatus: параметр status отсутствует", zap.Int64("application_id", applicationID))
		return c.JSON(http.StatusBadRequest, newErrorResponse(ErrCodeBadRequest, "status parameter is required"))
	}

	h.logger.Info("SetApplicationStatus: смена статуса заявки",
		zap.Int64("application_id", applicationID),
		zap.String("status", status))

	if err := h.store.SetApplicationStatus(c.Request().Context(), applicationID, status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.logger.Warn("SetApplicationStatus: заявка не найдена", zap.Int64("application_id", applicationID))
			return c.JSON(http.StatusNotFound, newErrorResponse(ErrCodeNotFound, "application not found"))
		}
		h.logger.Error("SetApplicationStatus: ошибка смены статуса", zap.Error(err), zap.Int64("application_id", applicationID))
		return c.JSON(http.StatusInternalServerError, newErrorResponse(ErrCodeInternal, "failed to update application status"))
	}

	h.logger.Info("SetApplicationStatus: статус заявки обновлен",
		zap.Int64("application_id", applicationID),
		zap.String("status", status))
	return c.JSON(http.StatusOK, map[string]string{"message": fmt.Sprintf("Application %s", status)})
}

// ListUserApplications получает заявки пользователя с названиями проектов
func (h *Handler) ListUserApplications(c echo.Context) error {
	userID, err := pathID(c, "user_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, newErrorResponse(ErrCodeBadRequest, "invalid user id"))
	}

	h.logger.Info("ListUserApplications: получение заявок пользователя", zap.Int64("user_id", userID))

	apps, err := h.store.ListUserApplications(c.Request().Context(), userID)
	if err != nil {
		h.logger.Error("ListUserApplications: ошибка получения заявок", zap.Error(err), zap.Int64("user_id", userID))
		return c.JSON(http.StatusInternalServerError, newErrorResponse(ErrCodeInternal, "failed to list applications"))
	}

	if apps == nil {
		apps = []models.Application{}
	}
	return c.JSON(http.StatusOK, apps)
}

// ListProjectApplications получает заявки на проект с профилями кандидатов
func (h *Handler) ListProjectApplications(c echo.Context) error {
	projectID, err := pathID(c, "project_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, newErrorResponse(ErrCodeBadRequest, "invalid project id"))
	}

	h.logger.Info("ListProjectApplications: получение заявок проекта", zap.Int64("project_id", projectID))

	apps, err := h.store.ListProjectApplications(c.Request().Context(), projectID)
	if err != nil {
		h.logger.Error("ListProjectApplications: ошибка получения заявок", zap.Error(err), zap.Int64("project_id", projectID))
		return c.JSON(http.StatusInternalServerError, newErrorResponse(ErrCodeInternal, "failed to list applications"))
	}

	if apps == nil {
		apps = []models.Application{}
	}
	return c.JSON(http.StatusOK, apps)
}
