package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/untibullet/idea-hub/internal/models"
	"github.com/untibullet/idea-hub/internal/repository"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Signup регистрирует нового пользователя с bcrypt-хешированием пароля
func (h *Handler) Signup(c echo.Context) error {
	h.logger.Info("Signup: начало обработки запроса")

	var req struct {
		FullName       string   `json:"full_name"`
		Email          string   `json:"email"`
		Password       string   `json:"password"`
		Role           string   `json:"role"`
		Skills         []string `json:"skills"`
		Bio            *string  `json:"bio"`
		PortfolioLinks []string `json:"portfolio_links"`
		AvatarURL      *string  `json:"avatar_url"`
		PhoneNumber    *string  `json:"phone_number"`
	}

	if err := c.Bind(&req); err != nil {
		h.logger.Error("Signup: ошибка парсинга тела запроса", zap.Error(err))
		return c.JSON(http.StatusBadRequest, newErrorResponse(ErrCodeBadRequest, "invalid request body"))
	}

	if req.Email == "" || req.Password == "" {
		h.logger.Warn("Signup: email или пароль отсутствуют")
		return c.JSON(http.StatusBadRequest, newErrorResponse(ErrCodeBadRequest, "email and password are required"))
	}

	if req.Role == "" {
		req.Role = "Student"
	}
	if req.Skills == nil {
		req.Skills = []string{}
	}
	if req.PortfolioLinks == nil {
		req.PortfolioLinks = []string{}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), h.bcryptCost)
	if err != nil {
		h.logger.Error("Signup: ошибка хеширования пароля", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, newErrorResponse(ErrCodeInternal, "failed to register user"))
	}

	user, err := h.store.CreateUser(c.Request().Context(), models.User{
		FullName:       req.FullName,
		Email:          req.Email,
		PasswordHash:   string(hash),
		Role:           req.Role,
		Skills:         req.Skills,
		Bio:            req.Bio,
		PortfolioLinks: req.PortfolioLinks,
		AvatarURL:      req.AvatarURL,
		PhoneNumber:    req.PhoneNumber,
	})
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			h.logger.Warn("Signup: email уже зарегистрирован", zap.String("email", req.Email))
			return c.JSON(http.StatusBadRequest, newErrorResponse(ErrCodeConflict, "email already registered"))
		}
		h.logger.Error("Signup: ошибка создания пользователя", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, newErrorResponse(ErrCodeInternal, "failed to register user"))
	}

	h.logger.Info("Signup: пользователь зарегистрирован", zap.Int64("user_id", user.ID))
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "User registered",
		"user":    user,
	})
}

// Login проверяет учетные данные и возвращает профиль пользователя.
// Выдача токенов не производится, идентичность дальше самозаявленная.
func (h *Handler) Login(c echo.Context) error {
	h.logger.Info("Login: начало обработки запроса")

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.Bind(&req); err != nil {
		h.logger.Error("Login: ошибка парсинга тела запроса", zap.Error(err))
		return c.JSON(http.StatusBadRequest, newErrorResponse(ErrCodeBadRequest, "invalid request body"))
	}

	user, err := h.store.GetUserByEmail(c.Request().Context(), req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.logger.Warn("Login: пользователь не найден", zap.String("email", req.Email))
			return c.JSON(http.StatusUnauthorized, newErrorResponse(ErrCodeInvalidCredentials, "invalid credentials"))
		}
		h.logger.Error("Login: ошибка получения пользователя", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, newErrorResponse(ErrCodeInternal, "failed to login"))
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		h.logger.Warn("Login: неверный пароль", zap.String("email", req.Email))
		return c.JSON(http.StatusUnauthorized, newErrorResponse(ErrCodeInvalidCredentials, "invalid credentials"))
	}

	h.logger.Info("Login: успешный вход", zap.Int64("user_id", user.ID))
	return c.JSON(http.StatusOK, map[string]interface{}{"user": user})
}

// ListUsers получает пользователей с фильтрами по роли и навыку
func (h *Handler) ListUsers(c echo.Context) error {
	role := c.QueryParam("role")
	skill := c.QueryParam("skill")
	h.logger.Info("ListUsers: получение пользователей", zap.String("role", role), zap.String("skill", skill))

	users, err := h.store.ListUsers(c.Request().Context(), role, skill)
	if err != nil {
		h.logger.Error("ListUsers: ошибка получения пользователей", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, newErrorResponse(ErrCodeInternal, "failed to list users"))
	}

	if users == nil {
		users = []models.User{}
	}
	return c.JSON(http.StatusOK, users)
}
