package handler

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/quizmaster-api/internal/handler/dto"
	apperrors "github.com/yourusername/quizmaster-api/internal/pkg/errors"
	"github.com/yourusername/quizmaster-api/internal/service"
)

// UserHandler обрабатывает запросы, связанные с пользователями
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler создает новый обработчик пользователей
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// GetMe возвращает профиль текущего пользователя
// GET /api/users/me
func (h *UserHandler) GetMe(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)

	user, err := h.userService.GetByID(userID)
	if err != nil {
		h.handleUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateProfileRequest представляет запрос на обновление профиля
type UpdateProfileRequest struct {
	Username string `json:"username" binding:"omitempty,min=3,max=50"`
	Email    string `json:"email" binding:"omitempty,email"`
}

// UpdateMe обновляет профиль текущего пользователя
// PUT /api/users/me
func (h *UserHandler) UpdateMe(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Неверный формат запроса: %v", err)})
		return
	}

	user, err := h.userService.UpdateProfile(userID, service.UpdateProfileInput{
		Username: req.Username,
		Email:    req.Email,
	})
	if err != nil {
		h.handleUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// GetAttemptCount возвращает общее количество попыток текущего пользователя
// GET /api/users/me/attempts/count
func (h *UserHandler) GetAttemptCount(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)

	count, err := h.userService.GetAttemptCount(userID)
	if err != nil {
		h.handleUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AttemptCountResponse{Count: count})
}

// GetMainCategory возвращает категорию, в которой текущий пользователь
// проходил квизы чаще всего
// GET /api/users/me/main-category
func (h *UserHandler) GetMainCategory(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)

	mainCategory, err := h.userService.GetMainCategory(userID)
	if err != nil {
		h.handleUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, mainCategory)
}

// GetLeaderboard возвращает глобальный лидерборд пользователей по XP
// GET /api/leaderboard?page=1&page_size=10
func (h *UserHandler) GetLeaderboard(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	leaderboard, err := h.userService.GetLeaderboard(page, pageSize)
	if err != nil {
		h.handleUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, leaderboard)
}

// handleUserError обрабатывает ошибки сервиса пользователей и отправляет соответствующий HTTP ответ
func (h *UserHandler) handleUserError(c *gin.Context, err error) {
	if errors.Is(err, apperrors.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrConflict) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrValidation) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	} else {
		log.Printf("ERROR: Internal server error in UserHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
