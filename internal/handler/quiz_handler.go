package handler

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/quizmaster-api/internal/domain/entity"
	"github.com/yourusername/quizmaster-api/internal/handler/dto"
	apperrors "github.com/yourusername/quizmaster-api/internal/pkg/errors"
	"github.com/yourusername/quizmaster-api/internal/service"
	"github.com/yourusername/quizmaster-api/internal/service/ranking"
)

// QuizHandler обрабатывает запросы, связанные с категориями, квизами и попытками
type QuizHandler struct {
	quizService    *service.QuizService
	attemptService *service.AttemptService
}

// NewQuizHandler создает новый обработчик квизов
func NewQuizHandler(quizService *service.QuizService, attemptService *service.AttemptService) *QuizHandler {
	return &QuizHandler{
		quizService:    quizService,
		attemptService: attemptService,
	}
}

// GetCategories возвращает все категории с количеством квизов в каждой
// GET /api/categories
func (h *QuizHandler) GetCategories(c *gin.Context) {
	categories, err := h.quizService.GetAllCategories()
	if err != nil {
		h.handleQuizError(c, err)
		return
	}

	responses := make([]dto.CategoryResponse, len(categories))
	for i, category := range categories {
		responses[i] = dto.CategoryResponse{
			ID:          category.ID,
			Name:        category.Name,
			Description: category.Description,
			Color:       category.Color,
			Icon:        category.Icon,
			QuizCount:   len(category.Quizzes),
		}
	}

	c.JSON(http.StatusOK, gin.H{"categories": responses})
}

// GetQuiz возвращает квиз с вопросами (без правильных ответов)
// GET /api/quizzes/:id
func (h *QuizHandler) GetQuiz(c *gin.Context) {
	quizID := c.MustGet("quizID").(uint)

	quiz, err := h.quizService.GetQuizByID(quizID)
	if err != nil {
		h.handleQuizError(c, err)
		return
	}

	c.JSON(http.StatusOK, quiz)
}

// CreateQuiz создает новый квиз с вопросами
// POST /api/quizzes
func (h *QuizHandler) CreateQuiz(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)

	var req dto.CreateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Неверный формат запроса: %v", err)})
		return
	}

	questions := make([]service.CreateQuestionInput, len(req.Questions))
	for i, q := range req.Questions {
		questions[i] = service.CreateQuestionInput{
			Text:          q.Text,
			Options:       q.Options,
			CorrectOption: q.CorrectOption,
			TimeLimitSec:  q.TimeLimitSec,
			Order:         q.Order,
		}
	}

	quiz, err := h.quizService.CreateQuiz(userID, service.CreateQuizInput{
		Title:       req.Title,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		Difficulty:  req.Difficulty,
		Questions:   questions,
	})
	if err != nil {
		h.handleQuizError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewQuizSummaryResponse(quiz))
}

// SubmitAttempt обрабатывает попытку прохождения квиза
// POST /api/quizzes/:id/attempt
func (h *QuizHandler) SubmitAttempt(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)
	quizID := c.MustGet("quizID").(uint)

	var req dto.SubmitAttemptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Неверный формат запроса: %v", err)})
		return
	}

	answers := make([]entity.SubmittedAnswer, len(req.Answers))
	for i, a := range req.Answers {
		answers[i] = entity.SubmittedAnswer{
			QuestionID:     a.QuestionID,
			SelectedOption: a.SelectedOption,
		}
	}

	result, err := h.attemptService.SubmitAttempt(userID, quizID, answers)
	if err != nil {
		h.handleQuizError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.AttemptResultResponse{
		AttemptID:      result.Attempt.ID,
		QuizID:         quizID,
		Score:          result.Outcome.Score,
		TotalQuestions: result.Outcome.TotalQuestions,
		Percentage:     ranking.Percentage(result.Outcome.Score, result.Outcome.TotalQuestions),
		XPGained:       result.Outcome.XPGained,
		IsFirstAttempt: result.Outcome.IsFirstAttempt,
		CompletedAt:    result.Attempt.EndedAt,
	})
}

// handleQuizError обрабатывает ошибки от сервисов квизов и отправляет соответствующий HTTP ответ
func (h *QuizHandler) handleQuizError(c *gin.Context, err error) {
	if errors.Is(err, apperrors.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrConflict) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrValidation) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrUnauthorized) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrForbidden) {
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	} else {
		log.Printf("ERROR: Internal server error in QuizHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
