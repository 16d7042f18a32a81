package handler

import (
	"encoding/csv"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	apperrors "github.com/yourusername/quizmaster-api/internal/pkg/errors"
	"github.com/yourusername/quizmaster-api/internal/service"
	"github.com/yourusername/quizmaster-api/internal/service/ranking"
)

// RankingHandler обрабатывает запросы рейтингов квизов и категорий
type RankingHandler struct {
	rankingService *service.RankingService
}

// NewRankingHandler создает новый обработчик рейтингов
func NewRankingHandler(rankingService *service.RankingService) *RankingHandler {
	return &RankingHandler{
		rankingService: rankingService,
	}
}

// GetQuizRanking возвращает рейтинг квиза, пересчитанный на момент запроса
// GET /api/quizzes/:id/ranking
func (h *RankingHandler) GetQuizRanking(c *gin.Context) {
	quizID := c.MustGet("quizID").(uint)

	result, err := h.rankingService.GetQuizRanking(quizID)
	if err != nil {
		h.handleRankingError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetCategoryRanking возвращает агрегированный рейтинг категории
// GET /api/categories/:id/ranking
func (h *RankingHandler) GetCategoryRanking(c *gin.Context) {
	categoryID := c.MustGet("categoryID").(uint)

	result, err := h.rankingService.GetCategoryRanking(categoryID)
	if err != nil {
		h.handleRankingError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ExportQuizRanking экспортирует рейтинг квиза в CSV или Excel формате
// GET /api/quizzes/:id/ranking/export?format=csv|xlsx
func (h *RankingHandler) ExportQuizRanking(c *gin.Context) {
	quizID := c.MustGet("quizID").(uint)
	format := c.DefaultQuery("format", "csv")

	result, err := h.rankingService.GetQuizRanking(quizID)
	if err != nil {
		h.handleRankingError(c, err)
		return
	}

	filename := fmt.Sprintf("quiz_%d_ranking_%s", quizID, time.Now().Format("2006-01-02"))

	switch format {
	case "xlsx":
		h.exportXLSX(c, result, filename)
	default:
		h.exportCSV(c, result, filename)
	}
}

// exportCSV экспортирует рейтинг в CSV с правильным экранированием спецсимволов
func (h *RankingHandler) exportCSV(c *gin.Context, result *ranking.QuizRanking, filename string) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.csv\"", filename))

	// BOM для корректного отображения UTF-8 в Excel
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	// Используем encoding/csv для правильного экранирования запятых/кавычек
	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	// Заголовки
	writer.Write([]string{"Место", "Пользователь", "Уровень", "Очки", "Всего вопросов", "Процент", "Завершено"})

	// Данные
	for i, entry := range result.Ranking {
		writer.Write([]string{
			strconv.Itoa(i + 1),
			sanitizeForExcel(entry.Username),
			strconv.Itoa(entry.Level),
			strconv.Itoa(entry.Score),
			strconv.Itoa(entry.MaxScore),
			strconv.Itoa(entry.Percentage),
			entry.CompletedAt.Format(time.RFC3339),
		})
	}
}

// exportXLSX экспортирует рейтинг в Excel с использованием StreamWriter
func (h *RankingHandler) exportXLSX(c *gin.Context, result *ranking.QuizRanking, filename string) {
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.xlsx\"", filename))

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Рейтинг"
	f.SetSheetName("Sheet1", sheetName)

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		log.Printf("[RankingHandler] Ошибка создания StreamWriter: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel file"})
		return
	}

	// Заголовки
	headers := []interface{}{"Место", "Пользователь", "Уровень", "Очки", "Всего вопросов", "Процент", "Завершено"}
	if err := sw.SetRow("A1", headers); err != nil {
		log.Printf("[RankingHandler] Ошибка записи заголовков: %v", err)
	}

	// Данные
	for i, entry := range result.Ranking {
		rowNum := i + 2 // Начинаем с 2 строки (1 - заголовки)
		cell := fmt.Sprintf("A%d", rowNum)

		row := []interface{}{
			i + 1,
			sanitizeForExcel(entry.Username),
			entry.Level,
			entry.Score,
			entry.MaxScore,
			entry.Percentage,
			entry.CompletedAt.Format(time.RFC3339),
		}
		if err := sw.SetRow(cell, row); err != nil {
			log.Printf("[RankingHandler] Ошибка записи строки %d: %v", rowNum, err)
		}
	}

	if err := sw.Flush(); err != nil {
		log.Printf("[RankingHandler] Ошибка при Flush: %v", err)
	}

	if err := f.Write(c.Writer); err != nil {
		log.Printf("[RankingHandler] Ошибка записи Excel в response: %v", err)
	}
}

// sanitizeForExcel экранирует данные для защиты от formula injection в Excel/CSV
func sanitizeForExcel(s string) string {
	if len(s) == 0 {
		return s
	}
	// Символы, начинающие формулу в Excel/LibreOffice: = + - @ \t \r
	if s[0] == '=' || s[0] == '+' || s[0] == '-' || s[0] == '@' || s[0] == '\t' || s[0] == '\r' {
		return "'" + s
	}
	return s
}

// handleRankingError обрабатывает ошибки сервиса рейтингов и отправляет соответствующий HTTP ответ
func (h *RankingHandler) handleRankingError(c *gin.Context, err error) {
	if errors.Is(err, apperrors.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrValidation) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	} else {
		log.Printf("ERROR: Internal server error in RankingHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
