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
	"github.com/yourusername/quizgen-api/internal/domain/entity"
	"github.com/yourusername/quizgen-api/internal/handler/dto"
	apperrors "github.com/yourusername/quizgen-api/internal/pkg/errors"
	"github.com/yourusername/quizgen-api/internal/service"
)

// QuizHandler обрабатывает запросы, связанные с викторинами
type QuizHandler struct {
	quizService *service.QuizService
}

// NewQuizHandler создает новый обработчик викторин
func NewQuizHandler(quizService *service.QuizService) *QuizHandler {
	return &QuizHandler{
		quizService: quizService,
	}
}

// GetOptions возвращает список категорий провайдера
// GET /api/options
func (h *QuizHandler) GetOptions(c *gin.Context) {
	categories, err := h.quizService.GetCategories(c.Request.Context())
	if err != nil {
		h.handleQuizError(c, err)
		return
	}

	c.JSON(http.StatusOK, categories)
}

// GenerateQuizRequest представляет запрос на генерацию викторины
type GenerateQuizRequest struct {
	Amount     int    `json:"amount" binding:"required,min=1"`
	Category   string `json:"category" binding:"required"`
	Difficulty string `json:"difficulty" binding:"required"`
}

// GenerateQuiz обрабатывает запрос на генерацию новой викторины
// POST /api/generate
func (h *QuizHandler) GenerateQuiz(c *gin.Context) {
	var req GenerateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	quiz, err := h.quizService.GenerateQuiz(c.Request.Context(), req.Amount, req.Category, req.Difficulty)
	if err != nil {
		h.handleQuizError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewQuizResponse(quiz))
}

// GetHistory возвращает всю историю викторин, свежие первыми
// GET /api/history
func (h *QuizHandler) GetHistory(c *gin.Context) {
	quizzes, err := h.quizService.GetHistory()
	if err != nil {
		h.handleQuizError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewListQuizResponse(quizzes))
}

// GetQuiz возвращает викторину по ID
// GET /api/quizzes/:id
func (h *QuizHandler) GetQuiz(c *gin.Context) {
	quizID := c.MustGet("quizID").(string) // Получаем из контекста

	quiz, err := h.quizService.GetQuizByID(quizID)
	if err != nil {
		h.handleQuizError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuizResponse(quiz))
}

// SubmitAnswersRequest представляет запрос на отправку ответов.
// Пустой список допустим: все вопросы считаются пропущенными, score = 0.
type SubmitAnswersRequest struct {
	Answers []service.AnswerSubmission `json:"answers"`
}

// SubmitAnswers обрабатывает отправку ответов на викторину
// POST /api/quizzes/:id/submit
func (h *QuizHandler) SubmitAnswers(c *gin.Context) {
	quizID := c.MustGet("quizID").(string)

	var req SubmitAnswersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	quiz, err := h.quizService.SubmitAnswers(quizID, req.Answers)
	if err != nil {
		h.handleQuizError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSubmitResponse(quiz))
}

// ExportHistory экспортирует историю викторин в CSV или Excel формате
// GET /api/history/export?format=csv|xlsx
func (h *QuizHandler) ExportHistory(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")

	quizzes, err := h.quizService.GetHistory()
	if err != nil {
		h.handleQuizError(c, err)
		return
	}

	filename := fmt.Sprintf("quiz_history_%s", time.Now().Format("2006-01-02"))

	switch format {
	case "xlsx":
		h.exportXLSX(c, quizzes, filename)
	default:
		h.exportCSV(c, quizzes, filename)
	}
}

// historyExportRow формирует строковые значения одной строки экспорта
func historyExportRow(q *entity.Quiz) []string {
	score := ""
	if q.Score != nil {
		score = strconv.Itoa(*q.Score)
	}
	completed := ""
	if q.CompletedAt != nil {
		completed = q.CompletedAt.Format(time.RFC3339)
	}
	return []string{
		sanitizeForExcel(q.Title),
		sanitizeForExcel(q.Category),
		q.Difficulty,
		strconv.Itoa(q.TotalQuestions),
		score,
		q.Status(),
		q.CreatedAt.Format(time.RFC3339),
		completed,
	}
}

// exportCSV экспортирует историю в CSV с правильным экранированием спецсимволов
func (h *QuizHandler) exportCSV(c *gin.Context, quizzes []entity.Quiz, filename string) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.csv\"", filename))

	// BOM для корректного отображения UTF-8 в Excel
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	// Используем encoding/csv для правильного экранирования запятых/кавычек
	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	// Заголовки
	writer.Write([]string{"Название", "Категория", "Сложность", "Вопросов", "Очки", "Статус", "Создана", "Завершена"})

	// Данные
	for i := range quizzes {
		writer.Write(historyExportRow(&quizzes[i]))
	}
}

// exportXLSX экспортирует историю в Excel с использованием StreamWriter
func (h *QuizHandler) exportXLSX(c *gin.Context, quizzes []entity.Quiz, filename string) {
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.xlsx\"", filename))

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "История"
	f.SetSheetName("Sheet1", sheetName)

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		log.Printf("[QuizHandler] Ошибка создания StreamWriter: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel file"})
		return
	}

	// Заголовки
	headers := []interface{}{"Название", "Категория", "Сложность", "Вопросов", "Очки", "Статус", "Создана", "Завершена"}
	if err := sw.SetRow("A1", headers); err != nil {
		log.Printf("[QuizHandler] Ошибка записи заголовков: %v", err)
	}

	// Данные
	for i := range quizzes {
		rowNum := i + 2 // Начинаем с 2 строки (1 - заголовки)
		cell := fmt.Sprintf("A%d", rowNum)

		values := historyExportRow(&quizzes[i])
		row := make([]interface{}, len(values))
		for j, v := range values {
			row[j] = v
		}
		if err := sw.SetRow(cell, row); err != nil {
			log.Printf("[QuizHandler] Ошибка записи строки %d: %v", rowNum, err)
		}
	}

	if err := sw.Flush(); err != nil {
		log.Printf("[QuizHandler] Ошибка при Flush: %v", err)
	}

	// Записываем в response
	if err := f.Write(c.Writer); err != nil {
		log.Printf("[QuizHandler] Ошибка записи Excel в response: %v", err)
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

// handleQuizError обрабатывает ошибки от сервисов викторин и отправляет соответствующий HTTP ответ
func (h *QuizHandler) handleQuizError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrAlreadySubmitted):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrInsufficientQuestions):
		// Пользователь может изменить параметры и повторить
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrSourceUnavailable):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		log.Printf("ERROR: Internal server error in QuizHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
