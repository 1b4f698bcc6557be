package dto

import (
	"time"

	"github.com/yourusername/quizgen-api/internal/domain/entity"
)

// QuizResponse представляет викторину в формате для ответа клиенту
type QuizResponse struct {
	ID             string              `json:"id"`
	Title          string              `json:"title"`
	Category       string              `json:"category"`
	Difficulty     string              `json:"difficulty"`
	Status         string              `json:"status"`
	Questions      entity.QuestionList `json:"questions"`
	TotalQuestions int                 `json:"totalQuestions"`
	Answers        entity.AnswerList   `json:"answers"`
	Score          *int                `json:"score"`
	CreatedAt      time.Time           `json:"createdAt"`
	CompletedAt    *time.Time          `json:"completedAt"`
}

// SubmitResponse представляет результат отправки ответов
type SubmitResponse struct {
	Score          int           `json:"score"`
	TotalQuestions int           `json:"totalQuestions"`
	Quiz           *QuizResponse `json:"quiz"`
}

// NewQuizResponse создает DTO для викторины
func NewQuizResponse(quiz *entity.Quiz) *QuizResponse {
	if quiz == nil {
		return nil
	}

	return &QuizResponse{
		ID:             quiz.ID,
		Title:          quiz.Title,
		Category:       quiz.Category,
		Difficulty:     quiz.Difficulty,
		Status:         quiz.Status(),
		Questions:      quiz.Questions,
		TotalQuestions: quiz.TotalQuestions,
		Answers:        quiz.Answers,
		Score:          quiz.Score,
		CreatedAt:      quiz.CreatedAt,
		CompletedAt:    quiz.CompletedAt,
	}
}

// NewListQuizResponse создает слайс DTO для истории викторин
func NewListQuizResponse(quizzes []entity.Quiz) []*QuizResponse {
	list := make([]*QuizResponse, len(quizzes))
	for i, quiz := range quizzes {
		list[i] = NewQuizResponse(&quiz)
	}
	return list
}

// NewSubmitResponse создает DTO для результата отправки
func NewSubmitResponse(quiz *entity.Quiz) *SubmitResponse {
	score := 0
	if quiz.Score != nil {
		score = *quiz.Score
	}
	return &SubmitResponse{
		Score:          score,
		TotalQuestions: quiz.TotalQuestions,
		Quiz:           NewQuizResponse(quiz),
	}
}
