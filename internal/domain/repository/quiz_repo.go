package repository

import (
	"github.com/yourusername/quizgen-api/internal/domain/entity"
)

// QuizRepository определяет методы для работы с викторинами
type QuizRepository interface {
	Create(quiz *entity.Quiz) error
	// GetByID возвращает викторину по id. Для несуществующего id всегда
	// возвращается apperrors.ErrNotFound, никогда пустая викторина.
	GetByID(id string) (*entity.Quiz, error)
	// List возвращает всю историю: самые свежие викторины первыми,
	// при равном createdAt - в порядке вставки.
	List() ([]entity.Quiz, error)
	// SubmitResult атомарно записывает answers, score и completed_at.
	// Запись условная (completed_at IS NULL): повторная отправка
	// возвращает apperrors.ErrAlreadySubmitted, оценка выполняется
	// максимум один раз даже при конкурирующих запросах.
	SubmitResult(quiz *entity.Quiz) error
}
