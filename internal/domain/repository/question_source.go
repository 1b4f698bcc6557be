package repository

import (
	"context"

	"github.com/yourusername/quizgen-api/internal/domain/entity"
)

// Category представляет категорию вопросов провайдера
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// QuestionSource определяет контракт адаптера внешнего источника вопросов.
// Весь текст (вопросы, ответы, названия категорий) возвращается уже
// декодированным из HTML-сущностей.
type QuestionSource interface {
	// FetchQuestions запрашивает amount вопросов для категории и сложности.
	// category == "any" или нераспознанное имя - фильтр категории опускается.
	// difficulty == "any" - фильтр сложности опускается.
	// Недоступный провайдер - apperrors.ErrSourceUnavailable,
	// пустая выдача или неуспешный response_code - apperrors.ErrInsufficientQuestions.
	FetchQuestions(ctx context.Context, amount int, category, difficulty string) ([]entity.Question, error)

	// Categories возвращает актуальный список категорий провайдера.
	Categories(ctx context.Context) ([]Category, error)
}

// CategoryResolver сопоставляет человекочитаемое имя категории с внутренним
// id провайдера. ok == false означает, что категория не найдена и фильтр
// нужно опустить (вопросы берутся из всех категорий).
type CategoryResolver interface {
	Resolve(ctx context.Context, name string) (id int, ok bool, err error)
}
