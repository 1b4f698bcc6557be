package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/quizgen-api/internal/domain/entity"
	"github.com/yourusername/quizgen-api/internal/domain/repository"
	apperrors "github.com/yourusername/quizgen-api/internal/pkg/errors"
)

// QuizService предоставляет методы жизненного цикла викторины:
// генерацию, чтение истории и отправку ответов с оценкой.
type QuizService struct {
	quizRepo repository.QuizRepository
	source   repository.QuestionSource
}

// NewQuizService создает новый сервис викторин
func NewQuizService(quizRepo repository.QuizRepository, source repository.QuestionSource) *QuizService {
	return &QuizService{
		quizRepo: quizRepo,
		source:   source,
	}
}

// GenerateQuiz создает новую викторину из вопросов внешнего провайдера.
// amount, category и difficulty обязательны; amount должен быть положительным.
func (s *QuizService) GenerateQuiz(ctx context.Context, amount int, category, difficulty string) (*entity.Quiz, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be a positive integer", apperrors.ErrValidation)
	}
	if category == "" {
		return nil, fmt.Errorf("%w: category is required", apperrors.ErrValidation)
	}
	if !entity.IsValidDifficulty(difficulty) {
		return nil, fmt.Errorf("%w: difficulty must be one of easy, medium, hard, any", apperrors.ErrValidation)
	}

	questions, err := s.source.FetchQuestions(ctx, amount, category, difficulty)
	if err != nil {
		// Ошибки адаптера (ErrSourceUnavailable, ErrInsufficientQuestions)
		// сохраняют тип через %w - клиент различает их по errors.Is
		return nil, fmt.Errorf("quiz generation failed: %w", err)
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("quiz generation failed: %w", apperrors.ErrInsufficientQuestions)
	}

	now := time.Now()
	quiz := &entity.Quiz{
		ID:         uuid.NewString(),
		Title:      "Quiz - " + now.Format("02.01.2006"),
		Category:   category,
		Difficulty: difficulty,
		Questions:  entity.QuestionList(questions),
		// Доверяем фактическому количеству, а не запрошенному: провайдер
		// может вернуть меньше, и индексы ответов не должны выходить за край
		TotalQuestions: len(questions),
		Answers:        entity.AnswerList{},
		Score:          nil,
		CreatedAt:      now,
	}

	if err := s.quizRepo.Create(quiz); err != nil {
		return nil, fmt.Errorf("failed to create quiz: %w", err)
	}

	log.Printf("[QuizService] Создана викторина %s: %d вопросов, category=%q, difficulty=%s",
		quiz.ID, quiz.TotalQuestions, quiz.Category, quiz.Difficulty)

	return quiz, nil
}

// GetQuizByID возвращает викторину по ID
func (s *QuizService) GetQuizByID(id string) (*entity.Quiz, error) {
	return s.quizRepo.GetByID(id)
}

// GetHistory возвращает все викторины, самые свежие первыми
func (s *QuizService) GetHistory() ([]entity.Quiz, error) {
	return s.quizRepo.List()
}

// GetCategories возвращает список категорий провайдера
func (s *QuizService) GetCategories(ctx context.Context) ([]repository.Category, error) {
	return s.source.Categories(ctx)
}

// SubmitAnswers оценивает отправленные ответы и атомарно записывает
// answers, score и completedAt. Повторная отправка отклоняется с
// ErrAlreadySubmitted: и здесь, и условной записью в репозитории,
// так что при гонке двух отправок оценивается только первая.
func (s *QuizService) SubmitAnswers(id string, submitted []AnswerSubmission) (*entity.Quiz, error) {
	quiz, err := s.quizRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if quiz.IsCompleted() {
		return nil, fmt.Errorf("%w: quiz %s", apperrors.ErrAlreadySubmitted, id)
	}

	graded := Grade(quiz, submitted)

	completedAt := time.Now()
	quiz.Answers = entity.AnswerList(graded.PerQuestion)
	quiz.Score = &graded.Score
	quiz.CompletedAt = &completedAt

	if err := s.quizRepo.SubmitResult(quiz); err != nil {
		return nil, err
	}

	log.Printf("[QuizService] Викторина %s завершена: score %d/%d", quiz.ID, graded.Score, quiz.TotalQuestions)

	return quiz, nil
}
