package postgres

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/yourusername/quizgen-api/internal/domain/entity"
	apperrors "github.com/yourusername/quizgen-api/internal/pkg/errors"
)

// QuizRepo реализует repository.QuizRepository
type QuizRepo struct {
	db *gorm.DB
}

// NewQuizRepo создает новый репозиторий викторин
func NewQuizRepo(db *gorm.DB) *QuizRepo {
	return &QuizRepo{db: db}
}

// Create создает новую викторину
func (r *QuizRepo) Create(quiz *entity.Quiz) error {
	if err := r.db.Create(quiz).Error; err != nil {
		// Коллизия uuid крайне маловероятна, но отличаем ее от прочих ошибок БД
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: quiz %s already exists", apperrors.ErrConflict, quiz.ID)
		}
		return err
	}
	return nil
}

// GetByID возвращает викторину по ID
func (r *QuizRepo) GetByID(id string) (*entity.Quiz, error) {
	var quiz entity.Quiz
	err := r.db.Where("id = ?", id).First(&quiz).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &quiz, nil
}

// List возвращает всю историю викторин: свежие первыми.
// seq (bigserial) разрешает ничьи по created_at в порядке вставки.
func (r *QuizRepo) List() ([]entity.Quiz, error) {
	var quizzes []entity.Quiz
	err := r.db.Order("created_at DESC, seq DESC").Find(&quizzes).Error
	if err != nil {
		return nil, err
	}
	return quizzes, nil
}

// SubmitResult атомарно записывает результат отправки ответов.
// Условие completed_at IS NULL гарантирует оценку максимум один раз:
// - RowsAffected == 0 и викторина существует → ErrAlreadySubmitted
// - RowsAffected == 0 и викторины нет → ErrNotFound
func (r *QuizRepo) SubmitResult(quiz *entity.Quiz) error {
	result := r.db.Model(&entity.Quiz{}).
		Where("id = ? AND completed_at IS NULL", quiz.ID).
		Updates(map[string]interface{}{
			"answers":      quiz.Answers,
			"score":        quiz.Score,
			"completed_at": quiz.CompletedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("submit quiz %s failed: %w", quiz.ID, result.Error)
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.Model(&entity.Quiz{}).Where("id = ?", quiz.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("%w: quiz %s", apperrors.ErrAlreadySubmitted, quiz.ID)
	}

	return nil
}

// isUniqueViolation проверяет Postgres unique violation (23505) для pgconn и lib/pq драйверов
func isUniqueViolation(err error) bool {
	// pgx/v5 driver (pgconn.PgError)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	// lib/pq driver
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return true
	}
	return false
}
