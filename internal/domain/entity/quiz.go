package entity

import (
	"time"
)

// Допустимые уровни сложности викторины
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
	DifficultyAny    = "any"
)

// Статусы викторины (вычисляются из CompletedAt, отдельной колонки нет)
const (
	QuizStatusInProgress = "in_progress"
	QuizStatusCompleted  = "completed"
)

// Quiz представляет викторину - агрегат жизненного цикла.
// Questions записываются один раз при создании; Answers, Score и CompletedAt
// устанавливаются вместе, ровно один раз, при отправке ответов.
type Quiz struct {
	ID    string `gorm:"type:uuid;primaryKey" json:"id"`
	Title string `gorm:"size:100;not null" json:"title"`
	// Seq заполняется базой (bigserial) и служит tie-breaker'ом при
	// сортировке истории по createdAt. В API не отдается.
	Seq            int64        `gorm:"column:seq;->" json:"-"`
	Category       string       `gorm:"size:100;not null" json:"category"`
	Difficulty     string       `gorm:"size:10;not null" json:"difficulty"`
	Questions      QuestionList `gorm:"type:jsonb;not null" json:"questions"`
	TotalQuestions int          `gorm:"not null" json:"totalQuestions"`
	Answers        AnswerList   `gorm:"type:jsonb;not null" json:"answers"`
	Score          *int         `json:"score"`
	CreatedAt      time.Time    `gorm:"not null;index" json:"createdAt"`
	CompletedAt    *time.Time   `json:"completedAt"`
}

// TableName определяет имя таблицы для GORM
func (Quiz) TableName() string {
	return "quizzes"
}

// IsCompleted проверяет, завершена ли викторина
func (q *Quiz) IsCompleted() bool {
	return q.CompletedAt != nil
}

// Status возвращает статус викторины для клиента
func (q *Quiz) Status() string {
	if q.IsCompleted() {
		return QuizStatusCompleted
	}
	return QuizStatusInProgress
}

// IsValidDifficulty проверяет, входит ли значение в допустимый набор
func IsValidDifficulty(difficulty string) bool {
	switch difficulty {
	case DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyAny:
		return true
	}
	return false
}
