package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// Типы вопросов, как их отдает провайдер
const (
	QuestionTypeMultiple = "multiple"
	QuestionTypeBoolean  = "boolean"
)

// Question представляет вопрос викторины. Вопросы встраиваются в викторину
// как value objects: после создания викторины их содержимое не меняется,
// позиция вопроса в списке задает канонический questionIndex.
type Question struct {
	Question         string   `json:"question"`
	CorrectAnswer    string   `json:"correct_answer"`
	IncorrectAnswers []string `json:"incorrect_answers"`
	Type             string   `json:"type"`
	// Информационные поля провайдера, могут отличаться от уровня викторины
	Difficulty string `json:"difficulty,omitempty"`
	Category   string `json:"category,omitempty"`
}

// IsCorrect проверяет, совпадает ли выбранный ответ с правильным.
// Сравнение строгое: регистр и пробелы значимы.
func (q *Question) IsCorrect(selectedAnswer string) bool {
	return selectedAnswer == q.CorrectAnswer
}

// AllAnswers возвращает полный набор вариантов: правильный + неправильные.
// Порядок не перемешан, за порядок отображения отвечает quizplay.
func (q *Question) AllAnswers() []string {
	answers := make([]string, 0, len(q.IncorrectAnswers)+1)
	answers = append(answers, q.CorrectAnswer)
	answers = append(answers, q.IncorrectAnswers...)
	return answers
}

// QuestionList - пользовательский тип для хранения вопросов в JSONB
type QuestionList []Question

// Scan реализует интерфейс sql.Scanner для QuestionList
// Используется GORM для чтения JSONB данных из базы
func (l *QuestionList) Scan(value interface{}) error {
	if value == nil {
		*l = QuestionList{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to unmarshal JSONB value: expected []byte")
	}

	if len(bytes) == 0 {
		*l = QuestionList{}
		return nil
	}

	return json.Unmarshal(bytes, l)
}

// Value реализует интерфейс driver.Valuer для QuestionList
func (l QuestionList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return []byte("[]"), nil // Пустой JSON массив вместо null
	}
	return json.Marshal(l)
}
