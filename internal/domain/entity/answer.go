package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// Answer представляет записанный при отправке ответ на один вопрос.
// QuestionIndex ссылается на позицию вопроса в Quiz.Questions (0-based).
// SelectedAnswer == nil означает пропущенный вопрос.
type Answer struct {
	QuestionIndex  int     `json:"questionIndex"`
	SelectedAnswer *string `json:"selectedAnswer"`
	IsCorrect      bool    `json:"isCorrect"`
}

// AnswerList - пользовательский тип для хранения ответов в JSONB
type AnswerList []Answer

// Scan реализует интерфейс sql.Scanner для AnswerList
func (l *AnswerList) Scan(value interface{}) error {
	if value == nil {
		*l = AnswerList{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to unmarshal JSONB value: expected []byte")
	}

	if len(bytes) == 0 {
		*l = AnswerList{}
		return nil
	}

	return json.Unmarshal(bytes, l)
}

// Value реализует интерфейс driver.Valuer для AnswerList
func (l AnswerList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return []byte("[]"), nil
	}
	return json.Marshal(l)
}
