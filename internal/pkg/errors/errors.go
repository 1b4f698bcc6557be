package errors

import "errors"

// Общие ошибки приложения
var (
	// ErrNotFound используется, когда запись или ресурс не найдены.
	ErrNotFound = errors.New("record not found")

	// ErrValidation используется для ошибок валидации входных данных.
	ErrValidation = errors.New("validation failed")

	// ErrConflict используется для конфликтов состояния (например, коллизия id при вставке).
	ErrConflict = errors.New("resource state conflict")

	// ErrSourceUnavailable используется, когда внешний провайдер вопросов недоступен.
	// Пользователь может повторить запрос позже.
	ErrSourceUnavailable = errors.New("trivia source unavailable")

	// ErrInsufficientQuestions используется, когда провайдер не нашел вопросов под
	// запрошенную комбинацию category/difficulty/amount. Пользователь может изменить
	// параметры и повторить.
	ErrInsufficientQuestions = errors.New("not enough questions for requested parameters")

	// ErrAlreadySubmitted используется при повторной отправке ответов на уже
	// завершенную викторину. Оценка выполняется максимум один раз.
	ErrAlreadySubmitted = errors.New("quiz already submitted")
)
