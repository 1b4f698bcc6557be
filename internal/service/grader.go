package service

import (
	"sort"

	"github.com/yourusername/quizgen-api/internal/domain/entity"
)

// AnswerSubmission представляет один отправленный клиентом ответ
type AnswerSubmission struct {
	QuestionIndex  int     `json:"questionIndex"`
	SelectedAnswer *string `json:"selectedAnswer"`
}

// GradeResult представляет результат оценки отправленных ответов
type GradeResult struct {
	Score       int
	PerQuestion []entity.Answer
}

// Grade оценивает отправленные ответы против сохраненных правильных.
// Чистая функция: не мутирует викторину, не имеет скрытого состояния,
// повторный вызов с теми же аргументами дает тот же результат.
//
// Правила:
//   - индекс вне диапазона [0, totalQuestions) игнорируется: не ошибка и не очко;
//   - при повторении индекса побеждает последнее вхождение (выбор изменяем
//     до отправки, записанные ответы остаются уникальными по индексу);
//   - сравнение строгое, с учетом регистра, без нормализации пробелов;
//   - nil selectedAnswer означает пропущенный вопрос, он всегда неверный.
func Grade(quiz *entity.Quiz, submitted []AnswerSubmission) GradeResult {
	byIndex := make(map[int]entity.Answer)

	for _, sub := range submitted {
		if sub.QuestionIndex < 0 || sub.QuestionIndex >= len(quiz.Questions) {
			continue
		}

		question := quiz.Questions[sub.QuestionIndex]
		isCorrect := sub.SelectedAnswer != nil && question.IsCorrect(*sub.SelectedAnswer)

		byIndex[sub.QuestionIndex] = entity.Answer{
			QuestionIndex:  sub.QuestionIndex,
			SelectedAnswer: sub.SelectedAnswer,
			IsCorrect:      isCorrect,
		}
	}

	result := GradeResult{
		PerQuestion: make([]entity.Answer, 0, len(byIndex)),
	}
	for _, answer := range byIndex {
		result.PerQuestion = append(result.PerQuestion, answer)
		if answer.IsCorrect {
			result.Score++
		}
	}

	sort.Slice(result.PerQuestion, func(i, j int) bool {
		return result.PerQuestion[i].QuestionIndex < result.PerQuestion[j].QuestionIndex
	})

	return result
}
