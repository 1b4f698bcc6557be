package quizplay

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/quizgen-api/internal/domain/entity"
)

func makeSessionQuiz(n int) *entity.Quiz {
	questions := make(entity.QuestionList, n)
	for i := range questions {
		questions[i] = entity.Question{
			Question:         "Q",
			CorrectAnswer:    "correct",
			IncorrectAnswers: []string{"w1", "w2", "w3"},
			Type:             entity.QuestionTypeMultiple,
		}
	}
	return &entity.Quiz{
		ID:             "quiz-1",
		Questions:      questions,
		TotalQuestions: n,
	}
}

func TestNewSession_InitialState(t *testing.T) {
	session, err := NewSession(makeSessionQuiz(3))

	require.NoError(t, err)
	assert.Equal(t, 0, session.CurrentIndex())
	assert.Equal(t, StateAwaitingAnswer, session.State())
	assert.Equal(t, 0, session.AnsweredCount())
	assert.Equal(t, 3, session.TotalQuestions())
}

func TestNewSession_NoQuestions(t *testing.T) {
	_, err := NewSession(nil)
	assert.ErrorIs(t, err, ErrNoQuestions)

	_, err = NewSession(&entity.Quiz{ID: "empty"})
	assert.ErrorIs(t, err, ErrNoQuestions)
}

func TestSession_SelectAnswer_Overwrite(t *testing.T) {
	session, err := NewSession(makeSessionQuiz(2))
	require.NoError(t, err)

	require.NoError(t, session.SelectAnswer("w1"))
	assert.Equal(t, StateAnswered, session.State())

	// Повторный выбор перезаписывает предыдущий
	require.NoError(t, session.SelectAnswer("correct"))
	answer, ok := session.SelectedAnswer()
	require.True(t, ok)
	assert.Equal(t, "correct", answer)
	assert.Equal(t, 1, session.AnsweredCount())
}

func TestSession_Next_SkipAllowed(t *testing.T) {
	session, err := NewSession(makeSessionQuiz(3))
	require.NoError(t, err)

	// Next разрешен без записанного ответа
	require.NoError(t, session.Next())
	assert.Equal(t, 1, session.CurrentIndex())
	assert.Equal(t, StateAwaitingAnswer, session.State())
	assert.Equal(t, 0, session.AnsweredCount())
}

func TestSession_Previous_AtFirstQuestion(t *testing.T) {
	session, err := NewSession(makeSessionQuiz(3))
	require.NoError(t, err)

	assert.ErrorIs(t, session.Previous(), ErrAtFirstQuestion)
	assert.Equal(t, 0, session.CurrentIndex())
}

func TestSession_AnswersPreservedAcrossNavigation(t *testing.T) {
	session, err := NewSession(makeSessionQuiz(3))
	require.NoError(t, err)

	require.NoError(t, session.SelectAnswer("w1"))
	require.NoError(t, session.Next())
	require.NoError(t, session.SelectAnswer("correct"))

	// Возвращаемся назад: ответ первого вопроса на месте
	require.NoError(t, session.Previous())
	answer, ok := session.SelectedAnswer()
	require.True(t, ok)
	assert.Equal(t, "w1", answer)
	assert.Equal(t, StateAnswered, session.State())

	// И вперед: ответ второго тоже сохранился
	require.NoError(t, session.Next())
	answer, ok = session.SelectedAnswer()
	require.True(t, ok)
	assert.Equal(t, "correct", answer)
}

func TestSession_CompleteOnLastNext(t *testing.T) {
	session, err := NewSession(makeSessionQuiz(2))
	require.NoError(t, err)

	require.NoError(t, session.Next())
	assert.Equal(t, 1, session.CurrentIndex())

	// Next с последнего вопроса завершает сессию
	require.NoError(t, session.Next())
	assert.Equal(t, StateComplete, session.State())

	// Терминальное состояние: навигация и выбор запрещены
	assert.ErrorIs(t, session.Next(), ErrSessionComplete)
	assert.ErrorIs(t, session.Previous(), ErrSessionComplete)
	assert.ErrorIs(t, session.SelectAnswer("correct"), ErrSessionComplete)
}

func TestSession_AnswerOptions_Permutation(t *testing.T) {
	session, err := NewSession(makeSessionQuiz(1))
	require.NoError(t, err)

	options := session.AnswerOptions()

	// Полная перестановка: те же 4 варианта, включая правильный
	require.Len(t, options, 4)
	sorted := append([]string(nil), options...)
	sort.Strings(sorted)
	assert.Equal(t, []string{"correct", "w1", "w2", "w3"}, sorted)
}

func TestSession_AnswerOptions_StableWithinSession(t *testing.T) {
	session, err := NewSession(makeSessionQuiz(3))
	require.NoError(t, err)

	first := session.AnswerOptions()

	// Порядок не меняется между повторными вызовами
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, session.AnswerOptions())
	}

	// И после навигации туда-обратно
	require.NoError(t, session.Next())
	require.NoError(t, session.Previous())
	assert.Equal(t, first, session.AnswerOptions())

	// Копия: мутация возвращенного слайса не ломает кеш
	mutable := session.AnswerOptions()
	mutable[0] = "tampered"
	assert.Equal(t, first, session.AnswerOptions())
}

func TestSession_Submission(t *testing.T) {
	session, err := NewSession(makeSessionQuiz(4))
	require.NoError(t, err)

	// Отвечаем на 0 и 2, пропускаем 1 и 3
	require.NoError(t, session.SelectAnswer("correct"))
	require.NoError(t, session.Next())
	require.NoError(t, session.Next())
	require.NoError(t, session.SelectAnswer("w2"))

	submission := session.Submission()

	// Пропуски опущены, порядок по индексу вопроса
	require.Len(t, submission, 2)
	assert.Equal(t, 0, submission[0].QuestionIndex)
	require.NotNil(t, submission[0].SelectedAnswer)
	assert.Equal(t, "correct", *submission[0].SelectedAnswer)
	assert.Equal(t, 2, submission[1].QuestionIndex)
	require.NotNil(t, submission[1].SelectedAnswer)
	assert.Equal(t, "w2", *submission[1].SelectedAnswer)

	// Указатели независимы между элементами
	assert.NotSame(t, submission[0].SelectedAnswer, submission[1].SelectedAnswer)
}
