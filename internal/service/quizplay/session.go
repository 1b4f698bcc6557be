package quizplay

import (
	"errors"
	"math/rand"
	"sort"
	"time"

	"github.com/yourusername/quizgen-api/internal/domain/entity"
	"github.com/yourusername/quizgen-api/internal/service"
)

// State описывает состояние сессии прохождения викторины
type State int

const (
	// StateAwaitingAnswer - текущий вопрос показан, ответ еще не выбран
	StateAwaitingAnswer State = iota
	// StateAnswered - для текущего вопроса записан предварительный ответ
	StateAnswered
	// StateComplete - терминальное состояние, навигация запрещена
	StateComplete
)

// Ошибки переходов сессии
var (
	ErrSessionComplete = errors.New("session is complete")
	ErrAtFirstQuestion = errors.New("already at the first question")
	ErrNoQuestions     = errors.New("quiz has no questions")
)

// Session - машина состояний одного прохождения викторины.
// Однопоточная и кооперативная: все переходы синхронны, конкурентный
// доступ из нескольких горутин не поддерживается.
//
// Политика навигации единая для всех экранов: Next разрешен и без
// записанного ответа (вопрос можно пропустить), пропуски просто не
// попадают в Submission.
type Session struct {
	quiz     *entity.Quiz
	current  int
	complete bool
	// Предварительные ответы по индексу вопроса. Выбор изменяем до Next/Previous
	// и сохраняется при повторном посещении вопроса.
	answers map[int]string
	// Кеш порядка вариантов по индексу вопроса: пользователь не должен
	// видеть перетасовку между рендерами одного вопроса.
	shuffled map[int][]string
	rng      *rand.Rand
}

// NewSession создает сессию для викторины в начальном состоянии
// AwaitingAnswer(0) без записанных ответов.
func NewSession(quiz *entity.Quiz) (*Session, error) {
	if quiz == nil || len(quiz.Questions) == 0 {
		return nil, ErrNoQuestions
	}
	return &Session{
		quiz:     quiz,
		answers:  make(map[int]string),
		shuffled: make(map[int][]string),
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}, nil
}

// CurrentIndex возвращает индекс текущего вопроса
func (s *Session) CurrentIndex() int {
	return s.current
}

// State возвращает текущее состояние машины
func (s *Session) State() State {
	if s.complete {
		return StateComplete
	}
	if _, ok := s.answers[s.current]; ok {
		return StateAnswered
	}
	return StateAwaitingAnswer
}

// Question возвращает текущий вопрос
func (s *Session) Question() entity.Question {
	return s.quiz.Questions[s.current]
}

// AnswerOptions возвращает варианты ответа текущего вопроса в порядке
// отображения. Порядок - полная перестановка (правильный + неправильные),
// вычисляется перетасовкой Фишера-Йейтса один раз на индекс вопроса и
// кешируется на все время жизни сессии.
func (s *Session) AnswerOptions() []string {
	options, ok := s.shuffled[s.current]
	if !ok {
		options = s.quiz.Questions[s.current].AllAnswers()
		s.rng.Shuffle(len(options), func(i, j int) {
			options[i], options[j] = options[j], options[i]
		})
		s.shuffled[s.current] = options
	}

	// Копия, чтобы вызывающий не мог сломать закешированный порядок
	out := make([]string, len(options))
	copy(out, options)
	return out
}

// SelectAnswer записывает предварительный ответ на текущий вопрос.
// Повторный выбор перезаписывает предыдущий.
func (s *Session) SelectAnswer(answer string) error {
	if s.complete {
		return ErrSessionComplete
	}
	s.answers[s.current] = answer
	return nil
}

// SelectedAnswer возвращает записанный ответ на текущий вопрос, если он есть
func (s *Session) SelectedAnswer() (string, bool) {
	answer, ok := s.answers[s.current]
	return answer, ok
}

// Next переходит к следующему вопросу. С последнего вопроса сессия
// переходит в Complete; дальнейшая навигация запрещена.
func (s *Session) Next() error {
	if s.complete {
		return ErrSessionComplete
	}
	if s.current == len(s.quiz.Questions)-1 {
		s.complete = true
		return nil
	}
	s.current++
	return nil
}

// Previous возвращается к предыдущему вопросу, сохраняя записанные
// ответы и для покидаемого, и для открываемого индекса.
func (s *Session) Previous() error {
	if s.complete {
		return ErrSessionComplete
	}
	if s.current == 0 {
		return ErrAtFirstQuestion
	}
	s.current--
	return nil
}

// AnsweredCount возвращает количество вопросов с записанным ответом
func (s *Session) AnsweredCount() int {
	return len(s.answers)
}

// TotalQuestions возвращает количество вопросов в сессии
func (s *Session) TotalQuestions() int {
	return len(s.quiz.Questions)
}

// Submission выгружает записанные ответы для отправки на оценку,
// упорядоченные по индексу вопроса. Пропущенные вопросы опускаются.
func (s *Session) Submission() []service.AnswerSubmission {
	indices := make([]int, 0, len(s.answers))
	for i := range s.answers {
		indices = append(indices, i)
	}
	sort.Ints(indices)

	submission := make([]service.AnswerSubmission, 0, len(indices))
	for _, i := range indices {
		answer := s.answers[i]
		submission = append(submission, service.AnswerSubmission{
			QuestionIndex:  i,
			SelectedAnswer: &answer,
		})
	}
	return submission
}
