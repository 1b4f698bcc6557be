package trivia

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/yourusername/quizgen-api/internal/pkg/errors"
)

const testCategoriesJSON = `{"trivia_categories":[
	{"id":9,"name":"General Knowledge"},
	{"id":17,"name":"Science &amp; Nature"},
	{"id":23,"name":"History"}
]}`

// newTestServer поднимает фальшивый опрос-провайдер: /api.php отдает вопросы,
// /api_category.php - категории. Последний запрос вопросов сохраняется.
func newTestServer(t *testing.T, questionsBody string) (*httptest.Server, *string) {
	t.Helper()
	var lastQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api.php":
			lastQuery = r.URL.RawQuery
			w.Write([]byte(questionsBody))
		case "/api_category.php":
			w.Write([]byte(testCategoriesJSON))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, &lastQuery
}

func TestClient_FetchQuestions_Success(t *testing.T) {
	// Arrange
	body := `{"response_code":0,"results":[
		{"type":"multiple","difficulty":"easy","category":"Science &amp; Nature",
		 "question":"What&#039;s H2O?","correct_answer":"&quot;Water&quot;",
		 "incorrect_answers":["Salt &amp; Pepper","Air","Fire"]}
	]}`
	srv, lastQuery := newTestServer(t, body)
	client := NewClient(srv.URL+"/api.php", srv.URL+"/api_category.php", srv.Client())

	// Act
	questions, err := client.FetchQuestions(context.Background(), 1, "Science & Nature", "easy")

	// Assert
	require.NoError(t, err)
	require.Len(t, questions, 1)
	// Текст декодирован во всех полях
	assert.Equal(t, "What's H2O?", questions[0].Question)
	assert.Equal(t, `"Water"`, questions[0].CorrectAnswer)
	assert.Equal(t, "Salt & Pepper", questions[0].IncorrectAnswers[0])
	assert.Equal(t, "Science & Nature", questions[0].Category)

	// Категория зарезолвлена в id 17, тип всегда multiple
	assert.Contains(t, *lastQuery, "category=17")
	assert.Contains(t, *lastQuery, "type=multiple")
	assert.Contains(t, *lastQuery, "difficulty=easy")
	assert.Contains(t, *lastQuery, "amount=1")
}

func TestClient_FetchQuestions_AnyOmitsFilters(t *testing.T) {
	body := `{"response_code":0,"results":[
		{"type":"multiple","question":"Q","correct_answer":"A","incorrect_answers":["B","C","D"]}
	]}`
	srv, lastQuery := newTestServer(t, body)
	client := NewClient(srv.URL+"/api.php", srv.URL+"/api_category.php", srv.Client())

	_, err := client.FetchQuestions(context.Background(), 5, "any", "any")

	require.NoError(t, err)
	// "any" опускает оба фильтра
	assert.NotContains(t, *lastQuery, "category=")
	assert.NotContains(t, *lastQuery, "difficulty=")
}

func TestClient_FetchQuestions_UnknownCategoryOmitted(t *testing.T) {
	body := `{"response_code":0,"results":[
		{"type":"multiple","question":"Q","correct_answer":"A","incorrect_answers":["B","C","D"]}
	]}`
	srv, lastQuery := newTestServer(t, body)
	client := NewClient(srv.URL+"/api.php", srv.URL+"/api_category.php", srv.Client())

	// Нераспознанная категория - не ошибка, фильтр просто опускается
	_, err := client.FetchQuestions(context.Background(), 5, "Underwater Basket Weaving", "hard")

	require.NoError(t, err)
	assert.NotContains(t, *lastQuery, "category=")
	assert.Contains(t, *lastQuery, "difficulty=hard")
}

func TestClient_FetchQuestions_CaseInsensitiveResolve(t *testing.T) {
	body := `{"response_code":0,"results":[
		{"type":"multiple","question":"Q","correct_answer":"A","incorrect_answers":["B","C","D"]}
	]}`
	srv, lastQuery := newTestServer(t, body)
	client := NewClient(srv.URL+"/api.php", srv.URL+"/api_category.php", srv.Client())

	_, err := client.FetchQuestions(context.Background(), 5, "history", "medium")

	require.NoError(t, err)
	assert.Contains(t, *lastQuery, "category=23")
}

func TestClient_FetchQuestions_NonZeroResponseCode(t *testing.T) {
	// response_code != 0 - у провайдера недостаточно вопросов
	srv, _ := newTestServer(t, `{"response_code":1,"results":[]}`)
	client := NewClient(srv.URL+"/api.php", srv.URL+"/api_category.php", srv.Client())

	questions, err := client.FetchQuestions(context.Background(), 50, "any", "any")

	assert.Nil(t, questions)
	assert.ErrorIs(t, err, apperrors.ErrInsufficientQuestions)
}

func TestClient_FetchQuestions_EmptyResults(t *testing.T) {
	srv, _ := newTestServer(t, `{"response_code":0,"results":[]}`)
	client := NewClient(srv.URL+"/api.php", srv.URL+"/api_category.php", srv.Client())

	questions, err := client.FetchQuestions(context.Background(), 10, "any", "any")

	assert.Nil(t, questions)
	assert.ErrorIs(t, err, apperrors.ErrInsufficientQuestions)
}

func TestClient_FetchQuestions_ServerDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // сервер недоступен

	client := NewClient(srv.URL+"/api.php", srv.URL+"/api_category.php", nil)

	questions, err := client.FetchQuestions(context.Background(), 10, "any", "any")

	assert.Nil(t, questions)
	assert.ErrorIs(t, err, apperrors.ErrSourceUnavailable)
}

func TestClient_FetchQuestions_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	t.Cleanup(srv.Close)

	client := NewClient(srv.URL+"/api.php", srv.URL+"/api_category.php", srv.Client())

	_, err := client.FetchQuestions(context.Background(), 10, "any", "any")

	assert.ErrorIs(t, err, apperrors.ErrSourceUnavailable)
}

func TestClient_FetchQuestions_MalformedJSON(t *testing.T) {
	srv, _ := newTestServer(t, `{"response_code":0,"results":[`)
	client := NewClient(srv.URL+"/api.php", srv.URL+"/api_category.php", srv.Client())

	_, err := client.FetchQuestions(context.Background(), 10, "any", "any")

	assert.ErrorIs(t, err, apperrors.ErrSourceUnavailable)
}

func TestClient_Categories(t *testing.T) {
	srv, _ := newTestServer(t, `{}`)
	client := NewClient(srv.URL+"/api.php", srv.URL+"/api_category.php", srv.Client())

	categories, err := client.Categories(context.Background())

	require.NoError(t, err)
	require.Len(t, categories, 3)
	// Имена категорий тоже декодируются
	assert.Equal(t, "Science & Nature", categories[1].Name)
	assert.Equal(t, 17, categories[1].ID)
}
