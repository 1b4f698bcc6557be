package trivia

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/yourusername/quizgen-api/internal/domain/entity"
	"github.com/yourusername/quizgen-api/internal/domain/repository"
	apperrors "github.com/yourusername/quizgen-api/internal/pkg/errors"
)

// Client реализует repository.QuestionSource поверх Open Trivia Database.
// Все адреса передаются явно при конструировании, глобальной конфигурации нет.
type Client struct {
	httpClient    *http.Client
	apiURL        string
	categoriesURL string
	resolver      repository.CategoryResolver
}

// NewClient создает новый клиент провайдера вопросов.
// httpClient == nil - используется http.DefaultClient.
func NewClient(apiURL, categoriesURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	c := &Client{
		httpClient:    httpClient,
		apiURL:        apiURL,
		categoriesURL: categoriesURL,
	}
	// По умолчанию имя категории резолвится по живому списку при каждом вызове
	c.resolver = c
	return c
}

// UseResolver подменяет резолвер категорий (например, на кеширующий)
func (c *Client) UseResolver(resolver repository.CategoryResolver) {
	if resolver != nil {
		c.resolver = resolver
	}
}

// triviaResponse - сырой ответ провайдера на запрос вопросов
type triviaResponse struct {
	ResponseCode int           `json:"response_code"`
	Results      []rawQuestion `json:"results"`
}

// rawQuestion - вопрос в том виде, как его отдает провайдер (текст закодирован)
type rawQuestion struct {
	Type             string   `json:"type"`
	Difficulty       string   `json:"difficulty"`
	Category         string   `json:"category"`
	Question         string   `json:"question"`
	CorrectAnswer    string   `json:"correct_answer"`
	IncorrectAnswers []string `json:"incorrect_answers"`
}

// categoriesResponse - сырой ответ провайдера на запрос списка категорий
type categoriesResponse struct {
	TriviaCategories []repository.Category `json:"trivia_categories"`
}

// FetchQuestions запрашивает amount вопросов у провайдера.
// Нераспознанная категория и difficulty "any" опускают соответствующий фильтр.
func (c *Client) FetchQuestions(ctx context.Context, amount int, category, difficulty string) ([]entity.Question, error) {
	params := url.Values{}
	params.Set("amount", strconv.Itoa(amount))
	params.Set("type", "multiple")

	if category != "" && category != "any" {
		id, ok, err := c.resolver.Resolve(ctx, category)
		if err != nil {
			return nil, fmt.Errorf("resolve category %q: %w", category, err)
		}
		if ok {
			params.Set("category", strconv.Itoa(id))
		}
	}

	if difficulty != "" && difficulty != entity.DifficultyAny {
		params.Set("difficulty", strings.ToLower(difficulty))
	}

	var resp triviaResponse
	if err := c.getJSON(ctx, c.apiURL, params, &resp); err != nil {
		return nil, err
	}

	// response_code 0 = success, все остальное - у провайдера нет вопросов
	// под запрошенные параметры
	if resp.ResponseCode != 0 {
		return nil, fmt.Errorf("%w: provider response_code %d", apperrors.ErrInsufficientQuestions, resp.ResponseCode)
	}
	if len(resp.Results) == 0 {
		return nil, fmt.Errorf("%w: provider returned no results", apperrors.ErrInsufficientQuestions)
	}

	questions := make([]entity.Question, 0, len(resp.Results))
	for _, raw := range resp.Results {
		questions = append(questions, entity.Question{
			Question:         decodeEntities(raw.Question),
			CorrectAnswer:    decodeEntities(raw.CorrectAnswer),
			IncorrectAnswers: decodeAll(raw.IncorrectAnswers),
			Type:             raw.Type,
			Difficulty:       raw.Difficulty,
			Category:         decodeEntities(raw.Category),
		})
	}

	return questions, nil
}

// Categories возвращает декодированный список категорий провайдера
func (c *Client) Categories(ctx context.Context) ([]repository.Category, error) {
	var resp categoriesResponse
	if err := c.getJSON(ctx, c.categoriesURL, nil, &resp); err != nil {
		return nil, err
	}

	categories := make([]repository.Category, 0, len(resp.TriviaCategories))
	for _, cat := range resp.TriviaCategories {
		categories = append(categories, repository.Category{
			ID:   cat.ID,
			Name: decodeEntities(cat.Name),
		})
	}
	return categories, nil
}

// Resolve сопоставляет имя категории с id по живому списку провайдера.
// Сравнение без учета регистра. Не найдено - ok == false, фильтр опускается.
func (c *Client) Resolve(ctx context.Context, name string) (int, bool, error) {
	categories, err := c.Categories(ctx)
	if err != nil {
		return 0, false, err
	}

	for _, cat := range categories {
		if strings.EqualFold(cat.Name, name) {
			return cat.ID, true, nil
		}
	}
	return 0, false, nil
}

// getJSON выполняет GET запрос и декодирует JSON-ответ.
// Сетевые ошибки и не-200 статусы переводятся в ErrSourceUnavailable.
func (c *Client) getJSON(ctx context.Context, rawURL string, params url.Values, dest interface{}) error {
	reqURL := rawURL
	if len(params) > 0 {
		sep := "?"
		if strings.Contains(rawURL, "?") {
			sep = "&"
		}
		reqURL = rawURL + sep + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("build trivia request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: provider returned HTTP %d", apperrors.ErrSourceUnavailable, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("%w: malformed provider response: %v", apperrors.ErrSourceUnavailable, err)
	}
	return nil
}
