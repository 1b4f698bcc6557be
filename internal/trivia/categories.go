package trivia

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/yourusername/quizgen-api/internal/domain/repository"
	apperrors "github.com/yourusername/quizgen-api/internal/pkg/errors"
)

const categoryCacheKey = "trivia:categories"

// CachedCategoryResolver оборачивает живой резолвер кешем с ограниченным TTL.
// Кеш хранит весь список категорий: резолв остается сравнением по именам,
// как и у живого резолвера. Ошибки кеша не фатальны - идем к провайдеру.
type CachedCategoryResolver struct {
	source repository.QuestionSource
	cache  repository.CacheRepository
	ttl    time.Duration
}

// NewCachedCategoryResolver создает кеширующий резолвер категорий
func NewCachedCategoryResolver(source repository.QuestionSource, cache repository.CacheRepository, ttl time.Duration) *CachedCategoryResolver {
	return &CachedCategoryResolver{
		source: source,
		cache:  cache,
		ttl:    ttl,
	}
}

// Resolve ищет id категории по имени без учета регистра
func (r *CachedCategoryResolver) Resolve(ctx context.Context, name string) (int, bool, error) {
	categories, err := r.categories(ctx)
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

// categories возвращает список категорий из кеша или от провайдера
func (r *CachedCategoryResolver) categories(ctx context.Context) ([]repository.Category, error) {
	var cached []repository.Category
	err := r.cache.GetJSON(categoryCacheKey, &cached)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		log.Printf("[CategoryResolver] Ошибка чтения кеша категорий: %v", err)
	}

	categories, err := r.source.Categories(ctx)
	if err != nil {
		return nil, err
	}

	if err := r.cache.SetJSON(categoryCacheKey, categories, r.ttl); err != nil {
		log.Printf("[CategoryResolver] Ошибка записи кеша категорий: %v", err)
	}

	return categories, nil
}
