package trivia

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/quizgen-api/internal/domain/entity"
	"github.com/yourusername/quizgen-api/internal/domain/repository"
	apperrors "github.com/yourusername/quizgen-api/internal/pkg/errors"
)

// MockCategorySource реализует repository.QuestionSource
type MockCategorySource struct {
	mock.Mock
}

func (m *MockCategorySource) FetchQuestions(ctx context.Context, amount int, category, difficulty string) ([]entity.Question, error) {
	args := m.Called(ctx, amount, category, difficulty)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Question), args.Error(1)
}

func (m *MockCategorySource) Categories(ctx context.Context) ([]repository.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.Category), args.Error(1)
}

// MockCacheRepo реализует repository.CacheRepository
type MockCacheRepo struct {
	mock.Mock
}

func (m *MockCacheRepo) Set(key string, value interface{}, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *MockCacheRepo) Get(key string) (string, error) {
	args := m.Called(key)
	return args.String(0), args.Error(1)
}

func (m *MockCacheRepo) Delete(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

func (m *MockCacheRepo) SetJSON(key string, value interface{}, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *MockCacheRepo) GetJSON(key string, dest interface{}) error {
	args := m.Called(key, dest)
	return args.Error(0)
}

func (m *MockCacheRepo) Exists(key string) (bool, error) {
	args := m.Called(key)
	return args.Bool(0), args.Error(1)
}

var testCategories = []repository.Category{
	{ID: 9, Name: "General Knowledge"},
	{ID: 23, Name: "History"},
}

func TestCachedCategoryResolver_CacheMiss(t *testing.T) {
	// Arrange: кеш пустой, идем к провайдеру и записываем результат
	mockSource := new(MockCategorySource)
	mockCache := new(MockCacheRepo)
	ttl := 5 * time.Minute

	mockCache.On("GetJSON", categoryCacheKey, mock.Anything).Return(apperrors.ErrNotFound)
	mockSource.On("Categories", mock.Anything).Return(testCategories, nil)
	mockCache.On("SetJSON", categoryCacheKey, testCategories, ttl).Return(nil)

	resolver := NewCachedCategoryResolver(mockSource, mockCache, ttl)

	// Act
	id, ok, err := resolver.Resolve(context.Background(), "history")

	// Assert
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 23, id)
	mockSource.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}

func TestCachedCategoryResolver_CacheHit(t *testing.T) {
	// Arrange: кеш наполнен, провайдер не вызывается
	mockSource := new(MockCategorySource)
	mockCache := new(MockCacheRepo)

	mockCache.On("GetJSON", categoryCacheKey, mock.Anything).
		Run(func(args mock.Arguments) {
			dest := args.Get(1).(*[]repository.Category)
			data, _ := json.Marshal(testCategories)
			_ = json.Unmarshal(data, dest)
		}).
		Return(nil)

	resolver := NewCachedCategoryResolver(mockSource, mockCache, time.Minute)

	// Act
	id, ok, err := resolver.Resolve(context.Background(), "General Knowledge")

	// Assert
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 9, id)
	mockSource.AssertNotCalled(t, "Categories")
}

func TestCachedCategoryResolver_CacheErrorsNonFatal(t *testing.T) {
	// Ошибки кеша не фатальны: и чтение, и запись падают, резолв работает
	mockSource := new(MockCategorySource)
	mockCache := new(MockCacheRepo)

	cacheDown := errors.New("connection refused")
	mockCache.On("GetJSON", categoryCacheKey, mock.Anything).Return(cacheDown)
	mockSource.On("Categories", mock.Anything).Return(testCategories, nil)
	mockCache.On("SetJSON", categoryCacheKey, testCategories, mock.Anything).Return(cacheDown)

	resolver := NewCachedCategoryResolver(mockSource, mockCache, time.Minute)

	id, ok, err := resolver.Resolve(context.Background(), "History")

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 23, id)
}

func TestCachedCategoryResolver_UnknownCategory(t *testing.T) {
	mockSource := new(MockCategorySource)
	mockCache := new(MockCacheRepo)

	mockCache.On("GetJSON", categoryCacheKey, mock.Anything).Return(apperrors.ErrNotFound)
	mockSource.On("Categories", mock.Anything).Return(testCategories, nil)
	mockCache.On("SetJSON", categoryCacheKey, testCategories, mock.Anything).Return(nil)

	resolver := NewCachedCategoryResolver(mockSource, mockCache, time.Minute)

	_, ok, err := resolver.Resolve(context.Background(), "Quantum Gastronomy")

	require.NoError(t, err)
	assert.False(t, ok)
}
