package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/yourusername/quizgen-api/internal/config"
	"github.com/yourusername/quizgen-api/internal/handler"
	"github.com/yourusername/quizgen-api/internal/middleware"
	pgRepo "github.com/yourusername/quizgen-api/internal/repository/postgres"
	redisRepo "github.com/yourusername/quizgen-api/internal/repository/redis"
	"github.com/yourusername/quizgen-api/internal/service"
	"github.com/yourusername/quizgen-api/internal/trivia"
	"github.com/yourusername/quizgen-api/pkg/database"
)

func main() {
	// Загружаем конфигурацию
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	log.Printf("Загрузка конфигурации из %s", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к PostgreSQL
	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	// Применяем миграции
	if err := database.MigrateDB(db); err != nil {
		log.Printf("Failed to migrate database: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к Redis
	redisClient, err := database.NewUniversalRedisClient(cfg.Redis)
	if err != nil {
		log.Printf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	log.Println("Successfully connected to Redis")

	// Инициализируем репозитории
	quizRepo := pgRepo.NewQuizRepo(db)

	cacheRepo, err := redisRepo.NewCacheRepo(redisClient)
	if err != nil {
		log.Printf("Failed to initialize CacheRepo: %v", err)
		os.Exit(1)
	}

	// Инициализируем адаптер провайдера вопросов.
	// Эндпоинты передаются явно из конфигурации, глобального состояния нет.
	httpClient := &http.Client{Timeout: 15 * time.Second}
	triviaClient := trivia.NewClient(cfg.Trivia.APIURL, cfg.Trivia.CategoriesURL, httpClient)

	// Резолв категорий по живому списку - валидная стартовая политика,
	// но с TTL > 0 оборачиваем его ограниченным кешем в Redis
	if cfg.Trivia.CategoryCacheTTLSec > 0 {
		ttl := time.Duration(cfg.Trivia.CategoryCacheTTLSec) * time.Second
		triviaClient.UseResolver(trivia.NewCachedCategoryResolver(triviaClient, cacheRepo, ttl))
		log.Printf("Кеш категорий включен, TTL %s", ttl)
	}

	// Инициализируем сервисы и обработчики
	quizService := service.NewQuizService(quizRepo, triviaClient)
	quizHandler := handler.NewQuizHandler(quizService)

	// Инициализируем роутер Gin
	router := gin.Default()

	isProduction := gin.Mode() == gin.ReleaseMode

	// Настройка доверенных прокси для корректной работы c.ClientIP()
	if isProduction {
		// Production: не доверять прокси-заголовкам
		if err := router.SetTrustedProxies(nil); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	} else {
		// Development: доверяем localhost
		if err := router.SetTrustedProxies([]string{"127.0.0.1", "::1"}); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	}

	// Настройка CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Настраиваем маршруты API
	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "Server is running"})
		})

		api.GET("/options", quizHandler.GetOptions)

		// Генерация ходит к внешнему провайдеру - прикрываем лимитом по IP
		rateLimiter := middleware.NewRateLimiter(redisClient)
		api.POST("/generate", rateLimiter.Limit(middleware.DefaultGenerateRateLimitConfig()), quizHandler.GenerateQuiz)

		history := api.Group("/history")
		{
			history.GET("", quizHandler.GetHistory)
			history.GET("/export", quizHandler.ExportHistory)
		}

		// Группа маршрутов, требующих quizID
		quizzes := api.Group("/quizzes/:id")
		quizzes.Use(middleware.ExtractUUIDParam("id", "quizID")) // Применяем middleware
		{
			quizzes.GET("", quizHandler.GetQuiz)
			quizzes.POST("/submit", quizHandler.SubmitAnswers)
		}
	}

	// Настраиваем HTTP сервер с тайм-аутами для защиты от slow client attacks
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Запускаем сервер в горутине
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Failed to start server: %v", err)
		}
	}()

	// Ожидаем сигнал остановки
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Контекст с таймаутом для graceful shutdown сервера
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
		os.Exit(1)
	}

	if err := redisClient.Close(); err != nil {
		log.Printf("Error closing Redis client: %v", err)
	}

	log.Println("Server exited properly")
}
