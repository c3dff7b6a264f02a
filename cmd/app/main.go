package main

import (
	"context"
	"fmt"
	"log"

	"eduplatform/config"
	"eduplatform/internal/application/usecase"
	"eduplatform/internal/domain"
	"eduplatform/internal/infrastructure/cache"
	"eduplatform/internal/infrastructure/render"
	"eduplatform/internal/infrastructure/repository"
	"eduplatform/internal/infrastructure/security"
	"eduplatform/internal/logger"
	"eduplatform/internal/middleware"
	handlers "eduplatform/internal/transport/http"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// 1. Конфиг
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLog, err := logger.New(cfg.AppEnv)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer appLog.Sync()

	// 2. Подключение к БД
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}

	// 3. Миграции
	log.Println("Running migrations...")
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.CourseEntitlement{},
		&domain.Course{},
		&domain.Module{},
		&domain.ContentItem{},
		&domain.CompletedContent{},
		&domain.ModuleProgress{},
		&domain.CourseProgressSummary{},
		&domain.Exam{},
		&domain.ExamAttempt{},
		&domain.Certificate{},
	); err != nil {
		log.Fatalf("Failed to migrate DB: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	// 4. Инициализация слоев
	catalogCache := cache.NewCatalogCache(rdb)
	tokenCache := cache.NewTokenCache(rdb)

	userRepo := repository.NewUserRepository(db)
	courseRepo := repository.NewCourseRepository(db, catalogCache)
	progressRepo := repository.NewProgressRepository(db)
	certRepo := repository.NewCertificateRepository(db)
	examRepo := repository.NewExamRepository(db)

	hasher := security.NewPasswordHasher()
	tokenManager := security.NewTokenManager(cfg.AccessSecret, cfg.RefreshSecret)

	authUC := usecase.NewAuthUseCase(userRepo, tokenCache, hasher, tokenManager)
	progressUC := usecase.NewProgressUseCase(userRepo, courseRepo, progressRepo, appLog)
	certUC := usecase.NewCertificateUseCase(
		userRepo, courseRepo, examRepo, certRepo, progressUC,
		render.NewQRGenerator(), render.NewCertificatePDF(),
		cfg.CertificateBaseURL, appLog,
	)

	rateLimiter := middleware.NewRateLimiter(rdb)

	authHandler := handlers.NewAuthHandler(authUC)
	courseHandler := handlers.NewCourseHandler(courseRepo, userRepo)
	progressHandler := handlers.NewProgressHandler(progressUC)
	certHandler := handlers.NewCertificateHandler(certUC)

	// 5. Роутер и запуск HTTP сервера
	router := handlers.NewRouter(cfg.CORSOrigins, tokenManager, rateLimiter,
		authHandler, courseHandler, progressHandler, certHandler)

	appLog.Info("server starting", "port", cfg.Port, "env", cfg.AppEnv)
	if err := router.Run(cfg.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
