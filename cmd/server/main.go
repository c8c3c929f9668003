package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"quiz_api/internal/api"
	"quiz_api/internal/app/service"
	"quiz_api/internal/common/security"
	"quiz_api/internal/domain/repository"
	"quiz_api/internal/platform/cache"
	"quiz_api/internal/platform/config"
	"quiz_api/internal/platform/database"
)

func main() {
	// 1. Load Configuration
	config.Load()
	fmt.Println("Configuration loaded.")

	// 2. Initialize JWT
	security.InitJWT()
	fmt.Println("JWT initialized.")

	// 3. Initialize Database
	database.Connect()
	defer database.Close()
	if err := database.Migrate(context.Background()); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	fmt.Println("Database connected and migrated.")

	// 4. Initialize Redis
	cache.ConnectRedis()
	defer cache.CloseRedis()
	fmt.Println("Redis connected.")

	// 5. Initialize Repositories
	userRepo := repository.NewPgUserRepository(database.DB)
	categoryRepo := repository.NewPgCategoryRepository(database.DB)
	questionRepo := repository.NewPgQuestionRepository(database.DB)

	// 6. Initialize Services
	loginLimiter := cache.NewLoginLimiter(cache.RDB, config.AppConfig.LoginAttemptLimit, config.AppConfig.LoginAttemptWindow)
	authService := service.NewAuthService(userRepo, loginLimiter)
	categoryService := service.NewCategoryService(categoryRepo)
	questionService := service.NewQuestionService(questionRepo)

	// 7. Initialize Router & HTTP Server
	router := api.NewRouter(authService, categoryService, questionService)

	server := &http.Server{
		Addr:         ":" + config.AppConfig.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 8. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on port %s", config.AppConfig.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", config.AppConfig.APIPort, err)
		}
	}()
	log.Println("Server started successfully.")

	<-stop // Wait for interrupt signal

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server stopped gracefully.")
}
