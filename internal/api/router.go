package api

import (
	"net/http"
	"time"

	"quiz_api/internal/api/handler"
	"quiz_api/internal/api/middleware"
	"quiz_api/internal/app/service"
	"quiz_api/internal/common"
	"quiz_api/internal/common/security"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	authService *service.AuthService,
	categoryService *service.CategoryService,
	questionService *service.QuestionService,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger) // Chi's logger
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.StripSlashes) // Accepts /users/ as well as /users
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// Permissive CORS: all origins, methods, headers.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
	}))

	// JWT Auth Middleware Setup
	// It will search for a token in "Authorization: Bearer T".
	r.Use(jwtauth.Verifier(security.TokenAuth)) // Verifies token, puts claims in context

	authenticator := middleware.NewAuthenticator(authService)

	// Service descriptor
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		common.RespondWithJSON(w, http.StatusOK, map[string]string{
			"title":       "Quiz API",
			"description": "A quiz application backend",
			"version":     "1.0.0",
			"status":      "running",
		})
	})

	// Public health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Auth routes (public)
	authHandler := handler.NewAuthHandler(authService)
	r.Group(func(publicAuth chi.Router) {
		authHandler.RegisterRoutes(publicAuth)
	})

	// Category routes (list public, create admin)
	categoryHandler := handler.NewCategoryHandler(categoryService, authenticator)
	r.Route("/categories", categoryHandler.RegisterRoutes)

	// Question routes (reads public, create admin)
	questionHandler := handler.NewQuestionHandler(questionService, authenticator)
	r.Route("/questions", questionHandler.RegisterRoutes)

	return r
}
