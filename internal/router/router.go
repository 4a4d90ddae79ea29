package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/saulo-duarte/quizforge/internal/auth"
	"github.com/saulo-duarte/quizforge/internal/config"
	"github.com/saulo-duarte/quizforge/internal/middlewares"
	"github.com/saulo-duarte/quizforge/internal/progress"
	"github.com/saulo-duarte/quizforge/internal/quiz"
	"github.com/saulo-duarte/quizforge/internal/session"
	"github.com/saulo-duarte/quizforge/internal/user"
)

type RouterConfig struct {
	UserHandler       *user.Handler
	ProgressHandler   *progress.Handler
	QuizHandler       *quiz.Handler
	AllowedOrigins    []string
	GenerateRateLimit int
}

func New(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewares.Cors(cfg.AllowedOrigins))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		config.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", cfg.UserHandler.Register)
		r.Post("/login", cfg.UserHandler.Login)
		r.Post("/logout", auth.NewHandler(session.CookieName).Logout)
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.AuthMiddleware)

		r.Mount("/users", user.Routes(cfg.UserHandler, cfg.ProgressHandler.ListAchievements))
		r.Mount("/quiz", quiz.Routes(cfg.QuizHandler, cfg.GenerateRateLimit))
		r.Mount("/history", quiz.HistoryRoutes(cfg.QuizHandler))
	})
	return r
}
