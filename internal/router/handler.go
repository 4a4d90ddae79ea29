package router

import (
	"net/http"

	"github.com/saulo-duarte/quizforge/internal/container"
)

// FromContainer builds the HTTP handler for a wired container.
func FromContainer(c *container.Container) http.Handler {
	return New(RouterConfig{
		UserHandler:       c.UserContainer.Handler,
		ProgressHandler:   c.ProgressContainer.Handler,
		QuizHandler:       c.QuizContainer.Handler,
		AllowedOrigins:    c.Settings.AllowedOrigins,
		GenerateRateLimit: c.Settings.GenerateRateLimit,
	})
}
