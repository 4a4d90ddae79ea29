package user

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes serves /users. achievements is mounted at /me/achievements when set.
func Routes(h *Handler, achievements http.HandlerFunc) chi.Router {
	r := chi.NewRouter()

	r.Get("/me", h.GetUser)
	if achievements != nil {
		r.Get("/me/achievements", achievements)
	}
	return r
}
