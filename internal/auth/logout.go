package auth

import (
	"net/http"

	"github.com/saulo-duarte/quizforge/internal/config"
)

type Handler struct {
	cookies []string
}

// NewHandler returns a logout handler that expires the token cookie and any
// cookie named in extra.
func NewHandler(extra ...string) *Handler {
	return &Handler{cookies: append([]string{CookieName}, extra...)}
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	for _, name := range h.cookies {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   r.TLS != nil,
			SameSite: http.SameSiteLaxMode,
		})
	}

	config.WithContext(r.Context()).Debug("User logged out")
	config.JSON(w, http.StatusOK, map[string]string{
		"message": "You have been logged out.",
	})
}
