package progress

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/saulo-duarte/quizforge/internal/auth"
	"github.com/saulo-duarte/quizforge/internal/config"
)

type Handler struct {
	service ProgressService
}

func NewHandler(s ProgressService) *Handler {
	return &Handler{service: s}
}

func (h *Handler) ListAchievements(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	achievements, err := h.service.ListAchievements(r.Context(), userID)
	if err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if achievements == nil {
		achievements = []Achievement{}
	}
	config.JSON(w, http.StatusOK, achievements)
}
