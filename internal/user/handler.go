package user

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/saulo-duarte/quizforge/internal/auth"
	"github.com/saulo-duarte/quizforge/internal/config"
	"github.com/saulo-duarte/quizforge/internal/validator"
)

type Handler struct {
	service UserService
}

func NewHandler(s UserService) *Handler {
	return &Handler{service: s}
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	dto, ok := decodeCredentials(w, r)
	if !ok {
		return
	}

	u, token, err := h.service.Register(r.Context(), dto)
	if err != nil {
		if errors.Is(err, ErrUsernameTaken) {
			http.Error(w, "Username already exists.", http.StatusConflict)
			return
		}
		log.WithError(err).Error("Failed to register user")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	auth.SetTokenCookie(w, token, r.TLS != nil)
	config.JSON(w, http.StatusCreated, AuthResponse{User: ToResponse(u), Token: token})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	dto, ok := decodeCredentials(w, r)
	if !ok {
		return
	}

	u, token, err := h.service.Login(r.Context(), dto)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			http.Error(w, "Login failed. Check username and password.", http.StatusUnauthorized)
			return
		}
		log.WithError(err).Error("Failed to log in")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	auth.SetTokenCookie(w, token, r.TLS != nil)
	config.JSON(w, http.StatusOK, AuthResponse{User: ToResponse(u), Token: token})
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	u, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}
		log.WithError(err).Error("Failed to load current user")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusOK, ToResponse(u))
}

func decodeCredentials(w http.ResponseWriter, r *http.Request) (CredentialsDTO, bool) {
	var dto CredentialsDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return dto, false
	}
	if fields := validator.Struct(dto); fields != nil {
		http.Error(w, validator.Summary(fields), http.StatusBadRequest)
		return dto, false
	}
	return dto, true
}
