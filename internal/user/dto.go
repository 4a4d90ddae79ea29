package user

import (
	"time"

	"github.com/google/uuid"

	util "github.com/saulo-duarte/quizforge/internal/utils"
)

type CredentialsDTO struct {
	Username string `json:"username" validate:"required,min=3,max=150"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type UserResponse struct {
	ID            uuid.UUID `json:"id"`
	Username      string    `json:"username"`
	CurrentStreak int       `json:"current_streak"`
	LongestStreak int       `json:"longest_streak"`
	LastQuizDate  string    `json:"last_quiz_date,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

func ToResponse(u *User) UserResponse {
	return UserResponse{
		ID:            u.ID,
		Username:      u.Username,
		CurrentStreak: u.CurrentStreak,
		LongestStreak: u.LongestStreak,
		LastQuizDate:  util.FormatDate(u.LastQuizDate),
		CreatedAt:     u.CreatedAt,
	}
}
