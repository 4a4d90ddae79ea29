package progress

import (
	"gorm.io/gorm"

	"github.com/saulo-duarte/quizforge/internal/user"
)

type ProgressContainer struct {
	Repo    AchievementRepository
	Service ProgressService
	Handler *Handler
}

func NewProgressContainer(db *gorm.DB, userRepo user.UserRepository) *ProgressContainer {
	repo := NewRepository(db)
	service := NewService(repo, userRepo)

	return &ProgressContainer{
		Repo:    repo,
		Service: service,
		Handler: NewHandler(service),
	}
}
