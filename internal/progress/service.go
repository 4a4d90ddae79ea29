package progress

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/saulo-duarte/quizforge/internal/config"
	"github.com/saulo-duarte/quizforge/internal/user"
	util "github.com/saulo-duarte/quizforge/internal/utils"
)

type ProgressService interface {
	// RecordCompletion updates the streak and awards badges for a finished quiz.
	// All writes go through tx. quizCount includes the quiz being recorded.
	RecordCompletion(ctx context.Context, tx *gorm.DB, userID uuid.UUID, o Outcome, quizCount int, completedAt time.Time) ([]string, error)
	ListAchievements(ctx context.Context, userID uuid.UUID) ([]Achievement, error)
}

type progressService struct {
	repo     AchievementRepository
	userRepo user.UserRepository
}

func NewService(repo AchievementRepository, userRepo user.UserRepository) ProgressService {
	return &progressService{repo: repo, userRepo: userRepo}
}

func (s *progressService) RecordCompletion(ctx context.Context, tx *gorm.DB, userID uuid.UUID, o Outcome, quizCount int, completedAt time.Time) ([]string, error) {
	log := config.WithContext(ctx)
	users := s.userRepo.WithTx(tx)
	achievements := s.repo.WithTx(tx)

	u, err := users.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, user.ErrUserNotFound
	}

	RecordQuizCompletion(u, util.CivilDay(completedAt))
	if err := users.Update(u); err != nil {
		log.WithError(err).Error("Failed to update streak")
		return nil, err
	}

	existing, err := achievements.FindAchievementsByUser(userID)
	if err != nil {
		return nil, err
	}
	owned := make([]string, 0, len(existing))
	for _, a := range existing {
		owned = append(owned, a.Name)
	}

	awarded := []string{}
	for _, b := range EvaluateAchievements(u, o, quizCount, owned) {
		a := &Achievement{
			UserID:      userID,
			Name:        b.Name,
			Description: b.Description,
			Icon:        b.Icon,
			DateEarned:  completedAt,
		}
		inserted, err := achievements.Create(a)
		if err != nil {
			log.WithError(err).WithField("badge", b.Name).Error("Failed to award badge")
			return nil, err
		}
		if !inserted {
			log.WithField("badge", b.Name).Debug("Badge already awarded")
			continue
		}
		awarded = append(awarded, b.Name)
	}

	log.WithFields(logrus.Fields{
		"current_streak": u.CurrentStreak,
		"longest_streak": u.LongestStreak,
		"new_badges":     awarded,
	}).Info("Progress recorded")

	return awarded, nil
}

func (s *progressService) ListAchievements(ctx context.Context, userID uuid.UUID) ([]Achievement, error) {
	achievements, err := s.repo.FindAchievementsByUser(userID)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to list achievements")
		return nil, err
	}
	return achievements, nil
}
