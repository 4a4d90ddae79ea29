package progress

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AchievementRepository interface {
	WithTx(tx *gorm.DB) AchievementRepository
	FindAchievementsByUser(userID uuid.UUID) ([]Achievement, error)
	Create(a *Achievement) (bool, error)
}

type achievementRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) AchievementRepository {
	return &achievementRepository{db: db}
}

func (r *achievementRepository) WithTx(tx *gorm.DB) AchievementRepository {
	return &achievementRepository{db: tx}
}

func (r *achievementRepository) FindAchievementsByUser(userID uuid.UUID) ([]Achievement, error) {
	var achievements []Achievement
	if err := r.db.
		Where("user_id = ?", userID).
		Order("date_earned ASC").
		Find(&achievements).Error; err != nil {
		return nil, err
	}
	return achievements, nil
}

// Create ignores a duplicate (user, name) pair and reports whether a row was inserted.
func (r *achievementRepository) Create(a *Achievement) (bool, error) {
	res := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(a)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
