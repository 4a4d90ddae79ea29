package quiz

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ResultRepository interface {
	WithTx(tx *gorm.DB) ResultRepository
	Create(r *QuizResult) error
	FindResultsByUser(userID uuid.UUID) ([]QuizResult, error)
	FindByIDAndUser(id, userID uuid.UUID) (*QuizResult, error)
	CountByUser(userID uuid.UUID) (int64, error)
}

type resultRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) ResultRepository {
	return &resultRepository{db: db}
}

func (r *resultRepository) WithTx(tx *gorm.DB) ResultRepository {
	return &resultRepository{db: tx}
}

func (r *resultRepository) Create(res *QuizResult) error {
	return r.db.Create(res).Error
}

// FindResultsByUser lists results newest first.
func (r *resultRepository) FindResultsByUser(userID uuid.UUID) ([]QuizResult, error) {
	var results []QuizResult
	if err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *resultRepository) FindByIDAndUser(id, userID uuid.UUID) (*QuizResult, error) {
	var res QuizResult
	if err := r.db.First(&res, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &res, nil
}

func (r *resultRepository) CountByUser(userID uuid.UUID) (int64, error) {
	var n int64
	if err := r.db.Model(&QuizResult{}).Where("user_id = ?", userID).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
