package progress

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Achievement struct {
	ID          uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:idx_achievement_user_name" json:"user_id"`
	Name        string    `gorm:"size:100;not null;uniqueIndex:idx_achievement_user_name" json:"name"`
	Description string    `gorm:"size:255" json:"description"`
	Icon        string    `gorm:"size:50" json:"icon"`
	DateEarned  time.Time `gorm:"autoCreateTime" json:"date_earned"`
}

func (a *Achievement) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// Outcome is the part of a finished quiz that badge rules look at.
type Outcome struct {
	Score int
	Total int
}
