package quiz

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/saulo-duarte/quizforge/internal/aiquiz"
)

// Question is a stored member of a session's active question set.
type Question struct {
	ID            uuid.UUID           `gorm:"type:char(36);primaryKey" json:"id"`
	SessionID     string              `gorm:"size:64;not null;index:idx_question_set" json:"-"`
	UserID        uuid.UUID           `gorm:"type:char(36);not null;index:idx_question_set" json:"-"`
	Type          aiquiz.QuestionType `gorm:"size:20;not null" json:"type"`
	Text          string              `gorm:"type:text;not null" json:"question"`
	Options       datatypes.JSON      `json:"options"`
	CorrectAnswer string              `gorm:"type:text;not null" json:"-"`
	Explanation   string              `gorm:"type:text" json:"-"`
	OrderIndex    int                 `gorm:"not null" json:"order_index"`
	CreatedAt     time.Time           `gorm:"autoCreateTime" json:"-"`
}

func (q *Question) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}

func (q *Question) OptionList() []string {
	var opts []string
	if len(q.Options) == 0 {
		return opts
	}
	_ = json.Unmarshal(q.Options, &opts)
	return opts
}

// QuizResult is an immutable record of a graded submission.
type QuizResult struct {
	ID             uuid.UUID           `gorm:"type:char(36);primaryKey" json:"id"`
	UserID         uuid.UUID           `gorm:"type:char(36);not null;index" json:"user_id"`
	Topic          string              `gorm:"size:255;not null" json:"topic"`
	Difficulty     aiquiz.Difficulty   `gorm:"size:20;not null" json:"difficulty"`
	QuestionType   aiquiz.QuestionType `gorm:"size:20;not null" json:"question_type"`
	Score          int                 `gorm:"not null" json:"score"`
	TotalQuestions int                 `gorm:"not null" json:"total_questions"`
	Details        datatypes.JSON      `json:"-"`
	CreatedAt      time.Time           `gorm:"autoCreateTime;index" json:"created_at"`
}

func (r *QuizResult) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

func (r *QuizResult) DetailList() []ResultDetail {
	var details []ResultDetail
	if len(r.Details) == 0 {
		return details
	}
	_ = json.Unmarshal(r.Details, &details)
	return details
}

// ResultDetail is the per-question breakdown kept inside a QuizResult.
type ResultDetail struct {
	QuestionID    uuid.UUID `json:"question_id"`
	Question      string    `json:"question"`
	Options       []string  `json:"options,omitempty"`
	UserAnswer    string    `json:"user_answer"`
	CorrectAnswer string    `json:"correct_answer"`
	IsCorrect     bool      `json:"is_correct"`
	Feedback      string    `json:"feedback"`
	Explanation   string    `json:"explanation,omitempty"`
}

func toStoredQuestions(generated []aiquiz.Question) []Question {
	out := make([]Question, 0, len(generated))
	for i, g := range generated {
		opts, _ := json.Marshal(g.Options)
		if g.Options == nil {
			opts = nil
		}
		out = append(out, Question{
			ID:            uuid.New(),
			Type:          g.Type,
			Text:          g.Text,
			Options:       datatypes.JSON(opts),
			CorrectAnswer: g.CorrectAnswer,
			Explanation:   g.Explanation,
			OrderIndex:    i,
		})
	}
	return out
}

func (q *Question) toGenerated() aiquiz.Question {
	return aiquiz.Question{
		Text:          q.Text,
		Type:          q.Type,
		Options:       q.OptionList(),
		CorrectAnswer: q.CorrectAnswer,
		Explanation:   q.Explanation,
	}
}
