package quiz

import (
	"time"

	"github.com/google/uuid"

	"github.com/saulo-duarte/quizforge/internal/aiquiz"
	util "github.com/saulo-duarte/quizforge/internal/utils"
)

const (
	DefaultQuestionLimit   = 5
	DefaultDurationSeconds = 60
	DefaultTopic           = "General Quiz"
	NoAnswer               = "No Answer"
)

type GenerateRequestDTO struct {
	Topic         string `json:"topic" validate:"max=500"`
	QuestionLimit int    `json:"question_limit" validate:"omitempty,min=1,max=50"`
	Difficulty    string `json:"difficulty" validate:"omitempty,max=20"`
	QuestionType  string `json:"question_type" validate:"omitempty,max=20"`
	Duration      int    `json:"duration" validate:"omitempty,min=10,max=7200"`
}

type SubmitRequestDTO struct {
	Answers map[string]string `json:"answers"`
}

// GenerateInput is a validated generation request. SourceText is set when the
// quiz comes from an uploaded document.
type GenerateInput struct {
	Topic           string
	SourceName      string
	SourceText      string
	FromDocument    bool
	QuestionCount   int
	Difficulty      aiquiz.Difficulty
	QuestionType    aiquiz.QuestionType
	DurationSeconds int
}

type QuestionView struct {
	ID      uuid.UUID           `json:"id"`
	Number  int                 `json:"number"`
	Type    aiquiz.QuestionType `json:"type"`
	Text    string              `json:"question"`
	Options []string            `json:"options,omitempty"`
}

type ActiveQuiz struct {
	Topic           string              `json:"topic"`
	Difficulty      aiquiz.Difficulty   `json:"difficulty"`
	QuestionType    aiquiz.QuestionType `json:"question_type"`
	DurationSeconds int                 `json:"duration"`
	GeneratedAt     time.Time           `json:"generated_at"`
	Questions       []QuestionView      `json:"questions"`
}

type SubmitResult struct {
	ResultID  uuid.UUID      `json:"result_id"`
	Score     int            `json:"score"`
	Total     int            `json:"total"`
	Details   []ResultDetail `json:"details"`
	NewBadges []string       `json:"new_badges"`
}

type DetailView struct {
	ResultDetail
	ExplanationHTML string `json:"explanation_html,omitempty"`
	FeedbackHTML    string `json:"feedback_html,omitempty"`
}

type ResultSummary struct {
	ID             uuid.UUID           `json:"id"`
	Topic          string              `json:"topic"`
	Difficulty     aiquiz.Difficulty   `json:"difficulty"`
	QuestionType   aiquiz.QuestionType `json:"question_type"`
	Score          int                 `json:"score"`
	TotalQuestions int                 `json:"total_questions"`
	CreatedAt      time.Time           `json:"created_at"`
}

type ResultResponse struct {
	ResultSummary
	Details   []DetailView `json:"details"`
	NewBadges []string     `json:"new_badges,omitempty"`
}

func toQuestionViews(questions []Question) []QuestionView {
	views := make([]QuestionView, 0, len(questions))
	for i := range questions {
		q := &questions[i]
		views = append(views, QuestionView{
			ID:      q.ID,
			Number:  i + 1,
			Type:    q.Type,
			Text:    q.Text,
			Options: q.OptionList(),
		})
	}
	return views
}

func ToSummary(r *QuizResult) ResultSummary {
	return ResultSummary{
		ID:             r.ID,
		Topic:          r.Topic,
		Difficulty:     r.Difficulty,
		QuestionType:   r.QuestionType,
		Score:          r.Score,
		TotalQuestions: r.TotalQuestions,
		CreatedAt:      r.CreatedAt,
	}
}

func toDetailViews(details []ResultDetail) []DetailView {
	views := make([]DetailView, 0, len(details))
	for _, d := range details {
		v := DetailView{ResultDetail: d}
		if d.Explanation != "" {
			v.ExplanationHTML = util.Markdown(d.Explanation)
		}
		if d.Feedback != "" {
			v.FeedbackHTML = util.Markdown(d.Feedback)
		}
		views = append(views, v)
	}
	return views
}

func ToResultResponse(r *QuizResult) ResultResponse {
	return ResultResponse{
		ResultSummary: ToSummary(r),
		Details:       toDetailViews(r.DetailList()),
	}
}
