package grading

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/saulo-duarte/quizforge/internal/aiquiz"
	"github.com/saulo-duarte/quizforge/internal/config"
)

const (
	// FallbackFeedback marks answers that could not be graded by the oracle. Such
	// answers count as incorrect so the submission itself never fails.
	FallbackFeedback = "Automatic grading is unavailable right now; this answer was not evaluated."
	NoAnswerFeedback = "No answer provided."
)

type Item struct {
	Question aiquiz.Question
	Answer   string
}

type Verdict struct {
	IsCorrect bool   `json:"isCorrect"`
	Feedback  string `json:"feedback"`
}

type Engine struct {
	grader Grader
}

func NewEngine(grader Grader) *Engine {
	return &Engine{grader: grader}
}

// Grade returns one verdict per item, in order. It never fails.
func (e *Engine) Grade(ctx context.Context, qt aiquiz.QuestionType, items []Item) []Verdict {
	if len(items) == 0 {
		return []Verdict{}
	}
	if qt.IsClosedForm() {
		return gradeExact(items)
	}
	return e.gradeWithOracle(ctx, qt, items)
}

func gradeExact(items []Item) []Verdict {
	verdicts := make([]Verdict, len(items))
	for i, item := range items {
		correct := item.Answer != "" && item.Answer == item.Question.CorrectAnswer
		verdicts[i] = Verdict{IsCorrect: correct, Feedback: item.Question.Explanation}
	}
	return verdicts
}

func (e *Engine) gradeWithOracle(ctx context.Context, qt aiquiz.QuestionType, items []Item) []Verdict {
	log := config.WithContext(ctx).WithFields(logrus.Fields{
		"question_type": qt,
		"items":         len(items),
	})

	if allBlank(items) {
		verdicts := make([]Verdict, len(items))
		for i := range verdicts {
			verdicts[i] = Verdict{Feedback: NoAnswerFeedback}
		}
		return verdicts
	}

	requests := make([]GradeRequest, len(items))
	for i, item := range items {
		requests[i] = GradeRequest{
			Question:   item.Question.Text,
			CorrectKey: item.Question.CorrectAnswer,
			UserAnswer: item.Answer,
		}
	}

	if e.grader == nil {
		log.Warn("No grader configured, using fallback verdicts")
		return fallback(len(items))
	}

	verdicts, err := e.grader.Grade(ctx, qt, requests)
	if err != nil {
		log.WithError(err).Warn("Grading oracle failed, using fallback verdicts")
		return fallback(len(items))
	}
	if len(verdicts) != len(items) {
		log.WithField("verdicts", len(verdicts)).Warn("Grading oracle returned a misaligned batch, using fallback verdicts")
		return fallback(len(items))
	}
	return verdicts
}

func fallback(n int) []Verdict {
	verdicts := make([]Verdict, n)
	for i := range verdicts {
		verdicts[i] = Verdict{IsCorrect: false, Feedback: FallbackFeedback}
	}
	return verdicts
}

func allBlank(items []Item) bool {
	for _, item := range items {
		if strings.TrimSpace(item.Answer) != "" {
			return false
		}
	}
	return true
}

func Score(verdicts []Verdict) int {
	score := 0
	for _, v := range verdicts {
		if v.IsCorrect {
			score++
		}
	}
	return score
}
