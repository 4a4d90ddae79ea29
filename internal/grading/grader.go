package grading

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/saulo-duarte/quizforge/internal/aiquiz"
)

var ErrMalformedVerdicts = errors.New("malformed grading response")

type GradeRequest struct {
	Question   string `json:"question"`
	CorrectKey string `json:"correctKey"`
	UserAnswer string `json:"userAnswer"`
}

// Grader judges a batch of free-text answers. The result must align with the
// input positionally.
type Grader interface {
	Grade(ctx context.Context, qt aiquiz.QuestionType, batch []GradeRequest) ([]Verdict, error)
}

type oracleGrader struct {
	oracle aiquiz.Oracle
}

func NewOracleGrader(oracle aiquiz.Oracle) Grader {
	return &oracleGrader{oracle: oracle}
}

const gradingPrompt = `You are grading a student's %s answers.
For every item below decide whether the student's answer is correct when compared with the reference key.
Accept answers that are semantically equivalent to the key even if worded differently.
For code, accept any solution that is functionally equivalent to the reference.
Give short, encouraging feedback that explains what was missing when an answer is wrong.

Items (JSON):
%s

Return ONLY a valid JSON array with exactly %d elements, in the same order as the items:
[
  {"isCorrect": true, "feedback": "Short feedback"}
]`

func (g *oracleGrader) Grade(ctx context.Context, qt aiquiz.QuestionType, batch []GradeRequest) ([]Verdict, error) {
	items, err := json.MarshalIndent(batch, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode grading batch: %w", err)
	}

	prompt := fmt.Sprintf(gradingPrompt, strings.ToLower(string(qt)), items, len(batch))
	raw, err := g.oracle.Generate(ctx, prompt, true)
	if err != nil {
		return nil, err
	}

	return parseVerdicts(raw)
}

func parseVerdicts(raw string) ([]Verdict, error) {
	payload, err := aiquiz.ExtractJSONArray(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedVerdicts, err)
	}

	var items []struct {
		IsCorrect *bool  `json:"isCorrect"`
		Feedback  string `json:"feedback"`
	}
	if err := json.Unmarshal(payload, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedVerdicts, err)
	}

	verdicts := make([]Verdict, len(items))
	for i, item := range items {
		if item.IsCorrect == nil {
			return nil, fmt.Errorf("%w: item %d has no isCorrect", ErrMalformedVerdicts, i)
		}
		verdicts[i] = Verdict{IsCorrect: *item.IsCorrect, Feedback: item.Feedback}
	}
	return verdicts, nil
}
