package grading_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saulo-duarte/quizforge/internal/aiquiz"
	"github.com/saulo-duarte/quizforge/internal/grading"
)

type fakeGrader struct {
	verdicts []grading.Verdict
	err      error
	batches  [][]grading.GradeRequest
}

func (f *fakeGrader) Grade(_ context.Context, _ aiquiz.QuestionType, batch []grading.GradeRequest) ([]grading.Verdict, error) {
	f.batches = append(f.batches, batch)
	return f.verdicts, f.err
}

func theoryItems(n int) []grading.Item {
	items := make([]grading.Item, n)
	for i := range items {
		items[i] = grading.Item{
			Question: aiquiz.Question{Text: "Explain", Type: aiquiz.TypeTheory, CorrectAnswer: "key"},
			Answer:   "my answer",
		}
	}
	return items
}

func TestGradeMCQ(t *testing.T) {
	engine := grading.NewEngine(nil)
	q := aiquiz.Question{Text: "Capital of France?", Options: []string{"Paris", "Rome"}, CorrectAnswer: "Paris", Explanation: "It is Paris."}

	verdicts := engine.Grade(context.Background(), aiquiz.TypeMCQ, []grading.Item{
		{Question: q, Answer: "Paris"},
		{Question: q, Answer: ""},
		{Question: q, Answer: "Rome"},
		{Question: q, Answer: "paris"},
	})

	require.Len(t, verdicts, 4)
	assert.True(t, verdicts[0].IsCorrect)
	assert.False(t, verdicts[1].IsCorrect)
	assert.False(t, verdicts[2].IsCorrect)
	assert.False(t, verdicts[3].IsCorrect)
	assert.Equal(t, "It is Paris.", verdicts[0].Feedback)
	assert.Equal(t, 1, grading.Score(verdicts))
}

func TestGradeWithOracle(t *testing.T) {
	ctx := context.Background()

	t.Run("SingleBatchedCall", func(t *testing.T) {
		g := &fakeGrader{verdicts: []grading.Verdict{{IsCorrect: true, Feedback: "good"}, {IsCorrect: false, Feedback: "missing X"}}}
		verdicts := grading.NewEngine(g).Grade(ctx, aiquiz.TypeTheory, theoryItems(2))

		require.Len(t, g.batches, 1)
		assert.Len(t, g.batches[0], 2)
		assert.Equal(t, "key", g.batches[0][0].CorrectKey)
		assert.Equal(t, "my answer", g.batches[0][0].UserAnswer)
		assert.Equal(t, g.verdicts, verdicts)
		assert.Equal(t, 1, grading.Score(verdicts))
	})

	t.Run("OracleFailureFallsBack", func(t *testing.T) {
		g := &fakeGrader{err: errors.New("quota exceeded")}
		verdicts := grading.NewEngine(g).Grade(ctx, aiquiz.TypeCode, theoryItems(5))

		require.Len(t, verdicts, 5)
		for _, v := range verdicts {
			assert.False(t, v.IsCorrect)
			assert.Equal(t, grading.FallbackFeedback, v.Feedback)
		}
	})

	t.Run("LengthMismatchFallsBack", func(t *testing.T) {
		g := &fakeGrader{verdicts: []grading.Verdict{{IsCorrect: true}}}
		verdicts := grading.NewEngine(g).Grade(ctx, aiquiz.TypeFlashcard, theoryItems(3))

		require.Len(t, verdicts, 3)
		assert.Zero(t, grading.Score(verdicts))
	})

	t.Run("AllBlankSkipsOracle", func(t *testing.T) {
		g := &fakeGrader{}
		items := theoryItems(2)
		for i := range items {
			items[i].Answer = " "
		}
		verdicts := grading.NewEngine(g).Grade(ctx, aiquiz.TypeTheory, items)

		assert.Empty(t, g.batches)
		require.Len(t, verdicts, 2)
		assert.Equal(t, grading.NoAnswerFeedback, verdicts[0].Feedback)
	})

	t.Run("Empty", func(t *testing.T) {
		assert.Empty(t, grading.NewEngine(nil).Grade(ctx, aiquiz.TypeTheory, nil))
	})
}

type scriptedOracle struct {
	response string
	err      error
}

func (s scriptedOracle) Generate(context.Context, string, bool) (string, error) {
	return s.response, s.err
}

func TestOracleGrader(t *testing.T) {
	batch := []grading.GradeRequest{{Question: "q1"}, {Question: "q2"}}

	t.Run("ParsesVerdicts", func(t *testing.T) {
		g := grading.NewOracleGrader(scriptedOracle{response: `[{"isCorrect":true,"feedback":"ok"},{"isCorrect":false,"feedback":"no"}]`})
		verdicts, err := g.Grade(context.Background(), aiquiz.TypeTheory, batch)
		require.NoError(t, err)
		assert.Equal(t, []grading.Verdict{{IsCorrect: true, Feedback: "ok"}, {IsCorrect: false, Feedback: "no"}}, verdicts)
	})

	t.Run("MissingFlag", func(t *testing.T) {
		g := grading.NewOracleGrader(scriptedOracle{response: `[{"feedback":"ok"}]`})
		_, err := g.Grade(context.Background(), aiquiz.TypeTheory, batch)
		assert.ErrorIs(t, err, grading.ErrMalformedVerdicts)
	})

	t.Run("OracleError", func(t *testing.T) {
		g := grading.NewOracleGrader(scriptedOracle{err: aiquiz.ErrOracleUnavailable})
		_, err := g.Grade(context.Background(), aiquiz.TypeTheory, batch)
		assert.ErrorIs(t, err, aiquiz.ErrOracleUnavailable)
	})
}
