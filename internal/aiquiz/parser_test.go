package aiquiz_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saulo-duarte/quizforge/internal/aiquiz"
)

func mcqJSON(n int) string {
	items := make([]string, n)
	for i := range items {
		items[i] = fmt.Sprintf(`{"question":"Q%d","options":["A","B","C","D"],"correctAnswer":"B","explanation":"because %d"}`, i, i)
	}
	return "[" + strings.Join(items, ",") + "]"
}

func TestParseQuestions(t *testing.T) {
	t.Run("KeepsCountAndOrder", func(t *testing.T) {
		qs, err := aiquiz.ParseQuestions(mcqJSON(7), aiquiz.TypeMCQ)
		require.NoError(t, err)
		require.Len(t, qs, 7)
		for i, q := range qs {
			assert.Equal(t, fmt.Sprintf("Q%d", i), q.Text)
			assert.Equal(t, "B", q.CorrectAnswer)
			assert.Equal(t, aiquiz.TypeMCQ, q.Type)
			assert.False(t, q.AnswerCoerced)
		}
	})

	t.Run("CoercesUnknownMCQAnswerToFirstOption", func(t *testing.T) {
		raw := `[{"question":"Pick","options":["A","B","C"],"correctAnswer":"X"}]`
		for i := 0; i < 3; i++ {
			qs, err := aiquiz.ParseQuestions(raw, aiquiz.TypeMCQ)
			require.NoError(t, err)
			assert.Equal(t, "A", qs[0].CorrectAnswer)
			assert.True(t, qs[0].AnswerCoerced)
		}
	})

	t.Run("DefaultsExplanation", func(t *testing.T) {
		qs, err := aiquiz.ParseQuestions(`[{"question":"Q","options":["A"],"correctAnswer":"A"}]`, aiquiz.TypeMCQ)
		require.NoError(t, err)
		assert.Equal(t, aiquiz.DefaultExplanation, qs[0].Explanation)
	})

	t.Run("AcceptsSnakeCaseAnswer", func(t *testing.T) {
		qs, err := aiquiz.ParseQuestions(`[{"question":"Q","options":["A","B"],"correct_answer":"B"}]`, aiquiz.TypeMCQ)
		require.NoError(t, err)
		assert.Equal(t, "B", qs[0].CorrectAnswer)
	})

	t.Run("StripsCodeFence", func(t *testing.T) {
		qs, err := aiquiz.ParseQuestions("```json\n"+mcqJSON(2)+"\n```", aiquiz.TypeMCQ)
		require.NoError(t, err)
		assert.Len(t, qs, 2)
	})

	t.Run("UnwrapsObject", func(t *testing.T) {
		qs, err := aiquiz.ParseQuestions(`{"items":`+mcqJSON(3)+`}`, aiquiz.TypeMCQ)
		require.NoError(t, err)
		assert.Len(t, qs, 3)
	})

	t.Run("FreeTextWithoutOptions", func(t *testing.T) {
		qs, err := aiquiz.ParseQuestions(`[{"question":"Define entropy","correctAnswer":"Disorder measure"}]`, aiquiz.TypeTheory)
		require.NoError(t, err)
		assert.Empty(t, qs[0].Options)
		assert.NotNil(t, qs[0].Options)
		assert.Equal(t, "Disorder measure", qs[0].CorrectAnswer)

		qs, err = aiquiz.ParseQuestions(`[{"question":"Explain inertia","options":["a","b"],"correctAnswer":"resistance"}]`, aiquiz.TypeTheory)
		require.NoError(t, err)
		assert.Empty(t, qs[0].Options)
		assert.NotNil(t, qs[0].Options)
	})

	t.Run("TrimsOptionsAndAnswer", func(t *testing.T) {
		raw := `[{"question":"Capital of France?","options":["Paris ","Rome"," Madrid"],"correctAnswer":"Paris "}]`
		qs, err := aiquiz.ParseQuestions(raw, aiquiz.TypeMCQ)
		require.NoError(t, err)
		assert.Equal(t, []string{"Paris", "Rome", "Madrid"}, qs[0].Options)
		assert.Equal(t, "Paris", qs[0].CorrectAnswer)
		assert.False(t, qs[0].AnswerCoerced)
	})

	t.Run("UnwrapsSingleUnknownArrayField", func(t *testing.T) {
		qs, err := aiquiz.ParseQuestions(`{"title":"Quiz","quiz":`+mcqJSON(2)+`}`, aiquiz.TypeMCQ)
		require.NoError(t, err)
		assert.Len(t, qs, 2)
	})
}

func TestParseQuestionsFailures(t *testing.T) {
	cases := map[string]struct {
		raw string
		qt  aiquiz.QuestionType
	}{
		"NotJSON":           {"Sorry, I cannot help with that.", aiquiz.TypeMCQ},
		"Truncated":         {mcqJSON(3)[:40], aiquiz.TypeMCQ},
		"Empty":             {"", aiquiz.TypeMCQ},
		"EmptyArray":        {"[]", aiquiz.TypeMCQ},
		"MissingQuestion":   {`[{"options":["A"],"correctAnswer":"A"}]`, aiquiz.TypeMCQ},
		"MissingAnswer":     {`[{"question":"Q","options":["A"]}]`, aiquiz.TypeMCQ},
		"MCQWithoutOptions": {`[{"question":"Q","correctAnswer":"A"}]`, aiquiz.TypeMCQ},
		"WrongFieldType":    {`[{"question":"Q","options":"A,B","correctAnswer":"A"}]`, aiquiz.TypeMCQ},
		"ObjectWithoutList": {`{"erro":"tema inválido"}`, aiquiz.TypeMCQ},
		"AmbiguousArrays":   {`{"a":` + mcqJSON(1) + `,"b":` + mcqJSON(2) + `}`, aiquiz.TypeMCQ},
		"OneBadItem":        {`[{"question":"Q","correctAnswer":"A"},{"correctAnswer":"B"}]`, aiquiz.TypeFlashcard},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			qs, err := aiquiz.ParseQuestions(tc.raw, tc.qt)
			assert.ErrorIs(t, err, aiquiz.ErrParse)
			assert.Nil(t, qs)
		})
	}
}
