package aiquiz

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	// SourceTextLimit bounds how much extracted document text goes into a prompt.
	SourceTextLimit  = 50000
	MaxQuestionCount = 50
)

type schemaTemplate struct {
	tag      string
	noun     string
	guidance string
	shape    string
}

var schemaTemplates = map[QuestionType]schemaTemplate{
	TypeMCQ: {
		tag:  "mcq.v1",
		noun: "multiple-choice questions",
		guidance: "Each question must have exactly 4 options and a single correct option. " +
			"\"correctAnswer\" must repeat the text of the correct option exactly. " +
			"Keep the options similar in length so the answer is not obvious.",
		shape: `[
  {
    "question": "Question text here",
    "options": ["Option A", "Option B", "Option C", "Option D"],
    "correctAnswer": "Option B",
    "explanation": "Brief explanation here"
  }
]`,
	},
	TypeTheory: {
		tag:  "theory.v1",
		noun: "open-ended theory questions",
		guidance: "Each question must be answerable in a short paragraph. " +
			"\"correctAnswer\" holds the key points a correct answer must mention. " +
			"\"options\" must be an empty array.",
		shape: `[
  {
    "question": "Question text here",
    "options": [],
    "correctAnswer": "Key points of a correct answer",
    "explanation": "Brief explanation here"
  }
]`,
	},
	TypeCode: {
		tag:  "code.v1",
		noun: "coding exercises",
		guidance: "Each exercise asks for a small function or snippet. " +
			"\"correctAnswer\" holds a reference solution in a fenced code block. " +
			"\"options\" must be an empty array.",
		shape: `[
  {
    "question": "Write a function that ...",
    "options": [],
    "correctAnswer": "` + "```" + `python\ndef solution(): ...\n` + "```" + `",
    "explanation": "Why the reference solution works"
  }
]`,
	},
	TypeFlashcard: {
		tag:  "flashcard.v1",
		noun: "flashcards",
		guidance: "\"question\" is the front of the card (a term or prompt) and " +
			"\"correctAnswer\" is the back (a concise definition or fact). " +
			"\"options\" must be an empty array.",
		shape: `[
  {
    "question": "Term or prompt",
    "options": [],
    "correctAnswer": "Definition or fact",
    "explanation": "Optional extra context"
  }
]`,
	},
}

// SchemaTag returns the identifier of the output template used for qt.
func SchemaTag(qt QuestionType) string {
	return schemaTemplates[qt].tag
}

// BuildPrompt validates req and renders the generation prompt.
func BuildPrompt(req GenerationRequest) (Prompt, error) {
	topic := strings.TrimSpace(req.Topic)
	source := strings.TrimSpace(req.SourceText)

	switch {
	case topic == "" && source == "":
		return Prompt{}, fmt.Errorf("%w: a topic or a source document is required", ErrInvalidInput)
	case topic != "" && source != "":
		return Prompt{}, fmt.Errorf("%w: provide either a topic or a source document, not both", ErrInvalidInput)
	case req.QuestionCount <= 0:
		return Prompt{}, fmt.Errorf("%w: question count must be positive", ErrInvalidInput)
	case req.QuestionCount > MaxQuestionCount:
		return Prompt{}, fmt.Errorf("%w: at most %d questions per quiz", ErrInvalidInput, MaxQuestionCount)
	case !req.Difficulty.IsValid():
		return Prompt{}, fmt.Errorf("%w: unknown difficulty %q", ErrInvalidInput, req.Difficulty)
	case !req.QuestionType.IsValid():
		return Prompt{}, fmt.Errorf("%w: unknown question type %q", ErrInvalidInput, req.QuestionType)
	}

	tmpl := schemaTemplates[req.QuestionType]

	var sb strings.Builder
	if source != "" {
		sb.WriteString(fmt.Sprintf("Generate %d %s based STRICTLY on this text:\n", req.QuestionCount, tmpl.noun))
		sb.WriteString(truncateRunes(source, SourceTextLimit))
		sb.WriteString("\n\n")
	} else {
		sb.WriteString(fmt.Sprintf("Generate %d %s on the topic: '%s'.\n", req.QuestionCount, tmpl.noun, topic))
	}
	sb.WriteString(fmt.Sprintf("Difficulty: %s.\n", req.Difficulty))
	sb.WriteString(tmpl.guidance)
	sb.WriteString("\nReturn ONLY a valid JSON array matching this structure, with no text outside the JSON:\n")
	sb.WriteString(tmpl.shape)

	return Prompt{Text: sb.String(), Schema: tmpl.tag}, nil
}

func truncateRunes(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit])
}
