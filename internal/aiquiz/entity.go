package aiquiz

const DefaultExplanation = "No explanation provided."

// Question is one validated generated question, before persistence.
type Question struct {
	Text          string       `json:"question"`
	Type          QuestionType `json:"type"`
	Options       []string     `json:"options"`
	CorrectAnswer string       `json:"correct_answer"`
	Explanation   string       `json:"explanation"`

	// AnswerCoerced is set when an MCQ key outside its options was replaced by the
	// first option.
	AnswerCoerced bool `json:"-"`
}

// GenerationRequest describes what to generate. Exactly one of Topic and
// SourceText must be set.
type GenerationRequest struct {
	Topic         string
	SourceText    string
	QuestionCount int
	Difficulty    Difficulty
	QuestionType  QuestionType
}

type Prompt struct {
	Text   string
	Schema string
}
