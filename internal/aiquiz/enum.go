package aiquiz

import "strings"

type QuestionType string

const (
	TypeMCQ       QuestionType = "MCQ"
	TypeTheory    QuestionType = "Theory"
	TypeCode      QuestionType = "Code"
	TypeFlashcard QuestionType = "Flashcard"
)

var AllQuestionTypes = []QuestionType{
	TypeMCQ,
	TypeTheory,
	TypeCode,
	TypeFlashcard,
}

func (t QuestionType) IsValid() bool {
	for _, v := range AllQuestionTypes {
		if t == v {
			return true
		}
	}
	return false
}

// IsClosedForm reports whether answers can be graded by direct comparison.
func (t QuestionType) IsClosedForm() bool {
	return t == TypeMCQ
}

// ParseQuestionType matches case-insensitively; "" yields MCQ.
func ParseQuestionType(s string) (QuestionType, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return TypeMCQ, true
	}
	for _, v := range AllQuestionTypes {
		if strings.EqualFold(s, string(v)) {
			return v, true
		}
	}
	return "", false
}

type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

var AllDifficulties = []Difficulty{
	DifficultyEasy,
	DifficultyMedium,
	DifficultyHard,
}

func (d Difficulty) IsValid() bool {
	for _, v := range AllDifficulties {
		if d == v {
			return true
		}
	}
	return false
}

// ParseDifficulty matches case-insensitively; "" yields Medium.
func ParseDifficulty(s string) (Difficulty, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DifficultyMedium, true
	}
	for _, v := range AllDifficulties {
		if strings.EqualFold(s, string(v)) {
			return v, true
		}
	}
	return "", false
}
