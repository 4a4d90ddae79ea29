package aiquiz

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

type rawQuestion struct {
	Question           *string   `json:"question"`
	Options            *[]string `json:"options"`
	CorrectAnswer      *string   `json:"correctAnswer"`
	CorrectAnswerSnake *string   `json:"correct_answer"`
	Explanation        *string   `json:"explanation"`
}

// ParseQuestions turns raw oracle output into validated questions of type qt.
// Either every element is valid and the whole set is returned, or ErrParse.
func ParseQuestions(raw string, qt QuestionType) ([]Question, error) {
	payload, err := ExtractJSONArray(raw)
	if err != nil {
		return nil, err
	}

	var items []rawQuestion
	if err := json.Unmarshal(payload, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: no questions returned", ErrParse)
	}

	questions := make([]Question, 0, len(items))
	for i, item := range items {
		q, err := item.validate(qt)
		if err != nil {
			return nil, fmt.Errorf("%w: item %d: %v", ErrParse, i, err)
		}
		questions = append(questions, q)
	}
	return questions, nil
}

func (r rawQuestion) validate(qt QuestionType) (Question, error) {
	if r.Question == nil || strings.TrimSpace(*r.Question) == "" {
		return Question{}, fmt.Errorf("missing question")
	}

	answer := r.CorrectAnswer
	if answer == nil {
		answer = r.CorrectAnswerSnake
	}
	if answer == nil {
		return Question{}, fmt.Errorf("missing correctAnswer")
	}

	q := Question{
		Text:          strings.TrimSpace(*r.Question),
		Type:          qt,
		Options:       []string{},
		CorrectAnswer: strings.TrimSpace(*answer),
		Explanation:   DefaultExplanation,
	}
	if r.Explanation != nil && strings.TrimSpace(*r.Explanation) != "" {
		q.Explanation = *r.Explanation
	}
	if qt != TypeMCQ {
		return q, nil
	}

	if r.Options != nil {
		q.Options = make([]string, 0, len(*r.Options))
		for _, opt := range *r.Options {
			q.Options = append(q.Options, strings.TrimSpace(opt))
		}
	}

	if len(q.Options) == 0 {
		return Question{}, fmt.Errorf("missing options")
	}
	if !contains(q.Options, q.CorrectAnswer) {
		q.CorrectAnswer = q.Options[0]
		q.AnswerCoerced = true
	}
	return q, nil
}

// ExtractJSONArray finds the JSON array in model output. It tolerates markdown
// fences and JSON-object response modes that wrap the array in a single field.
func ExtractJSONArray(raw string) (json.RawMessage, error) {
	clean := strings.TrimSpace(raw)
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimPrefix(clean, "```JSON")
	clean = strings.TrimSuffix(clean, "```")
	clean = strings.Trim(clean, "`")
	clean = strings.TrimSpace(clean)

	if clean == "" {
		return nil, fmt.Errorf("%w: empty response", ErrParse)
	}

	data := []byte(clean)
	switch clean[0] {
	case '[':
		if !json.Valid(data) {
			return nil, fmt.Errorf("%w: malformed JSON", ErrParse)
		}
		return data, nil
	case '{':
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(data, &fields); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrParse, err)
		}
		for _, key := range []string{"questions", "results", "items"} {
			if v, ok := fields[key]; ok && isArray(v) {
				return v, nil
			}
		}
		var found json.RawMessage
		for _, v := range fields {
			if !isArray(v) {
				continue
			}
			if found != nil {
				return nil, fmt.Errorf("%w: ambiguous arrays in JSON object", ErrParse)
			}
			found = v
		}
		if found == nil {
			return nil, fmt.Errorf("%w: no array in JSON object", ErrParse)
		}
		return found, nil
	default:
		return nil, fmt.Errorf("%w: response is not JSON", ErrParse)
	}
}

func isArray(v json.RawMessage) bool {
	v = bytes.TrimSpace(v)
	return len(v) > 0 && v[0] == '['
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
