package aiquiz

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/saulo-duarte/quizforge/internal/config"
)

type Service interface {
	GenerateQuestions(ctx context.Context, req GenerationRequest) ([]Question, error)
}

type service struct {
	oracle Oracle
}

func NewService(oracle Oracle) Service {
	return &service{oracle: oracle}
}

// GenerateQuestions builds the prompt, calls the oracle once and parses the result.
// Nothing is persisted here.
func (s *service) GenerateQuestions(ctx context.Context, req GenerationRequest) ([]Question, error) {
	log := config.WithContext(ctx).WithFields(logrus.Fields{
		"question_type": req.QuestionType,
		"difficulty":    req.Difficulty,
		"count":         req.QuestionCount,
	})

	prompt, err := BuildPrompt(req)
	if err != nil {
		log.WithError(err).Warn("Rejected generation request")
		return nil, err
	}
	log.Debugf("[AIQUIZ] Prompt (%s):\n%s", prompt.Schema, prompt.Text)

	raw, err := s.oracle.Generate(ctx, prompt.Text, true)
	if err != nil {
		log.WithError(err).Error("Oracle call failed")
		return nil, err
	}

	questions, err := ParseQuestions(raw, req.QuestionType)
	if err != nil {
		log.WithError(err).Errorf("[AIQUIZ] Failed to parse oracle output:\n%s", raw)
		return nil, err
	}

	coerced := 0
	for _, q := range questions {
		if q.AnswerCoerced {
			coerced++
		}
	}
	if coerced > 0 {
		log.WithField("coerced", coerced).Warn("MCQ answer keys outside their options were replaced by the first option")
	}

	log.Infof("[AIQUIZ] Generated %d questions", len(questions))
	return questions, nil
}
