package quiz

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/saulo-duarte/quizforge/internal/aiquiz"
	"github.com/saulo-duarte/quizforge/internal/config"
	"github.com/saulo-duarte/quizforge/internal/grading"
	"github.com/saulo-duarte/quizforge/internal/progress"
)

// QuizService drives the per-session quiz lifecycle:
// idle -> generating -> active -> submitted -> idle, with quit returning to idle.
// Every method takes the caller's Session and may mutate it; the caller persists it.
type QuizService interface {
	Generate(ctx context.Context, sess *Session, userID uuid.UUID, in GenerateInput) (*ActiveQuiz, error)
	Active(ctx context.Context, sess *Session, userID uuid.UUID) (*ActiveQuiz, error)
	Submit(ctx context.Context, sess *Session, userID uuid.UUID, answers map[string]string) (*SubmitResult, error)
	Quit(ctx context.Context, sess *Session, userID uuid.UUID) error

	ListHistory(ctx context.Context, userID uuid.UUID) ([]QuizResult, error)
	GetResult(ctx context.Context, userID, resultID uuid.UUID) (*QuizResult, error)
}

type quizService struct {
	db        *gorm.DB
	repo      ResultRepository
	store     QuestionSetStore
	generator aiquiz.Service
	engine    *grading.Engine
	progress  progress.ProgressService
	now       func() time.Time
}

func NewService(
	db *gorm.DB,
	repo ResultRepository,
	store QuestionSetStore,
	generator aiquiz.Service,
	engine *grading.Engine,
	progressService progress.ProgressService,
) QuizService {
	return &quizService{
		db:        db,
		repo:      repo,
		store:     store,
		generator: generator,
		engine:    engine,
		progress:  progressService,
		now:       time.Now,
	}
}

func setKey(sess *Session, userID uuid.UUID) SetKey {
	return SetKey{SessionID: sess.ID, UserID: userID}
}

func topicLabel(in GenerateInput) string {
	if in.FromDocument {
		if name := strings.TrimSpace(in.SourceName); name != "" {
			return "PDF: " + name
		}
		return DefaultTopic
	}
	if topic := strings.TrimSpace(in.Topic); topic != "" {
		return topic
	}
	return DefaultTopic
}

func (s *quizService) Generate(ctx context.Context, sess *Session, userID uuid.UUID, in GenerateInput) (*ActiveQuiz, error) {
	log := config.WithContext(ctx)

	if in.FromDocument && strings.TrimSpace(in.SourceText) == "" {
		log.Warn("Uploaded document produced no text")
		return nil, fmt.Errorf("%w: could not read any text from the uploaded document", aiquiz.ErrInvalidInput)
	}
	if in.QuestionCount == 0 {
		in.QuestionCount = DefaultQuestionLimit
	}
	if in.Difficulty == "" {
		in.Difficulty = aiquiz.DifficultyMedium
	}
	if in.QuestionType == "" {
		in.QuestionType = aiquiz.TypeMCQ
	}
	if in.DurationSeconds <= 0 {
		in.DurationSeconds = DefaultDurationSeconds
	}

	if sess.ID == "" {
		sess.ID = uuid.NewString()
	}
	previous := sess.State
	sess.State = StateGenerating

	req := aiquiz.GenerationRequest{
		QuestionCount: in.QuestionCount,
		Difficulty:    in.Difficulty,
		QuestionType:  in.QuestionType,
	}
	if in.FromDocument {
		req.SourceText = in.SourceText
	} else {
		req.Topic = strings.TrimSpace(in.Topic)
	}

	generated, err := s.generator.GenerateQuestions(ctx, req)
	if err != nil {
		sess.State = previous
		return nil, err
	}

	questions := toStoredQuestions(generated)
	if err := s.store.Replace(ctx, setKey(sess, userID), questions); err != nil {
		sess.State = previous
		log.WithError(err).Error("Failed to store question set")
		return nil, err
	}

	sess.State = StateActive
	sess.Topic = topicLabel(in)
	sess.Difficulty = in.Difficulty
	sess.QuestionType = in.QuestionType
	sess.DurationSeconds = in.DurationSeconds
	sess.GeneratedAt = s.now().UTC()

	log.WithFields(logrus.Fields{
		"session_id": sess.ID,
		"topic":      sess.Topic,
		"questions":  len(questions),
	}).Info("Quiz generated")

	return &ActiveQuiz{
		Topic:           sess.Topic,
		Difficulty:      sess.Difficulty,
		QuestionType:    sess.QuestionType,
		DurationSeconds: sess.DurationSeconds,
		GeneratedAt:     sess.GeneratedAt,
		Questions:       toQuestionViews(questions),
	}, nil
}

func (s *quizService) activeQuestions(ctx context.Context, sess *Session, userID uuid.UUID) ([]Question, error) {
	if sess.State != StateActive || sess.ID == "" {
		return nil, ErrNoActiveQuiz
	}
	questions, err := s.store.Fetch(ctx, setKey(sess, userID))
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to load question set")
		return nil, err
	}
	if len(questions) == 0 {
		return nil, ErrNoActiveQuiz
	}
	return questions, nil
}

func (s *quizService) Active(ctx context.Context, sess *Session, userID uuid.UUID) (*ActiveQuiz, error) {
	questions, err := s.activeQuestions(ctx, sess, userID)
	if err != nil {
		return nil, err
	}

	return &ActiveQuiz{
		Topic:           sess.Topic,
		Difficulty:      sess.Difficulty,
		QuestionType:    sess.QuestionType,
		DurationSeconds: sess.DurationSeconds,
		GeneratedAt:     sess.GeneratedAt,
		Questions:       toQuestionViews(questions),
	}, nil
}

func (s *quizService) Submit(ctx context.Context, sess *Session, userID uuid.UUID, answers map[string]string) (*SubmitResult, error) {
	log := config.WithContext(ctx)

	questions, err := s.activeQuestions(ctx, sess, userID)
	if err != nil {
		return nil, err
	}

	qt := sess.QuestionType
	if !qt.IsValid() {
		qt = questions[0].Type
	}

	items := make([]grading.Item, len(questions))
	for i := range questions {
		items[i] = grading.Item{
			Question: questions[i].toGenerated(),
			Answer:   strings.TrimSpace(answers[questions[i].ID.String()]),
		}
	}

	verdicts := s.engine.Grade(ctx, qt, items)
	score := grading.Score(verdicts)

	details := make([]ResultDetail, len(questions))
	for i := range questions {
		q := &questions[i]
		answer := items[i].Answer
		if answer == "" {
			answer = NoAnswer
		}
		details[i] = ResultDetail{
			QuestionID:    q.ID,
			Question:      q.Text,
			Options:       q.OptionList(),
			UserAnswer:    answer,
			CorrectAnswer: q.CorrectAnswer,
			IsCorrect:     verdicts[i].IsCorrect,
			Feedback:      verdicts[i].Feedback,
			Explanation:   q.Explanation,
		}
	}

	detailJSON, err := json.Marshal(details)
	if err != nil {
		return nil, err
	}

	completedAt := s.now()
	result := &QuizResult{
		UserID:         userID,
		Topic:          sess.Topic,
		Difficulty:     sess.Difficulty,
		QuestionType:   qt,
		Score:          score,
		TotalQuestions: len(questions),
		Details:        detailJSON,
		CreatedAt:      completedAt,
	}
	if result.Topic == "" {
		result.Topic = DefaultTopic
	}
	if result.Difficulty == "" {
		result.Difficulty = aiquiz.DifficultyMedium
	}

	var badges []string
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		results := s.repo.WithTx(tx)
		if err := results.Create(result); err != nil {
			return err
		}

		count, err := results.CountByUser(userID)
		if err != nil {
			return err
		}

		badges, err = s.progress.RecordCompletion(ctx, tx, userID,
			progress.Outcome{Score: score, Total: len(questions)}, int(count), completedAt)
		return err
	})
	if err != nil {
		log.WithError(err).Error("Failed to record quiz result")
		return nil, err
	}

	if err := s.store.Clear(ctx, setKey(sess, userID)); err != nil {
		log.WithError(err).Warn("Failed to clear submitted question set")
	}
	sess.State = StateSubmitted

	log.WithFields(logrus.Fields{
		"result_id": result.ID,
		"score":     score,
		"total":     len(questions),
	}).Info("Quiz submitted")

	return &SubmitResult{
		ResultID:  result.ID,
		Score:     score,
		Total:     len(questions),
		Details:   details,
		NewBadges: badges,
	}, nil
}

func (s *quizService) Quit(ctx context.Context, sess *Session, userID uuid.UUID) error {
	if sess.State == StateActive && sess.ID != "" {
		if err := s.store.Clear(ctx, setKey(sess, userID)); err != nil {
			config.WithContext(ctx).WithError(err).Error("Failed to clear question set")
			return err
		}
		config.WithContext(ctx).WithField("session_id", sess.ID).Info("Quiz abandoned")
	}
	sess.reset()
	return nil
}

func (s *quizService) ListHistory(ctx context.Context, userID uuid.UUID) ([]QuizResult, error) {
	results, err := s.repo.FindResultsByUser(userID)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to list quiz history")
		return nil, err
	}
	return results, nil
}

func (s *quizService) GetResult(ctx context.Context, userID, resultID uuid.UUID) (*QuizResult, error) {
	res, err := s.repo.FindByIDAndUser(resultID, userID)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to load quiz result")
		return nil, err
	}
	if res == nil {
		return nil, ErrResultNotFound
	}
	return res, nil
}
