package quiz

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/saulo-duarte/quizforge/internal/aiquiz"
)

// SetKey identifies one session's active question set.
type SetKey struct {
	SessionID string
	UserID    uuid.UUID
}

// QuestionSetStore keeps at most one active question set per key.
type QuestionSetStore interface {
	// Replace swaps the whole set. Readers see either the old or the new set.
	Replace(ctx context.Context, key SetKey, questions []Question) error
	// Fetch returns the set in order, or an empty slice when none is active.
	Fetch(ctx context.Context, key SetKey) ([]Question, error)
	Clear(ctx context.Context, key SetKey) error
}

type gormQuestionStore struct {
	db *gorm.DB
}

func NewGormQuestionStore(db *gorm.DB) QuestionSetStore {
	return &gormQuestionStore{db: db}
}

func (s *gormQuestionStore) Replace(ctx context.Context, key SetKey, questions []Question) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("session_id = ? AND user_id = ?", key.SessionID, key.UserID).
			Delete(&Question{}).Error; err != nil {
			return err
		}

		if len(questions) == 0 {
			return nil
		}
		for i := range questions {
			questions[i].SessionID = key.SessionID
			questions[i].UserID = key.UserID
		}
		return tx.Create(&questions).Error
	})
}

func (s *gormQuestionStore) Fetch(ctx context.Context, key SetKey) ([]Question, error) {
	var questions []Question
	if err := s.db.WithContext(ctx).
		Where("session_id = ? AND user_id = ?", key.SessionID, key.UserID).
		Order("order_index ASC").
		Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (s *gormQuestionStore) Clear(ctx context.Context, key SetKey) error {
	return s.db.WithContext(ctx).
		Where("session_id = ? AND user_id = ?", key.SessionID, key.UserID).
		Delete(&Question{}).Error
}

const DefaultSetTTL = 24 * time.Hour

type redisQuestionStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisQuestionStore keeps each set as one JSON value, so a replace is a single SET.
func NewRedisQuestionStore(rdb *redis.Client, ttl time.Duration) QuestionSetStore {
	if ttl <= 0 {
		ttl = DefaultSetTTL
	}
	return &redisQuestionStore{rdb: rdb, ttl: ttl}
}

func setCacheKey(key SetKey) string {
	return fmt.Sprintf("quiz:set:%s:%s", key.UserID, key.SessionID)
}

func (s *redisQuestionStore) Replace(ctx context.Context, key SetKey, questions []Question) error {
	for i := range questions {
		questions[i].SessionID = key.SessionID
		questions[i].UserID = key.UserID
	}

	payload, err := json.Marshal(cachedSet{Questions: toCached(questions)})
	if err != nil {
		return err
	}

	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		if len(questions) == 0 {
			pipe.Del(ctx, setCacheKey(key))
			return nil
		}
		pipe.Set(ctx, setCacheKey(key), payload, s.ttl)
		return nil
	})
	return err
}

func (s *redisQuestionStore) Fetch(ctx context.Context, key SetKey) ([]Question, error) {
	val, err := s.rdb.Get(ctx, setCacheKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return []Question{}, nil
	}
	if err != nil {
		return nil, err
	}

	var set cachedSet
	if err := json.Unmarshal(val, &set); err != nil {
		return nil, fmt.Errorf("decode cached question set: %w", err)
	}
	return fromCached(set.Questions, key), nil
}

func (s *redisQuestionStore) Clear(ctx context.Context, key SetKey) error {
	return s.rdb.Del(ctx, setCacheKey(key)).Err()
}

// Question hides its answer key from JSON, so the cache uses its own shape.
type cachedSet struct {
	Questions []cachedQuestion `json:"questions"`
}

type cachedQuestion struct {
	ID            uuid.UUID       `json:"id"`
	Type          string          `json:"type"`
	Text          string          `json:"text"`
	Options       json.RawMessage `json:"options,omitempty"`
	CorrectAnswer string          `json:"correct_answer"`
	Explanation   string          `json:"explanation"`
	OrderIndex    int             `json:"order_index"`
}

func toCached(questions []Question) []cachedQuestion {
	out := make([]cachedQuestion, 0, len(questions))
	for _, q := range questions {
		out = append(out, cachedQuestion{
			ID:            q.ID,
			Type:          string(q.Type),
			Text:          q.Text,
			Options:       json.RawMessage(q.Options),
			CorrectAnswer: q.CorrectAnswer,
			Explanation:   q.Explanation,
			OrderIndex:    q.OrderIndex,
		})
	}
	return out
}

func fromCached(cached []cachedQuestion, key SetKey) []Question {
	out := make([]Question, 0, len(cached))
	for _, c := range cached {
		out = append(out, Question{
			ID:            c.ID,
			SessionID:     key.SessionID,
			UserID:        key.UserID,
			Type:          aiquiz.QuestionType(c.Type),
			Text:          c.Text,
			Options:       []byte(c.Options),
			CorrectAnswer: c.CorrectAnswer,
			Explanation:   c.Explanation,
			OrderIndex:    c.OrderIndex,
		})
	}
	return out
}
