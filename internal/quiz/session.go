package quiz

import (
	"net/http"
	"time"

	"github.com/saulo-duarte/quizforge/internal/aiquiz"
)

type State string

const (
	StateIdle       State = "idle"
	StateGenerating State = "generating"
	StateActive     State = "active"
	StateSubmitted  State = "submitted"
)

// Session is the per-browser quiz context. It is passed explicitly through the
// service and persisted by a SessionStore between requests.
type Session struct {
	ID              string              `json:"id"`
	State           State               `json:"state"`
	Topic           string              `json:"topic,omitempty"`
	Difficulty      aiquiz.Difficulty   `json:"difficulty,omitempty"`
	QuestionType    aiquiz.QuestionType `json:"question_type,omitempty"`
	DurationSeconds int                 `json:"duration_seconds,omitempty"`
	GeneratedAt     time.Time           `json:"generated_at,omitempty"`
}

func NewSession() *Session {
	return &Session{State: StateIdle}
}

func (s *Session) reset() {
	s.State = StateIdle
	s.Topic = ""
	s.Difficulty = ""
	s.QuestionType = ""
	s.DurationSeconds = 0
	s.GeneratedAt = time.Time{}
}

type SessionStore interface {
	// Load never returns a nil session; a missing or unreadable cookie yields a new one.
	Load(r *http.Request) (*Session, error)
	Save(w http.ResponseWriter, r *http.Request, s *Session) error
}
