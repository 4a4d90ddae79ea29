package session

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/saulo-duarte/quizforge/internal/quiz"
)

const (
	CookieName = "quiz-session"
	valueKey   = "quiz"
	maxAge     = 7 * 24 * 60 * 60
)

var ErrMalformedSession = errors.New("malformed quiz session")

// CookieStore keeps quiz.Session in a signed cookie.
type CookieStore struct {
	store *sessions.CookieStore
}

func NewCookieStore(secret []byte, secure bool) *CookieStore {
	store := sessions.NewCookieStore(secret)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &CookieStore{store: store}
}

func (c *CookieStore) Load(r *http.Request) (*quiz.Session, error) {
	s, err := c.store.Get(r, CookieName)
	if err != nil {
		// A cookie signed with another key still yields a fresh session.
		return quiz.NewSession(), err
	}

	raw, ok := s.Values[valueKey].(string)
	if !ok {
		return quiz.NewSession(), nil
	}

	sess := quiz.NewSession()
	if err := json.Unmarshal([]byte(raw), sess); err != nil {
		return quiz.NewSession(), ErrMalformedSession
	}
	return sess, nil
}

func (c *CookieStore) Save(w http.ResponseWriter, r *http.Request, sess *quiz.Session) error {
	s, _ := c.store.Get(r, CookieName)

	raw, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	s.Values[valueKey] = string(raw)
	return s.Save(r, w)
}
