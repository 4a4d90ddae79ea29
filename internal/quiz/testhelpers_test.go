package quiz

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/saulo-duarte/quizforge/internal/config"
	"github.com/saulo-duarte/quizforge/internal/progress"
	"github.com/saulo-duarte/quizforge/internal/user"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := config.Connect(context.Background(), dsn)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&user.User{}, &progress.Achievement{}, &Question{}, &QuizResult{}))
	return db
}

func createUser(t *testing.T, db *gorm.DB, name string) *user.User {
	t.Helper()
	u := &user.User{Username: name, PasswordHash: "x"}
	require.NoError(t, user.NewRepository(db).Create(u))
	return u
}

// fakeOracle answers generation prompts with a canned payload and counts calls.
type fakeOracle struct {
	mu       sync.Mutex
	response string
	err      error
	calls    int
	prompts  []string
}

func (f *fakeOracle) Generate(_ context.Context, prompt string, _ bool) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

type mcq struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
}

func mcqPayload(t *testing.T, n int) string {
	t.Helper()
	items := make([]mcq, n)
	for i := range items {
		items[i] = mcq{
			Question:      fmt.Sprintf("What is %d + %d?", i, i),
			Options:       []string{fmt.Sprint(2 * i), fmt.Sprint(2*i + 1), fmt.Sprint(2*i + 2), fmt.Sprint(2*i + 3)},
			CorrectAnswer: fmt.Sprint(2 * i),
			Explanation:   fmt.Sprintf("`%d + %d = %d`", i, i, 2*i),
		}
	}
	b, err := json.Marshal(items)
	require.NoError(t, err)
	return string(b)
}
