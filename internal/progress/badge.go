package progress

import (
	"slices"
	"time"

	"github.com/saulo-duarte/quizforge/internal/user"
	util "github.com/saulo-duarte/quizforge/internal/utils"
)

const (
	BadgeFirstSteps = "First Steps"
	BadgeSniper     = "Sniper"
	BadgeOnFire     = "On Fire"
	BadgeDedicated  = "Dedicated"

	SniperMinQuestions  = 5
	OnFireMinStreak     = 3
	DedicatedMinQuizzes = 10
)

type Badge struct {
	Name        string
	Description string
	Icon        string
	earned      func(u *user.User, o Outcome, quizCount int) bool
}

// Badges are evaluated and reported in this order.
var Badges = []Badge{
	{
		Name:        BadgeFirstSteps,
		Description: "Completed your first quiz.",
		Icon:        "footprints",
		earned:      func(_ *user.User, _ Outcome, n int) bool { return n >= 1 },
	},
	{
		Name:        BadgeSniper,
		Description: "Perfect score on a quiz with at least 5 questions.",
		Icon:        "crosshair",
		earned: func(_ *user.User, o Outcome, _ int) bool {
			return o.Total >= SniperMinQuestions && o.Score == o.Total
		},
	},
	{
		Name:        BadgeOnFire,
		Description: "Kept a 3 day quiz streak.",
		Icon:        "flame",
		earned:      func(u *user.User, _ Outcome, _ int) bool { return u.CurrentStreak >= OnFireMinStreak },
	},
	{
		Name:        BadgeDedicated,
		Description: "Completed 10 quizzes.",
		Icon:        "medal",
		earned:      func(_ *user.User, _ Outcome, n int) bool { return n >= DedicatedMinQuizzes },
	},
}

// RecordQuizCompletion advances the user's streak for a quiz finished on day.
// day must be a civil day (see util.CivilDay).
func RecordQuizCompletion(u *user.User, day time.Time) {
	if u.LastQuizDate == nil {
		u.CurrentStreak = 1
		u.LongestStreak = max(u.LongestStreak, 1)
	} else {
		switch util.DaysBetween(*u.LastQuizDate, day) {
		case 0:
		case 1:
			u.CurrentStreak++
			u.LongestStreak = max(u.LongestStreak, u.CurrentStreak)
		default:
			u.CurrentStreak = 1
		}
	}

	d := day
	u.LastQuizDate = &d
}

// EvaluateAchievements returns the badges earned by the latest quiz that the user
// does not already own. quizCount includes the latest quiz.
func EvaluateAchievements(u *user.User, o Outcome, quizCount int, owned []string) []Badge {
	var awarded []Badge
	for _, b := range Badges {
		if slices.Contains(owned, b.Name) {
			continue
		}
		if b.earned(u, o, quizCount) {
			awarded = append(awarded, b)
		}
	}
	return awarded
}
