package quiz

import "errors"

var (
	ErrNoActiveQuiz   = errors.New("no active quiz")
	ErrResultNotFound = errors.New("quiz result not found")
)
