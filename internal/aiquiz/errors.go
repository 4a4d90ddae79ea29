package aiquiz

import "errors"

var (
	ErrInvalidInput        = errors.New("invalid generation request")
	ErrOracleUnavailable   = errors.New("generation service unavailable")
	ErrOracleNotConfigured = errors.New("generation service is not configured")
	ErrParse               = errors.New("could not parse generated questions")
)
