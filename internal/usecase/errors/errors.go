package errors

import (
	"errors"
	"fmt"
)

// Common errors
var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden access")
	ErrNotFound      = errors.New("resource not found")
	ErrConflict      = errors.New("resource conflict")
	ErrInternalError = errors.New("internal server error")
)

// Bot errors
var (
	ErrBotNotFound   = fmt.Errorf("bot: %w", ErrNotFound)
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Session errors
var (
	ErrSessionNotFound        = fmt.Errorf("session: %w", ErrNotFound)
	ErrSessionExpired         = errors.New("session expired")
	ErrAlreadyCompleted       = errors.New("already completed")
	ErrSessionCompleted       = fmt.Errorf("session %w", ErrAlreadyCompleted)
	ErrSessionFull            = errors.New("session is full")
	ErrTokenGeneration        = errors.New("could not generate a unique access token")
	ErrInvalidExpiresIn       = fmt.Errorf("%w: expires_in must be between 1 and 168 hours", ErrInvalidConfig)
	ErrInvalidMaxParticipants = fmt.Errorf("%w: max_participants must be at least 1", ErrInvalidConfig)
)

// Participant errors
var (
	ErrParticipantNotFound  = fmt.Errorf("participant session: %w", ErrNotFound)
	ErrParticipantCompleted = fmt.Errorf("participant %w", ErrAlreadyCompleted)
	ErrSequenceMismatch     = errors.New("question index does not match current question")
	ErrEmptyResponse        = fmt.Errorf("%w: response text is required", ErrInvalidConfig)
)

// Analysis errors
var (
	ErrAnalysisUnavailable = errors.New("answer analysis unavailable")
)

// InvalidConfig wraps ErrInvalidConfig with a field-specific reason
func InvalidConfig(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}
