package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error types for common failure scenarios.
var (
	ErrDaemonUnreachable = errors.New("daemon unreachable")
	ErrNoActiveSession   = errors.New("no active session")
	ErrPlaybackStopped   = errors.New("playback stopped")
	ErrNotFound          = errors.New("not found")
	ErrTimeout           = errors.New("request timeout")
	ErrConfigNotFound    = errors.New("config file not found")
	ErrInvalidConfig     = errors.New("invalid configuration")
)

// CroonError wraps an error with a user-friendly suggestion.
type CroonError struct {
	Err        error
	Suggestion string
}

func (e *CroonError) Error() string {
	return e.Err.Error()
}

func (e *CroonError) Unwrap() error {
	return e.Err
}

// WithSuggestion wraps an error with a helpful suggestion.
func WithSuggestion(err error, suggestion string) error {
	return &CroonError{
		Err:        err,
		Suggestion: suggestion,
	}
}

// GetSuggestion returns a suggestion for the given error.
func GetSuggestion(err error) string {
	if err == nil {
		return ""
	}

	var croonErr *CroonError
	if errors.As(err, &croonErr) && croonErr.Suggestion != "" {
		return croonErr.Suggestion
	}

	errStr := strings.ToLower(err.Error())

	if errors.Is(err, ErrDaemonUnreachable) || strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") {
		return "Check that go-librespot is running and daemon.api_url points at it"
	}

	if errors.Is(err, ErrNoActiveSession) || strings.Contains(errStr, "no active session") {
		return "Start playback from any Spotify client to activate the device"
	}

	if errors.Is(err, ErrPlaybackStopped) {
		return "Nothing is playing. Use 'croon play <uri>' to start a context"
	}

	if errors.Is(err, ErrTimeout) || strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "deadline exceeded") {
		return "The daemon is slow to respond. Check the network and try again"
	}

	if errors.Is(err, ErrConfigNotFound) || errors.Is(err, ErrInvalidConfig) ||
		strings.Contains(errStr, "config") {
		return "Check your config file, or delete it to fall back to defaults"
	}

	if strings.Contains(errStr, "500") || strings.Contains(errStr, "daemon error") {
		return "go-librespot reported an internal error. Check its logs"
	}

	return ""
}

// Format returns a formatted error message with suggestion if available.
func Format(err error) string {
	if err == nil {
		return ""
	}

	suggestion := GetSuggestion(err)
	if suggestion != "" {
		return fmt.Sprintf("Error: %s\n\nSuggestion: %s", err.Error(), suggestion)
	}

	return fmt.Sprintf("Error: %s", err.Error())
}
