package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestWithSuggestion(t *testing.T) {
	base := stderrors.New("boom")
	err := WithSuggestion(base, "try again")

	if err.Error() != "boom" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !stderrors.Is(err, base) {
		t.Error("wrapped error lost")
	}
	if got := GetSuggestion(err); got != "try again" {
		t.Errorf("GetSuggestion() = %q", got)
	}
}

func TestGetSuggestionMatching(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"daemon unreachable sentinel", ErrDaemonUnreachable, "go-librespot"},
		{"connection refused text", fmt.Errorf("dial tcp: connection refused"), "go-librespot"},
		{"no session", ErrNoActiveSession, "activate"},
		{"stopped", ErrPlaybackStopped, "croon play"},
		{"timeout text", fmt.Errorf("context deadline exceeded"), "slow to respond"},
		{"config", ErrInvalidConfig, "config"},
		{"unknown", fmt.Errorf("mystery"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GetSuggestion(tt.err)
			if tt.want == "" {
				if got != "" {
					t.Errorf("GetSuggestion() = %q, want none", got)
				}
				return
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("GetSuggestion() = %q, want substring %q", got, tt.want)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	if Format(nil) != "" {
		t.Error("Format(nil) should be empty")
	}

	plain := Format(fmt.Errorf("mystery"))
	if plain != "Error: mystery" {
		t.Errorf("Format() = %q", plain)
	}

	withHint := Format(ErrPlaybackStopped)
	if !strings.Contains(withHint, "Suggestion:") {
		t.Errorf("Format() = %q, want suggestion section", withHint)
	}
}
