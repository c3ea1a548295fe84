package cli

import (
	"strings"
	"testing"
)

func TestFormatDurationMS(t *testing.T) {
	tests := []struct {
		ms   int64
		want string
	}{
		{0, "0:00"},
		{-500, "0:00"},
		{90000, "1:30"},
		{200000, "3:20"},
		{3723000, "1:02:03"},
	}

	for _, tt := range tests {
		if got := FormatDurationMS(tt.ms); got != tt.want {
			t.Errorf("FormatDurationMS(%d) = %q, want %q", tt.ms, got, tt.want)
		}
	}
}

func TestTruncateString(t *testing.T) {
	tests := []struct {
		s      string
		maxLen int
		want   string
	}{
		{"short", 10, "short"},
		{"exactly-10", 10, "exactly-10"},
		{"much too long for this", 10, "much to..."},
		{"ab", 2, "ab"},
	}

	for _, tt := range tests {
		if got := TruncateString(tt.s, tt.maxLen); got != tt.want {
			t.Errorf("TruncateString(%q, %d) = %q, want %q", tt.s, tt.maxLen, got, tt.want)
		}
	}
}

func TestFormatProgress(t *testing.T) {
	if got := FormatProgress(0, 0, 10); got != strings.Repeat("─", 10) {
		t.Errorf("zero total = %q", got)
	}

	half := FormatProgress(50, 100, 10)
	if !strings.HasPrefix(half, strings.Repeat("━", 5)) {
		t.Errorf("half progress = %q", half)
	}

	over := FormatProgress(500, 100, 10)
	if over != strings.Repeat("━", 10) {
		t.Errorf("overflow clamps: %q", over)
	}
}

func TestParsePosition(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"90", 90000, false},
		{"1:30", 90000, false},
		{"-15", -15000, false},
		{"0:00", 0, false},
		{"1:99", 0, true},
		{"abc", 0, true},
	}

	for _, tt := range tests {
		got, err := parsePosition(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parsePosition(%q) err = %v", tt.in, err)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("parsePosition(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
