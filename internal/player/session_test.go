package player

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSessionRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "session.json")

	s, err := OpenSession(path)
	if err != nil {
		t.Fatalf("OpenSession() error = %v", err)
	}
	if s.ContextURI() != "" {
		t.Errorf("fresh session ContextURI = %q", s.ContextURI())
	}

	if err := s.SetContextURI("spotify:playlist:abc"); err != nil {
		t.Fatalf("SetContextURI() error = %v", err)
	}

	reopened, err := OpenSession(path)
	if err != nil {
		t.Fatalf("OpenSession() after save error = %v", err)
	}
	if got := reopened.ContextURI(); got != "spotify:playlist:abc" {
		t.Errorf("ContextURI() = %q, want persisted value", got)
	}
}

func TestSessionCorruptFileIgnored(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := OpenSession(path)
	if err != nil {
		t.Fatalf("OpenSession() error = %v", err)
	}
	if s.ContextURI() != "" {
		t.Errorf("corrupt session should start empty, got %q", s.ContextURI())
	}
}

func TestSessionWithoutPath(t *testing.T) {
	s := &Session{}
	if err := s.SetContextURI("spotify:album:x"); err != nil {
		t.Errorf("pathless session save should be a no-op, got %v", err)
	}
	if s.ContextURI() != "spotify:album:x" {
		t.Error("in-memory value not kept")
	}
}
