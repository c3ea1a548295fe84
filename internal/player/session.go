package player

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// Session persists the small amount of client-local state that should
// survive a restart: currently just the playing context URI, which the
// daemon's snapshot endpoint does not report.
type Session struct {
	mu   sync.Mutex
	path string
	data sessionData
}

type sessionData struct {
	ContextURI string `json:"context_uri,omitempty"`
}

// OpenSession loads the session file at path, creating an empty session if
// the file does not exist.
func OpenSession(path string) (*Session, error) {
	s := &Session{path: path}
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(raw, &s.data); err != nil {
		// A corrupt session file is not worth failing startup over.
		return &Session{path: path}, nil
	}
	return s, nil
}

// ContextURI returns the persisted playing context, or "".
func (s *Session) ContextURI() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.ContextURI
}

// SetContextURI records and persists the playing context.
func (s *Session) SetContextURI(uri string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data.ContextURI == uri {
		return nil
	}
	s.data.ContextURI = uri
	return s.save()
}

// save writes the session file. Caller must hold the mutex.
func (s *Session) save() error {
	if s.path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, raw, 0o644)
}
