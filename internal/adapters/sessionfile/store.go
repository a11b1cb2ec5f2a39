package sessionfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"launchgate/internal/domain"
)

// Store persists the session as a single JSON document on disk. It is the
// client-side stand-in for the browser's local storage: identity and token
// are written and cleared together, never independently.
type Store struct {
	path string
}

// New returns a Store writing to path.
func New(path string) *Store {
	return &Store{path: path}
}

var _ domain.SessionStorage = (*Store)(nil)

// Load reads the stored session. A missing file means no session and
// returns (nil, nil). An unreadable or unparseable file is discarded so the
// process can proceed unauthenticated.
func (s *Store) Load(ctx context.Context) (*domain.Session, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read session file: %w", err)
	}
	var session domain.Session
	if err := json.Unmarshal(data, &session); err != nil || session.Identity == nil || session.Token == "" {
		_ = s.Clear(ctx)
		return nil, nil
	}
	if _, err := domain.ParseRole(string(session.Identity.Role)); err != nil {
		_ = s.Clear(ctx)
		return nil, nil
	}
	return &session, nil
}

// Save writes the session with owner-only permissions, creating the parent
// directory if needed.
func (s *Store) Save(_ context.Context, session *domain.Session) error {
	if session == nil || session.Identity == nil {
		return fmt.Errorf("cannot save empty session")
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	return nil
}

// Clear removes the stored session. Removing an absent file is not an error.
func (s *Store) Clear(_ context.Context) error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}
