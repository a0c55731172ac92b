package session

import (
	"encoding/json"
	"os"
	"path/filepath"

	"eventsctl/internal/errors"
)

const sessionFile = "session.json"

// Store persists the session across program runs.
//
// Injectable so tests can substitute a memory-backed double; nothing else in
// the program touches the session file directly.
type Store interface {
	// Load reads the persisted session. Absent or unreadable state simply
	// means unauthenticated; there is no error path.
	Load() Session

	// Save persists all fields together, or clears them all together when
	// the session is missing a credential (pairing invariant).
	Save(s Session) error

	// Clear removes the persisted session. Used by logout and by
	// no-token-found detection.
	Clear() error
}

// FileStore persists the session as a JSON file under the config directory,
// readable only by the owner.
type FileStore struct {
	dir string
}

// NewFileStore creates a file-backed session store rooted at dir
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (f *FileStore) path() string {
	return filepath.Join(f.dir, sessionFile)
}

// Load implements Store
func (f *FileStore) Load() Session {
	data, err := os.ReadFile(f.path())
	if err != nil {
		return Session{}
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return Session{}
	}

	return s.normalize()
}

// Save implements Store
func (f *FileStore) Save(s Session) error {
	s = s.normalize()
	if !s.Authenticated() {
		return f.Clear()
	}

	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeSessionSave, "could not create session directory", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeSessionSave, "could not encode session", err)
	}

	if err := os.WriteFile(f.path(), data, 0o600); err != nil {
		return errors.Wrap(errors.ErrCodeSessionSave, "could not write session file", err)
	}

	return nil
}

// Clear implements Store
func (f *FileStore) Clear() error {
	if err := os.Remove(f.path()); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeSessionClear, "could not remove session file", err)
	}
	return nil
}

// MemStore is an in-memory session store for tests.
type MemStore struct {
	s Session
}

// NewMemStore creates an empty in-memory store
func NewMemStore() *MemStore {
	return &MemStore{}
}

// Load implements Store
func (m *MemStore) Load() Session {
	return m.s.normalize()
}

// Save implements Store
func (m *MemStore) Save(s Session) error {
	m.s = s.normalize()
	return nil
}

// Clear implements Store
func (m *MemStore) Clear() error {
	m.s = Session{}
	return nil
}
