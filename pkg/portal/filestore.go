package portal

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// FileStore persists the session as JSON on disk, guarded by a file lock so
// multiple processes sharing the same session file do not interleave writes.
type FileStore struct {
	path string
	lock *flock.Flock
}

// NewFileStore creates a file-backed session store at path. The session file
// is created on first Set.
func NewFileStore(path string) *FileStore {
	return &FileStore{
		path: path,
		lock: flock.New(path + ".lock"),
	}
}

func (s *FileStore) Get() (Session, bool) {
	s.lock.RLock()
	defer s.lock.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return Session{}, false
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil || sess.Token == "" {
		return Session{}, false
	}
	return sess, true
}

func (s *FileStore) Set(sess Session) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}

func (s *FileStore) Clear() error {
	s.lock.Lock()
	defer s.lock.Unlock()

	err := os.Remove(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
