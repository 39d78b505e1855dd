package store

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"quickchat/internal/crypto"
	"quickchat/internal/domain"
	"quickchat/internal/util/json"
)

const stateFile = "state.json"

// FileKV stores string values in one JSON file under dir. When a passphrase
// is set, each value is sealed before it touches disk.
type FileKV struct {
	dir        string
	passphrase string
	mu         sync.Mutex
}

// NewFileKV returns a FileKV rooted at dir. An empty passphrase stores
// values in the clear.
func NewFileKV(dir, passphrase string) *FileKV {
	return &FileKV{dir: dir, passphrase: passphrase}
}

func (s *FileKV) path() string { return filepath.Join(s.dir, stateFile) }

// Get returns the value for key.
func (s *FileKV) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return "", false, err
	}
	v, ok := values[key]
	if !ok {
		return "", false, nil
	}
	plain, err := s.open(v)
	if err != nil {
		return "", false, fmt.Errorf("open %q: %w", key, err)
	}
	return plain, true, nil
}

// Set writes key, replacing any previous value.
func (s *FileKV) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return err
	}
	stored, err := s.seal(value)
	if err != nil {
		return fmt.Errorf("seal %q: %w", key, err)
	}
	values[key] = stored
	return s.save(values)
}

// Clear removes the state file.
func (s *FileKV) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// load reads the state map. A missing file yields an empty map.
func (s *FileKV) load() (map[string]string, error) {
	values := map[string]string{}
	b, err := os.ReadFile(s.path())
	switch {
	case errors.Is(err, os.ErrNotExist):
		return values, nil
	case err != nil:
		return nil, err
	}
	if err := json.Unmarshal(b, &values); err != nil {
		return nil, fmt.Errorf("decode %s: %w", stateFile, err)
	}
	return values, nil
}

// save replaces the state file through a sibling temp file so a crash never
// leaves a half-written map behind.
func (s *FileKV) save(values map[string]string) error {
	b, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(s.dir, stateFile+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return err
	}
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path())
}

func (s *FileKV) seal(value string) (string, error) {
	if s.passphrase == "" {
		return value, nil
	}
	blob, err := crypto.Seal(s.passphrase, []byte(value))
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(blob), nil
}

func (s *FileKV) open(stored string) (string, error) {
	if s.passphrase == "" {
		return stored, nil
	}
	blob, err := base64.StdEncoding.DecodeString(stored)
	if err != nil {
		return "", err
	}
	plain, err := crypto.Open(s.passphrase, blob)
	if err != nil {
		return "", err
	}
	return string(plain), nil
}

// Compile-time assertion that FileKV implements domain.KeyValueStore.
var _ domain.KeyValueStore = (*FileKV)(nil)
