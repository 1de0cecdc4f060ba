package session

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// TokenSlot is the single named place a client keeps its access token.
type TokenSlot interface {
	Get() (string, bool, error)
	Set(token string) error
	Clear() error
}

type MemorySlot struct {
	mu    sync.Mutex
	token string
	set   bool
}

func (s *MemorySlot) Get() (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.set, nil
}

func (s *MemorySlot) Set(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token, s.set = token, true
	return nil
}

func (s *MemorySlot) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token, s.set = "", false
	return nil
}

// FileSlot keeps the token in one file, readable only by the owner. Clearing the
// slot removes the file.
type FileSlot struct {
	Path string
}

func (s FileSlot) Get() (string, bool, error) {
	raw, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read token slot: %w", err)
	}

	token := strings.TrimSpace(string(raw))
	return token, token != "", nil
}

func (s FileSlot) Set(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o700); err != nil {
		return fmt.Errorf("create token slot dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.Path), ".token-*")
	if err != nil {
		return fmt.Errorf("create token slot: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(token); err != nil {
		tmp.Close()
		return fmt.Errorf("write token slot: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod token slot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close token slot: %w", err)
	}

	return os.Rename(tmp.Name(), s.Path)
}

func (s FileSlot) Clear() error {
	if err := os.Remove(s.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove token slot: %w", err)
	}
	return nil
}
