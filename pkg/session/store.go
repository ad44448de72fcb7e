// Package session manages the client's authenticated identity: durable
// storage of the bearer token and the logged-in/logged-out lifecycle,
// including forced teardown when the service rejects the credential.
package session

import (
	"errors"
	"os"
	"strings"
	"sync"

	"github.com/99designs/keyring"

	"github.com/hadas32/smart-parking-hub/internal/log"
)

// Store holds the current bearer credential in storage that survives a
// process restart. Storage failures on read are treated as "absent": the
// client fails open to logged out rather than trusting an unreadable
// credential.
type Store interface {
	// Token returns the stored credential, or false if none is stored or
	// storage is unavailable.
	Token() (string, bool)
	SetToken(token string) error
	Clear() error
}

// KeyringStore keeps the token in the OS credential store.
type KeyringStore struct {
	ring keyring.Keyring
	key  string
}

// NewKeyringStore opens the system keyring described by cfg. The name
// distinguishes tokens for different operators or deployments.
func NewKeyringStore(cfg keyring.Config, name string) (*KeyringStore, error) {
	ring, err := keyring.Open(cfg)
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = "default"
	}
	return &KeyringStore{ring: ring, key: "bearer." + name}, nil
}

func (s *KeyringStore) Token() (string, bool) {
	item, err := s.ring.Get(s.key)
	if err != nil {
		if !errors.Is(err, keyring.ErrKeyNotFound) {
			log.Warning("Keyring unavailable, treating session as logged out: %s", err)
		}
		return "", false
	}
	token := strings.TrimSpace(string(item.Data))
	return token, token != ""
}

func (s *KeyringStore) SetToken(token string) error {
	return s.ring.Set(keyring.Item{Key: s.key, Data: []byte(token)})
}

func (s *KeyringStore) Clear() error {
	err := s.ring.Remove(s.key)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return nil
	}
	return err
}

// FileStore keeps the token in a plain file, for environments without a
// usable keyring.
type FileStore struct {
	Path string
}

func (s *FileStore) Token() (string, bool) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Warning("Token file unreadable, treating session as logged out: %s", err)
		}
		return "", false
	}
	token := strings.TrimSpace(string(data))
	return token, token != ""
}

func (s *FileStore) SetToken(token string) error {
	return os.WriteFile(s.Path, []byte(token), 0600)
}

func (s *FileStore) Clear() error {
	err := os.Remove(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// MemoryStore holds the token in memory only. Useful for tests and
// one-shot invocations where persistence is undesirable.
type MemoryStore struct {
	mu    sync.Mutex
	token string
}

func (s *MemoryStore) Token() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.token != ""
}

func (s *MemoryStore) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}
