// Package session persists the bearer token between invocations, taking
// the place the browser's localStorage slot had in the original client.
package session

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// Store holds at most one session token, mirrored to a JSON file with
// 0600 permissions. A present token is the only local signal of an
// authenticated session; the token is never inspected or validated here.
type Store struct {
	mu     sync.Mutex
	path   string
	token  string
	loaded bool
}

type tokenFile struct {
	Token string `json:"token"`
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Token returns the persisted token, if any.
func (s *Store) Token() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load()
	return s.token, s.token != ""
}

// SetToken persists tok, replacing any previous token.
func (s *Store) SetToken(tok string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(tokenFile{Token: tok})
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return err
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return err
	}
	s.token = tok
	s.loaded = true
	return nil
}

// Clear removes the persisted token. Clearing an absent token is a no-op.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = ""
	s.loaded = true
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Authenticated reports whether a token is present.
func (s *Store) Authenticated() bool {
	_, ok := s.Token()
	return ok
}

// load reads the token file once. A missing or unreadable file means no
// session.
func (s *Store) load() {
	if s.loaded {
		return
	}
	s.loaded = true

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("could not read token file %s: %v", s.path, err)
		}
		return
	}
	var tf tokenFile
	if err := json.Unmarshal(data, &tf); err != nil {
		log.Printf("could not parse token file %s: %v", s.path, err)
		return
	}
	s.token = tf.Token
}
