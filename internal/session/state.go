// Package session holds the vault's in-memory unlock state: the derived
// master key and the token issued to the caller that unlocked it.
package session

import (
	"crypto/subtle"
	"sync"

	"github.com/dmitrijs2005/passvault/internal/common"
)

// State is safe for concurrent use. Key and token always change together,
// so readers observe either the previous pair or the new one in full.
type State struct {
	mu    sync.RWMutex
	key   []byte
	token string
}

func New() *State {
	return &State{}
}

// Unlock installs a new key and token, replacing (and wiping) any previous
// session. State keeps its own copy of key.
func (s *State) Unlock(key []byte, token string) {
	k := common.CloneBytes(key)

	s.mu.Lock()
	defer s.mu.Unlock()

	common.WipeByteArray(s.key)
	s.key = k
	s.token = token
}

// Lock forgets the key and token. Locking an already locked state is a no-op.
func (s *State) Lock() {
	s.mu.Lock()
	defer s.mu.Unlock()

	common.WipeByteArray(s.key)
	s.key = nil
	s.token = ""
}

// CurrentKey returns a copy of the key, or common.ErrUnauthenticated while
// locked. Callers own the copy and may wipe it when done.
func (s *State) CurrentKey() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.key) == 0 {
		return nil, common.ErrUnauthenticated
	}
	return common.CloneBytes(s.key), nil
}

func (s *State) Unlocked() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.key) > 0
}

// Token returns the current session token and whether one is set.
func (s *State) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

// MatchToken reports, in constant time, whether tok is the live token.
func (s *State) MatchToken(tok string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.token == "" || tok == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(s.token), []byte(tok)) == 1
}
