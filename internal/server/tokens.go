package server

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultTokenTTL is how long a login token stays valid.
const DefaultTokenTTL = 24 * time.Hour

type tokenEntry struct {
	username  string
	expiresAt time.Time
}

// TokenStore maps login tokens to usernames. Tokens live in memory only,
// so a restart logs everybody out.
type TokenStore struct {
	mu     sync.Mutex
	tokens map[string]tokenEntry
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenStore creates a store whose tokens expire after ttl.
func NewTokenStore(ttl time.Duration) *TokenStore {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenStore{
		tokens: make(map[string]tokenEntry),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue creates a new token for username. Expired tokens are dropped on
// the way.
func (s *TokenStore) Issue(username string) string {
	token := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for tok, entry := range s.tokens {
		if now.After(entry.expiresAt) {
			delete(s.tokens, tok)
		}
	}
	s.tokens[token] = tokenEntry{username: username, expiresAt: now.Add(s.ttl)}
	return token
}

// Len returns the number of stored tokens, live or not yet swept.
func (s *TokenStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tokens)
}

// Lookup returns the username for a live token.
func (s *TokenStore) Lookup(token string) (string, bool) {
	if _, err := uuid.Parse(token); err != nil {
		return "", false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.tokens[token]
	if !ok {
		return "", false
	}
	if s.now().After(entry.expiresAt) {
		delete(s.tokens, token)
		return "", false
	}
	return entry.username, true
}

// Revoke invalidates a token.
func (s *TokenStore) Revoke(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, token)
}
