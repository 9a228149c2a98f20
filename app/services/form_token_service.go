// Package services provides external service integrations and technical concerns like notifications and tokens
package services

import (
	"crypto/rand"
	"math/big"
	"sync"
	"time"

	"github.com/aztec-interiors/fitflow/utils"
)

// FormTokenStatus is the result of validating a form token
type FormTokenStatus int

const (
	FormTokenValid FormTokenStatus = iota
	FormTokenNotFound
	FormTokenExpired
	FormTokenUsed
)

// FormTokenService manages single-use customer form tokens.
// Tokens are 32-character alphanumeric strings valid for 24 hours.
// The registry is process-local; restarting the service invalidates all
// outstanding links.
type FormTokenService interface {
	// Issue creates a new token and returns it with its expiry time
	Issue() (token string, expiresAt time.Time, err error)
	// Validate reports the token's status. Expired tokens are removed
	// from the registry as a side effect.
	Validate(token string) (FormTokenStatus, time.Time)
	// Consume marks a token as used. Unknown tokens are ignored.
	Consume(token string)
	// ReapExpired removes expired tokens and returns how many were
	// removed and how many remain.
	ReapExpired() (removed, remaining int)
}

const tokenAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

type formTokenEntry struct {
	createdAt time.Time
	expiresAt time.Time
	used      bool
}

type formTokenServiceImpl struct {
	mu     sync.Mutex
	tokens map[string]*formTokenEntry
	ttl    time.Duration
	length int
}

// NewFormTokenService creates an in-memory form token registry
func NewFormTokenService(ttl time.Duration, length int) FormTokenService {
	if ttl <= 0 {
		ttl = utils.FormTokenTTL
	}
	if length <= 0 {
		length = utils.FormTokenLength
	}
	return &formTokenServiceImpl{
		tokens: make(map[string]*formTokenEntry),
		ttl:    ttl,
		length: length,
	}
}

func (s *formTokenServiceImpl) Issue() (string, time.Time, error) {
	token, err := generateSecureToken(s.length)
	if err != nil {
		return "", time.Time{}, err
	}

	now := utils.UTCNow()
	expiresAt := now.Add(s.ttl)

	s.mu.Lock()
	s.tokens[token] = &formTokenEntry{
		createdAt: now,
		expiresAt: expiresAt,
	}
	s.mu.Unlock()

	return token, expiresAt, nil
}

func (s *formTokenServiceImpl) Validate(token string) (FormTokenStatus, time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.tokens[token]
	if !ok {
		return FormTokenNotFound, time.Time{}
	}
	if utils.UTCNow().After(entry.expiresAt) {
		delete(s.tokens, token)
		return FormTokenExpired, time.Time{}
	}
	if entry.used {
		return FormTokenUsed, time.Time{}
	}
	return FormTokenValid, entry.expiresAt
}

func (s *formTokenServiceImpl) Consume(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry, ok := s.tokens[token]; ok {
		entry.used = true
	}
}

func (s *formTokenServiceImpl) ReapExpired() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := utils.UTCNow()
	removed := 0
	for token, entry := range s.tokens {
		if now.After(entry.expiresAt) {
			delete(s.tokens, token)
			removed++
		}
	}
	return removed, len(s.tokens)
}

// generateSecureToken builds a cryptographically random alphanumeric token
func generateSecureToken(length int) (string, error) {
	out := make([]byte, length)
	max := big.NewInt(int64(len(tokenAlphabet)))
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = tokenAlphabet[n.Int64()]
	}
	return string(out), nil
}
