package memstore

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/ariefcatur/djikoe/internal/auth"
)

type Accounts struct {
	mu      sync.RWMutex
	byEmail map[string]auth.Account
}

func NewAccounts() *Accounts {
	return &Accounts{byEmail: map[string]auth.Account{}}
}

func (s *Accounts) Create(_ context.Context, a auth.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := strings.ToLower(a.Email)
	if _, ok := s.byEmail[key]; ok {
		return auth.ErrEmailTaken
	}
	s.byEmail[key] = a
	return nil
}

func (s *Accounts) GetByEmail(_ context.Context, email string) (auth.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.byEmail[strings.ToLower(email)]
	if !ok {
		return auth.Account{}, auth.ErrAccountNotFound
	}
	return a, nil
}

type tokenEntry struct {
	id        auth.Identity
	expiresAt time.Time
}

// Tokens = token store + pub/sub per token.
type Tokens struct {
	mu     sync.Mutex
	tokens map[string]tokenEntry
	subs   map[string]map[chan auth.EventKind]struct{}
}

func NewTokens() *Tokens {
	return &Tokens{
		tokens: map[string]tokenEntry{},
		subs:   map[string]map[chan auth.EventKind]struct{}{},
	}
}

func (s *Tokens) Save(_ context.Context, token string, id auth.Identity, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token] = tokenEntry{id: id, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (s *Tokens) Get(_ context.Context, token string) (*auth.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.tokens[token]
	if !ok {
		return nil, nil
	}
	if time.Now().After(e.expiresAt) {
		delete(s.tokens, token)
		return nil, nil
	}
	id := e.id
	return &id, nil
}

func (s *Tokens) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, token)
	return nil
}

func (s *Tokens) Publish(_ context.Context, token string, ev auth.EventKind) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for ch := range s.subs[token] {
		select {
		case ch <- ev:
		default:
		}
	}
	return nil
}

func (s *Tokens) Subscribe(ctx context.Context, token string) (<-chan auth.EventKind, error) {
	ch := make(chan auth.EventKind, 16)
	s.mu.Lock()
	if s.subs[token] == nil {
		s.subs[token] = map[chan auth.EventKind]struct{}{}
	}
	s.subs[token][ch] = struct{}{}
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		delete(s.subs[token], ch)
		if len(s.subs[token]) == 0 {
			delete(s.subs, token)
		}
		close(ch)
		s.mu.Unlock()
	}()
	return ch, nil
}

// Subscribers = jumlah subscriber aktif untuk token.
func (s *Tokens) Subscribers(token string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs[token])
}
