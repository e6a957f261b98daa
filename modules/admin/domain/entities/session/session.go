package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("session not found")
	ErrExpired  = errors.New("session expired")
)

type Session interface {
	Token() string
	IP() string
	UserAgent() string
	CreatedAt() time.Time
	ExpiresAt() time.Time
	Expired() bool
}

func New(ip, userAgent string, duration time.Duration, opts ...Option) Session {
	now := time.Now()
	s := &sessionImpl{
		token:     uuid.New().String(),
		ip:        ip,
		userAgent: userAgent,
		createdAt: now,
		expiresAt: now.Add(duration),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type Option func(*sessionImpl)

func WithToken(token string) Option {
	return func(s *sessionImpl) {
		if token != "" {
			s.token = token
		}
	}
}

func WithExpiresAt(expiresAt time.Time) Option {
	return func(s *sessionImpl) {
		if !expiresAt.IsZero() {
			s.expiresAt = expiresAt
		}
	}
}

type sessionImpl struct {
	token     string
	ip        string
	userAgent string
	createdAt time.Time
	expiresAt time.Time
}

func (s *sessionImpl) Token() string        { return s.token }
func (s *sessionImpl) IP() string           { return s.ip }
func (s *sessionImpl) UserAgent() string    { return s.userAgent }
func (s *sessionImpl) CreatedAt() time.Time { return s.createdAt }
func (s *sessionImpl) ExpiresAt() time.Time { return s.expiresAt }

func (s *sessionImpl) Expired() bool {
	return time.Now().After(s.expiresAt)
}

type Repository interface {
	GetByToken(ctx context.Context, token string) (Session, error)
	Save(ctx context.Context, session Session) error
	Delete(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context) int
}

// NewInMemoryRepository keeps sessions in process memory. Restarting
// the server logs every admin out, which is acceptable for a
// single-instance deployment.
func NewInMemoryRepository() Repository {
	return &inMemoryRepository{
		sessions: make(map[string]Session),
	}
}

type inMemoryRepository struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

func (r *inMemoryRepository) GetByToken(_ context.Context, token string) (Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[token]
	if !ok {
		return nil, ErrNotFound
	}
	if s.Expired() {
		return nil, ErrExpired
	}
	return s, nil
}

func (r *inMemoryRepository) Save(_ context.Context, session Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.Token()] = session
	return nil
}

func (r *inMemoryRepository) Delete(_ context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[token]; !ok {
		return ErrNotFound
	}
	delete(r.sessions, token)
	return nil
}

func (r *inMemoryRepository) DeleteExpired(_ context.Context) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	removed := 0
	for token, s := range r.sessions {
		if s.Expired() {
			delete(r.sessions, token)
			removed++
		}
	}
	return removed
}
