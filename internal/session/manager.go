package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/petshopzn/storefront-gateway/internal/domain"
)

// AuthExchanger trades credentials for a token+user pair against the backend.
// Implemented by gateway.Client.
type AuthExchanger interface {
	Login(ctx context.Context, creds domain.Credentials) (*domain.Session, error)
	Register(ctx context.Context, reg domain.Registration) (*domain.Session, error)
	Logout(ctx context.Context, token string) error
}

// Manager is the single authoritative view of who is logged in. It is the only
// writer of the store: login and register create sessions, logout destroys
// them, everything else reads.
type Manager struct {
	store   Store
	backend AuthExchanger
	ttl     time.Duration
	logger  *zap.Logger
}

// NewManager builds the session manager.
func NewManager(store Store, backend AuthExchanger, ttl time.Duration, logger *zap.Logger) *Manager {
	return &Manager{store: store, backend: backend, ttl: ttl, logger: logger}
}

// Resolve loads the session stored under sid. Store failures and corrupt data
// both resolve to no session; a read problem must never take down navigation.
func (m *Manager) Resolve(ctx context.Context, sid string) *domain.Session {
	if sid == "" {
		return nil
	}
	sess, err := m.store.Read(ctx, sid)
	if err != nil {
		m.logger.Warn("session read failed", zap.Error(err))
		return nil
	}
	return sess
}

// Login exchanges credentials with the backend and persists the resulting
// session. The error is returned as a value for inline rendering; on failure
// nothing is persisted.
func (m *Manager) Login(ctx context.Context, creds domain.Credentials) (string, *domain.Session, error) {
	sess, err := m.backend.Login(ctx, creds)
	if err != nil {
		return "", nil, err
	}
	return m.persist(ctx, sess)
}

// Register validates and submits a registration, then persists the returned
// session directly; no second login round-trip is made.
func (m *Manager) Register(ctx context.Context, reg domain.Registration) (string, *domain.Session, error) {
	sess, err := m.backend.Register(ctx, reg)
	if err != nil {
		return "", nil, err
	}
	return m.persist(ctx, sess)
}

// Logout invalidates the backend session best-effort and unconditionally
// clears the stored one. A failed network call is logged and swallowed; local
// cleanup never depends on it.
func (m *Manager) Logout(ctx context.Context, sid, token string) {
	if token != "" {
		if err := m.backend.Logout(ctx, token); err != nil {
			m.logger.Warn("backend logout failed", zap.Error(err))
		}
	}
	if sid == "" {
		return
	}
	if err := m.store.Clear(ctx, sid); err != nil {
		m.logger.Error("session clear failed", zap.Error(err))
	}
}

// Discard drops a stored session without contacting the backend. Used when the
// backend has already rejected the bearer token.
func (m *Manager) Discard(ctx context.Context, sid string) {
	if sid == "" {
		return
	}
	if err := m.store.Clear(ctx, sid); err != nil {
		m.logger.Error("session clear failed", zap.Error(err))
	}
}

func (m *Manager) persist(ctx context.Context, sess *domain.Session) (string, *domain.Session, error) {
	// Token and user must arrive together; a half pair is never stored.
	if !sess.Authenticated() {
		return "", nil, errors.New("backend returned incomplete session")
	}
	sid := uuid.NewString()
	if err := m.store.Write(ctx, sid, sess, m.ttl); err != nil {
		return "", nil, err
	}
	return sid, sess, nil
}
