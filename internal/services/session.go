package services

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"sync"
	"time"

	"launchgate/internal/adapters/authtoken"
	"launchgate/internal/domain"
)

const minPasswordLen = 8

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type sessionService struct {
	gateway domain.Gateway
	storage domain.SessionStorage
	logger  *slog.Logger

	mu      sync.RWMutex
	session *domain.Session
	ready   bool
}

// NewSessionService creates the session store backed by the given gateway
// and persistent storage. Restore must be called before gate decisions.
func NewSessionService(gateway domain.Gateway, storage domain.SessionStorage, logger *slog.Logger) domain.SessionService {
	return &sessionService{
		gateway: gateway,
		storage: storage,
		logger:  logger,
	}
}

// Restore loads the persisted session, if any. It flips the store to ready
// even when nothing was stored or the stored state was discarded, so the
// gate never sees a half-initialized store. An expired token is kept: the
// backend's first 401 is what tears the session down.
func (s *sessionService) Restore(ctx context.Context) error {
	session, err := s.storage.Load(ctx)
	if err != nil {
		s.setReady(nil)
		return fmt.Errorf("restore session: %w", err)
	}
	if session != nil {
		if claims, err := authtoken.Peek(string(session.Token)); err != nil {
			s.logger.WarnContext(ctx, "stored token is not a parseable JWT", "err", err)
		} else if claims.Expired(time.Now()) {
			s.logger.WarnContext(ctx, "stored token is expired, backend will reject it",
				"email", session.Identity.Email, "expired_at", claims.ExpiresAt)
		}
	}
	s.setReady(session)
	return nil
}

func (s *sessionService) setReady(session *domain.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = session
	s.ready = true
}

func (s *sessionService) Login(ctx context.Context, email, password string) (*domain.Identity, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, fmt.Errorf("email and password are required")
	}
	result, err := s.gateway.Login(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("%s", domain.ErrorDetail(err, "login failed"))
	}
	return s.activate(ctx, result)
}

func (s *sessionService) Register(ctx context.Context, email, password string, role domain.Role, name string) (*domain.Identity, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if !emailRegexp.MatchString(email) {
		return nil, fmt.Errorf("invalid email format")
	}
	if len(password) < minPasswordLen {
		return nil, fmt.Errorf("password must be at least %d characters", minPasswordLen)
	}
	if _, err := domain.ParseRole(string(role)); err != nil {
		return nil, err
	}
	result, err := s.gateway.Register(ctx, email, password, role, strings.TrimSpace(name))
	if err != nil {
		return nil, fmt.Errorf("%s", domain.ErrorDetail(err, "registration failed"))
	}
	return s.activate(ctx, result)
}

func (s *sessionService) activate(ctx context.Context, result *domain.AuthResult) (*domain.Identity, error) {
	if result.User == nil || result.Token == "" {
		return nil, fmt.Errorf("backend returned an incomplete auth response")
	}
	session := &domain.Session{Identity: result.User, Token: result.Token}
	if err := s.storage.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}
	s.mu.Lock()
	s.session = session
	s.ready = true
	s.mu.Unlock()
	return result.User, nil
}

// Logout clears the persisted and active session. Safe to call repeatedly
// and from the gateway's auth-rejected hook.
func (s *sessionService) Logout(ctx context.Context) {
	if err := s.storage.Clear(ctx); err != nil {
		s.logger.WarnContext(ctx, "failed to clear persisted session", "err", err)
	}
	s.mu.Lock()
	s.session = nil
	s.mu.Unlock()
}

func (s *sessionService) Current() *domain.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return nil
	}
	return s.session.Identity
}

func (s *sessionService) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// Token implements the gateway's token source.
func (s *sessionService) Token() domain.Credential {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return ""
	}
	return s.session.Token
}
