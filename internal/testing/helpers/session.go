package helpers

import (
	"crypto/rand"
	"crypto/rsa"
	"sync"
	"testing"
	"time"

	"github.com/forgo/gatekeeper/internal/model"
	"github.com/forgo/gatekeeper/pkg/jwt"
)

// TestIssuer is the issuer used by NewTestJWTService
const TestIssuer = "gatekeeper-test"

// TokenSigner issues bearer tokens for a guard
type TokenSigner interface {
	Sign(claims jwt.Claims, guard string) (string, error)
}

// Session tracks the acting user per guard for one test
type Session struct {
	t      testing.TB
	signer TokenSigner

	mu     sync.Mutex
	actors map[string]*model.User
	guard  string
}

// NewSession creates a session that signs tokens with signer
func NewSession(t testing.TB, signer TokenSigner) *Session {
	return &Session{
		t:      t,
		signer: signer,
		actors: make(map[string]*model.User),
	}
}

// ActAs makes user the principal for guard. The most recent guard becomes
// the session's current guard.
func (s *Session) ActAs(user *model.User, guard string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.actors[guard] = user
	s.guard = guard
}

// Actor returns the user acting for guard, or nil
func (s *Session) Actor(guard string) *model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.actors[guard]
}

// Guard returns the guard of the most recent ActAs call
func (s *Session) Guard() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.guard
}

// Token signs a bearer token for the user acting on guard
func (s *Session) Token(guard string) string {
	s.t.Helper()

	user := s.Actor(guard)
	if user == nil {
		s.t.Fatalf("helpers: no user is acting for guard %q", guard)
		return ""
	}

	token, err := s.signer.Sign(jwt.Claims{
		UserID:      user.ID,
		Email:       user.Email,
		Roles:       user.Roles,
		Permissions: user.Permissions,
	}, guard)
	if err != nil {
		s.t.Fatalf("helpers: failed to sign token: %v", err)
	}
	return token
}

// NewRequest builds a request authenticated as the current actor
func (s *Session) NewRequest(method, path string) *RequestBuilder {
	s.t.Helper()
	return NewRequest(s.t, method, path).WithSession(s, s.Guard())
}

// NewTestJWTService creates a JWT service with in-memory keys for testing
func NewTestJWTService(t testing.TB) *jwt.Service {
	t.Helper()

	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("helpers: failed to generate RSA key: %v", err)
	}
	return jwt.NewTestService(privateKey, TestIssuer, 15*time.Minute)
}

// BoolPtr returns a pointer to the bool
func BoolPtr(b bool) *bool {
	return &b
}
