package jwt

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

// ============================================================================
// Test Helpers
// ============================================================================

func newTestService(t *testing.T) *Service {
	t.Helper()
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("failed to generate RSA key: %v", err)
	}
	return NewTestService(privateKey, "test-issuer", 15*time.Minute)
}

func mustSign(t *testing.T, s *Service, claims Claims, guard string) string {
	t.Helper()
	token, err := s.Sign(claims, guard)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	return token
}

// ============================================================================
// Sign / Validate
// ============================================================================

func TestSignAndValidate_RoundTrip(t *testing.T) {
	t.Parallel()
	s := newTestService(t)

	token := mustSign(t, s, Claims{
		UserID:      "user:123",
		Email:       "test@example.com",
		Roles:       []string{"admin"},
		Permissions: []string{"users.read"},
	}, "api")

	claims, err := s.Validate(token, "api")
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}

	if claims.UserID != "user:123" || claims.Subject != "user:123" {
		t.Errorf("unexpected user/subject: %q / %q", claims.UserID, claims.Subject)
	}
	if claims.Issuer != "test-issuer" {
		t.Errorf("unexpected issuer %q", claims.Issuer)
	}
	if claims.Guard() != "api" {
		t.Errorf("unexpected guard %q", claims.Guard())
	}
	if len(claims.Roles) != 1 || claims.Roles[0] != "admin" {
		t.Errorf("roles not preserved: %v", claims.Roles)
	}
	if len(claims.Permissions) != 1 || claims.Permissions[0] != "users.read" {
		t.Errorf("permissions not preserved: %v", claims.Permissions)
	}
}

func TestSign_SetsDefaultExpiration(t *testing.T) {
	t.Parallel()
	s := newTestService(t)

	claims, err := s.Validate(mustSign(t, s, Claims{UserID: "user:1"}, "api"), "api")
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}

	got := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	if got != 15*time.Minute {
		t.Errorf("expected 15m lifetime, got %v", got)
	}
}

func TestSign_NilPrivateKey_ReturnsErrInvalidKey(t *testing.T) {
	t.Parallel()
	s := &Service{issuer: "x", now: time.Now}

	if _, err := s.Sign(Claims{UserID: "user:1"}, "api"); !errors.Is(err, ErrInvalidKey) {
		t.Errorf("expected ErrInvalidKey, got %v", err)
	}
	if _, err := s.Validate("a.b.c", "api"); !errors.Is(err, ErrInvalidKey) {
		t.Errorf("expected ErrInvalidKey from Validate, got %v", err)
	}
}

func TestValidate_WrongGuard(t *testing.T) {
	t.Parallel()
	s := newTestService(t)

	_, err := s.Validate(mustSign(t, s, Claims{UserID: "user:1"}, "api"), "admin")

	if !errors.Is(err, ErrWrongGuard) {
		t.Errorf("expected ErrWrongGuard, got %v", err)
	}
}

func TestValidate_ExpiredToken(t *testing.T) {
	t.Parallel()
	s := newTestService(t)

	token := mustSign(t, s, Claims{
		UserID:           "user:1",
		RegisteredClaims: gojwt.RegisteredClaims{ExpiresAt: gojwt.NewNumericDate(time.Now().Add(-time.Minute))},
	}, "api")

	if _, err := s.Validate(token, "api"); !errors.Is(err, ErrTokenExpired) {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}

func TestValidate_NotYetValid(t *testing.T) {
	t.Parallel()
	s := newTestService(t)
	s.now = func() time.Time { return time.Now().Add(time.Hour) }
	token := mustSign(t, s, Claims{UserID: "user:1"}, "api")
	s.now = time.Now

	if _, err := s.Validate(token, "api"); !errors.Is(err, ErrTokenNotYetValid) {
		t.Errorf("expected ErrTokenNotYetValid, got %v", err)
	}
}

func TestValidate_DifferentKey_ReturnsErrInvalidSignature(t *testing.T) {
	t.Parallel()
	signer := newTestService(t)
	verifier := newTestService(t)

	_, err := verifier.Validate(mustSign(t, signer, Claims{UserID: "user:1"}, "api"), "api")

	if !errors.Is(err, ErrInvalidSignature) {
		t.Errorf("expected ErrInvalidSignature, got %v", err)
	}
}

func TestValidate_WrongIssuer_ReturnsErrInvalidToken(t *testing.T) {
	t.Parallel()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("failed to generate RSA key: %v", err)
	}
	signer := NewTestService(key, "someone-else", time.Minute)
	verifier := NewTestService(key, "test-issuer", time.Minute)

	_, err = verifier.Validate(mustSign(t, signer, Claims{UserID: "user:1"}, "api"), "api")

	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestValidate_Malformed_ReturnsErrInvalidToken(t *testing.T) {
	t.Parallel()
	s := newTestService(t)

	for _, token := range []string{"", "abc", "a.b", "a.b.c.d", "not.a.jwt"} {
		if _, err := s.Validate(token, "api"); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Validate(%q): expected ErrInvalidToken, got %v", token, err)
		}
	}
}

func TestValidate_RejectsHMACAlgorithm(t *testing.T) {
	t.Parallel()
	s := newTestService(t)

	forged, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, Claims{
		UserID: "user:1",
		RegisteredClaims: gojwt.RegisteredClaims{
			Issuer:    "test-issuer",
			Audience:  gojwt.ClaimStrings{"api"},
			ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte("guess"))
	if err != nil {
		t.Fatalf("failed to forge token: %v", err)
	}

	if _, err := s.Validate(forged, "api"); err == nil {
		t.Error("HS256 token must be rejected")
	}
}

func TestClaims_Guard_Empty(t *testing.T) {
	t.Parallel()

	if got := (&Claims{}).Guard(); got != "" {
		t.Errorf("expected empty guard, got %q", got)
	}
}

// ============================================================================
// Key loading
// ============================================================================

func TestGenerateKeyPair_LoadsIntoService(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	priv := filepath.Join(dir, "private.pem")
	pub := filepath.Join(dir, "public.pem")

	if err := GenerateKeyPair(priv, pub); err != nil {
		t.Fatalf("GenerateKeyPair: %v", err)
	}

	signer, err := NewService(Config{PrivateKeyPath: priv, Issuer: "gk", ExpirationMins: 5})
	if err != nil {
		t.Fatalf("NewService(private): %v", err)
	}
	verifier, err := NewService(Config{PublicKeyPath: pub, Issuer: "gk", ExpirationMins: 5})
	if err != nil {
		t.Fatalf("NewService(public): %v", err)
	}

	token := mustSign(t, signer, Claims{UserID: "user:9"}, "api")
	if _, err := verifier.Validate(token, "api"); err != nil {
		t.Errorf("public-key service should validate: %v", err)
	}
	if _, err := verifier.Sign(Claims{UserID: "user:9"}, "api"); !errors.Is(err, ErrInvalidKey) {
		t.Errorf("validate-only service must not sign, got %v", err)
	}
	if signer.GetExpiration() != 5*time.Minute {
		t.Errorf("unexpected expiration %v", signer.GetExpiration())
	}
}

func TestNewService_NoKeys_ReturnsService(t *testing.T) {
	t.Parallel()

	s, err := NewService(Config{Issuer: "gk"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.privateKey != nil || s.publicKey != nil {
		t.Error("expected no keys loaded")
	}
}

func TestNewService_MissingFiles_ReturnError(t *testing.T) {
	t.Parallel()
	missing := filepath.Join(t.TempDir(), "nope.pem")

	if _, err := NewService(Config{PrivateKeyPath: missing}); err == nil {
		t.Error("expected error for missing private key")
	}
	if _, err := NewService(Config{PublicKeyPath: missing}); err == nil {
		t.Error("expected error for missing public key")
	}
}

func TestNewService_InvalidPEM_ReturnsError(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "bad.pem")
	if err := os.WriteFile(path, []byte("not a pem"), 0600); err != nil {
		t.Fatalf("write: %v", err)
	}

	_, err := NewService(Config{PrivateKeyPath: path})
	if err == nil || !strings.Contains(err.Error(), "private key") {
		t.Errorf("expected private key error, got %v", err)
	}
}

func TestNewService_PKCS8PrivateKey(t *testing.T) {
	t.Parallel()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("failed to generate RSA key: %v", err)
	}
	der, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	path := filepath.Join(t.TempDir(), "pkcs8.pem")
	if err := os.WriteFile(path, pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der}), 0600); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := NewService(Config{PrivateKeyPath: path, Issuer: "gk"}); err != nil {
		t.Errorf("PKCS#8 key should load: %v", err)
	}
}
