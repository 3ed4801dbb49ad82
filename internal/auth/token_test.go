package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

func newTestManager(t *testing.T) *TokenManager {
	t.Helper()
	tm, err := NewTokenManager(testSecret, time.Hour, "freight-bi")
	if err != nil {
		t.Fatalf("new token manager: %v", err)
	}
	return tm
}

func TestGenerateDecodeRoundTrip(t *testing.T) {
	tm := newTestManager(t)

	token, exp, err := tm.Generate(TokenUser{
		ID:        12,
		Name:      "Maria",
		CPF:       "52998224725",
		Active:    "S",
		CompanyID: 7,
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !exp.After(time.Now()) {
		t.Fatalf("expiry not in the future: %v", exp)
	}

	claims, err := tm.Decode(token)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if claims.CompanyID != "7" {
		t.Fatalf("empresa claim = %q, want \"7\"", claims.CompanyID)
	}
	if claims.UserID != "12" || claims.UserName != "Maria" || claims.CPF != "52998224725" || claims.Active != "S" {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestDecodeRejectsTamperedToken(t *testing.T) {
	tm := newTestManager(t)
	token, _, err := tm.Generate(TokenUser{ID: 1, CompanyID: 1})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	tampered := token[:len(token)-2] + "xx"
	if _, err := tm.Decode(tampered); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestDecodeRejectsWrongSecret(t *testing.T) {
	tm := newTestManager(t)
	other, err := NewTokenManager("another-secret", time.Hour, "freight-bi")
	if err != nil {
		t.Fatalf("new token manager: %v", err)
	}
	token, _, err := other.Generate(TokenUser{ID: 1, CompanyID: 1})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := tm.Decode(token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestDecodeRejectsUnsignedAlgorithm(t *testing.T) {
	tm := newTestManager(t)
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"empresa": "7"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}
	if _, err := tm.Decode(unsigned); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func expiredToken(t *testing.T) string {
	t.Helper()
	now := time.Now().Add(-2 * time.Hour)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"empresa":     "7",
		"nomeusuario": "Maria",
		"iat":         now.Unix(),
		"exp":         now.Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign expired token: %v", err)
	}
	return token
}

func TestDecodeExpiredToken(t *testing.T) {
	tm := newTestManager(t)
	token := expiredToken(t)

	if _, err := tm.Decode(token); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}

	// The audit path still recovers identity from an expired token.
	claims, err := tm.DecodeExpired(token)
	if err != nil {
		t.Fatalf("decode expired: %v", err)
	}
	if claims.UserName != "Maria" || claims.CompanyID != "7" {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestDecodeExpiredStillVerifiesSignature(t *testing.T) {
	tm := newTestManager(t)
	token := expiredToken(t)
	parts := strings.Split(token, ".")
	forged := parts[0] + "." + parts[1] + ".AAAA"

	if _, err := tm.DecodeExpired(forged); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}
