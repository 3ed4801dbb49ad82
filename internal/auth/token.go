package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// Claims is the decoded identity payload carried by a bearer token.
type Claims struct {
	CompanyID string
	UserID    string
	UserName  string
	CPF       string
	Active    string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenManager signs and verifies HS256 access tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	issuer string
}

func NewTokenManager(secret string, ttl time.Duration, issuer string) (*TokenManager, error) {
	if secret == "" {
		return nil, errors.New("token secret required")
	}
	if ttl <= 0 {
		return nil, errors.New("token ttl must be > 0")
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl, issuer: issuer}, nil
}

// TokenUser carries the user attributes embedded in an access token.
type TokenUser struct {
	ID        int64
	Name      string
	CPF       string
	Active    string
	CompanyID int64
}

// Generate mints an access token for the supplied user. The company id
// doubles as the subject so downstream consumers can key on it directly.
func (tm *TokenManager) Generate(user TokenUser) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(tm.ttl)

	claims := jwt.MapClaims{
		"sub":         strconv.FormatInt(user.CompanyID, 10),
		"empresa":     strconv.FormatInt(user.CompanyID, 10),
		"codusuario":  strconv.FormatInt(user.ID, 10),
		"nomeusuario": user.Name,
		"cpfUsuario":  user.CPF,
		"ativo":       user.Active,
		"jti":         uuid.NewString(),
		"iat":         now.Unix(),
		"exp":         exp.Unix(),
		"iss":         tm.issuer,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, exp, nil
}

// Decode verifies the signature and validity window of a token.
// An expired-but-authentic token returns ErrTokenExpired so callers can
// surface the distinction; every other failure maps to ErrTokenInvalid.
func (tm *TokenManager) Decode(token string) (Claims, error) {
	parsed, err := jwt.Parse(token, tm.keyFunc, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, ErrTokenInvalid
	}
	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return Claims{}, ErrTokenInvalid
	}
	return claimsFromMap(mapClaims), nil
}

// DecodeExpired verifies the signature but ignores the expiry window.
// Used by the audit middleware to recover a best-effort identity from
// tokens that would fail normal validation.
func (tm *TokenManager) DecodeExpired(token string) (Claims, error) {
	parsed, err := jwt.Parse(token, tm.keyFunc,
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return Claims{}, ErrTokenInvalid
	}
	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrTokenInvalid
	}
	return claimsFromMap(mapClaims), nil
}

func (tm *TokenManager) keyFunc(t *jwt.Token) (interface{}, error) {
	if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
	}
	return tm.secret, nil
}

func claimsFromMap(m jwt.MapClaims) Claims {
	c := Claims{
		CompanyID: stringClaim(m, "empresa"),
		UserID:    stringClaim(m, "codusuario"),
		UserName:  stringClaim(m, "nomeusuario"),
		CPF:       stringClaim(m, "cpfUsuario"),
		Active:    stringClaim(m, "ativo"),
	}
	if iat, ok := m["iat"].(float64); ok {
		c.IssuedAt = time.Unix(int64(iat), 0)
	}
	if exp, ok := m["exp"].(float64); ok {
		c.ExpiresAt = time.Unix(int64(exp), 0)
	}
	return c
}

func stringClaim(m jwt.MapClaims, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}
