package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/softcenter/freight-bi/internal/store"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidCPF         = errors.New("invalid cpf")
)

// Service authenticates control-plane users and issues access tokens.
type Service struct {
	store        *store.Store
	tokenManager *TokenManager
}

func NewService(st *store.Store, tm *TokenManager) *Service {
	return &Service{store: st, tokenManager: tm}
}

// TokenManager exposes the underlying manager for middleware that only
// needs decode capabilities.
func (s *Service) TokenManager() *TokenManager {
	return s.tokenManager
}

// Authenticate verifies a CPF/password pair and returns a signed access
// token carrying the user's company identity.
func (s *Service) Authenticate(ctx context.Context, cpf, password string) (string, time.Time, error) {
	user, err := s.store.GetUserByCPF(ctx, NormalizeCPF(cpf))
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return "", time.Time{}, ErrInvalidCredentials
		}
		return "", time.Time{}, fmt.Errorf("lookup user: %w", err)
	}

	match, err := VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return "", time.Time{}, err
	}
	if !match {
		return "", time.Time{}, ErrInvalidCredentials
	}

	return s.tokenManager.Generate(TokenUser{
		ID:        user.ID,
		Name:      user.Name,
		CPF:       user.CPF,
		Active:    user.Active,
		CompanyID: user.CompanyID,
	})
}

// Register creates a new account after validating the CPF checksum and
// hashing the password.
func (s *Service) Register(ctx context.Context, user store.User, password string) (store.User, error) {
	user.CPF = NormalizeCPF(user.CPF)
	if !ValidateCPF(user.CPF) {
		return store.User{}, ErrInvalidCPF
	}
	hash, err := HashPassword(password)
	if err != nil {
		return store.User{}, err
	}
	user.PasswordHash = hash
	return s.store.CreateUser(ctx, user)
}
