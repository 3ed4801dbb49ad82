// Package company manages the tenant directory: which client
// organizations exist and where their analytical databases live.
package company

import (
	"context"
	"errors"
	"strings"

	"github.com/softcenter/freight-bi/internal/store"
)

var (
	ErrServiceUnavailable = errors.New("company service not initialized")
	ErrMissingFields      = errors.New("company name and cnpj are required")
)

// Service centralizes company directory operations.
type Service struct {
	store *store.Store
}

func NewService(st *store.Store) *Service {
	return &Service{store: st}
}

// Input carries the mutable fields of a company record.
type Input struct {
	Name         string `json:"nomeempresa"`
	CNPJ         string `json:"cnpjcpf"`
	DatabaseKind string `json:"tipobdempresa"`
	DatabasePort string `json:"portabd"`
	DatabaseHost string `json:"ipbd"`
	DatabasePath string `json:"caminhobd"`
	Active       string `json:"ativa"`
}

func (in Input) validate() error {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.CNPJ) == "" {
		return ErrMissingFields
	}
	return nil
}

func (s *Service) List(ctx context.Context) ([]store.Company, error) {
	if s == nil || s.store == nil {
		return nil, ErrServiceUnavailable
	}
	return s.store.ListCompanies(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (store.Company, error) {
	if s == nil || s.store == nil {
		return store.Company{}, ErrServiceUnavailable
	}
	return s.store.GetCompany(ctx, id)
}

func (s *Service) Create(ctx context.Context, in Input) (store.Company, error) {
	if s == nil || s.store == nil {
		return store.Company{}, ErrServiceUnavailable
	}
	if err := in.validate(); err != nil {
		return store.Company{}, err
	}
	return s.store.CreateCompany(ctx, store.Company{
		Name:         strings.TrimSpace(in.Name),
		CNPJ:         strings.TrimSpace(in.CNPJ),
		DatabaseKind: in.DatabaseKind,
		DatabasePort: in.DatabasePort,
		DatabaseHost: in.DatabaseHost,
		DatabasePath: in.DatabasePath,
		Active:       in.Active,
	})
}

func (s *Service) Update(ctx context.Context, id int64, in Input) (store.Company, error) {
	if s == nil || s.store == nil {
		return store.Company{}, ErrServiceUnavailable
	}
	if err := in.validate(); err != nil {
		return store.Company{}, err
	}
	return s.store.UpdateCompany(ctx, store.Company{
		ID:           id,
		Name:         strings.TrimSpace(in.Name),
		CNPJ:         strings.TrimSpace(in.CNPJ),
		DatabaseKind: in.DatabaseKind,
		DatabasePort: in.DatabasePort,
		DatabaseHost: in.DatabaseHost,
		DatabasePath: in.DatabasePath,
		Active:       in.Active,
	})
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if s == nil || s.store == nil {
		return ErrServiceUnavailable
	}
	return s.store.DeleteCompany(ctx, id)
}
