package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

// Company is a tbempresas row: one client organization together with
// the connection parameters of its analytical database.
type Company struct {
	ID            int64
	Name          string
	CNPJ          string
	DatabaseKind  string
	DatabasePort  string
	DatabaseHost  string
	DatabasePath  string
	Active        string
	DeactivatedAt pgtype.Date
	RegisteredAt  pgtype.Date
}

// ConnectionInfo is the subset of a company row needed to reach its
// analytical database. Looked up fresh on every request.
type ConnectionInfo struct {
	CompanyID int64
	Host      string
	Port      string
	Path      string
}

const companyColumns = `codempresa, nomeempresa, cnpjcpf, tipobdempresa, portabd, ipbd, caminhobd, ativa, datadesativacao, datacadastro`

// GetCompanyConnection resolves a company id to its database connection
// parameters. Absence maps to ErrCompanyNotConfigured so callers can
// distinguish an unconfigured tenant from a query failure.
func (s *Store) GetCompanyConnection(ctx context.Context, companyID int64) (ConnectionInfo, error) {
	info := ConnectionInfo{CompanyID: companyID}
	err := s.pool.QueryRow(ctx,
		`SELECT t.ipbd, t.portabd, t.caminhobd FROM tbempresas t WHERE t.codempresa = $1`,
		companyID).Scan(&info.Host, &info.Port, &info.Path)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ConnectionInfo{}, ErrCompanyNotConfigured
		}
		return ConnectionInfo{}, fmt.Errorf("get company connection: %w", err)
	}
	return info, nil
}

// ListCompanies returns every registered company.
func (s *Store) ListCompanies(ctx context.Context) ([]Company, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+companyColumns+` FROM tbempresas ORDER BY codempresa`)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()

	var out []Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// GetCompany fetches one company by id.
func (s *Store) GetCompany(ctx context.Context, companyID int64) (Company, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+companyColumns+` FROM tbempresas WHERE codempresa = $1`, companyID)
	c, err := scanCompany(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Company{}, ErrCompanyNotFound
		}
		return Company{}, fmt.Errorf("get company: %w", err)
	}
	return c, nil
}

// CreateCompany inserts a company; a duplicate CNPJ maps to ErrCompanyExists.
func (s *Store) CreateCompany(ctx context.Context, c Company) (Company, error) {
	row := s.pool.QueryRow(ctx,
		`INSERT INTO tbempresas (nomeempresa, cnpjcpf, tipobdempresa, portabd, ipbd, caminhobd, ativa)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+companyColumns,
		c.Name, c.CNPJ, c.DatabaseKind, c.DatabasePort, c.DatabaseHost, c.DatabasePath, c.Active)
	created, err := scanCompany(row)
	if err != nil {
		if isUniqueViolation(err) {
			return Company{}, ErrCompanyExists
		}
		return Company{}, fmt.Errorf("create company: %w", err)
	}
	return created, nil
}

// UpdateCompany replaces the mutable fields of an existing company.
func (s *Store) UpdateCompany(ctx context.Context, c Company) (Company, error) {
	row := s.pool.QueryRow(ctx,
		`UPDATE tbempresas
		 SET nomeempresa = $2, cnpjcpf = $3, tipobdempresa = $4, portabd = $5, ipbd = $6, caminhobd = $7, ativa = $8
		 WHERE codempresa = $1
		 RETURNING `+companyColumns,
		c.ID, c.Name, c.CNPJ, c.DatabaseKind, c.DatabasePort, c.DatabaseHost, c.DatabasePath, c.Active)
	updated, err := scanCompany(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Company{}, ErrCompanyNotFound
		}
		if isUniqueViolation(err) {
			return Company{}, ErrCompanyExists
		}
		return Company{}, fmt.Errorf("update company: %w", err)
	}
	return updated, nil
}

// DeleteCompany removes a company row.
func (s *Store) DeleteCompany(ctx context.Context, companyID int64) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM tbempresas WHERE codempresa = $1`, companyID)
	if err != nil {
		return fmt.Errorf("delete company: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrCompanyNotFound
	}
	return nil
}

func scanCompany(row pgx.Row) (Company, error) {
	var c Company
	err := row.Scan(&c.ID, &c.Name, &c.CNPJ, &c.DatabaseKind, &c.DatabasePort,
		&c.DatabaseHost, &c.DatabasePath, &c.Active, &c.DeactivatedAt, &c.RegisteredAt)
	return c, err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
