package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// User is a control-plane account row from tbusuarios.
type User struct {
	ID           int64
	Name         string
	PasswordHash string
	CompanyID    int64
	Active       string
	CPF          string
	Email        string
}

const userColumns = `codusuario, nomeusuario, senhausuario, codempresa, usuarioativo, cpfusuario, emailusuario`

// GetUserByCPF looks up a user by the normalized CPF used as login name.
func (s *Store) GetUserByCPF(ctx context.Context, cpf string) (User, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM tbusuarios WHERE cpfusuario = $1`, cpf)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrUserNotFound
		}
		return User{}, fmt.Errorf("get user by cpf: %w", err)
	}
	return u, nil
}

// CreateUser inserts a new account and returns it with the assigned id.
func (s *Store) CreateUser(ctx context.Context, u User) (User, error) {
	row := s.pool.QueryRow(ctx,
		`INSERT INTO tbusuarios (nomeusuario, senhausuario, codempresa, usuarioativo, cpfusuario, emailusuario)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+userColumns,
		u.Name, u.PasswordHash, u.CompanyID, u.Active, u.CPF, u.Email)
	created, err := scanUser(row)
	if err != nil {
		return User{}, fmt.Errorf("create user: %w", err)
	}
	return created, nil
}

func scanUser(row pgx.Row) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Name, &u.PasswordHash, &u.CompanyID, &u.Active, &u.CPF, &u.Email)
	return u, err
}
