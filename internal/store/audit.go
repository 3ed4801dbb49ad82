package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// AuditEntry is one request/response exchange recorded in tbauditoria.
// Rows are append-only; nothing in the system updates or deletes them.
type AuditEntry struct {
	ID           int64
	User         *string
	CompanyID    *string
	Method       string
	Endpoint     string
	Params       json.RawMessage
	RequestBody  json.RawMessage
	ResponseBody json.RawMessage
	StatusCode   int
	IPAddress    string
	UserAgent    string
	CreatedAt    time.Time
}

// InsertAuditEntry appends one audit row.
func (s *Store) InsertAuditEntry(ctx context.Context, e AuditEntry) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO tbauditoria (usuario, codempresa, metodo, endpoint, params, body_request, body_response, status_code, ip_address, user_agent)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		e.User, e.CompanyID, e.Method, e.Endpoint,
		nullableJSON(e.Params), nullableJSON(e.RequestBody), nullableJSON(e.ResponseBody),
		e.StatusCode, e.IPAddress, e.UserAgent)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

// ListAuditEntries returns recent audit rows, newest first.
func (s *Store) ListAuditEntries(ctx context.Context, limit, offset int32) ([]AuditEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.pool.Query(ctx,
		`SELECT id, usuario, codempresa, metodo, endpoint, params, body_request, body_response, status_code, ip_address, user_agent, created_at
		 FROM tbauditoria ORDER BY id DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}
	defer rows.Close()

	var out []AuditEntry
	for rows.Next() {
		var e AuditEntry
		if err := rows.Scan(&e.ID, &e.User, &e.CompanyID, &e.Method, &e.Endpoint,
			&e.Params, &e.RequestBody, &e.ResponseBody, &e.StatusCode,
			&e.IPAddress, &e.UserAgent, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// nullableJSON keeps empty payloads as SQL NULL instead of empty strings.
func nullableJSON(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	return raw
}
