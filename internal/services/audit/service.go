// Package audit records every API exchange and provides read access to
// the trail.
package audit

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/softcenter/freight-bi/internal/store"
)

var ErrServiceUnavailable = errors.New("audit service not initialized")

// Service writes and lists audit rows in the control-plane database.
type Service struct {
	store *store.Store
}

func NewService(st *store.Store) *Service {
	return &Service{store: st}
}

// Record is one captured exchange. User and CompanyID stay nil when the
// request carried no decodable token.
type Record struct {
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
}

// Write persists one record. Failures surface to the caller; an
// exchange that cannot be audited must not be silently dropped.
func (s *Service) Write(ctx context.Context, rec Record) error {
	if s == nil || s.store == nil {
		return ErrServiceUnavailable
	}
	return s.store.InsertAuditEntry(ctx, store.AuditEntry{
		User:         rec.User,
		CompanyID:    rec.CompanyID,
		Method:       rec.Method,
		Endpoint:     rec.Endpoint,
		Params:       rec.Params,
		RequestBody:  rec.RequestBody,
		ResponseBody: rec.ResponseBody,
		StatusCode:   rec.StatusCode,
		IPAddress:    rec.IPAddress,
		UserAgent:    rec.UserAgent,
	})
}

// Filter controls audit listing.
type Filter struct {
	Limit  int32
	Offset int32
}

// Entry is one audit row as returned to administrators.
type Entry struct {
	ID           int64           `json:"id"`
	User         *string         `json:"usuario"`
	CompanyID    *string         `json:"codempresa"`
	Method       string          `json:"metodo"`
	Endpoint     string          `json:"endpoint"`
	Params       json.RawMessage `json:"params"`
	RequestBody  json.RawMessage `json:"body_request"`
	ResponseBody json.RawMessage `json:"body_response"`
	StatusCode   int             `json:"status_code"`
	IPAddress    string          `json:"ip_address"`
	UserAgent    string          `json:"user_agent"`
	CreatedAt    time.Time       `json:"created_at"`
}

// List returns recent entries, newest first.
func (s *Service) List(ctx context.Context, filter Filter) ([]Entry, error) {
	if s == nil || s.store == nil {
		return nil, ErrServiceUnavailable
	}
	rows, err := s.store.ListAuditEntries(ctx, filter.Limit, filter.Offset)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, Entry{
			ID:           row.ID,
			User:         row.User,
			CompanyID:    row.CompanyID,
			Method:       row.Method,
			Endpoint:     row.Endpoint,
			Params:       row.Params,
			RequestBody:  row.RequestBody,
			ResponseBody: row.ResponseBody,
			StatusCode:   row.StatusCode,
			IPAddress:    row.IPAddress,
			UserAgent:    row.UserAgent,
			CreatedAt:    row.CreatedAt,
		})
	}
	return entries, nil
}
