// Package tenantdb opens request-scoped connections to a company's
// analytical Firebird database. Connections are never pooled across
// requests: the directory row is resolved fresh each time, so a change
// in a company's connection parameters takes effect immediately.
package tenantdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"

	_ "github.com/nakagami/firebirdsql"

	"github.com/softcenter/freight-bi/internal/config"
	"github.com/softcenter/freight-bi/internal/store"
)

// ErrUnreachable indicates the company database did not answer the
// connect attempt. Surfaced as a service-level error, never swallowed.
var ErrUnreachable = errors.New("company database unreachable")

// Opener builds per-request connections from directory rows plus the
// shared Firebird credentials.
type Opener struct {
	cfg config.FirebirdConfig
}

func NewOpener(cfg config.FirebirdConfig) *Opener {
	return &Opener{cfg: cfg}
}

// Open dials the analytical database described by info. The caller owns
// the returned handle and must Close it on every exit path.
func (o *Opener) Open(ctx context.Context, info store.ConnectionInfo) (*sql.DB, error) {
	db, err := sql.Open("firebirdsql", o.DSN(info))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}

	pingCtx := ctx
	if o.cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, o.cfg.ConnectTimeout)
		defer cancel()
	}
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	return db, nil
}

// DSN renders the firebirdsql connection string for a directory row.
// The database path is carried verbatim (Firebird paths are commonly
// Windows file paths like C:\data\RCR.FDB).
func (o *Opener) DSN(info store.ConnectionInfo) string {
	host := strings.TrimSpace(info.Host)
	port := strings.TrimSpace(info.Port)
	addr := host
	if port != "" {
		addr = host + ":" + port
	}
	dsn := fmt.Sprintf("%s:%s@%s/%s",
		url.PathEscape(o.cfg.User), url.PathEscape(o.cfg.Password),
		addr, info.Path)
	if o.cfg.Charset != "" {
		dsn += "?charset=" + o.cfg.Charset
	}
	return dsn
}
