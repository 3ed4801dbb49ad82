package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/softcenter/freight-bi/internal/auth"
	"github.com/softcenter/freight-bi/internal/config"
	"github.com/softcenter/freight-bi/internal/observability"
	"github.com/softcenter/freight-bi/internal/report"
	auditservice "github.com/softcenter/freight-bi/internal/services/audit"
	companyservice "github.com/softcenter/freight-bi/internal/services/company"
	"github.com/softcenter/freight-bi/internal/store"
	"github.com/softcenter/freight-bi/internal/tenantdb"
)

// Container aggregates runtime dependencies for handlers and services.
type Container struct {
	Config            *config.Config
	DBPool            *pgxpool.Pool
	Store             *store.Store
	TokenManager      *auth.TokenManager
	Auth              *auth.Service
	Companies         *companyservice.Service
	Audit             *auditservice.Service
	Reports           *report.Service
	TenantDB          *tenantdb.Opener
	Observability     *observability.Provider
	ReportingLocation *time.Location
}

// NewContainer builds a dependency container from the provided primitives.
func NewContainer(ctx context.Context, cfg *config.Config, pool *pgxpool.Pool) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if pool == nil {
		return nil, fmt.Errorf("db pool is required")
	}

	locName := strings.TrimSpace(cfg.Reporting.Timezone)
	if locName == "" {
		locName = "UTC"
	}
	reportingLoc, err := time.LoadLocation(locName)
	if err != nil {
		return nil, fmt.Errorf("load reporting timezone: %w", err)
	}

	st := store.New(pool)

	tokenManager, err := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL, "freight-bi")
	if err != nil {
		return nil, fmt.Errorf("init token manager: %w", err)
	}

	obs, err := observability.Setup(ctx, cfg.Observability)
	if err != nil {
		return nil, fmt.Errorf("init observability: %w", err)
	}

	return &Container{
		Config:            cfg,
		DBPool:            pool,
		Store:             st,
		TokenManager:      tokenManager,
		Auth:              auth.NewService(st, tokenManager),
		Companies:         companyservice.NewService(st),
		Audit:             auditservice.NewService(st),
		Reports:           report.NewService(reportingLoc),
		TenantDB:          tenantdb.NewOpener(cfg.Firebird),
		Observability:     obs,
		ReportingLocation: reportingLoc,
	}, nil
}

// Close releases container-held resources.
func (c *Container) Close(ctx context.Context) error {
	if c == nil {
		return nil
	}
	if c.Observability != nil {
		if err := c.Observability.Shutdown(ctx); err != nil {
			return err
		}
	}
	if c.DBPool != nil {
		c.DBPool.Close()
	}
	return nil
}
