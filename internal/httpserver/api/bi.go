package api

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/softcenter/freight-bi/internal/httpserver/httputil"
	"github.com/softcenter/freight-bi/internal/report"
	"github.com/softcenter/freight-bi/internal/store"
	"github.com/softcenter/freight-bi/internal/tenantdb"
)

// withTenantDB runs one reporting operation against the caller's
// company database. It resolves identity, looks the company up fresh,
// opens the analytical database for the duration of the request and
// closes it on every exit path.
func (h *handlers) withTenantDB(c *fiber.Ctx, name string, run func(ctx context.Context, db *sql.DB, f report.FiltersBI) (any, error)) error {
	companyID, ok := h.requireCompanyID(c)
	if !ok {
		return nil
	}

	var filters report.FiltersBI
	if body := c.Body(); len(body) > 0 {
		if err := json.Unmarshal(body, &filters); err != nil {
			return httputil.WriteError(c, fiber.StatusBadRequest, "Filtros inválidos")
		}
	}

	ctx := c.UserContext()
	companyLabel := strconv.FormatInt(companyID, 10)

	info, err := h.container.Store.GetCompanyConnection(ctx, companyID)
	if err != nil {
		if errors.Is(err, store.ErrCompanyNotConfigured) {
			return httputil.WriteError(c, fiber.StatusNotFound, "Configuração de conexão não encontrada")
		}
		return httputil.WriteError(c, fiber.StatusInternalServerError, "")
	}

	db, err := h.container.TenantDB.Open(ctx, info)
	if err != nil {
		h.container.Observability.RecordTenantConnection(companyLabel, "error")
		if errors.Is(err, tenantdb.ErrUnreachable) {
			return httputil.WriteError(c, fiber.StatusInternalServerError, "Banco de dados da empresa indisponível")
		}
		return httputil.WriteError(c, fiber.StatusInternalServerError, "")
	}
	defer db.Close()
	h.container.Observability.RecordTenantConnection(companyLabel, "ok")

	start := time.Now()
	result, err := run(ctx, db, filters)
	h.container.Observability.RecordReportQuery(name, companyLabel, time.Since(start))
	if err != nil {
		if errors.Is(err, report.ErrNoData) {
			return httputil.WriteError(c, fiber.StatusNotFound, "Nenhum dado encontrado")
		}
		return httputil.WriteError(c, fiber.StatusInternalServerError, "")
	}

	return c.JSON(result)
}

func (h *handlers) bigNumbers(c *fiber.Ctx) error {
	return h.withTenantDB(c, "big_numbers", func(ctx context.Context, db *sql.DB, f report.FiltersBI) (any, error) {
		return h.container.Reports.BigNumbers(ctx, db, f)
	})
}

func (h *handlers) monthYearKPI(c *fiber.Ctx) error {
	return h.withTenantDB(c, "kpi_mes_ano", func(ctx context.Context, db *sql.DB, f report.FiltersBI) (any, error) {
		return h.container.Reports.MonthYearKPI(ctx, db, f)
	})
}

func (h *handlers) currentMonthDailyKPI(c *fiber.Ctx) error {
	return h.withTenantDB(c, "kpi_dia_mes_atual", func(ctx context.Context, db *sql.DB, f report.FiltersBI) (any, error) {
		return h.container.Reports.CurrentMonthDailyKPI(ctx, db, f)
	})
}

func (h *handlers) branchKPI(c *fiber.Ctx) error {
	return h.withTenantDB(c, "kpi_filial", func(ctx context.Context, db *sql.DB, f report.FiltersBI) (any, error) {
		return h.container.Reports.BranchKPI(ctx, db, f)
	})
}

func (h *handlers) regionKPI(c *fiber.Ctx) error {
	return h.withTenantDB(c, "kpi_regiao", func(ctx context.Context, db *sql.DB, f report.FiltersBI) (any, error) {
		return h.container.Reports.RegionKPI(ctx, db, f)
	})
}

func (h *handlers) cityKPI(c *fiber.Ctx) error {
	return h.withTenantDB(c, "kpi_cidade", func(ctx context.Context, db *sql.DB, f report.FiltersBI) (any, error) {
		return h.container.Reports.CityKPI(ctx, db, f)
	})
}

func (h *handlers) clientKPI(c *fiber.Ctx) error {
	return h.withTenantDB(c, "kpi_cliente", func(ctx context.Context, db *sql.DB, f report.FiltersBI) (any, error) {
		return h.container.Reports.ClientKPI(ctx, db, f)
	})
}

func (h *handlers) productKPI(c *fiber.Ctx) error {
	return h.withTenantDB(c, "kpi_produto", func(ctx context.Context, db *sql.DB, f report.FiltersBI) (any, error) {
		return h.container.Reports.ProductKPI(ctx, db, f)
	})
}

func (h *handlers) invoiceTable(c *fiber.Ctx) error {
	return h.withTenantDB(c, "tabela_faturamento", func(ctx context.Context, db *sql.DB, f report.FiltersBI) (any, error) {
		return h.container.Reports.InvoiceTable(ctx, db, f)
	})
}
