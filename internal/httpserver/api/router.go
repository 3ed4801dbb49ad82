// Package api mounts the HTTP routes: login, the company directory and
// the reporting endpoints.
package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/softcenter/freight-bi/internal/app"
)

// Register mounts every API route on the Fiber app.
func Register(fapp *fiber.App, container *app.Container) {
	h := &handlers{container: container}

	fapp.Post("/login", h.login)
	fapp.Post("/usuarios", h.createUser)

	fapp.Get("/empresas", h.listCompanies)
	fapp.Get("/empresas/:codempresa", h.getCompany)
	fapp.Post("/empresas", h.createCompany)
	fapp.Put("/empresas/:codempresa", h.updateCompany)
	fapp.Delete("/empresas/:codempresa", h.deleteCompany)

	fapp.Get("/auditoria", h.listAudit)

	fapp.Post("/bi/big_numbers", h.bigNumbers)
	fapp.Post("/bi/kpi_mes_ano", h.monthYearKPI)
	fapp.Post("/bi/kpi_dia_mes_atual", h.currentMonthDailyKPI)
	fapp.Post("/bi/kpi_filial", h.branchKPI)
	fapp.Post("/bi/kpi_regiao", h.regionKPI)
	fapp.Post("/bi/kpi_cidade", h.cityKPI)
	fapp.Post("/bi/kpi_cliente", h.clientKPI)
	fapp.Post("/bi/kpi_produto", h.productKPI)
	fapp.Post("/bi/tabela_faturamento", h.invoiceTable)
}

type handlers struct {
	container *app.Container
}
