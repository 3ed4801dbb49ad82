package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/softcenter/freight-bi/internal/httpserver/httputil"
	companyservice "github.com/softcenter/freight-bi/internal/services/company"
	"github.com/softcenter/freight-bi/internal/store"
)

// companyResponse is the wire shape of a tbempresas row.
type companyResponse struct {
	ID           int64  `json:"codempresa"`
	Name         string `json:"nomeempresa"`
	CNPJ         string `json:"cnpjcpf"`
	DatabaseKind string `json:"tipobdempresa"`
	DatabasePort string `json:"portabd"`
	DatabaseHost string `json:"ipbd"`
	DatabasePath string `json:"caminhobd"`
	Active       string `json:"ativa"`
}

func toCompanyResponse(c store.Company) companyResponse {
	return companyResponse{
		ID:           c.ID,
		Name:         c.Name,
		CNPJ:         c.CNPJ,
		DatabaseKind: c.DatabaseKind,
		DatabasePort: c.DatabasePort,
		DatabaseHost: c.DatabaseHost,
		DatabasePath: c.DatabasePath,
		Active:       c.Active,
	}
}

func (h *handlers) listCompanies(c *fiber.Ctx) error {
	if _, ok := h.requireClaims(c); !ok {
		return nil
	}
	companies, err := h.container.Companies.List(c.UserContext())
	if err != nil {
		return httputil.WriteError(c, fiber.StatusInternalServerError, "")
	}
	out := make([]companyResponse, 0, len(companies))
	for _, company := range companies {
		out = append(out, toCompanyResponse(company))
	}
	return c.JSON(out)
}

func (h *handlers) getCompany(c *fiber.Ctx) error {
	if _, ok := h.requireClaims(c); !ok {
		return nil
	}
	id, err := parseID(c.Params("codempresa"))
	if err != nil {
		return httputil.WriteError(c, fiber.StatusBadRequest, "Código de empresa inválido")
	}
	company, err := h.container.Companies.Get(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, store.ErrCompanyNotFound) {
			return httputil.WriteError(c, fiber.StatusNotFound, "Empresa não encontrada")
		}
		return httputil.WriteError(c, fiber.StatusInternalServerError, "")
	}
	return c.JSON(toCompanyResponse(company))
}

func (h *handlers) createCompany(c *fiber.Ctx) error {
	if _, ok := h.requireClaims(c); !ok {
		return nil
	}
	var in companyservice.Input
	if err := c.BodyParser(&in); err != nil {
		return httputil.WriteError(c, fiber.StatusBadRequest, "Corpo da requisição inválido")
	}
	company, err := h.container.Companies.Create(c.UserContext(), in)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrCompanyExists):
			return httputil.WriteError(c, fiber.StatusBadRequest, "Empresa já cadastrada")
		case errors.Is(err, companyservice.ErrMissingFields):
			return httputil.WriteError(c, fiber.StatusBadRequest, err.Error())
		default:
			return httputil.WriteError(c, fiber.StatusInternalServerError, "")
		}
	}
	return c.Status(fiber.StatusCreated).JSON(toCompanyResponse(company))
}

func (h *handlers) updateCompany(c *fiber.Ctx) error {
	if _, ok := h.requireClaims(c); !ok {
		return nil
	}
	id, err := parseID(c.Params("codempresa"))
	if err != nil {
		return httputil.WriteError(c, fiber.StatusBadRequest, "Código de empresa inválido")
	}
	var in companyservice.Input
	if err := c.BodyParser(&in); err != nil {
		return httputil.WriteError(c, fiber.StatusBadRequest, "Corpo da requisição inválido")
	}
	company, err := h.container.Companies.Update(c.UserContext(), id, in)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrCompanyNotFound):
			return httputil.WriteError(c, fiber.StatusNotFound, "Empresa não encontrada")
		case errors.Is(err, store.ErrCompanyExists):
			return httputil.WriteError(c, fiber.StatusBadRequest, "Empresa já cadastrada")
		case errors.Is(err, companyservice.ErrMissingFields):
			return httputil.WriteError(c, fiber.StatusBadRequest, err.Error())
		default:
			return httputil.WriteError(c, fiber.StatusInternalServerError, "")
		}
	}
	return c.JSON(toCompanyResponse(company))
}

func (h *handlers) deleteCompany(c *fiber.Ctx) error {
	if _, ok := h.requireClaims(c); !ok {
		return nil
	}
	id, err := parseID(c.Params("codempresa"))
	if err != nil {
		return httputil.WriteError(c, fiber.StatusBadRequest, "Código de empresa inválido")
	}
	if err := h.container.Companies.Delete(c.UserContext(), id); err != nil {
		if errors.Is(err, store.ErrCompanyNotFound) {
			return httputil.WriteError(c, fiber.StatusNotFound, "Empresa não encontrada")
		}
		return httputil.WriteError(c, fiber.StatusInternalServerError, "")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
