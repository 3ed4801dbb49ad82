package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/softcenter/freight-bi/internal/httpserver/httputil"
	auditservice "github.com/softcenter/freight-bi/internal/services/audit"
)

// listAudit returns recent audit rows, newest first. Token-guarded.
func (h *handlers) listAudit(c *fiber.Ctx) error {
	if _, ok := h.requireClaims(c); !ok {
		return nil
	}
	entries, err := h.container.Audit.List(c.UserContext(), auditservice.Filter{
		Limit:  int32(c.QueryInt("limit", 50)),
		Offset: int32(c.QueryInt("offset", 0)),
	})
	if err != nil {
		return httputil.WriteError(c, fiber.StatusInternalServerError, "")
	}
	return c.JSON(entries)
}
