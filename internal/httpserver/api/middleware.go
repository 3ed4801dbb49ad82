package api

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/softcenter/freight-bi/internal/auth"
	"github.com/softcenter/freight-bi/internal/httpserver/httputil"
)

// requireClaims decodes the bearer token or writes the 401 itself.
// The boolean reports whether the caller may proceed.
func (h *handlers) requireClaims(c *fiber.Ctx) (auth.Claims, bool) {
	header := c.Get(fiber.HeaderAuthorization)
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
		_ = httputil.WriteError(c, fiber.StatusUnauthorized, "Token ausente")
		return auth.Claims{}, false
	}

	claims, err := h.container.TokenManager.Decode(strings.TrimPrefix(header, prefix))
	if err != nil {
		c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
		msg := "Token inválido"
		if errors.Is(err, auth.ErrTokenExpired) {
			msg = "Token expirado"
		}
		_ = httputil.WriteError(c, fiber.StatusUnauthorized, msg)
		return auth.Claims{}, false
	}
	return claims, true
}

// requireCompanyID additionally resolves the tenant id carried in the
// claims. A valid token without one is a 400, not a 401.
func (h *handlers) requireCompanyID(c *fiber.Ctx) (int64, bool) {
	claims, ok := h.requireClaims(c)
	if !ok {
		return 0, false
	}
	companyID, err := strconv.ParseInt(strings.TrimSpace(claims.CompanyID), 10, 64)
	if err != nil || companyID == 0 {
		_ = httputil.WriteError(c, fiber.StatusBadRequest, "ID da empresa não encontrado no token")
		return 0, false
	}
	return companyID, true
}
