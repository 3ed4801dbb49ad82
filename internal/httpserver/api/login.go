package api

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/softcenter/freight-bi/internal/auth"
	"github.com/softcenter/freight-bi/internal/httpserver/httputil"
	"github.com/softcenter/freight-bi/internal/store"
)

type loginRequest struct {
	CPF      string `json:"cpfusuario"`
	Password string `json:"senhausuario"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// login authenticates by CPF and password and issues a bearer token.
// Unknown user and wrong password are indistinguishable on the wire.
func (h *handlers) login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return httputil.WriteError(c, fiber.StatusBadRequest, "Corpo da requisição inválido")
	}

	token, _, err := h.container.Auth.Authenticate(c.UserContext(), req.CPF, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return httputil.WriteError(c, fiber.StatusNotFound, "Usuário ou senha incorretos")
		}
		return httputil.WriteError(c, fiber.StatusInternalServerError, "")
	}

	return c.Status(fiber.StatusAccepted).JSON(loginResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}

type createUserRequest struct {
	Name      string `json:"nomeusuario"`
	Password  string `json:"senhausuario"`
	CompanyID int64  `json:"codempresa"`
	Active    string `json:"usuarioativo"`
	CPF       string `json:"cpfusuario"`
	Email     string `json:"emailusuario"`
}

type userResponse struct {
	ID        int64  `json:"codusuario"`
	Name      string `json:"nomeusuario"`
	CompanyID int64  `json:"codempresa"`
	Active    string `json:"usuarioativo"`
	CPF       string `json:"cpfusuario"`
	Email     string `json:"emailusuario"`
}

// createUser registers an operator account. Token-guarded; the CPF is
// checksum-validated before anything touches the database.
func (h *handlers) createUser(c *fiber.Ctx) error {
	if _, ok := h.requireClaims(c); !ok {
		return nil
	}

	var req createUserRequest
	if err := c.BodyParser(&req); err != nil {
		return httputil.WriteError(c, fiber.StatusBadRequest, "Corpo da requisição inválido")
	}

	created, err := h.container.Auth.Register(c.UserContext(), store.User{
		Name:      req.Name,
		CompanyID: req.CompanyID,
		Active:    req.Active,
		CPF:       req.CPF,
		Email:     req.Email,
	}, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCPF) {
			return httputil.WriteError(c, fiber.StatusBadRequest, "CPF inválido")
		}
		return httputil.WriteError(c, fiber.StatusInternalServerError, "")
	}

	return c.Status(fiber.StatusCreated).JSON(userResponse{
		ID:        created.ID,
		Name:      created.Name,
		CompanyID: created.CompanyID,
		Active:    created.Active,
		CPF:       created.CPF,
		Email:     created.Email,
	})
}

func parseID(raw string) (int64, error) {
	return strconv.ParseInt(raw, 10, 64)
}
