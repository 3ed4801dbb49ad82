package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/softcenter/freight-bi/internal/auth"
	auditservice "github.com/softcenter/freight-bi/internal/services/audit"
)

// AuditSink receives one record per audited exchange.
type AuditSink interface {
	Write(ctx context.Context, rec auditservice.Record) error
}

// AuditMiddleware records every exchange that crosses it: request
// identity, parameters, both bodies and the final status. Identity is
// best effort; an expired token still names its bearer, a garbage
// token leaves the row anonymous. The handler response passes through
// untouched.
func AuditMiddleware(tm *auth.TokenManager, sink AuditSink) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ip := c.IP()
		userAgent := c.Get(fiber.HeaderUserAgent)
		method := c.Method()
		endpoint := c.Path()

		user, companyID := identityFromHeader(tm, c.Get(fiber.HeaderAuthorization))
		params := captureQueryParams(c)
		requestBody := captureJSON(c.Body())

		if err := c.Next(); err != nil {
			// Route the error through the app handler so the audited
			// status and body match what the client receives.
			if handlerErr := c.App().Config().ErrorHandler(c, err); handlerErr != nil {
				return handlerErr
			}
		}

		status := c.Response().StatusCode()
		responseBody := captureBody(c.Response().Body())

		// A login's issued token rides in the response body; it names
		// the account that actually signed in, so it wins over any
		// identity carried in the request header.
		if endpoint == "/login" {
			if tok := tokenFromLoginResponse(c.Response().Body()); tok != "" {
				user, companyID = identityFromToken(tm, tok)
			}
		}

		rec := auditservice.Record{
			User:         user,
			CompanyID:    companyID,
			Method:       method,
			Endpoint:     endpoint,
			Params:       params,
			RequestBody:  requestBody,
			ResponseBody: responseBody,
			StatusCode:   status,
			IPAddress:    ip,
			UserAgent:    userAgent,
		}
		if err := sink.Write(c.UserContext(), rec); err != nil {
			return err
		}
		return nil
	}
}

func identityFromHeader(tm *auth.TokenManager, header string) (*string, *string) {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return nil, nil
	}
	return identityFromToken(tm, strings.TrimPrefix(header, prefix))
}

func identityFromToken(tm *auth.TokenManager, token string) (*string, *string) {
	claims, err := tm.Decode(token)
	if errors.Is(err, auth.ErrTokenExpired) {
		claims, err = tm.DecodeExpired(token)
	}
	if err != nil {
		return nil, nil
	}
	user := claims.UserName
	company := claims.CompanyID
	return &user, &company
}

func captureQueryParams(c *fiber.Ctx) json.RawMessage {
	args := c.Context().QueryArgs()
	if args.Len() == 0 {
		return json.RawMessage(`{}`)
	}
	params := make(map[string]string, args.Len())
	args.VisitAll(func(key, value []byte) {
		params[string(key)] = string(value)
	})
	raw, err := json.Marshal(params)
	if err != nil {
		return nil
	}
	return raw
}

// captureJSON copies a body when it is valid JSON; anything else is
// recorded as absent. The copy matters: Fiber reuses its buffers after
// the handler returns.
func captureJSON(body []byte) json.RawMessage {
	if len(body) == 0 || !json.Valid(body) {
		return nil
	}
	out := make(json.RawMessage, len(body))
	copy(out, body)
	return out
}

// captureBody keeps valid JSON structured and everything else as a raw
// text string, so error pages and plain responses still land in the
// trail.
func captureBody(body []byte) json.RawMessage {
	if len(body) == 0 {
		return nil
	}
	if json.Valid(body) {
		out := make(json.RawMessage, len(body))
		copy(out, body)
		return out
	}
	raw, err := json.Marshal(string(body))
	if err != nil {
		return nil
	}
	return raw
}

func tokenFromLoginResponse(body []byte) string {
	var payload struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.AccessToken
}
