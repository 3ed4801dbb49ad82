package httpserver

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/softcenter/freight-bi/internal/auth"
	auditservice "github.com/softcenter/freight-bi/internal/services/audit"
)

type sinkRecorder struct {
	records []auditservice.Record
}

func (s *sinkRecorder) Write(_ context.Context, rec auditservice.Record) error {
	s.records = append(s.records, rec)
	return nil
}

func newAuditTestApp(t *testing.T) (*fiber.App, *sinkRecorder, *auth.TokenManager) {
	t.Helper()
	tm, err := auth.NewTokenManager("audit-test-secret", time.Hour, "freight-bi")
	if err != nil {
		t.Fatalf("new token manager: %v", err)
	}
	sink := &sinkRecorder{}

	app := fiber.New()
	app.Use(AuditMiddleware(tm, sink))
	app.Post("/echo", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})
	app.Get("/texto", func(c *fiber.Ctx) error {
		return c.SendString("plain text, not json")
	})
	return app, sink, tm
}

func (s *sinkRecorder) last(t *testing.T) auditservice.Record {
	t.Helper()
	if len(s.records) == 0 {
		t.Fatalf("no audit records written")
	}
	return s.records[len(s.records)-1]
}

func TestAuditMiddlewareCapturesExchange(t *testing.T) {
	app, sink, tm := newAuditTestApp(t)

	token, _, err := tm.Generate(auth.TokenUser{ID: 3, Name: "Ana", CompanyID: 9})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	body := `{"codfilial": [1, 2]}`
	req := httptest.NewRequest("POST", "/echo?limit=10", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("User-Agent", "painel/1.0")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	respBody, _ := io.ReadAll(resp.Body)
	if string(respBody) != `{"ok":true}` {
		t.Fatalf("response body altered: %q", respBody)
	}

	rec := sink.last(t)
	if rec.Method != "POST" || rec.Endpoint != "/echo" {
		t.Fatalf("unexpected method/endpoint %s %s", rec.Method, rec.Endpoint)
	}
	if rec.User == nil || *rec.User != "Ana" {
		t.Fatalf("user not captured: %+v", rec.User)
	}
	if rec.CompanyID == nil || *rec.CompanyID != "9" {
		t.Fatalf("company not captured: %+v", rec.CompanyID)
	}
	if rec.UserAgent != "painel/1.0" {
		t.Fatalf("user agent = %q", rec.UserAgent)
	}
	if string(rec.RequestBody) != body {
		t.Fatalf("request body = %s", rec.RequestBody)
	}
	if string(rec.ResponseBody) != `{"ok":true}` {
		t.Fatalf("response body = %s", rec.ResponseBody)
	}
	var params map[string]string
	if err := json.Unmarshal(rec.Params, &params); err != nil || params["limit"] != "10" {
		t.Fatalf("params = %s", rec.Params)
	}
	if rec.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d", rec.StatusCode)
	}
}

func TestAuditMiddlewareExpiredTokenStillIdentifies(t *testing.T) {
	app, sink, _ := newAuditTestApp(t)

	past := time.Now().Add(-2 * time.Hour)
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"empresa":     "9",
		"nomeusuario": "Ana",
		"iat":         past.Unix(),
		"exp":         past.Add(time.Hour).Unix(),
	}).SignedString([]byte("audit-test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	req := httptest.NewRequest("POST", "/echo", nil)
	req.Header.Set("Authorization", "Bearer "+expired)
	if _, err := app.Test(req); err != nil {
		t.Fatalf("request: %v", err)
	}

	rec := sink.last(t)
	if rec.User == nil || *rec.User != "Ana" {
		t.Fatalf("expired token identity not recovered: %+v", rec.User)
	}
}

func TestAuditMiddlewareGarbageTokenLeavesIdentityNull(t *testing.T) {
	app, sink, _ := newAuditTestApp(t)

	req := httptest.NewRequest("POST", "/echo", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	// The interceptor never rejects; the handler still ran.
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	rec := sink.last(t)
	if rec.User != nil || rec.CompanyID != nil {
		t.Fatalf("expected anonymous record, got %+v", rec)
	}
}

func TestAuditMiddlewareNonJSONResponseStoredAsRawText(t *testing.T) {
	app, sink, _ := newAuditTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/texto", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	respBody, _ := io.ReadAll(resp.Body)
	if string(respBody) != "plain text, not json" {
		t.Fatalf("response body altered: %q", respBody)
	}

	rec := sink.last(t)
	// Non-JSON responses land in the trail as a JSON string.
	if string(rec.ResponseBody) != `"plain text, not json"` {
		t.Fatalf("raw text response not captured, got %s", rec.ResponseBody)
	}
	var decoded string
	if err := json.Unmarshal(rec.ResponseBody, &decoded); err != nil || decoded != "plain text, not json" {
		t.Fatalf("stored body does not round-trip: %s", rec.ResponseBody)
	}
}

func TestAuditMiddlewareEmptyQueryRecordsEmptyObject(t *testing.T) {
	app, sink, _ := newAuditTestApp(t)

	if _, err := app.Test(httptest.NewRequest("GET", "/texto", nil)); err != nil {
		t.Fatalf("request: %v", err)
	}

	rec := sink.last(t)
	if string(rec.Params) != `{}` {
		t.Fatalf("params = %s, want {}", rec.Params)
	}
}

func TestAuditMiddlewareLoginIdentityFromResponseToken(t *testing.T) {
	tm, err := auth.NewTokenManager("audit-test-secret", time.Hour, "freight-bi")
	if err != nil {
		t.Fatalf("new token manager: %v", err)
	}
	sink := &sinkRecorder{}

	app := fiber.New()
	app.Use(AuditMiddleware(tm, sink))
	app.Post("/login", func(c *fiber.Ctx) error {
		token, _, err := tm.Generate(auth.TokenUser{ID: 3, Name: "Ana", CompanyID: 9})
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
			"access_token": token,
			"token_type":   "bearer",
		})
	})

	// Login carries no Authorization header; identity must come from the
	// token minted into the response body.
	if _, err := app.Test(httptest.NewRequest("POST", "/login", strings.NewReader(`{}`))); err != nil {
		t.Fatalf("request: %v", err)
	}

	rec := sink.last(t)
	if rec.User == nil || *rec.User != "Ana" {
		t.Fatalf("login identity not resolved from response: %+v", rec.User)
	}
	if rec.CompanyID == nil || *rec.CompanyID != "9" {
		t.Fatalf("login company not resolved from response: %+v", rec.CompanyID)
	}
	if rec.StatusCode != fiber.StatusAccepted {
		t.Fatalf("status = %d", rec.StatusCode)
	}
}

func TestAuditMiddlewareLoginResponseTokenOverridesHeader(t *testing.T) {
	tm, err := auth.NewTokenManager("audit-test-secret", time.Hour, "freight-bi")
	if err != nil {
		t.Fatalf("new token manager: %v", err)
	}
	sink := &sinkRecorder{}

	app := fiber.New()
	app.Use(AuditMiddleware(tm, sink))
	app.Post("/login", func(c *fiber.Ctx) error {
		token, _, err := tm.Generate(auth.TokenUser{ID: 5, Name: "Bruna", CompanyID: 4})
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
			"access_token": token,
			"token_type":   "bearer",
		})
	})

	// Someone re-authenticating still carries their old token; the
	// record must name the account the new token was issued for.
	oldToken, _, err := tm.Generate(auth.TokenUser{ID: 3, Name: "Ana", CompanyID: 9})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	req := httptest.NewRequest("POST", "/login", strings.NewReader(`{}`))
	req.Header.Set("Authorization", "Bearer "+oldToken)
	if _, err := app.Test(req); err != nil {
		t.Fatalf("request: %v", err)
	}

	rec := sink.last(t)
	if rec.User == nil || *rec.User != "Bruna" {
		t.Fatalf("header identity not overridden, got %+v", rec.User)
	}
	if rec.CompanyID == nil || *rec.CompanyID != "4" {
		t.Fatalf("header company not overridden, got %+v", rec.CompanyID)
	}
}
