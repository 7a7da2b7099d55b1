package middleware

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

func newAuthTestApp(t *testing.T) *fiber.App {
	t.Helper()
	app := fiber.New()
	app.Get("/whoami", UserContextMiddleware(), func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("user_id").(string))
	})
	return app
}

func signWithKey(t *testing.T, subject string, key []byte) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return raw
}

func TestSessionTokenRoundTrip(t *testing.T) {
	t.Setenv("CLICKER_JWT_SECRET", "test-secret")
	app := newAuthTestApp(t)

	token, err := IssueSessionToken("player-1")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status=%d, want 200", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if string(body) != "player-1" {
		t.Fatalf("user id=%q, want player-1", body)
	}
}

func TestGatewayHeaderIdentity(t *testing.T) {
	app := newAuthTestApp(t)

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("X-User-ID", "gw-player")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status=%d, want 200", resp.StatusCode)
	}
}

func TestBearerRejectedWhenSecretUnset(t *testing.T) {
	// With no secret configured, any Bearer token must be ignored rather
	// than verified against an empty HMAC key.
	t.Setenv("CLICKER_JWT_SECRET", "")
	app := newAuthTestApp(t)

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+signWithKey(t, "intruder", []byte("any-key")))
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("status=%d, want 401", resp.StatusCode)
	}
}

func TestBearerRejectedWithWrongKey(t *testing.T) {
	t.Setenv("CLICKER_JWT_SECRET", "test-secret")
	app := newAuthTestApp(t)

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+signWithKey(t, "intruder", []byte("not-the-secret")))
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("status=%d, want 401", resp.StatusCode)
	}
}

func TestIssueSessionTokenRequiresSecret(t *testing.T) {
	t.Setenv("CLICKER_JWT_SECRET", "")
	if _, err := IssueSessionToken("player-1"); err == nil {
		t.Fatal("expected error issuing token without a secret")
	}
}
