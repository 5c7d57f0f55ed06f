package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateAndVerifyJWT(t *testing.T) {
	ConfigureAuth("unit-secret", time.Hour)

	tok, err := GenerateJWT(7, "alice", RoleAdmin)
	if err != nil {
		t.Fatal(err)
	}
	claims, err := VerifyJWT(tok)
	if err != nil {
		t.Fatalf("VerifyJWT: %v", err)
	}
	if claims.ID != 7 || claims.Username != "alice" || !claims.IsAdmin() {
		t.Errorf("claims = %+v", claims)
	}
	if ttl := time.Until(claims.ExpiresAt.Time); ttl < 59*time.Minute || ttl > time.Hour {
		t.Errorf("expiry in %s, want about 1h", ttl)
	}

	ConfigureAuth("another-secret", time.Hour)
	if _, err := VerifyJWT(tok); err == nil {
		t.Error("token signed with the old key still verifies")
	}
}

func TestVerifyJWTRejectsExpired(t *testing.T) {
	ConfigureAuth("unit-secret", time.Hour)
	claims := Claims{
		ID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("unit-secret"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := VerifyJWT(tok); err == nil {
		t.Fatal("expired token verified")
	}
}

func TestIsAdminNil(t *testing.T) {
	var c *Claims
	if c.IsAdmin() {
		t.Fatal("nil claims reported admin")
	}
}

func TestJWTMiddleware(t *testing.T) {
	ConfigureAuth("unit-secret", time.Hour)
	app := fiber.New()
	app.Get("/me", JWTMiddleware(), func(c *fiber.Ctx) error {
		return c.SendString(CurrentUser(c).Username)
	})
	app.Get("/admin", JWTMiddleware(), RequireAdmin(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	userTok, _ := GenerateJWT(1, "alice", "user")
	adminTok, _ := GenerateJWT(2, "root", RoleAdmin)
	revoked, _ := GenerateJWT(3, "gone", "user")
	BlacklistToken(revoked, time.Now().Add(time.Hour))

	tests := []struct {
		name   string
		path   string
		header string
		want   int
	}{
		{"no token", "/me", "", http.StatusUnauthorized},
		{"wrong scheme", "/me", "Basic abc", http.StatusUnauthorized},
		{"garbage", "/me", "Bearer abc", http.StatusForbidden},
		{"revoked", "/me", "Bearer " + revoked, http.StatusForbidden},
		{"valid", "/me", "Bearer " + userTok, http.StatusOK},
		{"lowercase scheme", "/me", "bearer " + userTok, http.StatusOK},
		{"not admin", "/admin", "Bearer " + userTok, http.StatusForbidden},
		{"admin", "/admin", "Bearer " + adminTok, http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set(fiber.HeaderAuthorization, tt.header)
			}
			resp, err := app.Test(req)
			if err != nil {
				t.Fatal(err)
			}
			if resp.StatusCode != tt.want {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.want)
			}
		})
	}
}

func TestBlacklistPrunesExpired(t *testing.T) {
	BlacklistToken("old", time.Now().Add(-time.Second))
	BlacklistToken("new", time.Now().Add(time.Hour))
	if IsTokenBlacklisted("old") {
		t.Error("expired entry was not pruned")
	}
	if !IsTokenBlacklisted("new") {
		t.Error("fresh entry missing")
	}
}

func TestLoggedOutTokenSurvivesLaterRequests(t *testing.T) {
	ConfigureAuth("unit-secret", time.Hour)
	app := fiber.New()
	app.Post("/logout", JWTMiddleware(), func(c *fiber.Ctx) error {
		token, _ := c.Locals("token").(string)
		BlacklistToken(token, time.Now().Add(time.Hour))
		return c.SendStatus(fiber.StatusNoContent)
	})
	app.Get("/me", JWTMiddleware(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})
	send := func(method, token string) int {
		path := "/me"
		if method == http.MethodPost {
			path = "/logout"
		}
		req := httptest.NewRequest(method, path, nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatal(err)
		}
		return resp.StatusCode
	}

	first, _ := GenerateJWT(1, "alice", "user")
	second, _ := GenerateJWT(1, "alice", "user")
	if code := send(http.MethodPost, first); code != fiber.StatusNoContent {
		t.Fatalf("logout = %d", code)
	}
	if code := send(http.MethodGet, second); code != fiber.StatusNoContent {
		t.Errorf("fresh token after logout = %d, want 204", code)
	}
	if !IsTokenBlacklisted(first) {
		t.Error("logged out token dropped from the blacklist")
	}
	if code := send(http.MethodGet, first); code != fiber.StatusForbidden {
		t.Errorf("logged out token = %d, want 403", code)
	}
}
