package controller_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"medleave_backend/middleware"

	"github.com/gofiber/fiber/v2"
)

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	env.createUser("carol", "carolpass", "user", false)

	tests := []struct {
		name     string
		body     map[string]string
		wantCode int
		wantMsg  string
	}{
		{"success", map[string]string{"username": "alice", "password": "alicepass"}, http.StatusOK, "Login successful"},
		{"wrong password", map[string]string{"username": "alice", "password": "nope"}, http.StatusUnauthorized, "Invalid credentials"},
		{"unknown user", map[string]string{"username": "zed", "password": "x"}, http.StatusUnauthorized, "Invalid credentials"},
		{"disabled", map[string]string{"username": "carol", "password": "carolpass"}, http.StatusForbidden, "Your account is disabled"},
		{"missing fields", map[string]string{"username": "alice"}, http.StatusBadRequest, "Missing or invalid fields"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := env.do(http.MethodPost, "/api/login", nil, tt.body)
			if resp.StatusCode != tt.wantCode {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.wantCode)
			}
			var data struct {
				Token string `json:"token"`
				Role  string `json:"role"`
			}
			var target interface{}
			if tt.wantCode == http.StatusOK {
				target = &data
			}
			got := decode(t, resp, target)
			if got.Message != tt.wantMsg {
				t.Errorf("message = %q, want %q", got.Message, tt.wantMsg)
			}
			if tt.wantCode == http.StatusOK {
				claims, err := middleware.VerifyJWT(data.Token)
				if err != nil {
					t.Fatalf("token does not verify: %v", err)
				}
				if claims.Username != "alice" || claims.Role != "user" || data.Role != "user" {
					t.Errorf("claims = %+v, role %q", claims, data.Role)
				}
			}
		})
	}
}

func TestProtectedRoutesNeedToken(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(http.MethodGet, "/manger_data/patientsall", nil, nil)
	expectStatus(t, resp, http.StatusUnauthorized)

	req := httptest.NewRequest(http.MethodGet, "/manger_data/patientsall", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer not-a-token")
	resp, err := env.app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	expectStatus(t, resp, http.StatusForbidden)
}

func TestLogoutInvalidatesToken(t *testing.T) {
	env := newTestEnv(t)
	tok := env.token(env.user)

	send := func(method, path string) int {
		req := httptest.NewRequest(method, path, nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+tok)
		resp, err := env.app.Test(req, -1)
		if err != nil {
			t.Fatal(err)
		}
		return resp.StatusCode
	}
	if code := send(http.MethodPost, "/api/logout"); code != http.StatusOK {
		t.Fatalf("logout status = %d", code)
	}
	if code := send(http.MethodGet, "/manger_data/patientsall"); code != http.StatusForbidden {
		t.Fatalf("status after logout = %d, want 403", code)
	}
	// A fresh token for the same account still works.
	expectStatus(t, env.do(http.MethodGet, "/manger_data/patientsall", &env.user, nil), http.StatusOK)
}

func TestUsersAdminOnly(t *testing.T) {
	env := newTestEnv(t)

	expectStatus(t, env.do(http.MethodGet, "/api/users", &env.user, nil), http.StatusForbidden)

	resp := env.do(http.MethodPost, "/api/users", &env.admin, map[string]interface{}{
		"username": "dave", "password": "davepass", "is_active": false,
	})
	expectStatus(t, resp, http.StatusCreated)

	resp = env.do(http.MethodPost, "/api/users", &env.admin, map[string]string{"username": "dave", "password": "x"})
	expectStatus(t, resp, http.StatusConflict)

	env.do(http.MethodPost, "/manger_data/patients", &env.user, map[string]string{"inputnamear": "a", "inputidentity": "1"})
	env.do(http.MethodPost, "/manger_data/patients", &env.user, map[string]string{"inputnamear": "b", "inputidentity": "2"})

	var users []struct {
		Username     string `json:"username"`
		Role         string `json:"role"`
		IsActive     bool   `json:"is_active"`
		ReportsCount int64  `json:"reports_count"`
	}
	resp = env.do(http.MethodGet, "/api/users", &env.admin, nil)
	expectStatus(t, resp, http.StatusOK)
	decode(t, resp, &users)
	byName := map[string]int{}
	for i, u := range users {
		byName[u.Username] = i
	}
	if len(users) != 4 {
		t.Fatalf("got %d users, want 4", len(users))
	}
	if u := users[byName["alice"]]; u.ReportsCount != 2 {
		t.Errorf("alice reports_count = %d, want 2", u.ReportsCount)
	}
	if u := users[byName["dave"]]; u.IsActive || u.Role != "user" {
		t.Errorf("dave = %+v, want inactive user", u)
	}

	self := "/api/users/" + itoa(env.admin.ID)
	expectStatus(t, env.do(http.MethodDelete, self, &env.admin, nil), http.StatusBadRequest)
	expectStatus(t, env.do(http.MethodDelete, "/api/users/"+itoa(env.other.ID), &env.admin, nil), http.StatusOK)
	expectStatus(t, env.do(http.MethodDelete, "/api/users/"+itoa(env.other.ID), &env.admin, nil), http.StatusNotFound)
}

func TestUpdateProfile(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(http.MethodPut, "/api/profile", &env.user, map[string]string{"username": "alice2", "password": "newpass"})
	expectStatus(t, resp, http.StatusOK)

	resp = env.do(http.MethodPost, "/api/login", nil, map[string]string{"username": "alice2", "password": "newpass"})
	expectStatus(t, resp, http.StatusOK)
}

func TestCreateInactiveUserCannotLogin(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(http.MethodPost, "/api/users", &env.admin, map[string]interface{}{
		"username": "erin", "password": "erinpass", "is_active": false,
	})
	expectStatus(t, resp, http.StatusCreated)
	var created struct {
		IsActive bool `json:"is_active"`
	}
	decode(t, resp, &created)
	if created.IsActive {
		t.Error("created account reported active")
	}

	resp = env.do(http.MethodPost, "/api/login", nil, map[string]string{"username": "erin", "password": "erinpass"})
	expectStatus(t, resp, http.StatusForbidden)

	resp = env.do(http.MethodPost, "/api/users", &env.admin, map[string]string{"username": "frank", "password": "frankpass"})
	expectStatus(t, resp, http.StatusCreated)
	resp = env.do(http.MethodPost, "/api/login", nil, map[string]string{"username": "frank", "password": "frankpass"})
	expectStatus(t, resp, http.StatusOK)
}
