package controller_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"medleave_backend/controller"
	"medleave_backend/middleware"
	"medleave_backend/model"
	"medleave_backend/report"
	"medleave_backend/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

type envelope struct {
	RetCode string          `json:"retCode"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type testEnv struct {
	t       *testing.T
	app     *fiber.App
	uploads string
	admin   model.User
	user    model.User
	other   model.User
}

// newTestEnv opens a private in-memory database with three accounts and
// returns the full router.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	middleware.SetLogger(zerolog.Nop())
	middleware.ConfigureAuth("test-secret", time.Hour)

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	if err := middleware.ConnectDB("sqlite", dsn); err != nil {
		t.Fatalf("connect: %v", err)
	}
	if err := middleware.MigrateDB(); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	sqlDB, _ := middleware.DBConn.DB()
	t.Cleanup(func() { sqlDB.Close() })

	uploads := t.TempDir()
	assets := report.Assets{Fonts: report.BuiltInFonts(), UploadDir: uploads}
	controller.Configure(controller.Options{
		UploadDir: uploads,
		Composer:  report.NewComposer(assets, controller.SettingsStore{}, zerolog.Nop()),
	})

	env := &testEnv{t: t, app: routes.NewApp(routes.Options{UploadDir: uploads}), uploads: uploads}
	env.admin = env.createUser("admin", "adminpass", middleware.RoleAdmin, true)
	env.user = env.createUser("alice", "alicepass", "user", true)
	env.other = env.createUser("bob", "bobpass", "user", true)
	return env
}

func (e *testEnv) createUser(username, password, role string, active bool) model.User {
	e.t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		e.t.Fatal(err)
	}
	u := model.User{Username: username, Password: string(hash), Role: role, IsActive: true}
	if err := middleware.DBConn.Create(&u).Error; err != nil {
		e.t.Fatalf("create user: %v", err)
	}
	if !active {
		middleware.DBConn.Model(&u).Update("is_active", false)
		u.IsActive = false
	}
	return u
}

func (e *testEnv) token(u model.User) string {
	e.t.Helper()
	tok, err := middleware.GenerateJWT(u.ID, u.Username, u.Role)
	if err != nil {
		e.t.Fatal(err)
	}
	return tok
}

// do sends a request; a non-nil body is encoded as JSON unless it is an
// io.Reader, in which case contentType is used.
func (e *testEnv) do(method, path string, as *model.User, body interface{}, contentType ...string) *http.Response {
	e.t.Helper()
	var r io.Reader
	ct := fiber.MIMEApplicationJSON
	switch b := body.(type) {
	case nil:
	case io.Reader:
		r = b
		if len(contentType) > 0 {
			ct = contentType[0]
		}
	default:
		buf, err := json.Marshal(b)
		if err != nil {
			e.t.Fatal(err)
		}
		r = bytes.NewReader(buf)
	}
	req := httptest.NewRequest(method, path, r)
	if r != nil {
		req.Header.Set(fiber.HeaderContentType, ct)
	}
	if as != nil {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+e.token(*as))
	}
	resp, err := e.app.Test(req, -1)
	if err != nil {
		e.t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func decode(t *testing.T, resp *http.Response, data interface{}) envelope {
	t.Helper()
	defer resp.Body.Close()
	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if data != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, data); err != nil {
			t.Fatalf("decode data %s: %v", env.Data, err)
		}
	}
	return env
}

func decodeJSON(resp *http.Response, v interface{}) error {
	defer resp.Body.Close()
	return json.NewDecoder(resp.Body).Decode(v)
}

func expectStatus(t *testing.T, resp *http.Response, want int) {
	t.Helper()
	if resp.StatusCode != want {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("status = %d, want %d; body %s", resp.StatusCode, want, body)
	}
}
