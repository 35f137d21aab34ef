package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/memberhub/community-api/internal/infrastructure/db/sqlite"
	"github.com/memberhub/community-api/pkg/logger"
)

func doJSON(e *echo.Echo, method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("invalid json %q: %v", rec.Body.String(), err)
	}
}

// requestAndFetchKey mints a key through the public endpoint, then reads its
// value back through the admin listing, the way an admin hands keys out.
func requestAndFetchKey(t *testing.T, e *echo.Echo, adminToken string, known map[string]bool) string {
	t.Helper()
	if rec := doJSON(e, http.MethodPost, "/api/request-key", "", ""); rec.Code != http.StatusOK {
		t.Fatalf("request-key: expected 200, got %d", rec.Code)
	}

	rec := doJSON(e, http.MethodGet, "/api/admin/keys", "", adminToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("list keys: expected 200, got %d", rec.Code)
	}
	var keys []map[string]any
	decodeJSON(t, rec, &keys)
	for _, k := range keys {
		value, _ := k["key_value"].(string)
		used, _ := k["is_used"].(bool)
		if !used && !known[value] {
			known[value] = true
			return value
		}
	}
	t.Fatalf("no fresh unused key found in listing")
	return ""
}

func keyIsUsed(t *testing.T, e *echo.Echo, adminToken, value string) bool {
	t.Helper()
	rec := doJSON(e, http.MethodGet, "/api/admin/keys", "", adminToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("list keys: expected 200, got %d", rec.Code)
	}
	var keys []map[string]any
	decodeJSON(t, rec, &keys)
	for _, k := range keys {
		if k["key_value"] == value {
			used, _ := k["is_used"].(bool)
			return used
		}
	}
	t.Fatalf("key %q not found in listing", value)
	return false
}

// The router is built once: the prometheus middleware registers collectors
// with the default registry and cannot be instantiated twice in a process.
func TestRouter_EndToEnd(t *testing.T) {
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "test.sqlite"))
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	if err := sqlite.SeedAdmin(ctx, db, "admin", "Admin@000"); err != nil {
		t.Fatalf("seed admin: %v", err)
	}

	e := NewRouter(db, nil, RouterConfig{
		JWTSecret:   "test-secret",
		TokenTTL:    time.Hour,
		CORSOrigins: []string{"*"},
	}, logger.Nop())

	var adminToken, aliceToken, aliceID string
	knownKeys := make(map[string]bool)

	t.Run("admin login", func(t *testing.T) {
		rec := doJSON(e, http.MethodPost, "/api/login", `{"username":"admin","password":"Admin@000"}`, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		var resp map[string]any
		decodeJSON(t, rec, &resp)
		if resp["role"] != "admin" || resp["username"] != "admin" {
			t.Fatalf("unexpected login payload: %+v", resp)
		}
		adminToken, _ = resp["token"].(string)
		if adminToken == "" {
			t.Fatalf("expected token")
		}
	})

	t.Run("admin login wrong password", func(t *testing.T) {
		rec := doJSON(e, http.MethodPost, "/api/login", `{"username":"admin","password":"wrong"}`, "")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("admin routes reject anonymous callers", func(t *testing.T) {
		if rec := doJSON(e, http.MethodGet, "/api/admin/keys", "", ""); rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("signup with fresh key", func(t *testing.T) {
		key := requestAndFetchKey(t, e, adminToken, knownKeys)

		body := `{"username":"alice","password":"pw1","email":"alice@example.com","acceptanceKey":"` + key + `"}`
		if rec := doJSON(e, http.MethodPost, "/api/signup", body, ""); rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if !keyIsUsed(t, e, adminToken, key) {
			t.Fatalf("key must be marked used after signup")
		}

		// A second signup with the consumed key fails.
		body = `{"username":"bob","password":"pw2","acceptanceKey":"` + key + `"}`
		if rec := doJSON(e, http.MethodPost, "/api/signup", body, ""); rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for used key, got %d", rec.Code)
		}
	})

	t.Run("signup without key", func(t *testing.T) {
		rec := doJSON(e, http.MethodPost, "/api/signup", `{"username":"carol","password":"pw3"}`, "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("duplicate username leaves key unused", func(t *testing.T) {
		key := requestAndFetchKey(t, e, adminToken, knownKeys)

		body := `{"username":"alice","password":"other","acceptanceKey":"` + key + `"}`
		rec := doJSON(e, http.MethodPost, "/api/signup", body, "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
		}
		if keyIsUsed(t, e, adminToken, key) {
			t.Fatalf("key must remain unused after rolled-back signup")
		}
	})

	t.Run("member login", func(t *testing.T) {
		rec := doJSON(e, http.MethodPost, "/api/login", `{"username":"alice","password":"pw1"}`, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		var resp map[string]any
		decodeJSON(t, rec, &resp)
		if resp["role"] != "user" {
			t.Fatalf("expected role user, got %v", resp["role"])
		}
		aliceToken, _ = resp["token"].(string)
	})

	t.Run("member cannot reach admin routes", func(t *testing.T) {
		if rec := doJSON(e, http.MethodGet, "/api/admin/users", "", aliceToken); rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rec.Code)
		}
	})

	t.Run("admin lists members", func(t *testing.T) {
		rec := doJSON(e, http.MethodGet, "/api/admin/users", "", adminToken)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		var users []map[string]any
		decodeJSON(t, rec, &users)
		if len(users) != 1 {
			t.Fatalf("expected alice only, got %+v", users)
		}
		if users[0]["username"] != "alice" {
			t.Fatalf("unexpected member: %+v", users[0])
		}
		aliceID, _ = users[0]["id"].(string)
	})

	t.Run("ban blocks login, unban restores it", func(t *testing.T) {
		body := `{"userId":"` + aliceID + `","isBanned":true}`
		if rec := doJSON(e, http.MethodPost, "/api/admin/ban", body, adminToken); rec.Code != http.StatusOK {
			t.Fatalf("ban: expected 200, got %d", rec.Code)
		}

		rec := doJSON(e, http.MethodPost, "/api/login", `{"username":"alice","password":"pw1"}`, "")
		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403 for banned account, got %d", rec.Code)
		}

		body = `{"userId":"` + aliceID + `","isBanned":false}`
		if rec := doJSON(e, http.MethodPost, "/api/admin/ban", body, adminToken); rec.Code != http.StatusOK {
			t.Fatalf("unban: expected 200, got %d", rec.Code)
		}
		if rec := doJSON(e, http.MethodPost, "/api/login", `{"username":"alice","password":"pw1"}`, ""); rec.Code != http.StatusOK {
			t.Fatalf("expected 200 after unban, got %d", rec.Code)
		}
	})

	t.Run("ban unknown user", func(t *testing.T) {
		rec := doJSON(e, http.MethodPost, "/api/admin/ban", `{"userId":"no-such-id","isBanned":true}`, adminToken)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("announcements", func(t *testing.T) {
		if rec := doJSON(e, http.MethodPost, "/api/admin/updates", `{"content":"   "}`, adminToken); rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for blank content, got %d", rec.Code)
		}
		if rec := doJSON(e, http.MethodPost, "/api/admin/updates", `{"content":"first post"}`, adminToken); rec.Code != http.StatusOK {
			t.Fatalf("post: expected 200, got %d", rec.Code)
		}
		if rec := doJSON(e, http.MethodPost, "/api/admin/updates", `{"content":"second post"}`, adminToken); rec.Code != http.StatusOK {
			t.Fatalf("post: expected 200, got %d", rec.Code)
		}

		rec := doJSON(e, http.MethodGet, "/api/updates", "", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		var feed []map[string]any
		decodeJSON(t, rec, &feed)
		if len(feed) != 2 {
			t.Fatalf("expected 2 announcements, got %d", len(feed))
		}
		if feed[0]["content"] != "second post" || feed[1]["content"] != "first post" {
			t.Fatalf("feed not newest-first: %+v", feed)
		}
	})

	t.Run("health probes", func(t *testing.T) {
		if rec := doJSON(e, http.MethodGet, "/health", "", ""); rec.Code != http.StatusOK {
			t.Fatalf("liveness: expected 200, got %d", rec.Code)
		}
		if rec := doJSON(e, http.MethodGet, "/health/ready", "", ""); rec.Code != http.StatusOK {
			t.Fatalf("readiness: expected 200, got %d", rec.Code)
		}
	})
}
