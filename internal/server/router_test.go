package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/diewo77/go-wills/internal/models"
	"github.com/diewo77/go-wills/internal/services"
)

func setupRouter(t *testing.T) http.Handler {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(models.All()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	del := services.NewDeleteFlow(db, nopMailer{})
	return New(db, nil, del, nil)
}

type nopMailer struct{}

func (nopMailer) Send(_, _, _ string) error { return nil }

func TestHealthEndpoints(t *testing.T) {
	h := setupRouter(t)
	for _, path := range []string{"/health", "/healthz"} {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusOK {
			t.Fatalf("%s: %d", path, w.Code)
		}
	}
}

func TestWillRoutesRequireAuth(t *testing.T) {
	h := setupRouter(t)
	for _, route := range []string{"/wills", "/wills/get?id=x", "/wills/pdf?id=x"} {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, route, nil))
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s without session: expected 401, got %d", route, w.Code)
		}
	}
}

// signup, then drive the wizard through the real router with the session
// cookie the signup response set.
func TestSignupAndCreateWillThroughRouter(t *testing.T) {
	h := setupRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(`{"email":"r@test","password":"secret","name":"R"}`))
	req.Header.Set("Content-Type", "application/json")
	h.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("signup: %d body=%s", w.Code, w.Body.String())
	}
	cookies := w.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("signup did not set a session cookie")
	}

	authed := func(method, target, body string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		r := httptest.NewRequest(method, target, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
		for _, c := range cookies {
			r.AddCookie(c)
		}
		h.ServeHTTP(rec, r)
		return rec
	}

	rec := authed(http.MethodPost, "/wills", "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("create will: %d body=%s", rec.Code, rec.Body.String())
	}
	var created models.Will
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}

	rec = authed(http.MethodPost, "/wills/save?id="+created.ID+"&step=1",
		`{"testator":{"fullName":"Jane Doe","age":40}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("save: %d body=%s", rec.Code, rec.Body.String())
	}

	rec = authed(http.MethodGet, "/wills", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Will of Jane Doe") {
		t.Fatalf("list: %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestMethodNotAllowed(t *testing.T) {
	h := setupRouter(t)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/wills", nil)
	h.ServeHTTP(w, req)
	// auth middleware runs first; an unauthenticated DELETE is still a 401
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/wills/save?id=x&step=1", nil)
	h.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}
