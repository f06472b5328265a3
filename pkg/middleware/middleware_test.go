package middleware_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/JaimeStill/folio/pkg/middleware"
)

func ok() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestSystem_Order(t *testing.T) {
	sys := middleware.New()
	var order []string

	for _, name := range []string{"first", "second"} {
		sys.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name+"-before")
				next.ServeHTTP(w, r)
				order = append(order, name+"-after")
			})
		})
	}

	h := sys.Apply(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	want := []string{"first-before", "second-before", "handler", "second-after", "first-after"}
	if strings.Join(order, ",") != strings.Join(want, ",") {
		t.Errorf("order = %v, want %v", order, want)
	}
}

func TestCORS(t *testing.T) {
	allowed := "http://localhost:3000"

	tests := []struct {
		name       string
		cfg        middleware.CORSConfig
		method     string
		origin     string
		wantOrigin string
		wantCreds  string
		wantCalled bool
	}{
		{
			name:       "disabled",
			cfg:        middleware.CORSConfig{Enabled: false, Origins: []string{allowed}},
			method:     http.MethodGet,
			origin:     allowed,
			wantCalled: true,
		},
		{
			name:       "no origins",
			cfg:        middleware.CORSConfig{Enabled: true},
			method:     http.MethodGet,
			origin:     allowed,
			wantCalled: true,
		},
		{
			name:       "disallowed origin",
			cfg:        middleware.CORSConfig{Enabled: true, Origins: []string{allowed}},
			method:     http.MethodGet,
			origin:     "http://evil.example",
			wantCalled: true,
		},
		{
			name:       "allowed origin with credentials",
			cfg:        middleware.CORSConfig{Enabled: true, Origins: []string{allowed}, AllowCredentials: true, MaxAge: 600},
			method:     http.MethodGet,
			origin:     allowed,
			wantOrigin: allowed,
			wantCreds:  "true",
			wantCalled: true,
		},
		{
			name:       "preflight short-circuits",
			cfg:        middleware.CORSConfig{Enabled: true, Origins: []string{allowed}},
			method:     http.MethodOptions,
			origin:     allowed,
			wantOrigin: allowed,
			wantCalled: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			h := middleware.CORS(&tt.cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
			}))

			req := httptest.NewRequest(tt.method, "/", nil)
			req.Header.Set("Origin", tt.origin)
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			if got := w.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Errorf("Allow-Origin = %q, want %q", got, tt.wantOrigin)
			}
			if got := w.Header().Get("Access-Control-Allow-Credentials"); got != tt.wantCreds {
				t.Errorf("Allow-Credentials = %q, want %q", got, tt.wantCreds)
			}
			if called != tt.wantCalled {
				t.Errorf("handler called = %v, want %v", called, tt.wantCalled)
			}
			if w.Code != http.StatusOK {
				t.Errorf("status = %d, want 200", w.Code)
			}
		})
	}
}

func TestCORS_Headers(t *testing.T) {
	cfg := &middleware.CORSConfig{
		Enabled:        true,
		Origins:        []string{"http://localhost:3000"},
		AllowedMethods: []string{"GET", "POST"},
		AllowedHeaders: []string{"Content-Type", "X-User-ID"},
		MaxAge:         7200,
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	middleware.CORS(cfg)(ok()).ServeHTTP(w, req)

	checks := map[string]string{
		"Access-Control-Allow-Methods": "GET, POST",
		"Access-Control-Allow-Headers": "Content-Type, X-User-ID",
		"Access-Control-Max-Age":       "7200",
	}
	for header, want := range checks {
		if got := w.Header().Get(header); got != want {
			t.Errorf("%s = %q, want %q", header, got, want)
		}
	}
}

func TestCORSConfig_Finalize(t *testing.T) {
	os.Setenv("TEST_CORS_ORIGINS", "http://a.example, http://b.example")
	os.Setenv("TEST_CORS_ENABLED", "true")
	defer os.Unsetenv("TEST_CORS_ORIGINS")
	defer os.Unsetenv("TEST_CORS_ENABLED")

	cfg := &middleware.CORSConfig{}
	err := cfg.Finalize(&middleware.CORSEnv{
		Enabled: "TEST_CORS_ENABLED",
		Origins: "TEST_CORS_ORIGINS",
	})
	if err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	if !cfg.Enabled {
		t.Error("Enabled = false, want true")
	}
	if len(cfg.Origins) != 2 || cfg.Origins[1] != "http://b.example" {
		t.Errorf("Origins = %v", cfg.Origins)
	}
	if len(cfg.AllowedMethods) == 0 || len(cfg.AllowedHeaders) == 0 {
		t.Error("defaults not applied")
	}
	if cfg.MaxAge != 3600 {
		t.Errorf("MaxAge = %d, want 3600", cfg.MaxAge)
	}
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	h := middleware.Logger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/documents?page=2", nil))

	out := buf.String()
	for _, want := range []string{"request", "POST", "/api/documents?page=2", "status=418", "duration"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q: %s", want, out)
		}
	}
}

func TestTrimSlash(t *testing.T) {
	tests := []struct {
		path         string
		wantStatus   int
		wantLocation string
	}{
		{"/", http.StatusOK, ""},
		{"/documents", http.StatusOK, ""},
		{"/documents/", http.StatusMovedPermanently, "/documents"},
		{"/documents/?page=2", http.StatusMovedPermanently, "/documents?page=2"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			middleware.TrimSlash()(ok()).ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if got := w.Header().Get("Location"); got != tt.wantLocation {
				t.Errorf("Location = %q, want %q", got, tt.wantLocation)
			}
		})
	}
}
