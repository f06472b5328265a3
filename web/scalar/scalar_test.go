package scalar_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JaimeStill/folio/web/scalar"
)

func TestHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	scalar.Handler("Folio <API>", "/api/openapi.json")(rec, httptest.NewRequest("GET", "/scalar", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("content type = %q", ct)
	}

	body := rec.Body.String()
	if !strings.Contains(body, `data-url="/api/openapi.json"`) {
		t.Error("spec url missing")
	}
	if !strings.Contains(body, "<title>Folio &lt;API&gt;</title>") {
		t.Error("title not escaped")
	}
}

func TestRoutes(t *testing.T) {
	g := scalar.Routes("Folio", "openapi.json")

	if g.Prefix != "/scalar" || len(g.Routes) != 1 {
		t.Fatalf("group = %+v", g)
	}
	if g.Routes[0].OpenAPI != nil {
		t.Error("reference page should not be documented")
	}
}
