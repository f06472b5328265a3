package openapi_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/JaimeStill/folio/pkg/openapi"
)

func TestNewSpec(t *testing.T) {
	spec := openapi.NewSpec("Folio API", "0.1.0")
	spec.SetDescription("registry")
	spec.AddServer("")
	spec.AddServer("http://localhost:8080")

	if spec.OpenAPI != "3.1.0" {
		t.Errorf("OpenAPI = %q", spec.OpenAPI)
	}
	if spec.Info.Description != "registry" {
		t.Errorf("Description = %q", spec.Info.Description)
	}
	if len(spec.Servers) != 1 {
		t.Errorf("Servers = %d, want 1", len(spec.Servers))
	}

	for _, name := range []string{"BadRequest", "Forbidden", "NotFound", "Conflict"} {
		if spec.Components.Responses[name] == nil {
			t.Errorf("missing response %s", name)
		}
	}
	for _, name := range []string{"PageRequest", "Error"} {
		if spec.Components.Schemas[name] == nil {
			t.Errorf("missing schema %s", name)
		}
	}
}

func TestSpec_SetOperation(t *testing.T) {
	spec := openapi.NewSpec("Folio API", "0.1.0")

	spec.SetOperation("/documents", "GET", &openapi.Operation{Summary: "List"})
	spec.SetOperation("/documents", "POST", &openapi.Operation{Summary: "Create"})
	spec.SetOperation("/documents/{id}", "PATCH", &openapi.Operation{Summary: "Update"})
	spec.SetOperation("/ignored", "TRACE", &openapi.Operation{})

	if spec.Paths["/documents"].Get.Summary != "List" || spec.Paths["/documents"].Post.Summary != "Create" {
		t.Error("collection operations not set")
	}
	if spec.Paths["/documents/{id}"].Patch == nil {
		t.Error("PATCH not set")
	}
	if _, ok := spec.Paths["/ignored"]; ok {
		t.Error("unsupported method should not create a path")
	}
}

func TestComponents_Add(t *testing.T) {
	c := openapi.NewComponents()
	c.AddSchemas(map[string]*openapi.Schema{
		"Category": {Type: "object", Properties: map[string]*openapi.Schema{"name": {Type: "string"}}},
	})
	c.AddResponses(map[string]*openapi.Response{"Gone": {Description: "gone"}})

	if c.Schemas["Category"] == nil || c.Schemas["PageRequest"] == nil {
		t.Error("schemas not merged")
	}
	if c.Responses["Gone"] == nil {
		t.Error("responses not merged")
	}
}

func TestHelpers(t *testing.T) {
	if got := openapi.SchemaRef("Document").Ref; got != "#/components/schemas/Document" {
		t.Errorf("SchemaRef = %q", got)
	}
	if got := openapi.ResponseRef("NotFound").Ref; got != "#/components/responses/NotFound" {
		t.Errorf("ResponseRef = %q", got)
	}

	body := openapi.RequestBodyJSON("CreateCategory", true)
	if !body.Required || body.Content["application/json"].Schema.Ref != "#/components/schemas/CreateCategory" {
		t.Errorf("RequestBodyJSON = %+v", body)
	}

	mp := openapi.RequestBodyMultipart(&openapi.Schema{Type: "object"})
	if mp.Content["multipart/form-data"] == nil {
		t.Error("multipart content missing")
	}

	bin := openapi.ResponseBinary("export", "application/octet-stream")
	if bin.Content["application/octet-stream"].Schema.Format != "binary" {
		t.Error("binary schema format missing")
	}

	p := openapi.PathParam("id", "Document ID")
	if p.In != "path" || !p.Required || p.Schema.Format != "uuid" {
		t.Errorf("PathParam = %+v", p)
	}

	q := openapi.QueryParam("page", "integer", "Page", false)
	if q.In != "query" || q.Required || q.Schema.Type != "integer" {
		t.Errorf("QueryParam = %+v", q)
	}
}

func TestJSON(t *testing.T) {
	spec := openapi.NewSpec("Folio API", "0.1.0")
	spec.SetOperation("/folders", "GET", &openapi.Operation{
		Summary:   "List folders",
		Responses: map[int]*openapi.Response{200: {Description: "OK"}},
	})

	data, err := openapi.MarshalJSON(spec)
	if err != nil {
		t.Fatalf("MarshalJSON() error = %v", err)
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if doc["openapi"] != "3.1.0" {
		t.Errorf("openapi = %v", doc["openapi"])
	}

	path := filepath.Join(t.TempDir(), "openapi.json")
	if err := openapi.WriteJSON(spec, path); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}
	written, _ := os.ReadFile(path)
	if string(written) != string(data) {
		t.Error("written file differs from MarshalJSON output")
	}

	if err := openapi.WriteJSON(spec, filepath.Join(t.TempDir(), "missing", "openapi.json")); err == nil {
		t.Error("WriteJSON() to a missing directory should fail")
	}

	w := httptest.NewRecorder()
	openapi.ServeSpec(data)(w, httptest.NewRequest(http.MethodGet, "/openapi.json", nil))
	if w.Header().Get("Content-Type") != "application/json" || w.Body.String() != string(data) {
		t.Error("ServeSpec did not serve the spec")
	}
}
