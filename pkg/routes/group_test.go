package routes_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/folio/pkg/openapi"
	"github.com/JaimeStill/folio/pkg/routes"
)

func write(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}
}

func categoriesGroup() routes.Group {
	return routes.Group{
		Prefix: "/categories",
		Tags:   []string{"Categories"},
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: write("list"), OpenAPI: &openapi.Operation{Summary: "List categories"}},
			{Method: "GET", Pattern: "/{id}", Handler: write("find"), OpenAPI: &openapi.Operation{Summary: "Find category", Tags: []string{"Admin"}}},
			{Method: "DELETE", Pattern: "/{id}", Handler: write("undocumented")},
		},
		Children: []routes.Group{
			{
				Prefix: "/{id}/fields",
				Routes: []routes.Route{
					{Method: "POST", Pattern: "", Handler: write("add field"), OpenAPI: &openapi.Operation{Summary: "Add field"}},
				},
			},
		},
		Schemas: map[string]*openapi.Schema{
			"Category": {Type: "object"},
		},
	}
}

func TestGroup_AddToSpec(t *testing.T) {
	spec := openapi.NewSpec("Folio API", "0.1.0")
	g := categoriesGroup()
	g.AddToSpec("/api", spec)

	list := spec.Paths["/api/categories"]
	if list == nil || list.Get == nil || list.Get.Summary != "List categories" {
		t.Fatalf("list path = %+v", list)
	}
	if list.Get.Tags[0] != "Categories" {
		t.Errorf("inherited tags = %v", list.Get.Tags)
	}

	find := spec.Paths["/api/categories/{id}"]
	if find.Get.Tags[0] != "Admin" {
		t.Errorf("explicit tags overwritten: %v", find.Get.Tags)
	}
	if find.Delete != nil {
		t.Error("route without an operation should not be documented")
	}

	child := spec.Paths["/api/categories/{id}/fields"]
	if child == nil || child.Post == nil {
		t.Fatal("child route not documented")
	}
	if child.Post.Tags[0] != "Categories" {
		t.Errorf("child tags = %v, want parent tags", child.Post.Tags)
	}

	if spec.Components.Schemas["Category"] == nil {
		t.Error("group schemas not added")
	}
}

func TestRegister(t *testing.T) {
	mux := http.NewServeMux()
	spec := openapi.NewSpec("Folio API", "0.1.0")

	routes.Register(mux, "/api", spec, categoriesGroup(), routes.Group{
		Prefix: "/folders",
		Routes: []routes.Route{
			{Method: "GET", Handler: write("folders"), OpenAPI: &openapi.Operation{Summary: "List folders"}},
		},
	})

	tests := []struct {
		method string
		path   string
		want   string
	}{
		{http.MethodGet, "/categories", "list"},
		{http.MethodGet, "/categories/abc", "find"},
		{http.MethodDelete, "/categories/abc", "undocumented"},
		{http.MethodPost, "/categories/abc/fields", "add field"},
		{http.MethodGet, "/folders", "folders"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))
			got, _ := io.ReadAll(w.Result().Body)
			if string(got) != tt.want {
				t.Errorf("body = %q, want %q", got, tt.want)
			}
		})
	}

	if spec.Paths["/api/folders"] == nil {
		t.Error("folders not documented")
	}
}
