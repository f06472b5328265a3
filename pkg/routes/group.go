// Package routes declares HTTP routes alongside their OpenAPI operations
// so that registration and documentation stay in step.
package routes

import (
	"net/http"

	"github.com/JaimeStill/folio/pkg/openapi"
)

// Route binds a method and pattern to a handler.
// Pattern is relative to the enclosing group prefix.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
	OpenAPI *openapi.Operation
}

// Group represents a collection of routes under a common URL prefix.
// Groups can contain child groups for hierarchical route organization.
type Group struct {
	Prefix      string
	Tags        []string
	Description string
	Routes      []Route
	Children    []Group
	Schemas     map[string]*openapi.Schema
}

// AddToSpec documents every route of the group and its children under basePath.
// Routes without an operation are left undocumented. Operations without tags
// inherit the group's tags.
func (g *Group) AddToSpec(basePath string, spec *openapi.Spec) {
	g.addToSpec(basePath, spec, g.Tags)
}

func (g *Group) addToSpec(basePath string, spec *openapi.Spec, tags []string) {
	if len(g.Tags) > 0 {
		tags = g.Tags
	}
	if len(g.Schemas) > 0 {
		spec.Components.AddSchemas(g.Schemas)
	}

	prefix := basePath + g.Prefix
	for _, r := range g.Routes {
		if r.OpenAPI == nil {
			continue
		}
		op := r.OpenAPI
		if len(op.Tags) == 0 {
			op.Tags = tags
		}
		spec.SetOperation(prefix+r.Pattern, r.Method, op)
	}

	for i := range g.Children {
		g.Children[i].addToSpec(prefix, spec, tags)
	}
}

// Register mounts every group on mux relative to the module root and
// documents them in spec under basePath.
func Register(mux *http.ServeMux, basePath string, spec *openapi.Spec, groups ...Group) {
	for i := range groups {
		registerGroup(mux, "", &groups[i])
		groups[i].AddToSpec(basePath, spec)
	}
}

func registerGroup(mux *http.ServeMux, parent string, g *Group) {
	prefix := parent + g.Prefix
	for _, r := range g.Routes {
		mux.HandleFunc(r.Method+" "+prefix+r.Pattern, r.Handler)
	}
	for i := range g.Children {
		registerGroup(mux, prefix, &g.Children[i])
	}
}
