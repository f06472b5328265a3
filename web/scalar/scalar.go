// Package scalar serves the interactive API reference rendered by Scalar
// from the module's generated OpenAPI document.
package scalar

import (
	"bytes"
	_ "embed"
	"html/template"
	"net/http"

	"github.com/JaimeStill/folio/pkg/routes"
)

//go:embed index.html
var indexHTML string

var index = template.Must(template.New("index").Parse(indexHTML))

type page struct {
	Title   string
	SpecURL string
}

// Handler renders the reference page for the document at specURL. The page
// is rendered once; a relative specURL resolves against the page's path.
func Handler(title, specURL string) http.HandlerFunc {
	var buf bytes.Buffer
	if err := index.Execute(&buf, page{Title: title, SpecURL: specURL}); err != nil {
		panic(err)
	}
	body := buf.Bytes()

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write(body)
	}
}

// Routes mounts the reference page at /scalar. It is kept out of the
// OpenAPI document.
func Routes(title, specURL string) routes.Group {
	return routes.Group{
		Prefix: "/scalar",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: Handler(title, specURL)},
		},
	}
}
