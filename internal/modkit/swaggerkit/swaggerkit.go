// Package swaggerkit serves Swagger UI and the embedded OpenAPI document
package swaggerkit

import (
	_ "embed"
	"encoding/json"
	"net/http"
	"strings"

	perr "namematch/internal/platform/errors"
	phttp "namematch/internal/platform/net/http"
	str "namematch/internal/platform/strings"

	httpSwagger "github.com/swaggo/http-swagger"
)

//go:embed openapi.json
var openapi []byte

// DefaultRoot is where the UI is served when Options.Root is blank
const DefaultRoot = "/api/docs"

// Patch edits the decoded document before it is served
type Patch func(doc map[string]any)

// Options configures Mount
type Options struct {
	Enabled bool
	Root    string
	// Server is written into servers when the document lists none
	Server  string
	Patches []Patch
}

// Mount serves the UI under Root and the document at Root/doc.json. The
// document is rendered once; a broken one answers 500 on every request
func Mount(r phttp.Router, o Options) {
	if !o.Enabled {
		return
	}
	root := str.Or(strings.TrimRight(o.Root, "/"), DefaultRoot)
	doc, err := render(openapi, o.Server, o.Patches)

	r.Get(root, func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, root+"/", http.StatusPermanentRedirect)
	})
	r.Get(root+"/doc.json", func(w http.ResponseWriter, req *http.Request) {
		if err != nil {
			phttp.RespondError(w, req, err)
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_, _ = w.Write(doc)
	})
	r.Handle(root+"/*", httpSwagger.Handler(httpSwagger.URL(root+"/doc.json")))
}

// render decodes raw, pins it to OAS 3.0.3 since the UI cannot show 3.1,
// defaults servers and applies patches in order
func render(raw []byte, server string, patches []Patch) ([]byte, error) {
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnknown, "openapi document unreadable")
	}
	if v, _ := doc["openapi"].(string); v == "" || strings.HasPrefix(v, "3.1") {
		doc["openapi"] = "3.0.3"
	}
	if _, ok := doc["servers"]; !ok && server != "" {
		doc["servers"] = []any{map[string]any{"url": server}}
	}
	for _, p := range patches {
		if p != nil {
			p(doc)
		}
	}
	return json.Marshal(doc)
}
