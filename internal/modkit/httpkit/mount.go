package httpkit

import (
	"net/http"
	"strings"
)

// MountUnder scopes mount to prefix, with mw applied to that scope only
func MountUnder(r Router, prefix string, mw []func(http.Handler) http.Handler, mount func(Router)) {
	r.Route(prefix, func(sub Router) {
		sub.Use(mw...)
		mount(sub)
	})
}

// MountAPI is MountUnder at /api/{version}; "v1" and "/v1" are equivalent
func MountAPI(r Router, version string, mw []func(http.Handler) http.Handler, mount func(Router)) {
	MountUnder(r, "/api/"+strings.Trim(version, "/"), mw, mount)
}
