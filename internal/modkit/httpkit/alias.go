// Package httpkit is the HTTP surface modules build on. It re-exports the
// platform handler helpers so modules never import platform/net/http
package httpkit

import (
	"net/http"

	phttp "namematch/internal/platform/net/http"
	"namematch/internal/platform/net/http/bind"
)

type (
	Envelope = phttp.Envelope
	Response = phttp.Response
	Handler  = phttp.Handler
	Router   = phttp.Router
)

// OK is a 200 envelope around data
func OK(data any) Response { return phttp.OK(data) }

// Error is the envelope for err
func Error(err error) Response { return phttp.Error(err) }

// Attachment is a download response; match and merged CSVs use it
func Attachment(filename, contentType string, body []byte) Response {
	return phttp.Attachment(filename, contentType, body)
}

// GetJSON mounts a body-less GET handler
func GetJSON(r Router, path string, fn func(*http.Request) (any, error)) {
	phttp.GetJSON(r, path, fn)
}

// PostJSON mounts a POST handler that receives a validated T
func PostJSON[T any](r Router, path string, fn func(*http.Request, T) (any, error), opts ...bind.JSONOptions) {
	phttp.PostJSON(r, path, fn, opts...)
}

// PostForm mounts a multipart upload handler
func PostForm(r Router, path string, fn func(*http.Request) Response) {
	phttp.PostForm(r, path, fn)
}
