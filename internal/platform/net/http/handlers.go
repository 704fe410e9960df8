package http

import (
	"net/http"

	"namematch/internal/platform/net/http/bind"
)

// GetJSON mounts fn under GET. Its result is enveloped, or written as is
// when it is a Response
func GetJSON(r Router, path string, fn func(*http.Request) (any, error)) {
	r.Get(path, Handle(func(req *http.Request) Response { return result(fn(req)) }))
}

// PostJSON mounts fn under POST after binding and validating T from the body
func PostJSON[T any](r Router, path string, fn func(*http.Request, T) (any, error), opts ...bind.JSONOptions) {
	r.Post(path, Handle(func(req *http.Request) Response {
		in, err := bind.ParseJSON[T](req, opts...)
		if err != nil {
			return Error(err)
		}
		return result(fn(req, in))
	}))
}

// PostForm mounts a return-style handler for multipart uploads
func PostForm(r Router, path string, fn func(*http.Request) Response) {
	r.Post(path, Handle(fn))
}

func result(out any, err error) Response {
	if err != nil {
		return Error(err)
	}
	if resp, ok := out.(Response); ok {
		return resp
	}
	return OK(out)
}
