package bind

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	perr "namematch/internal/platform/errors"
	"namematch/internal/platform/logger"
)

// DefaultMaxBytes bounds JSON bodies when no options are passed; statements pasted as
// text run larger than typical API payloads
var DefaultMaxBytes int64 = 8 << 20

// JSONOptions controls ParseJSON. Passing options replaces every default
type JSONOptions struct {
	MaxBytes        int64 // <= 0 means unbounded
	DisallowUnknown bool
	AllowEmptyBody  bool
}

func defaultJSONOptions() JSONOptions {
	return JSONOptions{MaxBytes: DefaultMaxBytes, DisallowUnknown: true}
}

// ParseJSON reads one JSON document into T and validates it. An empty body is
// accepted for GET-like methods or when AllowEmptyBody is set, and yields the
// zero T without validation
func ParseJSON[T any](r *http.Request, opts ...JSONOptions) (T, error) {
	var dst T
	o := defaultJSONOptions()
	if len(opts) > 0 {
		o = opts[0]
	}

	body, err := readBody(r, o.MaxBytes)
	if err != nil {
		return dst, err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		if o.AllowEmptyBody || bodyless(r.Method) {
			return dst, nil
		}
		return dst, perr.JSONErrf("empty body")
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	if o.DisallowUnknown {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(&dst); err != nil {
		return dst, perr.JSONErrf("invalid JSON: %v", err)
	}
	if dec.More() {
		return dst, perr.JSONErrf("unexpected trailing data")
	}
	if err := Validate(dst); err != nil {
		var zero T
		return zero, err
	}
	return dst, nil
}

// readBody drains and closes the body, failing once it exceeds max bytes
func readBody(r *http.Request, max int64) ([]byte, error) {
	defer func() {
		if err := r.Body.Close(); err != nil {
			logger.C(r.Context()).Warn().Err(err).Msg("close request body")
		}
	}()

	var src io.Reader = r.Body
	if max > 0 {
		src = io.LimitReader(r.Body, max+1)
	}
	b, err := io.ReadAll(src)
	if err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return nil, perr.TooLargef("request body over %d bytes", mbe.Limit)
		}
		return nil, perr.JSONErrf("read body: %v", err)
	}
	if max > 0 && int64(len(b)) > max {
		return nil, perr.TooLargef("request body over %d bytes", max)
	}
	return b, nil
}

func bodyless(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodDelete, http.MethodOptions:
		return true
	}
	return false
}
