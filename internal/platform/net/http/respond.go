// Package http writes the JSON envelope and adapts handlers onto a Router
package http

import (
	"encoding/json"
	"mime"
	stdhttp "net/http"
	"strconv"

	pnet "namematch/internal/platform/net"
)

// Envelope is the body of every JSON response
type Envelope = pnet.Wire

// JSON writes v with status as application/json
func JSON(w stdhttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeEnvelope(w stdhttp.ResponseWriter, r *stdhttp.Request, env Envelope) {
	JSON(w, env.StatusCode, env.Stamped(r.Context()))
}

// RespondOK writes data in a 200 envelope
func RespondOK(w stdhttp.ResponseWriter, r *stdhttp.Request, data any) {
	writeEnvelope(w, r, pnet.Reply(stdhttp.StatusOK, data))
}

// RespondError writes the error envelope for err
func RespondError(w stdhttp.ResponseWriter, r *stdhttp.Request, err error) {
	writeEnvelope(w, r, pnet.Fail(err))
}

// Response is what return-style handlers produce. Err wins over everything;
// Raw skips the envelope and is sent with ContentType
type Response struct {
	Status      int
	Body        any
	Err         error
	Header      stdhttp.Header
	Raw         []byte
	ContentType string
}

// OK is a 200 envelope around data
func OK(data any) Response { return Response{Status: stdhttp.StatusOK, Body: data} }

// Error is the envelope for err at the status its code maps to
func Error(err error) Response { return Response{Err: err} }

// Attachment is a download named filename. A nil body is sent as empty
func Attachment(filename, contentType string, body []byte) Response {
	h := stdhttp.Header{}
	h.Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	if body == nil {
		body = []byte{}
	}
	return Response{Status: stdhttp.StatusOK, Header: h, Raw: body, ContentType: contentType}
}

// Handle adapts a return-style handler
func Handle(h func(*stdhttp.Request) Response) Handler {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) { h(r).write(w, r) }
}

func (resp Response) write(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	for k, vv := range resp.Header {
		w.Header()[k] = append(w.Header()[k], vv...)
	}
	switch {
	case resp.Err != nil:
		RespondError(w, r, resp.Err)
	case resp.Raw != nil:
		w.Header().Set("Content-Type", resp.ContentType)
		w.Header().Set("Content-Length", strconv.Itoa(len(resp.Raw)))
		w.WriteHeader(statusOr200(resp.Status))
		_, _ = w.Write(resp.Raw)
	default:
		writeEnvelope(w, r, pnet.Reply(resp.Status, resp.Body))
	}
}

func statusOr200(s int) int {
	if s == 0 {
		return stdhttp.StatusOK
	}
	return s
}
