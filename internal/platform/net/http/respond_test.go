package http_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	perr "namematch/internal/platform/errors"
	pnet "namematch/internal/platform/net"
	phttp "namematch/internal/platform/net/http"
)

func withIDs(method, path, reqID, runID string) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	return req.WithContext(pnet.WithRequest(req.Context(), reqID, runID))
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) phttp.Envelope {
	t.Helper()
	var env phttp.Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("unmarshal %q: %v", rec.Body.String(), err)
	}
	return env
}

func TestRespond(t *testing.T) {
	rec := httptest.NewRecorder()
	phttp.RespondOK(rec, withIDs(http.MethodGet, "/x", "rid-1", "run-1"), map[string]int{"accepted": 3})
	env := decode(t, rec)
	if rec.Code != http.StatusOK || env.RequestID != "rid-1" || env.RunID != "run-1" || env.Data == nil {
		t.Fatalf("ok envelope: %d %+v", rec.Code, env)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Fatalf("content type = %q", ct)
	}

	rec = httptest.NewRecorder()
	missing := perr.WithField(perr.Validationf("missing required column %q", "CustomerName"), "CustomerName")
	phttp.RespondError(rec, withIDs(http.MethodPost, "/x", "rid-2", ""), missing)
	env = decode(t, rec)
	if rec.Code != http.StatusBadRequest || env.Code != perr.ErrorCodeValidation || env.Field != "CustomerName" || env.RequestID != "rid-2" {
		t.Fatalf("error envelope: %d %+v", rec.Code, env)
	}
}

func TestHandle(t *testing.T) {
	withHeader := phttp.OK("hello")
	withHeader.Header = http.Header{"X-Thing": {"yup"}}

	cases := []struct {
		name   string
		resp   phttp.Response
		status int
		header string
	}{
		{"ok", phttp.OK(map[string]int{"x": 1}), http.StatusOK, ""},
		{"zero status", phttp.Response{Body: "z"}, http.StatusOK, ""},
		{"created", phttp.Response{Status: http.StatusCreated, Body: "run-1"}, http.StatusCreated, ""},
		{"project error", phttp.Error(perr.DocumentParsef("not a pdf")), http.StatusUnprocessableEntity, ""},
		{"foreign error", phttp.Error(errors.New("boom")), http.StatusInternalServerError, ""},
		{"extra header", withHeader, http.StatusOK, "yup"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			phttp.Handle(func(*http.Request) phttp.Response { return tc.resp })(rec, withIDs(http.MethodGet, "/", "rid", ""))
			env := decode(t, rec)
			if rec.Code != tc.status || env.StatusCode != tc.status {
				t.Fatalf("status = %d / %d, want %d", rec.Code, env.StatusCode, tc.status)
			}
			if got := rec.Header().Get("X-Thing"); got != tc.header {
				t.Fatalf("X-Thing = %q", got)
			}
		})
	}
}

func TestAttachment(t *testing.T) {
	cases := []struct {
		name string
		body []byte
	}{
		{"csv", []byte("PDF Name,CustomerName,Best Match,Match Score,Accepted\n")},
		{"empty", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := phttp.Handle(func(*http.Request) phttp.Response {
				return phttp.Attachment("matched_names.csv", "text/csv; charset=utf-8", tc.body)
			})
			rec := httptest.NewRecorder()
			h(rec, withIDs(http.MethodPost, "/csv", "rid", "run"))

			if rec.Code != http.StatusOK || rec.Body.String() != string(tc.body) {
				t.Fatalf("got %d %q", rec.Code, rec.Body.String())
			}
			if got := rec.Header().Get("Content-Disposition"); got != "attachment; filename=matched_names.csv" {
				t.Fatalf("content-disposition = %q", got)
			}
			if got := rec.Header().Get("Content-Type"); got != "text/csv; charset=utf-8" {
				t.Fatalf("content-type = %q", got)
			}
			if got := rec.Header().Get("Content-Length"); got != "0" && tc.body == nil {
				t.Fatalf("content-length = %q", got)
			}
		})
	}
}
