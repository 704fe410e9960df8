package middleware_test

import (
	"compress/flate"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perr "namematch/internal/platform/errors"
	pnet "namematch/internal/platform/net"
	phttp "namematch/internal/platform/net/http"
	"namematch/internal/platform/net/middleware"
)

const matchRow = "JOHN SMITH,John Smith,100.00,john@example.com\n"

func csvHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/csv")
	_, _ = io.WriteString(w, strings.Repeat(matchRow, 200))
}

func TestCompress(t *testing.T) {
	cases := []struct {
		name   string
		accept string
		want   string
	}{
		{"gzip accepted", "gzip", "gzip"},
		{"identity", "", ""},
	}
	h := middleware.Compress(flate.BestSpeed)(http.HandlerFunc(csvHandler))
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/reconcile/csv", nil)
			if tc.accept != "" {
				req.Header.Set("Accept-Encoding", tc.accept)
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)
			if got := rr.Header().Get("Content-Encoding"); got != tc.want {
				t.Fatalf("Content-Encoding = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestCORS_Preflight(t *testing.T) {
	h := middleware.CORS(middleware.CORSOptions{AllowedOrigins: []string{"https://ops.example"}})(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }))

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/reconcile", nil)
	req.Header.Set("Origin", "https://ops.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK && rr.Code != http.StatusNoContent {
		t.Fatalf("status = %d", rr.Code)
	}
	for _, k := range []string{"Access-Control-Allow-Origin", "Access-Control-Allow-Methods", "Access-Control-Allow-Headers"} {
		if rr.Header().Get(k) == "" {
			t.Fatalf("%s not set", k)
		}
	}
}

func TestCORS_ExposesIDs(t *testing.T) {
	h := middleware.CORS(middleware.CORSOptions{AllowedOrigins: []string{"*"}})(http.HandlerFunc(csvHandler))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://ops.example")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	exposed := rr.Header().Get("Access-Control-Expose-Headers")
	for _, k := range []string{"Content-Disposition", pnet.HeaderRunID} {
		if !strings.Contains(exposed, k) {
			t.Fatalf("exposed %q missing %s", exposed, k)
		}
	}
}

func TestMaxBody(t *testing.T) {
	cases := []struct {
		name   string
		limit  int64
		body   string
		status int
	}{
		{"declared oversize", 8, strings.Repeat("x", 64), http.StatusRequestEntityTooLarge},
		{"under limit", 1024, "Jane Doe", http.StatusNoContent},
		{"disabled", 0, strings.Repeat("x", 64), http.StatusNoContent},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var got string
			h := middleware.MaxBody(tc.limit)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				b, _ := io.ReadAll(r.Body)
				got = string(b)
				w.WriteHeader(http.StatusNoContent)
			}))
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tc.body)))

			if rr.Code != tc.status {
				t.Fatalf("status = %d, want %d", rr.Code, tc.status)
			}
			if tc.status == http.StatusNoContent {
				if got != tc.body {
					t.Fatalf("body = %q", got)
				}
				return
			}
			var env phttp.Envelope
			if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if env.Code != perr.ErrorCodeTooLarge || got != "" {
				t.Fatalf("envelope = %+v, handler saw %q", env, got)
			}
		})
	}
}
