package net_test

import (
	"context"
	"testing"

	"namematch/internal/platform/logger"
	pnet "namematch/internal/platform/net"
)

func TestWithRequest(t *testing.T) {
	base := context.Background()
	cases := []struct {
		name, req, run string
	}{
		{"both", "req-123", "run-abc"},
		{"request only", "req-123", ""},
		{"run only", "", "run-abc"},
		{"neither", "", ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ctx := pnet.WithRequest(base, c.req, c.run)
			if got := pnet.RequestID(ctx); got != c.req {
				t.Fatalf("RequestID = %q, want %q", got, c.req)
			}
			if got := pnet.RunID(ctx); got != c.run {
				t.Fatalf("RunID = %q, want %q", got, c.run)
			}
			if c.req == "" && c.run == "" && ctx != base {
				t.Fatal("ctx should be unchanged when there is nothing to store")
			}
		})
	}
}

func TestRunIDSharedWithLogger(t *testing.T) {
	ctx := pnet.WithRequest(context.Background(), "req-1", "run-1")
	if got := logger.RunID(ctx); got != "run-1" {
		t.Fatalf("logger.RunID = %q, want run-1", got)
	}

	ctx = logger.WithRun(context.Background(), "run-2")
	if got := pnet.RunID(ctx); got != "run-2" {
		t.Fatalf("pnet.RunID = %q, want run-2", got)
	}
}
