package net_test

import (
	"context"
	"testing"

	pnet "rdtlog/internal/platform/net"
)

func TestWithRequest(t *testing.T) {
	base := context.Background()

	ctx := pnet.WithRequest(base, "req-123")
	if got := pnet.RequestID(ctx); got != "req-123" {
		t.Fatalf("RequestID got %q want %q", got, "req-123")
	}

	if same := pnet.WithRequest(base, ""); same != base {
		t.Fatalf("expected ctx to be unchanged for an empty id")
	}
	if got := pnet.RequestID(base); got != "" {
		t.Fatalf("RequestID got %q want empty", got)
	}
}

func TestWithRun(t *testing.T) {
	base := context.Background()
	if got := pnet.RunID(base); got != "" {
		t.Fatalf("RunID got %q want empty", got)
	}
	if same := pnet.WithRun(base, ""); same != base {
		t.Fatalf("expected ctx to be unchanged for an empty run id")
	}
	ctx := pnet.WithRun(pnet.WithRequest(base, "r-1"), "run-9")
	if got := pnet.RunID(ctx); got != "run-9" {
		t.Fatalf("RunID got %q", got)
	}
	if got := pnet.RequestID(ctx); got != "r-1" {
		t.Fatalf("RequestID lost: %q", got)
	}
}
