package net_test

import (
	"context"
	"testing"

	pnet "tgcheck/internal/platform/net"
)

func TestWithRequest(t *testing.T) {
	base := context.Background()

	t.Run("sets request id", func(t *testing.T) {
		ctx := pnet.WithRequest(base, "req-123")
		if got := pnet.RequestID(ctx); got != "req-123" {
			t.Fatalf("RequestID got %q want %q", got, "req-123")
		}
	})

	t.Run("empty keeps ctx", func(t *testing.T) {
		ctx := pnet.WithRequest(base, "")
		if ctx != base {
			t.Fatalf("expected the same context back")
		}
		if got := pnet.RequestID(ctx); got != "" {
			t.Fatalf("RequestID got %q want empty", got)
		}
	})
}

func TestWithOperator(t *testing.T) {
	ctx := pnet.WithOperator(context.Background(), "ops")
	if got := pnet.Operator(ctx); got != "ops" {
		t.Fatalf("Operator got %q want %q", got, "ops")
	}
	if got := pnet.Operator(context.Background()); got != "" {
		t.Fatalf("Operator got %q want empty", got)
	}
}
