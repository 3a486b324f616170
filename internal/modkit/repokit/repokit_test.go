package repokit

import (
	"context"
	"errors"
	"testing"
	"time"

	"tgcheck/internal/platform/store"
	kit "tgcheck/internal/platform/testkit"
)

type guardFunc func(context.Context) error

func (f guardFunc) Guard(ctx context.Context) error { return f(ctx) }

func TestMustGuard(t *testing.T) {
	var seen time.Duration
	ok := guardFunc(func(ctx context.Context) error {
		dl, _ := ctx.Deadline()
		seen = time.Until(dl)
		return nil
	})

	kit.MustNotPanic(t, func() { MustGuard(context.Background(), ok) })
	if seen <= 0 || seen > DefaultGuardTimeout {
		t.Fatalf("default deadline not applied: %v", seen)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	MustGuard(ctx, ok)
	if seen > 50*time.Millisecond {
		t.Fatalf("caller deadline replaced: %v", seen)
	}

	kit.MustPanic(t, func() {
		MustGuard(context.Background(), guardFunc(func(context.Context) error { return errors.New("refused") }))
	})
	kit.MustPanic(t, func() { MustGuard(context.Background(), nil) })
}

// txRunner hands fn a nil Queryer and reports what fn returned
type txRunner struct {
	store.TxRunner
	calls int
	fnErr error
}

func (r *txRunner) Tx(_ context.Context, fn func(store.RowQuerier) error) error {
	r.calls++
	r.fnErr = fn(nil)
	return r.fnErr
}

func TestWithTx(t *testing.T) {
	tx := &txRunner{}
	if err := WithTx(context.Background(), tx, func(Queryer) error { return nil }); err != nil {
		t.Fatal(err)
	}
	boom := errors.New("ddl failed")
	if err := WithTx(context.Background(), tx, func(Queryer) error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
	if tx.calls != 2 {
		t.Fatalf("calls = %d", tx.calls)
	}
}
