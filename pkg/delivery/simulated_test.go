package delivery_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/goliatone/go-contactform/pkg/delivery"
	"github.com/goliatone/go-contactform/pkg/model"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestSimulatedDeliver_SucceedsAfterDelay(t *testing.T) {
	sim := delivery.NewSimulated(delivery.WithDelay(20 * time.Millisecond))

	start := time.Now()
	err := sim.Deliver(context.Background(), delivery.Message{
		ID:     "attempt-1",
		Values: model.Values{Name: "Alice", Email: "a@b.com", Message: "Hello, this is long enough"},
	})
	if err != nil {
		t.Fatalf("deliver: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Fatalf("expected deliver to wait for the delay, returned after %s", elapsed)
	}
}

func TestSimulatedDeliver_ContextCancelled(t *testing.T) {
	sim := delivery.NewSimulated(delivery.WithDelay(time.Hour))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := sim.Deliver(ctx, delivery.Message{ID: "attempt-2"})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestSimulatedDefaults(t *testing.T) {
	if got := delivery.NewSimulated().Delay(); got != delivery.DefaultDelay {
		t.Fatalf("expected default delay %s, got %s", delivery.DefaultDelay, got)
	}
	if got := delivery.NewSimulated(delivery.WithDelay(-time.Second)).Delay(); got != 0 {
		t.Fatalf("expected negative delay clamped to zero, got %s", got)
	}
}

func TestFuncAdapter(t *testing.T) {
	boom := errors.New("boom")
	var seen delivery.Message
	var d delivery.Deliverer = delivery.Func(func(_ context.Context, msg delivery.Message) error {
		seen = msg
		return boom
	})

	if err := d.Deliver(context.Background(), delivery.Message{ID: "x"}); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if seen.ID != "x" {
		t.Fatalf("expected message passed through, got %+v", seen)
	}
}
