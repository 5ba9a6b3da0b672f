package delivery

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// DefaultDelay matches the pause the portfolio used in place of a network
// call.
const DefaultDelay = time.Second

// Simulated waits a fixed delay and then reports success. It only fails when
// ctx ends before the delay elapses.
type Simulated struct {
	delay  time.Duration
	logger *zap.Logger
}

// SimulatedOption configures a Simulated deliverer.
type SimulatedOption func(*Simulated)

// WithDelay overrides the simulated latency. Negative values are treated as
// zero.
func WithDelay(delay time.Duration) SimulatedOption {
	return func(s *Simulated) {
		if delay < 0 {
			delay = 0
		}
		s.delay = delay
	}
}

// WithLogger attaches a logger for accepted messages.
func WithLogger(logger *zap.Logger) SimulatedOption {
	return func(s *Simulated) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewSimulated constructs a Simulated deliverer with DefaultDelay.
func NewSimulated(options ...SimulatedOption) *Simulated {
	s := &Simulated{
		delay:  DefaultDelay,
		logger: zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s
}

// Delay reports the configured latency.
func (s *Simulated) Delay() time.Duration {
	return s.delay
}

// Deliver waits for the configured delay.
func (s *Simulated) Deliver(ctx context.Context, msg Message) error {
	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return err
	}

	s.logger.Debug("simulated delivery accepted",
		zap.String("attempt", msg.ID),
		zap.String("email", msg.Values.Email),
	)
	return nil
}
