package form

import (
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-contactform/pkg/model"
	"github.com/goliatone/go-contactform/pkg/validation"
)

const (
	// DefaultSuccessFormat receives the submitted email address.
	DefaultSuccessFormat = "Message sent successfully to %s!"
	// DefaultFailureMessage is shown for every delivery failure.
	DefaultFailureMessage = "Failed to send message. Please try again later."
)

// Sink displays form state. Render is called after every state change with a
// snapshot the sink may keep.
type Sink interface {
	Render(state model.State)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(state model.State)

// Render calls f.
func (f SinkFunc) Render(state model.State) {
	f(state)
}

// Option configures a Form.
type Option func(*Form)

// WithValidator overrides the rule set (for example to localise messages).
func WithValidator(v *validation.Validator) Option {
	return func(f *Form) {
		if v != nil {
			f.validator = v
		}
	}
}

// WithLogger attaches a structured logger.
func WithLogger(logger *zap.Logger) Option {
	return func(f *Form) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithSink registers a render sink. Multiple sinks are notified in order.
func WithSink(sink Sink) Option {
	return func(f *Form) {
		if sink != nil {
			f.sinks = append(f.sinks, sink)
		}
	}
}

// WithMessages overrides the status banner texts. successFormat must contain a
// single %s verb for the email address, otherwise New fails with
// ErrSuccessFormat; empty values keep the defaults.
func WithMessages(successFormat, failureMessage string) Option {
	return func(f *Form) {
		if successFormat != "" {
			f.successFormat = successFormat
		}
		if failureMessage != "" {
			f.failureMessage = failureMessage
		}
	}
}

// WithClock overrides the time source used to stamp messages.
func WithClock(now func() time.Time) Option {
	return func(f *Form) {
		if now != nil {
			f.now = now
		}
	}
}

// WithIDGenerator overrides how submission attempt ids are minted.
func WithIDGenerator(next func() string) Option {
	return func(f *Form) {
		if next != nil {
			f.nextID = next
		}
	}
}
