// Package delivery defines the contract between the contact form and the
// service that actually delivers a message, plus the simulated stand-in used
// when no real service is wired.
package delivery

import (
	"context"
	"time"

	"github.com/goliatone/go-contactform/pkg/model"
)

// Message is a single submission attempt handed to a Deliverer.
type Message struct {
	ID          string       `json:"id"`
	Values      model.Values `json:"values"`
	SubmittedAt time.Time    `json:"submittedAt"`
}

// Deliverer sends a message. A nil error means the message was accepted; any
// error moves the form to the failed state with the user's input preserved.
type Deliverer interface {
	Deliver(ctx context.Context, msg Message) error
}

// Func adapts a plain function to the Deliverer interface.
type Func func(ctx context.Context, msg Message) error

// Deliver calls f.
func (f Func) Deliver(ctx context.Context, msg Message) error {
	return f(ctx, msg)
}
