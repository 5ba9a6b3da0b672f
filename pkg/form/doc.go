// Package form implements the contact form validator/submitter: it owns the
// field values, touched flags, field errors and submission status, and drives
// the Idle -> Sending -> Succeeded/Failed state machine.
//
// Events (Change, Blur, Submit) may arrive from any goroutine; they are
// serialised internally. The deliverer call is the only point where the form
// waits, and it happens without holding the lock so the Sending status is
// observable and a second Submit is rejected with ErrSubmitInFlight.
//
// Render sinks registered with WithSink receive a State snapshot after every
// change.
package form
