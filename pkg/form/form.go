package form

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goliatone/go-contactform/pkg/delivery"
	"github.com/goliatone/go-contactform/pkg/model"
	"github.com/goliatone/go-contactform/pkg/validation"
)

// Form is the contact form state machine.
type Form struct {
	mu      sync.Mutex
	values  model.Values
	touched model.Touched
	errors  model.Errors
	status  model.Status

	deliverer      delivery.Deliverer
	validator      *validation.Validator
	logger         *zap.Logger
	sinks          []Sink
	successFormat  string
	failureMessage string
	now            func() time.Time
	nextID         func() string
}

// New constructs an idle, empty form that submits through deliverer.
func New(deliverer delivery.Deliverer, options ...Option) (*Form, error) {
	if deliverer == nil {
		return nil, ErrNoDeliverer
	}

	f := &Form{
		status:         model.IdleStatus(),
		deliverer:      deliverer,
		validator:      validation.New(),
		logger:         zap.NewNop(),
		successFormat:  DefaultSuccessFormat,
		failureMessage: DefaultFailureMessage,
		now:            time.Now,
		nextID:         uuid.NewString,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(f)
	}
	if err := CheckSuccessFormat(f.successFormat); err != nil {
		return nil, err
	}
	return f, nil
}

// State returns a snapshot of the form.
func (f *Form) State() model.State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshotLocked()
}

// Sending reports whether a submission is outstanding.
func (f *Form) Sending() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status.Kind == model.StatusSending
}

// Change records a keystroke. Editing a field drops its current error; the
// field is revalidated on the next blur or submit.
func (f *Form) Change(field model.Field, value string) error {
	if !field.Valid() {
		return fmt.Errorf("form: change: %w: %q", model.ErrUnknownField, field)
	}

	f.mu.Lock()
	_ = f.values.Set(field, value)
	delete(f.errors, field)
	state := f.snapshotLocked()
	f.mu.Unlock()

	f.notify(state)
	return nil
}

// Blur marks field as touched and revalidates it alone.
func (f *Form) Blur(field model.Field) error {
	if !field.Valid() {
		return fmt.Errorf("form: blur: %w: %q", model.ErrUnknownField, field)
	}

	f.mu.Lock()
	_ = f.touched.Mark(field)
	f.validateFieldLocked(field)
	state := f.snapshotLocked()
	f.mu.Unlock()

	f.notify(state)
	return nil
}

// ValidateField recomputes the error entry for field, leaving every other
// entry untouched.
func (f *Form) ValidateField(field model.Field) error {
	if !field.Valid() {
		return fmt.Errorf("form: validate: %w: %q", model.ErrUnknownField, field)
	}

	f.mu.Lock()
	f.validateFieldLocked(field)
	state := f.snapshotLocked()
	f.mu.Unlock()

	f.notify(state)
	return nil
}

// ValidateAll replaces the whole error mapping and reports whether the form
// is valid.
func (f *Form) ValidateAll() bool {
	f.mu.Lock()
	f.errors = f.validator.All(f.values)
	valid := f.errors.Empty()
	state := f.snapshotLocked()
	f.mu.Unlock()

	f.notify(state)
	return valid
}

// Submit runs one submission attempt and blocks until the deliverer answers.
//
// While another attempt is outstanding it returns ErrSubmitInFlight without
// side effects. Invalid input marks every field touched, leaves the status
// unchanged and returns a *ValidationError. A deliverer failure leaves the
// values in place, sets the failure banner and returns an error wrapping
// ErrDeliveryFailed. On success the form is reset and the returned status
// carries the confirmation message.
func (f *Form) Submit(ctx context.Context) (model.Status, error) {
	f.mu.Lock()
	if f.status.Kind == model.StatusSending {
		status := f.status
		f.mu.Unlock()
		f.logger.Debug("submit ignored while sending")
		return status, ErrSubmitInFlight
	}

	f.touched = model.AllTouched()
	f.errors = f.validator.All(f.values)
	if !f.errors.Empty() {
		invalid := &ValidationError{Errors: f.errors.Clone()}
		state := f.snapshotLocked()
		f.mu.Unlock()

		f.logger.Info("submit rejected", zap.Strings("fields", errorFields(invalid.Errors)))
		f.notify(state)
		return state.Status, invalid
	}

	msg := delivery.Message{
		ID:          f.nextID(),
		Values:      f.values,
		SubmittedAt: f.now(),
	}
	f.status = model.Status{Kind: model.StatusSending}
	state := f.snapshotLocked()
	f.mu.Unlock()

	f.logger.Info("submitting message", zap.String("attempt", msg.ID))
	f.notify(state)

	err := f.deliver(ctx, msg)

	f.mu.Lock()
	if err != nil {
		f.status = model.Status{Kind: model.StatusFailed, Message: f.failureMessage}
	} else {
		f.status = model.Status{
			Kind:    model.StatusSucceeded,
			Message: fmt.Sprintf(f.successFormat, msg.Values.Email),
		}
		f.values = model.Values{}
		f.touched = model.Touched{}
		f.errors = nil
	}
	state = f.snapshotLocked()
	f.mu.Unlock()

	f.notify(state)

	if err != nil {
		f.logger.Warn("message delivery failed", zap.String("attempt", msg.ID), zap.Error(err))
		return state.Status, fmt.Errorf("%w: %w", ErrDeliveryFailed, err)
	}
	f.logger.Info("message delivered", zap.String("attempt", msg.ID))
	return state.Status, nil
}

func (f *Form) deliver(ctx context.Context, msg delivery.Message) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("deliverer panic: %v", r)
		}
	}()
	return f.deliverer.Deliver(ctx, msg)
}

func (f *Form) validateFieldLocked(field model.Field) {
	msg, failed := f.validator.Field(f.values, field)
	if !failed {
		delete(f.errors, field)
		return
	}
	if f.errors == nil {
		f.errors = make(model.Errors, 1)
	}
	f.errors[field] = msg
}

func (f *Form) snapshotLocked() model.State {
	return model.State{
		Values:  f.values,
		Touched: f.touched,
		Errors:  f.errors.Clone(),
		Status:  f.status,
	}
}

func (f *Form) notify(state model.State) {
	for _, sink := range f.sinks {
		sink.Render(state)
	}
}

func errorFields(errs model.Errors) []string {
	out := make([]string, 0, len(errs))
	for field := range errs {
		out = append(out, field.String())
	}
	sort.Strings(out)
	return out
}
