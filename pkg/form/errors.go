package form

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-contactform/pkg/model"
)

var (
	// ErrSubmitInFlight is returned when Submit is called while a previous
	// submission is still outstanding. The call has no effect.
	ErrSubmitInFlight = errors.New("form: submission in flight")
	// ErrInvalid is wrapped by ValidationError.
	ErrInvalid = errors.New("form: invalid input")
	// ErrDeliveryFailed wraps deliverer failures.
	ErrDeliveryFailed = errors.New("form: delivery failed")
	// ErrNoDeliverer is returned by New when no deliverer is supplied.
	ErrNoDeliverer = errors.New("form: deliverer is required")
	// ErrSuccessFormat is returned when the success format cannot embed the
	// submitted address.
	ErrSuccessFormat = errors.New("form: success format must embed the address with a single %s")
)

// formatProbeAddress is substituted into success formats to check them.
const formatProbeAddress = "someone@example.invalid"

// CheckSuccessFormat reports whether format consumes exactly one string
// argument and shows it verbatim. Formats with other verbs, a missing verb or
// several verbs are rejected.
func CheckSuccessFormat(format string) error {
	out := fmt.Sprintf(format, formatProbeAddress)
	if strings.Contains(out, "%!") || !strings.Contains(out, formatProbeAddress) {
		return fmt.Errorf("%w: %q", ErrSuccessFormat, format)
	}
	return nil
}

// ValidationError reports the field errors that blocked a submit attempt.
type ValidationError struct {
	Errors model.Errors
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalid.Error(), strings.Join(errorFields(e.Errors), ", "))
}

// Unwrap exposes ErrInvalid to errors.Is.
func (e *ValidationError) Unwrap() error {
	return ErrInvalid
}
