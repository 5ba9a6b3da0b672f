package model

// StatusKind enumerates the submission states.
type StatusKind string

const (
	StatusIdle      StatusKind = "idle"
	StatusSending   StatusKind = "sending"
	StatusSucceeded StatusKind = "succeeded"
	StatusFailed    StatusKind = "failed"
)

// Status is the submission status shown in the banner. Message is only set
// for Succeeded and Failed.
type Status struct {
	Kind    StatusKind `json:"kind"`
	Message string     `json:"message,omitempty"`
}

// IdleStatus is the status a fresh form starts with.
func IdleStatus() Status {
	return Status{Kind: StatusIdle}
}

// Banner reports whether the status carries a message worth displaying.
func (s Status) Banner() bool {
	return (s.Kind == StatusSucceeded || s.Kind == StatusFailed) && s.Message != ""
}

// State is a point-in-time copy of the form handed to render sinks.
type State struct {
	Values  Values  `json:"values"`
	Touched Touched `json:"touched"`
	Errors  Errors  `json:"errors,omitempty"`
	Status  Status  `json:"status"`
}

// Sending reports whether a submission is outstanding; renderers disable the
// submit control while it is true.
func (s State) Sending() bool {
	return s.Status.Kind == StatusSending
}

// Visible returns the errors a renderer should display.
func (s State) Visible() Errors {
	return VisibleErrors(s.Errors, s.Touched)
}

// FieldError returns the visible error for field, if any.
func (s State) FieldError(field Field) (string, bool) {
	if !s.Touched.Get(field) {
		return "", false
	}
	return s.Errors.Get(field)
}
