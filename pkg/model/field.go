package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownField is returned when a caller names a field the contact form
// does not have.
var ErrUnknownField = errors.New("model: unknown field")

// Field identifies one of the contact form inputs. The string value matches
// the input name used by renderers and the JSON payload.
type Field string

const (
	FieldName    Field = "name"
	FieldEmail   Field = "email"
	FieldMessage Field = "message"
)

// Fields returns the form fields in display order.
func Fields() []Field {
	return []Field{FieldName, FieldEmail, FieldMessage}
}

// ParseField resolves a case-insensitive field name.
func ParseField(raw string) (Field, error) {
	field := Field(strings.ToLower(strings.TrimSpace(raw)))
	if !field.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownField, raw)
	}
	return field, nil
}

// Valid reports whether f names a contact form field.
func (f Field) Valid() bool {
	switch f {
	case FieldName, FieldEmail, FieldMessage:
		return true
	default:
		return false
	}
}

func (f Field) String() string {
	return string(f)
}

// Values holds the raw text of each field exactly as typed.
type Values struct {
	Name    string `json:"name" yaml:"name"`
	Email   string `json:"email" yaml:"email"`
	Message string `json:"message" yaml:"message"`
}

// Get returns the value for field. Unknown fields read as empty.
func (v Values) Get(field Field) string {
	switch field {
	case FieldName:
		return v.Name
	case FieldEmail:
		return v.Email
	case FieldMessage:
		return v.Message
	default:
		return ""
	}
}

// Set stores value for field.
func (v *Values) Set(field Field, value string) error {
	switch field {
	case FieldName:
		v.Name = value
	case FieldEmail:
		v.Email = value
	case FieldMessage:
		v.Message = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

// Map returns the values keyed by field name, the shape renderers and
// template contexts consume.
func (v Values) Map() map[string]string {
	return map[string]string{
		FieldName.String():    v.Name,
		FieldEmail.String():   v.Email,
		FieldMessage.String(): v.Message,
	}
}

// Touched records which fields the user has interacted with.
type Touched struct {
	Name    bool `json:"name"`
	Email   bool `json:"email"`
	Message bool `json:"message"`
}

// AllTouched returns a Touched value with every flag set, the state a submit
// attempt leaves behind.
func AllTouched() Touched {
	return Touched{Name: true, Email: true, Message: true}
}

// Get reports whether field has been touched.
func (t Touched) Get(field Field) bool {
	switch field {
	case FieldName:
		return t.Name
	case FieldEmail:
		return t.Email
	case FieldMessage:
		return t.Message
	default:
		return false
	}
}

// Mark flags field as touched.
func (t *Touched) Mark(field Field) error {
	switch field {
	case FieldName:
		t.Name = true
	case FieldEmail:
		t.Email = true
	case FieldMessage:
		t.Message = true
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

// Errors maps a field to its current validation message. A missing key means
// the field is valid.
type Errors map[Field]string

// Get returns the message for field and whether one is present.
func (e Errors) Get(field Field) (string, bool) {
	msg, ok := e[field]
	return msg, ok
}

// Empty reports whether no field has an error.
func (e Errors) Empty() bool {
	return len(e) == 0
}

// Clone returns an independent copy. A nil or empty map clones to nil.
func (e Errors) Clone() Errors {
	if len(e) == 0 {
		return nil
	}
	out := make(Errors, len(e))
	for field, msg := range e {
		out[field] = msg
	}
	return out
}

// VisibleErrors returns the subset of errors whose field has been touched.
// Visibility is always derived; it is never stored alongside the errors.
func VisibleErrors(errs Errors, touched Touched) Errors {
	if len(errs) == 0 {
		return nil
	}
	out := make(Errors, len(errs))
	for field, msg := range errs {
		if touched.Get(field) {
			out[field] = msg
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
