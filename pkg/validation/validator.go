package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/goliatone/go-contactform/pkg/model"
)

var (
	engineInstance *validator.Validate
	engineOnce     sync.Once
)

// engine returns the shared validator with the contact form tags registered
// and JSON tag names used for field identifiers.
func engine() *validator.Validate {
	engineOnce.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		for tag, fn := range map[string]validator.Func{
			tagNotBlank:     notBlank,
			tagContactEmail: contactEmail,
			tagTrimmedMin:   trimmedMin,
		} {
			if err := v.RegisterValidation(tag, fn); err != nil {
				panic(fmt.Sprintf("validation: register %q: %v", tag, err))
			}
		}
		engineInstance = v
	})
	return engineInstance
}

func notBlank(fl validator.FieldLevel) bool {
	return Trim(fl.Field().String()) != ""
}

func contactEmail(fl validator.FieldLevel) bool {
	return MatchesEmail(fl.Field().String())
}

func trimmedMin(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return TrimmedLength(fl.Field().String()) >= limit
}

// Validator evaluates the contact form rules. It is safe for concurrent use.
type Validator struct {
	validate *validator.Validate
	messages map[string]string
}

// Option configures a Validator.
type Option func(*Validator)

// WithMessages overrides user-facing messages. Keys use the "<field>.<tag>"
// form, for example "email.contactemail".
func WithMessages(messages map[string]string) Option {
	return func(v *Validator) {
		for key, msg := range messages {
			key = strings.TrimSpace(key)
			if key == "" || strings.TrimSpace(msg) == "" {
				continue
			}
			v.messages[key] = msg
		}
	}
}

// New constructs a Validator with the default messages.
func New(options ...Option) *Validator {
	v := &Validator{
		validate: engine(),
		messages: make(map[string]string, len(defaultMessages)),
	}
	for key, msg := range defaultMessages {
		v.messages[key] = msg
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(v)
	}
	return v
}

// Field evaluates the rule for a single field and returns the message of the
// first failing check. Unknown fields never report an error.
func (v *Validator) Field(values model.Values, field model.Field) (string, bool) {
	tags, ok := fieldTags[field]
	if !ok {
		return "", false
	}

	err := v.validate.Var(values.Get(field), tags)
	if err == nil {
		return "", false
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return v.message(field, fieldErrs[0].Tag()), true
	}
	return err.Error(), true
}

// All evaluates every field and returns the complete error mapping, or nil
// when the form is valid. It goes through Field for each entry so both paths
// always agree.
func (v *Validator) All(values model.Values) model.Errors {
	errs := make(model.Errors, len(fieldTags))
	for _, field := range model.Fields() {
		if msg, failed := v.Field(values, field); failed {
			errs[field] = msg
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func (v *Validator) message(field model.Field, tag string) string {
	if msg, ok := v.messages[field.String()+"."+tag]; ok {
		return msg
	}
	return fmt.Sprintf("%s is invalid", field)
}

// Struct validates a tagged struct (configuration, payloads) and groups the
// failures by JSON field path. Messages are looked up by "<field>.<tag>"; when
// none is registered the validator's own description is used.
func Struct(input any, messages map[string]string) map[string][]string {
	err := engine().Struct(input)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return map[string][]string{"": {err.Error()}}
	}

	out := make(map[string][]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		path := namespacePath(fe.Namespace())
		msg := messages[fe.Field()+"."+fe.Tag()]
		if msg == "" {
			msg = messages[path+"."+fe.Tag()]
		}
		if msg == "" {
			msg = describe(fe)
		}
		out[path] = append(out[path], msg)
	}
	return out
}

// namespacePath drops the top-level struct name, "Config.contact.email"
// becomes "contact.email".
func namespacePath(namespace string) string {
	if idx := strings.Index(namespace, "."); idx >= 0 {
		return namespace[idx+1:]
	}
	return namespace
}

func describe(fe validator.FieldError) string {
	if fe.Param() != "" {
		return fmt.Sprintf("failed %s=%s", fe.Tag(), fe.Param())
	}
	return fmt.Sprintf("failed %s", fe.Tag())
}
