package validation_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-contactform/pkg/model"
	"github.com/goliatone/go-contactform/pkg/validation"
)

func TestValidatorField_Rules(t *testing.T) {
	v := validation.New()

	cases := []struct {
		name   string
		field  model.Field
		values model.Values
		want   string
	}{
		{name: "name empty", field: model.FieldName, values: model.Values{}, want: validation.MessageNameRequired},
		{name: "name whitespace", field: model.FieldName, values: model.Values{Name: " \t\n"}, want: validation.MessageNameRequired},
		{name: "name ok", field: model.FieldName, values: model.Values{Name: "Alice"}},
		{name: "email empty", field: model.FieldEmail, values: model.Values{}, want: validation.MessageEmailRequired},
		{name: "email blank", field: model.FieldEmail, values: model.Values{Email: "   "}, want: validation.MessageEmailRequired},
		{name: "email no at", field: model.FieldEmail, values: model.Values{Email: "bad"}, want: validation.MessageEmailInvalid},
		{name: "email no tld", field: model.FieldEmail, values: model.Values{Email: "a@b"}, want: validation.MessageEmailInvalid},
		{name: "email double at", field: model.FieldEmail, values: model.Values{Email: "a@@b.com"}, want: validation.MessageEmailInvalid},
		{name: "email inner space", field: model.FieldEmail, values: model.Values{Email: "a b@c.com"}, want: validation.MessageEmailInvalid},
		{name: "email padded", field: model.FieldEmail, values: model.Values{Email: " a@b.com"}, want: validation.MessageEmailInvalid},
		{name: "email ok", field: model.FieldEmail, values: model.Values{Email: "a@b.com"}},
		{name: "email subdomain ok", field: model.FieldEmail, values: model.Values{Email: "first.last@mail.example.co"}},
		{name: "message empty", field: model.FieldMessage, values: model.Values{}, want: validation.MessageMessageRequired},
		{name: "message short", field: model.FieldMessage, values: model.Values{Message: "short"}, want: validation.MessageMessageTooShort},
		{name: "message padded short", field: model.FieldMessage, values: model.Values{Message: "   123456789   "}, want: validation.MessageMessageTooShort},
		{name: "message exact", field: model.FieldMessage, values: model.Values{Message: "0123456789"}},
		{name: "message long", field: model.FieldMessage, values: model.Values{Message: "Hello, this is long enough"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, failed := v.Field(tc.values, tc.field)
			if failed != (tc.want != "") {
				t.Fatalf("failed=%v, want error %q (got %q)", failed, tc.want, got)
			}
			if got != tc.want {
				t.Fatalf("message mismatch: want %q, got %q", tc.want, got)
			}
		})
	}
}

func TestValidatorAll_AgreesWithField(t *testing.T) {
	v := validation.New()

	samples := []string{"", " ", "bad", "a@b.com", "x@y", "short", "Hello, this is long enough", " a@b.com ", "0123456789"}
	for _, name := range samples {
		for _, email := range samples {
			for _, message := range samples {
				values := model.Values{Name: name, Email: email, Message: message}
				all := v.All(values)
				for _, field := range model.Fields() {
					single, failed := v.Field(values, field)
					fromAll, inAll := all.Get(field)
					if failed != inAll || single != fromAll {
						t.Fatalf("field %s disagrees for %+v: Field=(%q,%v) All=(%q,%v)", field, values, single, failed, fromAll, inAll)
					}
				}
			}
		}
	}
}

func TestValidatorAll_InvalidForm(t *testing.T) {
	got := validation.New().All(model.Values{Name: "", Email: "bad", Message: "short"})
	want := model.Errors{
		model.FieldName:    validation.MessageNameRequired,
		model.FieldEmail:   validation.MessageEmailInvalid,
		model.FieldMessage: validation.MessageMessageTooShort,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestValidatorAll_ValidFormReturnsNil(t *testing.T) {
	got := validation.New().All(model.Values{Name: "Alice", Email: "a@b.com", Message: "Hello, this is long enough"})
	if got != nil {
		t.Fatalf("expected nil errors, got %v", got)
	}
}

func TestTrimmedLength_CountsUTF16Units(t *testing.T) {
	if got := validation.TrimmedLength("  héllo  "); got != 5 {
		t.Fatalf("expected 5, got %d", got)
	}
	// Astral characters count twice, matching the browser's length.
	if got := validation.TrimmedLength(strings.Repeat("😀", 5)); got != 10 {
		t.Fatalf("expected 10, got %d", got)
	}
}

func TestTrim_BrowserWhitespaceSet(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{name: "ascii controls", input: "\t\n\v\f\r x \r\n", want: "x"},
		{name: "no-break space", input: "\u00a0x\u00a0", want: "x"},
		{name: "ideographic space", input: "\u3000x", want: "x"},
		{name: "line and paragraph separators", input: "\u2028x\u2029", want: "x"},
		{name: "byte order mark", input: "\uFEFFx", want: "x"},
		{name: "next line is kept", input: "\u0085x\u0085", want: "\u0085x\u0085"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := validation.Trim(tc.input); got != tc.want {
				t.Fatalf("Trim(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestValidatorField_NextLineIsNotBlank(t *testing.T) {
	v := validation.New()

	if msg, failed := v.Field(model.Values{Name: "\u0085"}, model.FieldName); failed {
		t.Fatalf("expected NEL name to pass, got %q", msg)
	}
	if msg, failed := v.Field(model.Values{Message: "\u0085123456789"}, model.FieldMessage); failed {
		t.Fatalf("expected NEL to count toward the message length, got %q", msg)
	}
	if got := validation.TrimmedLength("\u0085"); got != 1 {
		t.Fatalf("expected 1, got %d", got)
	}
}

func TestWithMessagesOverrides(t *testing.T) {
	v := validation.New(validation.WithMessages(map[string]string{
		"name.notblank": "Tell us who you are",
		"":              "ignored",
	}))
	got, failed := v.Field(model.Values{}, model.FieldName)
	if !failed || got != "Tell us who you are" {
		t.Fatalf("expected override, got %q %v", got, failed)
	}
	if got, _ := v.Field(model.Values{}, model.FieldEmail); got != validation.MessageEmailRequired {
		t.Fatalf("expected default email message, got %q", got)
	}
}

type structSample struct {
	Contact struct {
		Email string `json:"email" validate:"required,email"`
	} `json:"contact"`
	Level string `json:"level" validate:"oneof=debug info"`
}

func TestStruct_GroupsByJSONPath(t *testing.T) {
	var sample structSample
	sample.Level = "trace"

	got := validation.Struct(sample, map[string]string{
		"contact.email.required": "contact email is required",
	})
	want := map[string][]string{
		"contact.email": {"contact email is required"},
		"level":         {"failed oneof=debug info"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("struct errors mismatch (-want +got):\n%s", diff)
	}
}
