package validation

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf16"

	"github.com/goliatone/go-contactform/pkg/model"
)

// Messages shown to the user. They are part of the form's contract and are
// compared verbatim by renderers and tests.
const (
	MessageNameRequired    = "Name is required"
	MessageEmailRequired   = "Email is required"
	MessageEmailInvalid    = "Please enter a valid email address"
	MessageMessageRequired = "Message is required"
	MessageMessageTooShort = "Message must be at least 10 characters"
)

// MinMessageLength is the minimum trimmed length of the message field.
const MinMessageLength = 10

// Validator tags registered on the underlying validator.
const (
	tagNotBlank     = "notblank"
	tagContactEmail = "contactemail"
	tagTrimmedMin   = "trimmedmin"
)

// emailPattern is a shape check (local@domain.tld), not RFC validation. The
// negated class covers ASCII whitespace, vertical tab, Unicode separators and
// the byte order mark.
var emailPattern = regexp.MustCompile(`^[^\s\v\p{Z}\x{FEFF}@]+@[^\s\v\p{Z}\x{FEFF}@]+\.[^\s\v\p{Z}\x{FEFF}@]+$`)

// fieldTags holds the tag chain evaluated for each field. The validator stops
// at the first failing tag, so order encodes rule precedence.
var fieldTags = map[model.Field]string{
	model.FieldName:    tagNotBlank,
	model.FieldEmail:   tagNotBlank + "," + tagContactEmail,
	model.FieldMessage: tagNotBlank + "," + tagTrimmedMin + "=10",
}

// defaultMessages is keyed "<field>.<tag>".
var defaultMessages = map[string]string{
	"name." + tagNotBlank:      MessageNameRequired,
	"email." + tagNotBlank:     MessageEmailRequired,
	"email." + tagContactEmail: MessageEmailInvalid,
	"message." + tagNotBlank:   MessageMessageRequired,
	"message." + tagTrimmedMin: MessageMessageTooShort,
}

// Trim removes leading and trailing whitespace, including the byte order mark.
func Trim(value string) string {
	return strings.TrimFunc(value, isSpace)
}

// MatchesEmail reports whether value has the local@domain.tld shape.
func MatchesEmail(value string) bool {
	return emailPattern.MatchString(value)
}

// TrimmedLength counts the trimmed value in UTF-16 code units, the unit the
// browser form used for its length check.
func TrimmedLength(value string) int {
	return len(utf16.Encode([]rune(Trim(value))))
}

// isSpace matches the browser's trim set: Unicode separators, the ASCII
// control whitespace and the byte order mark. NEL (U+0085) is not included.
func isSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', '\uFEFF':
		return true
	}
	return unicode.Is(unicode.Z, r)
}
