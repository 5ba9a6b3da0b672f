package tui

import (
	"go.uber.org/zap"

	"github.com/goliatone/go-contactform/pkg/clipboard"
	"github.com/goliatone/go-contactform/pkg/model"
)

// Style holds the prefixes printed in front of session messages.
type Style struct {
	InfoPrefix    string
	ErrorPrefix   string
	SuccessPrefix string
}

// DefaultStyle is the plain-text style used when none is configured.
func DefaultStyle() Style {
	return Style{InfoPrefix: "", ErrorPrefix: "✗ ", SuccessPrefix: "✓ "}
}

// Option configures a Session.
type Option func(*Session)

// WithPromptDriver overrides the survey driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithStyle applies message prefixes.
func WithStyle(style Style) Option {
	return func(s *Session) {
		s.style = style
	}
}

// WithContact sets the details offered in the menu.
func WithContact(details model.ContactDetails) Option {
	return func(s *Session) {
		s.contact = details
	}
}

// WithClipboardWriter replaces the system clipboard.
func WithClipboardWriter(w clipboard.Writer) Option {
	return func(s *Session) {
		if w != nil {
			s.clipboardWriter = w
		}
	}
}

// WithLogger sets the session logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}
