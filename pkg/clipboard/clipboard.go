// Package clipboard copies contact details to the system clipboard and
// acknowledges the copy to the user.
package clipboard

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/atotto/clipboard"
	"go.uber.org/zap"
)

var (
	// ErrCopyFailed wraps failures reported by the platform clipboard.
	ErrCopyFailed = errors.New("clipboard: copy failed")
	// ErrUnsupported is wrapped when no platform clipboard utility exists.
	ErrUnsupported = errors.New("clipboard: unsupported on this platform")
)

// platformUnsupported is swapped in tests.
var platformUnsupported = func() bool { return clipboard.Unsupported }

// Writer stores text on the clipboard.
type Writer func(text string) error

// Notifier delivers the acknowledgment and returns once the user has seen it.
type Notifier interface {
	Notify(ctx context.Context, message string) error
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, message string) error

// Notify calls f.
func (f NotifierFunc) Notify(ctx context.Context, message string) error {
	return f(ctx, message)
}

// WriterNotifier prints acknowledgments to an io.Writer, one per line.
func WriterNotifier(w io.Writer) Notifier {
	return NotifierFunc(func(ctx context.Context, message string) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		_, err := fmt.Fprintln(w, message)
		return err
	})
}

// Copier writes text to the clipboard and then acknowledges it.
type Copier struct {
	write    Writer
	platform bool
	notify   Notifier
	logger   *zap.Logger
}

// Option configures a Copier.
type Option func(*Copier)

// WithWriter overrides the clipboard backend.
func WithWriter(w Writer) Option {
	return func(c *Copier) {
		if w != nil {
			c.write = w
			c.platform = false
		}
	}
}

// WithLogger attaches a logger used for copy failures.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Copier) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New constructs a Copier backed by the system clipboard.
func New(notify Notifier, options ...Option) *Copier {
	c := &Copier{
		write:    clipboard.WriteAll,
		platform: true,
		notify:   notify,
		logger:   zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c
}

// Supported reports whether the platform clipboard is usable.
func Supported() bool {
	return !platformUnsupported()
}

// Acknowledgment is the message shown after a successful copy.
func Acknowledgment(text string) string {
	return fmt.Sprintf("Copied %s to clipboard!", text)
}

// Copy writes text to the clipboard and waits for the acknowledgment to be
// delivered.
func (c *Copier) Copy(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if c.platform && !Supported() {
		c.logger.Warn("clipboard unavailable")
		return fmt.Errorf("%w: %w", ErrCopyFailed, ErrUnsupported)
	}

	if err := c.write(text); err != nil {
		c.logger.Error("failed to copy text", zap.Error(err))
		return fmt.Errorf("%w: %w", ErrCopyFailed, err)
	}

	if c.notify == nil {
		return nil
	}
	if err := c.notify.Notify(ctx, Acknowledgment(text)); err != nil {
		return fmt.Errorf("clipboard: acknowledge: %w", err)
	}
	return nil
}
