// Package contactform assembles the contact form from configuration: the
// validated form state machine, its deliverer, the HTML renderer with theme
// and motion, the terminal session and the clipboard helper.
package contactform

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-contactform/pkg/clipboard"
	"github.com/goliatone/go-contactform/pkg/config"
	"github.com/goliatone/go-contactform/pkg/delivery"
	"github.com/goliatone/go-contactform/pkg/form"
	"github.com/goliatone/go-contactform/pkg/model"
	"github.com/goliatone/go-contactform/pkg/orchestrator"
	"github.com/goliatone/go-contactform/pkg/render"
	"github.com/goliatone/go-contactform/pkg/renderers/tui"
	"github.com/goliatone/go-contactform/pkg/schema"
	"github.com/goliatone/go-contactform/pkg/theme"
)

// RenderOptions aliases render.RenderOptions for callers of Render.
type RenderOptions = render.RenderOptions

// Option customises an App.
type Option func(*App)

// WithLogger sets the logger shared by every component.
func WithLogger(logger *zap.Logger) Option {
	return func(a *App) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithDeliverer replaces the simulated deliverer.
func WithDeliverer(deliverer delivery.Deliverer) Option {
	return func(a *App) {
		if deliverer != nil {
			a.deliverer = deliverer
		}
	}
}

// WithSchemaFile loads the contact operation from an OpenAPI file instead of
// the embedded document.
func WithSchemaFile(path string) Option {
	return func(a *App) {
		if path = strings.TrimSpace(path); path != "" {
			a.source = schema.SourceFromFile(path)
		}
	}
}

// WithClipboardWriter replaces the system clipboard.
func WithClipboardWriter(w clipboard.Writer) Option {
	return func(a *App) {
		a.clipboardWriter = w
	}
}

// App is the configured contact form.
type App struct {
	cfg             config.Config
	logger          *zap.Logger
	deliverer       delivery.Deliverer
	source          schema.Source
	clipboardWriter clipboard.Writer

	selector     *theme.Selector
	orchestrator *orchestrator.Orchestrator
}

// New validates cfg and wires the components.
func New(cfg config.Config, options ...Option) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	app := &App{cfg: cfg, logger: zap.NewNop()}
	for _, opt := range options {
		if opt != nil {
			opt(app)
		}
	}
	if app.deliverer == nil {
		app.deliverer = delivery.NewSimulated(
			delivery.WithDelay(cfg.Delivery.Delay),
			delivery.WithLogger(app.logger),
		)
	}

	selector, err := theme.NewSelector(cfg.Theme.Name, cfg.Theme.Variant)
	if err != nil {
		return nil, fmt.Errorf("contactform: %w", err)
	}
	app.selector = selector
	app.orchestrator = orchestrator.New(
		orchestrator.WithThemeSelector(selector),
		orchestrator.WithLogger(app.logger),
	)
	return app, nil
}

// Config returns the configuration the app was built with.
func (a *App) Config() config.Config {
	return a.cfg
}

// FormModel builds the presentation model of the contact operation.
func (a *App) FormModel(ctx context.Context) (model.FormModel, error) {
	return a.orchestrator.FormModel(ctx, orchestrator.Request{Source: a.source})
}

// NewForm returns a fresh form state machine bound to the app's deliverer and
// configured messages.
func (a *App) NewForm(sinks ...form.Sink) (*form.Form, error) {
	options := []form.Option{
		form.WithLogger(a.logger),
		form.WithMessages(a.cfg.Delivery.SuccessFormat, a.cfg.Delivery.FailureMessage),
	}
	for _, sink := range sinks {
		options = append(options, form.WithSink(sink))
	}
	return form.New(a.deliverer, options...)
}

// RenderRequest selects what Render draws.
type RenderRequest struct {
	State        model.State
	ThemeName    string
	ThemeVariant string
	Hidden       map[string]string
}

// Render draws the contact section as HTML for state.
func (a *App) Render(ctx context.Context, req RenderRequest) ([]byte, error) {
	return a.orchestrator.Generate(ctx, orchestrator.Request{
		Source:       a.source,
		ThemeName:    req.ThemeName,
		ThemeVariant: req.ThemeVariant,
		RenderOptions: RenderOptions{
			State:   req.State,
			Contact: a.cfg.Contact.Details(),
			Hidden:  req.Hidden,
		},
	})
}

// RunSession starts the interactive terminal session.
func (a *App) RunSession(ctx context.Context, options ...tui.Option) error {
	spec, err := a.FormModel(ctx)
	if err != nil {
		return err
	}

	base := []tui.Option{
		tui.WithContact(a.cfg.Contact.Details()),
		tui.WithLogger(a.logger),
	}
	if a.clipboardWriter != nil {
		base = append(base, tui.WithClipboardWriter(a.clipboardWriter))
	}
	session := tui.NewSession(spec, append(base, options...)...)

	f, err := a.NewForm(session)
	if err != nil {
		return err
	}
	return session.Run(ctx, f)
}

// CopyEmail copies the configured address and reports through notify.
func (a *App) CopyEmail(ctx context.Context, notify clipboard.Notifier) error {
	options := []clipboard.Option{clipboard.WithLogger(a.logger)}
	if a.clipboardWriter != nil {
		options = append(options, clipboard.WithWriter(a.clipboardWriter))
	}
	return clipboard.New(notify, options...).Copy(ctx, a.cfg.Contact.Email)
}
