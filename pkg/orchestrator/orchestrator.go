package orchestrator

import (
	"context"
	"errors"
	"fmt"

	theme "github.com/goliatone/go-theme"
	"go.uber.org/zap"

	"github.com/goliatone/go-contactform/pkg/model"
	"github.com/goliatone/go-contactform/pkg/motion"
	"github.com/goliatone/go-contactform/pkg/render"
	"github.com/goliatone/go-contactform/pkg/renderers/html"
	"github.com/goliatone/go-contactform/pkg/schema"
	contacttheme "github.com/goliatone/go-contactform/pkg/theme"
)

const defaultRendererName = html.Name

// ThemeSelector resolves a theme name and variant into a go-theme selection.
type ThemeSelector interface {
	Select(name, variant string, opts ...theme.QueryOption) (*theme.Selection, error)
}

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects the schema loader used for Request.Source.
func WithLoader(loader *schema.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits one.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithThemeSelector resolves Request.ThemeName/ThemeVariant through selector.
func WithThemeSelector(selector ThemeSelector) Option {
	return func(o *Orchestrator) {
		o.themeSelector = selector
	}
}

// WithThemeFallbacks sets the partials used when the theme omits them.
func WithThemeFallbacks(fallbacks map[string]string) Option {
	return func(o *Orchestrator) {
		o.themeFallbacks = fallbacks
	}
}

// WithMotion toggles the default animation presets.
func WithMotion(enabled bool) Option {
	return func(o *Orchestrator) {
		o.motion = enabled
	}
}

// WithLogger sets the orchestrator logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Orchestrator turns a contact operation into rendered output. Defaults are
// the embedded OpenAPI document, the HTML renderer and motion presets on.
type Orchestrator struct {
	loader          *schema.Loader
	registry        *render.Registry
	defaultRenderer string
	themeSelector   ThemeSelector
	themeFallbacks  map[string]string
	motion          bool
	logger          *zap.Logger
	initialiseErr   error
}

// New constructs an Orchestrator applying options over the defaults.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
		themeFallbacks:  html.Fallbacks(),
		motion:          true,
		logger:          zap.NewNop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(o)
		}
	}
	o.applyDefaults()
	return o
}

// Request describes one render.
type Request struct {
	// Source names an OpenAPI document; Document takes precedence, and with
	// neither set the embedded document is used.
	Source   schema.Source
	Document *schema.Document

	// OperationID defaults to schema.DefaultOperationID.
	OperationID string

	// Renderer falls back to the configured default renderer.
	Renderer string

	// ThemeName and ThemeVariant are resolved through the theme selector when
	// RenderOptions.Theme is nil.
	ThemeName    string
	ThemeVariant string

	RenderOptions render.RenderOptions
}

// FormModel loads and builds the form model for req without rendering.
func (o *Orchestrator) FormModel(ctx context.Context, req Request) (model.FormModel, error) {
	if err := o.ready(ctx); err != nil {
		return model.FormModel{}, err
	}
	doc, err := o.resolveDocument(ctx, req)
	if err != nil {
		return model.FormModel{}, err
	}
	form, err := schema.Build(ctx, doc, req.OperationID)
	if err != nil {
		return model.FormModel{}, fmt.Errorf("orchestrator: build form model: %w", err)
	}
	return form, nil
}

// Generate builds the form model, resolves theme and motion, and renders.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	form, err := o.FormModel(ctx, req)
	if err != nil {
		return nil, err
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	options := req.RenderOptions
	if options.Theme == nil && o.themeSelector != nil {
		selection, err := o.themeSelector.Select(req.ThemeName, req.ThemeVariant)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: select theme: %w", err)
		}
		options.Theme = contacttheme.RendererConfig(selection, o.themeFallbacks)
	}
	if options.Motion == nil && o.motion {
		set := motion.Defaults(options.State.Sending())
		options.Motion = &set
	}

	output, err := renderer.Render(ctx, form, options)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	o.logger.Debug("generated contact form",
		zap.String("renderer", renderer.Name()),
		zap.String("operation", form.OperationID),
		zap.Int("bytes", len(output)),
	)
	return output, nil
}

func (o *Orchestrator) ready(ctx context.Context) error {
	if ctx == nil {
		return errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return o.initialiseErr
}

func (o *Orchestrator) resolveDocument(ctx context.Context, req Request) (schema.Document, error) {
	if req.Document != nil {
		return *req.Document, nil
	}
	src := req.Source
	loader := o.loader
	if src == nil {
		src = schema.SourceFromFS(schema.DocumentName)
		loader = schema.NewLoader(schema.Files())
	}
	doc, err := loader.Load(ctx, src)
	if err != nil {
		return schema.Document{}, fmt.Errorf("orchestrator: load document: %w", err)
	}
	return doc, nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	target := name
	if target == "" {
		target = o.defaultRenderer
	}
	renderer, err := o.registry.Get(target)
	if err == nil {
		return renderer, nil
	}
	if name != "" {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}
	return o.registry.Get(names[0])
}

func (o *Orchestrator) applyDefaults() {
	if o.loader == nil {
		o.loader = schema.NewLoader(nil)
	}
	if o.registry == nil {
		renderer, err := html.New(html.WithLogger(o.logger))
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
			return
		}
		o.registry, o.initialiseErr = render.NewRegistry(renderer)
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
}
