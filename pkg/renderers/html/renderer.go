// Package html renders the contact section as an HTML fragment using pongo2
// templates. Field errors appear only for touched fields and the submit button
// is disabled while a submission is in flight.
package html

import (
	"context"
	"fmt"
	"io/fs"

	"go.uber.org/zap"

	"github.com/goliatone/go-contactform/pkg/model"
	"github.com/goliatone/go-contactform/pkg/render"
	rendertemplate "github.com/goliatone/go-contactform/pkg/render/template"
	"github.com/goliatone/go-contactform/pkg/render/template/gotemplate"
)

// Name is the registry name of the renderer.
const Name = "html"

// Partial keys looked up in the theme configuration.
const (
	PartialForm    = "contact.form"
	PartialField   = "contact.field"
	PartialStatus  = "contact.status"
	PartialDetails = "contact.details"
)

// Fallbacks maps each partial key to its built-in template.
func Fallbacks() map[string]string {
	return map[string]string{
		PartialForm:    "form.tmpl",
		PartialField:   "field.tmpl",
		PartialStatus:  "status.tmpl",
		PartialDetails: "details.tmpl",
	}
}

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateDir      string
	templateRenderer rendertemplate.TemplateRenderer
	logger           *zap.Logger
}

// WithTemplatesFS replaces the embedded template bundle.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk first, falling
// back to the bundle for anything it does not define.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		cfg.templateDir = path
	}
}

// WithTemplateRenderer injects a template engine.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithLogger sets the logger used for render diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// Renderer implements render.Renderer.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
	logger    *zap.Logger
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the renderer.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS(), logger: zap.NewNop()}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	engine := cfg.templateRenderer
	if engine == nil {
		built, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithBaseDir(cfg.templateDir),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("html renderer: configure template renderer: %w", err)
		}
		engine = built
	}
	return &Renderer{templates: engine, logger: cfg.logger}, nil
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render produces the contact section for form in the state carried by
// options.
func (r *Renderer) Render(ctx context.Context, form model.FormModel, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.templates == nil {
		return nil, fmt.Errorf("html renderer: template renderer is nil")
	}

	partials := Fallbacks()
	if options.Theme != nil {
		for key, name := range options.Theme.Partials {
			if _, ok := partials[key]; ok && name != "" {
				partials[key] = name
			}
		}
	}

	state := options.State
	sending := state.Sending()
	motionView := buildMotion(options.Motion)

	var fieldsHTML string
	for _, field := range buildFields(form, state) {
		out, err := r.templates.RenderTemplate(partials[PartialField], map[string]any{"field": field})
		if err != nil {
			return nil, fmt.Errorf("html renderer: render field %s: %w", field.Name, err)
		}
		fieldsHTML += out
	}

	var statusHTML string
	if status := buildStatus(state.Status); status != nil {
		out, err := r.templates.RenderTemplate(partials[PartialStatus], map[string]any{
			"status": status,
			"motion": motionView,
		})
		if err != nil {
			return nil, fmt.Errorf("html renderer: render status: %w", err)
		}
		statusHTML = out
	}

	var detailsHTML string
	if details := buildDetails(options.Contact, options.Motion); len(details) > 0 {
		out, err := r.templates.RenderTemplate(partials[PartialDetails], map[string]any{"details": details})
		if err != nil {
			return nil, fmt.Errorf("html renderer: render details: %w", err)
		}
		detailsHTML = out
	}

	page := pageView{
		Form:        buildForm(form),
		Hidden:      buildHidden(options.Hidden),
		Sending:     sending,
		SubmitLabel: submitLabel(form, sending),
		Theme:       buildTheme(options.Theme),
		Motion:      motionView,
		FieldsHTML:  fieldsHTML,
		StatusHTML:  statusHTML,
		DetailsHTML: detailsHTML,
	}
	out, err := r.templates.RenderTemplate(partials[PartialForm], page)
	if err != nil {
		return nil, fmt.Errorf("html renderer: render form: %w", err)
	}

	r.logger.Debug("rendered contact form",
		zap.String("operation", form.OperationID),
		zap.String("status", string(state.Status.Kind)),
		zap.Int("visible_errors", len(state.Visible())),
	)
	return []byte(out), nil
}
