// Package render defines the contract shared by the contact form renderers
// and the helpers they have in common: the renderer registry, hidden-field
// handling and markup sanitising.
package render

import (
	"context"

	"github.com/goliatone/go-contactform/pkg/model"
)

// Renderer converts a FormModel and the current form state into bytes.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, form model.FormModel, options RenderOptions) ([]byte, error)
}
