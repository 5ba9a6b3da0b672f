package render

import (
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-contactform/pkg/model"
	"github.com/goliatone/go-contactform/pkg/motion"
)

// RenderOptions carries per-render data. The zero value renders an empty idle
// form without contact details, theme or motion attributes.
type RenderOptions struct {
	// State is the snapshot to display. Field errors are shown only for
	// touched fields.
	State model.State
	// Contact lists the direct contact channels. Empty details are skipped.
	Contact model.ContactDetails
	// Theme is the resolved go-theme configuration.
	Theme *theme.RendererConfig
	// Motion holds the animation presets serialised into data attributes.
	Motion *motion.Set
	// Hidden adds hidden inputs (CSRF tokens and the like) to the form.
	Hidden map[string]string
}
