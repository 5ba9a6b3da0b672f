package contactform

import (
	"io/fs"

	"github.com/goliatone/go-contactform/pkg/renderers/html"
	"github.com/goliatone/go-contactform/pkg/schema"
)

// EmbeddedTemplates exposes the built-in HTML templates so callers can copy
// and override single partials through a theme.
func EmbeddedTemplates() fs.FS {
	return html.TemplatesFS()
}

// EmbeddedSchema exposes the embedded OpenAPI document.
func EmbeddedSchema() fs.FS {
	return schema.Files()
}
