package schema

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Document is a raw OpenAPI payload and its origin.
type Document struct {
	Source Source
	Raw    []byte
}

// Location returns the origin identifier.
func (d Document) Location() string {
	if d.Source == nil {
		return ""
	}
	return d.Source.Location()
}

// Loader reads documents from disk or from an fs.FS.
type Loader struct {
	fs fs.FS
}

// NewLoader returns a Loader resolving SourceKindFS entries against files.
// Passing nil leaves only on-disk sources available.
func NewLoader(files fs.FS) *Loader {
	return &Loader{fs: files}
}

// Load fetches the document identified by src.
func (l *Loader) Load(ctx context.Context, src Source) (Document, error) {
	if src == nil {
		return Document{}, errors.New("schema loader: source is nil")
	}
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}

	var (
		data []byte
		err  error
	)
	switch src.Kind() {
	case SourceKindFile:
		data, err = os.ReadFile(src.Location())
	case SourceKindFS:
		if l.fs == nil {
			return Document{}, errors.New("schema loader: filesystem is not configured")
		}
		data, err = fs.ReadFile(l.fs, src.Location())
	default:
		err = fmt.Errorf("schema loader: unsupported source kind %q", src.Kind())
	}
	if err != nil {
		return Document{}, fmt.Errorf("schema loader: %s: %w", src.Location(), err)
	}
	if len(data) == 0 {
		return Document{}, fmt.Errorf("schema loader: %s: document is empty", src.Location())
	}
	return Document{Source: src, Raw: data}, nil
}
