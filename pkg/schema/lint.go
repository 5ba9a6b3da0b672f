package schema

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-contactform/pkg/model"
)

// Violation is a single x-formgen-* extension problem.
type Violation struct {
	Location string
	Message  string
}

func (v Violation) String() string {
	return v.Location + " -> " + v.Message
}

type extensionScope int

const (
	scopeOperation extensionScope = iota
	scopeField
	scopeOther
)

var (
	operationKeys = map[string]bool{"submit-label": true, "sending-label": true}
	fieldKeys     = map[string]bool{"label": true, "input-type": true, "widget": true, "rows": true, "placeholder": true}
)

// Lint reports misplaced or malformed x-formgen-* extensions in doc.
// Unrecognised keys are allowed when their value is a scalar, since Build
// keeps them as metadata. Violations are sorted by location.
func Lint(ctx context.Context, doc Document) ([]Violation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(doc.Raw)
	if err != nil {
		return nil, fmt.Errorf("schema: load %s: %w", doc.Location(), err)
	}

	var out []Violation
	if spec.Paths != nil {
		for path, item := range spec.Paths.Map() {
			if item == nil {
				continue
			}
			for method, op := range item.Operations() {
				if op == nil {
					continue
				}
				id := op.OperationID
				if id == "" {
					id = strings.ToUpper(method) + " " + path
				}
				out = append(out, lintOperation([]string{"operation", id}, op)...)
			}
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Location == out[j].Location {
			return out[i].Message < out[j].Message
		}
		return out[i].Location < out[j].Location
	})
	return out, nil
}

func lintOperation(path []string, op *openapi3.Operation) []Violation {
	out := lintExtensions(path, op.Extensions, scopeOperation)

	if op.RequestBody != nil && op.RequestBody.Value != nil {
		base := appendPath(path, "requestBody")
		out = append(out, lintExtensions(base, op.RequestBody.Value.Extensions, scopeOther)...)
		for mediaType, content := range op.RequestBody.Value.Content {
			if content == nil || content.Schema == nil || content.Schema.Value == nil {
				continue
			}
			out = append(out, lintBodySchema(appendPath(base, mediaType), content.Schema.Value)...)
		}
	}

	if op.Responses != nil {
		for code, ref := range op.Responses.Map() {
			if ref == nil || ref.Value == nil {
				continue
			}
			out = append(out, lintExtensions(appendPath(path, "responses", code), ref.Value.Extensions, scopeOther)...)
		}
	}
	return out
}

func lintBodySchema(path []string, body *openapi3.Schema) []Violation {
	out := lintExtensions(path, body.Extensions, scopeOther)
	for name, prop := range body.Properties {
		if prop == nil || prop.Value == nil {
			continue
		}
		scope := scopeOther
		if _, err := model.ParseField(name); err == nil {
			scope = scopeField
		}
		out = append(out, lintExtensions(appendPath(path, "properties."+name), prop.Value.Extensions, scope)...)
	}
	return out
}

func lintExtensions(path []string, ext map[string]any, scope extensionScope) []Violation {
	var out []Violation
	location := strings.Join(path, " > ")
	report := func(format string, args ...any) {
		out = append(out, Violation{Location: location, Message: fmt.Sprintf(format, args...)})
	}

	for raw, value := range ext {
		if !strings.HasPrefix(raw, extensionPrefix) {
			continue
		}
		key := strings.TrimPrefix(raw, extensionPrefix)
		switch {
		case key == "":
			report("extension key is empty")
			continue
		case operationKeys[key] && scope != scopeOperation:
			report("%q only applies to operations", key)
			continue
		case fieldKeys[key] && scope != scopeField:
			report("%q only applies to contact fields", key)
			continue
		}

		switch key {
		case "widget":
			widget, _ := value.(string)
			if w := model.Widget(strings.TrimSpace(widget)); w != model.WidgetInput && w != model.WidgetTextArea {
				report("widget must be %q or %q (got %v)", model.WidgetInput, model.WidgetTextArea, value)
			}
		case "rows":
			if !positiveInteger(value) {
				report("rows must be a positive integer (got %v)", value)
			}
		case "label", "input-type", "placeholder", "submit-label", "sending-label":
			if s, ok := value.(string); !ok || strings.TrimSpace(s) == "" {
				report("value for %q must be a non-empty string", key)
			}
		default:
			if !scalar(value) {
				report("value for %q must be a string, number, or boolean (got %T)", key, value)
			}
		}
	}
	return out
}

func positiveInteger(value any) bool {
	switch v := value.(type) {
	case int:
		return v > 0
	case int64:
		return v > 0
	case uint64:
		return v > 0
	case float64:
		return v > 0 && v == math.Trunc(v)
	default:
		return false
	}
}

func scalar(value any) bool {
	switch value.(type) {
	case string, bool, int, int64, uint64, float64:
		return true
	default:
		return false
	}
}

func appendPath(path []string, segments ...string) []string {
	next := append([]string(nil), path...)
	return append(next, segments...)
}
