// Package schema describes the contact form as an OpenAPI operation and turns
// that operation into the model.FormModel renderers consume.
//
// The built-in document (contact.openapi.yaml) is embedded; callers may load an
// alternative document from disk as long as it keeps the three contact fields.
package schema

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-contactform/pkg/model"
)

const (
	// DefaultOperationID is the operation rendered when none is requested.
	DefaultOperationID = "sendContactMessage"
	// DocumentName is the embedded document's name inside Files.
	DocumentName = "contact.openapi.yaml"

	extensionPrefix = "x-formgen-"
)

var (
	ErrOperationNotFound = errors.New("schema: operation not found")
	ErrMissingField      = errors.New("schema: contact field missing")
)

//go:embed contact.openapi.yaml
var files embed.FS

// Files exposes the embedded OpenAPI document.
func Files() embed.FS {
	return files
}

// Default loads the embedded document and builds the default form model.
func Default(ctx context.Context) (model.FormModel, error) {
	doc, err := NewLoader(files).Load(ctx, SourceFromFS(DocumentName))
	if err != nil {
		return model.FormModel{}, err
	}
	return Build(ctx, doc, DefaultOperationID)
}

// Build parses doc with kin-openapi, validates it and converts operationID
// into a FormModel. Every contact field must be present in the request body
// schema.
func Build(ctx context.Context, doc Document, operationID string) (model.FormModel, error) {
	if err := ctx.Err(); err != nil {
		return model.FormModel{}, err
	}
	if len(doc.Raw) == 0 {
		return model.FormModel{}, errors.New("schema: document payload is empty")
	}
	if strings.TrimSpace(operationID) == "" {
		operationID = DefaultOperationID
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(doc.Raw)
	if err != nil {
		return model.FormModel{}, fmt.Errorf("schema: load %s: %w", doc.Location(), err)
	}
	if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return model.FormModel{}, fmt.Errorf("schema: validate %s: %w", doc.Location(), err)
	}

	method, path, operation := findOperation(spec, operationID)
	if operation == nil {
		return model.FormModel{}, fmt.Errorf("%w: %q", ErrOperationNotFound, operationID)
	}

	body := requestSchema(operation)
	if body == nil {
		return model.FormModel{}, fmt.Errorf("%w: operation %q has no request schema", ErrMissingField, operationID)
	}

	form := model.FormModel{
		OperationID: operationID,
		Endpoint:    path,
		Method:      method,
		Summary:     operation.Summary,
		Description: strings.TrimSpace(operation.Description),
		SubmitLabel: stringExtension(operation.Extensions, "submit-label"),
		SendingText: stringExtension(operation.Extensions, "sending-label"),
		Metadata:    metadata(operation.Extensions, "submit-label", "sending-label"),
	}

	required := make(map[string]bool, len(body.Required))
	for _, name := range body.Required {
		required[name] = true
	}

	for _, field := range model.Fields() {
		ref, ok := body.Properties[field.String()]
		if !ok || ref == nil || ref.Value == nil {
			return model.FormModel{}, fmt.Errorf("%w: %q", ErrMissingField, field)
		}
		form.Fields = append(form.Fields, fieldSpec(field, ref.Value, required[field.String()]))
	}
	return form, nil
}

func findOperation(spec *openapi3.T, operationID string) (string, string, *openapi3.Operation) {
	if spec.Paths == nil {
		return "", "", nil
	}
	for path, item := range spec.Paths.Map() {
		if item == nil {
			continue
		}
		for method, operation := range item.Operations() {
			if operation != nil && operation.OperationID == operationID {
				return strings.ToUpper(method), path, operation
			}
		}
	}
	return "", "", nil
}

func requestSchema(operation *openapi3.Operation) *openapi3.Schema {
	if operation.RequestBody == nil || operation.RequestBody.Value == nil {
		return nil
	}
	content := operation.RequestBody.Value.Content
	for _, mediaType := range []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"} {
		if mt, ok := content[mediaType]; ok && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	for _, mt := range content {
		if mt != nil && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

func fieldSpec(field model.Field, src *openapi3.Schema, required bool) model.FieldSpec {
	spec := model.FieldSpec{
		Field:       field,
		Label:       stringExtension(src.Extensions, "label"),
		InputType:   stringExtension(src.Extensions, "input-type"),
		Widget:      model.Widget(stringExtension(src.Extensions, "widget")),
		Required:    required,
		Format:      src.Format,
		MinLength:   clampInt(src.MinLength),
		Rows:        intExtension(src.Extensions, "rows"),
		Placeholder: stringExtension(src.Extensions, "placeholder"),
		Description: src.Description,
		Metadata:    metadata(src.Extensions, "label", "input-type", "widget", "rows", "placeholder"),
	}
	if spec.Label == "" {
		spec.Label = strings.ToUpper(field.String()[:1]) + field.String()[1:]
	}
	if spec.Widget == "" {
		spec.Widget = model.WidgetInput
	}
	if spec.InputType == "" && spec.Widget == model.WidgetInput {
		spec.InputType = "text"
		if src.Format == "email" {
			spec.InputType = "email"
		}
	}
	return spec
}

func stringExtension(ext map[string]any, key string) string {
	value, ok := ext[extensionPrefix+key]
	if !ok || value == nil {
		return ""
	}
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

func intExtension(ext map[string]any, key string) int {
	value, ok := ext[extensionPrefix+key]
	if !ok {
		return 0
	}
	switch v := value.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case uint64:
		return clampInt(v)
	case float64:
		return int(v)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

func clampInt(v uint64) int {
	if v > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(v)
}

// metadata keeps the remaining x-formgen-* extensions as strings.
func metadata(ext map[string]any, consumed ...string) map[string]string {
	skip := make(map[string]struct{}, len(consumed))
	for _, key := range consumed {
		skip[extensionPrefix+key] = struct{}{}
	}
	var out map[string]string
	for key, value := range ext {
		if !strings.HasPrefix(key, extensionPrefix) || value == nil {
			continue
		}
		if _, ok := skip[key]; ok {
			continue
		}
		if out == nil {
			out = make(map[string]string)
		}
		out[strings.TrimPrefix(key, extensionPrefix)] = fmt.Sprint(value)
	}
	return out
}
