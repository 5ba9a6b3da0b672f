package schema_test

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-contactform/pkg/schema"
)

const lintDocument = `openapi: 3.0.3
info:
  title: lint
  version: 1.0.0
paths:
  /contact:
    post:
      operationId: sendContactMessage
      x-formgen-submit-label: Send
      x-formgen-tags: [a, b]
      requestBody:
        content:
          application/json:
            schema:
              type: object
              properties:
                name:
                  type: string
                  x-formgen-submit-label: Go
                message:
                  type: string
                  x-formgen-widget: dropdown
                  x-formgen-rows: 0
                email:
                  type: string
                  x-formgen-label: Email
                  x-formgen-autocomplete: email
      responses:
        '202':
          description: ok
`

func TestLint_EmbeddedDocumentIsClean(t *testing.T) {
	doc, err := schema.NewLoader(schema.Files()).Load(context.Background(), schema.SourceFromFS(schema.DocumentName))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	violations, err := schema.Lint(context.Background(), doc)
	if err != nil {
		t.Fatalf("lint: %v", err)
	}
	if len(violations) != 0 {
		t.Fatalf("expected no violations, got %v", violations)
	}
}

func TestLint_ReportsMisplacedAndMalformedExtensions(t *testing.T) {
	files := fstest.MapFS{"lint.yaml": &fstest.MapFile{Data: []byte(lintDocument)}}
	doc, err := schema.NewLoader(files).Load(context.Background(), schema.SourceFromFS("lint.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	violations, err := schema.Lint(context.Background(), doc)
	if err != nil {
		t.Fatalf("lint: %v", err)
	}

	const props = "operation > sendContactMessage > requestBody > application/json > properties."
	want := []schema.Violation{
		{Location: "operation > sendContactMessage", Message: `value for "tags" must be a string, number, or boolean (got []interface {})`},
		{Location: props + "message", Message: "rows must be a positive integer (got 0)"},
		{Location: props + "message", Message: `widget must be "input" or "textarea" (got dropdown)`},
		{Location: props + "name", Message: `"submit-label" only applies to operations`},
	}
	if diff := cmp.Diff(want, violations); diff != "" {
		t.Fatalf("violations mismatch (-want +got):\n%s", diff)
	}
}
