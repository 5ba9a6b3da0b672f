package contactform_test

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	contactform "github.com/goliatone/go-contactform"
	"github.com/goliatone/go-contactform/pkg/clipboard"
	"github.com/goliatone/go-contactform/pkg/config"
	"github.com/goliatone/go-contactform/pkg/model"
	"github.com/goliatone/go-contactform/pkg/testsupport"
)

func newApp(t *testing.T, opts ...contactform.Option) (*contactform.App, *testsupport.RecordingDeliverer) {
	t.Helper()
	recorder := testsupport.NewRecordingDeliverer()
	app, err := contactform.New(config.Default(), append([]contactform.Option{contactform.WithDeliverer(recorder)}, opts...)...)
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	return app, recorder
}

func TestApp_SubmitThenRender(t *testing.T) {
	app, recorder := newApp(t)

	f, err := app.NewForm()
	if err != nil {
		t.Fatalf("new form: %v", err)
	}
	for field, value := range map[model.Field]string{
		model.FieldName:    "Ann",
		model.FieldEmail:   "ann@example.com",
		model.FieldMessage: "Hello there, friend",
	} {
		if err := f.Change(field, value); err != nil {
			t.Fatalf("change %s: %v", field, err)
		}
	}
	status, err := f.Submit(context.Background())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if status.Message != "Message sent successfully to ann@example.com!" {
		t.Fatalf("unexpected status %q", status.Message)
	}
	if got := len(recorder.Messages()); got != 1 {
		t.Fatalf("expected one delivered message, got %d", got)
	}

	out, err := app.Render(context.Background(), contactform.RenderRequest{
		State:        f.State(),
		ThemeVariant: "dark",
		Hidden:       map[string]string{"_csrf": "tok"},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)
	for _, fragment := range []string{
		"Message sent successfully to ann@example.com!",
		`data-copy="rjrajput5462@gmail.com"`,
		`href="tel:+919511669138"`,
		`data-theme-variant="dark"`,
		`name="_csrf" value="tok"`,
		`name="name" value=""`,
	} {
		if !strings.Contains(html, fragment) {
			t.Fatalf("expected %q in output:\n%s", fragment, html)
		}
	}
}

func TestApp_FormModel(t *testing.T) {
	app, _ := newApp(t)
	form, err := app.FormModel(context.Background())
	if err != nil {
		t.Fatalf("form model: %v", err)
	}
	want := testsupport.MustLoadFormModel(t, filepath.Join("pkg", "schema", "testdata", "contact_form.json"))
	if diff := cmp.Diff(want, form); diff != "" {
		t.Fatalf("form model mismatch (-want +got):\n%s", diff)
	}

	missing, _ := newApp(t, contactform.WithSchemaFile(filepath.Join(t.TempDir(), "missing.yaml")))
	if _, err := missing.FormModel(context.Background()); err == nil {
		t.Fatalf("expected error for missing schema file")
	}
}

func TestApp_CopyEmail(t *testing.T) {
	var copied []string
	app, _ := newApp(t, contactform.WithClipboardWriter(func(text string) error {
		copied = append(copied, text)
		return nil
	}))

	var out bytes.Buffer
	if err := app.CopyEmail(context.Background(), clipboard.WriterNotifier(&out)); err != nil {
		t.Fatalf("copy: %v", err)
	}
	if diff := cmp.Diff([]string{"rjrajput5462@gmail.com"}, copied); diff != "" {
		t.Fatalf("copied mismatch (-want +got):\n%s", diff)
	}
	if out.String() != "Copied rjrajput5462@gmail.com to clipboard!\n" {
		t.Fatalf("unexpected acknowledgment %q", out.String())
	}
}

func TestNew_RejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Contact.Email = "nope"
	if _, err := contactform.New(cfg); !errors.Is(err, config.ErrInvalid) {
		t.Fatalf("expected config.ErrInvalid, got %v", err)
	}

	cfg = config.Default()
	cfg.Theme.Name = "neon"
	if _, err := contactform.New(cfg); err == nil {
		t.Fatalf("expected error for unknown theme")
	}
}
