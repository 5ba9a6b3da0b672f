package render_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-contactform/pkg/model"
	"github.com/goliatone/go-contactform/pkg/render"
)

type stubRenderer struct {
	name string
	got  render.RenderOptions
}

func (s *stubRenderer) Name() string        { return s.name }
func (s *stubRenderer) ContentType() string { return "text/plain" }
func (s *stubRenderer) Render(_ context.Context, form model.FormModel, options render.RenderOptions) ([]byte, error) {
	s.got = options
	return []byte(form.OperationID), nil
}

func TestRegistry(t *testing.T) {
	first := &stubRenderer{name: "b"}
	registry, err := render.NewRegistry(first, &stubRenderer{name: "a"})
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}

	if diff := cmp.Diff([]string{"a", "b"}, registry.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
	if err := registry.Register(&stubRenderer{name: "a"}); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
	if err := registry.Register(&stubRenderer{}); err == nil {
		t.Fatalf("expected error for unnamed renderer")
	}
	if _, err := registry.Get("missing"); !errors.Is(err, render.ErrRendererNotFound) {
		t.Fatalf("expected ErrRendererNotFound, got %v", err)
	}

	opts := render.RenderOptions{Hidden: map[string]string{"_csrf": "x"}}
	out, err := registry.Render(context.Background(), "b", model.FormModel{OperationID: "send"}, opts)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if string(out) != "send" {
		t.Fatalf("unexpected output %q", out)
	}
	if diff := cmp.Diff(opts.Hidden, first.got.Hidden); diff != "" {
		t.Fatalf("options not forwarded (-want +got):\n%s", diff)
	}
}

func TestRegistry_MustRegister(t *testing.T) {
	registry, err := render.NewRegistry()
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}
	registry.MustRegister(&stubRenderer{name: "html"})
	if _, err := registry.Get("html"); err != nil {
		t.Fatalf("get: %v", err)
	}

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on duplicate registration")
		}
	}()
	registry.MustRegister(&stubRenderer{name: "html"})
}

func TestMergeAndSortHiddenFields(t *testing.T) {
	base := map[string]string{
		" existing ": "keep",
		"":           "ignored",
		"email":      "shadow",
	}

	merged := render.MergeHiddenFields(base,
		render.CSRFToken("token123"),
		render.Hidden("attempt", 4),
		render.Hidden("  ", "skip"),
	)
	wantMerged := map[string]string{
		"existing": "keep",
		"email":    "shadow",
		"_csrf":    "token123",
		"attempt":  "4",
	}
	if diff := cmp.Diff(wantMerged, merged); diff != "" {
		t.Fatalf("merged hidden fields mismatch (-want +got):\n%s", diff)
	}

	sorted := render.SortedHiddenFields(merged, "name", "email", "message")
	wantSorted := []render.HiddenField{
		{Name: "_csrf", Value: "token123"},
		{Name: "attempt", Value: "4"},
		{Name: "existing", Value: "keep"},
	}
	if diff := cmp.Diff(wantSorted, sorted); diff != "" {
		t.Fatalf("sorted hidden fields mismatch (-want +got):\n%s", diff)
	}

	if got := render.SortedHiddenFields(nil); got != nil {
		t.Fatalf("expected nil for empty input, got %v", got)
	}
}

func TestSanitizeIcon(t *testing.T) {
	raw := `<svg viewBox="0 0 24 24" onload="alert(1)"><path d="M3 8l9 6 9-6"/><script>alert(1)</script></svg>`
	got := render.SanitizeIcon(raw)
	if !strings.Contains(got, "<svg") || !strings.Contains(got, `d="M3 8l9 6 9-6"`) {
		t.Fatalf("icon markup stripped: %q", got)
	}
	if strings.Contains(got, "onload") || strings.Contains(got, "script") {
		t.Fatalf("unsafe markup survived: %q", got)
	}
	if render.SanitizeIcon("   ") != "" {
		t.Fatalf("expected empty result for blank input")
	}
}
