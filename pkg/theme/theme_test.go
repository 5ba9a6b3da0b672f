package theme_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-contactform/pkg/theme"
)

func TestSelector_DefaultsToPortfolio(t *testing.T) {
	selector, err := theme.NewSelector("", theme.VariantLight)
	if err != nil {
		t.Fatalf("new selector: %v", err)
	}

	selection, err := selector.Select("", "")
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if selection.Theme != theme.PortfolioName || selection.Variant != theme.VariantLight {
		t.Fatalf("unexpected selection: %s/%s", selection.Theme, selection.Variant)
	}
	if diff := cmp.Diff([]string{theme.PortfolioName}, selector.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestSelector_UnknownThemeAndVariant(t *testing.T) {
	selector, err := theme.NewSelector(theme.PortfolioName, "")
	if err != nil {
		t.Fatalf("new selector: %v", err)
	}

	if _, err := selector.Select("neon", ""); !errors.Is(err, theme.ErrUnknownTheme) {
		t.Fatalf("expected ErrUnknownTheme, got %v", err)
	}
	if _, err := selector.Select("", "sepia"); !errors.Is(err, theme.ErrUnknownVariant) {
		t.Fatalf("expected ErrUnknownVariant, got %v", err)
	}
	if _, err := theme.NewSelector("neon", ""); !errors.Is(err, theme.ErrUnknownTheme) {
		t.Fatalf("expected ErrUnknownTheme for default, got %v", err)
	}
}

func TestRendererConfig_MergesVariant(t *testing.T) {
	selector, err := theme.NewSelector(theme.PortfolioName, "")
	if err != nil {
		t.Fatalf("new selector: %v", err)
	}
	selection, err := selector.Select("", theme.VariantDark)
	if err != nil {
		t.Fatalf("select: %v", err)
	}

	cfg := theme.RendererConfig(selection, map[string]string{
		"contact.form":  "fallback.tmpl",
		"contact.extra": "extra.tmpl",
	})
	if cfg == nil {
		t.Fatalf("expected renderer config")
	}
	if cfg.Theme != theme.PortfolioName || cfg.Variant != theme.VariantDark {
		t.Fatalf("unexpected selection in config: %s/%s", cfg.Theme, cfg.Variant)
	}
	if got := cfg.Partials["contact.form"]; got != "form.tmpl" {
		t.Fatalf("manifest template should override fallback, got %q", got)
	}
	if got := cfg.Partials["contact.extra"]; got != "extra.tmpl" {
		t.Fatalf("fallback partial missing, got %q", got)
	}
	if got := cfg.Tokens["surface"]; got != "#111827" {
		t.Fatalf("dark surface token not applied, got %q", got)
	}
	if got := cfg.Tokens["accent"]; got != "#3b82f6" {
		t.Fatalf("base accent token lost, got %q", got)
	}
	if cfg.CSSVars["--surface"] != cfg.Tokens["surface"] {
		t.Fatalf("css vars not derived from tokens")
	}
	if got := cfg.AssetURL(theme.StylesheetAsset); got != "/assets/themes/portfolio/contact.dark.css" {
		t.Fatalf("unexpected stylesheet url %q", got)
	}
	if got := cfg.AssetURL("missing"); got != "" {
		t.Fatalf("expected empty url for unknown asset, got %q", got)
	}
}

func TestRendererConfig_Nil(t *testing.T) {
	if cfg := theme.RendererConfig(nil, nil); cfg != nil {
		t.Fatalf("expected nil config, got %+v", cfg)
	}
}
