// Package theme wires go-theme manifests into the contact form renderers. It
// ships the portfolio manifest (light and dark variants) and resolves a
// selection into the renderer-facing configuration.
package theme

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

const (
	// PortfolioName names the built-in manifest.
	PortfolioName = "portfolio"
	// VariantLight and VariantDark mirror the portfolio's theme toggle.
	VariantLight = "light"
	VariantDark  = "dark"

	// StylesheetAsset is the asset key the HTML renderer links.
	StylesheetAsset = "html.stylesheet"
)

var (
	ErrUnknownTheme   = errors.New("theme: unknown theme")
	ErrUnknownVariant = errors.New("theme: unknown variant")
)

// Portfolio returns the manifest of the portfolio contact section. Tokens
// map the palette the section draws from; the dark variant overrides the
// surface and text colours.
func Portfolio() *theme.Manifest {
	return &theme.Manifest{
		Name:    PortfolioName,
		Version: "1.0.0",
		Tokens: map[string]string{
			"surface":        "#ffffff",
			"text":           "#111827",
			"muted":          "#4b5563",
			"label":          "#374151",
			"accent":         "#3b82f6",
			"accent-hover":   "#2563eb",
			"error":          "#ef4444",
			"success":        "#22c55e",
			"detail-email":   "#2563eb",
			"detail-phone":   "#16a34a",
			"detail-address": "#9333ea",
			"radius":         "0.5rem",
		},
		Templates: map[string]string{
			"contact.form":    "form.tmpl",
			"contact.field":   "field.tmpl",
			"contact.status":  "status.tmpl",
			"contact.details": "details.tmpl",
		},
		Assets: theme.Assets{
			Prefix: "/assets/themes/portfolio",
			Files: map[string]string{
				StylesheetAsset: "contact.css",
			},
		},
		Variants: map[string]theme.Variant{
			VariantLight: {},
			VariantDark: {
				Tokens: map[string]string{
					"surface":        "#111827",
					"text":           "#ffffff",
					"muted":          "#d1d5db",
					"label":          "#d1d5db",
					"error":          "#f87171",
					"detail-email":   "#60a5fa",
					"detail-phone":   "#4ade80",
					"detail-address": "#c084fc",
				},
				Assets: theme.Assets{
					Files: map[string]string{
						StylesheetAsset: "contact.dark.css",
					},
				},
			},
		},
	}
}

// Selector picks a manifest and variant by name. Empty names fall back to the
// configured defaults.
type Selector struct {
	manifests      map[string]*theme.Manifest
	defaultTheme   string
	defaultVariant string
}

// NewSelector registers manifests with a go-theme registry, which validates
// them, and keeps them for lookup. With no manifests the portfolio manifest is
// used.
func NewSelector(defaultTheme, defaultVariant string, manifests ...*theme.Manifest) (*Selector, error) {
	if len(manifests) == 0 {
		manifests = []*theme.Manifest{Portfolio()}
	}

	registry := theme.NewRegistry()
	s := &Selector{
		manifests:      make(map[string]*theme.Manifest, len(manifests)),
		defaultTheme:   strings.TrimSpace(defaultTheme),
		defaultVariant: strings.TrimSpace(defaultVariant),
	}
	for _, manifest := range manifests {
		if manifest == nil {
			continue
		}
		if err := registry.Register(manifest); err != nil {
			return nil, fmt.Errorf("theme: register %q: %w", manifest.Name, err)
		}
		s.manifests[manifest.Name] = manifest
	}
	if s.defaultTheme == "" {
		s.defaultTheme = PortfolioName
	}
	if _, ok := s.manifests[s.defaultTheme]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTheme, s.defaultTheme)
	}
	return s, nil
}

// Names lists the registered manifests in order.
func (s *Selector) Names() []string {
	names := make([]string, 0, len(s.manifests))
	for name := range s.manifests {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Select resolves name and variant into a go-theme selection.
func (s *Selector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = s.defaultTheme
	}
	manifest, ok := s.manifests[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTheme, name)
	}

	variant = strings.TrimSpace(variant)
	if variant == "" {
		variant = s.defaultVariant
	}
	if variant != "" {
		if _, ok := manifest.Variants[variant]; !ok {
			return nil, fmt.Errorf("%w: %q for theme %q", ErrUnknownVariant, variant, name)
		}
	}

	return &theme.Selection{
		Theme:    manifest.Name,
		Variant:  variant,
		Manifest: manifest,
	}, nil
}

// RendererConfig flattens a selection: fallbacks, manifest and variant
// templates merge into Partials (later wins), tokens merge likewise and each
// token becomes a "--<token>" CSS variable.
func RendererConfig(selection *theme.Selection, fallbacks map[string]string) *theme.RendererConfig {
	if selection == nil || selection.Manifest == nil {
		return nil
	}
	manifest := selection.Manifest
	variant := manifest.Variants[selection.Variant]

	partials := merge(fallbacks, manifest.Templates, variant.Templates)
	tokens := merge(manifest.Tokens, variant.Tokens)
	cssVars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		cssVars["--"+key] = value
	}

	prefix := manifest.Assets.Prefix
	if variant.Assets.Prefix != "" {
		prefix = variant.Assets.Prefix
	}
	files := merge(manifest.Assets.Files, variant.Assets.Files)

	return &theme.RendererConfig{
		Theme:    selection.Theme,
		Variant:  selection.Variant,
		Partials: partials,
		Tokens:   tokens,
		CSSVars:  cssVars,
		AssetURL: assetResolver(prefix, files),
	}
}

func assetResolver(prefix string, files map[string]string) func(string) string {
	prefix = strings.TrimRight(prefix, "/")
	return func(key string) string {
		file, ok := files[key]
		if !ok || file == "" {
			return ""
		}
		if strings.HasPrefix(file, "/") || strings.Contains(file, "://") || prefix == "" {
			return file
		}
		return prefix + "/" + file
	}
}

func merge(layers ...map[string]string) map[string]string {
	out := make(map[string]string)
	for _, layer := range layers {
		for key, value := range layer {
			out[key] = value
		}
	}
	return out
}
