package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	contactform "github.com/goliatone/go-contactform"
	"github.com/goliatone/go-contactform/pkg/clipboard"
	"github.com/goliatone/go-contactform/pkg/form"
	"github.com/goliatone/go-contactform/pkg/model"
	"github.com/goliatone/go-contactform/pkg/renderers/tui"
	"github.com/goliatone/go-contactform/pkg/schema"
)

type renderFlags struct {
	theme   string
	variant string
	out     string
	name    string
	email   string
	message string
	submit  bool
}

func newRenderCommand(c *cli) *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the contact section as HTML",
		Long: `Render the contact section as HTML.

Field flags pre-fill the form. With --submit the form is submitted once and
the resulting state (errors, success or failure banner) is rendered.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.app()
			if err != nil {
				return err
			}

			state, err := fillForm(cmd, app, flags, c.logger)
			if err != nil {
				return err
			}

			html, err := app.Render(cmd.Context(), contactform.RenderRequest{
				State:        state,
				ThemeName:    flags.theme,
				ThemeVariant: flags.variant,
			})
			if err != nil {
				return err
			}

			if flags.out == "" {
				_, err = cmd.OutOrStdout().Write(html)
				return err
			}
			if err := os.WriteFile(flags.out, html, 0o644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Form written to %s\n", flags.out)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.theme, "theme", "", "theme name (defaults to the configured theme)")
	f.StringVar(&flags.variant, "variant", "", "theme variant: light or dark")
	f.StringVarP(&flags.out, "out", "o", "", "output file (stdout if empty)")
	f.StringVar(&flags.name, "name", "", "pre-filled name")
	f.StringVar(&flags.email, "email", "", "pre-filled email address")
	f.StringVar(&flags.message, "message", "", "pre-filled message")
	f.BoolVar(&flags.submit, "submit", false, "submit the form before rendering")
	return cmd
}

// fillForm replays the field flags through a form and optionally submits it.
// Validation and delivery failures are part of the rendered state, not
// command errors.
func fillForm(cmd *cobra.Command, app *contactform.App, flags renderFlags, logger *zap.Logger) (model.State, error) {
	f, err := app.NewForm()
	if err != nil {
		return model.State{}, err
	}

	values := map[model.Field]string{
		model.FieldName:    flags.name,
		model.FieldEmail:   flags.email,
		model.FieldMessage: flags.message,
	}
	for _, field := range model.Fields() {
		if !cmd.Flags().Changed(field.String()) {
			continue
		}
		if err := f.Change(field, values[field]); err != nil {
			return model.State{}, err
		}
		if err := f.Blur(field); err != nil {
			return model.State{}, err
		}
	}

	if flags.submit {
		_, err := f.Submit(cmd.Context())
		var invalid *form.ValidationError
		switch {
		case errors.As(err, &invalid):
			logger.Info("submission rejected", zap.Error(err))
		case errors.Is(err, form.ErrDeliveryFailed):
			logger.Warn("submission failed", zap.Error(err))
		case err != nil:
			return model.State{}, err
		}
	}
	return f.State(), nil
}

func newPromptCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "prompt",
		Short: "Fill in and send the contact form interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.app()
			if err != nil {
				return err
			}
			err = app.RunSession(cmd.Context(), tui.WithPromptDriver(c.driver(cmd.OutOrStdout())))
			if errors.Is(err, tui.ErrAborted) {
				return nil
			}
			return err
		},
	}
}

func newCopyEmailCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "copy-email",
		Short: "Copy the contact email address to the clipboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.app()
			if err != nil {
				return err
			}
			return app.CopyEmail(cmd.Context(), clipboard.WriterNotifier(cmd.OutOrStdout()))
		},
	}
}

func newSchemaCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the form model derived from the OpenAPI document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.app()
			if err != nil {
				return err
			}
			spec, err := app.FormModel(cmd.Context())
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(spec)
		},
	}
}

func newLintCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Check OpenAPI documents for unsupported x-formgen extensions",
		Long: `Check OpenAPI documents for unsupported x-formgen extensions.

Without arguments the document selected by --schema (or the embedded one) is
checked.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			sources := make([]schema.Source, 0, len(args))
			for _, path := range args {
				sources = append(sources, schema.SourceFromFile(path))
			}
			if len(sources) == 0 {
				if c.schemaFile != "" {
					sources = append(sources, schema.SourceFromFile(c.schemaFile))
				} else {
					sources = append(sources, schema.SourceFromFS(schema.DocumentName))
				}
			}

			loader := schema.NewLoader(schema.Files())
			total := 0
			for _, src := range sources {
				doc, err := loader.Load(cmd.Context(), src)
				if err != nil {
					return err
				}
				violations, err := schema.Lint(cmd.Context(), doc)
				if err != nil {
					return err
				}
				for _, v := range violations {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", src.Location(), v)
				}
				total += len(violations)
			}
			if total > 0 {
				return fmt.Errorf("lint: %d violation(s)", total)
			}
			c.logger.Debug("lint passed", zap.Int("documents", len(sources)))
			return nil
		},
	}
}
