package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	contactform "github.com/goliatone/go-contactform"
	"github.com/goliatone/go-contactform/pkg/clipboard"
	"github.com/goliatone/go-contactform/pkg/config"
	"github.com/goliatone/go-contactform/pkg/logging"
	"github.com/goliatone/go-contactform/pkg/renderers/tui"
)

// cli holds the state shared by every subcommand. Tests swap the clipboard
// writer and the prompt driver.
type cli struct {
	configFile string
	envFiles   []string
	verbose    bool
	schemaFile string

	clipboardWriter clipboard.Writer
	promptDriver    tui.PromptDriver

	cfg    config.Config
	logger *zap.Logger
}

func newCLI() *cli {
	return &cli{}
}

func newRootCommand(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:           "contactform",
		Short:         "Render and drive the portfolio contact form",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(config.Options{
				File:     c.configFile,
				EnvFiles: c.envFiles,
			})
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			logger, err := logging.New(cfg.Log, c.verbose)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			c.cfg = cfg
			c.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.logger != nil {
				_ = c.logger.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&c.configFile, "config", "c", "", "YAML configuration file")
	flags.StringArrayVar(&c.envFiles, "env-file", nil, ".env file to load before reading the environment (repeatable)")
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging")
	flags.StringVar(&c.schemaFile, "schema", "", "OpenAPI document to use instead of the embedded one")

	root.AddCommand(
		newRenderCommand(c),
		newPromptCommand(c),
		newCopyEmailCommand(c),
		newSchemaCommand(c),
		newLintCommand(c),
	)
	return root
}

func (c *cli) app() (*contactform.App, error) {
	options := []contactform.Option{contactform.WithLogger(c.logger)}
	if c.schemaFile != "" {
		options = append(options, contactform.WithSchemaFile(c.schemaFile))
	}
	if c.clipboardWriter != nil {
		options = append(options, contactform.WithClipboardWriter(c.clipboardWriter))
	}
	return contactform.New(c.cfg, options...)
}

func (c *cli) driver(out io.Writer) tui.PromptDriver {
	if c.promptDriver != nil {
		return c.promptDriver
	}
	return tui.NewSurveyDriver(out)
}
