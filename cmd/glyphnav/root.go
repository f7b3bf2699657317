package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/phuslu/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tsawler/glyphnav"
	"github.com/tsawler/glyphnav/config"
)

// settings resolved by the root command before any subcommand runs
var (
	cfg    *config.Config
	logger *log.Logger
	format OutputFormat
)

var rootCmd = &cobra.Command{
	Use:   "glyphnav",
	Short: "Find text, resolve figures and build a table of contents for PDF files",
	Long: `glyphnav reads a PDF and exposes the navigation data a reader needs:

  - find with hyphenation, line-wrap and page-break tolerance
  - figures paired with their captions, and the in-text references to them
  - a table of contents from the outline or from contents pages

Settings come from a TOML file (--config), GLYPHNAV_* environment
variables and flags, in increasing priority.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "TOML config file")
	flags.StringP("output", "o", "yaml", "output format: yaml or json")
	flags.String("log-level", "", "log level: debug, info, warn or error")
	flags.Bool("ocr", false, "recognize text on pages without a text layer")

	viper.SetEnvPrefix("GLYPHNAV")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	for _, name := range []string{"config", "output", "log-level", "ocr"} {
		_ = viper.BindPFlag(name, flags.Lookup(name))
	}

	rootCmd.AddCommand(findCmd, tocCmd, figuresCmd, locateCmd, configCmd)
}

// setup loads the configuration and applies flag and environment
// overrides
func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(viper.GetString("config"))
	if err != nil {
		return err
	}
	if level := viper.GetString("log-level"); level != "" {
		cfg.Logging.Level = level
	}
	if viper.GetBool("ocr") {
		cfg.Reader.OCR = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger = cfg.Logger(os.Stderr)

	format, err = ParseOutputFormat(viper.GetString("output"))
	return err
}

// openDocument opens the PDF named by the first argument
func openDocument(path string, opts ...glyphnav.Option) (*glyphnav.Document, error) {
	opts = append([]glyphnav.Option{glyphnav.WithConfig(cfg), glyphnav.WithLogger(logger)}, opts...)
	doc, err := glyphnav.Open(path, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}
