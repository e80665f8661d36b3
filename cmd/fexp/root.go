package main

import (
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"fexp/internal/config"
	"fexp/internal/errors"
	"fexp/internal/fsops"
	"fexp/internal/log"
	"fexp/internal/shell"
	"fexp/internal/ui"
)

type rootOptions struct {
	cfgFile string
	debug   bool
	noColor bool
	theme   string
	logFile string
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	var opts rootOptions

	rootCmd := &cobra.Command{
		Use:   "fexp",
		Short: "An interactive terminal file explorer",
		Long: `fexp is a menu-driven file explorer for the terminal.

List, navigate, copy, move, delete, create and search files, and edit
their permission bits, one numbered choice at a time.`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr(), opts)
		},
	}

	flags := rootCmd.Flags()
	flags.StringVar(&opts.cfgFile, "config", "", "config file (default is $HOME/.config/fexp/config.yaml)")
	flags.BoolVar(&opts.debug, "debug", false, "enable debug logging")
	flags.BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	flags.StringVar(&opts.theme, "theme", "", "color theme (default, dark, light, monochrome, ocean, sunset)")
	flags.StringVar(&opts.logFile, "log-file", "", "append logs to this file instead of stderr")

	return rootCmd
}

// loadConfig reads the config file, falling back to defaults with a warning
// when it cannot be used. Command line flags override file values.
func loadConfig(errOut io.Writer, opts rootOptions) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if opts.cfgFile != "" {
		cfg, err = config.LoadConfigFile(opts.cfgFile)
	} else {
		cfg, err = config.LoadConfig()
	}
	if err != nil {
		fmt.Fprintf(errOut, "Warning: %v\n", err)
		fmt.Fprintln(errOut, "Using default settings.")
		cfg = config.New()
	}
	if err := config.ApplyEnv(cfg); err != nil {
		return nil, err
	}

	if opts.theme != "" {
		cfg.UI.Theme = opts.theme
	}
	if opts.noColor {
		off := false
		cfg.UI.Color = &off
	}
	if opts.logFile != "" {
		cfg.Log.File = opts.logFile
	}
	if opts.debug {
		cfg.Log.Level = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid settings")
	}
	return cfg, nil
}

// configureLogging installs the package logger. Every line carries a session
// id so runs appending to one log file can be told apart.
func configureLogging(errOut io.Writer, cfg *config.Config, debug bool) {
	opts := []log.Option{
		log.WithOutput(errOut),
		log.WithLevel(cfg.Log.Level),
		log.WithFields(log.F("session", uuid.NewString())),
	}
	if cfg.Log.JSON {
		opts = append(opts, log.WithJSON())
	}
	if cfg.Log.File != "" {
		opts = append(opts, log.WithFile(cfg.Log.File))
	}
	log.Configure(opts...)
	log.SetDebug(debug)
}

func runShell(in io.Reader, out, errOut io.Writer, opts rootOptions) error {
	cfg, err := loadConfig(errOut, opts)
	if err != nil {
		return err
	}

	configureLogging(errOut, cfg, opts.debug)
	defer log.Close()

	cwd, err := os.Getwd()
	if err != nil {
		return errors.Wrap(err, "could not determine the current directory")
	}

	printer := ui.New(out, errOut, ui.WithTheme(cfg.UI.Theme), ui.WithColor(cfg.ColorEnabled()))

	engine, err := fsops.NewWithConfig(cfg)
	if err != nil {
		return err
	}
	showProgress := cfg.ProgressEnabled()
	engine.SetProgress(func(total int64, description string) fsops.ProgressWriter {
		return printer.Progress(total, description, showProgress)
	}, cfg.Copy.ProgressThreshold)

	sh, err := shell.New(cwd, in, printer, engine)
	if err != nil {
		return err
	}

	log.LogWithFields(log.F("dir", cwd), log.F("theme", cfg.UI.Theme)).Debug("starting session")
	return sh.Run()
}
