package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/JonMunkholm/parseos/internal/config"
	"github.com/JonMunkholm/parseos/internal/core"
	"github.com/JonMunkholm/parseos/internal/logging"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// app holds what the subcommands share once the root command has set up
// configuration and logging.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	service *core.Service
}

func newRootCmd() *cobra.Command {
	a := &app{}
	var verbose bool

	cmd := &cobra.Command{
		Use:   "parseo",
		Short: "Convert tax spreadsheets into filing text files",
		Long: `parseo turns withholding and perception spreadsheets (CSV or XLSX) into the
fixed-format text files accepted by ARCA (SICORE, IVA, SUSS) and AGIP (ARCIBA).

Settings come from the environment and an optional .env file, the same ones
the HTTP server reads. Logs go to stderr so converted text can be piped.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd.ErrOrStderr(), verbose)
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(
		newConvertCmd(a),
		newFormatsCmd(a),
		newSheetsCmd(),
		newVersionCmd(),
	)
	return cmd
}

// setup loads configuration and builds the logger and conversion service.
func (a *app) setup(stderr io.Writer, verbose bool) error {
	// A missing .env file is not an error for the CLI.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	level := cfg.Logging.Level
	if verbose {
		level = "debug"
	}
	a.logger = logging.New(stderr, level, cfg.Logging.Format)
	slog.SetDefault(a.logger)

	overrides, err := core.LoadAliasOverrides(cfg.Convert.AliasFile)
	if err != nil {
		return fmt.Errorf("load alias overrides: %w", err)
	}
	if overrides != nil {
		a.logger.Debug("alias overrides loaded", "path", cfg.Convert.AliasFile, "spellings", overrides.Count())
	}

	a.cfg = cfg
	a.service = core.NewService(core.ServiceOptions{
		MaxConcurrent:    cfg.Convert.MaxConcurrent,
		MaxWait:          cfg.Convert.MaxWaitTime,
		StrictLineLength: cfg.Convert.StrictLineLength,
		Overrides:        overrides,
	})
	return nil
}
