package main

import (
	"fmt"
	"os"

	"github.com/okian/draftboard/internal/config"
	"github.com/okian/draftboard/pkg/logger"
	"github.com/spf13/cobra"
)

var version = "dev"

// cli carries state resolved once in PersistentPreRunE and shared by
// subcommands.
type cli struct {
	cfg *config.Config
	log logger.Logger

	configFile string
	logLevel   string
	logFormat  string
	dataDir    string
	outputDir  string
}

func newRootCommand() *cobra.Command {
	c := &cli{}
	cmd := &cobra.Command{
		Use:   "draftboard",
		Short: "Aggregate fantasy football projections into a ranked draft board",
		Long: `draftboard merges per-provider projection tables into one consensus
board with replacement value (VORP), cross-provider volatility, ADP and
per-position tiers.

Inputs live below the data directory:
  raw/projections/<Provider>-Projections-<season>.csv|.xlsx
  raw/adp/FantasyPros-<season>[-<PPR|HalfPPR|Standard>].csv|.xlsx`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&c.configFile, "config", "", "YAML config file (overrides $"+config.EnvConfigFile+")")
	flags.StringVar(&c.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	flags.StringVar(&c.logFormat, "log-format", "", "Log format: text or json")
	flags.StringVar(&c.dataDir, "data-dir", "", "Root data directory")
	flags.StringVar(&c.outputDir, "output-dir", "", "Directory for generated boards")

	cmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		return c.init(cmd)
	}

	cmd.AddCommand(newAggregateCommand(c))
	cmd.AddCommand(newServeCommand(c))
	cmd.AddCommand(newFixturesCommand(c))
	return cmd
}

// init loads configuration, applies flag overrides and sets up logging.
func (c *cli) init(cmd *cobra.Command) error {
	if c.configFile != "" {
		if err := os.Setenv(config.EnvConfigFile, c.configFile); err != nil {
			return fmt.Errorf("set config path: %w", err)
		}
	}
	cfg, err := config.Load(cmd.Context())
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = c.logLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = c.logFormat
	}
	if flags.Changed("data-dir") {
		cfg.DataDir = c.dataDir
	}
	if flags.Changed("output-dir") {
		cfg.OutputDir = c.outputDir
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := logger.Init(logger.WithWriter(cmd.ErrOrStderr()), logger.WithFormat(cfg.LogFormat)); err != nil {
		return fmt.Errorf("%w: %w", config.ErrInvalidConfig, err)
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", config.ErrInvalidConfig, err)
	}

	c.cfg = cfg
	c.log = logger.Get()
	return nil
}
