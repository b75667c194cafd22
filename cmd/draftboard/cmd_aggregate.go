package main

import (
	"fmt"

	"github.com/okian/draftboard/internal/adapters/export"
	service "github.com/okian/draftboard/internal/app"
	"github.com/okian/draftboard/pkg/logger"
	"github.com/okian/draftboard/pkg/metrics"
	"github.com/spf13/cobra"
)

func newAggregateCommand(c *cli) *cobra.Command {
	var (
		xlsx        bool
		metricsFile string
	)

	cmd := &cobra.Command{
		Use:   "aggregate [season]",
		Short: "Build the draft board for a season and write CSV and JSON",
		Long: `Build the draft board for a season.

Writes <output-dir>/Projections-<season>.csv and .json, plus .xlsx with --xlsx.
The season defaults to the configured season.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			ctx := cmd.Context()
			season, err := resolveSeason(args, c.cfg.Season)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("xlsx") {
				c.cfg.WriteXLSX = xlsx
			}
			if cmd.Flags().Changed("metrics-file") {
				c.cfg.MetricsFile = metricsFile
			}
			if path := c.cfg.MetricsFile; path != "" {
				defer func() {
					if werr := metrics.WriteTextfile(path); werr != nil {
						c.log.Warn(ctx, "metrics textfile not written", logger.String("path", path), logger.Error(werr))
					}
				}()
			}

			res, err := service.FromConfig(ctx, c.cfg, c.log).Run(ctx, season)
			if err != nil {
				return err
			}

			exp := export.New(c.cfg.OutputDir,
				export.WithXLSX(c.cfg.WriteXLSX),
				export.WithLogger(c.log.Named("export")),
			)
			paths, err := exp.Write(ctx, res.Board)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%d players -> %s, %s", len(res.Board.Rows), paths.CSV, paths.JSON)
			if paths.XLSX != "" {
				fmt.Fprintf(cmd.OutOrStdout(), ", %s", paths.XLSX)
			}
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}

	cmd.Flags().BoolVar(&xlsx, "xlsx", false, "Also write an XLSX board")
	cmd.Flags().StringVar(&metricsFile, "metrics-file", "", "Write run metrics in Prometheus text format to this path")
	return cmd
}
