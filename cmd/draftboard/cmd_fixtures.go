package main

import (
	"fmt"

	"github.com/okian/draftboard/internal/fixtures"
	"github.com/spf13/cobra"
)

func newFixturesCommand(c *cli) *cobra.Command {
	def := fixtures.DefaultConfig()
	fc := def

	cmd := &cobra.Command{
		Use:   "fixtures",
		Short: "Write a deterministic synthetic season below the data directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fc.DataDir = c.cfg.DataDir
			if !cmd.Flags().Changed("season") {
				fc.Season = c.cfg.Season
			}
			if _, err := resolveSeason(nil, fc.Season); err != nil {
				return err
			}

			sum, err := fixtures.Generate(cmd.Context(), fc, c.log.Named("fixtures"))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%d players\n", sum.Players)
			for _, f := range sum.ProjectionFiles {
				fmt.Fprintln(out, f)
			}
			fmt.Fprintln(out, sum.ADPFile)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&fc.Season, "season", def.Season, "Season encoded in file names (defaults to the configured season)")
	flags.IntVar(&fc.Players, "players", def.Players, "Number of distinct players")
	flags.StringSliceVar(&fc.Providers, "providers", def.Providers, "Provider names, one projection table each")
	flags.Int64Var(&fc.Seed, "seed", def.Seed, "Random seed")
	flags.StringVar(&fc.Variant, "variant", def.Variant, "ADP file variant suffix: PPR, HalfPPR or Standard")
	return cmd
}
