package fixtures

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/draftboard/internal/adapters/source"
	"github.com/okian/draftboard/internal/domain/scoring"
)

func TestGenerate(t *testing.T) {
	Convey("Given a fixtures config", t, func() {
		ctx := context.Background()
		cfg := DefaultConfig()
		cfg.DataDir = t.TempDir()
		cfg.Players = 120
		cfg.Variant = scoring.VariantHalfPPR

		Convey("When generating a season", func() {
			sum, err := Generate(ctx, cfg, nil)
			So(err, ShouldBeNil)

			Convey("Then one projection table per provider and one ADP table exist", func() {
				So(sum.Players, ShouldEqual, 120)
				So(len(sum.ProjectionFiles), ShouldEqual, 3)
				So(filepath.Base(sum.ADPFile), ShouldEqual, "FantasyPros-2025-HalfPPR.csv")
				for _, p := range append(sum.ProjectionFiles, sum.ADPFile) {
					_, err := os.Stat(p)
					So(err, ShouldBeNil)
				}
			})

			Convey("Then every table is readable by the source loader", func() {
				loader := source.NewLoader(cfg.DataDir)
				tables, err := loader.LoadProjections(ctx, 2025, scoring.New())
				So(err, ShouldBeNil)
				So(len(tables), ShouldEqual, 3)
				for _, tbl := range tables {
					So(len(tbl.Rows), ShouldBeGreaterThan, 80)
				}
				So(tables[2].Supplied[0], ShouldBeTrue)

				adp, err := loader.LoadADP(ctx, 2025, scoring.VariantHalfPPR)
				So(err, ShouldBeNil)
				So(len(adp.Values), ShouldBeGreaterThan, 50)
			})
		})

		Convey("When generating twice with the same seed", func() {
			other := cfg
			other.DataDir = t.TempDir()
			a, err := Generate(ctx, cfg, nil)
			So(err, ShouldBeNil)
			b, err := Generate(ctx, other, nil)
			So(err, ShouldBeNil)

			Convey("Then the files are identical", func() {
				for i := range a.ProjectionFiles {
					x, _ := os.ReadFile(a.ProjectionFiles[i])
					y, _ := os.ReadFile(b.ProjectionFiles[i])
					So(string(x), ShouldEqual, string(y))
				}
			})
		})

		Convey("When the config is unusable", func() {
			cfg.Players = 0
			_, err := Generate(ctx, cfg, nil)
			So(err, ShouldWrap, ErrInvalidConfig)
		})
	})
}
