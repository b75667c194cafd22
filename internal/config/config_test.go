package config_test

import (
	"runtime"
	"testing"

	"github.com/okian/draftboard/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.DataDir, convey.ShouldEqual, "data")
			convey.So(cfg.OutputDir, convey.ShouldEqual, "data/processed")
			convey.So(cfg.Workers, convey.ShouldEqual, runtime.NumCPU())
			convey.So(cfg.ClusterSeed, convey.ShouldEqual, int64(42))
			convey.So(cfg.ClusterRestarts, convey.ShouldEqual, 10)
			convey.So(cfg.ClusterMaxIter, convey.ShouldEqual, 300)
			convey.So(cfg.ClusterTolerance, convey.ShouldEqual, 1e-4)
			convey.So(cfg.ReplacementDepth["RB"], convey.ShouldEqual, 40)
			convey.So(cfg.TierCounts["TE"], convey.ShouldEqual, 7)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})

	convey.Convey("Given a config with an out-of-range season", t, func() {
		cfg := config.New()
		cfg.Season = 1999

		convey.Convey("Then validation fails", func() {
			convey.So(cfg.Validate(), convey.ShouldWrap, config.ErrInvalidConfig)
		})
	})
}
