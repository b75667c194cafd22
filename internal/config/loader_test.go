package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/draftboard/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars(t)

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.LogFormat, convey.ShouldEqual, "text")
				convey.So(cfg.MaxBoardLimit, convey.ShouldEqual, 500)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			clearConfigEnvVars(t)
			t.Setenv("DRAFTBOARD_ADDR", ":8080")
			t.Setenv("DRAFTBOARD_WORKERS", "3")
			t.Setenv("DRAFTBOARD_WRITE_XLSX", "true")
			t.Setenv("DRAFTBOARD_TIER_COUNTS__rb", "12")
			t.Setenv("DRAFTBOARD_SCORING__RECEPTIONS", "1")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.Workers, convey.ShouldEqual, 3)
				convey.So(cfg.WriteXLSX, convey.ShouldBeTrue)
				convey.So(cfg.TierCounts["RB"], convey.ShouldEqual, 12)
				convey.So(cfg.TierCounts["QB"], convey.ShouldEqual, 8)
				convey.So(cfg.Scoring["receptions"], convey.ShouldEqual, 1.0)
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			clearConfigEnvVars(t)
			path := createTempConfigFile(t, `
data_dir: /srv/data
season: 2024
replacement_depth:
  K: 12
tier_counts:
  QB: 6
cluster_seed: 7
cluster_tolerance: 0.01
`)
			t.Setenv("DRAFTBOARD_CONFIG", path)

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should merge the file over defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.DataDir, convey.ShouldEqual, "/srv/data")
				convey.So(cfg.Season, convey.ShouldEqual, 2024)
				convey.So(cfg.ReplacementDepth["K"], convey.ShouldEqual, 12)
				convey.So(cfg.ReplacementDepth["QB"], convey.ShouldEqual, 20)
				convey.So(cfg.TierCounts["QB"], convey.ShouldEqual, 6)
				convey.So(cfg.ClusterSeed, convey.ShouldEqual, int64(7))
				convey.So(cfg.ClusterTolerance, convey.ShouldEqual, 0.01)
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			clearConfigEnvVars(t)
			path := createTempConfigFile(t, "addr: \":9090\"\nworkers: 24\n")
			t.Setenv("DRAFTBOARD_CONFIG", path)
			t.Setenv("DRAFTBOARD_WORKERS", "32")

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.Workers, convey.ShouldEqual, 32)
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			clearConfigEnvVars(t)
			t.Setenv("DRAFTBOARD_CONFIG", createTempConfigFile(t, `invalid: yaml: content: [`))

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(err, convey.ShouldWrap, config.ErrLoadConfig)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			clearConfigEnvVars(t)
			t.Setenv("DRAFTBOARD_CONFIG", "/non/existent/file.yaml")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			clearConfigEnvVars(t)
			t.Setenv("DRAFTBOARD_WORKERS", "not_a_number")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with an empty addr", func() {
			clearConfigEnvVars(t)
			t.Setenv("DRAFTBOARD_CONFIG", createTempConfigFile(t, "addr: \"\"\n"))

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(err, convey.ShouldWrap, config.ErrInvalidConfig)
				convey.So(err.Error(), convey.ShouldContainSubstring, "Addr")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with a zero worker count", func() {
			clearConfigEnvVars(t)
			t.Setenv("DRAFTBOARD_WORKERS", "0")

			_, err := config.Load(ctx)

			convey.Convey("Then validation rejects it", func() {
				convey.So(err, convey.ShouldWrap, config.ErrInvalidConfig)
			})
		})
	})
}

// Helper functions.

func clearConfigEnvVars(t *testing.T) {
	t.Helper()
	for _, kv := range os.Environ() {
		for i := 0; i < len(kv); i++ {
			if kv[i] == '=' {
				key := kv[:i]
				if len(key) >= len(config.EnvPrefix) && key[:len(config.EnvPrefix)] == config.EnvPrefix {
					t.Setenv(key, "")
					_ = os.Unsetenv(key)
				}
				break
			}
		}
	}
}

func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "draftboard.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}
