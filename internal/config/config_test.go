package config_test

import (
	"testing"

	"github.com/okian/pokedex/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.Addr, convey.ShouldEqual, ":8000")
			convey.So(cfg.BaseURL, convey.ShouldEqual, "https://pokeapi.co/api/v2")
			convey.So(cfg.RequestTimeoutMS, convey.ShouldEqual, 5_000)
			convey.So(cfg.BatchSize, convey.ShouldEqual, 25)
			convey.So(cfg.CacheFile, convey.ShouldEqual, "./pokemon-cache.json")
			convey.So(cfg.MaxPageLimit, convey.ShouldEqual, 100)
			convey.So(cfg.RateLimitWindowMS, convey.ShouldEqual, 900_000)
			convey.So(cfg.RateLimitMax, convey.ShouldEqual, 100)
			convey.So(cfg.RateLimitMaxClients, convey.ShouldEqual, 500)
			convey.So(cfg.RateLimitSweepIntervalMS, convey.ShouldEqual, 60_000)
		})
	})
}
