package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/cmsperf/topreco/internal/adapters/http/debug"
	service "github.com/cmsperf/topreco/internal/app"
	"github.com/cmsperf/topreco/internal/config"
	"github.com/cmsperf/topreco/pkg/logger"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

func TestMainFunction(t *testing.T) {
	convey.Convey("Given the pipeline binary", t, func() {
		convey.Convey("When loading configuration from the environment", func() {
			_ = os.Setenv("TOPRECO_OUTPUT_DIR", t.TempDir())
			_ = os.Setenv("TOPRECO_WORKER_COUNT", "4")
			_ = os.Setenv("TOPRECO_QUEUE_SIZE", "256")
			defer func() {
				_ = os.Unsetenv("TOPRECO_OUTPUT_DIR")
				_ = os.Unsetenv("TOPRECO_WORKER_COUNT")
				_ = os.Unsetenv("TOPRECO_QUEUE_SIZE")
			}()

			cfg, err := config.Load(context.Background())
			convey.So(err, convey.ShouldBeNil)
			convey.So(cfg.WorkerCount, convey.ShouldEqual, 4)
			convey.So(cfg.QueueSize, convey.ShouldEqual, 256)
		})

		convey.Convey("When creating the service", func() {
			cfg := config.New()
			cfg.OutputDir = t.TempDir()

			svc := service.New(cfg)
			convey.So(svc, convey.ShouldNotBeNil)
			convey.So(svc.RunID(), convey.ShouldNotBeEmpty)
		})

		convey.Convey("When setting the log level", func() {
			convey.So(logger.Init(), convey.ShouldBeNil)
			convey.So(logger.SetLevelString("debug"), convey.ShouldBeNil)
			convey.So(logger.SetLevelString("nonsense"), convey.ShouldNotBeNil)
		})

		convey.Convey("When serving the debug endpoints", func() {
			cfg := config.New()
			cfg.OutputDir = t.TempDir()
			svc := service.New(cfg)

			srv := debug.NewServer(":0", svc.RunID())
			rec := httptest.NewRecorder()
			srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
			convey.So(rec.Code, convey.ShouldEqual, http.StatusOK)
		})
	})
}
