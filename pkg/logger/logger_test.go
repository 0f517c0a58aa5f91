package logger_test

import (
	"context"
	"testing"

	"github.com/cmsperf/topreco/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLogger(t *testing.T) {
	Convey("Given an initialized global logger", t, func() {
		err := logger.Init()
		So(err, ShouldBeNil)

		Convey("When fetching the global logger", func() {
			l := logger.Get()
			So(l, ShouldNotBeNil)

			Convey("Then logging at every level should not panic", func() {
				ctx := context.Background()
				So(func() {
					l.Debug(ctx, "debug message", logger.String("k", "v"))
					l.Info(ctx, "info message", logger.Int("n", 1))
					l.Warn(ctx, "warn message", logger.Float64("x", 1.5))
					l.Error(ctx, "error message", logger.Any("v", []int{1, 2}))
				}, ShouldNotPanic)
			})
		})

		Convey("When deriving a named logger", func() {
			l := logger.Named("extract")
			So(l, ShouldNotBeNil)
			So(func() {
				l.Info(context.Background(), "named message")
			}, ShouldNotPanic)
		})

		Convey("When setting the level from a string", func() {
			So(logger.SetLevelString("debug"), ShouldBeNil)
			So(logger.SetLevelString("WARN"), ShouldBeNil)
			So(logger.SetLevelString(""), ShouldBeNil)
			So(logger.SetLevelString("loud"), ShouldNotBeNil)
			So(logger.SetLevelString("info"), ShouldBeNil)
		})
	})
}
