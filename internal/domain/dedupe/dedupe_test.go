package dedupe_test

import (
	"context"
	"fmt"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/cmsperf/topreco/internal/domain/dedupe"
)

func TestInMemoryDeduper(t *testing.T) {
	ctx := context.Background()

	Convey("Given an unbounded deduper", t, func() {
		d := dedupe.NewInMemoryDeduper()

		Convey("When recording a key twice", func() {
			first := d.SeenAndRecord(ctx, "2018/emu/signal.root")
			second := d.SeenAndRecord(ctx, "2018/emu/signal.root")

			Convey("Then only the second call reports it as seen", func() {
				So(first, ShouldBeFalse)
				So(second, ShouldBeTrue)
				So(d.Size(), ShouldEqual, 1)
			})
		})

		Convey("When unrecording a key", func() {
			d.SeenAndRecord(ctx, "2018/ee/signal.root")
			d.Unrecord(ctx, "2018/ee/signal.root")

			Convey("Then the key can be recorded again", func() {
				So(d.SeenAndRecord(ctx, "2018/ee/signal.root"), ShouldBeFalse)
				So(d.Size(), ShouldEqual, 1)
			})
		})

		Convey("When unrecording an unknown key", func() {
			d.Unrecord(ctx, "never-seen")

			Convey("Then the size is unchanged", func() {
				So(d.Size(), ShouldEqual, 0)
			})
		})
	})

	Convey("Given a bounded deduper with room for two keys", t, func() {
		d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(2))

		Convey("When recording three keys", func() {
			for i := 0; i < 3; i++ {
				d.SeenAndRecord(ctx, fmt.Sprintf("file-%d", i))
			}

			Convey("Then the size stays at the cap", func() {
				So(d.Size(), ShouldEqual, 2)
			})

			Convey("Then the oldest key is still remembered", func() {
				So(d.SeenAndRecord(ctx, "file-0"), ShouldBeTrue)
			})
		})
	})
}
