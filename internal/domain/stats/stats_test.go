package stats_test

import (
	"errors"
	"math"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/cmsperf/topreco/internal/domain/stats"
)

func TestWeightedMoments(t *testing.T) {
	Convey("Given a simple weighted sample", t, func() {
		xs := []float64{1, 2, 3, 4}
		ws := []float64{1, 1, 1, 1}

		Convey("When computing the weighted mean", func() {
			m := stats.WeightedMean(xs, ws)

			Convey("Then it matches the arithmetic mean", func() {
				So(m, ShouldAlmostEqual, 2.5, 1e-12)
			})
		})

		Convey("When computing the weighted RMS", func() {
			r := stats.WeightedRMS(xs, ws)

			Convey("Then it is sqrt(mean of squares)", func() {
				So(r, ShouldAlmostEqual, math.Sqrt(30.0/4.0), 1e-12)
			})
		})

		Convey("When a single entry carries all the weight", func() {
			m := stats.WeightedMean(xs, []float64{0, 0, 0, 5})

			Convey("Then the mean collapses to that entry", func() {
				So(m, ShouldAlmostEqual, 4, 1e-12)
			})
		})
	})

	Convey("Given empty input", t, func() {
		Convey("When computing any statistic", func() {
			Convey("Then all of them return zero", func() {
				So(stats.WeightedMean(nil, nil), ShouldEqual, 0)
				So(stats.WeightedRMS(nil, nil), ShouldEqual, 0)
				So(stats.WeightedVariance(nil, nil), ShouldEqual, 0)
				So(stats.Median(nil), ShouldEqual, 0)
				So(stats.Q84Q16(nil), ShouldEqual, 0)
			})
		})
	})

	Convey("Given an odd-length sample", t, func() {
		xs := []float64{5, 1, 3}

		Convey("When computing the median", func() {
			m := stats.Median(xs)

			Convey("Then the middle element is returned and the input is untouched", func() {
				So(m, ShouldEqual, 3)
				So(xs[0], ShouldEqual, 5)
			})
		})
	})
}

func TestComputeBinned(t *testing.T) {
	Convey("Given residuals spread over two bins", t, func() {
		// 6 events land in [0,1), only 2 in [1,2).
		gen := []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 1.2, 1.8}
		res := []float64{1, -1, 1, -1, 1, -1, 10, -10}
		edges := []float64{0, 1, 2}

		Convey("When computing the binned statistics", func() {
			b, err := stats.ComputeBinned(gen, res, nil, edges)

			Convey("Then the populated bin carries RMS and mean", func() {
				So(err, ShouldBeNil)
				So(b.Counts[0], ShouldEqual, 6)
				So(b.RMS[0], ShouldAlmostEqual, 1, 1e-12)
				So(b.Mean[0], ShouldAlmostEqual, 0, 1e-12)
			})

			Convey("Then the populated bin carries width and variance", func() {
				So(b.Width[0], ShouldAlmostEqual, 2, 1e-12)
				So(b.Variance[0], ShouldAlmostEqual, 1.2, 1e-12)
			})

			Convey("Then the underpopulated bin stays at zero", func() {
				So(b.Counts[1], ShouldEqual, 2)
				So(b.RMS[1], ShouldEqual, 0)
				So(b.Mean[1], ShouldEqual, 0)
				So(b.Width[1], ShouldEqual, 0)
				So(b.Variance[1], ShouldEqual, 0)
			})

			Convey("Then the bin centers are midpoints of the edges", func() {
				So(b.Centers, ShouldResemble, []float64{0.5, 1.5})
			})
		})
	})

	Convey("Given a value on the upper edge", t, func() {
		gen := []float64{2, 2, 2, 2, 2}
		res := []float64{1, 1, 1, 1, 1}

		Convey("When binning over [0,1,2]", func() {
			b, err := stats.ComputeBinned(gen, res, nil, []float64{0, 1, 2})

			Convey("Then it is folded into the last bin", func() {
				So(err, ShouldBeNil)
				So(b.Counts[1], ShouldEqual, 5)
			})
		})
	})

	Convey("Given misaligned inputs", t, func() {
		Convey("When computing the binned statistics", func() {
			_, err := stats.ComputeBinned([]float64{1}, []float64{1, 2}, nil, []float64{0, 1})

			Convey("Then a length-mismatch error is returned", func() {
				So(errors.Is(err, stats.ErrLengthMismatch), ShouldBeTrue)
			})
		})
	})

	Convey("Given a single edge", t, func() {
		Convey("When computing the binned statistics", func() {
			_, err := stats.ComputeBinned(nil, nil, nil, []float64{0})

			Convey("Then a bad-edges error is returned", func() {
				So(errors.Is(err, stats.ErrBadEdges), ShouldBeTrue)
			})
		})
	})
}
