package model_test

import (
	"testing"

	"github.com/cmsperf/topreco/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
	"go-hep.org/x/hep/fmom"
)

func TestPairMatrix(t *testing.T) {
	Convey("Given a slice of top pairs", t, func() {
		pairs := []model.TopPair{
			{
				Top:  fmom.NewPxPyPzE(10, 20, 30, 200),
				Tbar: fmom.NewPxPyPzE(-10, -20, -30, 210),
			},
			{
				Top:  fmom.NewPxPyPzE(1, 2, 3, 180),
				Tbar: fmom.NewPxPyPzE(4, 5, 6, 190),
			},
		}

		Convey("When flattening to a matrix", func() {
			m := model.PairMatrix(pairs)
			rows, cols := m.Dims()

			Convey("Then the shape should be N x 8", func() {
				So(rows, ShouldEqual, 2)
				So(cols, ShouldEqual, model.PairCols)
			})

			Convey("And the column layout should interleave top and antitop", func() {
				So(m.At(0, 0), ShouldEqual, 10)  // t_px
				So(m.At(0, 1), ShouldEqual, -10) // tbar_px
				So(m.At(0, 6), ShouldEqual, 200) // t_E
				So(m.At(0, 7), ShouldEqual, 210) // tbar_E
			})

			Convey("And rebuilding pairs should round-trip", func() {
				back := model.PairsFromMatrix(m)
				So(len(back), ShouldEqual, 2)
				So(back[0].Top.Px(), ShouldEqual, pairs[0].Top.Px())
				So(back[1].Tbar.E(), ShouldEqual, pairs[1].Tbar.E())
			})
		})
	})
}

func TestEraSetAppend(t *testing.T) {
	Convey("Given an empty era set", t, func() {
		set := &model.EraSet{Era: "2018"}

		Convey("When appending two batches", func() {
			b1 := model.Batch{
				Era:     "2018",
				Gen:     []model.TopPair{{Top: fmom.NewPxPyPzE(1, 0, 0, 180)}},
				Weights: []float64{1.0},
			}
			b2 := model.Batch{
				Era:     "2018",
				Gen:     []model.TopPair{{Top: fmom.NewPxPyPzE(2, 0, 0, 180)}, {Top: fmom.NewPxPyPzE(3, 0, 0, 180)}},
				Weights: []float64{0.5, 0.7},
			}
			set.Append(b1)
			set.Append(b2)

			Convey("Then rows should concatenate in order", func() {
				So(set.Events(), ShouldEqual, 3)
				So(set.Weights, ShouldResemble, []float64{1.0, 0.5, 0.7})
				So(set.Gen[2].Top.Px(), ShouldEqual, 3)
			})
		})
	})
}

func TestFileJobKey(t *testing.T) {
	Convey("Given two jobs for the same file", t, func() {
		a := model.FileJob{Era: "2018", Channel: "emu", GenPath: "/data/x.root"}
		b := model.FileJob{Era: "2018", Channel: "emu", GenPath: "/data/x.root", PredPath: "/tf/x.root"}

		Convey("Then their keys should match regardless of prediction path", func() {
			So(a.Key(), ShouldEqual, b.Key())
		})
	})
}
