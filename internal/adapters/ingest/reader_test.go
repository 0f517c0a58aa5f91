package ingest

import (
	"context"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"go-hep.org/x/hep/groot"
	"go-hep.org/x/hep/groot/rtree"

	"github.com/cmsperf/topreco/internal/domain/model"
	"github.com/cmsperf/topreco/pkg/logger"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

func writeGenFile(t *testing.T, path string, events []genEvent, mask []bool) {
	t.Helper()

	f, err := groot.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	var ev genEvent
	w, err := rtree.NewWriter(f, GenTree, rtree.WriteVarsFromStruct(&ev))
	if err != nil {
		t.Fatalf("gen writer: %v", err)
	}
	for _, e := range events {
		ev = e
		if _, err := w.Write(); err != nil {
			t.Fatalf("write gen event: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close gen writer: %v", err)
	}

	if mask != nil {
		var val bool
		mw, err := rtree.NewWriter(f, MaskTree, []rtree.WriteVar{{Name: "mask", Value: &val}})
		if err != nil {
			t.Fatalf("mask writer: %v", err)
		}
		for _, m := range mask {
			val = m
			if _, err := mw.Write(); err != nil {
				t.Fatalf("write mask entry: %v", err)
			}
		}
		if err := mw.Close(); err != nil {
			t.Fatalf("close mask writer: %v", err)
		}
	}
}

// writeGenOnlyFile writes a gen tree carrying only the gen-level top
// branches and the event weight, like prediction-only era files.
func writeGenOnlyFile(t *testing.T, path string, events []genEvent) {
	t.Helper()

	f, err := groot.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	var ev genEvent
	w, err := rtree.NewWriter(f, GenTree, []rtree.WriteVar{
		{Name: "gen_top_pt", Value: &ev.GenTopPt},
		{Name: "gen_top_eta", Value: &ev.GenTopEta},
		{Name: "gen_top_phi", Value: &ev.GenTopPhi},
		{Name: "gen_top_mass", Value: &ev.GenTopMass},
		{Name: "gen_tbar_pt", Value: &ev.GenTbarPt},
		{Name: "gen_tbar_eta", Value: &ev.GenTbarEta},
		{Name: "gen_tbar_phi", Value: &ev.GenTbarPhi},
		{Name: "gen_tbar_mass", Value: &ev.GenTbarMass},
		{Name: "eventWeight", Value: &ev.Weight},
	})
	if err != nil {
		t.Fatalf("gen-only writer: %v", err)
	}
	for _, e := range events {
		ev = e
		if _, err := w.Write(); err != nil {
			t.Fatalf("write gen event: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close gen-only writer: %v", err)
	}
}

func writePredFile(t *testing.T, path string, events []predEvent) {
	t.Helper()

	f, err := groot.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	var ev predEvent
	w, err := rtree.NewWriter(f, PredTree, rtree.WriteVarsFromStruct(&ev))
	if err != nil {
		t.Fatalf("pred writer: %v", err)
	}
	for _, e := range events {
		ev = e
		if _, err := w.Write(); err != nil {
			t.Fatalf("write prediction: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close pred writer: %v", err)
	}
}

func genEventAt(genPt, mlbPt float32) genEvent {
	return genEvent{
		GenTopPt: genPt, GenTopEta: 0.4, GenTopPhi: 0.1, GenTopMass: 172.5,
		GenTbarPt: genPt, GenTbarEta: -0.4, GenTbarPhi: -3.0, GenTbarMass: 172.5,
		TopPt: mlbPt, TopEta: 0.5, TopPhi: 0.2, TopMass: 172.5,
		TbarPt: mlbPt, TbarEta: -0.5, TbarPhi: -2.9, TbarMass: 172.5,
		GenLPt: 30, GenLEta: 1.0, GenLPhi: 0.5, GenLMass: 0,
		GenLbarPt: 35, GenLbarEta: -1.0, GenLbarPhi: -0.5, GenLbarM: 0,
		Weight: 1.5,
	}
}

func TestReadFile(t *testing.T) {
	ctx := context.Background()

	Convey("Given a gen file with a mask and a matching prediction file", t, func() {
		dir := t.TempDir()
		genPath := filepath.Join(dir, "ttbarsignalplustau.root")
		predPath := filepath.Join(dir, "predictions.root")

		writeGenFile(t, genPath, []genEvent{
			genEventAt(120, 110),
			genEventAt(90, -1), // mlb failed
			genEventAt(200, 190),
		}, []bool{true, true, false})
		writePredFile(t, predPath, []predEvent{
			{TopPt: 115, TopEta: 0.4, TopPhi: 0.1, TopMass: 172.5, TbarPt: 115, TbarEta: -0.4, TbarPhi: -3.0, TbarMass: 172.5},
			{TopPt: 95, TopEta: 0.3, TopPhi: 0.2, TopMass: 172.5, TbarPt: 95, TbarEta: -0.3, TbarPhi: -2.8, TbarMass: 172.5},
		})

		job := model.FileJob{
			Era: "2018", Channel: "emu",
			GenPath: genPath, PredPath: predPath,
			WithMlb: true, WithLeptons: true,
		}

		Convey("When reading the file", func() {
			batch, err := NewReader().ReadFile(ctx, job)

			Convey("Then only mask-passing events survive", func() {
				So(err, ShouldBeNil)
				So(batch.Gen, ShouldHaveLength, 2)
				So(batch.Weights, ShouldResemble, []float64{1.5, 1.5})
			})

			Convey("Then the gen kinematics round-trip through the conversion", func() {
				So(batch.Gen[0].Top.Pt(), ShouldAlmostEqual, 120, 1e-3)
				So(batch.Gen[0].Top.M(), ShouldAlmostEqual, 172.5, 1e-3)
			})

			Convey("Then the mlb failure flag is recorded", func() {
				So(batch.MlbOK, ShouldResemble, []bool{true, false})
			})

			Convey("Then predictions and leptons are aligned with the selection", func() {
				So(batch.Tf, ShouldHaveLength, 2)
				So(batch.Leptons, ShouldHaveLength, 2)
				So(batch.Tf[0].Top.Pt(), ShouldAlmostEqual, 115, 1e-3)
				So(batch.Leptons[0].Lbar.Pt(), ShouldAlmostEqual, 35, 1e-3)
			})
		})

		Convey("When reading without mlb and leptons", func() {
			job.WithMlb = false
			job.WithLeptons = false
			batch, err := NewReader().ReadFile(ctx, job)

			Convey("Then the optional blocks stay empty", func() {
				So(err, ShouldBeNil)
				So(batch.Mlb, ShouldBeNil)
				So(batch.MlbOK, ShouldBeNil)
				So(batch.Leptons, ShouldBeNil)
			})
		})

		Convey("When the prediction count does not match the selection", func() {
			writePredFile(t, predPath, []predEvent{{TopPt: 115}})
			_, err := NewReader().ReadFile(ctx, job)

			Convey("Then a prediction-mismatch error is returned", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "prediction")
			})
		})
	})

	Convey("Given a gen file without a mask tree", t, func() {
		dir := t.TempDir()
		genPath := filepath.Join(dir, "ttbarsignalplustau.root")
		writeGenFile(t, genPath, []genEvent{genEventAt(100, 95)}, nil)

		Convey("When reading the file", func() {
			batch, err := NewReader().ReadFile(ctx, model.FileJob{Era: "2017", Channel: "ee", GenPath: genPath})

			Convey("Then every event is selected", func() {
				So(err, ShouldBeNil)
				So(batch.Gen, ShouldHaveLength, 1)
				So(batch.Tf, ShouldBeNil)
			})
		})
	})

	Convey("Given a gen file carrying only the gen-level branches", t, func() {
		dir := t.TempDir()
		genPath := filepath.Join(dir, "ttbarsignalplustau.root")
		writeGenOnlyFile(t, genPath, []genEvent{genEventAt(100, 0), genEventAt(140, 0)})

		Convey("When reading with the mlb and lepton blocks off", func() {
			batch, err := NewReader().ReadFile(ctx, model.FileJob{
				Era: "2022", Channel: "mumu", GenPath: genPath,
			})

			Convey("Then the file reads cleanly without the absent branches", func() {
				So(err, ShouldBeNil)
				So(batch.Gen, ShouldHaveLength, 2)
				So(batch.Mlb, ShouldBeNil)
				So(batch.Leptons, ShouldBeNil)
				So(batch.Gen[1].Top.Pt(), ShouldAlmostEqual, 140, 1e-3)
			})
		})

		Convey("When reading with the mlb block on", func() {
			_, err := NewReader().ReadFile(ctx, model.FileJob{
				Era: "2022", Channel: "mumu", GenPath: genPath, WithMlb: true,
			})

			Convey("Then the missing branches surface as an error", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})

	Convey("Given a path that does not exist", t, func() {
		Convey("When reading the file", func() {
			_, err := NewReader().ReadFile(ctx, model.FileJob{GenPath: filepath.Join(t.TempDir(), "missing.root")})

			Convey("Then an open error is returned", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}
