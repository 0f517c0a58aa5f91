package ingest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/cmsperf/topreco/internal/config"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestScan(t *testing.T) {
	ctx := context.Background()

	Convey("Given dataset and prediction directories for one era", t, func() {
		root := t.TempDir()
		data := filepath.Join(root, "data", "2018")
		preds := filepath.Join(root, "preds", "2018")

		touch(t, filepath.Join(data, "emu", "ttbarsignalplustau.root"))
		touch(t, filepath.Join(data, "emu", "ttbarsignal_boundstate.root"))
		touch(t, filepath.Join(data, "emu", "dyjets.root"))
		touch(t, filepath.Join(data, "ee", "ttbarsignalplustau.root"))
		touch(t, filepath.Join(preds, "emu", "ttbarsignalplustau.root"))
		touch(t, filepath.Join(preds, "ee", "ttbarsignalplustau.root"))

		cfg := config.New()
		cfg.Channels = []string{"ee", "emu"}
		cfg.Datasets = map[string]string{"2018": data}
		cfg.Predictions = map[string]string{"2018": preds}

		Convey("When scanning", func() {
			jobs, err := NewScanner(cfg).Scan(ctx)

			Convey("Then only signal files without the veto substring are selected", func() {
				So(err, ShouldBeNil)
				So(jobs, ShouldHaveLength, 2)
				So(jobs[0].Channel, ShouldEqual, "ee")
				So(jobs[1].Channel, ShouldEqual, "emu")
			})

			Convey("Then each job carries its prediction path and flags", func() {
				So(jobs[1].PredPath, ShouldEqual, filepath.Join(preds, "emu", "ttbarsignalplustau.root"))
				So(jobs[1].WithMlb, ShouldBeTrue)
				So(jobs[1].WithLeptons, ShouldBeTrue)
			})
		})

		Convey("When the era has no prediction directory configured", func() {
			cfg.Predictions = map[string]string{}
			jobs, err := NewScanner(cfg).Scan(ctx)

			Convey("Then the jobs are prediction-less", func() {
				So(err, ShouldBeNil)
				So(jobs, ShouldHaveLength, 2)
				So(jobs[0].PredPath, ShouldBeEmpty)
			})
		})

		Convey("When a prediction file is missing", func() {
			So(os.Remove(filepath.Join(preds, "emu", "ttbarsignalplustau.root")), ShouldBeNil)
			_, err := NewScanner(cfg).Scan(ctx)

			Convey("Then scanning fails with a missing-prediction error", func() {
				So(errors.Is(err, ErrMissingPrediction), ShouldBeTrue)
			})
		})

		Convey("When a dataset directory does not exist", func() {
			cfg.Datasets["2017"] = filepath.Join(root, "nope")
			_, err := NewScanner(cfg).Scan(ctx)

			Convey("Then scanning fails with a scan error", func() {
				So(errors.Is(err, ErrScanDataset), ShouldBeTrue)
			})
		})
	})
}
