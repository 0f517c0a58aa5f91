// Package ingest reads reconstructed ttbar events from ROOT ntuples into
// domain batches.
package ingest

import (
	"context"
	"fmt"
	"time"

	"go-hep.org/x/hep/groot"
	"go-hep.org/x/hep/groot/riofs"
	"go-hep.org/x/hep/groot/rtree"

	"github.com/cmsperf/topreco/internal/domain/kinematics"
	"github.com/cmsperf/topreco/internal/domain/model"
	"github.com/cmsperf/topreco/pkg/logger"
	"github.com/cmsperf/topreco/pkg/metrics"
)

// Tree names inside the input files.
const (
	GenTree  = "ttBar_treeVariables_step7"
	PredTree = "predictions_step7"
	MaskTree = "reconstruction_mask"
)

// genEvent mirrors the gen-level tree layout. The top_* branches carry the
// mlb-weighting reconstruction; failed events are flagged with top_pt <= -1.
type genEvent struct {
	GenTopPt    float32 `groot:"gen_top_pt"`
	GenTopEta   float32 `groot:"gen_top_eta"`
	GenTopPhi   float32 `groot:"gen_top_phi"`
	GenTopMass  float32 `groot:"gen_top_mass"`
	GenTbarPt   float32 `groot:"gen_tbar_pt"`
	GenTbarEta  float32 `groot:"gen_tbar_eta"`
	GenTbarPhi  float32 `groot:"gen_tbar_phi"`
	GenTbarMass float32 `groot:"gen_tbar_mass"`

	TopPt    float32 `groot:"top_pt"`
	TopEta   float32 `groot:"top_eta"`
	TopPhi   float32 `groot:"top_phi"`
	TopMass  float32 `groot:"top_mass"`
	TbarPt   float32 `groot:"tbar_pt"`
	TbarEta  float32 `groot:"tbar_eta"`
	TbarPhi  float32 `groot:"tbar_phi"`
	TbarMass float32 `groot:"tbar_mass"`

	GenLPt     float32 `groot:"gen_l_pt"`
	GenLEta    float32 `groot:"gen_l_eta"`
	GenLPhi    float32 `groot:"gen_l_phi"`
	GenLMass   float32 `groot:"gen_l_mass"`
	GenLbarPt  float32 `groot:"gen_lbar_pt"`
	GenLbarEta float32 `groot:"gen_lbar_eta"`
	GenLbarPhi float32 `groot:"gen_lbar_phi"`
	GenLbarM   float32 `groot:"gen_lbar_mass"`

	Weight float32 `groot:"eventWeight"`
}

// predEvent mirrors the transformer prediction tree layout. Prediction trees
// hold selected events only, already aligned with the mask-passing rows of
// the gen tree.
type predEvent struct {
	TopPt    float32 `groot:"ml_top_pt"`
	TopEta   float32 `groot:"ml_top_eta"`
	TopPhi   float32 `groot:"ml_top_phi"`
	TopMass  float32 `groot:"ml_top_mass"`
	TbarPt   float32 `groot:"ml_tbar_pt"`
	TbarEta  float32 `groot:"ml_tbar_eta"`
	TbarPhi  float32 `groot:"ml_tbar_phi"`
	TbarMass float32 `groot:"ml_tbar_mass"`
}

// Reader ingests one file job at a time.
type Reader struct {
	log logger.Logger
}

// NewReader creates a ROOT file reader.
func NewReader() *Reader {
	return &Reader{log: logger.Named("ingest")}
}

// ReadFile reads the gen-level tree, the selection mask and, when the job
// carries one, the prediction file, and returns the masked batch.
func (r *Reader) ReadFile(ctx context.Context, job model.FileJob) (model.Batch, error) {
	start := time.Now()

	f, err := groot.Open(job.GenPath)
	if err != nil {
		metrics.RecordFileFailed()
		return model.Batch{}, fmt.Errorf("%w: %s: %v", ErrOpenFile, job.GenPath, err)
	}
	defer f.Close()

	events, err := readGenTree(f, job.WithMlb, job.WithLeptons)
	if err != nil {
		metrics.RecordFileFailed()
		return model.Batch{}, fmt.Errorf("%s: %w", job.GenPath, err)
	}
	metrics.RecordEventsRead(len(events))

	mask, err := readMaskTree(f, len(events))
	if err != nil {
		metrics.RecordFileFailed()
		return model.Batch{}, fmt.Errorf("%s: %w", job.GenPath, err)
	}

	batch := model.Batch{
		Era:     job.Era,
		Channel: job.Channel,
		File:    job.GenPath,
	}
	for i, ev := range events {
		if !mask[i] {
			continue
		}
		batch.Gen = append(batch.Gen, model.TopPair{
			Top:  kinematics.FromPtEtaPhiM(float64(ev.GenTopPt), float64(ev.GenTopEta), float64(ev.GenTopPhi), float64(ev.GenTopMass)),
			Tbar: kinematics.FromPtEtaPhiM(float64(ev.GenTbarPt), float64(ev.GenTbarEta), float64(ev.GenTbarPhi), float64(ev.GenTbarMass)),
		})
		batch.Weights = append(batch.Weights, float64(ev.Weight))
		if job.WithMlb {
			batch.Mlb = append(batch.Mlb, model.TopPair{
				Top:  kinematics.FromPtEtaPhiM(float64(ev.TopPt), float64(ev.TopEta), float64(ev.TopPhi), float64(ev.TopMass)),
				Tbar: kinematics.FromPtEtaPhiM(float64(ev.TbarPt), float64(ev.TbarEta), float64(ev.TbarPhi), float64(ev.TbarMass)),
			})
			batch.MlbOK = append(batch.MlbOK, ev.TopPt > -1)
		}
		if job.WithLeptons {
			batch.Leptons = append(batch.Leptons, model.LeptonPair{
				L:    kinematics.FromPtEtaPhiM(float64(ev.GenLPt), float64(ev.GenLEta), float64(ev.GenLPhi), float64(ev.GenLMass)),
				Lbar: kinematics.FromPtEtaPhiM(float64(ev.GenLbarPt), float64(ev.GenLbarEta), float64(ev.GenLbarPhi), float64(ev.GenLbarM)),
			})
		}
	}
	metrics.RecordEventsKept(len(batch.Gen))

	if job.PredPath != "" {
		batch.Tf, err = readPredictions(job.PredPath, len(batch.Gen))
		if err != nil {
			metrics.RecordFileFailed()
			return model.Batch{}, err
		}
	}

	metrics.RecordFileProcessed()
	metrics.RecordFileReadLatency(float64(time.Since(start).Milliseconds()))
	r.log.Debug(ctx, "file ingested",
		logger.String("era", job.Era),
		logger.String("channel", job.Channel),
		logger.String("file", job.GenPath),
		logger.Int("events_read", len(events)),
		logger.Int("events_kept", len(batch.Gen)),
	)
	return batch, nil
}

// genReadVars binds only the branches the job needs, so files without
// mlb or lepton branches stay readable when those blocks are off.
func genReadVars(ev *genEvent, withMlb, withLeptons bool) []rtree.ReadVar {
	vars := []rtree.ReadVar{
		{Name: "gen_top_pt", Value: &ev.GenTopPt},
		{Name: "gen_top_eta", Value: &ev.GenTopEta},
		{Name: "gen_top_phi", Value: &ev.GenTopPhi},
		{Name: "gen_top_mass", Value: &ev.GenTopMass},
		{Name: "gen_tbar_pt", Value: &ev.GenTbarPt},
		{Name: "gen_tbar_eta", Value: &ev.GenTbarEta},
		{Name: "gen_tbar_phi", Value: &ev.GenTbarPhi},
		{Name: "gen_tbar_mass", Value: &ev.GenTbarMass},
		{Name: "eventWeight", Value: &ev.Weight},
	}
	if withMlb {
		vars = append(vars,
			rtree.ReadVar{Name: "top_pt", Value: &ev.TopPt},
			rtree.ReadVar{Name: "top_eta", Value: &ev.TopEta},
			rtree.ReadVar{Name: "top_phi", Value: &ev.TopPhi},
			rtree.ReadVar{Name: "top_mass", Value: &ev.TopMass},
			rtree.ReadVar{Name: "tbar_pt", Value: &ev.TbarPt},
			rtree.ReadVar{Name: "tbar_eta", Value: &ev.TbarEta},
			rtree.ReadVar{Name: "tbar_phi", Value: &ev.TbarPhi},
			rtree.ReadVar{Name: "tbar_mass", Value: &ev.TbarMass},
		)
	}
	if withLeptons {
		vars = append(vars,
			rtree.ReadVar{Name: "gen_l_pt", Value: &ev.GenLPt},
			rtree.ReadVar{Name: "gen_l_eta", Value: &ev.GenLEta},
			rtree.ReadVar{Name: "gen_l_phi", Value: &ev.GenLPhi},
			rtree.ReadVar{Name: "gen_l_mass", Value: &ev.GenLMass},
			rtree.ReadVar{Name: "gen_lbar_pt", Value: &ev.GenLbarPt},
			rtree.ReadVar{Name: "gen_lbar_eta", Value: &ev.GenLbarEta},
			rtree.ReadVar{Name: "gen_lbar_phi", Value: &ev.GenLbarPhi},
			rtree.ReadVar{Name: "gen_lbar_mass", Value: &ev.GenLbarM},
		)
	}
	return vars
}

func readGenTree(f *riofs.File, withMlb, withLeptons bool) ([]genEvent, error) {
	obj, err := f.Get(GenTree)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingTree, GenTree)
	}
	tree, ok := obj.(rtree.Tree)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not a tree", ErrMissingTree, GenTree)
	}

	var (
		ev     genEvent
		events = make([]genEvent, 0, tree.Entries())
	)
	reader, err := rtree.NewReader(tree, genReadVars(&ev, withMlb, withLeptons))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMissingTree, GenTree, err)
	}
	defer reader.Close()

	err = reader.Read(func(rtree.RCtx) error {
		events = append(events, ev)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", GenTree, err)
	}
	return events, nil
}

// readMaskTree reads the event selection mask. A file without a mask tree
// selects every event.
func readMaskTree(f *riofs.File, entries int) ([]bool, error) {
	obj, err := f.Get(MaskTree)
	if err != nil {
		mask := make([]bool, entries)
		for i := range mask {
			mask[i] = true
		}
		return mask, nil
	}
	tree, ok := obj.(rtree.Tree)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not a tree", ErrMissingTree, MaskTree)
	}

	var (
		val  bool
		mask = make([]bool, 0, tree.Entries())
	)
	reader, err := rtree.NewReader(tree, []rtree.ReadVar{{Name: "mask", Value: &val}})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMissingTree, MaskTree, err)
	}
	defer reader.Close()

	err = reader.Read(func(rtree.RCtx) error {
		mask = append(mask, val)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", MaskTree, err)
	}

	if len(mask) != entries {
		return nil, fmt.Errorf("%w: %d mask entries vs %d events", ErrMaskMismatch, len(mask), entries)
	}
	return mask, nil
}

func readPredictions(path string, selected int) ([]model.TopPair, error) {
	f, err := groot.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrOpenFile, path, err)
	}
	defer f.Close()

	obj, err := f.Get(PredTree)
	if err != nil {
		return nil, fmt.Errorf("%w: %s in %s", ErrMissingTree, PredTree, path)
	}
	tree, ok := obj.(rtree.Tree)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not a tree", ErrMissingTree, PredTree)
	}

	var (
		ev    predEvent
		pairs = make([]model.TopPair, 0, tree.Entries())
	)
	reader, err := rtree.NewReader(tree, rtree.ReadVarsFromStruct(&ev))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMissingTree, PredTree, err)
	}
	defer reader.Close()

	err = reader.Read(func(rtree.RCtx) error {
		pairs = append(pairs, model.TopPair{
			Top:  kinematics.FromPtEtaPhiM(float64(ev.TopPt), float64(ev.TopEta), float64(ev.TopPhi), float64(ev.TopMass)),
			Tbar: kinematics.FromPtEtaPhiM(float64(ev.TbarPt), float64(ev.TbarEta), float64(ev.TbarPhi), float64(ev.TbarMass)),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", PredTree, err)
	}

	if len(pairs) != selected {
		return nil, fmt.Errorf("%w: %d predictions vs %d selected in %s",
			ErrPredictionMismatch, len(pairs), selected, path)
	}
	return pairs, nil
}
