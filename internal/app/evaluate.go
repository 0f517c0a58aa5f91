package service

import (
	"context"
	"fmt"

	"github.com/cmsperf/topreco/internal/adapters/plot"
	"github.com/cmsperf/topreco/internal/domain/binning"
	"github.com/cmsperf/topreco/internal/domain/kinematics"
	"github.com/cmsperf/topreco/internal/domain/model"
	"github.com/cmsperf/topreco/internal/domain/spincorr"
	"github.com/cmsperf/topreco/internal/domain/stats"
	"github.com/cmsperf/topreco/pkg/logger"
)

// spinVars marks the variables computed by the spin-correlation package
// instead of the kinematics package.
var spinVars = func() map[string]bool {
	m := make(map[string]bool, len(spincorr.Variables))
	for _, v := range spincorr.Variables {
		m[v] = true
	}
	return m
}()

// methodSeries is one reconstruction method of an era: its top pairs and,
// for mlb-weighting, the per-row success mask.
type methodSeries struct {
	method model.Method
	pairs  []model.TopPair
	ok     []bool
}

// Evaluate loads every persisted era and renders its distribution and
// resolution figures.
func (s *Service) Evaluate(ctx context.Context) error {
	eras, err := s.store.Eras(ctx)
	if err != nil {
		return fmt.Errorf("listing eras: %w", err)
	}
	if len(eras) == 0 {
		return ErrNoArrays
	}

	for _, era := range eras {
		set, err := s.store.ReadEra(ctx, era)
		if err != nil {
			return fmt.Errorf("loading era %s: %w", era, err)
		}
		if err := s.evaluateEra(ctx, set); err != nil {
			return fmt.Errorf("evaluating era %s: %w", era, err)
		}
	}
	return nil
}

func (s *Service) evaluateEra(ctx context.Context, set *model.EraSet) error {
	s.logger.Info(ctx, "evaluating era",
		logger.String("era", set.Era),
		logger.Int("events", set.Events()),
	)

	methods := eraMethods(set)
	kinDir := s.cfg.KinematicsDir(set.Era)
	rmseDir := s.cfg.RmseDir(set.Era)

	if set.Leptons != nil {
		if err := s.plotSpinCorrelations(set, kinDir); err != nil {
			return err
		}
	}

	for _, name := range binning.KinematicsOrder {
		if spinVars[name] {
			continue
		}
		if err := s.plotVariable(set, methods, name, kinDir); err != nil {
			return err
		}
	}

	for _, name := range binning.ResolutionOrder {
		if err := s.plotResolution(set, methods, name, rmseDir); err != nil {
			return err
		}
	}
	return nil
}

// plotSpinCorrelations renders the gen-level spin-correlation distributions.
func (s *Service) plotSpinCorrelations(set *model.EraSet, dir string) error {
	spin, err := spincorr.Compute(set.Gen, set.Leptons)
	if err != nil {
		return fmt.Errorf("spin correlations: %w", err)
	}
	for _, name := range spincorr.Variables {
		spec, ok := binning.Kinematics[name]
		if !ok {
			continue
		}
		target := plot.Series{Method: model.MethodGen, Values: spin[name]}
		if err := plot.Hist1D(dir, name, spec, target, nil, set.Weights, set.Era); err != nil {
			return err
		}
	}
	return nil
}

// plotVariable renders the 1D overlay and the per-method 2D heat maps of one
// kinematic variable.
func (s *Service) plotVariable(set *model.EraSet, methods []methodSeries, name, dir string) error {
	spec := binning.Kinematics[name]
	genVals, err := kinematics.Compute(name, set.Gen)
	if err != nil {
		return err
	}

	var overlays []plot.Series
	for _, m := range methods {
		vals, err := kinematics.Compute(name, m.pairs)
		if err != nil {
			return err
		}

		g, v, w := genVals, vals, set.Weights
		if m.ok != nil {
			g = maskRows(genVals, m.ok)
			v = maskRows(vals, m.ok)
			w = maskRows(set.Weights, m.ok)
		}
		overlays = append(overlays, plot.Series{Method: m.method, Values: v, Weights: w})

		if err := plot.Hist2D(dir, name, spec, g, v, w, m.method, set.Era); err != nil {
			return err
		}
	}

	target := plot.Series{Method: model.MethodGen, Values: genVals}
	return plot.Hist1D(dir, name, spec, target, overlays, set.Weights, set.Era)
}

// plotResolution renders the binned RMSE and bias figure of one variable.
func (s *Service) plotResolution(set *model.EraSet, methods []methodSeries, name, dir string) error {
	edges := binning.Resolution[name]
	genVals, err := kinematics.Compute(name, set.Gen)
	if err != nil {
		return err
	}

	var ms []plot.MethodStats
	for _, m := range methods {
		vals, err := kinematics.Compute(name, m.pairs)
		if err != nil {
			return err
		}

		g, v, w := genVals, vals, set.Weights
		if m.ok != nil {
			g = maskRows(genVals, m.ok)
			v = maskRows(vals, m.ok)
			w = maskRows(set.Weights, m.ok)
		}

		res := make([]float64, len(v))
		for i := range v {
			res[i] = v[i] - g[i]
		}
		binned, err := stats.ComputeBinned(g, res, w, edges)
		if err != nil {
			return err
		}
		ms = append(ms, plot.MethodStats{Method: m.method, Binned: binned})
	}

	if len(ms) == 0 {
		return nil
	}
	return plot.Resolution(dir, name, edges, ms, set.Era)
}

func eraMethods(set *model.EraSet) []methodSeries {
	var out []methodSeries
	if set.Mlb != nil {
		out = append(out, methodSeries{method: model.MethodMlb, pairs: set.Mlb, ok: set.MlbOK})
	}
	if set.Tf != nil {
		out = append(out, methodSeries{method: model.MethodTransformer, pairs: set.Tf})
	}
	return out
}

// maskRows keeps the rows flagged true.
func maskRows[T any](rows []T, ok []bool) []T {
	out := make([]T, 0, len(rows))
	for i, keep := range ok {
		if keep {
			out = append(out, rows[i])
		}
	}
	return out
}
