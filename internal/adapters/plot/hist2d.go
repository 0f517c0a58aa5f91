package plot

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"go-hep.org/x/hep/hbook"
	"go-hep.org/x/hep/hplot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/cmsperf/topreco/internal/domain/binning"
	"github.com/cmsperf/topreco/internal/domain/labels"
	"github.com/cmsperf/topreco/internal/domain/model"
	"github.com/cmsperf/topreco/pkg/metrics"
)

// Hist2D renders the reconstructed value of one variable against its target
// value as a log-scaled heat map with a diagonal reference line, saved as
// <dir>/<method>_vs_gen_<variable>.pdf.
func Hist2D(dir, variable string, spec binning.Spec, gen, reco, weights []float64, method model.Method, era string) error {
	start := time.Now()

	title, err := cmsLabel(era)
	if err != nil {
		return err
	}
	if len(gen) == 0 || len(gen) != len(reco) {
		return fmt.Errorf("%w: %s %s (%d gen vs %d reco)", ErrNoData, era, variable, len(gen), len(reco))
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrRender, dir, err)
	}

	h := hbook.NewH2D(spec.Bins, spec.Min, spec.Max, spec.Bins, spec.Min, spec.Max)
	var sumw float64
	for _, w := range weights {
		sumw += w
	}
	for i := range gen {
		w := 1.0
		if weights != nil && sumw > 0 {
			w = weights[i] / sumw
		}
		h.Fill(gen[i], reco[i], w)
	}

	p := hplot.New()
	p.Title.Text = title
	p.X.Label.Text = "Target " + labels.For(variable)
	p.Y.Label.Text = labels.Legend[string(method)] + " " + labels.For(variable)

	hm := plotter.NewHeatMap(logGrid{h.GridXYZ()}, palette.Heat(16, 1))
	p.Add(hm)

	diag := plotter.XYs{{X: spec.Min, Y: spec.Min}, {X: spec.Max, Y: spec.Max}}
	line, err := plotter.NewLine(diag)
	if err != nil {
		return fmt.Errorf("%w: diagonal: %v", ErrRender, err)
	}
	line.LineStyle.Color = ColorRed
	line.LineStyle.Width = vg.Points(1)
	p.Add(line)

	out := filepath.Join(dir, string(method)+"_vs_gen_"+variable+".pdf")
	if err := p.Save(18*vg.Centimeter, 14*vg.Centimeter, out); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrRender, out, err)
	}
	metrics.RecordPlotWritten()
	metrics.RecordPlotRenderLatency(float64(time.Since(start).Milliseconds()))
	return nil
}

// logGrid compresses bin contents with log10(1+z) so sparse tails stay
// visible next to the bulk of the distribution.
type logGrid struct {
	plotter.GridXYZ
}

func (g logGrid) Z(c, r int) float64 {
	return math.Log10(1 + g.GridXYZ.Z(c, r))
}
