package plot

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go-hep.org/x/hep/hbook"
	"go-hep.org/x/hep/hplot"
	gplot "gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"github.com/cmsperf/topreco/internal/domain/binning"
	"github.com/cmsperf/topreco/internal/domain/labels"
	"github.com/cmsperf/topreco/internal/domain/model"
	"github.com/cmsperf/topreco/pkg/metrics"
)

// Series is one histogram entry of a 1D figure. A nil Weights falls back to
// the figure-wide weights; a series drawn from a row subset (e.g. only the
// events a method reconstructed) carries its own aligned weights.
type Series struct {
	Method  model.Method
	Values  []float64
	Weights []float64
}

// Hist1D renders the density-normalized distribution of one variable: the
// target series drawn filled, each overlay drawn as a step outline, and
// saves it as <dir>/<variable>.pdf.
func Hist1D(dir, variable string, spec binning.Spec, target Series, overlays []Series, weights []float64, era string) error {
	start := time.Now()

	title, err := cmsLabel(era)
	if err != nil {
		return err
	}
	if len(target.Values) == 0 {
		return fmt.Errorf("%w: %s %s", ErrNoData, era, variable)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrRender, dir, err)
	}

	p := hplot.New()
	p.Title.Text = title
	p.X.Label.Text = labels.For(variable)
	p.Y.Label.Text = "Density"
	if spec.PiTicks {
		p.X.Tick.Marker = piTicks()
	}

	th := fillFolded(spec, target.Values, seriesWeights(target, weights))
	hh := hplot.NewH1D(th)
	hh.FillColor = withAlpha(MethodColor(target.Method), 0xb2)
	hh.LineStyle.Color = MethodColor(target.Method)
	p.Add(hh)
	p.Legend.Add(labels.Legend[string(target.Method)], hh)

	for _, s := range overlays {
		if len(s.Values) == 0 {
			continue
		}
		oh := fillFolded(spec, s.Values, seriesWeights(s, weights))
		hp := hplot.NewH1D(oh)
		hp.FillColor = nil
		hp.LineStyle.Color = MethodColor(s.Method)
		hp.LineStyle.Width = vg.Points(1.5)
		p.Add(hp)
		p.Legend.Add(labels.Legend[string(s.Method)], hp)
	}

	p.Legend.Top = true
	p.Legend.Left = false

	out := filepath.Join(dir, variable+".pdf")
	if err := p.Save(16*vg.Centimeter, 14*vg.Centimeter, out); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrRender, out, err)
	}
	metrics.RecordPlotWritten()
	metrics.RecordPlotRenderLatency(float64(time.Since(start).Milliseconds()))
	return nil
}

func seriesWeights(s Series, shared []float64) []float64 {
	if s.Weights != nil {
		return s.Weights
	}
	return shared
}

// fillFolded fills a density-normalized weighted histogram over the spec's
// axis, folding underflow and overflow into the first and last bins.
func fillFolded(spec binning.Spec, values, weights []float64) *hbook.H1D {
	h := hbook.NewH1D(spec.Bins, spec.Min, spec.Max)

	width := (spec.Max - spec.Min) / float64(spec.Bins)
	lo := spec.Min + width/2
	hi := spec.Max - width/2

	for i, v := range values {
		switch {
		case v < spec.Min:
			v = lo
		case v >= spec.Max:
			v = hi
		}
		w := 1.0
		if weights != nil {
			w = weights[i]
		}
		h.Fill(v, w)
	}

	if integral := h.Integral(); integral > 0 {
		h.Scale(1 / (integral * width))
	}
	return h
}

// piTicks marks the x axis at multiples of pi/2.
func piTicks() gplot.ConstantTicks {
	ticks := make([]gplot.Tick, len(binning.PiTickValues))
	for i, v := range binning.PiTickValues {
		ticks[i] = gplot.Tick{Value: v, Label: binning.PiTickLabels[i]}
	}
	return gplot.ConstantTicks(ticks)
}
