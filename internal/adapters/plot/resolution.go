package plot

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"time"

	"go-hep.org/x/hep/hplot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/cmsperf/topreco/internal/domain/labels"
	"github.com/cmsperf/topreco/internal/domain/model"
	"github.com/cmsperf/topreco/internal/domain/stats"
	"github.com/cmsperf/topreco/pkg/metrics"
)

// MethodStats pairs a reconstruction method with its binned residual
// statistics.
type MethodStats struct {
	Method model.Method
	Binned stats.Binned
}

// Resolution renders RMSE and bias of the residuals against the gen value
// for every method on one canvas: RMSE as a solid step outline, bias as
// triangle markers, |bias| as a dashed step over the negative-bias bins,
// with a zero reference line. Saved as <dir>/<variable>.pdf.
func Resolution(dir, variable string, edges []float64, methods []MethodStats, era string) error {
	start := time.Now()

	title, err := cmsLabel(era)
	if err != nil {
		return err
	}
	if len(methods) == 0 || len(edges) < 2 {
		return fmt.Errorf("%w: %s %s", ErrNoData, era, variable)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrRender, dir, err)
	}

	p := hplot.New()
	p.Title.Text = title
	p.X.Label.Text = "Target " + labels.For(variable)
	p.Y.Label.Text = labels.Resolution(variable)

	zero, err := plotter.NewLine(plotter.XYs{{X: edges[0], Y: 0}, {X: edges[len(edges)-1], Y: 0}})
	if err != nil {
		return fmt.Errorf("%w: zero line: %v", ErrRender, err)
	}
	zero.LineStyle.Color = color.Black
	zero.LineStyle.Width = vg.Points(1.5)
	p.Add(zero)

	for _, m := range methods {
		c := MethodColor(m.Method)

		// |bias| over negative-bias bins, dashed
		for _, run := range stepRuns(edges, absHeights(m.Binned.Mean), func(i int) bool {
			return m.Binned.Mean[i] < 0
		}) {
			l, err := plotter.NewLine(run)
			if err != nil {
				return fmt.Errorf("%w: bias outline: %v", ErrRender, err)
			}
			l.LineStyle.Color = c
			l.LineStyle.Width = vg.Points(1)
			l.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
			p.Add(l)
		}

		// bias markers at bin centers
		pts := make(plotter.XYs, len(m.Binned.Centers))
		for i, x := range m.Binned.Centers {
			pts[i] = plotter.XY{X: x, Y: m.Binned.Mean[i]}
		}
		sc, err := plotter.NewScatter(pts)
		if err != nil {
			return fmt.Errorf("%w: bias markers: %v", ErrRender, err)
		}
		sc.GlyphStyle.Shape = draw.TriangleGlyph{}
		sc.GlyphStyle.Color = c
		sc.GlyphStyle.Radius = vg.Points(2.5)
		p.Add(sc)

		// RMSE step outline
		runs := stepRuns(edges, m.Binned.RMS, nil)
		for i, run := range runs {
			l, err := plotter.NewLine(run)
			if err != nil {
				return fmt.Errorf("%w: rmse outline: %v", ErrRender, err)
			}
			l.LineStyle.Color = c
			l.LineStyle.Width = vg.Points(1.75)
			p.Add(l)
			if i == 0 {
				p.Legend.Add(labels.Legend[string(m.Method)], l)
			}
		}
	}

	p.Legend.Top = true

	out := filepath.Join(dir, variable+".pdf")
	if err := p.Save(17*vg.Centimeter, 14*vg.Centimeter, out); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrRender, out, err)
	}
	metrics.RecordPlotWritten()
	metrics.RecordPlotRenderLatency(float64(time.Since(start).Milliseconds()))
	return nil
}

// stepRuns builds step polylines from bin heights, one polyline per
// contiguous run of bins passing keep. A nil keep selects every bin.
func stepRuns(edges, heights []float64, keep func(i int) bool) []plotter.XYs {
	var (
		runs []plotter.XYs
		cur  plotter.XYs
	)
	flush := func() {
		if len(cur) > 0 {
			runs = append(runs, cur)
			cur = nil
		}
	}
	for i := range heights {
		if keep != nil && !keep(i) {
			flush()
			continue
		}
		cur = append(cur,
			plotter.XY{X: edges[i], Y: heights[i]},
			plotter.XY{X: edges[i+1], Y: heights[i]},
		)
	}
	flush()
	return runs
}

func absHeights(v []float64) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		if x < 0 {
			x = -x
		}
		out[i] = x
	}
	return out
}
