package stats

import "fmt"

// Binned holds per-bin residual statistics over a gen-level variable.
type Binned struct {
	Centers  []float64 // bin centers of the gen variable
	RMS      []float64 // weighted RMS of the residual per bin
	Mean     []float64 // weighted mean of the residual per bin
	Median   []float64 // median of the residual per bin
	Width    []float64 // q84-q16 spread of the residual per bin
	Variance []float64 // weighted variance of the residual per bin
	Counts   []int     // raw event counts per bin
}

// Bins with fewer events than this keep zero statistics.
const minBinEvents = 5

// ComputeBinned bins the residuals res by the gen values over the given bin
// edges and returns the weighted RMS and mean per bin. Underpopulated bins
// are left at zero. gen, res and ws must be row-aligned; ws may be nil.
func ComputeBinned(gen, res, ws []float64, edges []float64) (Binned, error) {
	if len(gen) != len(res) {
		return Binned{}, fmt.Errorf("%w: %d gen vs %d residuals", ErrLengthMismatch, len(gen), len(res))
	}
	if ws != nil && len(ws) != len(gen) {
		return Binned{}, fmt.Errorf("%w: %d gen vs %d weights", ErrLengthMismatch, len(gen), len(ws))
	}
	if len(edges) < 2 {
		return Binned{}, fmt.Errorf("%w: need at least 2 edges, got %d", ErrBadEdges, len(edges))
	}

	nbins := len(edges) - 1
	binRes := make([][]float64, nbins)
	binWs := make([][]float64, nbins)

	for i, g := range gen {
		b := findBin(g, edges)
		if b < 0 {
			continue
		}
		binRes[b] = append(binRes[b], res[i])
		w := 1.0
		if ws != nil {
			w = ws[i]
		}
		binWs[b] = append(binWs[b], w)
	}

	out := Binned{
		Centers:  make([]float64, nbins),
		RMS:      make([]float64, nbins),
		Mean:     make([]float64, nbins),
		Median:   make([]float64, nbins),
		Width:    make([]float64, nbins),
		Variance: make([]float64, nbins),
		Counts:   make([]int, nbins),
	}
	for b := 0; b < nbins; b++ {
		out.Centers[b] = 0.5 * (edges[b] + edges[b+1])
		out.Counts[b] = len(binRes[b])
		if out.Counts[b] < minBinEvents {
			continue
		}
		out.RMS[b] = WeightedRMS(binRes[b], binWs[b])
		out.Mean[b] = WeightedMean(binRes[b], binWs[b])
		out.Median[b] = Median(binRes[b])
		out.Width[b] = Q84Q16(binRes[b])
		out.Variance[b] = WeightedVariance(binRes[b], binWs[b])
	}
	return out, nil
}

// findBin returns the bin index for x, treating the last edge as inclusive.
// Values outside the edges return -1.
func findBin(x float64, edges []float64) int {
	if x < edges[0] || x > edges[len(edges)-1] {
		return -1
	}
	if x == edges[len(edges)-1] {
		return len(edges) - 2
	}
	lo, hi := 0, len(edges)-1
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if x < edges[mid] {
			hi = mid
		} else {
			lo = mid
		}
	}
	return lo
}
