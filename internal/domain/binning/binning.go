// Package binning holds the axis definitions for the distribution and
// resolution plots.
package binning

import "math"

// Spec describes a uniform axis for a 1D or 2D distribution.
type Spec struct {
	Min, Max float64
	Bins     int
	// PiTicks asks for tick marks at multiples of pi/2 on the x axis.
	PiTicks bool
}

// Edges returns the Bins+1 uniform bin edges of the spec.
func (s Spec) Edges() []float64 {
	return Linspace(s.Min, s.Max, s.Bins+1)
}

// Linspace returns n evenly spaced values from min to max inclusive.
func Linspace(min, max float64, n int) []float64 {
	if n < 2 {
		return []float64{min}
	}
	out := make([]float64, n)
	step := (max - min) / float64(n-1)
	for i := range out {
		out[i] = min + float64(i)*step
	}
	out[n-1] = max
	return out
}

// PiTickValues are the x positions used when Spec.PiTicks is set.
var PiTickValues = []float64{-math.Pi, -math.Pi / 2, 0, math.Pi / 2, math.Pi}

// PiTickLabels label PiTickValues.
var PiTickLabels = []string{"-π", "-π/2", "0", "π/2", "π"}

func unit() Spec { return Spec{Min: -1, Max: 1, Bins: 80} }

func angle() Spec { return Spec{Min: -3.15, Max: 3.15, Bins: 80, PiTicks: true} }

func topMass() Spec { return Spec{Min: 165.25, Max: 180.25, Bins: 30} }

// Kinematics maps variable names to the axis used for their distribution
// plots.
var Kinematics = map[string]Spec{
	// spin correlations
	"ll_cHel": unit(),
	"b1k":     unit(),
	"b2k":     unit(),
	"b1n":     unit(),
	"b2n":     unit(),
	"b1r":     unit(),
	"b2r":     unit(),
	"c_kk":    unit(),
	"c_rr":    unit(),
	"c_nn":    unit(),
	"c_rk":    unit(),
	"c_kr":    unit(),
	"c_nr":    unit(),
	"c_rn":    unit(),
	"c_nk":    unit(),
	"c_kn":    unit(),
	"c_hel":   unit(),
	"c_han":   unit(),

	// ttbar system
	"ttbar_p":         {Min: 0, Max: 1200, Bins: 80},
	"ttbar_px":        {Min: -200, Max: 200, Bins: 80},
	"ttbar_py":        {Min: -200, Max: 200, Bins: 80},
	"ttbar_pz":        {Min: -1500, Max: 1500, Bins: 80},
	"ttbar_energy":    {Min: 300, Max: 1700, Bins: 80},
	"ttbar_pt":        {Min: 0, Max: 400, Bins: 80},
	"ttbar_eta":       {Min: -6, Max: 6, Bins: 80},
	"ttbar_phi":       angle(),
	"ttbar_mass":      {Min: 300, Max: 1300, Bins: 80},
	"ttbar_delta_eta": {Min: 0, Max: 10, Bins: 80},
	"ttbar_delta_phi": {Min: 0, Max: 3.15, Bins: 80},
	"ttbar_delta_r":   {Min: 0, Max: 10, Bins: 80},

	// top
	"t_p":      {Min: 0, Max: 850, Bins: 80},
	"t_px":     {Min: -400, Max: 400, Bins: 80},
	"t_py":     {Min: -400, Max: 400, Bins: 80},
	"t_pz":     {Min: -1500, Max: 1500, Bins: 80},
	"t_energy": {Min: 170, Max: 1000, Bins: 80},
	"t_pt":     {Min: 0, Max: 500, Bins: 80},
	"t_eta":    {Min: -6, Max: 6, Bins: 80},
	"t_phi":    angle(),
	"t_mass":   topMass(),

	// antitop
	"tbar_p":      {Min: 0, Max: 850, Bins: 80},
	"tbar_px":     {Min: -400, Max: 400, Bins: 80},
	"tbar_py":     {Min: -400, Max: 400, Bins: 80},
	"tbar_pz":     {Min: -1500, Max: 1500, Bins: 80},
	"tbar_energy": {Min: 170, Max: 1000, Bins: 80},
	"tbar_pt":     {Min: 0, Max: 500, Bins: 80},
	"tbar_eta":    {Min: -6, Max: 6, Bins: 80},
	"tbar_phi":    angle(),
	"tbar_mass":   topMass(),

	// top in the ttbar rest frame
	"boosted_t_p":      {Min: 0, Max: 500, Bins: 80},
	"boosted_t_px":     {Min: -400, Max: 400, Bins: 80},
	"boosted_t_py":     {Min: -400, Max: 400, Bins: 80},
	"boosted_t_pz":     {Min: -500, Max: 500, Bins: 80},
	"boosted_t_energy": {Min: 170, Max: 700, Bins: 80},
	"boosted_t_pt":     {Min: 0, Max: 500, Bins: 80},
	"boosted_t_eta":    {Min: -6, Max: 6, Bins: 80},
	"boosted_t_phi":    angle(),
	"boosted_t_mass":   topMass(),

	// antitop in the ttbar rest frame
	"boosted_tbar_p":      {Min: 0, Max: 500, Bins: 80},
	"boosted_tbar_px":     {Min: -400, Max: 400, Bins: 80},
	"boosted_tbar_py":     {Min: -400, Max: 400, Bins: 80},
	"boosted_tbar_pz":     {Min: -500, Max: 500, Bins: 80},
	"boosted_tbar_energy": {Min: 170, Max: 700, Bins: 80},
	"boosted_tbar_pt":     {Min: 0, Max: 500, Bins: 80},
	"boosted_tbar_eta":    {Min: -6, Max: 6, Bins: 80},
	"boosted_tbar_phi":    angle(),
	"boosted_tbar_mass":   topMass(),
}
