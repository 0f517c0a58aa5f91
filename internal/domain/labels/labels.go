// Package labels maps variable names to human-readable axis and legend text.
package labels

import "strings"

// Axis maps variable names to their axis label. Variables not listed fall
// back to their own name via For.
var Axis = map[string]string{
	// spin correlations
	"ll_cHel": "cos φ",
	"b1k":     "cos θ1k",
	"b2k":     "cos θ2k",
	"b1n":     "cos θ1n",
	"b2n":     "cos θ2n",
	"b1r":     "cos θ1r",
	"b2r":     "cos θ2r",
	"c_kk":    "cos θ1k cos θ2k",
	"c_rr":    "cos θ1r cos θ2r",
	"c_nn":    "cos θ1n cos θ2n",
	"c_rk":    "cos θ1r cos θ2k",
	"c_kr":    "cos θ1k cos θ2r",
	"c_nr":    "cos θ1n cos θ2r",
	"c_rn":    "cos θ1r cos θ2n",
	"c_nk":    "cos θ1n cos θ2k",
	"c_kn":    "cos θ1k cos θ2n",
	"c_hel":   "c_hel",
	"c_han":   "c_han",

	// ttbar system
	"ttbar_p":         "p(ttbar) [GeV]",
	"ttbar_pt":        "pT(ttbar) [GeV]",
	"ttbar_eta":       "eta(ttbar)",
	"ttbar_phi":       "phi(ttbar)",
	"ttbar_mass":      "m(ttbar) [GeV]",
	"ttbar_energy":    "E(ttbar) [GeV]",
	"ttbar_px":        "px(ttbar) [GeV]",
	"ttbar_py":        "py(ttbar) [GeV]",
	"ttbar_pz":        "pz(ttbar) [GeV]",
	"ttbar_delta_eta": "Δeta(t, tbar)",
	"ttbar_delta_phi": "Δphi(t, tbar)",
	"ttbar_delta_r":   "ΔR(t, tbar)",

	// top
	"t_p":      "p(t) [GeV]",
	"t_px":     "px(t) [GeV]",
	"t_py":     "py(t) [GeV]",
	"t_pz":     "pz(t) [GeV]",
	"t_pt":     "pT(t) [GeV]",
	"t_phi":    "phi(t)",
	"t_eta":    "eta(t)",
	"t_mass":   "m(t) [GeV]",
	"t_energy": "E(t) [GeV]",

	// antitop
	"tbar_p":      "p(tbar) [GeV]",
	"tbar_px":     "px(tbar) [GeV]",
	"tbar_py":     "py(tbar) [GeV]",
	"tbar_pz":     "pz(tbar) [GeV]",
	"tbar_pt":     "pT(tbar) [GeV]",
	"tbar_phi":    "phi(tbar)",
	"tbar_eta":    "eta(tbar)",
	"tbar_mass":   "m(tbar) [GeV]",
	"tbar_energy": "E(tbar) [GeV]",

	// top in the ttbar rest frame
	"boosted_t_p":      "p(t, ttbar frame) [GeV]",
	"boosted_t_px":     "px(t, ttbar frame) [GeV]",
	"boosted_t_py":     "py(t, ttbar frame) [GeV]",
	"boosted_t_pz":     "pz(t, ttbar frame) [GeV]",
	"boosted_t_pt":     "pT(t, ttbar frame) [GeV]",
	"boosted_t_phi":    "phi(t, ttbar frame)",
	"boosted_t_eta":    "eta(t, ttbar frame)",
	"boosted_t_mass":   "m(t, ttbar frame) [GeV]",
	"boosted_t_energy": "E(t, ttbar frame) [GeV]",

	// antitop in the ttbar rest frame
	"boosted_tbar_p":      "p(tbar, ttbar frame) [GeV]",
	"boosted_tbar_px":     "px(tbar, ttbar frame) [GeV]",
	"boosted_tbar_py":     "py(tbar, ttbar frame) [GeV]",
	"boosted_tbar_pz":     "pz(tbar, ttbar frame) [GeV]",
	"boosted_tbar_pt":     "pT(tbar, ttbar frame) [GeV]",
	"boosted_tbar_phi":    "phi(tbar, ttbar frame)",
	"boosted_tbar_eta":    "eta(tbar, ttbar frame)",
	"boosted_tbar_mass":   "m(tbar, ttbar frame) [GeV]",
	"boosted_tbar_energy": "E(tbar, ttbar frame) [GeV]",
}

// Legend maps reconstruction methods to their legend label.
var Legend = map[string]string{
	"gen":         "Target",
	"mlb":         "mlb-weighting",
	"transformer": "Transformer",
}

// For returns the axis label for name, falling back to the name itself.
func For(name string) string {
	if l, ok := Axis[name]; ok {
		return l
	}
	return name
}

// Resolution returns the y-axis label for an RMS plot of the variable.
func Resolution(name string) string {
	if strings.HasSuffix(name, "_eta") || strings.HasSuffix(name, "_phi") {
		return "Resolution"
	}
	return "Resolution [GeV]"
}

// Bias returns the y-axis label for a bias plot of the variable.
func Bias(name string) string {
	if strings.HasSuffix(name, "_eta") || strings.HasSuffix(name, "_phi") {
		return "Bias"
	}
	return "Bias [GeV]"
}
