// Package spincorr computes ttbar spin-correlation variables from top and
// lepton four-momenta.
//
// The variables are built in the helicity basis of the ttbar system: the
// k-axis along the top direction in the ttbar rest frame, and the r- and
// n-axes constructed from the proton beam axis (+z). The lepton (antilepton)
// is measured in the rest frame of its parent antitop (top).
package spincorr

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/cmsperf/topreco/internal/domain/kinematics"
	"github.com/cmsperf/topreco/internal/domain/model"
)

// Variables lists the computed spin-correlation observables in a stable
// plotting order.
var Variables = []string{
	"ll_cHel",
	"b1k", "b1r", "b1n",
	"b2k", "b2r", "b2n",
	"c_kk", "c_rr", "c_nn",
	"c_rk", "c_kr",
	"c_nr", "c_rn",
	"c_nk", "c_kn",
	"c_hel", "c_han",
}

// sin(theta) values closer to zero than this are clamped before dividing.
const sinThetaFloor = 1e-9

// Compute evaluates all spin-correlation variables per event. The tops and
// leptons slices must be row-aligned.
func Compute(tops []model.TopPair, leptons []model.LeptonPair) (map[string][]float64, error) {
	if len(tops) != len(leptons) {
		return nil, fmt.Errorf("%w: %d tops vs %d lepton pairs", ErrLengthMismatch, len(tops), len(leptons))
	}

	out := make(map[string][]float64, len(Variables))
	for _, name := range Variables {
		out[name] = make([]float64, len(tops))
	}

	for i := range tops {
		ev := computeEvent(tops[i], leptons[i])
		for name, v := range ev {
			out[name][i] = v
		}
	}
	return out, nil
}

func computeEvent(pair model.TopPair, leps model.LeptonPair) map[string]float64 {
	frame := kinematics.System(pair)
	bTop := kinematics.BoostToCM(pair.Top, frame)
	bTbar := kinematics.BoostToCM(pair.Tbar, frame)

	// Leptons: into the ttbar frame, then into the parent's rest frame.
	// The antilepton comes from the top, the lepton from the antitop.
	bLbar := kinematics.BoostToCM(kinematics.BoostToCM(leps.Lbar, frame), bTop)
	bL := kinematics.BoostToCM(kinematics.BoostToCM(leps.L, frame), bTbar)

	pAxis := r3.Vec{Z: 1} // proton axis = +z
	kAxis := r3.Unit(kinematics.Vec3(bTop))

	cosTheta := r3.Dot(kAxis, pAxis)
	sinTheta := math.Sqrt(math.Max(0, 1-cosTheta*cosTheta))
	if sinTheta < sinThetaFloor {
		sinTheta = sinThetaFloor
	}
	coeff := sign(cosTheta) / sinTheta

	rAxis := r3.Scale(coeff, r3.Sub(pAxis, r3.Scale(cosTheta, kAxis)))
	nAxis := r3.Scale(coeff, r3.Cross(pAxis, kAxis))

	lbarVec := kinematics.Vec3(bLbar)
	lVec := kinematics.Vec3(bL)

	v := map[string]float64{
		"ll_cHel": cosAngle(lbarVec, lVec),
		"b1k":     cosAngle(lbarVec, kAxis),
		"b1r":     cosAngle(lbarVec, rAxis),
		"b1n":     cosAngle(lbarVec, nAxis),
		"b2k":     cosAngle(lVec, r3.Scale(-1, kAxis)),
		"b2r":     cosAngle(lVec, r3.Scale(-1, rAxis)),
		"b2n":     cosAngle(lVec, r3.Scale(-1, nAxis)),
	}

	v["c_kk"] = v["b1k"] * v["b2k"]
	v["c_rr"] = v["b1r"] * v["b2r"]
	v["c_nn"] = v["b1n"] * v["b2n"]
	v["c_rk"] = v["b1r"] * v["b2k"]
	v["c_kr"] = v["b1k"] * v["b2r"]
	v["c_nr"] = v["b1n"] * v["b2r"]
	v["c_rn"] = v["b1r"] * v["b2n"]
	v["c_nk"] = v["b1n"] * v["b2k"]
	v["c_kn"] = v["b1k"] * v["b2n"]

	v["c_han"] = v["c_kk"] - v["c_rr"] - v["c_nn"]
	v["c_hel"] = -v["c_kk"] - v["c_rr"] - v["c_nn"]
	return v
}

// cosAngle returns the cosine of the opening angle between a and b.
func cosAngle(a, b r3.Vec) float64 {
	na, nb := r3.Norm(a), r3.Norm(b)
	if na == 0 || nb == 0 {
		return 0
	}
	c := r3.Dot(a, b) / (na * nb)
	return math.Max(-1, math.Min(1, c))
}

func sign(x float64) float64 {
	if x < 0 {
		return -1
	}
	return 1
}
