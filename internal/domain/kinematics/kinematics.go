// Package kinematics derives per-event kinematic quantities from top-pair
// four-momenta: single-object and pair-system momenta, and tops boosted into
// the ttbar centre-of-mass frame.
package kinematics

import (
	"math"

	"go-hep.org/x/hep/fmom"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/cmsperf/topreco/internal/domain/model"
)

// asPxPyPzE normalizes any P4 into the concrete Cartesian representation.
func asPxPyPzE(p fmom.P4) fmom.PxPyPzE {
	return fmom.NewPxPyPzE(p.Px(), p.Py(), p.Pz(), p.E())
}

// FromPtEtaPhiM builds a Cartesian four-vector from collider coordinates.
func FromPtEtaPhiM(pt, eta, phi, m float64) fmom.PxPyPzE {
	p := fmom.NewPtEtaPhiM(pt, eta, phi, m)
	return asPxPyPzE(&p)
}

// System returns the summed ttbar four-vector.
func System(pair model.TopPair) fmom.PxPyPzE {
	sum := fmom.Add(&pair.Top, &pair.Tbar)
	return asPxPyPzE(sum)
}

// BoostToCM boosts p into the rest frame of frame.
func BoostToCM(p, frame fmom.PxPyPzE) fmom.PxPyPzE {
	beta := fmom.BoostOf(&frame)
	boosted := fmom.Boost(&p, r3.Scale(-1, beta))
	return asPxPyPzE(boosted)
}

// Vec3 returns the spatial momentum of p.
func Vec3(p fmom.PxPyPzE) r3.Vec {
	return r3.Vec{X: p.Px(), Y: p.Py(), Z: p.Pz()}
}

// Momentum returns |p|.
func Momentum(p fmom.PxPyPzE) float64 {
	return math.Sqrt(p.Px()*p.Px() + p.Py()*p.Py() + p.Pz()*p.Pz())
}

// quantity evaluates a named scalar on a four-vector.
func quantity(q string, v fmom.PxPyPzE) float64 {
	switch q {
	case "p":
		return Momentum(v)
	case "px":
		return v.Px()
	case "py":
		return v.Py()
	case "pz":
		return v.Pz()
	case "pt":
		return v.Pt()
	case "eta":
		return v.Eta()
	case "phi":
		return v.Phi()
	case "mass":
		return v.M()
	case "energy":
		return v.E()
	}
	return math.NaN()
}

// object resolves a named object of the event to its four-vector.
func object(name string, pair model.TopPair) (fmom.PxPyPzE, bool) {
	switch name {
	case "t":
		return pair.Top, true
	case "tbar":
		return pair.Tbar, true
	case "ttbar":
		return System(pair), true
	case "boosted_t":
		return BoostToCM(pair.Top, System(pair)), true
	case "boosted_tbar":
		return BoostToCM(pair.Tbar, System(pair)), true
	}
	return fmom.PxPyPzE{}, false
}
