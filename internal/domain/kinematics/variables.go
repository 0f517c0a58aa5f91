package kinematics

import (
	"fmt"
	"math"
	"strings"

	"go-hep.org/x/hep/fmom"

	"github.com/cmsperf/topreco/internal/domain/model"
)

// quantity suffixes recognized in variable names, longest first so that
// "pz" does not shadow "p" and "pt" does not shadow "p".
var suffixes = []string{
	"energy", "mass", "eta", "phi", "px", "py", "pz", "pt", "p",
}

// Split decomposes a variable name like "boosted_t_pt" into its object and
// quantity parts.
func Split(name string) (obj, q string, err error) {
	for _, s := range suffixes {
		if strings.HasSuffix(name, "_"+s) {
			obj = strings.TrimSuffix(name, "_"+s)
			return obj, s, nil
		}
	}
	return "", "", fmt.Errorf("%w: %s", ErrUnknownVariable, name)
}

// Eval computes the named variable for a single event.
func Eval(name string, pair model.TopPair) (float64, error) {
	switch name {
	case "ttbar_delta_eta":
		return math.Abs(pair.Top.Eta() - pair.Tbar.Eta()), nil
	case "ttbar_delta_phi":
		return math.Abs(deltaPhi(pair.Top, pair.Tbar)), nil
	case "ttbar_delta_r":
		dEta := pair.Top.Eta() - pair.Tbar.Eta()
		dPhi := deltaPhi(pair.Top, pair.Tbar)
		return math.Hypot(dEta, dPhi), nil
	}

	obj, q, err := Split(name)
	if err != nil {
		return 0, err
	}
	v, ok := object(obj, pair)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownVariable, name)
	}
	return quantity(q, v), nil
}

// Compute evaluates the named variable for every event.
func Compute(name string, pairs []model.TopPair) ([]float64, error) {
	out := make([]float64, len(pairs))
	for i, pair := range pairs {
		v, err := Eval(name, pair)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// deltaPhi wraps the azimuthal difference into (-pi, pi].
func deltaPhi(a, b fmom.PxPyPzE) float64 {
	d := a.Phi() - b.Phi()
	for d > math.Pi {
		d -= 2 * math.Pi
	}
	for d <= -math.Pi {
		d += 2 * math.Pi
	}
	return d
}
