// Package model contains domain models passed between layers.
package model

import (
	"go-hep.org/x/hep/fmom"
	"gonum.org/v1/gonum/mat"
)

// Method identifies the origin of a set of top-pair four-vectors.
type Method string

// Known methods. Gen is the generator-level target the reconstruction
// methods are compared against.
const (
	MethodGen         Method = "gen"
	MethodMlb         Method = "mlb"
	MethodTransformer Method = "transformer"
)

// TopPair holds the top and antitop four-momenta of one event.
type TopPair struct {
	Top  fmom.PxPyPzE
	Tbar fmom.PxPyPzE
}

// LeptonPair holds the lepton and antilepton four-momenta of one event.
type LeptonPair struct {
	L    fmom.PxPyPzE
	Lbar fmom.PxPyPzE
}

// FileJob describes one input file to ingest.
type FileJob struct {
	Era     string
	Channel string

	// GenPath points at the gen-level ntuple. PredPath points at the
	// matching transformer prediction file and is empty for eras without
	// predictions.
	GenPath  string
	PredPath string

	WithMlb     bool
	WithLeptons bool
}

// Key returns a stable identity for deduplication.
func (j FileJob) Key() string {
	return j.Era + "/" + j.Channel + "/" + j.GenPath
}

// Batch is the per-file extraction result. Rows of all slices are aligned:
// index i refers to the same selected event everywhere.
type Batch struct {
	Era     string
	Channel string
	File    string

	Gen     []TopPair
	Mlb     []TopPair    // nil when the era has no mlb reconstruction
	Tf      []TopPair    // nil when the era has no transformer predictions
	Leptons []LeptonPair // nil when lepton extraction is disabled

	Weights []float64
	MlbOK   []bool // nil when no mlb; true where mlb reconstruction succeeded
}

// EraSet is the concatenation of all batches of one era, the unit persisted
// to and loaded from the array store.
type EraSet struct {
	Era string

	Gen     []TopPair
	Mlb     []TopPair
	Tf      []TopPair
	Leptons []LeptonPair

	Weights []float64
	MlbOK   []bool
}

// Events returns the number of events in the set.
func (s *EraSet) Events() int { return len(s.Gen) }

// Append concatenates a batch onto the set. The batch must carry the same
// optional blocks as the set once the first batch fixed them.
func (s *EraSet) Append(b Batch) {
	s.Gen = append(s.Gen, b.Gen...)
	s.Mlb = append(s.Mlb, b.Mlb...)
	s.Tf = append(s.Tf, b.Tf...)
	s.Leptons = append(s.Leptons, b.Leptons...)
	s.Weights = append(s.Weights, b.Weights...)
	s.MlbOK = append(s.MlbOK, b.MlbOK...)
}

// Matrix column layout for persisted pair arrays, one row per event:
// (t_px, tbar_px, t_py, tbar_py, t_pz, tbar_pz, t_E, tbar_E).
const PairCols = 8

// PairMatrix flattens pairs into an N x 8 dense matrix.
func PairMatrix(pairs []TopPair) *mat.Dense {
	m := mat.NewDense(len(pairs), PairCols, nil)
	for i, p := range pairs {
		m.SetRow(i, []float64{
			p.Top.Px(), p.Tbar.Px(),
			p.Top.Py(), p.Tbar.Py(),
			p.Top.Pz(), p.Tbar.Pz(),
			p.Top.E(), p.Tbar.E(),
		})
	}
	return m
}

// PairsFromMatrix rebuilds pairs from an N x 8 matrix.
func PairsFromMatrix(m *mat.Dense) []TopPair {
	rows, _ := m.Dims()
	pairs := make([]TopPair, rows)
	for i := 0; i < rows; i++ {
		pairs[i] = TopPair{
			Top:  fmom.NewPxPyPzE(m.At(i, 0), m.At(i, 2), m.At(i, 4), m.At(i, 6)),
			Tbar: fmom.NewPxPyPzE(m.At(i, 1), m.At(i, 3), m.At(i, 5), m.At(i, 7)),
		}
	}
	return pairs
}

// LeptonMatrix flattens lepton pairs using the same column scheme.
func LeptonMatrix(pairs []LeptonPair) *mat.Dense {
	m := mat.NewDense(len(pairs), PairCols, nil)
	for i, p := range pairs {
		m.SetRow(i, []float64{
			p.L.Px(), p.Lbar.Px(),
			p.L.Py(), p.Lbar.Py(),
			p.L.Pz(), p.Lbar.Pz(),
			p.L.E(), p.Lbar.E(),
		})
	}
	return m
}

// LeptonsFromMatrix rebuilds lepton pairs from an N x 8 matrix.
func LeptonsFromMatrix(m *mat.Dense) []LeptonPair {
	rows, _ := m.Dims()
	pairs := make([]LeptonPair, rows)
	for i := 0; i < rows; i++ {
		pairs[i] = LeptonPair{
			L:    fmom.NewPxPyPzE(m.At(i, 0), m.At(i, 2), m.At(i, 4), m.At(i, 6)),
			Lbar: fmom.NewPxPyPzE(m.At(i, 1), m.At(i, 3), m.At(i, 5), m.At(i, 7)),
		}
	}
	return pairs
}
