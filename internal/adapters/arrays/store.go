// Package arrays persists per-era event matrices as NumPy .npy files, the
// shared filesystem interface between the extraction and evaluation steps.
package arrays

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/sbinet/npyio"
	"gonum.org/v1/gonum/mat"

	"github.com/cmsperf/topreco/internal/domain/model"
	"github.com/cmsperf/topreco/pkg/logger"
	"github.com/cmsperf/topreco/pkg/metrics"
)

// File names inside an era directory.
const (
	genFile      = "gen.npy"
	mlbFile      = "mlb.npy"
	tfFile       = "tf.npy"
	leptonsFile  = "leptons.npy"
	weightsFile  = "weights.npy"
	mlbOKFile    = "mlb_ok.npy"
	manifestFile = "manifest.json"
)

// Manifest records the provenance of one era directory.
type Manifest struct {
	RunID     string    `json:"run_id"`
	Era       string    `json:"era"`
	Events    int       `json:"events"`
	Methods   []string  `json:"methods"`
	Leptons   bool      `json:"leptons"`
	CreatedAt time.Time `json:"created_at"`
}

// Store reads and writes era sets under a root directory.
type Store struct {
	root string
	log  logger.Logger
}

// NewStore creates a store rooted at dir, typically <output>/arrays.
func NewStore(dir string) *Store {
	return &Store{root: dir, log: logger.Named("arrays")}
}

// WriteEra persists the set under <root>/<era>/, replacing any previous
// content, and stamps the manifest with the run id.
func (s *Store) WriteEra(ctx context.Context, set *model.EraSet, runID string) error {
	start := time.Now()

	dir := filepath.Join(s.root, set.Era)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrStore, dir, err)
	}

	methods := []string{string(model.MethodGen)}
	if err := writeMatrix(filepath.Join(dir, genFile), model.PairMatrix(set.Gen)); err != nil {
		return err
	}
	if set.Mlb != nil {
		methods = append(methods, string(model.MethodMlb))
		if err := writeMatrix(filepath.Join(dir, mlbFile), model.PairMatrix(set.Mlb)); err != nil {
			return err
		}
		if err := writeSlice(filepath.Join(dir, mlbOKFile), set.MlbOK); err != nil {
			return err
		}
	}
	if set.Tf != nil {
		methods = append(methods, string(model.MethodTransformer))
		if err := writeMatrix(filepath.Join(dir, tfFile), model.PairMatrix(set.Tf)); err != nil {
			return err
		}
	}
	if set.Leptons != nil {
		if err := writeMatrix(filepath.Join(dir, leptonsFile), model.LeptonMatrix(set.Leptons)); err != nil {
			return err
		}
	}
	if err := writeSlice(filepath.Join(dir, weightsFile), set.Weights); err != nil {
		return err
	}

	m := Manifest{
		RunID:     runID,
		Era:       set.Era,
		Events:    set.Events(),
		Methods:   methods,
		Leptons:   set.Leptons != nil,
		CreatedAt: time.Now().UTC(),
	}
	raw, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: manifest: %v", ErrStore, err)
	}
	if err := os.WriteFile(filepath.Join(dir, manifestFile), raw, 0o644); err != nil {
		return fmt.Errorf("%w: manifest: %v", ErrStore, err)
	}

	metrics.RecordStoreWriteLatency(float64(time.Since(start).Milliseconds()))
	s.log.Info(ctx, "era persisted",
		logger.String("era", set.Era),
		logger.Int("events", set.Events()),
		logger.Any("methods", methods),
	)
	return nil
}

// ReadEra loads the era set written by WriteEra. Optional blocks absent on
// disk stay nil.
func (s *Store) ReadEra(ctx context.Context, era string) (*model.EraSet, error) {
	dir := filepath.Join(s.root, era)
	if _, err := os.Stat(filepath.Join(dir, manifestFile)); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrEraNotFound, era)
	}

	set := &model.EraSet{Era: era}

	gen, err := readMatrix(filepath.Join(dir, genFile))
	if err != nil {
		return nil, err
	}
	set.Gen = model.PairsFromMatrix(gen)
	metrics.RecordArrayLoaded()

	if m, err := readOptionalMatrix(filepath.Join(dir, mlbFile)); err != nil {
		return nil, err
	} else if m != nil {
		set.Mlb = model.PairsFromMatrix(m)
		if err := readSlice(filepath.Join(dir, mlbOKFile), &set.MlbOK); err != nil {
			return nil, err
		}
	}
	if m, err := readOptionalMatrix(filepath.Join(dir, tfFile)); err != nil {
		return nil, err
	} else if m != nil {
		set.Tf = model.PairsFromMatrix(m)
	}
	if m, err := readOptionalMatrix(filepath.Join(dir, leptonsFile)); err != nil {
		return nil, err
	} else if m != nil {
		set.Leptons = model.LeptonsFromMatrix(m)
	}
	if err := readSlice(filepath.Join(dir, weightsFile), &set.Weights); err != nil {
		return nil, err
	}

	s.log.Debug(ctx, "era loaded", logger.String("era", era), logger.Int("events", set.Events()))
	return set, nil
}

// Manifest loads the manifest of one era directory.
func (s *Store) Manifest(era string) (Manifest, error) {
	raw, err := os.ReadFile(filepath.Join(s.root, era, manifestFile))
	if err != nil {
		return Manifest{}, fmt.Errorf("%w: %s", ErrEraNotFound, era)
	}
	var m Manifest
	if err := json.Unmarshal(raw, &m); err != nil {
		return Manifest{}, fmt.Errorf("%w: manifest of %s: %v", ErrStore, era, err)
	}
	return m, nil
}

// Eras lists the era directories carrying a manifest, sorted.
func (s *Store) Eras(context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrStore, s.root, err)
	}
	var eras []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if _, err := os.Stat(filepath.Join(s.root, e.Name(), manifestFile)); err == nil {
			eras = append(eras, e.Name())
		}
	}
	sort.Strings(eras)
	return eras, nil
}

func writeMatrix(path string, m *mat.Dense) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrStore, path, err)
	}
	defer f.Close()
	if err := npyio.Write(f, m); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrStore, path, err)
	}
	metrics.RecordArrayWritten()
	return nil
}

func writeSlice[T float64 | bool](path string, v []T) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrStore, path, err)
	}
	defer f.Close()
	if err := npyio.Write(f, v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrStore, path, err)
	}
	metrics.RecordArrayWritten()
	return nil
}

func readMatrix(path string) (*mat.Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrStore, path, err)
	}
	defer f.Close()
	var m mat.Dense
	if err := npyio.Read(f, &m); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrStore, path, err)
	}
	return &m, nil
}

func readOptionalMatrix(path string) (*mat.Dense, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, nil
	}
	return readMatrix(path)
}

func readSlice[T float64 | bool](path string, out *[]T) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrStore, path, err)
	}
	defer f.Close()
	if err := npyio.Read(f, out); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrStore, path, err)
	}
	return nil
}
