// Command inspect-arrays prints a summary of the extracted array store:
// the eras it holds, their manifests, and a few sanity statistics per era.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/cmsperf/topreco/internal/adapters/arrays"
	"github.com/cmsperf/topreco/internal/domain/kinematics"
	"github.com/cmsperf/topreco/internal/domain/model"
	"github.com/cmsperf/topreco/internal/domain/stats"
	"github.com/cmsperf/topreco/pkg/logger"
)

func main() {
	dir := flag.String("dir", "Performance/arrays", "Array store directory")
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := run(context.Background(), *dir); err != nil {
		os.Stderr.WriteString("inspect-arrays: " + err.Error() + "\n")
		os.Exit(1)
	}
}

func run(ctx context.Context, dir string) error {
	store := arrays.NewStore(dir)

	eras, err := store.Eras(ctx)
	if err != nil {
		return err
	}
	if len(eras) == 0 {
		fmt.Printf("no eras found under %s\n", dir)
		return nil
	}

	for _, era := range eras {
		if err := printEra(ctx, store, era); err != nil {
			return fmt.Errorf("era %s: %w", era, err)
		}
	}
	return nil
}

func printEra(ctx context.Context, store *arrays.Store, era string) error {
	man, err := store.Manifest(era)
	if err != nil {
		return err
	}
	set, err := store.ReadEra(ctx, era)
	if err != nil {
		return err
	}

	fmt.Printf("era %s\n", era)
	fmt.Printf("  run_id:   %s\n", man.RunID)
	fmt.Printf("  created:  %s\n", man.CreatedAt)
	fmt.Printf("  events:   %d\n", set.Events())
	fmt.Printf("  methods:  %v\n", man.Methods)
	fmt.Printf("  leptons:  %v\n", man.Leptons)

	printSeries("gen", set.Gen, set.Weights)
	if set.Mlb != nil {
		ok := 0
		for _, v := range set.MlbOK {
			if v {
				ok++
			}
		}
		fmt.Printf("  mlb reconstructed: %d / %d\n", ok, len(set.MlbOK))
		printSeries("mlb", set.Mlb, set.Weights)
	}
	if set.Tf != nil {
		printSeries("transformer", set.Tf, set.Weights)
	}
	return nil
}

func printSeries(name string, pairs []model.TopPair, weights []float64) {
	masses, err := kinematics.Compute("ttbar_mass", pairs)
	if err != nil {
		fmt.Printf("  %-12s <ttbar mass unavailable: %v>\n", name, err)
		return
	}
	fmt.Printf("  %-12s mean m(ttbar) = %7.2f GeV, median = %7.2f GeV\n",
		name, stats.WeightedMean(masses, weights), stats.Median(masses))
}
