package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cmsperf/topreco/internal/config"
	"github.com/cmsperf/topreco/internal/domain/model"
	"github.com/cmsperf/topreco/pkg/logger"
)

// Scanner lists the signal files of the configured dataset directories and
// turns them into file jobs.
type Scanner struct {
	cfg *config.Config
	log logger.Logger
}

// NewScanner creates a dataset scanner.
func NewScanner(cfg *config.Config) *Scanner {
	return &Scanner{cfg: cfg, log: logger.Named("scanner")}
}

// Scan walks <dataset dir>/<channel> for every configured era and channel
// and returns one job per selected signal file, in deterministic order.
func (s *Scanner) Scan(ctx context.Context) ([]model.FileJob, error) {
	eras := make([]string, 0, len(s.cfg.Datasets))
	for era := range s.cfg.Datasets {
		eras = append(eras, era)
	}
	sort.Strings(eras)

	var jobs []model.FileJob
	for _, era := range eras {
		for _, channel := range s.cfg.Channels {
			eraJobs, err := s.scanChannel(ctx, era, channel)
			if err != nil {
				return nil, err
			}
			jobs = append(jobs, eraJobs...)
		}
	}
	return jobs, nil
}

func (s *Scanner) scanChannel(ctx context.Context, era, channel string) ([]model.FileJob, error) {
	dir := filepath.Join(s.cfg.Datasets[era], channel)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrScanDataset, dir, err)
	}

	predDir, withPreds := s.cfg.Predictions[era]

	var jobs []model.FileJob
	for _, e := range entries {
		if e.IsDir() || !s.selects(e.Name()) {
			continue
		}

		job := model.FileJob{
			Era:         era,
			Channel:     channel,
			GenPath:     filepath.Join(dir, e.Name()),
			WithMlb:     s.cfg.HasMlb(era),
			WithLeptons: s.cfg.ExtractLeptons,
		}
		if withPreds {
			job.PredPath = filepath.Join(predDir, channel, e.Name())
			if _, err := os.Stat(job.PredPath); err != nil {
				return nil, fmt.Errorf("%w: %s", ErrMissingPrediction, job.PredPath)
			}
		}
		jobs = append(jobs, job)
	}

	s.log.Info(ctx, "channel scanned",
		logger.String("era", era),
		logger.String("channel", channel),
		logger.Int("files", len(jobs)),
	)
	return jobs, nil
}

// selects applies the signal filename filter: the name must contain the
// match substring and must not contain the veto substring.
func (s *Scanner) selects(name string) bool {
	if !strings.Contains(name, s.cfg.SignalMatch) {
		return false
	}
	return s.cfg.SignalVeto == "" || !strings.Contains(name, s.cfg.SignalVeto)
}
