// Package service orchestrates the two pipeline stages: extraction of event
// files into per-era arrays, and evaluation of those arrays into figures.
package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/cmsperf/topreco/internal/adapters/arrays"
	"github.com/cmsperf/topreco/internal/adapters/ingest"
	"github.com/cmsperf/topreco/internal/config"
	"github.com/cmsperf/topreco/internal/domain/dedupe"
	"github.com/cmsperf/topreco/internal/domain/model"
	"github.com/cmsperf/topreco/pkg/logger"
)

// Scanner lists the input files to process.
type Scanner interface {
	Scan(ctx context.Context) ([]model.FileJob, error)
}

// Ingester reads one input file into a batch.
type Ingester interface {
	ReadFile(ctx context.Context, job model.FileJob) (model.Batch, error)
}

// Store persists and loads per-era event arrays.
type Store interface {
	WriteEra(ctx context.Context, set *model.EraSet, runID string) error
	ReadEra(ctx context.Context, era string) (*model.EraSet, error)
	Eras(ctx context.Context) ([]string, error)
}

// Service wires the pipeline together.
type Service struct {
	cfg   *config.Config
	runID string

	scanner  Scanner
	ingester Ingester
	store    Store
	deduper  dedupe.Deduper

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithScanner overrides the dataset scanner.
func WithScanner(s Scanner) Option {
	return func(svc *Service) {
		if s != nil {
			svc.scanner = s
		}
	}
}

// WithIngester overrides the file reader.
func WithIngester(i Ingester) Option {
	return func(svc *Service) {
		if i != nil {
			svc.ingester = i
		}
	}
}

// WithStore overrides the array store.
func WithStore(st Store) Option {
	return func(svc *Service) {
		if st != nil {
			svc.store = st
		}
	}
}

// WithDeduper overrides the file deduper.
func WithDeduper(d dedupe.Deduper) Option {
	return func(svc *Service) {
		if d != nil {
			svc.deduper = d
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(svc *Service) {
		if l != nil {
			svc.logger = l
		}
	}
}

// New creates the service with default adapters, overridable via options.
func New(cfg *config.Config, opts ...Option) *Service {
	svc := &Service{
		cfg:     cfg,
		runID:   uuid.NewString(),
		deduper: dedupe.NewInMemoryDeduper(),
		logger:  logger.Named("service"),
	}
	for _, opt := range opts {
		opt(svc)
	}
	if svc.scanner == nil {
		svc.scanner = ingest.NewScanner(cfg)
	}
	if svc.ingester == nil {
		svc.ingester = ingest.NewReader()
	}
	if svc.store == nil {
		svc.store = arrays.NewStore(cfg.ArraysDir())
	}
	return svc
}

// RunID returns the identity stamped into manifests and logs of this run.
func (s *Service) RunID() string { return s.runID }

// Store exposes the array store, e.g. for inspection tools.
func (s *Service) Store() Store { return s.store }
