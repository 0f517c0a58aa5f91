package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/cmsperf/topreco/internal/adapters/http/debug"
	service "github.com/cmsperf/topreco/internal/app"
	"github.com/cmsperf/topreco/internal/config"
	"github.com/cmsperf/topreco/pkg/logger"
)

func main() {
	os.Exit(run())
}

func run() int {
	extract := flag.Bool("extract", false, "run the extraction step")
	evaluate := flag.Bool("evaluate", false, "run the evaluation step")
	flag.Parse()

	// No flag means the full pipeline.
	if !*extract && !*evaluate {
		*extract = true
		*evaluate = true
	}

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return 1
	}
	log := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return 1
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info",
			logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	svc := service.New(cfg, service.WithLogger(log))

	if cfg.DebugAddr != "" {
		debug.NewServer(cfg.DebugAddr, svc.RunID()).Start(ctx)
	}

	if *extract {
		if err := svc.Extract(ctx); err != nil {
			log.Error(ctx, "extraction failed", logger.Error(err))
			return 1
		}
	}
	if *evaluate {
		if err := svc.Evaluate(ctx); err != nil {
			log.Error(ctx, "evaluation failed", logger.Error(err))
			return 1
		}
	}

	log.Info(ctx, "pipeline finished", logger.String("run_id", svc.RunID()))
	return 0
}
