// Package config defines pipeline configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) initializer to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"path/filepath"
	"runtime"
)

// Config contains process configuration for the extraction and evaluation
// pipelines.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// DebugAddr configures the optional debug HTTP listener serving
	// /metrics and /healthz, e.g. ":9090". Empty disables it.
	DebugAddr string `koanf:"debug_addr"`

	// OutputDir is the root of the shared filesystem interface between the
	// two steps: arrays land under <OutputDir>/arrays, plots under
	// <OutputDir>/kinematics and <OutputDir>/rmse.
	OutputDir string `koanf:"output_dir"`

	// Datasets maps an era to the directory holding its gen-level ntuples,
	// laid out as <dir>/<channel>/<file>.
	Datasets map[string]string `koanf:"datasets"`

	// Predictions maps an era to the directory holding transformer
	// inference output with the same <channel>/<file> layout. Eras absent
	// from this map are extracted without transformer results.
	Predictions map[string]string `koanf:"predictions"`

	// MlbEras lists eras whose gen-level trees carry mlb-weighting
	// reconstruction branches.
	MlbEras []string `koanf:"mlb_eras"`

	// Channels selects the dilepton channels to process.
	Channels []string `koanf:"channels"`

	// SignalMatch selects input files whose name contains this substring.
	SignalMatch string `koanf:"signal_match"`

	// SignalVeto rejects files whose name contains this substring.
	SignalVeto string `koanf:"signal_veto"`

	// ExtractLeptons controls whether gen-level lepton branches are read
	// for spin-correlation variables.
	ExtractLeptons bool `koanf:"extract_leptons"`

	// WorkerCount sets the number of ingest workers.
	WorkerCount int `koanf:"worker_count"`

	// QueueSize bounds the in-memory ingest job queue.
	QueueSize int `koanf:"queue_size"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:  "info",
		DebugAddr: "",
		OutputDir: "Performance",
		Datasets:  map[string]string{},
		Predictions: map[string]string{
			// populated from file/env in real deployments
		},
		MlbEras:        []string{"2016preVFP", "2016postVFP", "2017", "2018"},
		Channels:       []string{"ee", "emu", "mumu"},
		SignalMatch:    "ttbarsignal",
		SignalVeto:     "boundstate",
		ExtractLeptons: true,
		WorkerCount:    runtime.NumCPU(),
		QueueSize:      1024,
	}
}

// ArraysDir returns the directory the extraction step writes arrays to.
func (c *Config) ArraysDir() string {
	return filepath.Join(c.OutputDir, "arrays")
}

// KinematicsDir returns the distribution plot directory of an era.
func (c *Config) KinematicsDir(era string) string {
	return filepath.Join(c.OutputDir, "kinematics", era)
}

// RmseDir returns the resolution plot directory of an era.
func (c *Config) RmseDir(era string) string {
	return filepath.Join(c.OutputDir, "rmse", era)
}

// HasMlb reports whether the era carries mlb-weighting reconstruction.
func (c *Config) HasMlb(era string) bool {
	for _, e := range c.MlbEras {
		if e == era {
			return true
		}
	}
	return false
}
