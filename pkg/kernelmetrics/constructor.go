// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package kernelmetrics

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/petar-djukic/kernelmetrics/internal/batch"
	"github.com/petar-djukic/kernelmetrics/internal/provenance"
	"github.com/petar-djukic/kernelmetrics/internal/scan"
	"github.com/petar-djukic/kernelmetrics/internal/workarea"
)

// New validates the config, resolves the work directory and returns a
// ready-to-use Analyzer. No kernel is read until Run or Class.
func New(cfg Config) (Analyzer, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	dir, err := workarea.Resolve(cfg.Root, cfg.Job, cfg.Order)
	if err != nil {
		return nil, err
	}

	scanner := scan.New(scan.Options{
		Markers:           cfg.Markers,
		AllowSplit:        !cfg.SingleFile,
		SignificanceCheck: !cfg.NoSignificanceCheck,
	})
	mk := scanner.Markers()
	cfg.Logger.Debug("scanner markers",
		zap.String("core_entry", mk.CoreEntry),
		zap.String("post_marker", mk.PostMarker),
		zap.String("skip_flag", mk.SkipFlag),
		zap.String("alloc_call", mk.AllocCall),
	)

	runner := batch.NewRunner(batch.Deps{
		Scanner: scanner,
		Logger:  cfg.Logger.With(zap.String("job", cfg.Job), zap.Int("order", cfg.Order)),
		Workers: cfg.Workers,
	})

	return &analyzerAdapter{cfg: cfg, dir: dir, runner: runner}, nil
}

// analyzerAdapter adapts internal/batch.Runner to the public Analyzer
// interface.
type analyzerAdapter struct {
	cfg    Config
	dir    string
	runner *batch.Runner
}

func (a *analyzerAdapter) WorkDir() string {
	return a.dir
}

func (a *analyzerAdapter) Run(ctx context.Context) (*Result, error) {
	br, err := a.runner.Run(ctx, a.dir)
	if br == nil {
		return &Result{WorkDir: a.dir}, err
	}

	res := &Result{
		WorkDir:  a.dir,
		Revision: a.revision(),
		Duration: br.Duration,
	}
	for _, c := range br.Classes {
		res.Classes = append(res.Classes, fromBatch(c))
	}
	return res, err
}

func (a *analyzerAdapter) Class(ctx context.Context, main string) (*ClassResult, error) {
	cr, err := a.runner.RunClass(ctx, a.dir, main)
	if cr == nil {
		return nil, err
	}
	out := fromBatch(*cr)
	return &out, err
}

// revision looks up the corpus revision. A corpus outside git is not an
// error.
func (a *analyzerAdapter) revision() string {
	if a.cfg.NoProvenance {
		return ""
	}
	info, err := provenance.Lookup(a.dir)
	if err != nil {
		if !errors.Is(err, provenance.ErrNoGit) {
			a.cfg.Logger.Warn("corpus revision lookup failed", zap.Error(err))
		}
		return ""
	}
	return info.String()
}

func fromBatch(c batch.ClassResult) ClassResult {
	return ClassResult{
		File:      c.File,
		Signature: c.Signature,
		Code:      c.Code,
		Counters:  c.Counters,
		Err:       c.Err,
	}
}

// validateConfig checks that required fields are present.
func validateConfig(cfg Config) error {
	if cfg.Root == "" {
		return fmt.Errorf("Root is required")
	}
	if cfg.Job == "" {
		return fmt.Errorf("Job is required")
	}
	if cfg.Workers < 0 {
		return fmt.Errorf("Workers must not be negative")
	}
	return nil
}
