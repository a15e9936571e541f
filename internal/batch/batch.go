// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package batch analyzes every class of a work directory, one worker per
// class, and collects the per-class results.
package batch

import (
	"cmp"
	"context"
	"fmt"
	"runtime"
	"slices"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/petar-djukic/kernelmetrics/internal/group"
	"github.com/petar-djukic/kernelmetrics/internal/scan"
	"github.com/petar-djukic/kernelmetrics/pkg/types"
)

// ClassScanner abstracts the per-class scan so the runner is testable.
type ClassScanner interface {
	HintFor(g *types.FileGroup) scan.Hint
	Scan(g *types.FileGroup, hint scan.Hint) (*types.CounterSet, error)
}

// Deps holds injected dependencies for the runner.
type Deps struct {
	Scanner ClassScanner // Defaults to a scanner with default options
	Logger  *zap.Logger  // Defaults to a no-op logger
	Workers int          // Concurrent classes; defaults to GOMAXPROCS
}

// ClassResult is the outcome of one class. Exactly one of Counters and
// Err is set.
type ClassResult struct {
	File      string
	Signature types.ClassSignature
	Code      types.ClassCode
	Counters  *types.CounterSet
	Err       error
}

// RunResult holds the outcome of Runner.Run.
type RunResult struct {
	Dir      string
	Classes  []ClassResult // Sorted by ClassCode, then file name
	Duration time.Duration
}

// Failed returns the classes whose analysis stopped with an error.
func (r *RunResult) Failed() []ClassResult {
	var out []ClassResult
	for _, c := range r.Classes {
		if c.Err != nil {
			out = append(out, c)
		}
	}
	return out
}

// Runner analyzes work directories.
type Runner struct {
	deps Deps
}

// NewRunner creates a Runner with the given dependencies.
func NewRunner(deps Deps) *Runner {
	if deps.Scanner == nil {
		deps.Scanner = scan.New(scan.DefaultOptions())
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Workers <= 0 {
		deps.Workers = runtime.GOMAXPROCS(0)
	}
	return &Runner{deps: deps}
}

// Run analyzes every main file in dir. A class that fails is recorded in
// its ClassResult and the batch continues. Cancelling ctx stops new
// classes from starting; Run then returns the classes finished so far
// together with the context error.
func (r *Runner) Run(ctx context.Context, dir string) (*RunResult, error) {
	start := time.Now()
	log := r.deps.Logger.With(zap.String("dir", dir))

	mains, err := group.ListMains(dir)
	if err != nil {
		return nil, fmt.Errorf("listing main files: %w", err)
	}
	log.Debug("batch started", zap.Int("classes", len(mains)), zap.Int("workers", r.deps.Workers))

	results := make([]ClassResult, len(mains))
	done := make([]bool, len(mains))

	var eg errgroup.Group
	eg.SetLimit(r.deps.Workers)
	for i, main := range mains {
		if ctx.Err() != nil {
			break
		}
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = r.analyze(dir, main, log)
			done[i] = true
			return nil
		})
	}
	waitErr := eg.Wait()

	out := &RunResult{Dir: dir}
	for i := range results {
		if done[i] {
			out.Classes = append(out.Classes, results[i])
		}
	}
	sortClasses(out.Classes)
	out.Duration = time.Since(start)

	log.Info("batch finished",
		zap.Int("classes", len(out.Classes)),
		zap.Int("failed", len(out.Failed())),
		zap.Duration("duration", out.Duration),
	)

	if err := ctx.Err(); err != nil {
		return out, err
	}
	return out, waitErr
}

// RunClass analyzes one main file and returns its failure as an error.
func (r *Runner) RunClass(ctx context.Context, dir, main string) (*ClassResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	res := r.analyze(dir, main, r.deps.Logger.With(zap.String("dir", dir)))
	if res.Err != nil {
		return &res, res.Err
	}
	return &res, nil
}

func (r *Runner) analyze(dir, main string, log *zap.Logger) ClassResult {
	res := ClassResult{File: main}
	log = log.With(zap.String("class", main))

	g, err := group.Form(dir, main)
	if err != nil {
		res.Err = err
		log.Warn("class skipped", zap.Error(err))
		return res
	}
	res.Signature = g.Signature
	res.Code = g.Code

	hint := r.deps.Scanner.HintFor(g)
	cs, err := r.deps.Scanner.Scan(g, hint)
	if err != nil {
		res.Err = err
		log.Warn("class analysis failed", zap.Error(err))
		return res
	}
	res.Counters = cs

	log.Debug("class analyzed",
		zap.Int64("code", int64(g.Code)),
		zap.Strings("aux", g.Aux),
		zap.Bool("grid_loop", hint.GridLoop),
		zap.Int("k2_ops", cs.K2.Total()),
		zap.Int("k4_ops", cs.K4.Total()),
		zap.Int("post_ops", cs.Post.Total()),
		zap.Int("memory", cs.MemoryElems()),
	)
	return res
}

func sortClasses(classes []ClassResult) {
	slices.SortFunc(classes, func(a, b ClassResult) int {
		if c := cmp.Compare(a.Code, b.Code); c != 0 {
			return c
		}
		return cmp.Compare(a.File, b.File)
	})
}
