// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package kernelmetrics is the public interface for measuring generated
// integral kernels: memory allocated and arithmetic operations per phase
// of every class in a job's work directory.
package kernelmetrics

import (
	"context"
	"errors"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/petar-djukic/kernelmetrics/internal/report"
	"github.com/petar-djukic/kernelmetrics/internal/scan"
	"github.com/petar-djukic/kernelmetrics/pkg/types"
)

// Error values returned by the Analyzer. The class-level values come from
// pkg/types and are matched with errors.Is.
var (
	ErrInvalidConfig            = errors.New("invalid config")
	ErrMarkerMissing            = types.ErrMarkerMissing
	ErrMalformedAnnotation      = types.ErrMalformedAnnotation
	ErrUnresolvableClass        = types.ErrUnresolvableClass
	ErrUnsupportedConfiguration = types.ErrUnsupportedConfiguration
)

// Markers is the marker vocabulary of the generated kernels. Empty fields
// take the generator defaults.
type Markers = scan.Markers

// DefaultMarkers returns the vocabulary emitted by the kernel generator.
func DefaultMarkers() Markers {
	return scan.DefaultMarkers()
}

// Config configures an Analyzer.
type Config struct {
	Root                string      // Corpus root holding energy, first_deriv, second_deriv (required)
	Job                 string      // Job name, e.g. eri or esp (required)
	Order               int         // Derivative order, 0 to 2
	Workers             int         // Classes analyzed concurrently (default GOMAXPROCS)
	Markers             Markers     // Marker overrides
	SingleFile          bool        // Reject classes split into _vrr/_hrr files
	NoSignificanceCheck bool        // Do not tally omitted-integral annotations
	NoProvenance        bool        // Skip the corpus git revision lookup
	Logger              *zap.Logger // Defaults to a no-op logger
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

// Result holds the outcome of Analyzer.Run.
type Result struct {
	WorkDir  string        // Resolved work directory
	Revision string        // Corpus revision, empty when unknown
	Classes  []ClassResult // Sorted by ClassCode, then file name
	Duration time.Duration
}

// Failed returns the classes whose analysis stopped with an error.
func (r *Result) Failed() []ClassResult {
	var out []ClassResult
	for _, c := range r.Classes {
		if c.Err != nil {
			out = append(out, c)
		}
	}
	return out
}

// Succeeded returns the number of classes with counters.
func (r *Result) Succeeded() int {
	return len(r.Classes) - len(r.Failed())
}

func (r *Result) entries() []report.Entry {
	var out []report.Entry
	for _, c := range r.Classes {
		if c.Err == nil {
			out = append(out, report.Entry{File: c.File, Signature: c.Signature, Code: c.Code, Counters: c.Counters})
		}
	}
	return out
}

// WriteText writes the human-readable report of every successful class.
func (r *Result) WriteText(w io.Writer, header string) error {
	return report.WriteText(w, header, r.entries())
}

// WriteDataFile writes the fixed-column memory data file.
func (r *Result) WriteDataFile(w io.Writer) error {
	return report.WriteDataFile(w, r.entries())
}

// WriteTextfile writes the per-class gauges in Prometheus text format.
func (r *Result) WriteTextfile(path string) error {
	return report.WriteTextfile(path, r.entries())
}

// Analyzer measures the classes of one work directory.
type Analyzer interface {
	// Run analyzes every class. Per-class failures are recorded in the
	// result; the error reports only failures of the batch itself.
	Run(ctx context.Context) (*Result, error)

	// Class analyzes the class of one main file and returns its failure
	// as an error.
	Class(ctx context.Context, main string) (*ClassResult, error)

	// WorkDir returns the resolved work directory.
	WorkDir() string
}
