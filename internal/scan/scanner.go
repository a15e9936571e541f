// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package scan is the phase-segmented scanner. It reads the files of one
// integral class line by line and counts declarations, allocations,
// omitted integrals and arithmetic operators per phase.
//
// A class is read in two independent passes. The core pass covers the
// recurrence loop and attributes its lines to the pair-level (K2) or
// quartet-level (K4) sub-loop. The post pass covers everything after the
// recurrence. Each pass fails with an *Error as soon as an expected marker
// is missing; no partial counts are returned.
package scan

import (
	"fmt"
	"strings"

	"github.com/petar-djukic/kernelmetrics/pkg/types"
)

// Options configures a Scanner.
type Options struct {
	Markers           Markers // Marker vocabulary; empty fields take defaults
	AllowSplit        bool    // Accept classes split into _vrr/_hrr files
	SignificanceCheck bool    // Tally omitted-integral annotations
}

// DefaultOptions returns the options matching the kernel generator.
func DefaultOptions() Options {
	return Options{
		Markers:           DefaultMarkers(),
		AllowSplit:        true,
		SignificanceCheck: true,
	}
}

// Hint carries what the caller knows about the job a class belongs to.
type Hint struct {
	GridLoop bool // Kernels open with a loop over grid points
}

// Scanner analyzes file groups. It holds no per-class state and is safe
// for concurrent use.
type Scanner struct {
	opts Options
}

// New returns a Scanner for opts.
func New(opts Options) *Scanner {
	opts.Markers = opts.Markers.WithDefaults()
	return &Scanner{opts: opts}
}

// Markers returns the vocabulary in use.
func (s *Scanner) Markers() Markers {
	return s.opts.Markers
}

// HintFor derives the job hint from the main file name.
func (s *Scanner) HintFor(g *types.FileGroup) Hint {
	return Hint{GridLoop: s.opts.Markers.GridJob(g.Main)}
}

// Scan runs the core and post passes over g and returns a fresh
// CounterSet. On error the returned CounterSet is nil.
func (s *Scanner) Scan(g *types.FileGroup, hint Hint) (*types.CounterSet, error) {
	if len(g.Aux) > 0 && !s.opts.AllowSplit {
		return nil, fmt.Errorf("%w: %s is split into %d sub files", types.ErrUnsupportedConfiguration, g.Main, len(g.Aux))
	}

	cs := &types.CounterSet{}
	if err := s.corePass(g, hint, cs); err != nil {
		return nil, err
	}
	ran, err := s.postPass(g, hint, cs)
	if err != nil {
		return nil, err
	}
	cs.PostRan = ran
	return cs, nil
}

// sectionFor maps a phase to the counters it accumulates into.
func sectionFor(cs *types.CounterSet, p Phase) *types.Section {
	switch p {
	case K4SubLoop:
		return &cs.K4
	case PostLoop:
		return &cs.Post
	default:
		return &cs.K2
	}
}

// count classifies a code line into sec: an allocation or a scalar
// declaration, plus its arithmetic operators.
func (s *Scanner) count(c *cursor, sec *types.Section) error {
	if err := s.countDecls(c, sec); err != nil {
		return err
	}
	line := c.text
	sec.AddSub += strings.Count(line, "+") + strings.Count(line, "-")
	sec.MulDiv += strings.Count(line, "*") + strings.Count(line, "/")
	return nil
}

// countDecls counts only allocations and scalar declarations.
func (s *Scanner) countDecls(c *cursor, sec *types.Section) error {
	m := &s.opts.Markers
	n, ok, err := m.vectorElems(c.text)
	if err != nil {
		return c.fail(err)
	}
	if ok {
		sec.VectorElems += n
	} else if m.isScalarDecl(c.text) {
		sec.Scalars++
	}
	return nil
}

// tallyIgnored adds an omitted-integral annotation found in a comment line.
func (s *Scanner) tallyIgnored(c *cursor, sec *types.Section) error {
	if !s.opts.SignificanceCheck {
		return nil
	}
	n, ok, err := s.opts.Markers.ignoredCount(c.text)
	if err != nil {
		return c.fail(err)
	}
	if ok {
		sec.Ignored += n
	}
	return nil
}

// countToEOF counts every remaining line of the file into sec.
func (s *Scanner) countToEOF(c *cursor, t *tracker, sec *types.Section) error {
	m := &s.opts.Markers
	for c.next() {
		line := c.text
		if line == "" || t.suppressed(m, line) {
			continue
		}
		if isComment(line) {
			if err := s.tallyIgnored(c, sec); err != nil {
				return err
			}
			continue
		}
		if err := s.count(c, sec); err != nil {
			return err
		}
	}
	return t.enter(Done)
}
