// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package scan

import "fmt"

// Phase is the position of the scanner within one kernel file.
type Phase int

const (
	Preamble  Phase = iota // Before the section being counted
	K2SubLoop              // Core loop, pair-level attribution
	K4SubLoop              // Core loop, quartet-level attribution
	PostLoop               // Post-processing section
	Done                   // Section finished for this file
)

func (p Phase) String() string {
	switch p {
	case Preamble:
		return "preamble"
	case K2SubLoop:
		return "k2"
	case K4SubLoop:
		return "k4"
	case PostLoop:
		return "post"
	case Done:
		return "done"
	default:
		return "unknown"
	}
}

// InCoreLoop reports whether the phase is one of the core sub-loops.
func (p Phase) InCoreLoop() bool {
	return p == K2SubLoop || p == K4SubLoop
}

// transitions lists the legal successors of each phase. The K2 to K4
// switch is one-way; nothing leaves Done.
var transitions = map[Phase][]Phase{
	Preamble:  {K2SubLoop, K4SubLoop, PostLoop},
	K2SubLoop: {K4SubLoop, Done},
	K4SubLoop: {Done},
	PostLoop:  {Done},
}

// CanEnter reports whether next may follow p.
func (p Phase) CanEnter(next Phase) bool {
	for _, q := range transitions[p] {
		if q == next {
			return true
		}
	}
	return false
}

// tracker holds the scan state of one file: the phase, the orthogonal
// skip-zone flag, and whether the core region has been entered.
type tracker struct {
	phase Phase
	skip  bool
	armed bool
}

func (t *tracker) enter(next Phase) error {
	if !t.phase.CanEnter(next) {
		return fmt.Errorf("illegal scan transition %s -> %s", t.phase, next)
	}
	t.phase = next
	return nil
}

// suppressed updates the skip zone for line and reports whether the line
// lies inside it. The closing line itself is not suppressed.
func (t *tracker) suppressed(m *Markers, line string) bool {
	if !t.skip && m.opensSkipZone(line) {
		t.skip = true
		return true
	}
	if t.skip && closesSkipZone(line) {
		t.skip = false
	}
	return t.skip
}
