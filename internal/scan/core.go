// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package scan

import (
	"fmt"

	"github.com/petar-djukic/kernelmetrics/internal/class"
	"github.com/petar-djukic/kernelmetrics/pkg/types"
)

// corePass counts the recurrence section: the main file up to the end of
// its core region, then every _vrr file in full. A _vrr file continues
// the sub-loop attribution the main file ended in.
func (s *Scanner) corePass(g *types.FileGroup, hint Hint, cs *types.CounterSet) error {
	carry := K2SubLoop
	for i, name := range g.Files() {
		if i == 0 {
			err := readFile(g.Path(name), PassCore, func(c *cursor) error {
				end, err := s.coreMain(c, hint, cs)
				carry = end
				return err
			})
			if err != nil {
				return err
			}
			continue
		}
		if !class.IsVRR(name) {
			continue
		}
		err := readFile(g.Path(name), PassCore, func(c *cursor) error {
			return s.coreAux(c, carry, cs)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// coreMain scans the main file and returns the sub-loop it ended in.
func (s *Scanner) coreMain(c *cursor, hint Hint, cs *types.CounterSet) (Phase, error) {
	m := &s.opts.Markers
	t := &tracker{}

	if err := s.preamble(c, hint, &cs.Preamble); err != nil {
		return t.phase, err
	}
	if err := t.enter(K2SubLoop); err != nil {
		return t.phase, err
	}

	for c.next() {
		line := c.text
		if line == "" {
			continue
		}
		if m.isCoreEntry(line) {
			t.armed = true
		}
		if t.armed && isBlockClose(line) {
			end := t.phase
			return end, t.enter(Done)
		}
		if t.suppressed(m, line) {
			continue
		}
		if isComment(line) {
			if err := s.tallyIgnored(c, sectionFor(cs, t.phase)); err != nil {
				return t.phase, err
			}
			continue
		}
		// A second loop opener inside the core loop starts the quartet
		// level. Deeper nesting is not distinguished.
		if t.phase == K2SubLoop && m.isLoopOpener(line) {
			if err := t.enter(K4SubLoop); err != nil {
				return t.phase, err
			}
		}
		if err := s.count(c, sectionFor(cs, t.phase)); err != nil {
			return t.phase, err
		}
	}

	if !t.armed {
		return t.phase, c.missing("core region entry")
	}
	return t.phase, c.missing("core region close")
}

// preamble moves c past the function body opener and the optional grid
// loop, then counts declarations into sec up to the core loop opener.
func (s *Scanner) preamble(c *cursor, hint Hint, sec *types.Section) error {
	m := &s.opts.Markers
	t := &tracker{}

	if !c.skipTo(isFunctionBody) {
		return c.missing("function body opener")
	}
	if hint.GridLoop && !c.skipTo(m.isGridLoop) {
		return c.missing("grid loop opener")
	}
	for c.next() {
		line := c.text
		if line == "" || isComment(line) || t.suppressed(m, line) {
			continue
		}
		if m.isCoreLoop(line) {
			return nil
		}
		if err := s.countDecls(c, sec); err != nil {
			return err
		}
	}
	return c.missing("core loop opener")
}

// coreAux scans a split-off recurrence file from its body to end of file.
func (s *Scanner) coreAux(c *cursor, start Phase, cs *types.CounterSet) error {
	if !start.InCoreLoop() {
		return fmt.Errorf("%s: recurrence file entered from %s", c.path, start)
	}
	t := &tracker{}
	if !c.skipTo(isFunctionBody) {
		return c.missing("function body opener")
	}
	if err := t.enter(start); err != nil {
		return err
	}
	return s.countToEOF(c, t, sectionFor(cs, start))
}
