// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package scan

import (
	"strings"

	"github.com/petar-djukic/kernelmetrics/internal/class"
	"github.com/petar-djukic/kernelmetrics/pkg/types"
)

// postPass counts the post-processing section: the main file's preamble
// declarations and everything after its core region, then every _hrr
// file in full. It reports false without reading further when the class
// has no post section.
func (s *Scanner) postPass(g *types.FileGroup, hint Hint, cs *types.CounterSet) (bool, error) {
	has, err := s.hasPostSection(g)
	if err != nil || !has {
		return false, err
	}

	for i, name := range g.Files() {
		if i == 0 {
			err := readFile(g.Path(name), PassPost, func(c *cursor) error {
				return s.postMain(c, hint, &cs.Post)
			})
			if err != nil {
				return false, err
			}
			continue
		}
		if class.IsVRR(name) || !class.IsHRR(name) {
			continue
		}
		err := readFile(g.Path(name), PassPost, func(c *cursor) error {
			return s.postAux(c, &cs.Post)
		})
		if err != nil {
			return false, err
		}
	}
	return true, nil
}

// hasPostSection reports whether the main file goes beyond the core
// recurrence. Derivative kernels always do.
func (s *Scanner) hasPostSection(g *types.FileGroup) (bool, error) {
	if class.DerivOrder(g.Main) > 0 {
		return true, nil
	}
	marker := s.opts.Markers.PostMarker
	found := false
	err := readFile(g.Path(g.Main), PassPost, func(c *cursor) error {
		found = c.skipTo(func(line string) bool { return strings.Contains(line, marker) })
		return nil
	})
	return found, err
}

// postMain counts the declarations ahead of the core loop, steps over the
// core region, and counts the rest of the file.
func (s *Scanner) postMain(c *cursor, hint Hint, sec *types.Section) error {
	m := &s.opts.Markers
	t := &tracker{}

	if err := s.preamble(c, hint, sec); err != nil {
		return err
	}
	if !c.skipTo(m.isCoreEntry) {
		return c.missing("core region entry")
	}
	if !c.skipTo(isBlockClose) {
		return c.missing("core region close")
	}
	if err := t.enter(PostLoop); err != nil {
		return err
	}
	return s.countToEOF(c, t, sec)
}

// postAux counts a split-off post-processing file from its body to end of
// file.
func (s *Scanner) postAux(c *cursor, sec *types.Section) error {
	t := &tracker{}
	if !c.skipTo(isFunctionBody) {
		return c.missing("function body opener")
	}
	if err := t.enter(PostLoop); err != nil {
		return err
	}
	return s.countToEOF(c, t, sec)
}
