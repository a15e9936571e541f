// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Comparison lists the data file lines that changed against a baseline.
type Comparison struct {
	Removed []string // Lines only in the baseline
	Added   []string // Lines only in the current file
}

// Changed reports whether the files differ.
func (c Comparison) Changed() bool {
	return len(c.Removed) > 0 || len(c.Added) > 0
}

// Write renders the changed lines, baseline lines first.
func (c Comparison) Write(w io.Writer) error {
	var buf strings.Builder
	for _, l := range c.Removed {
		fmt.Fprintf(&buf, "- %s\n", l)
	}
	for _, l := range c.Added {
		fmt.Fprintf(&buf, "+ %s\n", l)
	}
	_, err := io.WriteString(w, buf.String())
	return err
}

// CompareDataFiles diffs two data files line by line.
func CompareDataFiles(baseline, current string) Comparison {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(baseline, current)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var c Comparison
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			c.Removed = append(c.Removed, splitLines(d.Text)...)
		case diffmatchpatch.DiffInsert:
			c.Added = append(c.Added, splitLines(d.Text)...)
		}
	}
	return c
}

func splitLines(s string) []string {
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}
