// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package report formats scanner results: a human-readable summary per
// class, a fixed-column data file, and a Prometheus textfile export.
package report

import (
	"cmp"
	"slices"

	"github.com/petar-djukic/kernelmetrics/pkg/types"
)

// Entry is the analysis result of one class.
type Entry struct {
	File      string // Main file name
	Signature types.ClassSignature
	Code      types.ClassCode
	Counters  *types.CounterSet
}

// sorted returns the entries ordered by ClassCode, then by file name.
// Entries without counters are dropped.
func sorted(entries []Entry) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.Counters != nil {
			out = append(out, e)
		}
	}
	slices.SortStableFunc(out, func(a, b Entry) int {
		if c := cmp.Compare(a.Code, b.Code); c != 0 {
			return c
		}
		return cmp.Compare(a.File, b.File)
	})
	return out
}
