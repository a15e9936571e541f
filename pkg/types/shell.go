// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package types defines shared types used across kernelmetrics packages.
package types

import "strconv"

// ShellCode is the angular momentum code of a shell symbol.
//
// Canonical letters map to 0-20 (S=0, P=1, D=2, ...), the composite SP
// shell maps to 100, and extended shells written as L<N> map to N.
type ShellCode int

const (
	NotFound  ShellCode = -1  // Token is not a shell symbol
	SP        ShellCode = 100 // Composite S+P shell
	MaxLetter ShellCode = 20  // Highest code with a named letter (Z)
)

// Valid reports whether the code came from a successful resolution.
func (c ShellCode) Valid() bool {
	return c >= 0
}

// String returns the decimal form used in reports.
func (c ShellCode) String() string {
	if c == NotFound {
		return "none"
	}
	return strconv.Itoa(int(c))
}
