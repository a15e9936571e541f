// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package class derives integral-class signatures and file roles from
// kernel file names.
package class

import (
	"path/filepath"
	"strings"

	"github.com/petar-djukic/kernelmetrics/internal/shell"
	"github.com/petar-djukic/kernelmetrics/pkg/types"
)

const (
	// SourceExt is the extension of generated kernel files.
	SourceExt = ".cpp"

	separator = "_"
	vrrTag    = "_vrr"
	hrrTag    = "_hrr"
)

// fragments splits the base name of filename, extension removed.
func fragments(filename string) []string {
	base := filepath.Base(filename)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return strings.Split(name, separator)
}

// Of returns the class signature of filename and its code. A name with no
// shell fragments yields an empty signature and code 0.
func Of(filename string) (types.ClassSignature, types.ClassCode) {
	var sig types.ClassSignature
	for _, f := range fragments(filename) {
		if code := shell.Resolve(f); code.Valid() {
			sig = append(sig, code)
		}
	}
	return sig, sig.Code()
}

// Decode recovers a signature of length n from its code.
func Decode(code types.ClassCode, n int) types.ClassSignature {
	sig := make(types.ClassSignature, n)
	for i := 0; i < n; i++ {
		sig[i] = types.ShellCode(code % types.CodeWeight)
		code /= types.CodeWeight
	}
	return sig
}

// IsMainFile reports whether filename is a main kernel file: a source file
// whose last name fragment is a derivative marker or a shell symbol.
func IsMainFile(filename string) bool {
	if filepath.Ext(filename) != SourceExt {
		return false
	}
	frags := fragments(filename)
	last := frags[len(frags)-1]
	if isDerivMarker(last) {
		return true
	}
	return shell.Resolve(last).Valid()
}

// DerivOrder returns 1 or 2 for a main file ending in _d1 or _d2, else 0.
func DerivOrder(filename string) int {
	frags := fragments(filename)
	switch frags[len(frags)-1] {
	case "d1":
		return 1
	case "d2":
		return 2
	default:
		return 0
	}
}

// RoleOf classifies a file name. Aux roles are taken from the _vrr and
// _hrr tags; matching an aux file to its main file is done by ClassCode.
func RoleOf(filename string) types.FileRole {
	if filepath.Ext(filename) != SourceExt {
		return types.RoleNone
	}
	base := filepath.Base(filename)
	switch {
	case strings.Contains(base, vrrTag):
		return types.RoleAuxVRR
	case strings.Contains(base, hrrTag):
		return types.RoleAuxHRR
	case IsMainFile(filename):
		return types.RoleMain
	default:
		return types.RoleNone
	}
}

// IsVRR reports whether the base name carries the vrr marker.
func IsVRR(filename string) bool {
	return strings.Contains(stem(filename), "vrr")
}

// IsHRR reports whether the base name carries the hrr marker.
func IsHRR(filename string) bool {
	return strings.Contains(stem(filename), "hrr")
}

func stem(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func isDerivMarker(s string) bool {
	return s == "d1" || s == "d2"
}
