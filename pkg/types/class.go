// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package types

import (
	"path/filepath"
	"strings"
)

// ClassCode is the single-integer fingerprint of a ClassSignature. Position
// i of the signature carries weight 1000^i.
type ClassCode int64

// CodeWeight is the positional base used to compose a ClassCode.
const CodeWeight = 1000

// ClassSignature is the ordered list of shell codes found in a kernel
// file name, left to right.
type ClassSignature []ShellCode

// Code composes the ClassCode for the signature.
func (s ClassSignature) Code() ClassCode {
	var code ClassCode
	weight := ClassCode(1)
	for _, c := range s {
		code += weight * ClassCode(c)
		weight *= CodeWeight
	}
	return code
}

// Empty reports whether no fragment of the name resolved.
func (s ClassSignature) Empty() bool {
	return len(s) == 0
}

// String renders the signature as space-separated codes.
func (s ClassSignature) String() string {
	parts := make([]string, len(s))
	for i, c := range s {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

// FileRole identifies how a kernel source file takes part in a FileGroup.
type FileRole int

const (
	RoleNone   FileRole = iota // Not part of any class
	RoleMain                   // Main kernel file
	RoleAuxVRR                 // Split-off core recurrence file
	RoleAuxHRR                 // Split-off post-processing file
)

func (r FileRole) String() string {
	switch r {
	case RoleMain:
		return "main"
	case RoleAuxVRR:
		return "aux-vrr"
	case RoleAuxHRR:
		return "aux-hrr"
	default:
		return "none"
	}
}

// FileGroup is a Main file plus the Aux files that share its ClassCode.
// Names are relative to Dir.
type FileGroup struct {
	Dir       string         // Work directory holding the files
	Main      string         // Main kernel file name
	Aux       []string       // Aux file names, sorted
	Signature ClassSignature // Signature of the Main file
	Code      ClassCode      // Code shared by every file in the group
}

// Files returns the group's file names with Main first.
func (g *FileGroup) Files() []string {
	files := make([]string, 0, len(g.Aux)+1)
	files = append(files, g.Main)
	return append(files, g.Aux...)
}

// Path joins a group file name with the work directory.
func (g *FileGroup) Path(name string) string {
	return filepath.Join(g.Dir, name)
}
