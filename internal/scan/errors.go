// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package scan

import (
	"fmt"

	"github.com/petar-djukic/kernelmetrics/pkg/types"
)

// Pass names used in errors and logs.
const (
	PassCore = "core"
	PassPost = "post"
)

// Error describes why the analysis of a class stopped. It unwraps to one
// of the sentinel errors in pkg/types.
type Error struct {
	Pass string // Pass that failed
	File string // File being read
	Line int    // Line number (1-based, 0 at end of file)
	Kind error  // Sentinel failure class
	Msg  string // What went wrong
}

func (e *Error) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s pass: %s:%d: %v: %s", e.Pass, e.File, e.Line, e.Kind, e.Msg)
	}
	return fmt.Sprintf("%s pass: %s: %v: %s", e.Pass, e.File, e.Kind, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// lineError is a classification failure not yet tied to a file position.
type lineError struct {
	kind error
	msg  string
}

func (e *lineError) Error() string {
	return e.msg
}

func errMalformed(format string, args ...any) error {
	return &lineError{kind: types.ErrMalformedAnnotation, msg: fmt.Sprintf(format, args...)}
}
