// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package scan

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/petar-djukic/kernelmetrics/pkg/types"
)

// maxLineBytes bounds a single generated source line.
const maxLineBytes = 4 * 1024 * 1024

// cursor reads one file top to bottom. It never moves backwards.
type cursor struct {
	path string
	pass string
	sc   *bufio.Scanner
	n    int    // Current line number (1-based)
	text string // Current line, trimmed
}

// readFile opens path, hands a cursor to fn, and closes the file before
// returning.
func readFile(path, pass string, fn func(c *cursor) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	c := &cursor{path: path, pass: pass, sc: sc}

	err = fn(c)
	if scanErr := sc.Err(); scanErr != nil {
		return fmt.Errorf("reading %s: %w", path, scanErr)
	}
	return err
}

func (c *cursor) next() bool {
	if !c.sc.Scan() {
		return false
	}
	c.n++
	c.text = strings.TrimSpace(c.sc.Text())
	return true
}

// skipTo advances until match accepts a line. It returns false at end of
// file.
func (c *cursor) skipTo(match func(line string) bool) bool {
	for c.next() {
		if match(c.text) {
			return true
		}
	}
	return false
}

func (c *cursor) missing(what string) error {
	return &Error{
		Pass: c.pass,
		File: c.path,
		Kind: types.ErrMarkerMissing,
		Msg:  what + " not found before end of file",
	}
}

// fail ties a classification error to the current line.
func (c *cursor) fail(err error) error {
	var le *lineError
	if errors.As(err, &le) {
		return &Error{Pass: c.pass, File: c.path, Line: c.n, Kind: le.kind, Msg: le.msg}
	}
	return fmt.Errorf("%s:%d: %w", c.path, c.n, err)
}
