// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package deriv extracts the derivative information that the kernel
// generator leaves as a comment block in each derivative main file.
package deriv

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/petar-djukic/kernelmetrics/internal/class"
	"github.com/petar-djukic/kernelmetrics/internal/group"
	"github.com/petar-djukic/kernelmetrics/pkg/types"
)

// Marker opens the derivative information block.
const Marker = "@@@@"

const commentPrefix = "//"

// Record is the derivative information of one main file.
type Record struct {
	File  string
	Code  types.ClassCode
	Lines []string
}

// FileName returns the output file name for a module and order.
func FileName(module string, order int) string {
	return fmt.Sprintf("deriv_infor_%s_%d.txt", module, order)
}

// Extract returns the comment lines that follow the marker in path, with
// the comment leaders removed. The block ends at the first line that is
// not a comment. A file without the marker yields no lines.
func Extract(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var lines []string
	reading := false
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := sc.Text()
		if strings.Contains(line, Marker) {
			reading = true
			continue
		}
		if !reading {
			continue
		}
		if !strings.Contains(line, commentPrefix) {
			break
		}
		lines = append(lines, strings.TrimSpace(strings.ReplaceAll(line, commentPrefix, " ")))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return lines, nil
}

// Collect extracts a Record for every derivative main file in dir. Only
// orders 1 and 2 carry derivative information.
func Collect(dir string, order int) ([]Record, error) {
	if order != 1 && order != 2 {
		return nil, fmt.Errorf("%w: derivative information needs order 1 or 2, got %d", types.ErrUnsupportedConfiguration, order)
	}

	mains, err := group.ListMains(dir)
	if err != nil {
		return nil, err
	}

	var records []Record
	for _, name := range mains {
		if class.DerivOrder(name) == 0 {
			continue
		}
		lines, err := Extract(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		_, code := class.Of(name)
		records = append(records, Record{File: name, Code: code, Lines: lines})
	}
	return records, nil
}

// Write emits each record as a blank line, the class code, then its
// lines.
func Write(w io.Writer, records []Record) error {
	bw := bufio.NewWriter(w)
	for _, r := range records {
		fmt.Fprintf(bw, "\n%d\n", r.Code)
		for _, l := range r.Lines {
			bw.WriteString(l)
			bw.WriteByte('\n')
		}
	}
	return bw.Flush()
}
