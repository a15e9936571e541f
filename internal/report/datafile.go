// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package report

import (
	"bufio"
	"fmt"
	"io"
)

// Column widths of the data file.
const (
	codeWidth   = 14
	memWidth    = 10
	symbolWidth = 5
)

// WriteDataFile writes one line per class, sorted by ClassCode: the code,
// the total vector elements allocated, then each signature component.
func WriteDataFile(w io.Writer, entries []Entry) error {
	bw := bufio.NewWriter(w)
	for _, e := range sorted(entries) {
		fmt.Fprintf(bw, "%*d%*d", codeWidth, e.Code, memWidth, e.Counters.MemoryElems())
		for _, c := range e.Signature {
			fmt.Fprintf(bw, "%*d", symbolWidth, c)
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
