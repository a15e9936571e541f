// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/petar-djukic/kernelmetrics/pkg/types"
)

const rule = "*************************************************************************"

// WriteText writes a human-readable block per class. Sections without
// arithmetic are omitted: the K4 lines when HasK4 is false and the post
// block when HasPost is false. header, when not empty, is written first.
func WriteText(w io.Writer, header string, entries []Entry) error {
	var buf strings.Builder

	if header != "" {
		buf.WriteString(header)
		buf.WriteString("\n\n")
	}

	for _, e := range sorted(entries) {
		formatEntry(&buf, e)
	}

	_, err := io.WriteString(w, buf.String())
	return err
}

func formatEntry(buf *strings.Builder, e Entry) {
	cs := e.Counters
	line := func(label string, v int) {
		fmt.Fprintf(buf, "%-25s: %d\n", label, v)
	}

	buf.WriteString(rule + "\n")
	fmt.Fprintf(buf, "class %s (code %d)\n", e.File, e.Code)

	buf.WriteString("core recurrence:\n")
	line("scalar variables", cs.CoreScalars())
	line("vector elements", cs.CoreVectorElems())
	line("ignored integrals", cs.CoreIgnored())
	line("total K2 operations", cs.K2.Total())
	line("+ and - in K2", cs.K2.AddSub)
	line("* and / in K2", cs.K2.MulDiv)
	if cs.HasK4() {
		line("+ and - in K4", cs.K4.AddSub)
		line("* and / in K4", cs.K4.MulDiv)
		line("total K4 operations", cs.K4.Total())
	}

	if cs.HasPost() {
		buf.WriteString("post processing:\n")
		writeSection(buf, cs.Post, line)
	}
	buf.WriteString(rule + "\n\n")
}

func writeSection(buf *strings.Builder, s types.Section, line func(string, int)) {
	line("scalar variables", s.Scalars)
	line("vector elements", s.VectorElems)
	line("ignored integrals", s.Ignored)
	line("total operations", s.Total())
	line("+ and -", s.AddSub)
	line("* and /", s.MulDiv)
}
