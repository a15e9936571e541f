// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package scan

import (
	"strconv"
	"strings"
)

const (
	blockOpen  = "{"
	blockClose = "}"
)

// Markers is the textual vocabulary the scanner recognizes in generated
// kernel files. Every field matches literally.
type Markers struct {
	LoopKeyword     string `mapstructure:"loop_keyword"`      // Leading keyword of a loop opener
	GridCount       string `mapstructure:"grid_count"`        // Identifier bounding the grid loop
	GridJobTag      string `mapstructure:"grid_job_tag"`      // File-name substring of grid-loop jobs
	CoreEntry       string `mapstructure:"core_entry"`        // Phrase opening the core region
	ExternalPrefix  string `mapstructure:"external_prefix"`   // Prefix of split recurrence functions
	ExternalTag     string `mapstructure:"external_tag"`      // Tag of split recurrence functions
	IgnoredPhrase   string `mapstructure:"ignored_phrase"`    // Comment phrase reporting omitted integrals
	IgnoredCountKey string `mapstructure:"ignored_count_key"` // Word preceding the omitted count
	SkipFlag        string `mapstructure:"skip_flag"`         // Feature flag of the single-precision branch
	AllocCall       string `mapstructure:"alloc_call"`        // Memory pool allocation call
	VectorType      string `mapstructure:"vector_type"`       // Sized vector type
	ScalarType      string `mapstructure:"scalar_type"`       // Scalar variable type
	PostMarker      string `mapstructure:"post_marker"`       // Phrase announcing the post section
}

// DefaultMarkers returns the vocabulary emitted by the kernel generator.
func DefaultMarkers() Markers {
	return Markers{
		LoopKeyword:     "for",
		GridCount:       "nGrids",
		GridJobTag:      "esp",
		CoreEntry:       "shell quartet name",
		ExternalPrefix:  "hgp_os",
		ExternalTag:     "vrr",
		IgnoredPhrase:   "integrals are omitted",
		IgnoredCountKey: "totally",
		SkipFlag:        "WITH_SINGLE_PRECISION",
		AllocCall:       "getNewMemPos",
		VectorType:      "DoubleVec",
		ScalarType:      "Double",
		PostMarker:      "initilize the HRR steps",
	}
}

// WithDefaults fills every empty field from DefaultMarkers.
func (m Markers) WithDefaults() Markers {
	d := DefaultMarkers()
	fill := func(dst *string, def string) {
		if *dst == "" {
			*dst = def
		}
	}
	fill(&m.LoopKeyword, d.LoopKeyword)
	fill(&m.GridCount, d.GridCount)
	fill(&m.GridJobTag, d.GridJobTag)
	fill(&m.CoreEntry, d.CoreEntry)
	fill(&m.ExternalPrefix, d.ExternalPrefix)
	fill(&m.ExternalTag, d.ExternalTag)
	fill(&m.IgnoredPhrase, d.IgnoredPhrase)
	fill(&m.IgnoredCountKey, d.IgnoredCountKey)
	fill(&m.SkipFlag, d.SkipFlag)
	fill(&m.AllocCall, d.AllocCall)
	fill(&m.VectorType, d.VectorType)
	fill(&m.ScalarType, d.ScalarType)
	fill(&m.PostMarker, d.PostMarker)
	return m
}

// The predicates below take a line already trimmed of surrounding space.

func isComment(line string) bool {
	return strings.HasPrefix(line, "//") ||
		strings.HasPrefix(line, "*") ||
		strings.HasPrefix(line, "/*")
}

func (m *Markers) isLoopOpener(line string) bool {
	return hasWordPrefix(line, m.LoopKeyword) && strings.Contains(line, blockOpen)
}

func (m *Markers) isGridLoop(line string) bool {
	return hasWordPrefix(line, m.LoopKeyword) && strings.Contains(line, m.GridCount)
}

// isCoreLoop matches the opener of the core recurrence loop.
func (m *Markers) isCoreLoop(line string) bool {
	return m.isLoopOpener(line) && !m.isGridLoop(line)
}

// isCoreEntry matches the start of the core region: the shell quartet
// computation, or the call into a split-off recurrence function.
func (m *Markers) isCoreEntry(line string) bool {
	if strings.Contains(line, m.CoreEntry) {
		return true
	}
	return strings.Contains(line, m.ExternalPrefix) && strings.Contains(line, m.ExternalTag)
}

func isBlockClose(line string) bool {
	return strings.HasPrefix(line, blockClose)
}

func isFunctionBody(line string) bool {
	return strings.HasPrefix(line, blockOpen)
}

func (m *Markers) opensSkipZone(line string) bool {
	return strings.Contains(line, m.SkipFlag) && strings.Contains(line, "ifdef")
}

func closesSkipZone(line string) bool {
	return strings.Contains(line, "#endif") || strings.Contains(line, "#else")
}

// ignoredCount parses an omitted-integrals annotation. ok is false when
// line is not such an annotation.
func (m *Markers) ignoredCount(line string) (n int, ok bool, err error) {
	if !strings.Contains(line, m.IgnoredPhrase) {
		return 0, false, nil
	}
	fields := strings.Fields(line)
	for i, f := range fields {
		if f != m.IgnoredCountKey {
			continue
		}
		if i+1 >= len(fields) {
			break
		}
		n, err := strconv.Atoi(fields[i+1])
		if err != nil {
			return 0, true, errMalformed("omitted integral count %q is not an integer", fields[i+1])
		}
		return n, true, nil
	}
	return 0, true, errMalformed("omitted integral annotation has no %q count", m.IgnoredCountKey)
}

// vectorElems parses an allocation: a pool call or a sized vector whose
// first parenthesized field is the element count. ok is false when line
// allocates nothing.
func (m *Markers) vectorElems(line string) (n int, ok bool, err error) {
	for _, token := range []string{m.AllocCall, m.VectorType} {
		idx := strings.Index(line, token)
		if idx < 0 {
			continue
		}
		rest := line[idx+len(token):]
		open := strings.Index(rest, "(")
		if open < 0 {
			continue
		}
		field := rest[open+1:]
		end := strings.IndexAny(field, ",)")
		if end < 0 {
			return 0, true, errMalformed("unterminated %s argument list", token)
		}
		raw := strings.TrimSpace(field[:end])
		n, err := strconv.Atoi(raw)
		if err != nil {
			return 0, true, errMalformed("%s size %q is not an integer", token, raw)
		}
		return n, true, nil
	}
	return 0, false, nil
}

// isScalarDecl matches a line that starts with the scalar type as a whole
// word and assigns a value.
func (m *Markers) isScalarDecl(line string) bool {
	return hasWordPrefix(line, m.ScalarType) && strings.Contains(line, "=")
}

// GridJob reports whether a main file belongs to a job whose kernels loop
// over grid points first.
func (m *Markers) GridJob(filename string) bool {
	return strings.Contains(filename, m.GridJobTag)
}

// hasWordPrefix reports whether line starts with word not followed by an
// identifier character.
func hasWordPrefix(line, word string) bool {
	if !strings.HasPrefix(line, word) {
		return false
	}
	rest := line[len(word):]
	return rest == "" || !isIdentByte(rest[0])
}

func isIdentByte(b byte) bool {
	return b == '_' || (b >= '0' && b <= '9') || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
