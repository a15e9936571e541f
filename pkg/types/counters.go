// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package types

// Section holds the counters of one phase of a kernel.
type Section struct {
	Scalars     int // Scalar variable declarations
	VectorElems int // Elements allocated through vectors or memory pools
	Ignored     int // Integrals dropped by the significance screen
	AddSub      int // Occurrences of + and -
	MulDiv      int // Occurrences of * and /
}

// Total returns the arithmetic operation count of the section.
func (s Section) Total() int {
	return s.AddSub + s.MulDiv
}

// Add returns the element-wise sum of two sections.
func (s Section) Add(o Section) Section {
	return Section{
		Scalars:     s.Scalars + o.Scalars,
		VectorElems: s.VectorElems + o.VectorElems,
		Ignored:     s.Ignored + o.Ignored,
		AddSub:      s.AddSub + o.AddSub,
		MulDiv:      s.MulDiv + o.MulDiv,
	}
}

// CounterSet is the aggregate result of analyzing one class. K2 and K4 are
// the pair-level and quartet-level sub-loops of the core recurrence; Post
// is everything after it. Preamble holds the declarations of the main file
// ahead of the core loop; the post pass counts the same lines into Post
// when it runs.
type CounterSet struct {
	Preamble Section
	K2       Section
	K4       Section
	Post     Section
	PostRan  bool // The post-processing pass ran (a post section exists)
}

// Core returns the K2 and K4 counters combined.
func (c *CounterSet) Core() Section {
	return c.K2.Add(c.K4)
}

// CoreScalars returns scalar declarations across both sub-loops.
func (c *CounterSet) CoreScalars() int {
	return c.K2.Scalars + c.K4.Scalars
}

// CoreVectorElems returns vector elements across both sub-loops.
func (c *CounterSet) CoreVectorElems() int {
	return c.K2.VectorElems + c.K4.VectorElems
}

// CoreIgnored returns ignored integrals across both sub-loops.
func (c *CounterSet) CoreIgnored() int {
	return c.K2.Ignored + c.K4.Ignored
}

// HasK4 reports whether the quartet-level sub-loop did any arithmetic.
func (c *CounterSet) HasK4() bool {
	return c.K4.Total() > 0
}

// HasPost reports whether the post section did any arithmetic.
func (c *CounterSet) HasPost() bool {
	return c.Post.Total() > 0
}

// MemoryElems returns every vector element allocated by the class. The
// preamble is taken from Post when the post pass ran, so it is never
// counted twice.
func (c *CounterSet) MemoryElems() int {
	n := c.CoreVectorElems() + c.Post.VectorElems
	if !c.PostRan {
		n += c.Preamble.VectorElems
	}
	return n
}

// Ignored returns ignored integrals across all sections.
func (c *CounterSet) Ignored() int {
	return c.CoreIgnored() + c.Post.Ignored
}
