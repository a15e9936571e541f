// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/petar-djukic/kernelmetrics/internal/shell"
	"github.com/petar-djukic/kernelmetrics/pkg/types"
)

const metricsNamespace = "kernelmetrics"

// Phase label values.
const (
	phaseK2   = "k2"
	phaseK4   = "k4"
	phasePost = "post"
)

// ClassMetrics holds the per-class gauges exported to a textfile.
type ClassMetrics struct {
	Operations *prometheus.GaugeVec
	Scalars    *prometheus.GaugeVec
	Vectors    *prometheus.GaugeVec
	Ignored    *prometheus.GaugeVec
	Memory     *prometheus.GaugeVec
}

// NewClassMetrics creates the gauges and registers them with reg.
func NewClassMetrics(reg prometheus.Registerer) (*ClassMetrics, error) {
	classLabels := []string{"class", "code"}
	phaseLabels := []string{"class", "code", "phase"}

	m := &ClassMetrics{
		Operations: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: metricsNamespace,
				Name:      "operations",
				Help:      "Arithmetic operator occurrences by class, phase and kind",
			},
			[]string{"class", "code", "phase", "kind"},
		),
		Scalars: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: metricsNamespace,
				Name:      "scalar_variables",
				Help:      "Scalar variable declarations by class and phase",
			},
			phaseLabels,
		),
		Vectors: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: metricsNamespace,
				Name:      "vector_elements",
				Help:      "Allocated vector elements by class and phase",
			},
			phaseLabels,
		),
		Ignored: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: metricsNamespace,
				Name:      "ignored_integrals",
				Help:      "Integrals omitted by the significance screen by class and phase",
			},
			phaseLabels,
		),
		Memory: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: metricsNamespace,
				Name:      "memory_elements",
				Help:      "Total vector elements allocated by class",
			},
			classLabels,
		),
	}

	for _, c := range []prometheus.Collector{m.Operations, m.Scalars, m.Vectors, m.Ignored, m.Memory} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("registering class metrics: %w", err)
		}
	}
	return m, nil
}

// Observe sets the gauges of every entry.
func (m *ClassMetrics) Observe(entries []Entry) {
	for _, e := range sorted(entries) {
		cls := classLabel(e.Signature)
		code := strconv.FormatInt(int64(e.Code), 10)
		cs := e.Counters

		phases := []struct {
			name string
			sec  types.Section
			keep bool
		}{
			{phaseK2, cs.K2, true},
			{phaseK4, cs.K4, true},
			{phasePost, cs.Post, cs.PostRan},
		}
		for _, p := range phases {
			if !p.keep {
				continue
			}
			m.Operations.WithLabelValues(cls, code, p.name, "add_sub").Set(float64(p.sec.AddSub))
			m.Operations.WithLabelValues(cls, code, p.name, "mul_div").Set(float64(p.sec.MulDiv))
			m.Scalars.WithLabelValues(cls, code, p.name).Set(float64(p.sec.Scalars))
			m.Vectors.WithLabelValues(cls, code, p.name).Set(float64(p.sec.VectorElems))
			m.Ignored.WithLabelValues(cls, code, p.name).Set(float64(p.sec.Ignored))
		}
		m.Memory.WithLabelValues(cls, code).Set(float64(cs.MemoryElems()))
	}
}

// WriteTextfile writes entries to path in the Prometheus text format read
// by the node exporter textfile collector.
func WriteTextfile(path string, entries []Entry) error {
	reg := prometheus.NewRegistry()
	m, err := NewClassMetrics(reg)
	if err != nil {
		return err
	}
	m.Observe(entries)
	if err := prometheus.WriteToTextfile(path, reg); err != nil {
		return fmt.Errorf("writing metrics textfile: %w", err)
	}
	return nil
}

// classLabel renders a signature with shell letters, e.g. "D_D_P_P".
func classLabel(sig types.ClassSignature) string {
	parts := make([]string, len(sig))
	for i, c := range sig {
		parts[i] = shell.Symbol(c)
	}
	return strings.Join(parts, "_")
}
