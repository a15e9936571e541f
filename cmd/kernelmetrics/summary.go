// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/petar-djukic/kernelmetrics/pkg/kernelmetrics"
)

var (
	colorAccent  = lipgloss.Color("#20B9B4")
	colorWarning = lipgloss.Color("#F4D03F")
	colorError   = lipgloss.Color("#E74C3C")
	colorMuted   = lipgloss.Color("#2C4A54")
)

var styles = struct {
	Title lipgloss.Style
	Muted lipgloss.Style
	Error lipgloss.Style
	Box   lipgloss.Style
	OK    lipgloss.Style
	Fail  lipgloss.Style
}{
	Title: lipgloss.NewStyle().Bold(true).Foreground(colorAccent),
	Muted: lipgloss.NewStyle().Foreground(colorMuted),
	Error: lipgloss.NewStyle().Foreground(colorError),
	Box: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorAccent).
		Padding(0, 1),
	OK:   lipgloss.NewStyle().SetString("✓").Foreground(colorAccent),
	Fail: lipgloss.NewStyle().SetString("✗").Foreground(colorWarning),
}

// renderSummary returns the batch summary box followed by one line per
// failed class.
func renderSummary(cfg kernelmetrics.Config, res *kernelmetrics.Result) string {
	var body strings.Builder
	body.WriteString(styles.Title.Render(fmt.Sprintf("%s (order %d)", cfg.Job, cfg.Order)))
	body.WriteString("\n")
	fmt.Fprintf(&body, "%s %d classes analyzed\n", styles.OK, res.Succeeded())
	if failed := len(res.Failed()); failed > 0 {
		fmt.Fprintf(&body, "%s %d classes failed\n", styles.Fail, failed)
	}
	body.WriteString(styles.Muted.Render(fmt.Sprintf("%s in %s", res.WorkDir, res.Duration.Round(time.Millisecond))))
	if res.Revision != "" {
		body.WriteString(styles.Muted.Render(", revision " + res.Revision))
	}

	var out strings.Builder
	out.WriteString(styles.Box.Render(body.String()))
	out.WriteString("\n")
	for _, c := range res.Failed() {
		fmt.Fprintf(&out, "%s %s\n", styles.Error.Render(c.File), c.Err)
	}
	return out.String()
}
