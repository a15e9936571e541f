// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/petar-djukic/kernelmetrics/pkg/kernelmetrics"
)

// newAnalyzeCmd creates the "analyze" command.
func newAnalyzeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Report memory and operation counts per class",
		Long: `Analyze scans every class of the job and prints a report per class.
A class that cannot be analyzed is listed in the summary and the remaining
classes are still reported.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, a)
		},
	}

	cmd.Flags().String("class", "", "Analyze only this main file")
	cmd.Flags().String("metrics-file", "", "Also write per-class gauges in Prometheus text format")
	cmd.Flags().Bool("strict", false, "Exit with an error when any class fails")

	return cmd
}

func runAnalyze(cmd *cobra.Command, a *app) error {
	cfg, err := a.config()
	if err != nil {
		return err
	}
	an, err := kernelmetrics.New(cfg)
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	out := cmd.OutOrStdout()
	if mainFile, _ := cmd.Flags().GetString("class"); mainFile != "" {
		cr, err := an.Class(ctx, mainFile)
		if err != nil {
			return err
		}
		res := &kernelmetrics.Result{WorkDir: an.WorkDir(), Classes: []kernelmetrics.ClassResult{*cr}}
		return res.WriteText(out, "")
	}

	res, err := an.Run(ctx)
	if err != nil {
		return err
	}

	if err := res.WriteText(out, reportHeader(cfg, res)); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	if path, _ := cmd.Flags().GetString("metrics-file"); path != "" {
		if err := res.WriteTextfile(path); err != nil {
			return err
		}
	}

	fmt.Fprint(cmd.ErrOrStderr(), renderSummary(cfg, res))

	if strict, _ := cmd.Flags().GetBool("strict"); strict && len(res.Failed()) > 0 {
		return fmt.Errorf("%d of %d classes failed", len(res.Failed()), len(res.Classes))
	}
	return nil
}

func reportHeader(cfg kernelmetrics.Config, res *kernelmetrics.Result) string {
	h := fmt.Sprintf("job %s, derivative order %d, %s", cfg.Job, cfg.Order, res.WorkDir)
	if res.Revision != "" {
		h += ", revision " + res.Revision
	}
	return h
}
