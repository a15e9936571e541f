// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/petar-djukic/kernelmetrics/internal/report"
	"github.com/petar-djukic/kernelmetrics/pkg/kernelmetrics"
)

// newMemoryCmd creates the "memory" command.
func newMemoryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "memory",
		Short: "Write the per-class memory data file",
		Long: `Memory writes one line per class: the class code, the vector elements
allocated, and the angular momentum of each shell.`,
		RunE: func(cmd *cobra.Command, args []string) error {
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

			res, err := an.Run(ctx)
			if err != nil {
				return err
			}

			var data bytes.Buffer
			if err := res.WriteDataFile(&data); err != nil {
				return err
			}
			path, _ := cmd.Flags().GetString("out")
			err = writeTo(cmd.OutOrStdout(), path, func(w io.Writer) error {
				_, err := w.Write(data.Bytes())
				return err
			})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.ErrOrStderr(), renderSummary(cfg, res))

			baseline, _ := cmd.Flags().GetString("baseline")
			if baseline == "" {
				return nil
			}
			return compareBaseline(cmd, baseline, data.String())
		},
	}

	cmd.Flags().StringP("out", "o", "", "Output file (default stdout)")
	cmd.Flags().String("baseline", "", "Data file of an earlier run to compare against")
	cmd.Flags().Bool("strict", false, "Exit with an error when the baseline differs")
	return cmd
}

// compareBaseline prints the lines that changed against the baseline data
// file.
func compareBaseline(cmd *cobra.Command, path, current string) error {
	old, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading baseline: %w", err)
	}

	c := report.CompareDataFiles(string(old), current)
	errOut := cmd.ErrOrStderr()
	if !c.Changed() {
		fmt.Fprintf(errOut, "%s no change against %s\n", styles.OK, path)
		return nil
	}
	fmt.Fprintf(errOut, "%s changed against %s\n", styles.Fail, path)
	if err := c.Write(errOut); err != nil {
		return err
	}
	if strict, _ := cmd.Flags().GetBool("strict"); strict {
		return fmt.Errorf("%d data lines changed against %s", len(c.Added)+len(c.Removed), path)
	}
	return nil
}

// writeTo runs write against path, or against stdout when path is empty.
func writeTo(stdout io.Writer, path string, write func(io.Writer) error) error {
	if path == "" {
		return write(stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
