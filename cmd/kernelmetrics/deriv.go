// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/petar-djukic/kernelmetrics/internal/deriv"
	"github.com/petar-djukic/kernelmetrics/internal/workarea"
)

// newDerivCmd creates the "deriv" command.
func newDerivCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deriv",
		Short: "Extract the derivative information of each class",
		Long: `Deriv collects the derivative information block of every derivative
main file into deriv_infor_<job>_<order>.txt.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			job := a.v.GetString("job")
			order := a.v.GetInt("order")

			dir, err := workarea.Resolve(a.v.GetString("root"), job, order)
			if err != nil {
				return err
			}
			records, err := deriv.Collect(dir, order)
			if err != nil {
				return err
			}

			outDir, _ := cmd.Flags().GetString("out-dir")
			path := filepath.Join(outDir, deriv.FileName(job, order))
			err = writeTo(cmd.OutOrStdout(), path, func(w io.Writer) error {
				return deriv.Write(w, records)
			})
			if err != nil {
				return err
			}

			a.logger.Info("derivative information written",
				zap.String("path", path),
				zap.Int("classes", len(records)),
			)
			fmt.Fprintf(cmd.ErrOrStderr(), "%s %d classes -> %s\n", styles.OK, len(records), path)
			return nil
		},
	}

	cmd.Flags().String("out-dir", ".", "Directory for the output file")
	return cmd
}
