// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Command kernelmetrics measures the memory use and operation counts of
// generated integral kernels.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/petar-djukic/kernelmetrics/pkg/kernelmetrics"
)

const version = "0.1.0"

// envKeyReplacer maps flag names to env names: --no-provenance reads
// KERNELMETRICS_NO_PROVENANCE.
var envKeyReplacer = strings.NewReplacer("-", "_")

// app carries the state shared by all commands.
type app struct {
	v      *viper.Viper
	logger *zap.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New(), logger: zap.NewNop()}

	rootCmd := &cobra.Command{
		Use:   "kernelmetrics",
		Short: "Memory and operation counts of generated integral kernels",
		Long: `kernelmetrics scans the generated kernel sources of one job and reports,
per integral class, the memory allocated and the arithmetic operations of the
pair-level (K2) and quartet-level (K4) recurrence loops and of the
post-processing section.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}

	// Global flags.
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Config file (default .kernelmetrics.yaml)")
	pf.String("root", ".", "Corpus root holding energy, first_deriv and second_deriv")
	pf.String("job", "", "Job name, e.g. eri or esp")
	pf.Int("order", 0, "Derivative order (0, 1 or 2)")
	pf.Int("workers", 0, "Classes analyzed concurrently (0 = GOMAXPROCS)")
	pf.Bool("single-file", false, "Reject classes split into _vrr/_hrr files")
	pf.Bool("no-significance-check", false, "Do not tally omitted-integral annotations")
	pf.Bool("no-provenance", false, "Skip the corpus git revision lookup")
	pf.BoolP("verbose", "v", false, "Debug logging")

	// Bind flags to viper.
	for _, name := range []string{
		"config", "root", "job", "order", "workers",
		"single-file", "no-significance-check", "no-provenance", "verbose",
	} {
		_ = a.v.BindPFlag(name, pf.Lookup(name))
	}

	// Env vars: KERNELMETRICS_ROOT, KERNELMETRICS_JOB, etc.
	a.v.SetEnvPrefix("KERNELMETRICS")
	a.v.SetEnvKeyReplacer(envKeyReplacer)
	a.v.AutomaticEnv()

	rootCmd.AddCommand(newAnalyzeCmd(a))
	rootCmd.AddCommand(newMemoryCmd(a))
	rootCmd.AddCommand(newDerivCmd(a))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// setup reads the optional config file and builds the logger.
func (a *app) setup() error {
	if path := a.v.GetString("config"); path != "" {
		a.v.SetConfigFile(path)
		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config %s: %w", path, err)
		}
	} else {
		a.v.SetConfigName(".kernelmetrics")
		a.v.SetConfigType("yaml")
		a.v.AddConfigPath(".")
		_ = a.v.ReadInConfig() // Optional.
	}

	config := zap.NewProductionConfig()
	if a.v.GetBool("verbose") {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := config.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.logger = logger
	return nil
}

// config assembles the analyzer config from flags, env and config file.
func (a *app) config() (kernelmetrics.Config, error) {
	markers := kernelmetrics.DefaultMarkers()
	if err := a.v.UnmarshalKey("markers", &markers); err != nil {
		return kernelmetrics.Config{}, fmt.Errorf("reading markers: %w", err)
	}
	return kernelmetrics.Config{
		Root:                a.v.GetString("root"),
		Job:                 a.v.GetString("job"),
		Order:               a.v.GetInt("order"),
		Workers:             a.v.GetInt("workers"),
		Markers:             markers,
		SingleFile:          a.v.GetBool("single-file"),
		NoSignificanceCheck: a.v.GetBool("no-significance-check"),
		NoProvenance:        a.v.GetBool("no-provenance"),
		Logger:              a.logger,
	}, nil
}

// newVersionCmd creates the "version" command.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print kernelmetrics version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "kernelmetrics %s\n", version)
		},
	}
}
