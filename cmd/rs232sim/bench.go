// Copyright 2025 kimchim00
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/kimchim00/rs232sim/bench"
)

var benchWork string

var benchCmd = &cobra.Command{
	Use:   "bench <suite.yaml>",
	Short: "Run a benchmark suite and write per-benchmark reports",
	Long: `Run every benchmark in a YAML suite against a fresh link. Each benchmark
gets its own directory under the work directory with the waveform dump
(trace.vcd), the per-signal transition counts (transitions.json) and its
result; summary.json at the top aggregates the suite.`,
	Args: cobra.ExactArgs(1),
	RunE: runBench,
}

func init() {
	benchCmd.Flags().StringVarP(&benchWork, "work", "w", "bench-out", "Work directory for reports")
	rootCmd.AddCommand(benchCmd)
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, err := bench.Load(args[0])
	if err != nil {
		return err
	}

	sum, err := bench.RunAll(cfg, benchWork)
	if err != nil {
		return err
	}

	for _, res := range sum.Results {
		ev := logger.Info()
		if !res.Pass {
			ev = logger.Error()
		}
		ev.Str("benchmark", res.Benchmark).
			Bool("pass", res.Pass).
			Bool("armed", res.Armed).
			Uint64("cycles", res.Cycles).
			Msg("benchmark finished")
	}
	logger.Info().
		Int("total", sum.Total).
		Int("passed", sum.Passed).
		Int("failed", sum.Failed).
		Str("work", benchWork).
		Msg("suite finished")

	if sum.Failed > 0 {
		return errors.Errorf("%d of %d benchmarks failed", sum.Failed, sum.Total)
	}
	return nil
}
