// Copyright 2025 kimchim00
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/kimchim00/rs232sim/detect"
	"github.com/kimchim00/rs232sim/vcd"
)

var (
	detPercentile float64
	detRatio      float64
	detAll        bool
)

var detectCmd = &cobra.Command{
	Use:   "detect <trace.vcd>",
	Short: "Flag trojan candidate signals in a waveform dump",
	Long: `Count per-signal transitions in a VCD dump and report the signals whose
switching activity marks them as likely trigger logic: registers that stay
silent, or nearly silent, while the rest of the design works.

By default only register-shaped signal names are analyzed; --all widens the
population to every signal in the dump.`,
	Args: cobra.ExactArgs(1),
	RunE: runDetect,
}

func init() {
	detectCmd.Flags().Float64Var(&detPercentile, "percentile", 0.10, "Bottom activity fraction considered suspicious")
	detectCmd.Flags().Float64Var(&detRatio, "ratio", 0.10, "Activity-to-mean ratio below which a signal is suspicious")
	detectCmd.Flags().BoolVar(&detAll, "all", false, "Analyze every signal, not just registers")
	rootCmd.AddCommand(detectCmd)
}

func runDetect(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return errors.Wrap(err, "open dump")
	}
	defer f.Close()

	d, err := vcd.Parse(f)
	if err != nil {
		return err
	}
	counts := d.Transitions()
	logger.Debug().Int("signals", len(counts)).Uint64("end", d.End).Msg("dump parsed")

	if !detAll {
		counts = detect.RegisterSignals(counts)
	}
	r := detect.Analyze(counts, detect.Params{Percentile: detPercentile, MinRatio: detRatio})

	fmt.Printf("signals analyzed: %d  (transitions min %d / max %d / mean %.1f)\n",
		r.Signals, r.Min, r.Max, r.Mean)
	if len(r.Candidates) == 0 {
		fmt.Println("no trojan candidates")
		return nil
	}
	for _, c := range r.Candidates {
		fmt.Printf("  %-24s %6d transitions  %.4fx mean\n", c.Signal, c.Transitions, c.Ratio)
	}
	logger.Warn().Int("candidates", len(r.Candidates)).Msg("suspicious signals found")
	return nil
}
