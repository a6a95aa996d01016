// Copyright 2025 kimchim00
// Licensed under the MIT license. See license text in the LICENSE file.

// Command rs232sim simulates the trojaned RS232 transmit core, captures
// waveform dumps and runs the activity-based trojan detection over them.
package main

import (
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	logger  zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "rs232sim",
	Short: "RS232 trojan benchmark simulator",
	Long: `rs232sim drives a cycle-accurate model of the RS232 transmit core carrying
a sequence-triggered hardware trojan.

The simulator replays scripted transmit requests against the core, dumps
every register and line as a VCD waveform, and scores the runs. The detect
command runs the low-activity analysis over a dump to point at trigger
registers, the same flow used against the hardware benchmarks.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := zerolog.InfoLevel
		if verbose {
			level = zerolog.DebugLevel
		}
		output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
		logger = zerolog.New(output).Level(level).With().Timestamp().Logger()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// parseBytes accepts decimal or 0x-prefixed byte values.
func parseBytes(args []string) ([]byte, error) {
	out := make([]byte, len(args))
	for i, a := range args {
		v, err := strconv.ParseUint(a, 0, 8)
		if err != nil {
			return nil, errors.Wrapf(err, "bad byte %q", a)
		}
		out[i] = byte(v)
	}
	return out, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
