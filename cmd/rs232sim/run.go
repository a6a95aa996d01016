// Copyright 2025 kimchim00
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/kimchim00/rs232sim/bench"
)

var runOut string

var runCmd = &cobra.Command{
	Use:   "run <byte>...",
	Short: "Transmit the given bytes and dump the waveform",
	Long: `Transmit each byte as one frame on a freshly reset link and write the
full waveform to a VCD file.

Bytes are decimal or 0x-prefixed hex, e.g.:

  rs232sim run 0xAA 0x55 0x00 0xFF 0x42

triggers the trojan on the fourth frame and shows the fifth frame leaving
the core zeroed with the done line stuck low.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVarP(&runOut, "out", "o", "trace.vcd", "VCD output file")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	data, err := parseBytes(args)
	if err != nil {
		return err
	}

	b := bench.Benchmark{Name: "run"}
	for _, d := range data {
		b.Frames = append(b.Frames, bench.Frame{Data: int(d)})
	}

	f, err := os.Create(runOut)
	if err != nil {
		return errors.Wrap(err, "create VCD file")
	}
	defer f.Close()

	res, _, err := bench.Run(b, f)
	if err != nil {
		return err
	}

	for _, fr := range res.Frames {
		ev := logger.Info()
		if fr.Wire != fr.Sent || !fr.DonePulsed {
			ev = logger.Warn()
		}
		ev.Int("frame", fr.Index).
			Str("sent", hexByte(fr.Sent)).
			Str("wire", hexByte(fr.Wire)).
			Bool("done", fr.DonePulsed).
			Msg("frame transmitted")
	}
	logger.Info().
		Uint64("cycles", res.Cycles).
		Bool("armed", res.Armed).
		Str("vcd", runOut).
		Msg("run complete")
	return nil
}

func hexByte(b byte) string {
	const digits = "0123456789ABCDEF"
	return string([]byte{'0', 'x', digits[b>>4], digits[b&0x0f]})
}
