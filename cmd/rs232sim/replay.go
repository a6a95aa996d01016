// Copyright 2025 kimchim00
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.bug.st/serial"
)

var (
	replayPort string
	replayBaud int
)

var replayCmd = &cobra.Command{
	Use:   "replay <byte>...",
	Short: "Send the byte sequence out a physical serial port",
	Long: `Send the given bytes out a real serial port (8N1), so a simulated stimulus
can be replayed against actual hardware carrying the same core.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().StringVarP(&replayPort, "port", "p", "", "Serial port device")
	replayCmd.Flags().IntVarP(&replayBaud, "baud", "b", 115200, "Baud rate")
	replayCmd.MarkFlagRequired("port")
	rootCmd.AddCommand(replayCmd)
}

func runReplay(cmd *cobra.Command, args []string) error {
	data, err := parseBytes(args)
	if err != nil {
		return err
	}

	mode := &serial.Mode{
		BaudRate: replayBaud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	port, err := serial.Open(replayPort, mode)
	if err != nil {
		return errors.Wrapf(err, "open serial port %s", replayPort)
	}
	defer port.Close()

	n, err := port.Write(data)
	if err != nil {
		return errors.Wrap(err, "write")
	}
	logger.Info().Int("bytes", n).Str("port", replayPort).Int("baud", replayBaud).Msg("replay sent")
	return nil
}
