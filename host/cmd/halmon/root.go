package main

import (
	"bufio"

	"github.com/spf13/cobra"

	"stm32go/host/serial"
)

var (
	flagDevice string
	flagBaud   int
)

var rootCmd = &cobra.Command{
	Use:   "halmon",
	Short: "Monitor a board running the firmware examples.",
	Long: "halmon tails a board's serial output. `halmon watch` prints the raw " +
		"stream; `halmon temp` decodes the temperature example's line protocol.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagDevice, "device", "d", "/dev/ttyACM0", "serial device path")
	rootCmd.PersistentFlags().IntVarP(&flagBaud, "baud", "b", 9600, "baud rate")
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(tempCmd)
}

// openLines opens the configured port and returns a line scanner plus the
// port for closing.
func openLines() (*bufio.Scanner, serial.Port, error) {
	cfg := serial.DefaultConfig(flagDevice)
	cfg.Baud = flagBaud
	cfg.ReadTimeout = 0
	port, err := serial.Open(cfg)
	if err != nil {
		return nil, nil, err
	}
	return bufio.NewScanner(port), port, nil
}
