// halmon is the host-side companion tool for the firmware examples.
// It tails a board's serial output and decodes the temperature stream.
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
