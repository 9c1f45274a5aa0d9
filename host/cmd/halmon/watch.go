package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print the raw serial stream line by line.",
	RunE: func(cmd *cobra.Command, args []string) error {
		lines, port, err := openLines()
		if err != nil {
			return err
		}
		defer port.Close()

		for lines.Scan() {
			fmt.Println(lines.Text())
		}
		return lines.Err()
	},
}
