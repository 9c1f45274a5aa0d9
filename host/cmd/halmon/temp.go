package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"stm32go/host/monitor"
)

var tempCmd = &cobra.Command{
	Use:   "temp",
	Short: "Decode the temperature example's output stream.",
	Long: "temp reads the adctemp example's line protocol, picks up the " +
		"factory calibration words, and prints each raw sample converted to " +
		"degrees Celsius on the host side.",
	RunE: func(cmd *cobra.Command, args []string) error {
		lines, port, err := openLines()
		if err != nil {
			return err
		}
		defer port.Close()

		var (
			m     monitor.Monitor
			stats monitor.Stats
		)
		defer func() {
			if stats.Count() > 0 {
				fmt.Printf("%d samples  min %.2f C  max %.2f C  mean %.2f C\n",
					stats.Count(), stats.Min(), stats.Max(), stats.Mean())
			}
		}()
		for lines.Scan() {
			ev, ok := m.Parse(lines.Text())
			if !ok {
				continue
			}
			switch ev.Kind {
			case monitor.KindCal30:
				fmt.Printf("cal 30C = %d\n", ev.Value)
			case monitor.KindCal110:
				fmt.Printf("cal 110C = %d\n", ev.Value)
			case monitor.KindRaw:
				if c, err := m.Convert(ev.Value); err == nil {
					stats.Add(c)
					fmt.Printf("raw %4d  %6.2f C\n", ev.Value, c)
				} else {
					fmt.Printf("raw %4d  (waiting for calibration)\n", ev.Value)
				}
			case monitor.KindError:
				fmt.Fprintf(os.Stderr, "board error: %s\n", ev.Op)
			}
		}
		return lines.Err()
	},
}
