package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "fxbot",
	Short: "A risk-managed FX order execution daemon",
	Long: `Fxbot is an automated FX trading daemon written in Go.

It provides:
  - A webhook endpoint for externally decided trade signals
  - A periodic strategy loop (MA crossover and RSI reversal)
  - Risk-based position sizing with bracketed market orders
  - Trailing stop maintenance for open trades
  - Trade journaling to CSV or SQLite and Discord alerts

Complete documentation is available at https://github.com/rustyeddy/fxbot`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}
