package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const version = "1.0.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  `Display the current version of the fxbot CLI.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("fxbot version %s\n", version)
		fmt.Println("A risk-managed FX order execution daemon")
		fmt.Println("https://github.com/rustyeddy/fxbot")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
