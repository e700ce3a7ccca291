// Package main is the entry point for the gobu bot.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gobu",
	Short: "Pet and talent lookup bot",
	Long: `gobu answers pet and talent lookups and breeding calculations over a
static dataset, on Discord and over a read-only HTTP API.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(queryCmd)
}
