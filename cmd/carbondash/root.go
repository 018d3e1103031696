package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "carbondash",
	Short: "Carbondash serves power sector carbon intensity dashboards",
	Long: `Carbondash loads a monthly electricity dataset and exposes it as an
interactive dashboard, a JSON API, and an MCP server for AI agents.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("data", ".", "Directory containing the dataset (monthly.csv and optional dataset.yaml)")
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")
}
