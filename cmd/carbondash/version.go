package main

import (
	"fmt"
	"strings"

	"github.com/carbondash/carbondash"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of carbondash",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("carbondash version %s\n", strings.TrimSpace(carbondash.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
