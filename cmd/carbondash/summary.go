package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/carbondash/carbondash"
	"github.com/carbondash/carbondash/internal/presentation/tui"
	"github.com/carbondash/carbondash/pkg/domain"
	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary [dir]",
	Short: "Print a dataset report to the terminal",
	Long: `Loads the dataset and prints a rendered report: observation counts,
date range, and per-area extremes for the configured metric.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runSummary(cmd, args); err != nil {
			fmt.Printf("Summary failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
	summaryCmd.Flags().Bool("no-banner", false, "Skip the startup banner")
}

func runSummary(cmd *cobra.Command, args []string) error {
	dir, _ := cmd.Flags().GetString("data")
	if len(args) > 0 {
		dir = args[0]
	}

	svc, err := carbondash.New(dir)
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}
	defer svc.Close()

	series, err := svc.Series(context.Background(), svc.Areas())
	if err != nil && !errors.Is(err, domain.ErrNoData) {
		return err
	}

	if noBanner, _ := cmd.Flags().GetBool("no-banner"); !noBanner {
		tui.PrintBanner()
	}

	report := tui.BuildReport(svc.Summary(), series)

	render := tui.NewRenderer()
	out, err := render(report)
	if err != nil {
		// Fall back to raw markdown if the renderer chokes.
		out = report
	}
	fmt.Print(out)

	return nil
}
