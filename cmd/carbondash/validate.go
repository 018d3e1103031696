package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/carbondash/carbondash/internal/adapters/file"
	"github.com/carbondash/carbondash/internal/dataset"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [dir]",
	Short: "Check the dataset for malformed rows",
	Long: `Parses the dataset in strict mode and reports every malformed row:
missing columns, unparseable dates, and non-numeric values.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runValidate(cmd, args); err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Dataset is valid! ✅")
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	dir, _ := cmd.Flags().GetString("data")
	if len(args) > 0 {
		dir = args[0]
	}

	loader := file.NewLoader(dir)
	manifest, err := loader.Manifest()
	if err != nil {
		return fmt.Errorf("failed to read manifest: %w", err)
	}

	f, err := os.Open(filepath.Join(dir, manifest.File))
	if err != nil {
		return err
	}
	defer f.Close()

	// Always strict here: a validation run should surface every bad row,
	// regardless of what the manifest tolerates at serve time.
	parser := dataset.NewParser(dataset.WithStrict(true))
	observations, err := parser.Parse(f)
	if err != nil {
		var agg *dataset.AggregateError
		if errors.As(err, &agg) {
			for _, rowErr := range dataset.RowErrors(err) {
				fmt.Printf("  - %v\n", rowErr)
			}
			return fmt.Errorf("%d malformed row(s)", len(dataset.RowErrors(err)))
		}
		return err
	}

	metric := manifest.ResolvedMetric()
	index := dataset.Build(observations, metric, manifest.Title)
	summary := index.Summary()
	fmt.Printf("Parsed %d observations across %d areas (%d matching %q).\n",
		len(observations), len(index.Areas()), summary.Rows, metric.Variable)

	return nil
}
