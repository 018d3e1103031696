package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// SampleCSV is a small long-format dataset covering three areas over two
// years, with a couple of rows outside the default metric slice to make
// sure filtering is exercised.
const SampleCSV = `Date,Area,Category,Variable,Value
2020-01-01,Germany,Power sector emissions,CO2 intensity,350.5
2020-02-01,Germany,Power sector emissions,CO2 intensity,340.0
2021-01-01,Germany,Power sector emissions,CO2 intensity,300.0
2021-02-01,Germany,Power sector emissions,CO2 intensity,310.0
2020-01-01,Portugal,Power sector emissions,CO2 intensity,200.0
2020-02-01,Portugal,Power sector emissions,CO2 intensity,180.0
2021-01-01,Portugal,Power sector emissions,CO2 intensity,150.0
2020-01-01,Cyprus,Power sector emissions,CO2 intensity,600.0
2021-01-01,Cyprus,Power sector emissions,CO2 intensity,580.0
2020-01-01,Germany,Electricity generation,Total generation,47.5
2020-01-01,Norway,Electricity generation,Total generation,12.0
`

// WriteDataset creates a temporary dataset directory holding the given
// CSV as monthly.csv, plus an optional dataset.yaml manifest.
// It returns the directory path and fails the test immediately on error.
func WriteDataset(t *testing.T, csvContent, manifest string) string {
	t.Helper()

	dir := t.TempDir()

	err := os.WriteFile(filepath.Join(dir, "monthly.csv"), []byte(csvContent), 0644)
	require.NoError(t, err, "Failed to write dataset CSV")

	if manifest != "" {
		err := os.WriteFile(filepath.Join(dir, "dataset.yaml"), []byte(manifest), 0644)
		require.NoError(t, err, "Failed to write dataset manifest")
	}

	return dir
}
