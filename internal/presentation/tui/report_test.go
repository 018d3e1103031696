package tui

import (
	"testing"
	"time"

	"github.com/carbondash/carbondash/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestBuildReport(t *testing.T) {
	minPt := domain.SeriesPoint{Date: time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC), Value: 300}
	maxPt := domain.SeriesPoint{Date: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), Value: 350.5}

	report := BuildReport(
		domain.Summary{
			Title:  "European CO2 Intensity",
			Metric: domain.DefaultMetric(),
			Rows:   11,
			Areas:  4,
			First:  maxPt.Date,
			Last:   minPt.Date,
		},
		[]domain.Series{
			{Area: "Germany", Min: &minPt, Max: &maxPt},
		},
	)

	assert.Contains(t, report, "# European CO2 Intensity")
	assert.Contains(t, report, "Observations: 11")
	assert.Contains(t, report, "Range: 2020-01 to 2021-01")
	assert.Contains(t, report, "| Germany | 300.0 | 2021-01 | 350.5 | 2020-01 |")
}

func TestBuildReport_NoSeries(t *testing.T) {
	report := BuildReport(domain.Summary{Title: "Empty"}, nil)
	assert.Contains(t, report, "# Empty")
	assert.NotContains(t, report, "Extremes")
}
