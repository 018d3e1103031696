package dataset

import (
	"strings"
	"testing"
	"time"

	"github.com/carbondash/carbondash/internal/testutils"
	"github.com/carbondash/carbondash/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildSampleIndex(t *testing.T) *Index {
	t.Helper()
	obs, err := NewParser().Parse(strings.NewReader(testutils.SampleCSV))
	require.NoError(t, err)
	return Build(obs, domain.DefaultMetric(), "Test Dataset")
}

func TestIndex_Areas(t *testing.T) {
	ix := buildSampleIndex(t)

	// Norway only has generation rows, but the selector still lists it.
	assert.Equal(t, []string{"Cyprus", "Germany", "Norway", "Portugal"}, ix.Areas())
}

func TestIndex_AreasReturnsCopy(t *testing.T) {
	ix := buildSampleIndex(t)

	areas := ix.Areas()
	areas[0] = "mutated"
	assert.Equal(t, "Cyprus", ix.Areas()[0])
}

func TestIndex_Series(t *testing.T) {
	ix := buildSampleIndex(t)

	series, err := ix.Series([]string{"Germany", "Portugal"})
	require.NoError(t, err)
	require.Len(t, series, 2)

	germany := series[0]
	assert.Equal(t, "Germany", germany.Area)
	require.Len(t, germany.Points, 4)

	// Chronological order.
	for i := 1; i < len(germany.Points); i++ {
		assert.True(t, germany.Points[i-1].Date.Before(germany.Points[i].Date))
	}

	// Extremes: min 300.0 (2021-01), max 350.5 (2020-01).
	require.NotNil(t, germany.Min)
	require.NotNil(t, germany.Max)
	assert.Equal(t, 300.0, germany.Min.Value)
	assert.Equal(t, 350.5, germany.Max.Value)
}

func TestIndex_SeriesSinglePointExtremes(t *testing.T) {
	obs := []domain.Observation{
		{Date: mustDate(t, "2020-01-01"), Area: "Malta", Category: "Power sector emissions", Variable: "CO2 intensity", Value: 450.0},
	}
	ix := Build(obs, domain.DefaultMetric(), "")

	series, err := ix.Series([]string{"Malta"})
	require.NoError(t, err)
	require.Len(t, series, 1)
	assert.Equal(t, series[0].Min, series[0].Max)
	assert.Equal(t, 450.0, series[0].Min.Value)
}

func TestIndex_SeriesDuplicateDatesKeepInputOrder(t *testing.T) {
	// Two rows share 2020-02-01; the stable sort must keep them in the
	// order they appeared in the file.
	obs := []domain.Observation{
		{Date: mustDate(t, "2020-03-01"), Area: "Malta", Category: "Power sector emissions", Variable: "CO2 intensity", Value: 430.0},
		{Date: mustDate(t, "2020-02-01"), Area: "Malta", Category: "Power sector emissions", Variable: "CO2 intensity", Value: 410.0},
		{Date: mustDate(t, "2020-02-01"), Area: "Malta", Category: "Power sector emissions", Variable: "CO2 intensity", Value: 420.0},
		{Date: mustDate(t, "2020-01-01"), Area: "Malta", Category: "Power sector emissions", Variable: "CO2 intensity", Value: 400.0},
	}
	ix := Build(obs, domain.DefaultMetric(), "")

	series, err := ix.Series([]string{"Malta"})
	require.NoError(t, err)
	require.Len(t, series[0].Points, 4)

	values := make([]float64, 0, 4)
	for _, p := range series[0].Points {
		values = append(values, p.Value)
	}
	assert.Equal(t, []float64{400.0, 410.0, 420.0, 430.0}, values)
}

func TestIndex_SeriesTiedExtremesFirstOccurrence(t *testing.T) {
	// Min 100 appears twice, max 300 appears twice; the earlier point
	// wins in both cases.
	obs := []domain.Observation{
		{Date: mustDate(t, "2020-01-01"), Area: "Malta", Category: "Power sector emissions", Variable: "CO2 intensity", Value: 200.0},
		{Date: mustDate(t, "2020-02-01"), Area: "Malta", Category: "Power sector emissions", Variable: "CO2 intensity", Value: 100.0},
		{Date: mustDate(t, "2020-03-01"), Area: "Malta", Category: "Power sector emissions", Variable: "CO2 intensity", Value: 300.0},
		{Date: mustDate(t, "2020-04-01"), Area: "Malta", Category: "Power sector emissions", Variable: "CO2 intensity", Value: 100.0},
		{Date: mustDate(t, "2020-05-01"), Area: "Malta", Category: "Power sector emissions", Variable: "CO2 intensity", Value: 300.0},
	}
	ix := Build(obs, domain.DefaultMetric(), "")

	series, err := ix.Series([]string{"Malta"})
	require.NoError(t, err)

	require.NotNil(t, series[0].Min)
	assert.Equal(t, 100.0, series[0].Min.Value)
	assert.Equal(t, mustDate(t, "2020-02-01"), series[0].Min.Date)

	require.NotNil(t, series[0].Max)
	assert.Equal(t, 300.0, series[0].Max.Value)
	assert.Equal(t, mustDate(t, "2020-03-01"), series[0].Max.Date)
}

func TestIndex_SeriesUnknownArea(t *testing.T) {
	ix := buildSampleIndex(t)

	_, err := ix.Series([]string{"Germany", "Atlantis"})
	assert.ErrorIs(t, err, domain.ErrAreaNotFound)
	assert.Contains(t, err.Error(), "Atlantis")
}

func TestIndex_SeriesEmptySelection(t *testing.T) {
	ix := buildSampleIndex(t)

	_, err := ix.Series(nil)
	assert.ErrorIs(t, err, domain.ErrNoData)
}

func TestIndex_SeriesMetricFiltered(t *testing.T) {
	ix := buildSampleIndex(t)

	// Norway exists in the dataset but has no CO2 intensity rows.
	_, err := ix.Series([]string{"Norway"})
	assert.ErrorIs(t, err, domain.ErrNoData)

	// Mixed selection omits the empty trace instead of failing.
	series, err := ix.Series([]string{"Norway", "Germany"})
	require.NoError(t, err)
	require.Len(t, series, 1)
	assert.Equal(t, "Germany", series[0].Area)
}

func TestIndex_Heatmap(t *testing.T) {
	ix := buildSampleIndex(t)

	hm, err := ix.Heatmap([]string{"Portugal", "Germany"})
	require.NoError(t, err)

	assert.Equal(t, []string{"Germany", "Portugal"}, hm.Areas)
	assert.Equal(t, []int{2020, 2021}, hm.Years)
	require.Len(t, hm.Values, 2)

	// Germany 2020: mean(350.5, 340.0) = 345.25; 2021: mean(300, 310) = 305.
	assert.InDelta(t, 345.25, hm.Values[0][0], 1e-9)
	assert.InDelta(t, 305.0, hm.Values[0][1], 1e-9)

	// Portugal has no 2021-02 row: 2021 mean is just 150.
	assert.InDelta(t, 190.0, hm.Values[1][0], 1e-9)
	assert.InDelta(t, 150.0, hm.Values[1][1], 1e-9)
}

func TestIndex_HeatmapZeroFill(t *testing.T) {
	obs := []domain.Observation{
		{Date: mustDate(t, "2020-01-01"), Area: "A", Category: "Power sector emissions", Variable: "CO2 intensity", Value: 10},
		{Date: mustDate(t, "2021-01-01"), Area: "B", Category: "Power sector emissions", Variable: "CO2 intensity", Value: 20},
	}
	ix := Build(obs, domain.DefaultMetric(), "")

	hm, err := ix.Heatmap([]string{"A", "B"})
	require.NoError(t, err)

	// A has no 2021 data, B has no 2020 data: both cells zero-filled.
	assert.Equal(t, 0.0, hm.Values[0][1])
	assert.Equal(t, 0.0, hm.Values[1][0])
}

func TestIndex_HeatmapNoData(t *testing.T) {
	ix := buildSampleIndex(t)

	_, err := ix.Heatmap([]string{"Norway"})
	assert.ErrorIs(t, err, domain.ErrNoData)

	_, err = ix.Heatmap(nil)
	assert.ErrorIs(t, err, domain.ErrNoData)
}

func TestIndex_Summary(t *testing.T) {
	ix := buildSampleIndex(t)

	sum := ix.Summary()
	assert.Equal(t, "Test Dataset", sum.Title)
	assert.Equal(t, 11, sum.Rows)
	assert.Equal(t, 4, sum.Areas)
	assert.Equal(t, domain.DefaultMetric(), sum.Metric)
	assert.Equal(t, 2020, sum.First.Year())
	assert.Equal(t, 2021, sum.Last.Year())
}

func TestIndex_EmptyDataset(t *testing.T) {
	ix := Build(nil, domain.DefaultMetric(), "")

	assert.Empty(t, ix.Areas())
	assert.Equal(t, 0, ix.Summary().Rows)

	_, err := ix.Series([]string{"Germany"})
	assert.ErrorIs(t, err, domain.ErrAreaNotFound)
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	parsed, err := parseDate(s)
	require.NoError(t, err)
	return parsed
}
