package dataset

import (
	"strings"
	"testing"
	"time"

	"github.com/carbondash/carbondash/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Sample(t *testing.T) {
	p := NewParser()

	obs, err := p.Parse(strings.NewReader(testutils.SampleCSV))
	require.NoError(t, err)
	assert.Len(t, obs, 11)

	first := obs[0]
	assert.Equal(t, "Germany", first.Area)
	assert.Equal(t, "Power sector emissions", first.Category)
	assert.Equal(t, "CO2 intensity", first.Variable)
	assert.Equal(t, 350.5, first.Value)
	assert.Equal(t, 2020, first.Year())
	assert.Equal(t, 1, first.Month())
}

func TestParse_EmptyInput(t *testing.T) {
	p := NewParser()

	obs, err := p.Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, obs)
}

func TestParse_HeaderOnly(t *testing.T) {
	p := NewParser()

	obs, err := p.Parse(strings.NewReader("Date,Area,Category,Variable,Value\n"))
	require.NoError(t, err)
	assert.Empty(t, obs)
}

func TestParse_ColumnOrderIndependent(t *testing.T) {
	csv := "Value,Area,Date,Variable,Category\n42.0,Germany,2020-03-01,CO2 intensity,Power sector emissions\n"

	obs, err := NewParser().Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, obs, 1)
	assert.Equal(t, 42.0, obs[0].Value)
	assert.Equal(t, time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC), obs[0].Date)
}

func TestParse_MonthPrecisionDates(t *testing.T) {
	csv := "Date,Area,Category,Variable,Value\n2020-07,Germany,c,v,1.5\n"

	obs, err := NewParser().Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, obs, 1)
	assert.Equal(t, time.July, obs[0].Date.Month())
	assert.Equal(t, 1, obs[0].Date.Day())
}

func TestParse_MissingColumn(t *testing.T) {
	csv := "Date,Area,Value\n2020-01-01,Germany,1.0\n"

	_, err := NewParser().Parse(strings.NewReader(csv))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Category")
}

func TestParse_LenientSkipsBadRows(t *testing.T) {
	csv := "Date,Area,Category,Variable,Value\n" +
		"2020-01-01,Germany,c,v,1.0\n" +
		"not-a-date,Germany,c,v,2.0\n" +
		"2020-03-01,Germany,c,v,not-a-number\n" +
		"2020-04-01,Germany,c,v,4.0\n"

	obs, err := NewParser().Parse(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Len(t, obs, 2)
}

func TestParse_StrictReportsAllRows(t *testing.T) {
	csv := "Date,Area,Category,Variable,Value\n" +
		"not-a-date,Germany,c,v,2.0\n" +
		"2020-03-01,,c,v,3.0\n" +
		"2020-04-01,Germany,c,v,oops\n"

	obs, err := NewParser(WithStrict(true)).Parse(strings.NewReader(csv))
	require.Error(t, err)
	assert.Empty(t, obs)

	rowErrs := RowErrors(err)
	require.Len(t, rowErrs, 3)
	assert.Contains(t, rowErrs[0].Error(), "Date")
	assert.Contains(t, rowErrs[1].Error(), "Area")
	assert.Contains(t, rowErrs[2].Error(), "Value")
}

func TestParse_StrictKeepsGoodRows(t *testing.T) {
	csv := "Date,Area,Category,Variable,Value\n" +
		"2020-01-01,Germany,c,v,1.0\n" +
		"bogus,Germany,c,v,2.0\n"

	obs, err := NewParser(WithStrict(true)).Parse(strings.NewReader(csv))
	require.Error(t, err)
	assert.Len(t, obs, 1)
}
