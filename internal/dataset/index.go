package dataset

import (
	"fmt"
	"sort"
	"time"

	"github.com/carbondash/carbondash/pkg/domain"
)

// Index is the immutable in-memory view of one loaded dataset.
// Build it once, then query it from any number of goroutines.
type Index struct {
	metric domain.Metric
	title  string

	// byArea holds metric-filtered, date-sorted traces. areas is the
	// sorted distinct area list across the entire dataset, not just the
	// metric slice, so the selector can offer everything the file knows.
	byArea map[string][]domain.Observation
	areas  []string

	rows  int
	first time.Time
	last  time.Time
}

// Build constructs an index over the given observations for one metric.
func Build(obs []domain.Observation, metric domain.Metric, title string) *Index {
	ix := &Index{
		metric: metric,
		title:  title,
		byArea: make(map[string][]domain.Observation),
		rows:   len(obs),
	}

	seen := make(map[string]bool)
	for _, o := range obs {
		if !seen[o.Area] {
			seen[o.Area] = true
			ix.areas = append(ix.areas, o.Area)
		}
		if ix.first.IsZero() || o.Date.Before(ix.first) {
			ix.first = o.Date
		}
		if o.Date.After(ix.last) {
			ix.last = o.Date
		}
		if metric.Matches(o) {
			ix.byArea[o.Area] = append(ix.byArea[o.Area], o)
		}
	}
	sort.Strings(ix.areas)

	for area := range ix.byArea {
		trace := ix.byArea[area]
		sort.SliceStable(trace, func(i, j int) bool {
			return trace[i].Date.Before(trace[j].Date)
		})
	}

	return ix
}

// Metric returns the metric this index serves.
func (ix *Index) Metric() domain.Metric {
	return ix.metric
}

// Areas returns the sorted distinct areas of the dataset.
func (ix *Index) Areas() []string {
	out := make([]string, len(ix.areas))
	copy(out, ix.areas)
	return out
}

// Series returns the chronological trace per requested area, with the
// extreme points marked. Unknown areas fail with ErrAreaNotFound; a
// selection that matches no observations at all fails with ErrNoData.
// Areas that exist but carry no rows for the metric are omitted.
func (ix *Index) Series(areas []string) ([]domain.Series, error) {
	if len(areas) == 0 {
		return nil, domain.ErrNoData
	}

	var out []domain.Series
	for _, area := range areas {
		trace, err := ix.trace(area)
		if err != nil {
			return nil, err
		}
		if len(trace) == 0 {
			continue
		}

		s := domain.Series{
			Area:   area,
			Points: make([]domain.SeriesPoint, len(trace)),
		}
		for i, o := range trace {
			s.Points[i] = domain.SeriesPoint{Date: o.Date, Value: o.Value}
		}
		s.Min, s.Max = extremes(s.Points)
		out = append(out, s)
	}

	if len(out) == 0 {
		return nil, domain.ErrNoData
	}
	return out, nil
}

// Heatmap returns the area-by-year mean grid for the requested areas.
// Areas are sorted alphabetically, years ascending; cells without
// observations are zero-filled.
func (ix *Index) Heatmap(areas []string) (*domain.Heatmap, error) {
	if len(areas) == 0 {
		return nil, domain.ErrNoData
	}

	type cell struct {
		sum   float64
		count int
	}

	sums := make(map[string]map[int]*cell)
	yearSet := make(map[int]bool)

	for _, area := range areas {
		trace, err := ix.trace(area)
		if err != nil {
			return nil, err
		}
		for _, o := range trace {
			year := o.Year()
			yearSet[year] = true
			if sums[area] == nil {
				sums[area] = make(map[int]*cell)
			}
			c := sums[area][year]
			if c == nil {
				c = &cell{}
				sums[area][year] = c
			}
			c.sum += o.Value
			c.count++
		}
	}

	if len(sums) == 0 {
		return nil, domain.ErrNoData
	}

	hm := &domain.Heatmap{}
	for area := range sums {
		hm.Areas = append(hm.Areas, area)
	}
	sort.Strings(hm.Areas)
	for year := range yearSet {
		hm.Years = append(hm.Years, year)
	}
	sort.Ints(hm.Years)

	hm.Values = make([][]float64, len(hm.Areas))
	for i, area := range hm.Areas {
		hm.Values[i] = make([]float64, len(hm.Years))
		for j, year := range hm.Years {
			if c := sums[area][year]; c != nil {
				hm.Values[i][j] = c.sum / float64(c.count)
			}
		}
	}

	return hm, nil
}

// Summary describes the indexed dataset.
func (ix *Index) Summary() domain.Summary {
	return domain.Summary{
		Title:  ix.title,
		Metric: ix.metric,
		Rows:   ix.rows,
		Areas:  len(ix.areas),
		First:  ix.first,
		Last:   ix.last,
	}
}

// trace resolves an area to its metric-filtered observations.
func (ix *Index) trace(area string) ([]domain.Observation, error) {
	i := sort.SearchStrings(ix.areas, area)
	if i >= len(ix.areas) || ix.areas[i] != area {
		return nil, fmt.Errorf("%q: %w", area, domain.ErrAreaNotFound)
	}
	return ix.byArea[area], nil
}

// extremes returns the first-occurring minimum and maximum of the points.
func extremes(points []domain.SeriesPoint) (min, max *domain.SeriesPoint) {
	if len(points) == 0 {
		return nil, nil
	}
	minIdx, maxIdx := 0, 0
	for i, p := range points {
		if p.Value < points[minIdx].Value {
			minIdx = i
		}
		if p.Value > points[maxIdx].Value {
			maxIdx = i
		}
	}
	return &points[minIdx], &points[maxIdx]
}
