package domain

import "time"

// SeriesPoint is a single chart point.
type SeriesPoint struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// Series is the chronological trace for a single area. Min and Max hold
// the extreme points of the trace so renderers can mark them without
// rescanning; on a single-point series both refer to that point.
type Series struct {
	Area   string        `json:"area"`
	Points []SeriesPoint `json:"points"`
	Min    *SeriesPoint  `json:"min,omitempty"`
	Max    *SeriesPoint  `json:"max,omitempty"`
}
