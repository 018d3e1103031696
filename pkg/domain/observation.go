package domain

import "time"

// Observation is a single row of the long-format dataset: one measured
// value for an area at a point in time, labelled by category and variable.
type Observation struct {
	Date     time.Time `json:"date"`
	Area     string    `json:"area"`
	Category string    `json:"category"`
	Variable string    `json:"variable"`
	Value    float64   `json:"value"`
}

// Year returns the calendar year of the observation.
func (o Observation) Year() int {
	return o.Date.Year()
}

// Month returns the calendar month of the observation (1-12).
func (o Observation) Month() int {
	return int(o.Date.Month())
}
