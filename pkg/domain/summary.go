package domain

import "time"

// Summary describes the currently loaded dataset.
type Summary struct {
	Title  string    `json:"title"`
	Metric Metric    `json:"metric"`
	Rows   int       `json:"rows"`
	Areas  int       `json:"areas"`
	First  time.Time `json:"first"`
	Last   time.Time `json:"last"`
}
