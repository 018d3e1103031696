package domain

// Heatmap is a dense area-by-year grid of yearly mean values.
// Values[i][j] is the mean for Areas[i] in Years[j]; cells with no
// observations hold zero.
type Heatmap struct {
	Areas  []string    `json:"areas"`
	Years  []int       `json:"years"`
	Values [][]float64 `json:"values"`
}
