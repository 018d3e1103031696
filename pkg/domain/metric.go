package domain

// Metric identifies which slice of the long-format dataset is served.
// Observations are matched on the (Category, Variable) pair; Label is the
// human-readable axis title used by the dashboard and reports.
type Metric struct {
	Label    string `json:"label" mapstructure:"label"`
	Category string `json:"category" mapstructure:"category"`
	Variable string `json:"variable" mapstructure:"variable"`
}

// DefaultMetric is the slice served when no manifest override is given:
// power sector CO2 intensity in gCO2e/kWh.
func DefaultMetric() Metric {
	return Metric{
		Label:    "CO₂ Intensity (gCO2e/kWh)",
		Category: "Power sector emissions",
		Variable: "CO2 intensity",
	}
}

// Matches reports whether the observation belongs to this metric.
func (m Metric) Matches(o Observation) bool {
	return o.Category == m.Category && o.Variable == m.Variable
}
