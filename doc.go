/*
Package carbondash serves power-sector CO2-intensity analytics from a
long-format CSV dataset.

The Service facade loads a dataset directory (CSV plus optional YAML
manifest) into an immutable in-memory index and answers the three queries
the dashboard is built on: per-area time series with extreme-point
markers, an area-by-year mean heatmap, and a dataset summary. Computed
results can be cached through a pluggable QueryCache (in-memory or
Redis).

Basic usage:

	svc, err := carbondash.New("./data")
	if err != nil {
		log.Fatal(err)
	}
	defer svc.Close()

	series, err := svc.Series(ctx, []string{"Germany", "Portugal"})

The cmd/carbondash binary wraps the same Service with an HTTP server
(JSON API plus an embedded browser dashboard), an MCP server, and a
terminal summary view.
*/
package carbondash
