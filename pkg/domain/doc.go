// Package domain holds the core data types shared by every adapter:
// observations, the metric selector, query results (series, heatmaps,
// summaries) and the sentinel errors of the query API.
//
// Types here are plain values with no behavior beyond derivation; all
// querying lives in the dataset index.
package domain
