package dataset

import "fmt"

// RowError represents a single malformed row in the input CSV.
type RowError struct {
	Line   int    // 1-based line number in the file
	Column string // offending column name, empty for row-level problems
	Reason string // human-readable reason for failure
}

func (e *RowError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
	}
	return fmt.Sprintf("line %d, column %q: %s", e.Line, e.Column, e.Reason)
}

// AggregateError represents multiple row failures from a strict parse.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := fmt.Sprintf("%d row errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		msg += fmt.Sprintf("  %d. %s\n", i+1, err.Error())
	}
	return msg
}

// RowErrors returns all row errors if err is an AggregateError.
// Otherwise returns nil.
func RowErrors(err error) []error {
	if aggr, ok := err.(*AggregateError); ok {
		return aggr.Errors
	}
	return nil
}
