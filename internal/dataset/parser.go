// Package dataset turns long-format CSV into an immutable, queryable
// in-memory index. The expected shape is one observation per row with at
// least the columns Date, Area, Category, Variable and Value.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/carbondash/carbondash/pkg/domain"
)

// requiredColumns must all be present in the CSV header. Order does not
// matter; extra columns are ignored.
var requiredColumns = []string{"Date", "Area", "Category", "Variable", "Value"}

// dateFormats accepted for the Date column, tried in order.
var dateFormats = []string{"2006-01-02", "2006-01", "2006-01-02T15:04:05Z"}

// Parser converts raw CSV into observations.
type Parser struct {
	strict bool
}

// ParserOption configures a Parser.
type ParserOption func(*Parser)

// WithStrict makes the parser collect and report every malformed row
// instead of silently skipping it.
func WithStrict(strict bool) ParserOption {
	return func(p *Parser) {
		p.strict = strict
	}
}

// NewParser creates a parser. The default mode is lenient: malformed rows
// are dropped so a dashboard can still come up on a partially dirty file.
func NewParser(opts ...ParserOption) *Parser {
	p := &Parser{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse reads the whole input and returns the observations it contains.
// An empty input (no header, no rows) is a valid, empty dataset.
// In strict mode every malformed row is reported through an AggregateError;
// the successfully parsed rows are still returned alongside it.
func (p *Parser) Parse(r io.Reader) ([]domain.Observation, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	cols, err := mapColumns(header)
	if err != nil {
		return nil, err
	}

	var (
		obs     []domain.Observation
		rowErrs []error
		line    = 1 // header consumed
	)

	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			if p.strict {
				rowErrs = append(rowErrs, &RowError{Line: line, Reason: err.Error()})
			}
			continue
		}

		o, rerr := parseRecord(record, cols, line)
		if rerr != nil {
			if p.strict {
				rowErrs = append(rowErrs, rerr)
			}
			continue
		}
		obs = append(obs, o)
	}

	if len(rowErrs) > 0 {
		return obs, &AggregateError{Errors: rowErrs}
	}
	return obs, nil
}

// mapColumns resolves header names to field indices.
func mapColumns(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	for _, required := range requiredColumns {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("missing required column %q", required)
		}
	}
	return cols, nil
}

func parseRecord(record []string, cols map[string]int, line int) (domain.Observation, *RowError) {
	field := func(name string) string {
		idx := cols[name]
		if idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	date, err := parseDate(field("Date"))
	if err != nil {
		return domain.Observation{}, &RowError{Line: line, Column: "Date", Reason: err.Error()}
	}

	area := field("Area")
	if area == "" {
		return domain.Observation{}, &RowError{Line: line, Column: "Area", Reason: "empty area"}
	}

	value, err := strconv.ParseFloat(field("Value"), 64)
	if err != nil {
		return domain.Observation{}, &RowError{Line: line, Column: "Value", Reason: "not a number"}
	}

	return domain.Observation{
		Date:     date,
		Area:     area,
		Category: field("Category"),
		Variable: field("Variable"),
		Value:    value,
	}, nil
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}
