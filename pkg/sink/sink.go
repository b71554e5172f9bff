package sink

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Table is an ordered set of rows with named, typed columns, ready to be
// persisted. Columns use the "name:type" form; the type portion is the
// semantic SQL type and may carry column constraints.
type Table struct {
	Name    string
	Columns []string
	Len     int
	Row     func(i int) []any
}

// Sink persists a finished table set with full-refresh semantics: destination
// tables are dropped and recreated on every run, strictly after the transform
// has produced its output. There is no partial-commit recovery; a failed load
// means the run failed and is safe to repeat from scratch.
type Sink interface {
	CreateOrReplace(ctx context.Context, tables []Table) error
}

// columnNames extracts column names from a slice of "name:type" definitions.
func columnNames(colDefs []string) ([]string, error) {
	names := make([]string, 0, len(colDefs))
	for _, colDef := range colDefs {
		parts := strings.SplitN(colDef, ":", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid column definition %q: expected format 'name:type'", colDef)
		}
		names = append(names, strings.TrimSpace(parts[0]))
	}
	return names, nil
}

// columnDefs renders "name:type" definitions as SQL column clauses.
func columnDefs(colDefs []string) ([]string, error) {
	defs := make([]string, 0, len(colDefs))
	for _, colDef := range colDefs {
		parts := strings.SplitN(colDef, ":", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid column definition %q: expected format 'name:type'", colDef)
		}
		defs = append(defs, fmt.Sprintf("%s %s", strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])))
	}
	return defs, nil
}

// formatValue renders a cell value for CSV encodings. Dates are emitted
// date-only; floats keep their shortest exact representation.
func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case time.Time:
		return val.Format("2006-01-02")
	default:
		return fmt.Sprintf("%v", val)
	}
}
