package sink

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// CSVExporter serializes finished tables to one flat delimited file per
// table, for consumption by BI tools. It is a pure reader of the final table
// set with no transformation logic.
type CSVExporter struct {
	log *slog.Logger
	dir string
}

func NewCSVExporter(log *slog.Logger, dir string) *CSVExporter {
	return &CSVExporter{log: log, dir: dir}
}

func (e *CSVExporter) Export(tables []Table) error {
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}
	for _, t := range tables {
		if err := e.exportTable(t); err != nil {
			return fmt.Errorf("failed to export table %s: %w", t.Name, err)
		}
	}
	e.log.Info("exported tables to CSV", "dir", e.dir, "tables", len(tables))
	return nil
}

func (e *CSVExporter) exportTable(t Table) error {
	names, err := columnNames(t.Columns)
	if err != nil {
		return err
	}

	path := filepath.Join(e.dir, t.Name+".csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(names); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i := range t.Len {
		values := t.Row(i)
		record := make([]string, len(values))
		for j, v := range values {
			record[j] = formatValue(v)
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return f.Close()
}
