package sink

import (
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
)

type DuckConfig struct {
	Logger *slog.Logger
	// Path is the DuckDB database file. Empty means in-memory, which is
	// useful for tests and dry runs.
	Path string
}

func (cfg *DuckConfig) Validate() error {
	if cfg.Logger == nil {
		return errors.New("logger is required")
	}
	return nil
}

// DuckSink loads tables into a DuckDB database file. Rows are staged into a
// temporary CSV and bulk-loaded with COPY, which is far cheaper than
// row-by-row inserts for a full refresh.
type DuckSink struct {
	log *slog.Logger
	db  *sql.DB
}

func NewDuckSink(cfg DuckConfig) (*DuckSink, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Path != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("duckdb", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return &DuckSink{
		log: cfg.Logger,
		db:  db,
	}, nil
}

func (s *DuckSink) Close() error {
	return s.db.Close()
}

// DB exposes the underlying handle for verification queries.
func (s *DuckSink) DB() *sql.DB {
	return s.db
}

func (s *DuckSink) CreateOrReplace(ctx context.Context, tables []Table) error {
	start := time.Now()
	for _, t := range tables {
		if err := s.loadTable(ctx, t); err != nil {
			return fmt.Errorf("failed to load table %s: %w", t.Name, err)
		}
	}
	s.log.Debug("warehouse load completed", "tables", len(tables), "duration", time.Since(start).String())
	return nil
}

func (s *DuckSink) loadTable(ctx context.Context, t Table) error {
	defs, err := columnDefs(t.Columns)
	if err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s", t.Name)); err != nil {
		return fmt.Errorf("failed to drop table: %w", err)
	}
	createSQL := fmt.Sprintf("CREATE TABLE %s (\n\t%s\n)", t.Name, strings.Join(defs, ",\n\t"))
	if _, err := s.db.ExecContext(ctx, createSQL); err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}

	if t.Len == 0 {
		return nil
	}

	tmpFile, err := os.CreateTemp("", fmt.Sprintf("%s_load_*.csv", t.Name))
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmpFile.Name())
	defer tmpFile.Close()

	w := csv.NewWriter(tmpFile)
	for i := range t.Len {
		select {
		case <-ctx.Done():
			return fmt.Errorf("context cancelled during CSV writing: %w", ctx.Err())
		default:
		}
		values := t.Row(i)
		record := make([]string, len(values))
		for j, v := range values {
			record[j] = formatValue(v)
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row %d: %w", i, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}

	copySQL := fmt.Sprintf("COPY %s FROM '%s' (FORMAT CSV, HEADER false)", t.Name, tmpFile.Name())
	if _, err := s.db.ExecContext(ctx, copySQL); err != nil {
		return fmt.Errorf("failed to COPY FROM CSV: %w", err)
	}

	s.log.Debug("loaded table", "table", t.Name, "rows", t.Len)
	return nil
}
