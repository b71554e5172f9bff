package sink

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
)

type PostgresConfig struct {
	Logger *slog.Logger
	URI    string
}

func (cfg *PostgresConfig) Validate() error {
	if cfg.Logger == nil {
		return errors.New("logger is required")
	}
	if cfg.URI == "" {
		return errors.New("postgres URI is required")
	}
	return nil
}

// PostgresSink loads tables into a PostgreSQL warehouse using the COPY
// protocol. Tables are dropped with CASCADE so the fact table never blocks a
// dimension rebuild.
type PostgresSink struct {
	log  *slog.Logger
	conn *pgx.Conn
}

func NewPostgresSink(ctx context.Context, cfg PostgresConfig) (*PostgresSink, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	conn, err := pgx.Connect(ctx, cfg.URI)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	return &PostgresSink{
		log:  cfg.Logger,
		conn: conn,
	}, nil
}

func (s *PostgresSink) Close(ctx context.Context) error {
	return s.conn.Close(ctx)
}

func (s *PostgresSink) CreateOrReplace(ctx context.Context, tables []Table) error {
	start := time.Now()
	for _, t := range tables {
		if err := s.loadTable(ctx, t); err != nil {
			return fmt.Errorf("failed to load table %s: %w", t.Name, err)
		}
	}
	s.log.Debug("warehouse load completed", "tables", len(tables), "duration", time.Since(start).String())
	return nil
}

func (s *PostgresSink) loadTable(ctx context.Context, t Table) error {
	defs, err := columnDefs(t.Columns)
	if err != nil {
		return err
	}
	names, err := columnNames(t.Columns)
	if err != nil {
		return err
	}

	if _, err := s.conn.Exec(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", t.Name)); err != nil {
		return fmt.Errorf("failed to drop table: %w", err)
	}
	createSQL := fmt.Sprintf("CREATE TABLE %s (\n\t%s\n)", t.Name, strings.Join(defs, ",\n\t"))
	if _, err := s.conn.Exec(ctx, createSQL); err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}

	if t.Len == 0 {
		return nil
	}

	copied, err := s.conn.CopyFrom(ctx, pgx.Identifier{t.Name}, names,
		pgx.CopyFromSlice(t.Len, func(i int) ([]any, error) {
			return t.Row(i), nil
		}))
	if err != nil {
		return fmt.Errorf("failed to COPY rows: %w", err)
	}
	if copied != int64(t.Len) {
		return fmt.Errorf("copied %d rows, expected %d", copied, t.Len)
	}

	s.log.Debug("loaded table", "table", t.Name, "rows", copied)
	return nil
}
