package sink

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func testTables() []Table {
	customers := [][]any{
		{1, "Ahmed Ben Ali", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), true},
		{2, "Leila Trabelsi", time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), true},
	}
	sales := [][]any{
		{1, 1, 2, 999.0, false},
	}
	return []Table{
		{
			Name: "dim_customer",
			Columns: []string{
				"customer_id:INTEGER PRIMARY KEY",
				"customer_name:VARCHAR(100)",
				"registration_date:DATE",
				"is_active:BOOLEAN",
			},
			Len: len(customers),
			Row: func(i int) []any { return customers[i] },
		},
		{
			Name: "fact_sales",
			Columns: []string{
				"sale_id:INTEGER PRIMARY KEY",
				"customer_id:INTEGER",
				"quantity:INTEGER",
				"unit_price:DECIMAL(10,2)",
				"is_paid:BOOLEAN",
			},
			Len: len(sales),
			Row: func(i int) []any { return sales[i] },
		},
	}
}

func testDuckSink(t *testing.T) *DuckSink {
	t.Helper()
	s, err := NewDuckSink(DuckConfig{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestDuckSinkCreateOrReplace(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("creates_tables_and_loads_rows", func(t *testing.T) {
		t.Parallel()

		s := testDuckSink(t)
		require.NoError(t, s.CreateOrReplace(ctx, testTables()))

		var count int
		require.NoError(t, s.DB().QueryRowContext(ctx, "SELECT COUNT(*) FROM dim_customer").Scan(&count))
		require.Equal(t, 2, count)

		var name string
		var registered time.Time
		var active bool
		err := s.DB().QueryRowContext(ctx,
			"SELECT customer_name, registration_date, is_active FROM dim_customer WHERE customer_id = 1").
			Scan(&name, &registered, &active)
		require.NoError(t, err)
		require.Equal(t, "Ahmed Ben Ali", name)
		require.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), registered.UTC())
		require.True(t, active)

		var price float64
		require.NoError(t, s.DB().QueryRowContext(ctx, "SELECT unit_price FROM fact_sales WHERE sale_id = 1").Scan(&price))
		require.Equal(t, 999.0, price)
	})

	t.Run("rerun_replaces_previous_contents", func(t *testing.T) {
		t.Parallel()

		s := testDuckSink(t)
		require.NoError(t, s.CreateOrReplace(ctx, testTables()))
		require.NoError(t, s.CreateOrReplace(ctx, testTables()))

		var count int
		require.NoError(t, s.DB().QueryRowContext(ctx, "SELECT COUNT(*) FROM dim_customer").Scan(&count))
		require.Equal(t, 2, count)
	})

	t.Run("empty_table_is_created_without_rows", func(t *testing.T) {
		t.Parallel()

		s := testDuckSink(t)
		err := s.CreateOrReplace(ctx, []Table{{
			Name:    "dim_location",
			Columns: []string{"location_id:INTEGER PRIMARY KEY", "city:VARCHAR(100)"},
		}})
		require.NoError(t, err)

		var count int
		require.NoError(t, s.DB().QueryRowContext(ctx, "SELECT COUNT(*) FROM dim_location").Scan(&count))
		require.Equal(t, 0, count)
	})

	t.Run("rejects_malformed_column_definition", func(t *testing.T) {
		t.Parallel()

		s := testDuckSink(t)
		err := s.CreateOrReplace(ctx, []Table{{
			Name:    "broken",
			Columns: []string{"no_type"},
		}})
		require.Error(t, err)
	})

	t.Run("writes_database_file_on_disk", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "warehouse", "storelake.duckdb")
		s, err := NewDuckSink(DuckConfig{
			Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
			Path:   path,
		})
		require.NoError(t, err)
		require.NoError(t, s.CreateOrReplace(ctx, testTables()))
		require.NoError(t, s.Close())
		require.FileExists(t, path)
	})
}

func TestDuckConfigValidate(t *testing.T) {
	t.Parallel()

	_, err := NewDuckSink(DuckConfig{})
	require.EqualError(t, err, "logger is required")
}
