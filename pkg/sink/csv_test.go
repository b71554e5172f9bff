package sink

import (
	"encoding/csv"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCSVExporter(t *testing.T) {
	t.Parallel()

	t.Run("writes_one_file_per_table_with_header", func(t *testing.T) {
		t.Parallel()

		dir := filepath.Join(t.TempDir(), "dw_export")
		e := NewCSVExporter(slog.New(slog.NewTextHandler(io.Discard, nil)), dir)
		require.NoError(t, e.Export(testTables()))

		f, err := os.Open(filepath.Join(dir, "dim_customer.csv"))
		require.NoError(t, err)
		defer f.Close()

		records, err := csv.NewReader(f).ReadAll()
		require.NoError(t, err)
		require.Len(t, records, 3)
		require.Equal(t, []string{"customer_id", "customer_name", "registration_date", "is_active"}, records[0])
		require.Equal(t, []string{"1", "Ahmed Ben Ali", "2024-01-01", "true"}, records[1])

		require.FileExists(t, filepath.Join(dir, "fact_sales.csv"))
	})

	t.Run("empty_table_yields_header_only_file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		e := NewCSVExporter(slog.New(slog.NewTextHandler(io.Discard, nil)), dir)
		err := e.Export([]Table{{
			Name:    "dim_location",
			Columns: []string{"location_id:INTEGER PRIMARY KEY", "city:VARCHAR(100)"},
		}})
		require.NoError(t, err)

		f, err := os.Open(filepath.Join(dir, "dim_location.csv"))
		require.NoError(t, err)
		defer f.Close()

		records, err := csv.NewReader(f).ReadAll()
		require.NoError(t, err)
		require.Len(t, records, 1)
	})
}
