package warehouse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLookupIndex(t *testing.T) {
	t.Parallel()

	customers := []CustomerRow{
		{CustomerID: 1, MongoID: oid(1).Hex()},
		{CustomerID: 2, MongoID: oid(2).Hex()},
	}
	products := []ProductRow{
		{ProductID: 1, MongoID: oid(10).Hex()},
	}
	times := []TimeRow{
		{TimeID: 1, FullDate: day(2024, 1, 2)},
		{TimeID: 2, FullDate: day(2024, 2, 1)},
	}
	locations := []LocationRow{
		{LocationID: 1, City: "Sousse", Governorate: "Sousse"},
		{LocationID: 2, City: "Tunis", Governorate: "Tunis"},
	}

	ix := NewLookupIndex(customers, products, times, locations)

	t.Run("resolves_natural_keys", func(t *testing.T) {
		t.Parallel()

		id, ok := ix.CustomerID(oid(2).Hex())
		require.True(t, ok)
		require.Equal(t, 2, id)

		id, ok = ix.ProductID(oid(10).Hex())
		require.True(t, ok)
		require.Equal(t, 1, id)

		_, ok = ix.CustomerID(oid(99).Hex())
		require.False(t, ok)
	})

	t.Run("resolves_time_by_calendar_date", func(t *testing.T) {
		t.Parallel()

		id, ok := ix.TimeID(time.Date(2024, 2, 1, 17, 45, 0, 0, time.UTC))
		require.True(t, ok)
		require.Equal(t, 2, id)

		_, ok = ix.TimeID(day(2023, 12, 31))
		require.False(t, ok)
	})

	t.Run("resolves_location_by_composite_key", func(t *testing.T) {
		t.Parallel()

		id, ok := ix.LocationID("Tunis", "Tunis")
		require.True(t, ok)
		require.Equal(t, 2, id)

		_, ok = ix.LocationID("Sfax", "Sfax")
		require.False(t, ok)
	})

	t.Run("default_location_is_first_row", func(t *testing.T) {
		t.Parallel()

		require.Equal(t, 1, ix.DefaultLocationID())

		empty := NewLookupIndex(nil, nil, nil, nil)
		require.Equal(t, 0, empty.DefaultLocationID())
	})
}
