package warehouse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sousselabs/storelake/pkg/source"
)

func TestBuildCustomerDim(t *testing.T) {
	t.Parallel()

	t.Run("excludes_admins_and_assigns_dense_ids", func(t *testing.T) {
		t.Parallel()

		users := []source.UserRecord{
			user(1, "Admin Principal", "admin@store.tn", true, day(2024, 1, 1)),
			user(2, "ahmed ben ali", "Ahmed.BenAli@Gmail.com ", false, day(2024, 2, 10)),
			user(3, "Fatma Trabelsi", "fatma@gmail.com", false, day(2024, 3, 5)),
			user(4, "Second Admin", "admin2@store.tn", true, day(2024, 1, 2)),
			user(5, "Youssef Hammami", "youssef@yahoo.fr", false, day(2024, 4, 1)),
		}

		rows := BuildCustomerDim(users)
		require.Len(t, rows, 3)
		for i, r := range rows {
			require.Equal(t, i+1, r.CustomerID)
			require.True(t, r.IsActive)
		}
		require.Equal(t, oid(2).Hex(), rows[0].MongoID)
		require.Equal(t, oid(3).Hex(), rows[1].MongoID)
		require.Equal(t, oid(5).Hex(), rows[2].MongoID)
	})

	t.Run("normalizes_name_and_email", func(t *testing.T) {
		t.Parallel()

		rows := BuildCustomerDim([]source.UserRecord{
			user(1, "  ahmed ben ali ", "  Ahmed.BenAli@GMAIL.com ", false, day(2024, 2, 10)),
		})
		require.Len(t, rows, 1)
		require.Equal(t, "Ahmed Ben Ali", rows[0].CustomerName)
		require.Equal(t, "ahmed.benali@gmail.com", rows[0].Email)
	})

	t.Run("substitutes_sentinels_for_missing_fields", func(t *testing.T) {
		t.Parallel()

		rows := BuildCustomerDim([]source.UserRecord{
			user(1, "", "", false, day(2024, 2, 10)),
			user(2, "Someone", "not-an-email", false, day(2024, 2, 11)),
		})
		require.Len(t, rows, 2)
		require.Equal(t, "Unknown", rows[0].CustomerName)
		require.Equal(t, "unknown@email.com", rows[0].Email)
		require.Equal(t, "unknown@email.com", rows[1].Email)
	})

	t.Run("registration_date_is_date_only", func(t *testing.T) {
		t.Parallel()

		createdAt := time.Date(2024, 6, 15, 18, 42, 7, 0, time.UTC)
		rows := BuildCustomerDim([]source.UserRecord{
			user(1, "A", "a@b.com", false, createdAt),
		})
		require.Equal(t, day(2024, 6, 15), rows[0].RegistrationDate)
	})
}
