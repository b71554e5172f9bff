package warehouse

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"

	"github.com/sousselabs/storelake/pkg/source"
)

func TestBuildProductDim(t *testing.T) {
	t.Parallel()

	t.Run("assigns_dense_ids_in_iteration_order", func(t *testing.T) {
		t.Parallel()

		rows := BuildProductDim([]source.ProductRecord{
			product(1, "iPhone 15"),
			product(2, "MacBook Air"),
			product(3, "AirPods Pro"),
		})
		require.Len(t, rows, 3)
		for i, r := range rows {
			require.Equal(t, i+1, r.ProductID)
		}
		require.Equal(t, oid(2).Hex(), rows[1].MongoID)
	})

	t.Run("defaults_brand_and_category", func(t *testing.T) {
		t.Parallel()

		rows := BuildProductDim([]source.ProductRecord{
			{ID: oid(1), Name: "Mystery Gadget", Price: 49.5},
		})
		require.Len(t, rows, 1)
		require.Equal(t, "Apple", rows[0].Brand)
		require.Equal(t, "Other", rows[0].Category)
	})

	t.Run("title_cases_brand_and_category", func(t *testing.T) {
		t.Parallel()

		rows := BuildProductDim([]source.ProductRecord{
			{ID: oid(1), Name: "Case", Brand: "belkin", Category: "accessories"},
		})
		require.Equal(t, "Belkin", rows[0].Brand)
		require.Equal(t, "Accessories", rows[0].Category)
	})

	t.Run("truncates_long_descriptions", func(t *testing.T) {
		t.Parallel()

		long := strings.Repeat("x", 1200)
		rows := BuildProductDim([]source.ProductRecord{
			{ID: oid(1), Name: "P", Description: long},
		})
		require.Len(t, rows[0].Description, 500)

		short := "short description"
		rows = BuildProductDim([]source.ProductRecord{
			{ID: oid(2), Name: "Q", Description: short},
		})
		require.Equal(t, short, rows[0].Description)
	})

	t.Run("truncation_never_splits_multibyte_text", func(t *testing.T) {
		t.Parallel()

		accented := strings.Repeat("x", 499) + "étui de protection"
		rows := BuildProductDim([]source.ProductRecord{
			{ID: oid(1), Name: "P", Description: accented},
		})
		require.True(t, utf8.ValidString(rows[0].Description))
		require.Equal(t, 500, utf8.RuneCountInString(rows[0].Description))
		require.True(t, strings.HasSuffix(rows[0].Description, "é"))

		arabic := strings.Repeat("غ", 600)
		rows = BuildProductDim([]source.ProductRecord{
			{ID: oid(2), Name: "Q", Description: arabic},
		})
		require.True(t, utf8.ValidString(rows[0].Description))
		require.Equal(t, 500, utf8.RuneCountInString(rows[0].Description))
	})
}
