package warehouse

import (
	"strings"

	"github.com/sousselabs/storelake/pkg/source"
)

// BuildProductDim derives dim_product from raw product records. No filtering;
// dense surrogate ids in iteration order. Brand and category fall back to
// catalog defaults, descriptions are truncated to bound storage.
func BuildProductDim(products []source.ProductRecord) []ProductRow {
	rows := make([]ProductRow, 0, len(products))
	for i, p := range products {
		brand := strings.TrimSpace(p.Brand)
		if brand == "" {
			brand = defaultBrand
		} else {
			brand = titleCase(brand)
		}
		category := strings.TrimSpace(p.Category)
		if category == "" {
			category = defaultCategory
		} else {
			category = titleCase(category)
		}
		rows = append(rows, ProductRow{
			ProductID:     i + 1,
			MongoID:       p.ID.Hex(),
			ProductName:   strings.TrimSpace(p.Name),
			Brand:         brand,
			Category:      category,
			CurrentPrice:  p.Price,
			Description:   truncate(p.Description, maxDescriptionLen),
			StockQuantity: p.CountInStock,
		})
	}
	return rows
}
