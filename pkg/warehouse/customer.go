package warehouse

import (
	"github.com/sousselabs/storelake/pkg/source"
)

// BuildCustomerDim derives dim_customer from raw user records. Administrators
// are excluded; surviving records get dense surrogate ids in iteration order.
// Absent fields degrade to sentinel values, never abort.
func BuildCustomerDim(users []source.UserRecord) []CustomerRow {
	rows := make([]CustomerRow, 0, len(users))
	nextID := 1
	for _, u := range users {
		if u.IsAdmin {
			continue
		}
		rows = append(rows, CustomerRow{
			CustomerID:       nextID,
			MongoID:          u.ID.Hex(),
			CustomerName:     normalizeName(u.Name),
			Email:            normalizeEmail(u.Email),
			RegistrationDate: dateOnly(u.CreatedAt),
			IsActive:         true,
		})
		nextID++
	}
	return rows
}
