package warehouse

import (
	"strings"

	"github.com/sousselabs/storelake/pkg/source"
)

const (
	unknownGovernorate = "Unknown"
	defaultPostalCode  = "0000"
	defaultCountry     = "Tunisia"
)

// locationKey builds the composite natural key for a (city, governorate)
// pair. Empty governorates collapse onto the Unknown bucket so the dimension
// never holds two rows for the same effective pair.
func locationKey(city, governorate string) string {
	city = strings.TrimSpace(city)
	governorate = strings.TrimSpace(governorate)
	if governorate == "" {
		governorate = unknownGovernorate
	}
	return city + "|" + governorate
}

// unknownLocationRow is the row the location fallback resolves to when no
// order carried a usable shipping address, so fact rows never reference a
// location id the dimension does not hold.
func unknownLocationRow() LocationRow {
	return LocationRow{
		LocationID:  1,
		City:        unknownName,
		Governorate: unknownGovernorate,
		PostalCode:  defaultPostalCode,
		Country:     defaultCountry,
	}
}

// BuildLocationDim derives dim_location from order shipping addresses: one
// row per distinct (city, governorate) pair in first-seen order. Orders with
// an absent address or empty city are skipped entirely. Postal code and
// country are captured from the first occurrence of a pair and never updated
// afterwards; that is a deliberate simplicity trade-off, not a bug.
func BuildLocationDim(orders []source.OrderRecord) []LocationRow {
	seen := make(map[string]struct{})
	var rows []LocationRow
	for _, o := range orders {
		addr := o.ShippingAddress
		if addr == nil {
			continue
		}
		city := strings.TrimSpace(addr.City)
		if city == "" {
			continue
		}
		key := locationKey(city, addr.Governorate)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}

		governorate := strings.TrimSpace(addr.Governorate)
		if governorate == "" {
			governorate = unknownGovernorate
		}
		postalCode := strings.TrimSpace(addr.PostalCode)
		if postalCode == "" {
			postalCode = defaultPostalCode
		}
		country := strings.TrimSpace(addr.Country)
		if country == "" {
			country = defaultCountry
		}
		rows = append(rows, LocationRow{
			LocationID:  len(rows) + 1,
			City:        city,
			Governorate: governorate,
			PostalCode:  postalCode,
			Country:     country,
		})
	}
	return rows
}
