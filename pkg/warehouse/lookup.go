package warehouse

import "time"

const dateKeyLayout = "2006-01-02"

// LookupIndex maps natural keys to surrogate keys across all four
// dimensions. It is assembled once after the dimension builders finish and is
// read-only afterwards, so it is safe for concurrent readers.
type LookupIndex struct {
	customers map[string]int
	products  map[string]int
	times     map[string]int
	locations map[string]int

	defaultLocationID int
}

// NewLookupIndex builds the index from finished dimension tables. The default
// location id is the first dimension row (0 when the dimension is empty).
func NewLookupIndex(customers []CustomerRow, products []ProductRow, times []TimeRow, locations []LocationRow) *LookupIndex {
	ix := &LookupIndex{
		customers: make(map[string]int, len(customers)),
		products:  make(map[string]int, len(products)),
		times:     make(map[string]int, len(times)),
		locations: make(map[string]int, len(locations)),
	}
	for _, c := range customers {
		ix.customers[c.MongoID] = c.CustomerID
	}
	for _, p := range products {
		ix.products[p.MongoID] = p.ProductID
	}
	for _, t := range times {
		ix.times[t.FullDate.Format(dateKeyLayout)] = t.TimeID
	}
	for _, l := range locations {
		ix.locations[locationKey(l.City, l.Governorate)] = l.LocationID
	}
	if len(locations) > 0 {
		ix.defaultLocationID = locations[0].LocationID
	}
	return ix
}

func (ix *LookupIndex) CustomerID(naturalKey string) (int, bool) {
	id, ok := ix.customers[naturalKey]
	return id, ok
}

func (ix *LookupIndex) ProductID(naturalKey string) (int, bool) {
	id, ok := ix.products[naturalKey]
	return id, ok
}

func (ix *LookupIndex) TimeID(date time.Time) (int, bool) {
	id, ok := ix.times[dateOnly(date).Format(dateKeyLayout)]
	return id, ok
}

func (ix *LookupIndex) LocationID(city, governorate string) (int, bool) {
	id, ok := ix.locations[locationKey(city, governorate)]
	return id, ok
}

// DefaultLocationID is the fallback used when an order's composite key does
// not resolve. Reusing the first real row is inherited behavior kept for
// parity with existing consumers; an explicit "Unknown Location" sentinel row
// would be the correct replacement. The transformer seeds such a sentinel
// only when the dimension would otherwise be empty, so this never returns an
// id outside dim_location while orders exist. It returns 0 on an index built
// with no location rows at all.
func (ix *LookupIndex) DefaultLocationID() int {
	return ix.defaultLocationID
}
