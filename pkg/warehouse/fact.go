package warehouse

import (
	"github.com/sousselabs/storelake/pkg/source"
)

// SkipReason explains why an order or item produced no fact row.
type SkipReason string

const (
	SkipUnknownCustomer SkipReason = "unknown_customer"
	SkipUnknownProduct  SkipReason = "unknown_product"
	SkipNoItems         SkipReason = "no_items"
)

// OrderResult reports the per-order outcome of fact construction instead of
// silently dropping rows: either the order emitted fact rows, or it was
// skipped for a stated reason.
type OrderResult struct {
	OrderMongoID     string
	Skipped          bool
	SkipReason       SkipReason
	ItemsEmitted     int
	ItemsSkipped     int
	LocationFallback bool
}

// BuildSaleFacts produces fact_sales at line-item grain from raw orders and
// the frozen lookup index. Orders are visited in source order, items in their
// list order; sale ids are a dense sequence over emitted rows.
//
// Resolution rules:
//   - unresolved customer: the whole order is skipped;
//   - unresolved product: only that item is skipped;
//   - unresolved location key: the row falls back to the first location row
//     (inherited behavior, reported via OrderResult.LocationFallback);
//   - time always resolves because dim_time was built from these same dates.
//
// Order-level tax and shipping are apportioned evenly across the ORIGINAL
// item count, not the post-filter count, so reconciliation totals stay
// comparable when items are dropped for unresolved products.
func BuildSaleFacts(orders []source.OrderRecord, ix *LookupIndex) ([]SaleRow, []OrderResult) {
	var facts []SaleRow
	results := make([]OrderResult, 0, len(orders))
	saleID := 1

	for _, o := range orders {
		res := OrderResult{OrderMongoID: o.ID.Hex()}

		customerID, ok := ix.CustomerID(o.User.Hex())
		if !ok {
			res.Skipped = true
			res.SkipReason = SkipUnknownCustomer
			results = append(results, res)
			continue
		}

		if len(o.OrderItems) == 0 {
			res.Skipped = true
			res.SkipReason = SkipNoItems
			results = append(results, res)
			continue
		}

		timeID, _ := ix.TimeID(o.CreatedAt)

		locationID := ix.DefaultLocationID()
		if addr := o.ShippingAddress; addr != nil {
			if id, ok := ix.LocationID(addr.City, addr.Governorate); ok {
				locationID = id
			} else {
				res.LocationFallback = true
			}
		} else {
			res.LocationFallback = true
		}

		paymentMethod := o.PaymentMethod
		if paymentMethod == "" {
			paymentMethod = "Unknown"
		}
		status := o.Status
		if status == "" {
			status = "Unknown"
		}

		// Shares divide by the pre-filter item count.
		itemCount := len(o.OrderItems)
		taxShare := round2(o.TaxPrice / float64(itemCount))
		shippingShare := round2(o.ShippingPrice / float64(itemCount))

		for _, item := range o.OrderItems {
			productID, ok := ix.ProductID(item.Product.Hex())
			if !ok {
				res.ItemsSkipped++
				continue
			}
			quantity := item.Quantity
			if quantity <= 0 {
				quantity = 1
			}
			facts = append(facts, SaleRow{
				SaleID:         saleID,
				TimeID:         timeID,
				ProductID:      productID,
				CustomerID:     customerID,
				LocationID:     locationID,
				OrderMongoID:   o.ID.Hex(),
				Quantity:       quantity,
				UnitPrice:      item.Price,
				TotalAmount:    round2(item.Price * float64(quantity)),
				TaxAmount:      taxShare,
				ShippingAmount: shippingShare,
				PaymentMethod:  paymentMethod,
				OrderStatus:    status,
				IsPaid:         o.IsPaid,
				IsDelivered:    o.IsDelivered,
			})
			saleID++
			res.ItemsEmitted++
		}

		results = append(results, res)
	}

	return facts, results
}
