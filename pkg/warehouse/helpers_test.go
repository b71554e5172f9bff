package warehouse

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sousselabs/storelake/pkg/source"
)

func oid(n byte) primitive.ObjectID {
	var id primitive.ObjectID
	id[11] = n
	return id
}

func day(yyyy int, mm time.Month, dd int) time.Time {
	return time.Date(yyyy, mm, dd, 0, 0, 0, 0, time.UTC)
}

func user(n byte, name, email string, admin bool, createdAt time.Time) source.UserRecord {
	return source.UserRecord{
		ID:        oid(n),
		Name:      name,
		Email:     email,
		IsAdmin:   admin,
		CreatedAt: createdAt,
	}
}

func product(n byte, name string) source.ProductRecord {
	return source.ProductRecord{
		ID:           oid(n),
		Name:         name,
		Brand:        "Apple",
		Category:     "Smartphones",
		Price:        999,
		Description:  "desc",
		CountInStock: 10,
	}
}

func order(n, userN byte, createdAt time.Time, addr *source.ShippingAddress, items ...source.OrderItem) source.OrderRecord {
	return source.OrderRecord{
		ID:              oid(n),
		User:            oid(userN),
		CreatedAt:       createdAt,
		ShippingAddress: addr,
		OrderItems:      items,
		PaymentMethod:   "Credit Card",
		Status:          "Pending",
	}
}

func item(productN byte, quantity int, price float64) source.OrderItem {
	return source.OrderItem{
		Product:  oid(productN),
		Quantity: quantity,
		Price:    price,
	}
}
