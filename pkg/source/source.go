package source

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Source supplies the raw operational records the transform consumes.
// Implementations must return records in a stable iteration order; surrogate
// key assignment downstream depends on it.
type Source interface {
	Users(ctx context.Context) ([]UserRecord, error)
	Products(ctx context.Context) ([]ProductRecord, error)
	Orders(ctx context.Context) ([]OrderRecord, error)
}

// UserRecord is a raw user document. Administrators are excluded from the
// customer dimension downstream.
type UserRecord struct {
	ID        primitive.ObjectID `bson:"_id"`
	Name      string             `bson:"name"`
	Email     string             `bson:"email"`
	IsAdmin   bool               `bson:"isAdmin"`
	CreatedAt time.Time          `bson:"createdAt"`
}

// ProductRecord is a raw product document.
type ProductRecord struct {
	ID           primitive.ObjectID `bson:"_id"`
	Name         string             `bson:"name"`
	Brand        string             `bson:"brand"`
	Category     string             `bson:"category"`
	Price        float64            `bson:"price"`
	Description  string             `bson:"description"`
	CountInStock int                `bson:"countInStock"`
}

// ShippingAddress is the optional shipping address embedded in an order.
type ShippingAddress struct {
	Address     string `bson:"address"`
	City        string `bson:"city"`
	Governorate string `bson:"governorate"`
	PostalCode  string `bson:"postalCode"`
	Country     string `bson:"country"`
}

// OrderItem is a single line item within an order.
type OrderItem struct {
	Product  primitive.ObjectID `bson:"product"`
	Name     string             `bson:"name"`
	Price    float64            `bson:"price"`
	Quantity int                `bson:"quantity"`
}

// OrderRecord is a raw order document. Optional fields decode to zero values;
// the transform substitutes sentinels rather than rejecting the record.
type OrderRecord struct {
	ID              primitive.ObjectID `bson:"_id"`
	User            primitive.ObjectID `bson:"user"`
	OrderItems      []OrderItem        `bson:"orderItems"`
	ShippingAddress *ShippingAddress   `bson:"shippingAddress"`
	PaymentMethod   string             `bson:"paymentMethod"`
	TaxPrice        float64            `bson:"taxPrice"`
	ShippingPrice   float64            `bson:"shippingPrice"`
	TotalPrice      float64            `bson:"totalPrice"`
	IsPaid          bool               `bson:"isPaid"`
	IsDelivered     bool               `bson:"isDelivered"`
	Status          string             `bson:"status"`
	CreatedAt       time.Time          `bson:"createdAt"`
}
