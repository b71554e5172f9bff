package warehouse

import "time"

// CustomerRow is one row of dim_customer. CustomerID is a dense surrogate key
// starting at 1; MongoID is the source natural key kept for lineage.
type CustomerRow struct {
	CustomerID       int
	MongoID          string
	CustomerName     string
	Email            string
	RegistrationDate time.Time
	IsActive         bool
}

// ProductRow is one row of dim_product.
type ProductRow struct {
	ProductID     int
	MongoID       string
	ProductName   string
	Brand         string
	Category      string
	CurrentPrice  float64
	Description   string
	StockQuantity int
}

// TimeRow is one row of dim_time: one row per distinct calendar date observed
// in order creation timestamps. TimeID is monotonic with FullDate.
type TimeRow struct {
	TimeID     int
	FullDate   time.Time
	Day        int
	Month      int
	MonthName  string
	Quarter    int
	Year       int
	DayOfWeek  int
	DayName    string
	IsWeekend  bool
	WeekOfYear int
}

// LocationRow is one row of dim_location: one row per distinct
// (city, governorate) pair, fields captured from the first occurrence.
type LocationRow struct {
	LocationID  int
	City        string
	Governorate string
	PostalCode  string
	Country     string
}

// SaleRow is one row of fact_sales at order line-item grain.
type SaleRow struct {
	SaleID         int
	TimeID         int
	ProductID      int
	CustomerID     int
	LocationID     int
	OrderMongoID   string
	Quantity       int
	UnitPrice      float64
	TotalAmount    float64
	TaxAmount      float64
	ShippingAmount float64
	PaymentMethod  string
	OrderStatus    string
	IsPaid         bool
	IsDelivered    bool
}

// TableSet is the complete output of one transformation run.
type TableSet struct {
	Customers []CustomerRow
	Products  []ProductRow
	Times     []TimeRow
	Locations []LocationRow
	Sales     []SaleRow
}
