package warehouse

import (
	"github.com/sousselabs/storelake/pkg/sink"
)

// SinkTables renders the table set as sink tables in load order: dimensions
// first, then the fact table, so referential consumers never observe a fact
// without its dimensions.
func (ts *TableSet) SinkTables() []sink.Table {
	return []sink.Table{
		{
			Name: "dim_customer",
			Columns: []string{
				"customer_id:INTEGER PRIMARY KEY",
				"mongo_id:VARCHAR(50)",
				"customer_name:VARCHAR(100)",
				"email:VARCHAR(100)",
				"registration_date:DATE",
				"is_active:BOOLEAN",
			},
			Len: len(ts.Customers),
			Row: func(i int) []any {
				c := ts.Customers[i]
				return []any{c.CustomerID, c.MongoID, c.CustomerName, c.Email, c.RegistrationDate, c.IsActive}
			},
		},
		{
			Name: "dim_product",
			Columns: []string{
				"product_id:INTEGER PRIMARY KEY",
				"mongo_id:VARCHAR(50)",
				"product_name:VARCHAR(200)",
				"brand:VARCHAR(50)",
				"category:VARCHAR(50)",
				"current_price:DECIMAL(10,2)",
				"description:TEXT",
				"stock_quantity:INTEGER",
			},
			Len: len(ts.Products),
			Row: func(i int) []any {
				p := ts.Products[i]
				return []any{p.ProductID, p.MongoID, p.ProductName, p.Brand, p.Category, p.CurrentPrice, p.Description, p.StockQuantity}
			},
		},
		{
			Name: "dim_time",
			Columns: []string{
				"time_id:INTEGER PRIMARY KEY",
				"full_date:DATE",
				"day:INTEGER",
				"month:INTEGER",
				"month_name:VARCHAR(20)",
				"quarter:INTEGER",
				"year:INTEGER",
				"day_of_week:INTEGER",
				"day_name:VARCHAR(20)",
				"is_weekend:BOOLEAN",
				"week_of_year:INTEGER",
			},
			Len: len(ts.Times),
			Row: func(i int) []any {
				t := ts.Times[i]
				return []any{t.TimeID, t.FullDate, t.Day, t.Month, t.MonthName, t.Quarter, t.Year, t.DayOfWeek, t.DayName, t.IsWeekend, t.WeekOfYear}
			},
		},
		{
			Name: "dim_location",
			Columns: []string{
				"location_id:INTEGER PRIMARY KEY",
				"city:VARCHAR(100)",
				"governorate:VARCHAR(100)",
				"postal_code:VARCHAR(10)",
				"country:VARCHAR(50)",
			},
			Len: len(ts.Locations),
			Row: func(i int) []any {
				l := ts.Locations[i]
				return []any{l.LocationID, l.City, l.Governorate, l.PostalCode, l.Country}
			},
		},
		{
			Name: "fact_sales",
			Columns: []string{
				"sale_id:INTEGER PRIMARY KEY",
				"time_id:INTEGER",
				"product_id:INTEGER",
				"customer_id:INTEGER",
				"location_id:INTEGER",
				"order_mongo_id:VARCHAR(50)",
				"quantity:INTEGER",
				"unit_price:DECIMAL(10,2)",
				"total_amount:DECIMAL(10,2)",
				"tax_amount:DECIMAL(10,2)",
				"shipping_amount:DECIMAL(10,2)",
				"payment_method:VARCHAR(50)",
				"order_status:VARCHAR(50)",
				"is_paid:BOOLEAN",
				"is_delivered:BOOLEAN",
			},
			Len: len(ts.Sales),
			Row: func(i int) []any {
				f := ts.Sales[i]
				return []any{f.SaleID, f.TimeID, f.ProductID, f.CustomerID, f.LocationID, f.OrderMongoID, f.Quantity, f.UnitPrice, f.TotalAmount, f.TaxAmount, f.ShippingAmount, f.PaymentMethod, f.OrderStatus, f.IsPaid, f.IsDelivered}
			},
		},
	}
}
