package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/olekukonko/tablewriter"

	"github.com/sousselabs/storelake/pkg/warehouse"
)

const topN = 5

// Print renders a human-readable run report: table row counts, the outcome
// summary of fact construction, and a few headline analytics over the
// finished star schema. It only reads the table set.
func Print(w io.Writer, tables *warehouse.TableSet, summary warehouse.RunSummary) {
	fmt.Fprintln(w, "Warehouse tables:")
	counts := tablewriter.NewWriter(w)
	counts.SetHeader([]string{"Table", "Rows"})
	counts.SetAutoFormatHeaders(false)
	counts.Append([]string{"dim_customer", fmt.Sprintf("%d", len(tables.Customers))})
	counts.Append([]string{"dim_product", fmt.Sprintf("%d", len(tables.Products))})
	counts.Append([]string{"dim_time", fmt.Sprintf("%d", len(tables.Times))})
	counts.Append([]string{"dim_location", fmt.Sprintf("%d", len(tables.Locations))})
	counts.Append([]string{"fact_sales", fmt.Sprintf("%d", len(tables.Sales))})
	counts.Render()

	fmt.Fprintf(w, "\nOrders: %d processed, %d emitted, %d skipped (unknown customer), %d skipped (no items)\n",
		summary.OrdersTotal, summary.OrdersEmitted, summary.OrdersSkippedNoCustomer, summary.OrdersSkippedNoItems)
	fmt.Fprintf(w, "Items: %d emitted, %d skipped (unknown product)\n",
		summary.ItemsEmitted, summary.ItemsSkippedNoProduct)
	fmt.Fprintf(w, "Location fallbacks: %d\n", summary.LocationFallbacks)

	fmt.Fprintf(w, "\nTotal revenue (paid orders): %.2f\n", paidRevenue(tables))

	printTopCategories(w, tables)
	printTopProducts(w, tables)
}

func paidRevenue(tables *warehouse.TableSet) float64 {
	var revenue float64
	for _, f := range tables.Sales {
		if f.IsPaid {
			revenue += f.TotalAmount
		}
	}
	return revenue
}

func printTopCategories(w io.Writer, tables *warehouse.TableSet) {
	categoryByProduct := make(map[int]string, len(tables.Products))
	for _, p := range tables.Products {
		categoryByProduct[p.ProductID] = p.Category
	}
	revenue := make(map[string]float64)
	for _, f := range tables.Sales {
		if f.IsPaid {
			revenue[categoryByProduct[f.ProductID]] += f.TotalAmount
		}
	}

	type categoryRevenue struct {
		category string
		revenue  float64
	}
	ranked := make([]categoryRevenue, 0, len(revenue))
	for c, r := range revenue {
		ranked = append(ranked, categoryRevenue{c, r})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].revenue != ranked[j].revenue {
			return ranked[i].revenue > ranked[j].revenue
		}
		return ranked[i].category < ranked[j].category
	})
	if len(ranked) > topN {
		ranked = ranked[:topN]
	}

	fmt.Fprintln(w, "\nTop categories by revenue (paid orders):")
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Category", "Revenue"})
	table.SetAutoFormatHeaders(false)
	for _, r := range ranked {
		table.Append([]string{r.category, fmt.Sprintf("%.2f", r.revenue)})
	}
	table.Render()
}

func printTopProducts(w io.Writer, tables *warehouse.TableSet) {
	nameByProduct := make(map[int]string, len(tables.Products))
	for _, p := range tables.Products {
		nameByProduct[p.ProductID] = p.ProductName
	}
	units := make(map[int]int)
	for _, f := range tables.Sales {
		units[f.ProductID] += f.Quantity
	}

	type productUnits struct {
		name  string
		units int
	}
	ranked := make([]productUnits, 0, len(units))
	for id, u := range units {
		ranked = append(ranked, productUnits{nameByProduct[id], u})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].units != ranked[j].units {
			return ranked[i].units > ranked[j].units
		}
		return ranked[i].name < ranked[j].name
	})
	if len(ranked) > topN {
		ranked = ranked[:topN]
	}

	fmt.Fprintln(w, "\nTop products by units sold:")
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Product", "Units"})
	table.SetAutoFormatHeaders(false)
	for _, r := range ranked {
		table.Append([]string{r.name, fmt.Sprintf("%d", r.units)})
	}
	table.Render()
}
