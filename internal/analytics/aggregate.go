// Package analytics groups normalized orders by customer phone number and
// computes per-customer and global statistics.
package analytics

import (
	"sort"

	"orderlens/internal/models"
	"orderlens/internal/normalizer"
)

// Aggregate consumes a finite sequence of raw records and produces a fresh
// report keyed by phone number. Rows without a usable phone are dropped
// entirely: they contribute to no customer and no global total. The input
// is never mutated and every call starts from an empty mapping.
func Aggregate(rows []models.RawRecord) *models.Report {
	report := &models.Report{
		Customers: make(map[string]*models.Customer),
	}

	for _, rec := range rows {
		row := normalizer.NormalizeRow(rec)
		if row.Phone == "" {
			continue
		}

		cust, ok := report.Customers[row.Phone]
		if !ok {
			cust = &models.Customer{
				Phone: row.Phone,
				Name:  row.Name,
			}
			report.Customers[row.Phone] = cust
		}

		cust.Orders = append(cust.Orders, row.Order)
		cust.TotalSpent += row.Order.Amount
		report.TotalOrders++
		report.TotalRevenue += row.Order.Amount
	}

	for _, cust := range report.Customers {
		finalize(cust)
	}

	return report
}

// finalize computes the derived customer fields once all rows are ingested.
// The canonical Orders slice keeps its insertion order; recency is taken
// from a separate date-sorted view.
func finalize(c *models.Customer) {
	c.TotalOrders = len(c.Orders)

	if c.TotalOrders > 0 {
		c.AvgOrder = c.TotalSpent / float64(c.TotalOrders)
	} else {
		c.AvgOrder = 0
	}

	byDate := OrdersByDateDesc(c.Orders)
	if len(byDate) > 0 && byDate[0].Date != nil {
		last := *byDate[0].Date
		c.LastOrder = &last
	}

	c.MostRestaurant = modeOfField(c.Orders, func(o models.Order) string { return o.Restaurant })
	c.MostPayment = modeOfField(c.Orders, func(o models.Order) string { return o.Payment })
}

// OrdersByDateDesc returns a new slice of the orders sorted by date
// descending. Orders without a date sort last; among themselves they keep
// their relative insertion order.
func OrdersByDateDesc(orders []models.Order) []models.Order {
	sorted := make([]models.Order, len(orders))
	copy(sorted, orders)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].Date, sorted[j].Date

		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.After(*b)
		}
	})

	return sorted
}

// modeOfField returns the mode over the non-empty values of one order
// field, or "" when no order carries a value.
func modeOfField(orders []models.Order, field func(models.Order) string) string {
	values := make([]string, 0, len(orders))

	for _, o := range orders {
		if v := field(o); v != "" {
			values = append(values, v)
		}
	}

	most, ok := Mode(values)
	if !ok {
		return ""
	}

	return most
}
