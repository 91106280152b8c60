// Package models defines the order analytics data model.
package models

import "time"

// RawRecord is one input row from an external tabular source, as a
// column-name to value mapping. Values are whatever the JSON decoder
// produced: string, float64, bool, or nil. Column names vary across
// sources; the normalizer resolves the known aliases.
type RawRecord map[string]any

// Order is a normalized purchase event belonging to exactly one customer.
type Order struct {
	// Date is nil when the source value was missing or unparseable.
	// Such orders still count towards totals and spend but are
	// excluded from recency and month bucketing.
	Date       *time.Time `json:"date,omitempty"`
	Restaurant string     `json:"restaurant"`
	Payment    string     `json:"payment"`
	Amount     float64    `json:"amount"`
}

// Customer aggregates all orders sharing one phone number.
type Customer struct {
	Phone string `json:"phone"`
	// Name is set when the customer record is first created and never
	// overwritten by later rows with the same phone.
	Name string `json:"name"`
	// Orders holds the customer's orders in encounter order.
	Orders     []Order `json:"orders"`
	TotalSpent float64 `json:"totalSpent"`

	// Derived fields, populated by the finalization pass.
	TotalOrders    int        `json:"totalOrders"`
	AvgOrder       float64    `json:"avgOrder"`
	LastOrder      *time.Time `json:"lastOrder,omitempty"`
	MostRestaurant string     `json:"mostRestaurant"`
	MostPayment    string     `json:"mostPayment"`
}
