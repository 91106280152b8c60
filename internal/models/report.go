package models

import "sort"

// Report is the result of one aggregation pass: the customer mapping plus
// the global totals. Every pass produces a fresh Report; nothing is carried
// over between loads.
type Report struct {
	Customers    map[string]*Customer `json:"customers"`
	TotalOrders  int                  `json:"totalOrders"`
	TotalRevenue float64              `json:"totalRevenue"`
}

// CustomerCount returns the number of distinct customers.
func (r *Report) CustomerCount() int {
	return len(r.Customers)
}

// AvgOrderValue returns the global average order value, or 0 when the
// report contains no orders.
func (r *Report) AvgOrderValue() float64 {
	if r.TotalOrders == 0 {
		return 0
	}

	return r.TotalRevenue / float64(r.TotalOrders)
}

// RankedBySpent returns the customers as a new slice sorted by total spent
// descending, with phone as a deterministic tie-break. The mapping itself
// is left untouched.
func (r *Report) RankedBySpent() []*Customer {
	ranked := make([]*Customer, 0, len(r.Customers))
	for _, c := range r.Customers {
		ranked = append(ranked, c)
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].TotalSpent != ranked[j].TotalSpent {
			return ranked[i].TotalSpent > ranked[j].TotalSpent
		}

		return ranked[i].Phone < ranked[j].Phone
	})

	return ranked
}

// TopByAvgOrder returns up to n customers sorted by average order value
// descending, phone ascending on ties.
func (r *Report) TopByAvgOrder(n int) []*Customer {
	top := make([]*Customer, 0, len(r.Customers))
	for _, c := range r.Customers {
		top = append(top, c)
	}

	sort.Slice(top, func(i, j int) bool {
		if top[i].AvgOrder != top[j].AvgOrder {
			return top[i].AvgOrder > top[j].AvgOrder
		}

		return top[i].Phone < top[j].Phone
	})

	if n > 0 && len(top) > n {
		top = top[:n]
	}

	return top
}
