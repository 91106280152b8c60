package analytics

import (
	"sort"

	"orderlens/internal/models"
)

// MonthBucket counts orders placed in one calendar month.
type MonthBucket struct {
	Month string `json:"month"` // YYYY-MM
	Count int    `json:"count"`
}

// LabelValue is one labeled slice of a distribution.
type LabelValue struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// OrdersPerMonth buckets every dated order by calendar month. Orders
// without a date are excluded. Buckets come back sorted ascending by month.
func OrdersPerMonth(report *models.Report) []MonthBucket {
	counts := make(map[string]int)

	for _, cust := range report.Customers {
		for _, o := range cust.Orders {
			if o.Date == nil {
				continue
			}

			counts[o.Date.Format("2006-01")]++
		}
	}

	buckets := make([]MonthBucket, 0, len(counts))
	for month, count := range counts {
		buckets = append(buckets, MonthBucket{Month: month, Count: count})
	}

	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Month < buckets[j].Month
	})

	return buckets
}

// RestaurantSpending sums order amounts per restaurant across all
// customers. Orders with an empty restaurant are excluded.
func RestaurantSpending(report *models.Report) []LabelValue {
	totals := make(map[string]float64)

	for _, cust := range report.Customers {
		for _, o := range cust.Orders {
			if o.Restaurant == "" {
				continue
			}

			totals[o.Restaurant] += o.Amount
		}
	}

	return sortedDistribution(totals)
}

// PaymentCounts counts orders per payment method across all customers.
// Orders with an empty payment method are excluded.
func PaymentCounts(report *models.Report) []LabelValue {
	counts := make(map[string]float64)

	for _, cust := range report.Customers {
		for _, o := range cust.Orders {
			if o.Payment == "" {
				continue
			}

			counts[o.Payment]++
		}
	}

	return sortedDistribution(counts)
}

// sortedDistribution orders a distribution by value descending, label
// ascending on ties, so rendered charts are deterministic.
func sortedDistribution(m map[string]float64) []LabelValue {
	dist := make([]LabelValue, 0, len(m))
	for label, value := range m {
		dist = append(dist, LabelValue{Label: label, Value: value})
	}

	sort.Slice(dist, func(i, j int) bool {
		if dist[i].Value != dist[j].Value {
			return dist[i].Value > dist[j].Value
		}

		return dist[i].Label < dist[j].Label
	})

	return dist
}
