package formatter

import (
	"encoding/json"
	"strings"
	"testing"

	"orderlens/internal/analytics"
	"orderlens/internal/models"
)

func reportFixture() *models.Report {
	rows := []models.RawRecord{
		{"Phone": "555-1111", "Name": "Alice", "Amount": "$10.00", "Date": "2023-01-15", "Resturant": "Pizza", "Payment": "Cash"},
		{"Phone": "555-1111", "Amount": "20", "Date": "2023-02-02", "Resturant": "Pizza", "Payment": "Card"},
		{"Phone": "555-2222", "Name": "Bob", "Amount": "5", "Resturant": "Burger", "Payment": "Cash"},
	}

	return analytics.Aggregate(rows)
}

func TestRenderMarkdown(t *testing.T) {
	got := RenderMarkdown(reportFixture(), Options{Source: "orders.json"})

	for _, want := range []string{
		"# Customer Analytics Report",
		"Source: orders.json",
		"## Summary",
		"## Customers",
		"## Top Customers by Avg Check",
		"## Orders per Month",
		"## Payment Methods",
		"## Restaurant Spending",
		"555-1111",
		"Alice",
		"$30.00",
		"$15.00",
		"Jan 2023",
		"Feb 2023",
		// Bob has no dated orders.
		"N/A",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("markdown missing %q\n%s", want, got)
		}
	}

	// Customers are ranked by total spent: Alice (30) before Bob (5).
	if strings.Index(got, "555-1111") > strings.Index(got, "555-2222") {
		t.Error("customers not sorted by total spent descending")
	}
}

func TestRenderMarkdown_TableAlignment(t *testing.T) {
	got := RenderMarkdown(reportFixture(), Options{})

	for _, line := range strings.Split(got, "\n") {
		if !strings.HasPrefix(line, "|") {
			continue
		}

		if !strings.HasSuffix(line, "|") {
			t.Errorf("table row does not end with a pipe: %q", line)
		}
	}

	// All rows of one table share the same width.
	var tableLines []string

	for _, line := range strings.Split(got, "\n") {
		if strings.HasPrefix(line, "|") {
			tableLines = append(tableLines, line)

			continue
		}

		checkSameWidth(t, tableLines)
		tableLines = nil
	}

	checkSameWidth(t, tableLines)
}

func checkSameWidth(t *testing.T, lines []string) {
	t.Helper()

	if len(lines) < 2 {
		return
	}

	for _, line := range lines[1:] {
		if len(line) != len(lines[0]) {
			t.Errorf("ragged table:\n%q\n%q", lines[0], line)
		}
	}
}

func TestRenderMarkdown_CurrencyOption(t *testing.T) {
	got := RenderMarkdown(reportFixture(), Options{Currency: "€"})

	if !strings.Contains(got, "€30.00") {
		t.Errorf("expected custom currency in output:\n%s", got)
	}
}

func TestRenderJSON(t *testing.T) {
	data, err := RenderJSON(reportFixture(), true)
	if err != nil {
		t.Fatalf("RenderJSON failed: %v", err)
	}

	var decoded struct {
		Summary struct {
			Customers    int     `json:"customers"`
			TotalOrders  int     `json:"totalOrders"`
			TotalRevenue float64 `json:"totalRevenue"`
			AvgOrder     float64 `json:"avgOrder"`
		} `json:"summary"`
		Customers []models.Customer `json:"customers"`
	}

	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if decoded.Summary.Customers != 2 {
		t.Errorf("summary.customers = %d, want 2", decoded.Summary.Customers)
	}

	if decoded.Summary.TotalOrders != 3 {
		t.Errorf("summary.totalOrders = %d, want 3", decoded.Summary.TotalOrders)
	}

	if decoded.Summary.TotalRevenue != 35 {
		t.Errorf("summary.totalRevenue = %v, want 35", decoded.Summary.TotalRevenue)
	}

	if len(decoded.Customers) != 2 || decoded.Customers[0].Phone != "555-1111" {
		t.Errorf("customers not ranked by total spent: %+v", decoded.Customers)
	}
}

func TestPrettyMonth(t *testing.T) {
	if got := prettyMonth("2023-02"); got != "Feb 2023" {
		t.Errorf("prettyMonth = %q, want Feb 2023", got)
	}

	// Unparseable keys pass through.
	if got := prettyMonth("bogus"); got != "bogus" {
		t.Errorf("prettyMonth = %q, want bogus", got)
	}
}
