package integration

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"orderlens/internal/analytics"
	"orderlens/internal/formatter"
	"orderlens/internal/loader"
	"orderlens/internal/models"
	"orderlens/pkg/metadata"
)

type fixtureResult struct {
	report *models.Report
	rows   int
}

func loadFixture(t *testing.T) fixtureResult {
	t.Helper()

	fixturePath := filepath.Join("..", "fixtures", "orders.json")

	client := loader.NewClient()

	rows, err := client.LoadFile(fixturePath)
	if err != nil {
		t.Fatalf("Failed to load fixture: %v", err)
	}

	if len(rows) != 6 {
		t.Fatalf("Expected 6 raw rows, got %d", len(rows))
	}

	return fixtureResult{rows: len(rows), report: analytics.Aggregate(rows)}
}

func TestPipeline_Aggregation(t *testing.T) {
	fx := loadFixture(t)
	report := fx.report

	if got := report.CustomerCount(); got != 3 {
		t.Errorf("Expected 3 customers, got %d", got)
	}

	if report.TotalOrders != 5 {
		t.Errorf("Expected 5 orders, got %d", report.TotalOrders)
	}

	if report.TotalRevenue != 95.75 {
		t.Errorf("Expected revenue 95.75, got %v", report.TotalRevenue)
	}

	alice, ok := report.Customers["555-1111"]
	if !ok {
		t.Fatal("customer 555-1111 missing")
	}

	if alice.Name != "Alice Chan" {
		t.Errorf("Expected name 'Alice Chan', got %q", alice.Name)
	}

	if alice.TotalOrders != 3 || alice.TotalSpent != 55.75 {
		t.Errorf("Alice aggregates = (%d, %v), want (3, 55.75)", alice.TotalOrders, alice.TotalSpent)
	}

	if alice.MostRestaurant != "Golden Dragon" {
		t.Errorf("Expected mostRestaurant 'Golden Dragon', got %q", alice.MostRestaurant)
	}

	if alice.MostPayment != "Cash" {
		t.Errorf("Expected mostPayment 'Cash', got %q", alice.MostPayment)
	}

	// The millisecond-timestamp order is the most recent one.
	wantLast := time.UnixMilli(1700000000000).UTC()
	if alice.LastOrder == nil || !alice.LastOrder.Equal(wantLast) {
		t.Errorf("Alice.LastOrder = %v, want %v", alice.LastOrder, wantLast)
	}

	carol, ok := report.Customers["555-3333"]
	if !ok {
		t.Fatal("customer 555-3333 missing")
	}

	if carol.TotalSpent != 0 || carol.TotalOrders != 1 {
		t.Errorf("Carol aggregates = (%v, %d), want (0, 1)", carol.TotalSpent, carol.TotalOrders)
	}

	if carol.LastOrder != nil {
		t.Errorf("Carol.LastOrder = %v, want absent", carol.LastOrder)
	}

	// The blank-phone row must not create a customer.
	for phone := range report.Customers {
		if strings.TrimSpace(phone) == "" {
			t.Error("blank phone leaked into the customer map")
		}
	}
}

func TestPipeline_MarkdownReport(t *testing.T) {
	fx := loadFixture(t)

	rendered := formatter.RenderMarkdown(fx.report, formatter.Options{Source: "fixture"})
	signed := metadata.Sign(rendered, "fixture", fx.rows)

	ok, err := metadata.Verify(signed)
	if err != nil || !ok {
		t.Fatalf("signed report failed verification: ok=%v err=%v", ok, err)
	}

	for _, want := range []string{"555-1111", "Alice Chan", "Golden Dragon", "$55.75"} {
		if !strings.Contains(signed, want) {
			t.Errorf("report missing %q", want)
		}
	}
}

func TestPipeline_Determinism(t *testing.T) {
	first := loadFixture(t)
	second := loadFixture(t)

	a := formatter.RenderMarkdown(first.report, formatter.Options{Source: "fixture"})
	b := formatter.RenderMarkdown(second.report, formatter.Options{Source: "fixture"})

	if a != b {
		t.Error("two aggregation passes over the same fixture rendered differently")
	}
}
