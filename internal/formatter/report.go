// Package formatter renders aggregated customer analytics as markdown or JSON.
package formatter

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"orderlens/internal/analytics"
	"orderlens/internal/models"
	"orderlens/pkg/utils"

	"github.com/mattn/go-runewidth"
)

// Options control report presentation.
type Options struct {
	Title        string
	Source       string
	Currency     string
	TopCustomers int
}

func (o Options) withDefaults() Options {
	if o.Title == "" {
		o.Title = "Customer Analytics Report"
	}

	if o.Currency == "" {
		o.Currency = "$"
	}

	if o.TopCustomers < 1 {
		o.TopCustomers = 6
	}

	return o
}

// RenderMarkdown builds the full markdown analytics report: the global
// summary, the customer table sorted by total spent, the top customers by
// average check, and the distribution tables the dashboard charts show.
func RenderMarkdown(report *models.Report, opts Options) string {
	opts = opts.withDefaults()

	var sb strings.Builder

	sb.WriteString("# " + opts.Title + "\n\n")

	if opts.Source != "" {
		sb.WriteString(fmt.Sprintf("Source: %s\n\n", opts.Source))
	}

	sb.WriteString("## Summary\n\n")
	writeTable(&sb,
		[]string{"Customers", "Orders", "Revenue", "Avg Order"},
		[][]string{{
			fmt.Sprintf("%d", report.CustomerCount()),
			fmt.Sprintf("%d", report.TotalOrders),
			opts.money(report.TotalRevenue),
			opts.money(report.AvgOrderValue()),
		}},
	)

	sb.WriteString("\n## Customers\n\n")

	customerRows := make([][]string, 0, report.CustomerCount())
	for _, c := range report.RankedBySpent() {
		customerRows = append(customerRows, []string{
			c.Phone,
			c.Name,
			fmt.Sprintf("%d", c.TotalOrders),
			opts.money(c.AvgOrder),
			opts.money(c.TotalSpent),
			formatDate(c.LastOrder),
		})
	}

	writeTable(&sb,
		[]string{"Phone", "Name", "Orders", "Avg Order", "Total Spent", "Last Order"},
		customerRows,
	)

	sb.WriteString("\n## Top Customers by Avg Check\n\n")

	topRows := make([][]string, 0, opts.TopCustomers)
	for _, c := range report.TopByAvgOrder(opts.TopCustomers) {
		label := c.Name
		if label == "" {
			label = c.Phone
		}

		topRows = append(topRows, []string{utils.ShortName(label), opts.money(c.AvgOrder)})
	}

	writeTable(&sb, []string{"Customer", "Avg Check"}, topRows)

	sb.WriteString("\n## Orders per Month\n\n")

	monthRows := [][]string{}
	for _, b := range analytics.OrdersPerMonth(report) {
		monthRows = append(monthRows, []string{prettyMonth(b.Month), fmt.Sprintf("%d", b.Count)})
	}

	writeTable(&sb, []string{"Month", "Orders"}, monthRows)

	sb.WriteString("\n## Payment Methods\n\n")

	paymentRows := [][]string{}
	for _, lv := range analytics.PaymentCounts(report) {
		paymentRows = append(paymentRows, []string{lv.Label, fmt.Sprintf("%.0f", lv.Value)})
	}

	writeTable(&sb, []string{"Method", "Orders"}, paymentRows)

	sb.WriteString("\n## Restaurant Spending\n\n")

	restRows := [][]string{}
	for _, lv := range analytics.RestaurantSpending(report) {
		restRows = append(restRows, []string{lv.Label, opts.money(lv.Value)})
	}

	writeTable(&sb, []string{"Restaurant", "Spent"}, restRows)

	return sb.String()
}

// jsonReport mirrors the markdown layout for machine consumers.
type jsonReport struct {
	Summary   jsonSummary        `json:"summary"`
	Customers []*models.Customer `json:"customers"`
}

type jsonSummary struct {
	Customers    int     `json:"customers"`
	TotalOrders  int     `json:"totalOrders"`
	TotalRevenue float64 `json:"totalRevenue"`
	AvgOrder     float64 `json:"avgOrder"`
}

// RenderJSON marshals the report with customers ranked by total spent.
func RenderJSON(report *models.Report, pretty bool) ([]byte, error) {
	out := jsonReport{
		Summary: jsonSummary{
			Customers:    report.CustomerCount(),
			TotalOrders:  report.TotalOrders,
			TotalRevenue: report.TotalRevenue,
			AvgOrder:     report.AvgOrderValue(),
		},
		Customers: report.RankedBySpent(),
	}

	if pretty {
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal JSON: %w", err)
		}

		return data, nil
	}

	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}

	return data, nil
}

func (o Options) money(v float64) string {
	return o.Currency + fmt.Sprintf("%.2f", v)
}

func formatDate(t *time.Time) string {
	if t == nil {
		return "N/A"
	}

	return t.Format("2006-01-02")
}

// prettyMonth turns "2023-02" into "Feb 2023".
func prettyMonth(key string) string {
	t, err := time.Parse("2006-01", key)
	if err != nil {
		return key
	}

	return t.Format("Jan 2006")
}

// writeTable renders one aligned markdown table. Column widths use display
// width so CJK names line up.
func writeTable(sb *strings.Builder, headers []string, rows [][]string) {
	colCount := len(headers)

	colWidths := make([]int, colCount)
	for i, h := range headers {
		colWidths[i] = runewidth.StringWidth(h)
	}

	for _, row := range rows {
		for i := 0; i < len(row) && i < colCount; i++ {
			if w := runewidth.StringWidth(row[i]); w > colWidths[i] {
				colWidths[i] = w
			}
		}
	}

	// Ensure min width for separator (usually 3 dashes "---")
	for i := range colWidths {
		if colWidths[i] < 3 {
			colWidths[i] = 3
		}
	}

	writeRow := func(cells []string) {
		sb.WriteString("|")

		for i := 0; i < colCount; i++ {
			content := ""
			if i < len(cells) {
				content = cells[i]
			}

			sb.WriteString(" ")
			sb.WriteString(content)

			if padding := colWidths[i] - runewidth.StringWidth(content); padding > 0 {
				sb.WriteString(strings.Repeat(" ", padding))
			}

			sb.WriteString(" |")
		}

		sb.WriteString("\n")
	}

	writeRow(headers)

	sb.WriteString("|")

	for i := 0; i < colCount; i++ {
		sb.WriteString(" " + strings.Repeat("-", colWidths[i]) + " |")
	}

	sb.WriteString("\n")

	for _, row := range rows {
		writeRow(row)
	}
}
