// Package normalizer converts raw spreadsheet rows into canonical orders,
// tolerating column-name aliases and inconsistent value encodings.
package normalizer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"orderlens/internal/models"
)

// Alias chains for each logical field, consulted in priority order. The
// first present, non-falsy value wins. "Resturant" leads its chain because
// the expected source sheet carries the misspelled header.
var (
	phoneAliases      = []string{"Account Phones", "Account Phone", "Phone"}
	nameAliases       = []string{"Account Name", "Name"}
	restaurantAliases = []string{"Resturant", "Restaurant"}
	paymentAliases    = []string{"Payment Method", "Payment"}
	amountAliases     = []string{"Total Price", "Amount", "Price"}
	dateAliases       = []string{"Created Date", "Order Date", "Date"}
)

// amountJunkPattern strips everything that is not part of a decimal number,
// which tolerates currency symbols, thousands separators, and whitespace.
var amountJunkPattern = regexp.MustCompile(`[^0-9.\-]`)

// Row is the normalized view of one raw record. An empty Phone means the
// record carries no usable identity; the aggregator drops such rows.
type Row struct {
	Phone string
	Name  string
	Order models.Order
}

// NormalizeRow maps one raw record to a normalized row. It never fails:
// missing fields default to empty strings, unparseable amounts to 0, and
// unparseable dates to an absent date.
func NormalizeRow(rec models.RawRecord) Row {
	order := models.Order{
		Restaurant: firstString(rec, restaurantAliases),
		Payment:    firstString(rec, paymentAliases),
		Amount:     ParseAmount(firstValue(rec, amountAliases)),
	}

	if date, ok := ParseDate(firstValue(rec, dateAliases)); ok {
		order.Date = &date
	}

	return Row{
		Phone: strings.TrimSpace(stringify(firstValue(rec, phoneAliases))),
		Name:  firstString(rec, nameAliases),
		Order: order,
	}
}

// ParseAmount coerces a raw cell value to a decimal amount. Junk characters
// are stripped before parsing; anything that still fails to parse becomes 0.
// A leading minus sign survives the strip, so refunds stay negative.
func ParseAmount(v any) float64 {
	s := amountJunkPattern.ReplaceAllString(stringify(v), "")
	if s == "" {
		return 0
	}

	amount, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}

	return amount
}

// firstValue returns the first present, non-falsy value among the aliases.
func firstValue(rec models.RawRecord, aliases []string) any {
	for _, alias := range aliases {
		v, ok := rec[alias]
		if !ok || isFalsy(v) {
			continue
		}

		return v
	}

	return nil
}

// firstString is firstValue coerced to a string, defaulting to "".
func firstString(rec models.RawRecord, aliases []string) string {
	return stringify(firstValue(rec, aliases))
}

// isFalsy mirrors the emptiness rules of the source system: nil, empty or
// blank strings, zero numbers, and false are all treated as absent.
func isFalsy(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(val) == ""
	case float64:
		return val == 0
	case int:
		return val == 0
	case bool:
		return !val
	}

	return false
}

// stringify renders a cell value as a string without scientific notation
// for the float64 values a JSON decoder produces.
func stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case time.Time:
		return val.Format(time.RFC3339)
	}

	return fmt.Sprint(v)
}
