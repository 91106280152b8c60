package loader

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"orderlens/internal/models"
)

// Gviz decoding errors.
var (
	ErrInvalidSheetRef = errors.New("not a valid sheet ID or sheet URL")
	ErrNoJSONPayload   = errors.New("no JSON payload in gviz response")
)

var (
	// sheetURLPattern extracts the document ID from a full spreadsheet URL.
	sheetURLPattern = regexp.MustCompile(`/d/([a-zA-Z0-9-_]+)`)

	// sheetIDPattern matches a bare document ID pasted directly.
	sheetIDPattern = regexp.MustCompile(`^[a-zA-Z0-9-_]{20,}$`)
)

// gvizResponse is the relevant subset of the gviz JSON envelope.
type gvizResponse struct {
	Table struct {
		Cols []struct {
			Label string `json:"label"`
		} `json:"cols"`
		Rows []struct {
			C []*gvizCell `json:"c"`
		} `json:"rows"`
	} `json:"table"`
}

type gvizCell struct {
	V any `json:"v"`
}

// ExtractSheetID accepts either a full spreadsheet URL or a bare document
// ID and returns the ID.
func ExtractSheetID(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", ErrInvalidSheetRef
	}

	if m := sheetURLPattern.FindStringSubmatch(ref); m != nil {
		return m[1], nil
	}

	if sheetIDPattern.MatchString(ref) {
		return ref, nil
	}

	return "", fmt.Errorf("%w: %q", ErrInvalidSheetRef, ref)
}

// GvizURL builds the gviz JSON export endpoint for a sheet ID.
func GvizURL(sheetID string) string {
	return fmt.Sprintf("https://docs.google.com/spreadsheets/d/%s/gviz/tq?tqx=out:json", sheetID)
}

// ParseGviz decodes a gviz response body into raw records. The endpoint
// wraps its JSON in a JS function call, so everything outside the outermost
// braces is discarded first. Cells are keyed by column label, falling back
// to colN for unlabeled columns.
func ParseGviz(body string) ([]models.RawRecord, error) {
	start := strings.Index(body, "{")
	end := strings.LastIndex(body, "}")

	if start < 0 || end <= start {
		return nil, ErrNoJSONPayload
	}

	var resp gvizResponse
	if err := json.Unmarshal([]byte(body[start:end+1]), &resp); err != nil {
		return nil, fmt.Errorf("failed to decode gviz JSON: %w", err)
	}

	labels := make([]string, len(resp.Table.Cols))
	for i, col := range resp.Table.Cols {
		labels[i] = strings.TrimSpace(col.Label)
		if labels[i] == "" {
			labels[i] = fmt.Sprintf("col%d", i)
		}
	}

	records := make([]models.RawRecord, 0, len(resp.Table.Rows))

	for _, row := range resp.Table.Rows {
		rec := make(models.RawRecord, len(labels))

		for i, cell := range row.C {
			if i >= len(labels) {
				break
			}

			if cell == nil {
				rec[labels[i]] = ""

				continue
			}

			rec[labels[i]] = cell.V
		}

		records = append(records, rec)
	}

	return records, nil
}
