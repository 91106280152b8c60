package loader

import (
	"encoding/json"
	"fmt"

	"orderlens/internal/models"
)

// rowsEnvelope is the wrapped form some exports use.
type rowsEnvelope struct {
	Rows []models.RawRecord `json:"rows"`
}

// DecodeRows decodes a plain JSON export into raw records. Both a
// top-level array of row objects and a {"rows": [...]} envelope are
// accepted, since the dumps in circulation use either shape.
func DecodeRows(data []byte) ([]models.RawRecord, error) {
	var records []models.RawRecord
	if err := json.Unmarshal(data, &records); err == nil {
		return records, nil
	}

	var envelope rowsEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode rows JSON: %w", err)
	}

	return envelope.Rows, nil
}
