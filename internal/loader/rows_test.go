package loader

import "testing"

func TestDecodeRows_TopLevelArray(t *testing.T) {
	data := []byte(`[{"Phone":"555-1111","Amount":"10"},{"Phone":"555-2222"}]`)

	rows, err := DecodeRows(data)
	if err != nil {
		t.Fatalf("DecodeRows failed: %v", err)
	}

	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}

	if rows[0]["Phone"] != "555-1111" {
		t.Errorf("Phone = %v, want 555-1111", rows[0]["Phone"])
	}
}

func TestDecodeRows_Envelope(t *testing.T) {
	data := []byte(`{"rows":[{"Phone":"555-1111"}]}`)

	rows, err := DecodeRows(data)
	if err != nil {
		t.Fatalf("DecodeRows failed: %v", err)
	}

	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
}

func TestDecodeRows_Invalid(t *testing.T) {
	if _, err := DecodeRows([]byte(`"just a string"`)); err == nil {
		t.Error("expected error for non-row JSON")
	}
}

func TestDecodeRows_EmptyEnvelope(t *testing.T) {
	rows, err := DecodeRows([]byte(`{"rows":[]}`))
	if err != nil {
		t.Fatalf("DecodeRows failed: %v", err)
	}

	if len(rows) != 0 {
		t.Errorf("got %d rows, want 0", len(rows))
	}
}
