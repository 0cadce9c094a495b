package dateonly

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseAndString(t *testing.T) {
	d, err := Parse("2023-01-15")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.String() != "2023-01-15" {
		t.Errorf("expected 2023-01-15, got %s", d.String())
	}
}

func TestParseInvalid(t *testing.T) {
	if _, err := Parse("15/01/2023"); err == nil {
		t.Error("expected error for non-ISO date")
	}
}

func TestJSONRoundTrip(t *testing.T) {
	d := New(1980, time.May, 15)
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(b) != `"1980-05-15"` {
		t.Errorf(`expected "1980-05-15", got %s`, b)
	}

	var back Date
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !back.Equal(d.Time) {
		t.Errorf("round trip mismatch: %v != %v", back, d)
	}
}

func TestUnmarshalNull(t *testing.T) {
	var d Date
	if err := json.Unmarshal([]byte("null"), &d); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !d.IsZero() {
		t.Error("expected zero date for null")
	}
}

func TestScanVariants(t *testing.T) {
	var d Date
	if err := d.Scan(time.Date(2023, 2, 10, 13, 45, 0, 0, time.UTC)); err != nil {
		t.Fatalf("scan time.Time: %v", err)
	}
	if d.String() != "2023-02-10" {
		t.Errorf("expected 2023-02-10, got %s", d)
	}

	if err := d.Scan("2023-01-16 00:00:00"); err != nil {
		t.Fatalf("scan string with time part: %v", err)
	}
	if d.String() != "2023-01-16" {
		t.Errorf("expected 2023-01-16, got %s", d)
	}

	if err := d.Scan(nil); err != nil {
		t.Fatalf("scan nil: %v", err)
	}
	if !d.IsZero() {
		t.Error("expected zero date after scanning nil")
	}
}

func TestBeforeAfter(t *testing.T) {
	a := New(2023, time.January, 15)
	b := New(2023, time.February, 10)
	if !a.Before(b) || !b.After(a) {
		t.Error("ordering broken")
	}
}
