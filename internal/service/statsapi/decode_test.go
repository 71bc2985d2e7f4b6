package statsapi

import (
	"testing"

	"streampulse/internal/domain/models"
)

func TestUnwrapVariants(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{"bare array", `[{"bucket":"2026-08-01"},{"bucket":"2026-08-02"}]`, 2},
		{"envelope", `{"success":true,"data":[{"bucket":"2026-08-01"}]}`, 1},
		{"envelope null data", `{"success":true,"data":null}`, 0},
		{"empty body", ``, 0},
		{"null", `null`, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := decodeList[models.TrendRow]([]byte(tt.body))
			if err != nil {
				t.Fatalf("decodeList: %v", err)
			}
			if rows == nil {
				t.Fatal("expected non-nil slice")
			}
			if len(rows) != tt.want {
				t.Fatalf("expected %d rows, got %d", tt.want, len(rows))
			}
		})
	}
}

func TestDecodeObjectEnvelope(t *testing.T) {
	var s models.SummaryStats
	body := `{"success":true,"data":{"totalViewers":42,"viewersChange":-1.5}}`
	if err := decodeObject([]byte(body), &s); err != nil {
		t.Fatalf("decodeObject: %v", err)
	}
	if s.TotalViewers != 42 || s.ViewersChange != -1.5 {
		t.Fatalf("unexpected summary: %+v", s)
	}
}

func TestDecodeObjectBare(t *testing.T) {
	var s models.SummaryStats
	if err := decodeObject([]byte(`{"totalViewers":7}`), &s); err != nil {
		t.Fatalf("decodeObject: %v", err)
	}
	if s.TotalViewers != 7 {
		t.Fatalf("expected 7, got %d", s.TotalViewers)
	}
}

func TestDecodeObjectMalformed(t *testing.T) {
	var s models.SummaryStats
	if err := decodeObject([]byte(`{"totalViewers":`), &s); err == nil {
		t.Fatal("expected error on malformed json")
	}
}

func TestDecodeSetting(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"object", `{"key":"overlay.theme","value":"dark"}`, "dark"},
		{"envelope", `{"success":true,"data":{"key":"overlay.theme","value":"light"}}`, "light"},
		{"bare string", `"dark"`, "dark"},
		{"empty", ``, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeSetting([]byte(tt.body))
			if err != nil {
				t.Fatalf("decodeSetting: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
