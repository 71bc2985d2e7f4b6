package derive

import (
	"math"
	"testing"
	"time"
)

func TestCompactNumber(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1.0K"},
		{1500, "1.5K"},
		{999_999, "1000.0K"},
		{1_000_000, "1.0M"},
		{2_340_000, "2.3M"},
	}
	for _, c := range cases {
		if got := CompactNumber(c.in); got != c.want {
			t.Fatalf("CompactNumber(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestCompactNumberNaN(t *testing.T) {
	if got := CompactNumber(math.NaN()); got != "0" {
		t.Fatalf("NaN should format as 0, got %q", got)
	}
}

func TestGroupedInt(t *testing.T) {
	if got := GroupedInt(1234567); got != "1,234,567" {
		t.Fatalf("unexpected grouping %q", got)
	}
	if got := GroupedInt(-4200); got != "-4,200" {
		t.Fatalf("unexpected negative grouping %q", got)
	}
}

func TestCurrency(t *testing.T) {
	if got := Currency(1500000); got != "₩1,500,000" {
		t.Fatalf("unexpected currency %q", got)
	}
}

func TestRelativeTime(t *testing.T) {
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		ts   time.Time
		want string
	}{
		{now.Add(-15 * time.Minute), "15분 전"},
		{now.Add(-30 * time.Second), "방금 전"},
		{now.Add(-3 * time.Hour), "3시간 전"},
		{now.AddDate(0, 0, -3), "3일 전"},
		{now.AddDate(0, 0, -10), "1주 전"},
		{now.AddDate(0, 0, -45), "1개월 전"},
	}
	for _, c := range cases {
		if got := RelativeTime(now, c.ts); got != c.want {
			t.Fatalf("RelativeTime(%v) = %q, want %q", c.ts, got, c.want)
		}
	}
}

func TestDuration(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "0분"},
		{-5, "0분"},
		{90, "1분"},
		{3600, "1시간 0분"},
		{5400, "1시간 30분"},
	}
	for _, c := range cases {
		if got := Duration(c.in); got != c.want {
			t.Fatalf("Duration(%d) = %q, want %q", c.in, got, c.want)
		}
	}
}
