package derive

import (
	"testing"

	"streampulse/internal/domain/models"
)

func TestRankStreamersStableTies(t *testing.T) {
	rows := []models.StreamerRecord{
		{ID: "a", Name: "A", TotalDonations: 500},
		{ID: "b", Name: "B", TotalDonations: 500},
		{ID: "c", Name: "C", TotalDonations: 900},
	}
	ranked := RankedEntities(rows, "total_donations")
	if len(ranked) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(ranked))
	}
	if ranked[0].Name != "C" {
		t.Fatalf("expected C first, got %s", ranked[0].Name)
	}
	// equal metric: A entered before B, so A must outrank B
	if ranked[1].Name != "A" || ranked[2].Name != "B" {
		t.Fatalf("tie order not stable: %s, %s", ranked[1].Name, ranked[2].Name)
	}
	for i, r := range ranked {
		if r.Rank != i+1 {
			t.Fatalf("rank must be 1-based index, got %d at %d", r.Rank, i)
		}
	}
}

func TestRankStreamersAscending(t *testing.T) {
	rows := []models.StreamerRecord{
		{ID: "a", AvgViewers: 300},
		{ID: "b", AvgViewers: 100},
	}
	out := RankStreamers(rows, "avg_viewers", "asc")
	if out[0].ID != "b" {
		t.Fatalf("expected ascending order, got %s first", out[0].ID)
	}
	// input untouched
	if rows[0].ID != "a" {
		t.Fatalf("input slice was mutated")
	}
}

func TestPaginate(t *testing.T) {
	rows := make([]models.StreamerRecord, 25)
	page, meta := Paginate(rows, 1, 10)
	if len(page) != 10 {
		t.Fatalf("expected 10 rows on page 1, got %d", len(page))
	}
	if meta.TotalPages != 3 {
		t.Fatalf("expected ceil(25/10)=3 pages, got %d", meta.TotalPages)
	}
	if meta.TotalCount != 25 {
		t.Fatalf("expected total 25, got %d", meta.TotalCount)
	}

	page, meta = Paginate(rows, 3, 10)
	if len(page) != 5 {
		t.Fatalf("expected 5 rows on last page, got %d", len(page))
	}

	// out-of-range page clamps to last
	_, meta = Paginate(rows, 99, 10)
	if meta.CurrentPage != 3 {
		t.Fatalf("expected clamp to page 3, got %d", meta.CurrentPage)
	}

	// empty input still reports one page
	_, meta = Paginate(nil, 1, 10)
	if meta.TotalPages != 1 || meta.TotalCount != 0 {
		t.Fatalf("unexpected empty pagination %+v", meta)
	}
}
