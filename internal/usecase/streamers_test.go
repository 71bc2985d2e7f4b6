package usecase

import (
	"context"
	"testing"

	"streampulse/internal/domain/models"
)

func TestStreamerListSortAndPaginate(t *testing.T) {
	src := newFakeSource()
	uc := NewStreamerListUseCase(src, nopMetrics{})

	view, err := uc.Assemble(context.Background(), models.StreamersRequest{
		SortBy:    "total_donations",
		SortOrder: "desc",
		Page:      1,
		Limit:     10,
	})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if view.Pagination.TotalCount != 25 || view.Pagination.TotalPages != 3 {
		t.Fatalf("expected 25 rows over 3 pages, got %+v", view.Pagination)
	}
	if len(view.Streamers) != 10 {
		t.Fatalf("expected 10 rows on page 1, got %d", len(view.Streamers))
	}
	if view.Streamers[0].Rank != 1 || view.Streamers[0].Name != "스트리머01" {
		t.Fatalf("unexpected first row: %+v", view.Streamers[0])
	}
	for i := 1; i < len(view.Streamers); i++ {
		if view.Streamers[i].TotalDonations > view.Streamers[i-1].TotalDonations {
			t.Fatalf("rows not sorted desc at %d", i)
		}
		if view.Streamers[i].Rank != view.Streamers[i-1].Rank+1 {
			t.Fatalf("ranks not contiguous at %d", i)
		}
	}
}

func TestStreamerListLastPage(t *testing.T) {
	src := newFakeSource()
	uc := NewStreamerListUseCase(src, nopMetrics{})

	view, err := uc.Assemble(context.Background(), models.StreamersRequest{Page: 3, Limit: 10})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if len(view.Streamers) != 5 {
		t.Fatalf("expected 5 rows on last page, got %d", len(view.Streamers))
	}
	if view.Streamers[0].Rank != 21 {
		t.Fatalf("expected rank 21 first on page 3, got %d", view.Streamers[0].Rank)
	}
}

func TestStreamerListPageClamped(t *testing.T) {
	src := newFakeSource()
	uc := NewStreamerListUseCase(src, nopMetrics{})

	view, err := uc.Assemble(context.Background(), models.StreamersRequest{Page: 99, Limit: 10})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if view.Pagination.CurrentPage != 3 {
		t.Fatalf("expected clamp to last page, got %d", view.Pagination.CurrentPage)
	}
}

func TestStreamerListSearch(t *testing.T) {
	src := newFakeSource()
	uc := NewStreamerListUseCase(src, nopMetrics{})

	view, err := uc.Assemble(context.Background(), models.StreamersRequest{Search: "스트리머0", Limit: 10})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if view.Pagination.TotalCount != 9 {
		t.Fatalf("expected 9 matches, got %d", view.Pagination.TotalCount)
	}
	if view.Search != "스트리머0" {
		t.Fatalf("search term not echoed: %q", view.Search)
	}
}

func TestStreamerListInfluenceGrades(t *testing.T) {
	src := newFakeSource()
	uc := NewStreamerListUseCase(src, nopMetrics{})

	view, err := uc.Assemble(context.Background(), models.StreamersRequest{SortBy: "influence_score", Limit: 25})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	// scores run 95 down to 47 in steps of 2
	if view.Streamers[0].InfluenceGrade != "S+" {
		t.Fatalf("expected S+ for 95, got %q", view.Streamers[0].InfluenceGrade)
	}
	last := view.Streamers[len(view.Streamers)-1]
	if last.InfluenceGrade != "D" {
		t.Fatalf("expected D for %v, got %q", last.InfluenceScore, last.InfluenceGrade)
	}
}
