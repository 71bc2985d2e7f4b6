package statsapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	drepo "streampulse/internal/domain/repository"
)

func TestClientSendsBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"totalViewers": 100}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "secret-token", time.Second)
	summary, err := c.Summary(context.Background(), 7)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if gotAuth != "Bearer secret-token" {
		t.Fatalf("expected bearer header, got %q", gotAuth)
	}
	if summary.TotalViewers != 100 {
		t.Fatalf("expected totalViewers 100, got %d", summary.TotalViewers)
	}
}

func TestClientOmitsAuthHeaderWithoutToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := New(srv.URL, "", time.Second)
	if _, err := c.Streamers(context.Background()); err != nil {
		t.Fatalf("Streamers: %v", err)
	}
	if gotAuth != "" {
		t.Fatalf("expected no auth header, got %q", gotAuth)
	}
}

func TestClientQueryParams(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := New(srv.URL, "", time.Second)
	if _, err := c.Trend(context.Background(), 30); err != nil {
		t.Fatalf("Trend: %v", err)
	}
	if gotQuery != "days=30" {
		t.Fatalf("expected days=30, got %q", gotQuery)
	}
}

func TestClientStreamerNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := New(srv.URL, "", time.Second)
	_, err := c.Streamer(context.Background(), "st-404")
	var nf *drepo.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if nf.ID != "st-404" {
		t.Fatalf("expected id st-404, got %q", nf.ID)
	}
}

func TestClientStreamerEmptyBodyIsNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"data":null}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "", time.Second)
	_, err := c.Streamer(context.Background(), "st-001")
	var nf *drepo.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError for empty record, got %v", err)
	}
}

func TestClientServerErrorSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL, "", time.Second)
	if _, err := c.Summary(context.Background(), 7); err == nil {
		t.Fatal("expected error on 500")
	}
}

func TestClientUnwrapsEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"data":[{"id":"st-001","name":"한동숙"}]}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "", time.Second)
	rows, err := c.Streamers(context.Background())
	if err != nil {
		t.Fatalf("Streamers: %v", err)
	}
	if len(rows) != 1 || rows[0].ID != "st-001" {
		t.Fatalf("unexpected rows: %+v", rows)
	}
}
