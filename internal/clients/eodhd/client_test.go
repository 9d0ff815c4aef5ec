package eodhd

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func fixedClock() time.Time {
	return time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient("test-key",
		WithBaseURL(server.URL),
		WithClock(fixedClock),
	)
}

func TestHistory(t *testing.T) {
	var gotPath string
	var gotQuery map[string][]string

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"date":"2026-03-12","open":100,"high":105,"low":99,"close":104,"volume":12345},
			{"date":"2026-03-13","open":104,"high":108,"low":103,"close":107,"volume":23456}
		]`))
	})

	bars, err := client.History(context.Background(), "AAPL", "1y")
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}

	if gotPath != "/eod/AAPL" {
		t.Errorf("path = %q, want /eod/AAPL", gotPath)
	}
	if got := gotQuery["api_token"]; len(got) != 1 || got[0] != "test-key" {
		t.Errorf("api_token = %v, want test-key", got)
	}
	if got := gotQuery["order"]; len(got) != 1 || got[0] != "a" {
		t.Errorf("order = %v, want a", got)
	}
	// 1y back from the fixed clock.
	if got := gotQuery["from"]; len(got) != 1 || got[0] != "2025-03-15" {
		t.Errorf("from = %v, want 2025-03-15", got)
	}

	if len(bars) != 2 {
		t.Fatalf("len(bars) = %d, want 2", len(bars))
	}
	if !bars[1].Date.After(bars[0].Date) {
		t.Error("bars not in ascending date order")
	}
	if bars[0].Close != 104 || bars[0].Volume != 12345 {
		t.Errorf("bars[0] = %+v, want close 104 volume 12345", bars[0])
	}
}

func TestHistory_UnknownTickerReturnsEmpty(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Symbol not found", http.StatusNotFound)
	})

	bars, err := client.History(context.Background(), "ZZZZINVALID", "1y")
	if err != nil {
		t.Fatalf("History() error = %v, want nil for unknown ticker", err)
	}
	if len(bars) != 0 {
		t.Errorf("len(bars) = %d, want 0", len(bars))
	}
}

func TestHistory_ServerErrorSurfacesAPIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusInternalServerError)
	})

	_, err := client.History(context.Background(), "AAPL", "1y")
	if err == nil {
		t.Fatal("History() error = nil, want APIError")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("StatusCode = %d, want 500", apiErr.StatusCode)
	}
}

func TestHistory_InvalidPeriod(t *testing.T) {
	client := NewClient("test-key", WithClock(fixedClock))

	for _, period := range []string{"", "x", "0d", "-3m", "10q"} {
		if _, err := client.History(context.Background(), "AAPL", period); err == nil {
			t.Errorf("History(period=%q) error = nil, want error", period)
		}
	}
}

func TestPeriodStart(t *testing.T) {
	ref := fixedClock()
	tests := []struct {
		period string
		want   time.Time
	}{
		{"30d", time.Date(2026, 2, 13, 12, 0, 0, 0, time.UTC)},
		{"6m", time.Date(2025, 9, 15, 12, 0, 0, 0, time.UTC)},
		{"2y", time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)},
		{"1Y", time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)}, // case-insensitive
	}
	for _, tt := range tests {
		got, err := periodStart(ref, tt.period)
		if err != nil {
			t.Errorf("periodStart(%q) error = %v", tt.period, err)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("periodStart(%q) = %v, want %v", tt.period, got, tt.want)
		}
	}
}

func TestNews(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("s"); got != "AAPL" {
			t.Errorf("s = %q, want AAPL", got)
		}
		if got := r.URL.Query().Get("limit"); got != "5" {
			t.Errorf("limit = %q, want 5", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"date":"2026-03-14T09:30:00+00:00","title":"Strong quarter","link":"https://example.com/1","source":"wire","sentiment":{"polarity":0.8}},
			{"date":"2026-03-13T15:00:00+00:00","title":"Supply concerns","link":"https://example.com/2","source":"wire","sentiment":{"polarity":-0.7}},
			{"date":"2026-03-12T10:00:00+00:00","title":"Product event","link":"https://example.com/3","source":"wire","sentiment":{"polarity":0.1}}
		]`))
	})

	news, err := client.News(context.Background(), "AAPL", 5)
	if err != nil {
		t.Fatalf("News() error = %v", err)
	}
	if len(news) != 3 {
		t.Fatalf("len(news) = %d, want 3", len(news))
	}

	wantSentiments := []string{"positive", "negative", "neutral"}
	for i, want := range wantSentiments {
		if news[i].Sentiment != want {
			t.Errorf("news[%d].Sentiment = %q, want %q", i, news[i].Sentiment, want)
		}
	}
	if news[0].Title != "Strong quarter" || news[0].URL != "https://example.com/1" {
		t.Errorf("news[0] = %+v", news[0])
	}
	if news[0].PublishedAt.IsZero() {
		t.Error("news[0].PublishedAt not parsed")
	}
}
