package metrics

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/bobmcallan/advisor/internal/common"
	"github.com/bobmcallan/advisor/internal/models"
)

// --- Mocks ---

type mockPriceClient struct {
	histories map[string][]models.PriceBar
	err       error
}

func (m *mockPriceClient) History(_ context.Context, ticker, _ string) ([]models.PriceBar, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.histories[ticker], nil
}

func (m *mockPriceClient) News(_ context.Context, _ string, _ int) ([]models.NewsItem, error) {
	return nil, nil
}

func approxEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) < epsilon
}

// flatBars builds n daily bars all closing at the same price.
func flatBars(n int, close float64) []models.PriceBar {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]models.PriceBar, n)
	for i := range bars {
		bars[i] = models.PriceBar{Date: start.AddDate(0, 0, i), Close: close, Volume: 1000}
	}
	return bars
}

// trendBars builds n daily bars rising linearly from start to end.
func trendBars(n int, startClose, endClose float64) []models.PriceBar {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]models.PriceBar, n)
	step := (endClose - startClose) / float64(n-1)
	for i := range bars {
		bars[i] = models.PriceBar{Date: start.AddDate(0, 0, i), Close: startClose + step*float64(i), Volume: 1000}
	}
	return bars
}

func TestCompute_ValuationAndAllocation(t *testing.T) {
	prices := &mockPriceClient{histories: map[string][]models.PriceBar{
		"AAPL": flatBars(10, 200),
		"JNJ":  flatBars(10, 100),
	}}
	svc := NewService(prices, "1y", common.NewSilentLogger())

	portfolio := models.Portfolio{Assets: []models.Asset{
		{Ticker: "AAPL", Quantity: 10}, // 2000
		{Ticker: "JNJ", Quantity: 20},  // 2000
	}}

	m, err := svc.Compute(context.Background(), portfolio)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	if !approxEqual(m.TotalValue, 4000, 0.01) {
		t.Errorf("TotalValue = %.2f, want 4000", m.TotalValue)
	}
	if len(m.Assets) != 2 {
		t.Fatalf("len(Assets) = %d, want 2", len(m.Assets))
	}

	sum := 0.0
	for _, a := range m.Assets {
		sum += a.AllocationPct
	}
	if !approxEqual(sum, 100, 0.001) {
		t.Errorf("allocation sum = %.4f, want 100", sum)
	}

	if m.Assets[0].Category != "Technology" {
		t.Errorf("AAPL category = %q, want Technology", m.Assets[0].Category)
	}
	if m.Assets[1].Category != "Healthcare" {
		t.Errorf("JNJ category = %q, want Healthcare", m.Assets[1].Category)
	}
}

func TestCompute_MissingHistoryExcluded(t *testing.T) {
	prices := &mockPriceClient{histories: map[string][]models.PriceBar{
		"AAPL": flatBars(10, 200),
		// ZZZZINVALID has no history
	}}
	svc := NewService(prices, "1y", common.NewSilentLogger())

	portfolio := models.Portfolio{Assets: []models.Asset{
		{Ticker: "AAPL", Quantity: 5},
		{Ticker: "ZZZZINVALID", Quantity: 100},
	}}

	m, err := svc.Compute(context.Background(), portfolio)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	if len(m.Assets) != 1 {
		t.Fatalf("len(Assets) = %d, want 1", len(m.Assets))
	}
	if m.Assets[0].Ticker != "AAPL" {
		t.Errorf("Assets[0].Ticker = %q, want AAPL", m.Assets[0].Ticker)
	}
	if !approxEqual(m.TotalValue, 1000, 0.01) {
		t.Errorf("TotalValue = %.2f, want 1000", m.TotalValue)
	}
	if !approxEqual(m.Assets[0].AllocationPct, 100, 0.001) {
		t.Errorf("AAPL allocation = %.2f, want 100", m.Assets[0].AllocationPct)
	}

	// Returns require every requested ticker to have history.
	if len(m.Returns) != 0 {
		t.Errorf("Returns = %v, want empty", m.Returns)
	}
}

func TestCompute_ClientError(t *testing.T) {
	prices := &mockPriceClient{err: errors.New("boom")}
	svc := NewService(prices, "1y", common.NewSilentLogger())

	_, err := svc.Compute(context.Background(), models.Portfolio{Assets: []models.Asset{
		{Ticker: "AAPL", Quantity: 1},
	}})
	if err == nil {
		t.Fatal("Compute() error = nil, want error")
	}
}

func TestCompute_ReturnHorizons(t *testing.T) {
	tests := []struct {
		name     string
		bars     int
		wantKeys []string
		skipKeys []string
	}{
		{"short history", 10, []string{"volatility"}, []string{"1m", "3m", "1y"}},
		{"one month", 30, []string{"1m", "volatility"}, []string{"3m", "1y"}},
		{"three months", 90, []string{"1m", "3m", "volatility"}, []string{"1y"}},
		{"full year", 252, []string{"1m", "3m", "1y", "volatility"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prices := &mockPriceClient{histories: map[string][]models.PriceBar{
				"AAPL": trendBars(tt.bars, 100, 150),
			}}
			svc := NewService(prices, "1y", common.NewSilentLogger())

			m, err := svc.Compute(context.Background(), models.Portfolio{Assets: []models.Asset{
				{Ticker: "AAPL", Quantity: 1},
			}})
			if err != nil {
				t.Fatalf("Compute() error = %v", err)
			}

			for _, key := range tt.wantKeys {
				if _, ok := m.Returns[key]; !ok {
					t.Errorf("Returns missing %q", key)
				}
			}
			for _, key := range tt.skipKeys {
				if _, ok := m.Returns[key]; ok {
					t.Errorf("Returns unexpectedly has %q", key)
				}
			}
		})
	}
}

func TestCompute_FullYearReturnValue(t *testing.T) {
	prices := &mockPriceClient{histories: map[string][]models.PriceBar{
		"AAPL": trendBars(252, 100, 150),
	}}
	svc := NewService(prices, "1y", common.NewSilentLogger())

	m, err := svc.Compute(context.Background(), models.Portfolio{Assets: []models.Asset{
		{Ticker: "AAPL", Quantity: 1},
	}})
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	// 1y return measures from 252 observations back, i.e. the first bar.
	if got := m.Returns["1y"]; !approxEqual(got, 50, 0.001) {
		t.Errorf("Returns[1y] = %.4f, want 50", got)
	}
	// Flat trend has nonzero but small daily variation.
	if vol := m.Returns["volatility"]; vol <= 0 {
		t.Errorf("Returns[volatility] = %.4f, want > 0", vol)
	}
}

func TestCompute_CategoryAllocationRollup(t *testing.T) {
	prices := &mockPriceClient{histories: map[string][]models.PriceBar{
		"AAPL": flatBars(10, 100),
		"MSFT": flatBars(10, 100),
		"JPM":  flatBars(10, 200),
	}}
	svc := NewService(prices, "1y", common.NewSilentLogger())

	m, err := svc.Compute(context.Background(), models.Portfolio{Assets: []models.Asset{
		{Ticker: "AAPL", Quantity: 1},
		{Ticker: "MSFT", Quantity: 1},
		{Ticker: "JPM", Quantity: 1},
	}})
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	if len(m.CategoryAllocation) != 2 {
		t.Fatalf("len(CategoryAllocation) = %d, want 2", len(m.CategoryAllocation))
	}
	if m.CategoryAllocation[0].Category != "Technology" || !approxEqual(m.CategoryAllocation[0].AllocationPct, 50, 0.001) {
		t.Errorf("CategoryAllocation[0] = %+v, want Technology 50%%", m.CategoryAllocation[0])
	}
	if m.CategoryAllocation[1].Category != "Finance" || !approxEqual(m.CategoryAllocation[1].AllocationPct, 50, 0.001) {
		t.Errorf("CategoryAllocation[1] = %+v, want Finance 50%%", m.CategoryAllocation[1])
	}
}

func TestLargestHolding(t *testing.T) {
	m := &models.PortfolioMetrics{Assets: []models.ValuedAsset{
		{Ticker: "AAPL", AllocationPct: 30},
		{Ticker: "MSFT", AllocationPct: 45},
		{Ticker: "JNJ", AllocationPct: 25},
	}}
	if got := m.LargestHolding(); got != "MSFT" {
		t.Errorf("LargestHolding() = %q, want MSFT", got)
	}

	empty := &models.PortfolioMetrics{}
	if got := empty.LargestHolding(); got != "" {
		t.Errorf("LargestHolding() on empty = %q, want empty string", got)
	}
}
