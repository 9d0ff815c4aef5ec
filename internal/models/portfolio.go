// Package models defines data structures for Advisor
package models

import "time"

// Asset is a single portfolio position as supplied by the caller.
// Duplicate tickers are not merged; each entry is valued independently.
type Asset struct {
	Ticker   string  `json:"ticker" validate:"required"`
	Quantity float64 `json:"quantity" validate:"required,gt=0"`
}

// Portfolio is an ordered collection of assets. Order does not affect results.
type Portfolio struct {
	ID        string    `json:"id,omitempty"`
	Assets    []Asset   `json:"assets" validate:"required,min=1,dive"`
	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// ValuedAsset is an asset with its resolved price and share of total value.
// Computed fresh per analysis run, never persisted.
type ValuedAsset struct {
	Ticker        string  `json:"ticker"`
	Quantity      float64 `json:"quantity"`
	Price         float64 `json:"price"`
	Value         float64 `json:"value"`
	Category      string  `json:"category"`
	AllocationPct float64 `json:"allocation"`
}

// CategoryAllocation is the portfolio's percentage exposure to one category.
type CategoryAllocation struct {
	Category      string  `json:"category"`
	AllocationPct float64 `json:"allocation"`
}

// PortfolioMetrics aggregates valuations, allocations and historical returns.
/// Returns is sparse: a period key ("1m", "3m", "1y", "volatility") is present
// only when the combined history supports it.
type PortfolioMetrics struct {
	TotalValue         float64              `json:"total_value"`
	Assets             []ValuedAsset        `json:"assets"`
	CategoryAllocation []CategoryAllocation `json:"category_allocation"`
	Returns            map[string]float64   `json:"returns"`
}

// LargestHolding returns the ticker of the asset with the greatest allocation
// percentage, ties broken by encounter order. Empty string when there are no
// resolved assets.
func (m *PortfolioMetrics) LargestHolding() string {
	ticker := ""
	best := -1.0
	for _, a := range m.Assets {
		if a.AllocationPct > best {
			best = a.AllocationPct
			ticker = a.Ticker
		}
	}
	return ticker
}

// Categories returns the distinct category names present in the allocation.
func (m *PortfolioMetrics) Categories() []string {
	out := make([]string, 0, len(m.CategoryAllocation))
	for _, c := range m.CategoryAllocation {
		out = append(out, c.Category)
	}
	return out
}
