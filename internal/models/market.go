package models

import "time"

// PriceBar represents a single day's OHLCV price data, oldest-first in series.
type PriceBar struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// NewsItem is a single news article for a ticker
type NewsItem struct {
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	Source      string    `json:"source"`
	PublishedAt time.Time `json:"published_at"`
	Sentiment   string    `json:"sentiment"` // positive, neutral, negative
}

// MarketAnalysis is the sentiment summary produced for the largest holding.
type MarketAnalysis struct {
	Ticker     string     `json:"ticker"`
	Categories []string   `json:"categories"`
	Summary    string     `json:"summary"`
	News       []NewsItem `json:"news,omitempty"`
}
