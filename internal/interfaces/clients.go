// Package interfaces defines service contracts for Advisor
package interfaces

import (
	"context"

	"github.com/bobmcallan/advisor/internal/models"
)

// PriceHistoryClient provides daily OHLCV history for tickers.
type PriceHistoryClient interface {
	// History returns chronologically ordered daily bars covering the
	// lookback period (e.g. "1y", "2y"). Unknown tickers yield an empty
	// slice, not an error.
	History(ctx context.Context, ticker, period string) ([]models.PriceBar, error)

	// News retrieves recent news items for a ticker
	News(ctx context.Context, ticker string, limit int) ([]models.NewsItem, error)
}

// TextGenClient provides access to a text-generation capability. Callers must
// treat unparseable output as a normal, handled outcome.
type TextGenClient interface {
	// GenerateContent generates free text from a prompt
	GenerateContent(ctx context.Context, prompt string) (string, error)
}
