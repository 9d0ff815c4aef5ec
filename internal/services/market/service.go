// Package market summarizes recent market sentiment for a holding from news
// headlines.
package market

import (
	"context"
	"fmt"
	"strings"

	"github.com/bobmcallan/advisor/internal/common"
	"github.com/bobmcallan/advisor/internal/interfaces"
	"github.com/bobmcallan/advisor/internal/models"
)

const newsLimit = 10

// Service implements MarketAnalysisService
type Service struct {
	prices  interfaces.PriceHistoryClient
	textgen interfaces.TextGenClient
	logger  *common.Logger
}

// NewService creates a new market analysis service
func NewService(prices interfaces.PriceHistoryClient, textgen interfaces.TextGenClient, logger *common.Logger) *Service {
	return &Service{prices: prices, textgen: textgen, logger: logger}
}

// Analyze fetches recent news for the ticker and asks the text-generation
// capability for a sentiment summary in the context of the portfolio's
// categories. News failures degrade to a summary without headlines rather
// than failing the analysis.
func (s *Service) Analyze(ctx context.Context, ticker string, categories []string) (*models.MarketAnalysis, error) {
	news, err := s.prices.News(ctx, ticker, newsLimit)
	if err != nil {
		s.logger.Warn().Err(err).Str("ticker", ticker).Msg("News fetch failed, summarizing without headlines")
		news = nil
	}

	summary, err := s.textgen.GenerateContent(ctx, buildPrompt(ticker, categories, news))
	if err != nil {
		return nil, fmt.Errorf("market summary for %s: %w", ticker, err)
	}

	return &models.MarketAnalysis{
		Ticker:     ticker,
		Categories: categories,
		Summary:    strings.TrimSpace(summary),
		News:       news,
	}, nil
}

func buildPrompt(ticker string, categories []string, news []models.NewsItem) string {
	var b strings.Builder
	fmt.Fprintf(&b, "As a market analyst, summarize the current market outlook for %s", ticker)
	if len(categories) > 0 {
		fmt.Fprintf(&b, " and the portfolio's sectors (%s)", strings.Join(categories, ", "))
	}
	b.WriteString(".\n\n")

	if len(news) > 0 {
		b.WriteString("Recent headlines:\n")
		for _, item := range news {
			fmt.Fprintf(&b, "- [%s] %s (%s)\n", item.Sentiment, item.Title, item.Source)
		}
		b.WriteString("\n")
	}

	b.WriteString("Provide a concise summary (3-5 sentences) covering overall sentiment, notable risks and anything an investor holding this position should watch.")
	return b.String()
}

// Ensure Service implements MarketAnalysisService
var _ interfaces.MarketAnalysisService = (*Service)(nil)
