// Package metrics implements the portfolio metrics engine: valuation,
// allocation, category rollups and historical returns.
package metrics

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/bobmcallan/advisor/internal/common"
	"github.com/bobmcallan/advisor/internal/interfaces"
	"github.com/bobmcallan/advisor/internal/models"
	"github.com/bobmcallan/advisor/internal/services/risk"
)

const (
	tradingDaysPerYear = 252

	// Minimum observations for each return horizon
	minObs1M = 30
	minObs3M = 90
	minObs1Y = 252
)

// Service implements MetricsService
type Service struct {
	prices interfaces.PriceHistoryClient
	period string
	logger *common.Logger
}

// NewService creates a new metrics service. Period is the price history
// lookback used for valuation (e.g. "1y").
func NewService(prices interfaces.PriceHistoryClient, period string, logger *common.Logger) *Service {
	if period == "" {
		period = "1y"
	}
	return &Service{
		prices: prices,
		period: period,
		logger: logger,
	}
}

// Compute values each asset at its latest close and derives allocations,
// category rollups and historical returns. Assets whose history is missing
// or empty are silently excluded from valuation.
func (s *Service) Compute(ctx context.Context, portfolio models.Portfolio) (*models.PortfolioMetrics, error) {
	histories := make(map[string][]models.PriceBar, len(portfolio.Assets))
	for _, asset := range portfolio.Assets {
		if _, ok := histories[asset.Ticker]; ok {
			continue
		}
		bars, err := s.prices.History(ctx, asset.Ticker, s.period)
		if err != nil {
			return nil, fmt.Errorf("fetch history for %s: %w", asset.Ticker, err)
		}
		histories[asset.Ticker] = bars
	}

	totalValue := 0.0
	valued := make([]models.ValuedAsset, 0, len(portfolio.Assets))

	for _, asset := range portfolio.Assets {
		bars := histories[asset.Ticker]
		if len(bars) == 0 {
			s.logger.Debug().Str("ticker", asset.Ticker).Msg("No price history, excluding from valuation")
			continue
		}

		price := bars[len(bars)-1].Close
		value := price * asset.Quantity
		totalValue += value

		valued = append(valued, models.ValuedAsset{
			Ticker:   asset.Ticker,
			Quantity: asset.Quantity,
			Price:    price,
			Value:    value,
			Category: risk.CategoryFor(asset.Ticker),
		})
	}

	for i := range valued {
		if totalValue > 0 {
			valued[i].AllocationPct = valued[i].Value / totalValue * 100
		}
	}

	return &models.PortfolioMetrics{
		TotalValue:         totalValue,
		Assets:             valued,
		CategoryAllocation: categoryAllocations(valued),
		Returns:            s.computeReturns(portfolio.Assets, histories),
	}, nil
}

// categoryAllocations sums allocation percentages per category, preserving
// first-seen category order.
func categoryAllocations(assets []models.ValuedAsset) []models.CategoryAllocation {
	totals := make(map[string]float64)
	order := make([]string, 0)

	for _, a := range assets {
		if _, seen := totals[a.Category]; !seen {
			order = append(order, a.Category)
		}
		totals[a.Category] += a.AllocationPct
	}

	out := make([]models.CategoryAllocation, 0, len(order))
	for _, cat := range order {
		out = append(out, models.CategoryAllocation{Category: cat, AllocationPct: totals[cat]})
	}
	return out
}

// computeReturns builds the combined portfolio value series and derives
// horizon returns and annualized volatility. The series is built only when
// every requested ticker has non-empty history.
func (s *Service) computeReturns(assets []models.Asset, histories map[string][]models.PriceBar) map[string]float64 {
	returns := make(map[string]float64)

	for _, asset := range assets {
		if len(histories[asset.Ticker]) == 0 {
			return returns
		}
	}

	total := combinedSeries(assets, histories)
	if len(total) == 0 {
		return returns
	}

	latest := total[len(total)-1]

	if len(total) >= minObs1M {
		returns["1m"] = (latest/total[len(total)-minObs1M] - 1) * 100
	}
	if len(total) >= minObs3M {
		returns["3m"] = (latest/total[len(total)-minObs3M] - 1) * 100
	}
	if len(total) >= minObs1Y {
		returns["1y"] = (latest/total[len(total)-minObs1Y] - 1) * 100
	}

	if len(total) > 1 {
		daily := make([]float64, 0, len(total)-1)
		for i := 1; i < len(total); i++ {
			daily = append(daily, total[i]/total[i-1]-1)
		}
		returns["volatility"] = stat.StdDev(daily, nil) * math.Sqrt(tradingDaysPerYear) * 100
	}

	return returns
}

// combinedSeries sums per-asset value series (close * quantity) into one
// date-ordered total series. Dates missing from an asset's history simply
// contribute nothing for that asset on that day.
func combinedSeries(assets []models.Asset, histories map[string][]models.PriceBar) []float64 {
	byDate := make(map[time.Time]float64)

	for _, asset := range assets {
		for _, bar := range histories[asset.Ticker] {
			byDate[bar.Date] = byDate[bar.Date] + bar.Close*asset.Quantity
		}
	}

	dates := make([]time.Time, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	total := make([]float64, len(dates))
	for i, d := range dates {
		total[i] = byDate[d]
	}
	return total
}

// Ensure Service implements MetricsService
var _ interfaces.MetricsService = (*Service)(nil)
