// Package forecast implements the recursive price forecasting engine: a
// gradient-boosted tree regressor over engineered technical features, plus
// comparative forecasting against benchmark indices.
package forecast

import (
	"context"
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/bobmcallan/advisor/internal/common"
	"github.com/bobmcallan/advisor/internal/interfaces"
	"github.com/bobmcallan/advisor/internal/models"
)

// Forecast data failures. Both terminate the forecast outright; there is no
// partial result.
var (
	ErrNoHistory           = errors.New("no price history")
	ErrInsufficientHistory = errors.New("insufficient history for feature engineering")
)

// minTrainRows keeps both sides of the 80/20 chronological split non-empty.
const minTrainRows = 10

// DefaultBenchmarks are the comparative-mode index tickers.
var DefaultBenchmarks = []string{"SPY", "QQQ"}

// Service implements ForecastService
type Service struct {
	prices     interfaces.PriceHistoryClient
	period     string
	benchmarks []string
	params     gbtParams
	logger     *common.Logger
}

// NewService creates a new forecast service. Period is the price history
// lookback used for training (e.g. "2y").
func NewService(prices interfaces.PriceHistoryClient, period string, benchmarks []string, logger *common.Logger) *Service {
	if period == "" {
		period = "2y"
	}
	if len(benchmarks) == 0 {
		benchmarks = DefaultBenchmarks
	}
	return &Service{
		prices:     prices,
		period:     period,
		benchmarks: benchmarks,
		params:     defaultGBTParams(),
		logger:     logger,
	}
}

// Forecast trains on the ticker's history and recursively predicts
// horizonDays future closes, one per future day with strictly increasing
// dates.
func (s *Service) Forecast(ctx context.Context, ticker string, horizonDays int) (*models.ForecastResult, error) {
	if horizonDays <= 0 {
		return nil, fmt.Errorf("forecast horizon must be positive, got %d", horizonDays)
	}

	bars, err := s.prices.History(ctx, ticker, s.period)
	if err != nil {
		return nil, fmt.Errorf("fetch history for %s: %w", ticker, err)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("%w for %s", ErrNoHistory, ticker)
	}

	frame := engineerFeatures(bars)
	if frame == nil || len(frame.rows) < minTrainRows {
		return nil, fmt.Errorf("%w for %s", ErrInsufficientHistory, ticker)
	}

	model, accuracy := s.trainAndValidate(frame)

	series := s.recursiveForecast(model, frame, horizonDays)
	end := series[len(series)-1].Close
	lastClose := frame.lastClose()

	s.logger.Debug().
		Str("ticker", ticker).
		Int("horizon", horizonDays).
		Float64("mae", accuracy).
		Msg("Forecast complete")

	return &models.ForecastResult{
		Ticker:      ticker,
		HorizonDays: horizonDays,
		Metrics: models.ForecastMetrics{
			MAE:             accuracy,
			LastActualClose: lastClose,
			ForecastEnd:     end,
			PercentChange:   (end/lastClose - 1) * 100,
		},
		Series: series,
	}, nil
}

// trainAndValidate fits the regressor on the first 80% of rows in time order
// and reports mean absolute error on the held-out 20%. No shuffling: the
// frame is a time series.
func (s *Service) trainAndValidate(frame *featureFrame) (*gbtRegressor, float64) {
	split := int(float64(len(frame.rows)) * 0.8)

	model := fitGBT(frame.rows[:split], frame.targets[:split], s.params)

	predicted := make([]float64, len(frame.rows)-split)
	for i, row := range frame.rows[split:] {
		predicted[i] = model.Predict(row)
	}

	return model, mae(predicted, frame.targets[split:])
}

// recursiveForecast predicts one step at a time, rolling the feature vector
// forward with each predicted close. Moving averages blend forecast points
// with trailing real history; volatility and RSI are held at their last
// observed values and volume at its trailing mean.
func (s *Service) recursiveForecast(model *gbtRegressor, frame *featureFrame, horizonDays int) []models.ForecastPoint {
	row := frame.lastRow()
	prevClose := frame.lastClose()
	lastDate := frame.lastDate()

	forecasted := make([]float64, 0, horizonDays)
	series := make([]models.ForecastPoint, 0, horizonDays)

	for i := 0; i < horizonDays; i++ {
		next := model.Predict(row)
		forecasted = append(forecasted, next)
		series = append(series, models.ForecastPoint{
			Date:  lastDate.AddDate(0, 0, i+1),
			Close: next,
		})

		row[featReturn] = 0
		if prevClose != 0 {
			row[featReturn] = next/prevClose - 1
		}
		row[featMA5] = blendedMA(frame.closes, forecasted, maShortWindow)
		row[featMA20] = blendedMA(frame.closes, forecasted, maMediumWindow)
		row[featMA50] = blendedMA(frame.closes, forecasted, maLongWindow)
		row[featVolatility] = frame.lastVol
		row[featRSI] = frame.lastRSI
		row[featVolume] = frame.meanVolume

		prevClose = next
	}

	return series
}

// Compare forecasts the target ticker and each benchmark index
// independently, then correlates the target's day-over-day forecast changes
// with each benchmark's.
func (s *Service) Compare(ctx context.Context, ticker string, horizonDays int) (*models.ComparativeForecast, error) {
	target, err := s.Forecast(ctx, ticker, horizonDays)
	if err != nil {
		return nil, err
	}

	benchmarks := make(map[string]*models.ForecastResult, len(s.benchmarks))
	correlations := make(map[string]float64, len(s.benchmarks))

	targetChanges := dayOverDayChanges(target.Series)

	for _, index := range s.benchmarks {
		result, err := s.Forecast(ctx, index, horizonDays)
		if err != nil {
			return nil, fmt.Errorf("benchmark %s: %w", index, err)
		}
		benchmarks[index] = result

		// Zero-variance change series make the correlation undefined;
		// report no correlation rather than NaN.
		corr := stat.Correlation(targetChanges, dayOverDayChanges(result.Series), nil)
		if math.IsNaN(corr) {
			corr = 0
		}
		correlations[index] = corr
	}

	return &models.ComparativeForecast{
		Ticker:       ticker,
		HorizonDays:  horizonDays,
		Target:       target,
		Benchmarks:   benchmarks,
		Correlations: correlations,
	}, nil
}

// dayOverDayChanges returns the percent change between consecutive forecast
// points.
func dayOverDayChanges(series []models.ForecastPoint) []float64 {
	changes := make([]float64, 0, len(series)-1)
	for i := 1; i < len(series); i++ {
		changes = append(changes, series[i].Close/series[i-1].Close-1)
	}
	return changes
}

// Normalize rebases a forecast series to percent change from its first
// point, the form used for cross-ticker comparison.
func Normalize(series []models.ForecastPoint) []float64 {
	if len(series) == 0 {
		return nil
	}
	start := series[0].Close
	out := make([]float64, len(series))
	for i, p := range series {
		out[i] = (p.Close/start - 1) * 100
	}
	return out
}

// Ensure Service implements ForecastService
var _ interfaces.ForecastService = (*Service)(nil)
