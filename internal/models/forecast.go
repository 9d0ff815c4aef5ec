package models

import "time"

// ForecastPoint is one predicted close for a future day.
type ForecastPoint struct {
	Date  time.Time `json:"date"`
	Close float64   `json:"close"`
}

// ForecastMetrics summarizes model accuracy and the forecast endpoints.
type ForecastMetrics struct {
	MAE             float64 `json:"mae"`
	LastActualClose float64 `json:"last_actual_close"`
	ForecastEnd     float64 `json:"forecast_end_price"`
	PercentChange   float64 `json:"percent_change"`
}

// ForecastResult is a multi-day recursive price forecast for one ticker.
type ForecastResult struct {
	Ticker      string          `json:"ticker"`
	HorizonDays int             `json:"forecast_days"`
	Metrics     ForecastMetrics `json:"metrics"`
	Series      []ForecastPoint `json:"forecast_data"`
}

// ComparativeForecast holds a target forecast alongside benchmark forecasts
// and the Pearson correlation of their day-over-day forecast changes.
type ComparativeForecast struct {
	Ticker       string                     `json:"ticker"`
	HorizonDays  int                        `json:"forecast_days"`
	Target       *ForecastResult            `json:"target"`
	Benchmarks   map[string]*ForecastResult `json:"benchmarks"`
	Correlations map[string]float64         `json:"correlations"`
}
