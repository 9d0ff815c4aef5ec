package forecast

import (
	"math"
	"time"

	talib "github.com/markcheno/go-talib"
	"gonum.org/v1/gonum/stat"

	"github.com/bobmcallan/advisor/internal/models"
)

// Feature vector layout. The regression target is the next day's close.
const (
	featReturn = iota
	featMA5
	featMA20
	featMA50
	featVolatility
	featRSI
	featVolume
	numFeatures
)

const (
	maShortWindow  = 5
	maMediumWindow = 20
	maLongWindow   = 50
	volWindow      = 20
	rsiWindow      = 14
)

// featureFrame holds engineered rows plus the trailing context the recursive
// forecaster needs to roll features forward.
type featureFrame struct {
	rows    [][]float64 // one vector per usable day
	targets []float64   // next day's close

	closes     []float64   // closes aligned with rows (close of the row's day)
	dates      []time.Time // dates aligned with rows
	lastVol    float64     // volatility at the last usable row
	lastRSI    float64     // RSI at the last usable row
	meanVolume float64     // mean volume over the full history
}

// lastClose returns the close of the last engineered row.
func (f *featureFrame) lastClose() float64 {
	return f.closes[len(f.closes)-1]
}

// lastDate returns the date of the last engineered row.
func (f *featureFrame) lastDate() time.Time {
	return f.dates[len(f.dates)-1]
}

// lastRow returns a copy of the last feature vector.
func (f *featureFrame) lastRow() []float64 {
	row := make([]float64, numFeatures)
	copy(row, f.rows[len(f.rows)-1])
	return row
}

// engineerFeatures builds daily return, moving average, rolling volatility
// and RSI features from a price history. Rows whose rolling windows are
// incomplete (or whose target is unknown) are dropped. Returns nil when no
// usable rows remain.
func engineerFeatures(bars []models.PriceBar) *featureFrame {
	n := len(bars)
	if n < 2 {
		return nil
	}

	closes := make([]float64, n)
	volumes := make([]float64, n)
	for i, b := range bars {
		closes[i] = b.Close
		volumes[i] = float64(b.Volume)
	}

	rets := dailyReturns(closes)
	ma5 := talib.Sma(closes, maShortWindow)
	ma20 := talib.Sma(closes, maMediumWindow)
	ma50 := talib.Sma(closes, maLongWindow)
	vol := rollingStd(rets, volWindow)
	rsi, rsiValid := simpleRSI(closes, rsiWindow)

	// First index with every rolling window complete. The long MA dominates
	// in practice but volatility needs one extra day for the first return.
	first := maLongWindow - 1
	if v := volWindow; v > first {
		first = v
	}

	frame := &featureFrame{meanVolume: stat.Mean(volumes, nil)}

	// Last row is dropped: its target (next day's close) is unknown.
	for i := first; i < n-1; i++ {
		if !rsiValid[i] {
			continue
		}
		row := make([]float64, numFeatures)
		row[featReturn] = rets[i]
		row[featMA5] = ma5[i]
		row[featMA20] = ma20[i]
		row[featMA50] = ma50[i]
		row[featVolatility] = vol[i]
		row[featRSI] = rsi[i]
		row[featVolume] = volumes[i]

		frame.rows = append(frame.rows, row)
		frame.targets = append(frame.targets, closes[i+1])
		frame.closes = append(frame.closes, closes[i])
		frame.dates = append(frame.dates, bars[i].Date)
	}

	if len(frame.rows) == 0 {
		return nil
	}

	last := frame.rows[len(frame.rows)-1]
	frame.lastVol = last[featVolatility]
	frame.lastRSI = last[featRSI]

	return frame
}

// dailyReturns computes day-over-day percentage change; index 0 is unused.
func dailyReturns(closes []float64) []float64 {
	rets := make([]float64, len(closes))
	for i := 1; i < len(closes); i++ {
		if closes[i-1] != 0 {
			rets[i] = closes[i]/closes[i-1] - 1
		}
	}
	return rets
}

// rollingStd computes the trailing sample standard deviation of returns over
// the window. Entries before the first complete window are zero; they fall
// before the frame's first usable row and are never read.
func rollingStd(rets []float64, window int) []float64 {
	out := make([]float64, len(rets))
	// Returns start at index 1, so the first complete window ends at window.
	for i := window; i < len(rets); i++ {
		out[i] = stat.StdDev(rets[i-window+1:i+1], nil)
	}
	return out
}

// simpleRSI computes RSI from rolling simple means of gains and losses:
// RSI = 100 - 100/(1+RS) with RS = mean(gains)/mean(losses). When the
// window has no losses RSI saturates at 100; a window with neither gains
// nor losses has no defined RSI and the row is dropped.
func simpleRSI(closes []float64, window int) ([]float64, []bool) {
	n := len(closes)
	gains := make([]float64, n)
	losses := make([]float64, n)
	for i := 1; i < n; i++ {
		delta := closes[i] - closes[i-1]
		if delta > 0 {
			gains[i] = delta
		} else {
			losses[i] = -delta
		}
	}

	rsi := make([]float64, n)
	valid := make([]bool, n)
	for i := window; i < n; i++ {
		avgGain := stat.Mean(gains[i-window+1:i+1], nil)
		avgLoss := stat.Mean(losses[i-window+1:i+1], nil)

		switch {
		case avgLoss == 0 && avgGain == 0:
			// flat window, undefined RS
		case avgLoss == 0:
			rsi[i] = 100
			valid[i] = true
		default:
			rs := avgGain / avgLoss
			rsi[i] = 100 - 100/(1+rs)
			valid[i] = true
		}
	}
	return rsi, valid
}

// blendedMA computes a k-length moving average mixing the most recent
// forecast points with trailing real history: min(len(forecast), k) forecast
// points fill the window from the newest side, real closes fill the rest.
func blendedMA(hist, forecasted []float64, k int) float64 {
	sum := 0.0
	m := len(forecasted)
	if m > k {
		m = k
	}
	for _, v := range forecasted[len(forecasted)-m:] {
		sum += v
	}
	h := k - m
	if h > len(hist) {
		h = len(hist)
	}
	for _, v := range hist[len(hist)-h:] {
		sum += v
	}
	return sum / float64(m+h)
}

// mae computes mean absolute error
func mae(predicted, actual []float64) float64 {
	if len(predicted) == 0 {
		return 0
	}
	sum := 0.0
	for i := range predicted {
		sum += math.Abs(predicted[i] - actual[i])
	}
	return sum / float64(len(predicted))
}
