package forecast

import (
	"math"
	"testing"
)

// stepData builds a dataset whose target depends only on the first feature:
// values below 0.5 map to 10, the rest to 20.
func stepData(n int) ([][]float64, []float64) {
	rows := make([][]float64, n)
	targets := make([]float64, n)
	for i := 0; i < n; i++ {
		x := float64(i) / float64(n-1)
		row := make([]float64, numFeatures)
		row[0] = x
		rows[i] = row
		if x < 0.5 {
			targets[i] = 10
		} else {
			targets[i] = 20
		}
	}
	return rows, targets
}

func TestFitGBT_LearnsStepFunction(t *testing.T) {
	rows, targets := stepData(100)
	model := fitGBT(rows, targets, defaultGBTParams())

	low := make([]float64, numFeatures)
	low[0] = 0.1
	high := make([]float64, numFeatures)
	high[0] = 0.9

	if got := model.Predict(low); math.Abs(got-10) > 0.5 {
		t.Errorf("Predict(low) = %.3f, want ~10", got)
	}
	if got := model.Predict(high); math.Abs(got-20) > 0.5 {
		t.Errorf("Predict(high) = %.3f, want ~20", got)
	}
}

func TestFitGBT_ConstantTarget(t *testing.T) {
	rows, _ := stepData(50)
	targets := make([]float64, 50)
	for i := range targets {
		targets[i] = 42
	}

	model := fitGBT(rows, targets, defaultGBTParams())
	probe := make([]float64, numFeatures)
	probe[0] = 0.3

	if got := model.Predict(probe); math.Abs(got-42) > 1e-6 {
		t.Errorf("Predict() = %.6f, want 42", got)
	}
}

func TestFitGBT_Deterministic(t *testing.T) {
	rows, targets := stepData(80)

	a := fitGBT(rows, targets, defaultGBTParams())
	b := fitGBT(rows, targets, defaultGBTParams())

	probe := make([]float64, numFeatures)
	for _, x := range []float64{0.05, 0.25, 0.49, 0.51, 0.75, 0.95} {
		probe[0] = x
		if a.Predict(probe) != b.Predict(probe) {
			t.Fatalf("predictions differ at x=%.2f: %.9f vs %.9f", x, a.Predict(probe), b.Predict(probe))
		}
	}
}

func TestFitGBT_DepthLimit(t *testing.T) {
	rows, targets := stepData(60)
	params := defaultGBTParams()
	params.MaxDepth = 0

	// Zero depth means every tree is a single leaf fitting the mean
	// residual, so the ensemble converges towards the target mean.
	model := fitGBT(rows, targets, params)
	probe := make([]float64, numFeatures)
	probe[0] = 0.1

	want := mean(targets)
	if got := model.Predict(probe); math.Abs(got-want) > 1.0 {
		t.Errorf("Predict() = %.3f, want ~%.3f", got, want)
	}
}
