package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func batchMean(xs []float64) float64 {
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func TestAccumulator_MatchesBatch(t *testing.T) {
	tests := []struct {
		name    string
		samples []float64
		min     float64
		max     float64
	}{
		{"single", []float64{4.5}, 4.5, 4.5},
		{"ascending", []float64{1, 2, 3, 4, 5}, 1, 5},
		{"descending", []float64{5, 4, 3, 2, 1}, 1, 5},
		{"negative", []float64{-3, 7, -11, 0.5}, -11, 7},
		{"repeated", []float64{2, 2, 2, 2}, 2, 2},
		{"wide range", []float64{1e-9, 1e9, 3, -1e6}, -1e6, 1e9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a Accumulator
			for _, s := range tt.samples {
				a.Observe(s)
			}

			assert.Equal(t, len(tt.samples), a.Count())

			mean, err := a.Mean()
			require.NoError(t, err)
			assert.InDelta(t, batchMean(tt.samples), mean, 1e-9*math.Max(1, math.Abs(mean)))

			lo, err := a.Min()
			require.NoError(t, err)
			assert.Equal(t, tt.min, lo)

			hi, err := a.Max()
			require.NoError(t, err)
			assert.Equal(t, tt.max, hi)
		})
	}
}

func TestAccumulator_LongStreamMean(t *testing.T) {
	var a Accumulator
	xs := make([]float64, 0, 100_000)
	for i := range 100_000 {
		x := float64(i%977) * 0.1
		xs = append(xs, x)
		a.Observe(x)
	}

	mean, err := a.Mean()
	require.NoError(t, err)
	assert.InDelta(t, batchMean(xs), mean, 1e-9)
}

func TestAccumulator_EmptyIsUndefined(t *testing.T) {
	var a Accumulator

	assert.Equal(t, 0, a.Count())

	_, err := a.Mean()
	assert.ErrorIs(t, err, ErrUndefinedStatistic)
	_, err = a.Min()
	assert.ErrorIs(t, err, ErrUndefinedStatistic)
	_, err = a.Max()
	assert.ErrorIs(t, err, ErrUndefinedStatistic)
}

func TestAccumulator_Reset(t *testing.T) {
	var a Accumulator
	a.Observe(10)
	a.Observe(20)
	a.Reset()

	assert.Equal(t, 0, a.Count())
	_, err := a.Mean()
	assert.ErrorIs(t, err, ErrUndefinedStatistic)

	a.Observe(-1)
	lo, err := a.Min()
	require.NoError(t, err)
	assert.Equal(t, -1.0, lo)
}

func TestAccumulator_NaNPropagates(t *testing.T) {
	tests := []struct {
		name    string
		samples []float64
	}{
		{"first", []float64{math.NaN(), 1, 2}},
		{"middle", []float64{1, math.NaN(), 2}},
		{"last", []float64{1, 2, math.NaN()}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a Accumulator
			for _, s := range tt.samples {
				a.Observe(s)
			}
			s := a.Summary()
			assert.Equal(t, 3, s.Count)
			assert.True(t, math.IsNaN(s.Min), "min = %v", s.Min)
			assert.True(t, math.IsNaN(s.Mean), "mean = %v", s.Mean)
			assert.True(t, math.IsNaN(s.Max), "max = %v", s.Max)

			a.Reset()
			a.Observe(4)
			assert.Equal(t, Summary{Count: 1, Min: 4, Mean: 4, Max: 4}, a.Summary())
		})
	}
}

func TestSummary_EmptyUsesNaN(t *testing.T) {
	var a Accumulator
	s := a.Summary()

	assert.True(t, s.Empty())
	assert.True(t, math.IsNaN(s.Min))
	assert.True(t, math.IsNaN(s.Mean))
	assert.True(t, math.IsNaN(s.Max))
}

func TestSummary_Values(t *testing.T) {
	var a Accumulator
	for _, v := range []float64{1, 2, 3} {
		a.Observe(v)
	}
	s := a.Summary()

	assert.False(t, s.Empty())
	assert.Equal(t, Summary{Count: 3, Min: 1, Mean: 2, Max: 3}, s)
}
