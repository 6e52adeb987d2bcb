package stats

import (
	"errors"
	"math"
)

// ErrUndefinedStatistic is returned when min, mean or max is read from an
// accumulator that has not observed any samples.
var ErrUndefinedStatistic = errors.New("statistic undefined: no samples observed")

// Accumulator tracks count, min, mean and max over a stream of samples
// without retaining them. The zero value is ready to use.
type Accumulator struct {
	count int
	mean  float64
	min   float64
	max   float64
}

// Observe folds v into the running statistics. A NaN sample is counted and
// makes min, mean and max NaN until Reset.
func (a *Accumulator) Observe(v float64) {
	a.count++
	if a.count == 1 {
		a.mean, a.min, a.max = v, v, v
		return
	}
	a.mean += (v - a.mean) / float64(a.count)
	a.min = math.Min(a.min, v)
	a.max = math.Max(a.max, v)
}

// Count returns the number of observed samples.
func (a *Accumulator) Count() int {
	return a.count
}

// Mean returns the arithmetic mean of the observed samples.
func (a *Accumulator) Mean() (float64, error) {
	if a.count == 0 {
		return 0, ErrUndefinedStatistic
	}
	return a.mean, nil
}

// Min returns the smallest observed sample.
func (a *Accumulator) Min() (float64, error) {
	if a.count == 0 {
		return 0, ErrUndefinedStatistic
	}
	return a.min, nil
}

// Max returns the largest observed sample.
func (a *Accumulator) Max() (float64, error) {
	if a.count == 0 {
		return 0, ErrUndefinedStatistic
	}
	return a.max, nil
}

// Reset discards all observed samples.
func (a *Accumulator) Reset() {
	*a = Accumulator{}
}

// Summary is a snapshot of an accumulator. Statistics that are undefined
// because no samples were observed are NaN.
type Summary struct {
	Count int
	Min   float64
	Mean  float64
	Max   float64
}

// Empty reports whether the summary was taken over zero samples.
func (s Summary) Empty() bool {
	return s.Count == 0
}

// Summary returns the current statistics, substituting NaN for undefined values.
func (a *Accumulator) Summary() Summary {
	if a.count == 0 {
		nan := math.NaN()
		return Summary{Min: nan, Mean: nan, Max: nan}
	}
	return Summary{Count: a.count, Min: a.min, Mean: a.mean, Max: a.max}
}
