// Statistical accumulators updated by the Queue at state-transition points.
// The queue does not define aggregation math beyond these two contracts; the
// default implementations below are what NewQueue installs, and callers may
// inject their own.

package sim

import (
	"math"

	"github.com/sirupsen/logrus"
)

// TimeWeightedIfc is the length-over-time accumulator contract. The queue
// calls Increment on every enqueue and Decrement on every removal, each
// stamped with the current simulation time.
type TimeWeightedIfc interface {
	Increment(now float64)
	Decrement(now float64)
	Reset(now float64)
}

// ObservationIfc is the wait-time accumulator contract. The queue calls
// Record once per statistically counted removal with the observed wait.
type ObservationIfc interface {
	Record(x float64)
	Reset()
}

// TimeWeighted tracks an integer-valued level over time (e.g. queue length)
// and accumulates the time integral needed for the time-average.
type TimeWeighted struct {
	value      float64
	maxValue   float64
	area       float64 // integral of value over [startTime, lastChange]
	startTime  float64
	lastChange float64
}

// NewTimeWeighted creates an accumulator starting at level 0 at the given time.
func NewTimeWeighted(now float64) *TimeWeighted {
	return &TimeWeighted{startTime: now, lastChange: now}
}

// Increment raises the level by one at the given time.
func (tw *TimeWeighted) Increment(now float64) {
	tw.advance(now)
	tw.value++
	if tw.value > tw.maxValue {
		tw.maxValue = tw.value
	}
}

// Decrement lowers the level by one at the given time. A level below zero
// means the caller's increment/decrement bookkeeping is corrupted.
func (tw *TimeWeighted) Decrement(now float64) {
	tw.advance(now)
	tw.value--
	if tw.value < 0 {
		logrus.Panicf("TimeWeighted: level decremented below zero at time %f", now)
	}
}

// Value returns the current level.
func (tw *TimeWeighted) Value() float64 { return tw.value }

// Max returns the highest level observed since the last reset.
func (tw *TimeWeighted) Max() float64 { return tw.maxValue }

// Mean returns the time-average level over [start, now].
// Returns 0 if no time has elapsed.
func (tw *TimeWeighted) Mean(now float64) float64 {
	elapsed := now - tw.startTime
	if elapsed <= 0 {
		return 0
	}
	return (tw.area + tw.value*(now-tw.lastChange)) / elapsed
}

// Reset zeroes the level and the accumulated integral at the given time.
func (tw *TimeWeighted) Reset(now float64) {
	tw.value = 0
	tw.maxValue = 0
	tw.area = 0
	tw.startTime = now
	tw.lastChange = now
}

func (tw *TimeWeighted) advance(now float64) {
	tw.area += tw.value * (now - tw.lastChange)
	tw.lastChange = now
}

// Statistic accumulates observations with Welford's recurrence for a
// numerically stable running mean and variance, and retains the raw
// observations for quantile reporting.
type Statistic struct {
	count    int
	mean     float64
	m2       float64
	minValue float64
	maxValue float64
	obs      []float64
}

// NewStatistic creates an empty observation accumulator.
func NewStatistic() *Statistic {
	return &Statistic{minValue: math.Inf(1), maxValue: math.Inf(-1)}
}

// Record adds one observation.
func (s *Statistic) Record(x float64) {
	s.count++
	delta := x - s.mean
	s.mean += delta / float64(s.count)
	s.m2 += delta * (x - s.mean)
	if x < s.minValue {
		s.minValue = x
	}
	if x > s.maxValue {
		s.maxValue = x
	}
	s.obs = append(s.obs, x)
}

// Count returns the number of recorded observations.
func (s *Statistic) Count() int { return s.count }

// Mean returns the running mean, or 0 with no observations.
func (s *Statistic) Mean() float64 {
	if s.count == 0 {
		return 0
	}
	return s.mean
}

// Variance returns the sample variance (n-1 denominator), or 0 with fewer
// than two observations.
func (s *Statistic) Variance() float64 {
	if s.count < 2 {
		return 0
	}
	return s.m2 / float64(s.count-1)
}

// StdDev returns the sample standard deviation.
func (s *Statistic) StdDev() float64 { return math.Sqrt(s.Variance()) }

// Min returns the smallest observation, or +Inf with none.
func (s *Statistic) Min() float64 { return s.minValue }

// Max returns the largest observation, or -Inf with none.
func (s *Statistic) Max() float64 { return s.maxValue }

// Observations returns the retained raw observations in recording order.
// The returned slice is internal storage; callers must not modify it.
func (s *Statistic) Observations() []float64 { return s.obs }

// Reset discards all recorded observations.
func (s *Statistic) Reset() {
	s.count = 0
	s.mean = 0
	s.m2 = 0
	s.minValue = math.Inf(1)
	s.maxValue = math.Inf(-1)
	s.obs = nil
}
