package sim

import (
	"math"
	"testing"
)

func TestTimeWeighted_MeanIsTimeAverage(t *testing.T) {
	// GIVEN a level that is 1 on [0,2), 2 on [2,5), 1 on [5,10)
	tw := NewTimeWeighted(0)
	tw.Increment(0)
	tw.Increment(2)
	tw.Decrement(5)

	// THEN the time-average over [0,10] is (2*1 + 3*2 + 5*1) / 10 = 1.3
	if got := tw.Mean(10); math.Abs(got-1.3) > 1e-12 {
		t.Errorf("Mean(10): got %f, want 1.3", got)
	}
	if tw.Value() != 1 {
		t.Errorf("Value: got %f, want 1", tw.Value())
	}
	if tw.Max() != 2 {
		t.Errorf("Max: got %f, want 2", tw.Max())
	}
}

func TestTimeWeighted_MeanWithNoElapsedTime(t *testing.T) {
	tw := NewTimeWeighted(5)
	if got := tw.Mean(5); got != 0 {
		t.Errorf("Mean with no elapsed time: got %f, want 0", got)
	}
}

func TestTimeWeighted_DecrementBelowZero_Panics(t *testing.T) {
	tw := NewTimeWeighted(0)
	if !mustPanic(func() { tw.Decrement(1) }) {
		t.Error("Decrement below zero did not panic")
	}
}

func TestTimeWeighted_Reset(t *testing.T) {
	tw := NewTimeWeighted(0)
	tw.Increment(1)
	tw.Increment(2)
	tw.Reset(10)
	if tw.Value() != 0 || tw.Max() != 0 {
		t.Errorf("state after Reset: value=%f max=%f", tw.Value(), tw.Max())
	}
	tw.Increment(10)
	if got := tw.Mean(12); math.Abs(got-1.0) > 1e-12 {
		t.Errorf("Mean after Reset: got %f, want 1.0", got)
	}
}

func TestStatistic_MomentsAndExtremes(t *testing.T) {
	// GIVEN observations 2, 4, 4, 4, 5, 5, 7, 9
	s := NewStatistic()
	for _, x := range []float64{2, 4, 4, 4, 5, 5, 7, 9} {
		s.Record(x)
	}

	// THEN mean is 5 and sample variance is 32/7
	if s.Count() != 8 {
		t.Fatalf("Count: got %d, want 8", s.Count())
	}
	if got := s.Mean(); math.Abs(got-5.0) > 1e-12 {
		t.Errorf("Mean: got %f, want 5.0", got)
	}
	wantVar := 32.0 / 7.0
	if got := s.Variance(); math.Abs(got-wantVar) > 1e-12 {
		t.Errorf("Variance: got %f, want %f", got, wantVar)
	}
	if s.Min() != 2 || s.Max() != 9 {
		t.Errorf("extremes: got [%f, %f], want [2, 9]", s.Min(), s.Max())
	}
}

func TestStatistic_Empty(t *testing.T) {
	s := NewStatistic()
	if s.Mean() != 0 || s.Variance() != 0 || s.Count() != 0 {
		t.Error("empty statistic reports non-zero moments")
	}
}

func TestStatistic_Reset(t *testing.T) {
	s := NewStatistic()
	s.Record(3)
	s.Record(4)
	s.Reset()
	if s.Count() != 0 || len(s.Observations()) != 0 {
		t.Error("Reset did not discard observations")
	}
}
