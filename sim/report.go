// End-of-run summary statistics for a queue, computed from the default
// accumulators with gonum's batch estimators.

package sim

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// QueueReport is a summary of a queue's wait-time and length behavior.
type QueueReport struct {
	Name string

	// Wait-time observations
	Count      int
	MeanWait   float64
	StdDevWait float64
	MinWait    float64
	MaxWait    float64
	P50Wait    float64
	P90Wait    float64
	P95Wait    float64
	P99Wait    float64

	// Length over time
	MeanLength float64
	MaxLength  float64
}

// BuildQueueReport computes a report from the wait-time and length
// accumulators at the given time.
func BuildQueueReport(name string, wait *Statistic, length *TimeWeighted, now float64) QueueReport {
	r := QueueReport{
		Name:       name,
		Count:      wait.Count(),
		MeanLength: length.Mean(now),
		MaxLength:  length.Max(),
	}
	obs := wait.Observations()
	if len(obs) == 0 {
		return r
	}
	sorted := make([]float64, len(obs))
	copy(sorted, obs)
	sort.Float64s(sorted)

	r.MeanWait = stat.Mean(sorted, nil)
	r.StdDevWait = stat.StdDev(sorted, nil)
	r.MinWait = sorted[0]
	r.MaxWait = sorted[len(sorted)-1]
	r.P50Wait = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	r.P90Wait = stat.Quantile(0.90, stat.Empirical, sorted, nil)
	r.P95Wait = stat.Quantile(0.95, stat.Empirical, sorted, nil)
	r.P99Wait = stat.Quantile(0.99, stat.Empirical, sorted, nil)
	return r
}

// Print displays the report at the end of a run.
func (r QueueReport) Print() {
	fmt.Printf("=== Queue Report: %s ===\n", r.Name)
	fmt.Printf("Served Count         : %d\n", r.Count)
	if r.Count > 0 {
		fmt.Printf("Average Wait         : %.4f\n", r.MeanWait)
		fmt.Printf("Wait Std Dev         : %.4f\n", r.StdDevWait)
		fmt.Printf("Min / Max Wait       : %.4f / %.4f\n", r.MinWait, r.MaxWait)
		fmt.Printf("Wait P50/P90/P95/P99 : %.4f / %.4f / %.4f / %.4f\n",
			r.P50Wait, r.P90Wait, r.P95Wait, r.P99Wait)
	}
	fmt.Printf("Average Length       : %.4f\n", r.MeanLength)
	fmt.Printf("Peak Length          : %.0f\n", r.MaxLength)
}
