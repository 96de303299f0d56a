// Package analytics is the biometric analytics engine: summary statistics,
// trend, anomaly detection and severity classification over an already
// materialized window of readings. Everything here is pure; callers own I/O.
package analytics

import (
	"math"
	"strconv"

	"github.com/maxviazov/esports-health-service/internal/model"
)

// Summary holds descriptive statistics of an integer series.
type Summary struct {
	Mean  float64
	Min   int
	Max   int
	Stdev float64 // sample standard deviation (n-1)
}

// Summarize computes mean, extremes and sample standard deviation.
// ok is false for an empty series; callers must treat that as "no data".
// Stdev is 0 for a single sample so that one-reading windows still classify.
func Summarize(values []int) (s Summary, ok bool) {
	if len(values) == 0 {
		return Summary{}, false
	}

	s.Min, s.Max = values[0], values[0]
	sum := 0
	for _, v := range values {
		sum += v
		if v < s.Min {
			s.Min = v
		}
		if v > s.Max {
			s.Max = v
		}
	}
	s.Mean = float64(sum) / float64(len(values))

	if len(values) > 1 {
		var sq float64
		for _, v := range values {
			d := float64(v) - s.Mean
			sq += d * d
		}
		s.Stdev = math.Sqrt(sq / float64(len(values)-1))
	}
	return s, true
}

// mean of a non-empty series.
func mean(values []int) float64 {
	sum := 0
	for _, v := range values {
		sum += v
	}
	return float64(sum) / float64(len(values))
}

// Split separates a window into its heart-rate and oxygen series, preserving order.
func Split(readings []model.Reading) (heartRates, oxygen []int) {
	heartRates = make([]int, len(readings))
	oxygen = make([]int, len(readings))
	for i, r := range readings {
		heartRates[i] = r.HeartRate
		oxygen[i] = r.OxygenSaturation
	}
	return heartRates, oxygen
}

// Round1 rounds to one decimal place. Exact ties go to the even digit
// (72.25 → 72.2, 72.75 → 72.8), and -0 comes back as 0.
func Round1(v float64) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 1, 64), 64)
	if err != nil || r == 0 {
		return 0
	}
	return r
}
