package analytics

// trendWindow is the number of samples compared at each end of the series.
const trendWindow = 4

// Trend reports mean(last k) - mean(first k) with k = min(4, len(values)).
// Series of four or fewer samples compare the whole series with itself and
// yield exactly 0; up to seven samples the ranges overlap. Empty input is 0.
func Trend(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	k := min(trendWindow, len(values))
	return mean(values[len(values)-k:]) - mean(values[:k])
}
