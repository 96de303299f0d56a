package analytics

import "fmt"

// AbruptChangeBPM is the adjacent-sample heart-rate delta above which a change is flagged.
const AbruptChangeBPM = 20

// DetectAnomalies scans a window and returns human-readable findings in a
// fixed order: heart-rate peak, low oxygenation, abrupt heart-rate change.
// Only the first abrupt change is reported.
//
// TODO: confirm with product whether every abrupt change should be listed;
// the scan currently stops at the first qualifying pair.
func DetectAnomalies(heartRates, oxygen []int) []string {
	anomalies := make([]string, 0, 3)

	if hr, ok := Summarize(heartRates); ok && hr.Max > FatigueMaxHeartRate {
		anomalies = append(anomalies, fmt.Sprintf("elevated heart-rate peak: %d BPM", hr.Max))
	}
	if o2, ok := Summarize(oxygen); ok && o2.Min < FatigueMinOxygen {
		anomalies = append(anomalies, fmt.Sprintf("low oxygenation detected: %d%%", o2.Min))
	}

	for i := 1; i < len(heartRates); i++ {
		delta := heartRates[i] - heartRates[i-1]
		if delta < 0 {
			delta = -delta
		}
		if delta > AbruptChangeBPM {
			anomalies = append(anomalies, fmt.Sprintf("abrupt heart-rate change: %d BPM", delta))
			break
		}
	}
	return anomalies
}
