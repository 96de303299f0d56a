package analytics

import "github.com/maxviazov/esports-health-service/internal/model"

// Assessment is the full-precision evaluation of one player's window.
type Assessment struct {
	Samples        int
	HeartRate      Summary
	Oxygen         Summary
	TrendHeartRate float64
	TrendOxygen    float64
	Anomalies      []string
	Status         Status
}

// Assess runs statistics, trend, anomaly detection and classification over a
// window ordered by timestamp. ok is false when the window is empty.
func Assess(readings []model.Reading) (a Assessment, ok bool) {
	heartRates, oxygen := Split(readings)

	hr, ok := Summarize(heartRates)
	if !ok {
		return Assessment{}, false
	}
	o2, _ := Summarize(oxygen)

	return Assessment{
		Samples:        len(readings),
		HeartRate:      hr,
		Oxygen:         o2,
		TrendHeartRate: Trend(heartRates),
		TrendOxygen:    Trend(oxygen),
		Anomalies:      DetectAnomalies(heartRates, oxygen),
		Status:         Classify(hr.Max, o2.Min),
	}, true
}

// Report renders an assessment into the public report shape with display rounding.
func (a Assessment) Report(playerID int64, period string) model.PlayerAnalyticsReport {
	return model.PlayerAnalyticsReport{
		PlayerID:             playerID,
		Period:               period,
		AvgHeartRate:         Round1(a.HeartRate.Mean),
		AvgOxygen:            Round1(a.Oxygen.Mean),
		MaxHeartRate:         a.HeartRate.Max,
		MinHeartRate:         a.HeartRate.Min,
		MaxOxygen:            a.Oxygen.Max,
		MinOxygen:            a.Oxygen.Min,
		HeartRateVariability: Round1(a.HeartRate.Stdev),
		Status:               a.Status.String(),
		Anomalies:            a.Anomalies,
		TrendHeartRate:       Round1(a.TrendHeartRate),
		TrendOxygen:          Round1(a.TrendOxygen),
	}
}

// Snapshot is the reduced per-player view used by team and roster rollups.
type Snapshot struct {
	Samples      int
	SumHeartRate int
	SumOxygen    int
	AvgHeartRate float64
	AvgOxygen    float64
	MaxHeartRate int
	MinOxygen    int
	Status       Status
}

// Snap computes the reduced view. ok is false when the window is empty, in
// which case the player contributes nothing to rollups.
func Snap(readings []model.Reading) (s Snapshot, ok bool) {
	if len(readings) == 0 {
		return Snapshot{}, false
	}
	s.MaxHeartRate = readings[0].HeartRate
	s.MinOxygen = readings[0].OxygenSaturation
	for _, r := range readings {
		s.SumHeartRate += r.HeartRate
		s.SumOxygen += r.OxygenSaturation
		s.MaxHeartRate = max(s.MaxHeartRate, r.HeartRate)
		s.MinOxygen = min(s.MinOxygen, r.OxygenSaturation)
	}
	s.Samples = len(readings)
	s.AvgHeartRate = float64(s.SumHeartRate) / float64(s.Samples)
	s.AvgOxygen = float64(s.SumOxygen) / float64(s.Samples)
	s.Status = Classify(s.MaxHeartRate, s.MinOxygen)
	return s, true
}
