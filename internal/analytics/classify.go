package analytics

// Status is the severity assigned to a window. Recomputed on every call; there
// is no transition history.
type Status string

const (
	StatusNormal  Status = "normal"
	StatusFatigue Status = "fatigue"
	StatusRisk    Status = "risk"
)

// Fixed physiological thresholds. Risk thresholds are nested inside the
// fatigue ones, so any risk window also satisfies the fatigue predicate.
const (
	FatigueMaxHeartRate = 110
	FatigueMinOxygen    = 95
	RiskMaxHeartRate    = 120
	RiskMinOxygen       = 94
)

// String implements fmt.Stringer.
func (s Status) String() string { return string(s) }

// Classify maps a window's extremes to the highest matching severity.
func Classify(maxHeartRate, minOxygen int) Status {
	status := StatusNormal
	if IsFatigue(maxHeartRate, minOxygen) {
		status = StatusFatigue
	}
	if IsRisk(maxHeartRate, minOxygen) {
		status = StatusRisk
	}
	return status
}

// IsFatigue reports whether the fatigue predicate holds.
func IsFatigue(maxHeartRate, minOxygen int) bool {
	return maxHeartRate > FatigueMaxHeartRate || minOxygen < FatigueMinOxygen
}

// IsRisk reports whether the risk predicate holds. The dashboard counts
// players at risk with this alone.
func IsRisk(maxHeartRate, minOxygen int) bool {
	return maxHeartRate > RiskMaxHeartRate || minOxygen < RiskMinOxygen
}
