// Package model holds players, biometric readings and the report shapes the
// API returns.
package model

import "time"

// Player is a competitor whose biometrics we monitor.
// Team is a plain name: players sharing the same string form a team.
type Player struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Age     int    `json:"age"`
	Team    string `json:"team"`
	Country string `json:"country"`
	Role    string `json:"role"`
}

// Reading is a single biometric sample. Readings are owned by a player and
// never change once stored.
type Reading struct {
	ID               int64     `json:"id"`
	PlayerID         int64     `json:"player_id"`
	HeartRate        int       `json:"heart_rate"`
	OxygenSaturation int       `json:"oxygen_saturation"`
	Timestamp        time.Time `json:"timestamp"`
}

// PlayerAnalyticsReport is the full per-player assessment over a lookback window.
// Derived on demand, never persisted.
type PlayerAnalyticsReport struct {
	PlayerID             int64    `json:"player_id"`
	Period               string   `json:"period"`
	AvgHeartRate         float64  `json:"avg_heart_rate"`
	AvgOxygen            float64  `json:"avg_oxygen"`
	MaxHeartRate         int      `json:"max_heart_rate"`
	MinHeartRate         int      `json:"min_heart_rate"`
	MaxOxygen            int      `json:"max_oxygen"`
	MinOxygen            int      `json:"min_oxygen"`
	HeartRateVariability float64  `json:"heart_rate_variability"`
	Status               string   `json:"status"` // normal, fatigue, risk
	Anomalies            []string `json:"anomalies"`
	TrendHeartRate       float64  `json:"trend_heart_rate"`
	TrendOxygen          float64  `json:"trend_oxygen"`
}

// TeamStatsReport rolls up the recent window of every player on a team.
type TeamStatsReport struct {
	Team             string            `json:"team"`
	TotalPlayers     int               `json:"total_players"`
	AvgTeamHeartRate float64           `json:"avg_team_heart_rate"`
	AvgTeamOxygen    float64           `json:"avg_team_oxygen"`
	PlayersStatus    map[string]string `json:"players_status"`
}

// DashboardOverview is the roster-wide summary shown on the main dashboard.
type DashboardOverview struct {
	TotalPlayers       int       `json:"total_players"`
	TotalTeams         int       `json:"total_teams"`
	GlobalAvgHeartRate float64   `json:"global_avg_heart_rate"`
	GlobalAvgOxygen    float64   `json:"global_avg_oxygen"`
	PlayersAtRisk      int       `json:"players_at_risk"`
	GeneratedAt        time.Time `json:"generated_at"`
}

// PlayerSummary bundles a player with the readings of the default analytics window.
// Unlike the analytics report it is still returned when the window is empty.
type PlayerSummary struct {
	Player       Player    `json:"player"`
	Readings     []Reading `json:"readings"`
	AvgHeartRate float64   `json:"avg_heart_rate"`
	AvgOxygen    float64   `json:"avg_oxygen"`
	LastReading  *Reading  `json:"last_reading"`
}
