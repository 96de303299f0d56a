package handler

// Route prefixes shared by Register and the handler tests.
const (
	APIV1Prefix   = "/api/v1"
	playersPath   = "/players"
	readingsPath  = "/readings"
	teamsPath     = "/teams"
	dashboardPath = "/dashboard"
)
