package models

import "time"

// ForecastPoint is one day in a forecast run. Historical days carry Actual,
// future days carry Predicted plus confidence bounds and a risk level.
type ForecastPoint struct {
	Date       time.Time  `json:"date"`
	Actual     *int       `json:"actual"`
	Predicted  *int       `json:"predicted"`
	UpperBound *int       `json:"upper_bound"`
	LowerBound *int       `json:"lower_bound"`
	RiskLevel  *RiskLevel `json:"risk_level"`
}

// ForecastInsights summarizes a forecast run for operational planning.
type ForecastInsights struct {
	PeakOccupancy       int       `json:"peak_occupancy"`
	PeakDate            time.Time `json:"peak_date"`
	DaysUntilThreshold  *int      `json:"days_until_threshold"`
	Threshold           int       `json:"threshold"`
	Recommendation      string    `json:"recommendation"`
}
