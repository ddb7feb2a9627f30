package models

// RiskLevel is the banded surge risk category.
type RiskLevel string

const (
	RiskLow      RiskLevel = "LOW"
	RiskMedium   RiskLevel = "MEDIUM"
	RiskHigh     RiskLevel = "HIGH"
	RiskCritical RiskLevel = "CRITICAL"
)

// RiskFactor is one weighted threshold rule contributing to the aggregate
// risk score.
type RiskFactor struct {
	Name      string  `json:"name"`
	Value     float64 `json:"value"`
	Threshold float64 `json:"threshold"`
	Triggered bool    `json:"triggered"`
}

// RiskAssessment is the result of scoring a snapshot against the rule table.
// Computed fresh on every request and never persisted.
type RiskAssessment struct {
	Score    int          `json:"score"`
	MaxScore int          `json:"max_score"`
	Level    RiskLevel    `json:"level"`
	Factors  []RiskFactor `json:"factors"`
}
