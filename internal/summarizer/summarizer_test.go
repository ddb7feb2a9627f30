package summarizer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"surgewatch/internal/logging"
	"surgewatch/internal/models"
)

func situation(bedPct float64, factors []models.RiskFactor) models.Situation {
	return models.Situation{
		HospitalID: "H001",
		Metrics:    models.HospitalSnapshot{BedOccupancyPct: bedPct},
		Trends:     models.TrendSummary{Direction: "stable", Velocity: "slow"},
		Risk:       models.RiskAssessment{Level: models.RiskHigh, Factors: factors},
	}
}

func TestFallbackWithoutClient(t *testing.T) {
	s := New("", logging.NewNop())

	got := s.Summarize(context.Background(), situation(72.5, nil), nil)
	assert.Contains(t, got, "stable at 72.5%")
	assert.Contains(t, got, "No active risk factors")
}

func TestFallbackBands(t *testing.T) {
	s := New("", logging.NewNop())
	tests := []struct {
		pct  float64
		want string
	}{
		{95, "critical"},
		{80, "elevated"},
		{60, "stable"},
	}
	for _, tt := range tests {
		got := s.Summarize(context.Background(), situation(tt.pct, nil), nil)
		assert.Contains(t, got, tt.want, "pct %.0f", tt.pct)
	}
}

func TestFallbackNamesTriggeredFactors(t *testing.T) {
	s := New("", logging.NewNop())
	factors := []models.RiskFactor{
		{Name: "Flu Cases", Triggered: true},
		{Name: "Air Quality", Triggered: false},
		{Name: "Bed Occupancy", Triggered: true},
	}

	got := s.Summarize(context.Background(), situation(85, factors), nil)
	assert.Contains(t, got, "Flu Cases")
	assert.Contains(t, got, "Bed Occupancy")
	assert.NotContains(t, got, "Air Quality")
}
