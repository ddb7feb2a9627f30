package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"surgewatch/internal/models"
)

func series(occupancies ...int) []models.DayRecord {
	start := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	out := make([]models.DayRecord, len(occupancies))
	for i, occ := range occupancies {
		out[i] = models.DayRecord{
			Date:             start.AddDate(0, 0, i),
			TotalBeds:        200,
			OccupiedBeds:     occ,
			TotalICU:         30,
			OccupiedICU:      15,
			TotalVentilators: 20,
			VentilatorsUsed:  8,
			StaffOnDuty:      120,
		}
	}
	return out
}

func TestAnalyzeShortHistory(t *testing.T) {
	a := NewAnalyzer(DefaultThresholds())

	for _, h := range [][]models.DayRecord{nil, series(150)} {
		got := a.Analyze(h)
		assert.Equal(t, models.TrendSummary{Direction: "stable", Velocity: "slow"}, got)
	}
}

func TestAnalyzeFlatHistory(t *testing.T) {
	a := NewAnalyzer(DefaultThresholds())
	occ := make([]int, 30)
	for i := range occ {
		occ[i] = 150
	}

	got := a.Analyze(series(occ...))
	assert.Equal(t, 0, got.BedChange1d)
	assert.Equal(t, 0, got.BedChange3d)
	assert.Equal(t, 0, got.BedChange7d)
	assert.Equal(t, "stable", got.Direction)
	assert.Equal(t, "slow", got.Velocity)
}

func TestAnalyzeDeltas(t *testing.T) {
	a := NewAnalyzer(DefaultThresholds())
	got := a.Analyze(series(100, 105, 110, 115, 120, 130, 140, 160))

	assert.Equal(t, 20, got.BedChange1d)
	assert.Equal(t, 40, got.BedChange3d)
	assert.Equal(t, 60, got.BedChange7d)
	assert.Equal(t, "increasing", got.Direction)
	assert.Equal(t, "fast", got.Velocity)
}

func TestAnalyzeDecreasing(t *testing.T) {
	a := NewAnalyzer(DefaultThresholds())
	got := a.Analyze(series(160, 158, 155, 152, 150))

	assert.Equal(t, -2, got.BedChange1d)
	assert.Equal(t, -8, got.BedChange3d)
	assert.Equal(t, "decreasing", got.Direction)
	assert.Equal(t, "moderate", got.Velocity)
}

func TestAnalyzeShortWindowFallback(t *testing.T) {
	a := NewAnalyzer(DefaultThresholds())
	// Only 3 points: the 7-day delta falls back to the earliest point.
	got := a.Analyze(series(100, 110, 112))

	assert.Equal(t, 2, got.BedChange1d)
	assert.Equal(t, 12, got.BedChange3d)
	assert.Equal(t, 12, got.BedChange7d)
}

func TestAnalyzeVelocityBoundaries(t *testing.T) {
	a := NewAnalyzer(DefaultThresholds())
	tests := []struct {
		change3d int
		want     string
	}{
		{4, "slow"},
		{5, "moderate"},
		{15, "moderate"},
		{16, "fast"},
	}
	for _, tt := range tests {
		h := series(150, 150, 150, 150, 150+tt.change3d)
		assert.Equal(t, tt.want, a.Analyze(h).Velocity, "3d change %d", tt.change3d)
	}
}
