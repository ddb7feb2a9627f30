package engine

import "surgewatch/internal/models"

// Analyzer computes short-window deltas over an ordered historical series.
type Analyzer struct {
	thresholds Thresholds
}

// NewAnalyzer builds an Analyzer with the given velocity bands.
func NewAnalyzer(t Thresholds) *Analyzer {
	return &Analyzer{thresholds: t}
}

// Analyze computes 1/3/7-day occupancy deltas plus a qualitative
// direction/velocity classification. History must be ordered oldest first.
// Fewer than 2 points degrades to zeros and "stable"; it never errors.
func (a *Analyzer) Analyze(history []models.DayRecord) models.TrendSummary {
	summary := models.TrendSummary{Direction: "stable", Velocity: "slow"}
	if len(history) < 2 {
		return summary
	}

	latest := history[len(history)-1]
	summary.BedChange1d = latest.OccupiedBeds - priorRecord(history, 1).OccupiedBeds
	summary.BedChange3d = latest.OccupiedBeds - priorRecord(history, 3).OccupiedBeds
	summary.BedChange7d = latest.OccupiedBeds - priorRecord(history, 7).OccupiedBeds
	summary.ICUChange1d = latest.OccupiedICU - priorRecord(history, 1).OccupiedICU

	switch {
	case summary.BedChange1d > 0:
		summary.Direction = "increasing"
	case summary.BedChange1d < 0:
		summary.Direction = "decreasing"
	}

	mag := summary.BedChange3d
	if mag < 0 {
		mag = -mag
	}
	switch {
	case mag < a.thresholds.VelocitySlowMax:
		summary.Velocity = "slow"
	case mag <= a.thresholds.VelocityModerateMax:
		summary.Velocity = "moderate"
	default:
		summary.Velocity = "fast"
	}
	return summary
}

// priorRecord returns the latest record dated at or before latest-N days.
// When no record is that old it falls back to the earliest point, so a short
// series degrades to a full-window delta instead of failing.
func priorRecord(history []models.DayRecord, days int) models.DayRecord {
	latest := history[len(history)-1]
	target := latest.Date.AddDate(0, 0, -days)
	for i := len(history) - 2; i >= 0; i-- {
		if !history[i].Date.After(target) {
			return history[i]
		}
	}
	return history[0]
}
