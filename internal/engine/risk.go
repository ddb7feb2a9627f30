package engine

import "surgewatch/internal/models"

// Scorer evaluates the fixed rule table over a snapshot and environment.
type Scorer struct {
	thresholds Thresholds
}

// NewScorer builds a Scorer with the given rule constants.
func NewScorer(t Thresholds) *Scorer {
	return &Scorer{thresholds: t}
}

// Score evaluates every factor in canonical order and bands the aggregate
// score into a risk level. Deterministic, no I/O.
func (s *Scorer) Score(snap models.HospitalSnapshot, env models.EnvironmentContext) models.RiskAssessment {
	t := s.thresholds
	factors := []models.RiskFactor{
		{Name: "Flu Cases", Value: float64(env.FluCases), Threshold: t.FluCases, Triggered: float64(env.FluCases) > t.FluCases},
		{Name: "Air Quality", Value: float64(env.AQI), Threshold: t.AQI, Triggered: float64(env.AQI) > t.AQI},
		{Name: "Staff Ratio", Value: snap.StaffRatio, Threshold: t.StaffRatioMin, Triggered: snap.StaffRatio < t.StaffRatioMin},
		{Name: "Bed Occupancy", Value: snap.BedOccupancyPct, Threshold: t.BedOccupancyPct, Triggered: snap.BedOccupancyPct > t.BedOccupancyPct},
		{Name: "ICU Occupancy", Value: snap.ICUOccupancyPct, Threshold: t.ICUOccupancyPct, Triggered: snap.ICUOccupancyPct > t.ICUOccupancyPct},
		{Name: "Ventilator Usage", Value: snap.VentilatorPct, Threshold: t.VentilatorPct, Triggered: snap.VentilatorPct > t.VentilatorPct},
	}

	score := 0
	for _, f := range factors {
		if f.Triggered {
			score++
		}
	}

	return models.RiskAssessment{
		Score:    score,
		MaxScore: len(factors),
		Level:    s.band(score, len(factors)),
		Factors:  factors,
	}
}

// band maps score/max_score onto a level. The cut points are a pure function
// of the ratio: identical ratios always yield identical levels.
func (s *Scorer) band(score, max int) models.RiskLevel {
	if score == 0 {
		return models.RiskLow
	}
	r := float64(score) / float64(max)
	switch {
	case r <= s.thresholds.MediumRatio:
		return models.RiskMedium
	case r <= s.thresholds.HighRatio:
		return models.RiskHigh
	default:
		return models.RiskCritical
	}
}

// BandOccupancy maps a predicted occupancy percentage onto a risk level for
// forecast points.
func BandOccupancy(occupancyPct float64) models.RiskLevel {
	switch {
	case occupancyPct >= 90:
		return models.RiskCritical
	case occupancyPct >= 80:
		return models.RiskHigh
	case occupancyPct >= 70:
		return models.RiskMedium
	default:
		return models.RiskLow
	}
}
