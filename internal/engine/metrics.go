package engine

import (
	"math"

	"surgewatch/internal/models"
)

// round1 rounds to one decimal place.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// round2 rounds to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// pct returns occupied/total as a percentage, 0 when total is zero.
func pct(occupied, total int) float64 {
	if total == 0 {
		return 0
	}
	return round1(float64(occupied) / float64(total) * 100)
}

// ComputeSnapshot derives normalized occupancy percentages and the staffing
// ratio from a raw day record. Pure function: it validates rather than
// repairs, so inconsistent rows come back as an InvalidDataError.
func ComputeSnapshot(rec models.DayRecord) (models.HospitalSnapshot, error) {
	for _, f := range []struct {
		name  string
		value int
	}{
		{"total_beds", rec.TotalBeds},
		{"occupied_beds", rec.OccupiedBeds},
		{"total_icu", rec.TotalICU},
		{"occupied_icu", rec.OccupiedICU},
		{"total_ventilators", rec.TotalVentilators},
		{"ventilators_used", rec.VentilatorsUsed},
		{"staff_on_duty", rec.StaffOnDuty},
	} {
		if f.value < 0 {
			return models.HospitalSnapshot{}, &models.InvalidDataError{Field: f.name, Reason: "negative value"}
		}
	}
	for _, p := range []struct {
		name            string
		occupied, total int
	}{
		{"occupied_beds", rec.OccupiedBeds, rec.TotalBeds},
		{"occupied_icu", rec.OccupiedICU, rec.TotalICU},
		{"ventilators_used", rec.VentilatorsUsed, rec.TotalVentilators},
	} {
		if p.occupied > p.total {
			return models.HospitalSnapshot{}, &models.InvalidDataError{Field: p.name, Reason: "occupied exceeds total"}
		}
	}

	occupiedForRatio := rec.OccupiedBeds
	if occupiedForRatio == 0 {
		occupiedForRatio = 1
	}

	return models.HospitalSnapshot{
		TotalBeds:        rec.TotalBeds,
		OccupiedBeds:     rec.OccupiedBeds,
		AvailableBeds:    rec.TotalBeds - rec.OccupiedBeds,
		BedOccupancyPct:  pct(rec.OccupiedBeds, rec.TotalBeds),
		TotalICU:         rec.TotalICU,
		OccupiedICU:      rec.OccupiedICU,
		AvailableICU:     rec.TotalICU - rec.OccupiedICU,
		ICUOccupancyPct:  pct(rec.OccupiedICU, rec.TotalICU),
		TotalVentilators: rec.TotalVentilators,
		VentilatorsUsed:  rec.VentilatorsUsed,
		VentilatorPct:    pct(rec.VentilatorsUsed, rec.TotalVentilators),
		StaffOnDuty:      rec.StaffOnDuty,
		StaffRatio:       round2(float64(rec.StaffOnDuty) / float64(occupiedForRatio)),
	}, nil
}

// EnvironmentFromRecord builds the immutable environment context for a day.
func EnvironmentFromRecord(rec models.DayRecord) models.EnvironmentContext {
	return models.EnvironmentContext{
		Temperature: round1(rec.Temperature),
		Humidity:    round1(rec.Humidity),
		AQI:         rec.AQI,
		FluCases:    rec.FluCases,
	}
}
