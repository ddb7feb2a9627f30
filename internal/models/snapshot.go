package models

import "time"

// DayRecord is one day of raw hospital and environmental data as produced by a
// history provider. Missing optional fields are filled by the provider before
// the record reaches the core engine.
type DayRecord struct {
	Date             time.Time `json:"date"`
	TotalBeds        int       `json:"total_beds"`
	OccupiedBeds     int       `json:"occupied_beds"`
	TotalICU         int       `json:"total_icu"`
	OccupiedICU      int       `json:"occupied_icu"`
	TotalVentilators int       `json:"total_ventilators"`
	VentilatorsUsed  int       `json:"ventilators_used"`
	StaffOnDuty      int       `json:"staff_on_duty"`
	Temperature      float64   `json:"temperature"`
	Humidity         float64   `json:"humidity"`
	AQI              int       `json:"aqi"`
	FluCases         int       `json:"flu_cases"`
	Admissions       int       `json:"admissions"`
	Discharges       int       `json:"discharges"`
}

// HospitalSnapshot is a point-in-time read of operational state with derived
// occupancy percentages and the staffing ratio.
type HospitalSnapshot struct {
	TotalBeds        int     `json:"total_beds"`
	OccupiedBeds     int     `json:"occupied_beds"`
	AvailableBeds    int     `json:"available_beds"`
	BedOccupancyPct  float64 `json:"bed_occupancy"`
	TotalICU         int     `json:"total_icu"`
	OccupiedICU      int     `json:"occupied_icu"`
	AvailableICU     int     `json:"available_icu"`
	ICUOccupancyPct  float64 `json:"icu_occupancy"`
	TotalVentilators int     `json:"total_ventilators"`
	VentilatorsUsed  int     `json:"ventilators_used"`
	VentilatorPct    float64 `json:"ventilator_usage"`
	StaffOnDuty      int     `json:"staff_on_duty"`
	StaffRatio       float64 `json:"staff_ratio"`
}

// EnvironmentContext holds the environmental and disease signals for a single
// time point. Immutable once built.
type EnvironmentContext struct {
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	AQI         int     `json:"aqi"`
	FluCases    int     `json:"flu_cases"`
}
