package engine

// Thresholds centralizes every rule constant used by the risk scorer, the
// trend analyzer and the agent's reasoning step so scoring stays reproducible
// and independently testable.
type Thresholds struct {
	// Risk scorer rule table.
	FluCases        float64 // triggered when flu cases exceed this
	AQI             float64 // triggered when AQI exceeds this
	StaffRatioMin   float64 // triggered when staff ratio falls below this
	BedOccupancyPct float64 // triggered when bed occupancy pct exceeds this
	ICUOccupancyPct float64 // triggered when ICU occupancy pct exceeds this
	VentilatorPct   float64 // triggered when ventilator usage pct exceeds this

	// Level banding cut points on score/max_score.
	MediumRatio float64
	HighRatio   float64

	// Trend velocity bands on |3-day bed change|.
	VelocitySlowMax     int
	VelocityModerateMax int

	// Agent escalation levels.
	BedWarningPct    float64
	BedCriticalPct   float64
	ICUWarningPct    float64
	ICUCriticalPct   float64
	VentCriticalPct  float64
	AQICritical      float64
	FluSurge         float64
}

// DefaultThresholds returns the canonical rule constants.
func DefaultThresholds() Thresholds {
	return Thresholds{
		FluCases:        50,
		AQI:             100,
		StaffRatioMin:   1.0,
		BedOccupancyPct: 80,
		ICUOccupancyPct: 75,
		VentilatorPct:   70,

		MediumRatio: 0.33,
		HighRatio:   0.66,

		VelocitySlowMax:     5,
		VelocityModerateMax: 15,

		BedWarningPct:   75,
		BedCriticalPct:  90,
		ICUWarningPct:   70,
		ICUCriticalPct:  85,
		VentCriticalPct: 80,
		AQICritical:     150,
		FluSurge:        50,
	}
}
