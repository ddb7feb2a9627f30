package models

// TrendSummary holds short-window occupancy deltas and a qualitative
// direction/velocity classification.
type TrendSummary struct {
	BedChange1d int    `json:"bed_change_1d"`
	BedChange3d int    `json:"bed_change_3d"`
	BedChange7d int    `json:"bed_change_7d"`
	ICUChange1d int    `json:"icu_change_1d"`
	Direction   string `json:"direction"` // increasing, decreasing, stable
	Velocity    string `json:"velocity"`  // slow, moderate, fast
}
