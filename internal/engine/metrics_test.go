package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"surgewatch/internal/models"
)

func day(occupied, total int) models.DayRecord {
	return models.DayRecord{
		Date:             time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		TotalBeds:        total,
		OccupiedBeds:     occupied,
		TotalICU:         30,
		OccupiedICU:      15,
		TotalVentilators: 20,
		VentilatorsUsed:  8,
		StaffOnDuty:      120,
	}
}

func TestComputeSnapshot(t *testing.T) {
	snap, err := ComputeSnapshot(day(140, 200))
	require.NoError(t, err)

	assert.Equal(t, 70.0, snap.BedOccupancyPct)
	assert.Equal(t, 60, snap.AvailableBeds)
	assert.Equal(t, 50.0, snap.ICUOccupancyPct)
	assert.Equal(t, 15, snap.AvailableICU)
	assert.Equal(t, 40.0, snap.VentilatorPct)
	assert.Equal(t, 0.86, snap.StaffRatio)
}

func TestComputeSnapshotRounding(t *testing.T) {
	rec := day(190, 200)
	rec.OccupiedICU = 28

	snap, err := ComputeSnapshot(rec)
	require.NoError(t, err)

	assert.Equal(t, 95.0, snap.BedOccupancyPct)
	assert.Equal(t, 93.3, snap.ICUOccupancyPct)
}

func TestComputeSnapshotZeroTotals(t *testing.T) {
	rec := models.DayRecord{StaffOnDuty: 10}
	snap, err := ComputeSnapshot(rec)
	require.NoError(t, err)

	assert.Equal(t, 0.0, snap.BedOccupancyPct)
	assert.Equal(t, 0.0, snap.ICUOccupancyPct)
	// Zero occupied beds still yields a finite ratio.
	assert.Equal(t, 10.0, snap.StaffRatio)
}

func TestComputeSnapshotInvalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.DayRecord)
	}{
		{"negative occupied", func(r *models.DayRecord) { r.OccupiedBeds = -1 }},
		{"negative staff", func(r *models.DayRecord) { r.StaffOnDuty = -5 }},
		{"occupied exceeds total", func(r *models.DayRecord) { r.OccupiedBeds = 201 }},
		{"icu exceeds total", func(r *models.DayRecord) { r.OccupiedICU = 31 }},
		{"ventilators exceed total", func(r *models.DayRecord) { r.VentilatorsUsed = 21 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := day(140, 200)
			tt.mutate(&rec)
			_, err := ComputeSnapshot(rec)
			var invalid *models.InvalidDataError
			require.ErrorAs(t, err, &invalid)
		})
	}
}
