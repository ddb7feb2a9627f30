package history

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() func() time.Time {
	return func() time.Time { return time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC) }
}

func TestSimulatorDeterministic(t *testing.T) {
	sim := NewSimulatorAt(fixedClock())

	s1, err := sim.Series(context.Background(), "H001", 30)
	require.NoError(t, err)
	s2, err := sim.Series(context.Background(), "H001", 30)
	require.NoError(t, err)

	assert.Equal(t, s1, s2)
}

func TestSimulatorDistinctPerHospital(t *testing.T) {
	sim := NewSimulatorAt(fixedClock())

	s1, err := sim.Series(context.Background(), "H001", 30)
	require.NoError(t, err)
	s2, err := sim.Series(context.Background(), "H002", 30)
	require.NoError(t, err)

	assert.NotEqual(t, s1, s2)
}

func TestSimulatorBounds(t *testing.T) {
	sim := NewSimulatorAt(fixedClock())
	series, err := sim.Series(context.Background(), "H003", 60)
	require.NoError(t, err)
	require.Len(t, series, 60)

	for i, rec := range series {
		assert.GreaterOrEqual(t, rec.OccupiedBeds, 0)
		assert.LessOrEqual(t, rec.OccupiedBeds, rec.TotalBeds)
		assert.LessOrEqual(t, rec.OccupiedICU, rec.TotalICU)
		assert.LessOrEqual(t, rec.VentilatorsUsed, rec.TotalVentilators)
		assert.GreaterOrEqual(t, rec.StaffOnDuty, 0)
		assert.GreaterOrEqual(t, rec.AQI, 20)
		assert.LessOrEqual(t, rec.AQI, 300)
		if i > 0 {
			assert.True(t, series[i-1].Date.Before(rec.Date), "dates must be ascending")
		}
	}
}

func TestSimulatorFleetScaling(t *testing.T) {
	sim := NewSimulatorAt(fixedClock())

	small, err := sim.Series(context.Background(), "H002", 1)
	require.NoError(t, err)
	large, err := sim.Series(context.Background(), "H003", 1)
	require.NoError(t, err)

	assert.Equal(t, 160, small[0].TotalBeds)
	assert.Equal(t, 240, large[0].TotalBeds)
}

func TestSimulatorHospitals(t *testing.T) {
	hospitals := NewSimulator().Hospitals()
	require.Len(t, hospitals, 3)
	assert.Equal(t, "H001", hospitals[0].ID)
	assert.Equal(t, "City General Hospital", hospitals[0].Name)
}

func TestCompositePrecedence(t *testing.T) {
	uploads := NewUploadStore()
	comp := &Composite{Uploads: uploads, Simulator: NewSimulatorAt(fixedClock())}

	fromSim, err := comp.Series(context.Background(), "H001", 5)
	require.NoError(t, err)
	assert.Equal(t, 200, fromSim[0].TotalBeds)

	csv := "date,total_beds,occupied_beds\n2026-08-01,90,45\n2026-08-02,90,50\n"
	_, err = uploads.ParseCSV(strReader(csv), "H001")
	require.NoError(t, err)

	fromUpload, err := comp.Series(context.Background(), "H001", 5)
	require.NoError(t, err)
	assert.Equal(t, 90, fromUpload[0].TotalBeds)
}
