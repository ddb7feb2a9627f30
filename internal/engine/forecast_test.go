package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"surgewatch/internal/models"
)

func flatSeries(occupancy, days int) []models.DayRecord {
	occ := make([]int, days)
	for i := range occ {
		occ[i] = occupancy
	}
	return series(occ...)
}

func TestForecastInsufficientHistory(t *testing.T) {
	f := NewForecaster(DefaultThresholds())

	for _, h := range [][]models.DayRecord{nil, flatSeries(150, 1)} {
		_, _, err := f.Forecast(h, 7, 180)
		var insufficient *models.InsufficientHistoryError
		require.ErrorAs(t, err, &insufficient)
	}
}

func TestForecastDeterministic(t *testing.T) {
	f := NewForecaster(DefaultThresholds())
	h := series(100, 105, 110, 118, 122, 130, 133, 140)

	p1, i1, err := f.Forecast(h, 7, 180)
	require.NoError(t, err)
	p2, i2, err := f.Forecast(h, 7, 180)
	require.NoError(t, err)

	assert.Equal(t, p1, p2)
	assert.Equal(t, i1, i2)
}

func TestForecastShape(t *testing.T) {
	f := NewForecaster(DefaultThresholds())
	h := flatSeries(150, 10)

	points, _, err := f.Forecast(h, 7, 180)
	require.NoError(t, err)
	require.Len(t, points, 17)

	for _, p := range points[:10] {
		assert.NotNil(t, p.Actual)
		assert.Nil(t, p.Predicted)
	}
	for _, p := range points[10:] {
		assert.Nil(t, p.Actual)
		require.NotNil(t, p.Predicted)
		require.NotNil(t, p.UpperBound)
		require.NotNil(t, p.LowerBound)
		require.NotNil(t, p.RiskLevel)
		assert.LessOrEqual(t, *p.LowerBound, *p.Predicted)
		assert.LessOrEqual(t, *p.Predicted, *p.UpperBound)
	}
}

func TestForecastBoundsWiden(t *testing.T) {
	f := NewForecaster(DefaultThresholds())
	points, _, err := f.Forecast(flatSeries(150, 10), 7, 180)
	require.NoError(t, err)

	future := points[10:]
	prevWidth := -1
	for _, p := range future {
		width := *p.UpperBound - *p.LowerBound
		assert.Greater(t, width, prevWidth)
		prevWidth = width
	}
}

func TestForecastBoundsWidenOnDecline(t *testing.T) {
	f := NewForecaster(DefaultThresholds())
	// Steep decline drives predictions to the 0 floor, where the lower
	// bound clamps; the interval must still grow with the horizon.
	points, _, err := f.Forecast(series(90, 80, 70, 60, 50, 40), 7, 180)
	require.NoError(t, err)

	future := points[6:]
	prevWidth := -1
	for _, p := range future {
		width := *p.UpperBound - *p.LowerBound
		assert.Greater(t, width, prevWidth)
		assert.GreaterOrEqual(t, *p.LowerBound, 0)
		prevWidth = width
	}
}

func TestForecastFlatBelowThreshold(t *testing.T) {
	f := NewForecaster(DefaultThresholds())
	_, insights, err := f.Forecast(flatSeries(150, 30), 7, 180)
	require.NoError(t, err)

	assert.Nil(t, insights.DaysUntilThreshold)
	assert.Equal(t, 180, insights.Threshold)
	assert.Equal(t, "Continue monitoring", insights.Recommendation)
}

func TestForecastThresholdCrossing(t *testing.T) {
	f := NewForecaster(DefaultThresholds())
	// Steep climb: +10 beds/day approaching capacity.
	h := series(100, 110, 120, 130, 140, 150, 160, 170)

	_, insights, err := f.Forecast(h, 7, 180)
	require.NoError(t, err)

	require.NotNil(t, insights.DaysUntilThreshold)
	assert.LessOrEqual(t, *insights.DaysUntilThreshold, 3)
	assert.Equal(t, "Activate surge protocol and prepare overflow capacity", insights.Recommendation)
}

func TestForecastClampedToCapacity(t *testing.T) {
	f := NewForecaster(DefaultThresholds())
	h := series(150, 160, 170, 180, 190, 195, 198, 200)

	points, _, err := f.Forecast(h, 14, 180)
	require.NoError(t, err)

	for _, p := range points[8:] {
		assert.GreaterOrEqual(t, *p.Predicted, 0)
		assert.LessOrEqual(t, *p.Predicted, 200)
	}
}
