package engine

import (
	"math"
	"time"

	"surgewatch/internal/models"
)

const (
	// fitWindow caps how many trailing points feed the linear fit.
	fitWindow = 30

	weekendFactor = 1.05
	fluFactor     = 1.03

	recommendSurge   = "Activate surge protocol and prepare overflow capacity"
	recommendPrepare = "Prepare surge capacity and review staffing"
	recommendMonitor = "Continue monitoring"
)

// Forecaster projects occupancy forward with a seasonally adjusted linear
// trend and horizon-widening confidence bounds.
type Forecaster struct {
	thresholds Thresholds
}

// NewForecaster builds a Forecaster.
func NewForecaster(t Thresholds) *Forecaster {
	return &Forecaster{thresholds: t}
}

// Forecast returns the history tail with actuals plus horizonDays future
// points with predictions, bounds and per-point risk levels, together with
// derived insights. Deterministic for fixed inputs; fewer than 2 historical
// points yields an InsufficientHistoryError.
func (f *Forecaster) Forecast(history []models.DayRecord, horizonDays, capacityThreshold int) ([]models.ForecastPoint, models.ForecastInsights, error) {
	if len(history) < 2 {
		return nil, models.ForecastInsights{}, &models.InsufficientHistoryError{Have: len(history), Need: 2}
	}

	tail := history
	if len(tail) > fitWindow {
		tail = tail[len(tail)-fitWindow:]
	}

	slope, intercept := linearFit(tail)
	totalBeds := tail[len(tail)-1].TotalBeds
	fluAvg := trailingFluAverage(tail)
	lastDate := tail[len(tail)-1].Date

	points := make([]models.ForecastPoint, 0, len(tail)+horizonDays)
	for _, rec := range tail {
		actual := rec.OccupiedBeds
		points = append(points, models.ForecastPoint{Date: rec.Date, Actual: intPtr(actual)})
	}

	insights := models.ForecastInsights{
		Threshold:      capacityThreshold,
		Recommendation: recommendMonitor,
	}

	for i := 0; i < horizonDays; i++ {
		date := lastDate.AddDate(0, 0, i+1)
		raw := intercept + slope*float64(len(tail)+i)
		raw *= seasonalAdjustment(date, fluAvg, f.thresholds.FluSurge)

		predicted := int(math.Round(raw))
		if predicted < 0 {
			predicted = 0
		}
		if totalBeds > 0 && predicted > totalBeds {
			predicted = totalBeds
		}

		upper := predicted + 10 + 2*i
		lower := predicted - 8 - i
		if lower < 0 {
			// Keep the interval width at 18+3i when the lower bound clamps,
			// so bounds never narrow as the horizon grows.
			lower = 0
			upper = 18 + 3*i
		}

		level := BandOccupancy(pct(predicted, totalBeds))
		points = append(points, models.ForecastPoint{
			Date:       date,
			Predicted:  intPtr(predicted),
			UpperBound: intPtr(upper),
			LowerBound: intPtr(lower),
			RiskLevel:  &level,
		})

		if i == 0 || predicted > insights.PeakOccupancy {
			insights.PeakOccupancy = predicted
			insights.PeakDate = date
		}
		if insights.DaysUntilThreshold == nil && predicted >= capacityThreshold {
			d := i + 1
			insights.DaysUntilThreshold = &d
		}
	}

	switch {
	case insights.PeakOccupancy >= capacityThreshold:
		insights.Recommendation = recommendSurge
	case float64(insights.PeakOccupancy) >= 0.9*float64(capacityThreshold):
		insights.Recommendation = recommendPrepare
	}

	return points, insights, nil
}

// linearFit returns the least-squares slope and intercept of occupied beds
// against the day index of the fitted window.
func linearFit(tail []models.DayRecord) (slope, intercept float64) {
	n := float64(len(tail))
	var sumX, sumY, sumXY, sumXX float64
	for i, rec := range tail {
		x := float64(i)
		y := float64(rec.OccupiedBeds)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}
	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0, sumY / n
	}
	slope = (n*sumXY - sumX*sumY) / denom
	intercept = (sumY - slope*sumX) / n
	return slope, intercept
}

// trailingFluAverage averages flu cases over the last up-to-7 points.
func trailingFluAverage(tail []models.DayRecord) float64 {
	window := tail
	if len(window) > 7 {
		window = window[len(window)-7:]
	}
	var sum float64
	for _, rec := range window {
		sum += float64(rec.FluCases)
	}
	return sum / float64(len(window))
}

// seasonalAdjustment scales a projection for weekend admission uplift and
// sustained flu pressure.
func seasonalAdjustment(date time.Time, fluAvg, fluSurge float64) float64 {
	adj := 1.0
	if wd := date.Weekday(); wd == time.Saturday || wd == time.Sunday {
		adj *= weekendFactor
	}
	if fluAvg > fluSurge {
		adj *= fluFactor
	}
	return adj
}

func intPtr(v int) *int { return &v }
