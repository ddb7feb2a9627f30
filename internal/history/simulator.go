package history

import (
	"context"
	"hash/fnv"
	"math"
	"math/rand"
	"sort"
	"time"

	"surgewatch/internal/models"
)

// simulated fleet with capacity scaling relative to the baseline hospital.
var fleet = map[string]struct {
	name     string
	location string
	scale    float64
}{
	"H001": {"City General Hospital", "Delhi", 1.0},
	"H002": {"St. Mary Medical Center", "Mumbai", 0.8},
	"H003": {"Regional Health Center", "Bangalore", 1.2},
}

const (
	baseTotalBeds   = 200
	baseTotalICU    = 30
	baseVentilators = 20
)

// Simulator generates seasonally plausible hospital series. The generator is
// seeded from the hospital id, so the same id and day count always produce
// the same series within a calendar day.
type Simulator struct {
	now func() time.Time
}

// NewSimulator returns a Simulator anchored at the real clock.
func NewSimulator() *Simulator {
	return &Simulator{now: time.Now}
}

// NewSimulatorAt returns a Simulator with an injected clock for tests.
func NewSimulatorAt(now func() time.Time) *Simulator {
	return &Simulator{now: now}
}

// Hospitals lists the simulated fleet in id order.
func (s *Simulator) Hospitals() []HospitalInfo {
	ids := make([]string, 0, len(fleet))
	for id := range fleet {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]HospitalInfo, 0, len(ids))
	for _, id := range ids {
		h := fleet[id]
		out = append(out, HospitalInfo{ID: id, Name: h.name, Location: h.location})
	}
	return out
}

// Series generates days of history ending today, oldest first.
func (s *Simulator) Series(_ context.Context, hospitalID string, days int) ([]models.DayRecord, error) {
	if days < 1 {
		days = 1
	}
	scale := 1.0
	if h, ok := fleet[hospitalID]; ok {
		scale = h.scale
	}

	rng := rand.New(rand.NewSource(seedFor(hospitalID)))
	end := s.now().Truncate(24 * time.Hour)
	start := end.AddDate(0, 0, -(days - 1))

	totalBeds := int(float64(baseTotalBeds) * scale)
	totalICU := int(float64(baseTotalICU) * scale)
	totalVents := int(float64(baseVentilators) * scale)

	records := make([]models.DayRecord, 0, days)
	for i := 0; i < days; i++ {
		date := start.AddDate(0, 0, i)
		doy := float64(date.YearDay())
		weekend := date.Weekday() == time.Saturday || date.Weekday() == time.Sunday

		temp := 20 + 10*math.Sin((doy-105)*2*math.Pi/365) + rng.NormFloat64()*3
		humidity := clamp(60+15*math.Sin((doy-80)*2*math.Pi/365)+rng.NormFloat64()*8, 30, 95)
		aqi := clamp(80-30*math.Sin((doy-105)*2*math.Pi/365)+gamma2(rng, 10), 20, 300)

		seasonalFlu := 40 + 30*math.Cos((doy-15)*2*math.Pi/365)
		flu := poisson(rng, math.Max(seasonalFlu, 10))

		fluImpact := (float64(flu) - 40) * 0.4
		aqiImpact := (aqi - 80) * 0.08
		weekendImpact := 0.0
		if weekend {
			weekendImpact = 15
		}
		occupied := int(clamp((120+fluImpact+aqiImpact+weekendImpact+rng.NormFloat64()*8)*scale, 60*scale, float64(totalBeds)))

		icuBase := float64(occupied) * 0.12
		if flu > 60 {
			icuBase += 5
		}
		occupiedICU := int(clamp(icuBase+rng.NormFloat64()*2, 5*scale, float64(totalICU)))

		vents := int(clamp(float64(occupiedICU)*0.5+rng.NormFloat64()*2, 0, float64(totalVents)))

		staffBase := 130.0
		if weekend {
			staffBase = 100
		}
		staff := int(clamp((staffBase+rng.NormFloat64()*10)*scale, 80*scale, 150*scale))

		admissionRate := 15.0
		if weekend {
			admissionRate *= 1.2
		}

		records = append(records, models.DayRecord{
			Date:             date,
			TotalBeds:        totalBeds,
			OccupiedBeds:     occupied,
			TotalICU:         totalICU,
			OccupiedICU:      occupiedICU,
			TotalVentilators: totalVents,
			VentilatorsUsed:  vents,
			StaffOnDuty:      staff,
			Temperature:      math.Round(temp*10) / 10,
			Humidity:         math.Round(humidity*10) / 10,
			AQI:              int(aqi),
			FluCases:         flu,
			Admissions:       poisson(rng, admissionRate),
			Discharges:       poisson(rng, 13),
		})
	}
	return records, nil
}

func seedFor(hospitalID string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(hospitalID))
	return int64(h.Sum64() & math.MaxInt64)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// poisson draws a Poisson sample via Knuth's method; fine for small rates.
func poisson(rng *rand.Rand, lambda float64) int {
	l := math.Exp(-lambda)
	k := 0
	p := 1.0
	for {
		p *= rng.Float64()
		if p <= l {
			return k
		}
		k++
	}
}

// gamma2 draws from Gamma(shape=2, scale=theta) as the sum of two
// exponentials.
func gamma2(rng *rand.Rand, theta float64) float64 {
	return -theta * math.Log(rng.Float64()*rng.Float64())
}
