package db

import (
	"context"
	"fmt"

	"surgewatch/internal/models"
)

// SaveSeries upserts a hospital's day records, keyed by (hospital_id, day).
func (d *DB) SaveSeries(ctx context.Context, hospitalID string, records []models.DayRecord) error {
	query := `
		INSERT INTO hospital_days (
			hospital_id, day, total_beds, occupied_beds, total_icu, occupied_icu,
			total_ventilators, ventilators_used, staff_on_duty,
			temperature, humidity, aqi, flu_cases, admissions, discharges
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
		ON CONFLICT (hospital_id, day) DO UPDATE SET
			total_beds = EXCLUDED.total_beds,
			occupied_beds = EXCLUDED.occupied_beds,
			total_icu = EXCLUDED.total_icu,
			occupied_icu = EXCLUDED.occupied_icu,
			total_ventilators = EXCLUDED.total_ventilators,
			ventilators_used = EXCLUDED.ventilators_used,
			staff_on_duty = EXCLUDED.staff_on_duty,
			temperature = EXCLUDED.temperature,
			humidity = EXCLUDED.humidity,
			aqi = EXCLUDED.aqi,
			flu_cases = EXCLUDED.flu_cases,
			admissions = EXCLUDED.admissions,
			discharges = EXCLUDED.discharges`

	for _, r := range records {
		_, err := d.Pool.Exec(ctx, query,
			hospitalID, r.Date, r.TotalBeds, r.OccupiedBeds, r.TotalICU, r.OccupiedICU,
			r.TotalVentilators, r.VentilatorsUsed, r.StaffOnDuty,
			r.Temperature, r.Humidity, r.AQI, r.FluCases, r.Admissions, r.Discharges)
		if err != nil {
			return fmt.Errorf("save day %s: %w", r.Date.Format("2006-01-02"), err)
		}
	}
	return nil
}

// Series returns the trailing days of a hospital's stored history, oldest
// first. It satisfies the history provider interface.
func (d *DB) Series(ctx context.Context, hospitalID string, days int) ([]models.DayRecord, error) {
	query := `
		SELECT day, total_beds, occupied_beds, total_icu, occupied_icu,
			total_ventilators, ventilators_used, staff_on_duty,
			temperature, humidity, aqi, flu_cases, admissions, discharges
		FROM hospital_days
		WHERE hospital_id = $1
		ORDER BY day DESC
		LIMIT $2`

	rows, err := d.Pool.Query(ctx, query, hospitalID, days)
	if err != nil {
		return nil, fmt.Errorf("query series: %w", err)
	}
	defer rows.Close()

	var records []models.DayRecord
	for rows.Next() {
		var r models.DayRecord
		if err := rows.Scan(&r.Date, &r.TotalBeds, &r.OccupiedBeds, &r.TotalICU, &r.OccupiedICU,
			&r.TotalVentilators, &r.VentilatorsUsed, &r.StaffOnDuty,
			&r.Temperature, &r.Humidity, &r.AQI, &r.FluCases, &r.Admissions, &r.Discharges); err != nil {
			return nil, fmt.Errorf("scan day: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Reverse into chronological order.
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	return records, nil
}

// ListHospitals returns the distinct hospital ids with stored history.
func (d *DB) ListHospitals(ctx context.Context) ([]string, error) {
	rows, err := d.Pool.Query(ctx, `SELECT DISTINCT hospital_id FROM hospital_days ORDER BY hospital_id`)
	if err != nil {
		return nil, fmt.Errorf("list hospitals: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// DeleteSeries drops a hospital's stored history.
func (d *DB) DeleteSeries(ctx context.Context, hospitalID string) error {
	_, err := d.Pool.Exec(ctx, `DELETE FROM hospital_days WHERE hospital_id = $1`, hospitalID)
	return err
}
