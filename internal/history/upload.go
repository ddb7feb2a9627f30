package history

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"surgewatch/internal/models"
)

// UploadResult reports how an uploaded dataset was interpreted.
type UploadResult struct {
	HospitalID       string   `json:"hospital_id"`
	Rows             int      `json:"rows"`
	ColumnsFound     []string `json:"columns_found"`
	ColumnsGenerated []string `json:"columns_generated"`
	Warnings         []string `json:"warnings"`
	DateStart        string   `json:"date_start"`
	DateEnd          string   `json:"date_end"`
}

// UploadStore holds uploaded hospital datasets in memory, keyed by hospital
// id. Column normalization and auto-generation of missing optional fields
// happen here so the core engine only ever sees complete records.
type UploadStore struct {
	mu       sync.RWMutex
	datasets map[string][]models.DayRecord
	results  map[string]UploadResult
}

// NewUploadStore returns an empty store.
func NewUploadStore() *UploadStore {
	return &UploadStore{
		datasets: make(map[string][]models.DayRecord),
		results:  make(map[string]UploadResult),
	}
}

// requiredColumns must be present (directly or via an alternative header).
var requiredColumns = []string{"date", "occupied_beds", "total_beds"}

// headerAlternatives maps canonical column names to accepted aliases.
var headerAlternatives = map[string][]string{
	"date":          {"datetime", "time", "day", "record_date"},
	"occupied_beds": {"beds_occupied", "current_beds", "beds_used", "occupied"},
	"total_beds":    {"bed_capacity", "capacity", "max_beds", "beds_total"},
	"aqi":           {"pollution", "air_quality", "pollution_aqi"},
	"total_icu":     {"total_icu_beds", "icu_capacity"},
	"occupied_icu":  {"icu_occupied", "icu_used"},
}

var dateLayouts = []string{"2006-01-02", "2006/01/02", "02-01-2006", time.RFC3339}

// ParseCSV reads an uploaded CSV, repairs headers, fills missing optional
// columns with documented defaults, and stores the dataset under hospitalID.
func (u *UploadStore) ParseCSV(r io.Reader, hospitalID string) (UploadResult, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return UploadResult{}, fmt.Errorf("read csv: %w", err)
	}
	if len(rows) < 2 {
		return UploadResult{}, &models.InvalidDataError{Field: "file", Reason: "no data rows"}
	}

	index := normalizeHeader(rows[0])
	result := UploadResult{HospitalID: hospitalID}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return UploadResult{}, &models.InvalidDataError{Field: col, Reason: "missing required column"}
		}
	}
	for col := range index {
		result.ColumnsFound = append(result.ColumnsFound, col)
	}
	sort.Strings(result.ColumnsFound)

	generated := map[string]bool{}
	records := make([]models.DayRecord, 0, len(rows)-1)
	for n, row := range rows[1:] {
		rec, genCols, err := parseRow(row, index)
		if err != nil {
			return UploadResult{}, fmt.Errorf("row %d: %w", n+2, err)
		}
		for _, c := range genCols {
			generated[c] = true
		}
		records = append(records, rec)
	}

	sort.Slice(records, func(i, j int) bool { return records[i].Date.Before(records[j].Date) })

	for col := range generated {
		result.ColumnsGenerated = append(result.ColumnsGenerated, col)
	}
	sort.Strings(result.ColumnsGenerated)
	if len(result.ColumnsGenerated) > 0 {
		result.Warnings = append(result.Warnings,
			"generated default values for: "+strings.Join(result.ColumnsGenerated, ", "))
	}
	result.Rows = len(records)
	result.DateStart = records[0].Date.Format("2006-01-02")
	result.DateEnd = records[len(records)-1].Date.Format("2006-01-02")

	u.mu.Lock()
	u.datasets[hospitalID] = records
	u.results[hospitalID] = result
	u.mu.Unlock()

	return result, nil
}

// normalizeHeader lowercases, trims and underscores headers, then resolves
// accepted aliases onto canonical names.
func normalizeHeader(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for i, col := range header {
		name := strings.ReplaceAll(strings.TrimSpace(strings.ToLower(col)), " ", "_")
		index[name] = i
	}
	for canonical, alts := range headerAlternatives {
		if _, ok := index[canonical]; ok {
			continue
		}
		for _, alt := range alts {
			if i, ok := index[alt]; ok {
				index[canonical] = i
				break
			}
		}
	}
	return index
}

func parseRow(row []string, index map[string]int) (models.DayRecord, []string, error) {
	var generated []string

	field := func(name string) (string, bool) {
		i, ok := index[name]
		if !ok || i >= len(row) {
			return "", false
		}
		v := strings.TrimSpace(row[i])
		return v, v != ""
	}

	intField := func(name string, fallback int) int {
		v, ok := field(name)
		if !ok {
			generated = append(generated, name)
			return fallback
		}
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			generated = append(generated, name)
			return fallback
		}
		return int(n)
	}

	floatField := func(name string, fallback float64) float64 {
		v, ok := field(name)
		if !ok {
			generated = append(generated, name)
			return fallback
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			generated = append(generated, name)
			return fallback
		}
		return f
	}

	dateStr, ok := field("date")
	if !ok {
		return models.DayRecord{}, nil, &models.InvalidDataError{Field: "date", Reason: "empty value"}
	}
	var date time.Time
	var err error
	for _, layout := range dateLayouts {
		if date, err = time.Parse(layout, dateStr); err == nil {
			break
		}
	}
	if err != nil {
		return models.DayRecord{}, nil, &models.InvalidDataError{Field: "date", Reason: "unparseable date " + dateStr}
	}

	occupied := intField("occupied_beds", 100)
	totalBeds := intField("total_beds", 200)

	// Missing optional capacity columns are derived from occupancy the same
	// way the upload repair in the original system did.
	occupiedICU := intField("occupied_icu", int(float64(occupied)*0.15))
	totalICU := intField("total_icu", 30)
	ventsUsed := intField("ventilators_used", occupiedICU/2)
	totalVents := intField("total_ventilators", 20)
	staff := intField("staff_on_duty", 120)

	return models.DayRecord{
		Date:             date,
		TotalBeds:        totalBeds,
		OccupiedBeds:     occupied,
		TotalICU:         totalICU,
		OccupiedICU:      occupiedICU,
		TotalVentilators: totalVents,
		VentilatorsUsed:  ventsUsed,
		StaffOnDuty:      staff,
		Temperature:      floatField("temperature", 25),
		Humidity:         floatField("humidity", 60),
		AQI:              intField("aqi", 75),
		FluCases:         intField("flu_cases", 30),
		Admissions:       intField("admissions", 8),
		Discharges:       intField("discharges", 6),
	}, generated, nil
}

// Has reports whether a dataset exists for the hospital id.
func (u *UploadStore) Has(hospitalID string) bool {
	u.mu.RLock()
	defer u.mu.RUnlock()
	_, ok := u.datasets[hospitalID]
	return ok
}

// Series returns the trailing days of an uploaded dataset.
func (u *UploadStore) Series(_ context.Context, hospitalID string, days int) ([]models.DayRecord, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	recs, ok := u.datasets[hospitalID]
	if !ok {
		return nil, &models.InvalidDataError{Field: "hospital_id", Reason: "no uploaded data for " + hospitalID}
	}
	if days > 0 && len(recs) > days {
		recs = recs[len(recs)-days:]
	}
	out := make([]models.DayRecord, len(recs))
	copy(out, recs)
	return out, nil
}

// Delete removes an uploaded dataset; reports whether it existed.
func (u *UploadStore) Delete(hospitalID string) bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	_, ok := u.datasets[hospitalID]
	delete(u.datasets, hospitalID)
	delete(u.results, hospitalID)
	return ok
}

// Results lists the stored upload summaries.
func (u *UploadStore) Results() []UploadResult {
	u.mu.RLock()
	defer u.mu.RUnlock()
	out := make([]UploadResult, 0, len(u.results))
	for _, r := range u.results {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].HospitalID < out[j].HospitalID })
	return out
}

// Hospitals lists uploaded datasets as selectable hospitals.
func (u *UploadStore) Hospitals() []HospitalInfo {
	u.mu.RLock()
	defer u.mu.RUnlock()
	ids := make([]string, 0, len(u.datasets))
	for id := range u.datasets {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]HospitalInfo, 0, len(ids))
	for _, id := range ids {
		out = append(out, HospitalInfo{ID: id, Name: "Uploaded: " + id, Location: "Custom Data", IsUploaded: true})
	}
	return out
}
