package history

import (
	"context"

	"surgewatch/internal/models"
)

// Provider supplies an ordered (oldest first) series of day records for a
// hospital. The core engine only ever reads from this interface.
type Provider interface {
	Series(ctx context.Context, hospitalID string, days int) ([]models.DayRecord, error)
}

// HospitalInfo describes one selectable hospital.
type HospitalInfo struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Location   string `json:"location"`
	IsUploaded bool   `json:"is_uploaded,omitempty"`
}

// Composite prefers uploaded datasets, then the persistent store, then the
// simulator. Uploads and the store are optional.
type Composite struct {
	Uploads   *UploadStore
	Store     Provider
	Simulator *Simulator
}

// Series resolves the hospital's history through the provider chain.
func (c *Composite) Series(ctx context.Context, hospitalID string, days int) ([]models.DayRecord, error) {
	if c.Uploads != nil && c.Uploads.Has(hospitalID) {
		return c.Uploads.Series(ctx, hospitalID, days)
	}
	if c.Store != nil {
		if recs, err := c.Store.Series(ctx, hospitalID, days); err == nil && len(recs) > 0 {
			return recs, nil
		}
	}
	return c.Simulator.Series(ctx, hospitalID, days)
}

// Hospitals lists the uploaded datasets ahead of the simulated fleet.
func (c *Composite) Hospitals() []HospitalInfo {
	out := []HospitalInfo{}
	if c.Uploads != nil {
		out = append(out, c.Uploads.Hospitals()...)
	}
	out = append(out, c.Simulator.Hospitals()...)
	return out
}
