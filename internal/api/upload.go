package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const uploadTemplate = `date,total_beds,occupied_beds,total_icu,occupied_icu,total_ventilators,ventilators_used,staff_on_duty,temperature,humidity,aqi,flu_cases,admissions,discharges
2026-01-01,200,140,30,18,20,9,125,18.5,62,85,42,14,12
2026-01-02,200,145,30,19,20,10,122,17.9,65,92,45,16,11
`

func (h *Handler) Upload(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file field"})
		return
	}
	defer file.Close()

	hospitalID := strings.TrimSpace(c.PostForm("hospital_id"))
	if hospitalID == "" {
		hospitalID = "uploaded"
	}

	result, err := h.uploads.ParseCSV(file, hospitalID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	// Write through to Postgres when configured so uploads survive restarts.
	if h.store != nil {
		records, err := h.uploads.Series(c.Request.Context(), hospitalID, 0)
		if err == nil {
			if err := h.store.SaveSeries(c.Request.Context(), hospitalID, records); err != nil {
				h.logger.Errorf("persisting upload %s failed: %v", hospitalID, err)
			}
		}
	}

	h.logger.Infof("Uploaded dataset %s: %d rows", hospitalID, result.Rows)
	c.JSON(http.StatusCreated, result)
}

func (h *Handler) UploadStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"uploads": h.uploads.Results()})
}

func (h *Handler) UploadDelete(c *gin.Context) {
	hospitalID := c.Param("hospital_id")
	if !h.uploads.Delete(hospitalID) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no uploaded data for " + hospitalID})
		return
	}
	if h.store != nil {
		if err := h.store.DeleteSeries(c.Request.Context(), hospitalID); err != nil {
			h.logger.Errorf("deleting persisted upload %s failed: %v", hospitalID, err)
		}
	}
	h.logger.Infof("Deleted uploaded dataset %s", hospitalID)
	c.JSON(http.StatusOK, gin.H{"status": "deleted", "hospital_id": hospitalID})
}

func (h *Handler) UploadTemplate(c *gin.Context) {
	c.Header("Content-Disposition", `attachment; filename="surgewatch_template.csv"`)
	c.Data(http.StatusOK, "text/csv", []byte(uploadTemplate))
}
