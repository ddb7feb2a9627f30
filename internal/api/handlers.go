package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"surgewatch/internal/agent"
	"surgewatch/internal/config"
	"surgewatch/internal/db"
	"surgewatch/internal/engine"
	"surgewatch/internal/history"
	"surgewatch/internal/logging"
	"surgewatch/internal/models"
	"surgewatch/internal/notifier"
	"surgewatch/internal/summarizer"
	"surgewatch/internal/weather"
)

const (
	defaultHospitalID = "H001"
	defaultDays       = 30
	maxForecastDays   = 14
)

type Handler struct {
	cfg        config.Config
	provider   *history.Composite
	uploads    *history.UploadStore
	store      *db.DB
	forecaster *engine.Forecaster
	agent      *agent.Agent
	summarizer *summarizer.Summarizer
	weather    *weather.Client
	notifier   *notifier.Notifier
	logger     *logging.Logger
}

func NewHandler(
	cfg config.Config,
	provider *history.Composite,
	store *db.DB,
	forecaster *engine.Forecaster,
	ag *agent.Agent,
	sum *summarizer.Summarizer,
	wc *weather.Client,
	nf *notifier.Notifier,
	logger *logging.Logger,
) *Handler {
	return &Handler{
		cfg:        cfg,
		provider:   provider,
		uploads:    provider.Uploads,
		store:      store,
		forecaster: forecaster,
		agent:      ag,
		summarizer: sum,
		weather:    wc,
		notifier:   nf,
		logger:     logger,
	}
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"service":   "surgewatch",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// queryInt parses an integer query parameter with a default.
func queryInt(c *gin.Context, name string, fallback int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &models.InvalidDataError{Field: name, Reason: "must be an integer"}
	}
	return v, nil
}

func (h *Handler) hospitalID(c *gin.Context) string {
	if id := c.Query("hospital_id"); id != "" {
		return id
	}
	return defaultHospitalID
}

func (h *Handler) DashboardSummary(c *gin.Context) {
	hospitalID := h.hospitalID(c)
	days, err := queryInt(c, "days", defaultDays)
	if err != nil {
		h.respondError(c, err)
		return
	}

	series, err := h.provider.Series(c.Request.Context(), hospitalID, days)
	if err != nil {
		h.respondError(c, err)
		return
	}
	situation, issues, err := h.agent.Assess(hospitalID, series)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"hospital_id": hospitalID,
		"date":        situation.Timestamp.Format("2006-01-02"),
		"metrics":     situation.Metrics,
		"environment": situation.Environment,
		"trends":      situation.Trends,
		"risk":        situation.Risk,
		"issue_count": len(issues),
	})
}

func (h *Handler) DashboardTrends(c *gin.Context) {
	hospitalID := h.hospitalID(c)
	days, err := queryInt(c, "days", defaultDays)
	if err != nil {
		h.respondError(c, err)
		return
	}

	series, err := h.provider.Series(c.Request.Context(), hospitalID, days)
	if err != nil {
		h.respondError(c, err)
		return
	}

	rows := make([]gin.H, 0, len(series))
	for _, rec := range series {
		snap, err := engine.ComputeSnapshot(rec)
		if err != nil {
			h.respondError(c, err)
			return
		}
		rows = append(rows, gin.H{
			"date":          rec.Date.Format("2006-01-02"),
			"bed_occupancy": snap.BedOccupancyPct,
			"icu_occupancy": snap.ICUOccupancyPct,
			"flu_cases":     rec.FluCases,
			"aqi":           rec.AQI,
			"admissions":    rec.Admissions,
			"discharges":    rec.Discharges,
		})
	}
	c.JSON(http.StatusOK, gin.H{"hospital_id": hospitalID, "trends": rows})
}

func (h *Handler) Predictions(c *gin.Context) {
	hospitalID := h.hospitalID(c)
	horizon, err := queryInt(c, "days", 7)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if horizon < 1 || horizon > maxForecastDays {
		h.respondError(c, &models.InvalidDataError{Field: "days", Reason: "must be between 1 and 14"})
		return
	}

	series, err := h.provider.Series(c.Request.Context(), hospitalID, defaultDays)
	if err != nil {
		h.respondError(c, err)
		return
	}

	threshold, err := queryInt(c, "threshold", 0)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if threshold <= 0 && len(series) > 0 {
		threshold = series[len(series)-1].TotalBeds * 90 / 100
	}

	points, insights, err := h.forecaster.Forecast(series, horizon, threshold)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"hospital_id": hospitalID,
		"forecast":    points,
		"insights":    insights,
	})
}

type agentRunRequest struct {
	HospitalID     string `json:"hospital_id"`
	AutonomousMode bool   `json:"autonomous_mode"`
	Days           int    `json:"days"`
}

func (h *Handler) AgentRun(c *gin.Context) {
	var req agentRunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Errorf("Invalid request body for agent run: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if req.HospitalID == "" {
		req.HospitalID = defaultHospitalID
	}
	if req.Days <= 0 {
		req.Days = defaultDays
	}

	series, err := h.provider.Series(c.Request.Context(), req.HospitalID, req.Days)
	if err != nil {
		h.respondError(c, err)
		return
	}
	result, err := h.agent.Run(req.HospitalID, series, req.AutonomousMode)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if h.notifier != nil {
		h.notifier.NotifyRun(c.Request.Context(), result)
	}
	h.logger.Infof("Agent run for %s: %d issues, %d executed, %d pending",
		req.HospitalID, len(result.Issues), len(result.ActionsExecuted), len(result.ActionsPending))
	c.JSON(http.StatusOK, result)
}

func (h *Handler) AgentStatus(c *gin.Context) {
	reg := h.agent.Registry()
	c.JSON(http.StatusOK, gin.H{
		"pending_actions": reg.Pending(),
		"executed_count":  reg.ExecutedCount(),
		"autonomous_mode": h.cfg.Agent.Autonomous,
	})
}

func (h *Handler) actionID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.respondError(c, &models.InvalidDataError{Field: "id", Reason: "must be an integer"})
		return 0, false
	}
	return id, true
}

func (h *Handler) AgentApprove(c *gin.Context) {
	id, ok := h.actionID(c)
	if !ok {
		return
	}
	action, err := h.agent.Registry().Approve(id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.logger.Infof("Approved action %d: %s", id, action.Description)
	c.JSON(http.StatusOK, gin.H{"status": "approved", "action": action})
}

func (h *Handler) AgentReject(c *gin.Context) {
	id, ok := h.actionID(c)
	if !ok {
		return
	}
	action, err := h.agent.Registry().Reject(id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.logger.Infof("Rejected action %d: %s", id, action.Description)
	c.JSON(http.StatusOK, gin.H{"status": "rejected", "action": action})
}

func (h *Handler) AgentAnalysis(c *gin.Context) {
	hospitalID := h.hospitalID(c)
	series, err := h.provider.Series(c.Request.Context(), hospitalID, defaultDays)
	if err != nil {
		h.respondError(c, err)
		return
	}
	situation, issues, err := h.agent.Assess(hospitalID, series)
	if err != nil {
		h.respondError(c, err)
		return
	}
	summary := h.summarizer.Summarize(c.Request.Context(), situation, issues)
	c.JSON(http.StatusOK, gin.H{
		"hospital_id": hospitalID,
		"summary":     summary,
		"risk":        situation.Risk,
		"issues":      issues,
	})
}

func (h *Handler) AgentLog(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"log": h.agent.Registry().Log()})
}

func (h *Handler) Alerts(c *gin.Context) {
	hospitalID := h.hospitalID(c)
	series, err := h.provider.Series(c.Request.Context(), hospitalID, defaultDays)
	if err != nil {
		h.respondError(c, err)
		return
	}
	_, issues, err := h.agent.Assess(hospitalID, series)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"hospital_id": hospitalID,
		"count":       len(issues),
		"alerts":      issues,
	})
}

func (h *Handler) Hospitals(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"hospitals": h.provider.Hospitals()})
}

func (h *Handler) LiveData(c *gin.Context) {
	city := c.Query("city")
	if city == "" {
		city = h.cfg.Weather.DefaultCity
	}
	env, source := h.weather.Current(c.Request.Context(), city)
	c.JSON(http.StatusOK, gin.H{
		"city":        city,
		"temperature": env.Temperature,
		"humidity":    env.Humidity,
		"aqi":         env.AQI,
		"source":      source,
		"timestamp":   time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) LiveDataStatus(c *gin.Context) {
	source := "simulated"
	if h.weather.Configured() {
		source = "openweathermap"
	}
	c.JSON(http.StatusOK, gin.H{
		"configured": h.weather.Configured(),
		"source":     source,
	})
}
