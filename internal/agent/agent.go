package agent

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"surgewatch/internal/engine"
	"surgewatch/internal/models"
)

// autoExecutable is the fixed allowlist of action types the agent may execute
// without human approval when autonomous mode is on. Diversion, staffing,
// supply and protocol changes always go through the approval queue.
var autoExecutable = map[models.ActionType]bool{
	models.ActionAlert: true,
}

// Agent runs the perceive-reason-plan-execute cycle over a hospital's
// history. It holds no cross-run state beyond the injected registry.
type Agent struct {
	thresholds engine.Thresholds
	scorer     *engine.Scorer
	analyzer   *engine.Analyzer
	registry   *Registry
}

// New constructs an Agent around a shared action registry.
func New(t engine.Thresholds, registry *Registry) *Agent {
	return &Agent{
		thresholds: t,
		scorer:     engine.NewScorer(t),
		analyzer:   engine.NewAnalyzer(t),
		registry:   registry,
	}
}

// Registry exposes the action registry for approve/reject callers.
func (a *Agent) Registry() *Registry {
	return a.registry
}

// trace accumulates the human-readable reasoning log for one run.
type trace struct {
	steps []string
}

// add appends a numbered step. A nil trace discards steps, which lets
// read-only callers share perceive/reason without collecting a log.
func (t *trace) add(step, conclusion string) {
	if t == nil {
		return
	}
	t.steps = append(t.steps, fmt.Sprintf("%d. %s: %s", len(t.steps)+1, step, conclusion))
}

func (t *trace) String() string {
	return strings.Join(t.steps, "\n")
}

// Run executes one full agent cycle. The previous run's pending actions are
// replaced by this run's plan.
func (a *Agent) Run(hospitalID string, history []models.DayRecord, autonomous bool) (models.AgentRunResult, error) {
	if len(history) == 0 {
		return models.AgentRunResult{}, &models.InvalidDataError{Field: "history", Reason: "empty series"}
	}

	tr := &trace{}

	situation, err := a.perceive(hospitalID, history, tr)
	if err != nil {
		return models.AgentRunResult{}, err
	}
	issues := a.reason(situation, tr)
	actions := a.plan(issues, situation, tr)
	executed, pending := a.execute(actions, autonomous, tr)

	return models.AgentRunResult{
		Situation:       situation,
		Issues:          issues,
		ActionsExecuted: executed,
		ActionsPending:  pending,
		ReasoningTrace:  tr.String(),
		Timestamp:       time.Now(),
	}, nil
}

// Assess runs perception and reasoning only, leaving the registry untouched.
// Dashboard and alert reads use this to avoid replacing the pending plan.
func (a *Agent) Assess(hospitalID string, history []models.DayRecord) (models.Situation, []models.AgentIssue, error) {
	if len(history) == 0 {
		return models.Situation{}, nil, &models.InvalidDataError{Field: "history", Reason: "empty series"}
	}
	situation, err := a.perceive(hospitalID, history, nil)
	if err != nil {
		return models.Situation{}, nil, err
	}
	return situation, a.reason(situation, nil), nil
}

// perceive assembles the read-only situation from history.
func (a *Agent) perceive(hospitalID string, history []models.DayRecord, tr *trace) (models.Situation, error) {
	latest := history[len(history)-1]
	snap, err := engine.ComputeSnapshot(latest)
	if err != nil {
		return models.Situation{}, err
	}
	env := engine.EnvironmentFromRecord(latest)
	trend := a.analyzer.Analyze(history)
	risk := a.scorer.Score(snap, env)

	tr.add("PERCEPTION", fmt.Sprintf("beds %.1f%%, ICU %.1f%%, staff ratio %.2f, risk %s (%d/%d)",
		snap.BedOccupancyPct, snap.ICUOccupancyPct, snap.StaffRatio, risk.Level, risk.Score, risk.MaxScore))

	return models.Situation{
		HospitalID:  hospitalID,
		Timestamp:   latest.Date,
		Metrics:     snap,
		Environment: env,
		Trends:      trend,
		Risk:        risk,
	}, nil
}

// reason scans the situation against the escalation thresholds and emits
// issues in canonical order, deduplicated by (type, resource).
func (a *Agent) reason(s models.Situation, tr *trace) []models.AgentIssue {
	t := a.thresholds
	var issues []models.AgentIssue
	add := func(issue models.AgentIssue) {
		for _, existing := range issues {
			if existing.Type == issue.Type && existing.Resource == issue.Resource {
				return
			}
		}
		issues = append(issues, issue)
	}

	bedOcc := s.Metrics.BedOccupancyPct
	switch {
	case bedOcc >= t.BedCriticalPct:
		add(models.AgentIssue{Type: "capacity_critical", Resource: "beds", Severity: models.SeverityEmergency,
			Value: bedOcc, Message: fmt.Sprintf("CRITICAL: bed occupancy at %.1f%%", bedOcc)})
	case bedOcc >= t.BedWarningPct:
		add(models.AgentIssue{Type: "capacity_warning", Resource: "beds", Severity: models.SeverityWarning,
			Value: bedOcc, Message: fmt.Sprintf("WARNING: bed occupancy at %.1f%%", bedOcc)})
	}

	icuOcc := s.Metrics.ICUOccupancyPct
	switch {
	case icuOcc >= t.ICUCriticalPct:
		add(models.AgentIssue{Type: "capacity_critical", Resource: "icu", Severity: models.SeverityEmergency,
			Value: icuOcc, Message: fmt.Sprintf("CRITICAL: ICU at %.1f%%", icuOcc)})
	case icuOcc >= t.ICUWarningPct:
		add(models.AgentIssue{Type: "capacity_warning", Resource: "icu", Severity: models.SeverityWarning,
			Value: icuOcc, Message: fmt.Sprintf("WARNING: ICU at %.1f%%", icuOcc)})
	}

	if vent := s.Metrics.VentilatorPct; vent >= t.VentCriticalPct {
		add(models.AgentIssue{Type: "equipment_critical", Resource: "ventilators", Severity: models.SeverityCritical,
			Value: vent, Message: fmt.Sprintf("CRITICAL: ventilator usage at %.1f%%", vent)})
	}

	if ratio := s.Metrics.StaffRatio; ratio < t.StaffRatioMin {
		add(models.AgentIssue{Type: "staffing_shortage", Resource: "staff", Severity: models.SeverityCritical,
			Value: ratio, Message: fmt.Sprintf("CRITICAL: staff ratio %.2f", ratio)})
	}

	if aqi := float64(s.Environment.AQI); aqi >= t.AQICritical {
		add(models.AgentIssue{Type: "environmental_alert", Resource: "air_quality", Severity: models.SeverityWarning,
			Value: aqi, Message: fmt.Sprintf("High AQI (%.0f)", aqi)})
	}

	if flu := float64(s.Environment.FluCases); flu >= t.FluSurge {
		add(models.AgentIssue{Type: "disease_surge", Resource: "flu", Severity: models.SeverityWarning,
			Value: flu, Message: fmt.Sprintf("Flu surge: %.0f cases", flu)})
	}

	if s.Trends.Direction == "increasing" && s.Trends.Velocity == "fast" {
		add(models.AgentIssue{Type: "trend_alert", Resource: "capacity", Severity: models.SeverityWarning,
			Value: float64(s.Trends.BedChange3d), Message: fmt.Sprintf("Rapid increase: +%d beds in 3 days", s.Trends.BedChange3d)})
	}

	if len(issues) == 0 {
		tr.add("REASONING", "no issues detected")
	} else {
		types := make([]string, len(issues))
		for i, issue := range issues {
			types[i] = issue.Type + "/" + issue.Resource
		}
		tr.add("REASONING", fmt.Sprintf("identified %d issues: %s", len(issues), strings.Join(types, ", ")))
	}
	return issues
}

// plan maps each issue to at most one action via the fixed table, assigns
// severity-based priorities and registry ids, and orders by priority.
func (a *Agent) plan(issues []models.AgentIssue, s models.Situation, tr *trace) []*models.AgentAction {
	var actions []*models.AgentAction
	add := func(actionType models.ActionType, description string, priority int, details models.ActionDetails) {
		actions = append(actions, &models.AgentAction{
			ActionType:  actionType,
			Description: description,
			Priority:    priority,
			Details:     details,
			Status:      models.StatusPending,
			CreatedAt:   time.Now(),
		})
	}

	for _, issue := range issues {
		switch {
		case issue.Type == "capacity_critical" && issue.Resource == "beds":
			add(models.ActionDiversion, "Activate ambulance diversion", 5, models.DiversionDetails{Reason: issue.Message})
		case issue.Type == "capacity_warning" && issue.Resource == "beds":
			add(models.ActionAlert, "Alert bed management - high occupancy", 3, models.AlertDetails{Reason: issue.Message})
		case issue.Type == "capacity_critical" && issue.Resource == "icu":
			add(models.ActionAlert, "URGENT: ICU at critical capacity", 5, models.AlertDetails{Reason: issue.Message})
		case issue.Type == "staffing_shortage":
			shortfall := s.Metrics.OccupiedBeds - s.Metrics.StaffOnDuty
			if shortfall < 1 {
				shortfall = 1
			}
			add(models.ActionStaffCall, "Request emergency staff callback", 4, models.StaffCallDetails{Requested: shortfall})
		case issue.Type == "equipment_critical":
			add(models.ActionSupplyOrder, "Request emergency ventilators", 5, models.SupplyDetails{Item: "ventilators", Quantity: 5})
		case issue.Type == "environmental_alert":
			add(models.ActionAlert, "Environmental alert: "+issue.Message, 2, models.AlertDetails{Reason: issue.Message})
		case issue.Type == "disease_surge":
			add(models.ActionProtocolActivation, "Consider flu surge protocol activation", 3, models.ProtocolDetails{Protocol: "FLU_SURGE"})
		case issue.Type == "trend_alert":
			add(models.ActionAlert, "Trend alert: rapid admission increase", 3, models.AlertDetails{Reason: issue.Message})
		}
	}

	sort.SliceStable(actions, func(i, j int) bool { return actions[i].Priority > actions[j].Priority })
	for _, action := range actions {
		action.ID = a.registry.assignID()
	}

	if len(actions) == 0 {
		tr.add("PLANNING", "no actions required")
	} else {
		tr.add("PLANNING", fmt.Sprintf("generated %d actions, top: %s", len(actions), actions[0].Description))
	}
	return actions
}

// execute applies the autonomy rule: allowlisted action types run immediately
// in autonomous mode, everything else waits for approval.
func (a *Agent) execute(actions []*models.AgentAction, autonomous bool, tr *trace) (executed, pending []models.AgentAction) {
	executed = make([]models.AgentAction, 0)
	pending = make([]models.AgentAction, 0)

	for _, action := range actions {
		if autonomous && autoExecutable[action.ActionType] {
			action.AutoExecuted = true
			action.RequiresApproval = false
			action.Status = models.StatusExecuted
			a.registry.logOutcome(action, "auto-executed")
			executed = append(executed, *action)
		} else {
			action.AutoExecuted = false
			action.RequiresApproval = true
			action.Status = models.StatusPending
			pending = append(pending, *action)
		}
	}
	a.registry.replace(actions)

	tr.add("EXECUTION", fmt.Sprintf("executed %d, pending approval %d", len(executed), len(pending)))
	return executed, pending
}
