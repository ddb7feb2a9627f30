package models

import (
	"encoding/json"
	"time"
)

// Severity grades an AgentIssue.
type Severity string

const (
	SeverityInfo      Severity = "info"
	SeverityWarning   Severity = "warning"
	SeverityCritical  Severity = "critical"
	SeverityEmergency Severity = "emergency"
)

// ActionType identifies the operational action an agent proposes.
type ActionType string

const (
	ActionAlert              ActionType = "alert"
	ActionResourceRequest    ActionType = "resource_request"
	ActionStaffCall          ActionType = "staff_call"
	ActionDiversion          ActionType = "diversion"
	ActionSupplyOrder        ActionType = "supply_order"
	ActionProtocolActivation ActionType = "protocol_activation"
)

// ActionStatus tracks an action through the approval workflow.
type ActionStatus string

const (
	StatusPending  ActionStatus = "pending"
	StatusExecuted ActionStatus = "executed"
	StatusRejected ActionStatus = "rejected"
)

// AgentIssue is one condition the agent's reasoning step flagged.
type AgentIssue struct {
	Type     string   `json:"type"`
	Resource string   `json:"resource"`
	Severity Severity `json:"severity"`
	Value    float64  `json:"value"`
	Message  string   `json:"message"`
}

// ActionDetails is the typed payload attached to an AgentAction. Each action
// type has its own variant so untyped maps never cross the API boundary.
type ActionDetails interface {
	isActionDetails()
}

// AlertDetails carries the reason an alert was raised.
type AlertDetails struct {
	Reason string `json:"reason"`
}

// DiversionDetails carries the trigger for an ambulance diversion.
type DiversionDetails struct {
	Reason string `json:"reason"`
}

// ProtocolDetails names the surge protocol to activate.
type ProtocolDetails struct {
	Protocol string `json:"protocol"`
}

// SupplyDetails describes an emergency equipment order.
type SupplyDetails struct {
	Item     string `json:"item"`
	Quantity int    `json:"quantity"`
}

// StaffCallDetails describes an emergency staffing callback.
type StaffCallDetails struct {
	Requested int `json:"requested"`
}

func (AlertDetails) isActionDetails()     {}
func (DiversionDetails) isActionDetails() {}
func (ProtocolDetails) isActionDetails()  {}
func (SupplyDetails) isActionDetails()    {}
func (StaffCallDetails) isActionDetails() {}

// AgentAction is one proposed operational action, either auto-executed or
// waiting for human approval.
type AgentAction struct {
	ID               int64         `json:"id"`
	ActionType       ActionType    `json:"action_type"`
	Description      string        `json:"description"`
	Priority         int           `json:"priority"` // 1 lowest .. 5 highest
	AutoExecuted     bool          `json:"auto_executed"`
	RequiresApproval bool          `json:"requires_approval"`
	Details          ActionDetails `json:"details,omitempty"`
	Status           ActionStatus  `json:"status"`
	CreatedAt        time.Time     `json:"created_at"`
}

// Situation is the agent's perceived state for a single run.
type Situation struct {
	HospitalID  string             `json:"hospital_id"`
	Timestamp   time.Time          `json:"timestamp"`
	Metrics     HospitalSnapshot   `json:"metrics"`
	Environment EnvironmentContext `json:"environment"`
	Trends      TrendSummary       `json:"trends"`
	Risk        RiskAssessment     `json:"risk"`
}

// AgentRunResult is the full outcome of one perceive-reason-plan-execute
// cycle.
type AgentRunResult struct {
	Situation       Situation     `json:"situation"`
	Issues          []AgentIssue  `json:"issues"`
	ActionsExecuted []AgentAction `json:"actions_executed"`
	ActionsPending  []AgentAction `json:"actions_pending"`
	ReasoningTrace  string        `json:"reasoning_trace"`
	Timestamp       time.Time     `json:"timestamp"`
}

// ActionLogEntry records an executed, approved or rejected action for audit.
type ActionLogEntry struct {
	Timestamp  time.Time  `json:"timestamp"`
	ActionID   int64      `json:"action_id"`
	ActionType ActionType `json:"action_type"`
	Action     string     `json:"action"`
	Outcome    string     `json:"outcome"` // auto-executed, approved, rejected
}

// MarshalJSON keeps the details payload as a plain object; an absent payload
// marshals as an empty object rather than null for frontend compatibility.
func (a AgentAction) MarshalJSON() ([]byte, error) {
	type Alias AgentAction
	out := struct {
		Alias
		Details ActionDetails `json:"details"`
	}{Alias: Alias(a), Details: a.Details}
	if out.Details == nil {
		out.Details = AlertDetails{}
	}
	return json.Marshal(out)
}
