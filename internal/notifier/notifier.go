package notifier

import (
	"context"
	"fmt"
	"time"

	"surgewatch/internal/logging"
	"surgewatch/internal/models"
)

// Alert is the outbound event produced when the agent executes or proposes a
// high-priority action.
type Alert struct {
	HospitalID string            `json:"hospital_id"`
	ActionID   int64             `json:"action_id"`
	ActionType models.ActionType `json:"action_type"`
	Severity   models.Severity   `json:"severity"`
	Message    string            `json:"message"`
	Timestamp  time.Time         `json:"timestamp"`
}

// Notifier fans alerts out to the configured channels. Channels are optional;
// delivery failures are logged and never block the agent cycle.
type Notifier struct {
	hub      *Hub
	telegram *TelegramSender
	kafka    *KafkaPublisher
	logger   *logging.Logger
}

func New(hub *Hub, telegram *TelegramSender, kafka *KafkaPublisher, logger *logging.Logger) *Notifier {
	return &Notifier{hub: hub, telegram: telegram, kafka: kafka, logger: logger}
}

// Hub exposes the websocket hub for the API layer.
func (n *Notifier) Hub() *Hub {
	return n.hub
}

// Notify delivers the alert on every configured channel.
func (n *Notifier) Notify(ctx context.Context, alert Alert) {
	if n.hub != nil {
		n.hub.Broadcast(alert)
	}
	if n.telegram != nil {
		text := fmt.Sprintf("*SurgeWatch alert* [%s]\nHospital: %s\n%s", alert.Severity, alert.HospitalID, alert.Message)
		if err := n.telegram.Send(ctx, text); err != nil {
			n.logger.Errorf("telegram alert delivery failed: %v", err)
		}
	}
	if n.kafka != nil {
		if err := n.kafka.Publish(ctx, alert.HospitalID, alert); err != nil {
			n.logger.Errorf("kafka alert publish failed: %v", err)
		}
	}
}

// NotifyRun emits one alert per executed action and per pending action of
// priority 4 or higher.
func (n *Notifier) NotifyRun(ctx context.Context, result models.AgentRunResult) {
	emit := func(a models.AgentAction, severity models.Severity) {
		n.Notify(ctx, Alert{
			HospitalID: result.Situation.HospitalID,
			ActionID:   a.ID,
			ActionType: a.ActionType,
			Severity:   severity,
			Message:    a.Description,
			Timestamp:  time.Now(),
		})
	}
	for _, a := range result.ActionsExecuted {
		emit(a, models.SeverityWarning)
	}
	for _, a := range result.ActionsPending {
		if a.Priority >= 4 {
			emit(a, models.SeverityCritical)
		}
	}
}
