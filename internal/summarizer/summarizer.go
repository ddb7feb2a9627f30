package summarizer

import (
	"context"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"surgewatch/internal/logging"
	"surgewatch/internal/models"
)

const prompt = `You are an operations analyst for a hospital command center.
Summarize the current situation in at most three sentences for the duty
manager. Be concrete about numbers and say what deserves attention first.`

// Summarizer produces a short natural-language readout of a hospital
// situation. Without an API key, or when the API call fails, it falls back to
// a rule-based summary.
type Summarizer struct {
	client *openai.Client
	logger *logging.Logger
}

func New(apiKey string, logger *logging.Logger) *Summarizer {
	s := &Summarizer{logger: logger}
	if apiKey != "" {
		s.client = openai.NewClient(apiKey)
	}
	return s
}

// Summarize returns a short text for the situation and its flagged issues.
func (s *Summarizer) Summarize(ctx context.Context, sit models.Situation, issues []models.AgentIssue) string {
	if s.client == nil {
		return ruleBased(sit)
	}
	text, err := s.generate(ctx, sit, issues)
	if err != nil {
		s.logger.Warnf("summary generation failed, using rule-based fallback: %v", err)
		return ruleBased(sit)
	}
	return text
}

func (s *Summarizer) generate(ctx context.Context, sit models.Situation, issues []models.AgentIssue) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	input := fmt.Sprintf(
		"Hospital %s: bed occupancy %.1f%%, ICU %.1f%%, ventilators %.1f%%, staff ratio %.2f, AQI %d, flu cases %d, trend %s (%s), risk level %s (%d/%d).",
		sit.HospitalID, sit.Metrics.BedOccupancyPct, sit.Metrics.ICUOccupancyPct,
		sit.Metrics.VentilatorPct, sit.Metrics.StaffRatio,
		sit.Environment.AQI, sit.Environment.FluCases,
		sit.Trends.Direction, sit.Trends.Velocity,
		sit.Risk.Level, sit.Risk.Score, sit.Risk.MaxScore)
	if len(issues) > 0 {
		var lines []string
		for _, issue := range issues {
			lines = append(lines, issue.Message)
		}
		input += " Flagged issues: " + strings.Join(lines, "; ") + "."
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       openai.GPT4oMini,
		MaxTokens:   150,
		Temperature: 0.5,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompt},
			{Role: openai.ChatMessageRoleUser, Content: input},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty completion")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// ruleBased composes a summary from occupancy bands and the risk factors.
func ruleBased(sit models.Situation) string {
	bed := sit.Metrics.BedOccupancyPct
	var lead string
	switch {
	case bed >= 90:
		lead = fmt.Sprintf("Bed occupancy is critical at %.1f%%.", bed)
	case bed >= 75:
		lead = fmt.Sprintf("Bed occupancy is elevated at %.1f%%.", bed)
	default:
		lead = fmt.Sprintf("Bed occupancy is stable at %.1f%%.", bed)
	}

	var concerns []string
	for _, f := range sit.Risk.Factors {
		if f.Triggered {
			concerns = append(concerns, f.Name)
		}
	}
	if len(concerns) == 0 {
		return lead + " No active risk factors."
	}
	return fmt.Sprintf("%s Risk level %s with active factors: %s. Capacity trend is %s (%s).",
		lead, sit.Risk.Level, strings.Join(concerns, ", "), sit.Trends.Direction, sit.Trends.Velocity)
}
