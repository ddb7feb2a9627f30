package agent

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"surgewatch/internal/engine"
	"surgewatch/internal/models"
)

func calmHistory() []models.DayRecord {
	start := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	out := make([]models.DayRecord, 10)
	for i := range out {
		out[i] = models.DayRecord{
			Date:             start.AddDate(0, 0, i),
			TotalBeds:        200,
			OccupiedBeds:     120,
			TotalICU:         30,
			OccupiedICU:      12,
			TotalVentilators: 20,
			VentilatorsUsed:  6,
			StaffOnDuty:      130,
			AQI:              60,
			FluCases:         20,
		}
	}
	return out
}

func crisisHistory() []models.DayRecord {
	h := calmHistory()
	last := &h[len(h)-1]
	last.OccupiedBeds = 185 // 92.5% critical
	last.OccupiedICU = 26   // 86.7% critical
	last.VentilatorsUsed = 17
	last.StaffOnDuty = 100 // ratio 0.54
	last.AQI = 160
	last.FluCases = 80
	return h
}

func newAgent() *Agent {
	return New(engine.DefaultThresholds(), NewRegistry())
}

func TestRunEmptyHistory(t *testing.T) {
	_, err := newAgent().Run("H001", nil, false)
	var invalid *models.InvalidDataError
	require.ErrorAs(t, err, &invalid)
}

func TestRunCalm(t *testing.T) {
	result, err := newAgent().Run("H001", calmHistory(), true)
	require.NoError(t, err)

	assert.Empty(t, result.Issues)
	assert.Empty(t, result.ActionsExecuted)
	assert.Empty(t, result.ActionsPending)
	assert.Contains(t, result.ReasoningTrace, "no issues detected")
}

func TestRunCrisisIssues(t *testing.T) {
	result, err := newAgent().Run("H001", crisisHistory(), false)
	require.NoError(t, err)

	types := map[string]bool{}
	for _, issue := range result.Issues {
		types[issue.Type+"/"+issue.Resource] = true
	}
	assert.True(t, types["capacity_critical/beds"])
	assert.True(t, types["capacity_critical/icu"])
	assert.True(t, types["equipment_critical/ventilators"])
	assert.True(t, types["staffing_shortage/staff"])
	assert.True(t, types["environmental_alert/air_quality"])
	assert.True(t, types["disease_surge/flu"])
}

func TestRunCrisisPlanOrdering(t *testing.T) {
	result, err := newAgent().Run("H001", crisisHistory(), false)
	require.NoError(t, err)
	require.NotEmpty(t, result.ActionsPending)

	assert.Equal(t, 5, result.ActionsPending[0].Priority)
	for i := 1; i < len(result.ActionsPending); i++ {
		assert.GreaterOrEqual(t, result.ActionsPending[i-1].Priority, result.ActionsPending[i].Priority)
	}
}

func TestAssessMatchesRunWithoutSideEffects(t *testing.T) {
	ag := newAgent()
	result, err := ag.Run("H001", crisisHistory(), false)
	require.NoError(t, err)
	pendingBefore := ag.Registry().Pending()

	situation, issues, err := ag.Assess("H001", crisisHistory())
	require.NoError(t, err)

	assert.Equal(t, result.Issues, issues)
	assert.Equal(t, result.Situation.Risk, situation.Risk)
	// Assess is read-only: the pending plan survives untouched.
	assert.Equal(t, pendingBefore, ag.Registry().Pending())
}

func TestAssessEmptyHistory(t *testing.T) {
	_, _, err := newAgent().Assess("H001", nil)
	var invalid *models.InvalidDataError
	require.ErrorAs(t, err, &invalid)
}

func TestRunDeterministic(t *testing.T) {
	r1, err := newAgent().Run("H001", crisisHistory(), false)
	require.NoError(t, err)
	r2, err := newAgent().Run("H001", crisisHistory(), false)
	require.NoError(t, err)

	assert.Equal(t, r1.Issues, r2.Issues)
	require.Equal(t, len(r1.ActionsPending), len(r2.ActionsPending))
	for i := range r1.ActionsPending {
		assert.Equal(t, r1.ActionsPending[i].ActionType, r2.ActionsPending[i].ActionType)
		assert.Equal(t, r1.ActionsPending[i].Priority, r2.ActionsPending[i].Priority)
		assert.Equal(t, r1.ActionsPending[i].Description, r2.ActionsPending[i].Description)
	}
}

func TestAutonomousAllowlist(t *testing.T) {
	ag := newAgent()
	result, err := ag.Run("H001", crisisHistory(), true)
	require.NoError(t, err)

	require.NotEmpty(t, result.ActionsExecuted)
	for _, a := range result.ActionsExecuted {
		assert.Equal(t, models.ActionAlert, a.ActionType)
		assert.True(t, a.AutoExecuted)
		assert.Equal(t, models.StatusExecuted, a.Status)
	}
	for _, a := range result.ActionsPending {
		assert.NotEqual(t, models.ActionAlert, a.ActionType)
		assert.True(t, a.RequiresApproval)
	}
}

func TestNonAutonomousAllPending(t *testing.T) {
	result, err := newAgent().Run("H001", crisisHistory(), false)
	require.NoError(t, err)

	assert.Empty(t, result.ActionsExecuted)
	for _, a := range result.ActionsPending {
		assert.Equal(t, models.StatusPending, a.Status)
		assert.True(t, a.RequiresApproval)
	}
}

func TestApproveRejectFlow(t *testing.T) {
	ag := newAgent()
	result, err := ag.Run("H001", crisisHistory(), false)
	require.NoError(t, err)
	require.NotEmpty(t, result.ActionsPending)

	id := result.ActionsPending[0].ID
	approved, err := ag.Registry().Approve(id)
	require.NoError(t, err)
	assert.Equal(t, models.StatusExecuted, approved.Status)

	// Second approve hits the already-resolved action.
	_, err = ag.Registry().Approve(id)
	var invalidState *models.InvalidStateError
	require.ErrorAs(t, err, &invalidState)

	// Reject of a resolved action fails the same way.
	_, err = ag.Registry().Reject(id)
	require.ErrorAs(t, err, &invalidState)
}

func TestApproveUnknownAction(t *testing.T) {
	ag := newAgent()
	_, err := ag.Registry().Approve(9999)
	var notFound *models.ActionNotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestRegistryReplaceAcrossRuns(t *testing.T) {
	ag := newAgent()

	r1, err := ag.Run("H001", crisisHistory(), false)
	require.NoError(t, err)
	firstID := r1.ActionsPending[0].ID

	r2, err := ag.Run("H001", crisisHistory(), false)
	require.NoError(t, err)

	// Ids keep increasing across runs and the old plan is gone.
	assert.Greater(t, r2.ActionsPending[0].ID, firstID)
	_, err = ag.Registry().Approve(firstID)
	var notFound *models.ActionNotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestAuditLog(t *testing.T) {
	ag := newAgent()
	result, err := ag.Run("H001", crisisHistory(), true)
	require.NoError(t, err)

	log := ag.Registry().Log()
	require.NotEmpty(t, log)
	assert.Equal(t, "auto-executed", log[0].Outcome)

	require.NotEmpty(t, result.ActionsPending)
	_, err = ag.Registry().Reject(result.ActionsPending[0].ID)
	require.NoError(t, err)
	log = ag.Registry().Log()
	assert.Equal(t, "rejected", log[len(log)-1].Outcome)
}
