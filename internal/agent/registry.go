package agent

import (
	"sort"
	"sync"
	"time"

	"surgewatch/internal/models"
)

// Registry owns the process-wide action state: the id counter, the actions of
// the most recent run, and the audit log. All mutation happens under one
// mutex so concurrent approve/reject calls cannot double-resolve an action.
type Registry struct {
	mu      sync.Mutex
	nextID  int64
	actions map[int64]*models.AgentAction
	log     []models.ActionLogEntry
}

// NewRegistry returns an empty registry. Tests instantiate their own instead
// of sharing process state.
func NewRegistry() *Registry {
	return &Registry{actions: make(map[int64]*models.AgentAction)}
}

// assignID hands out the next monotonically increasing action id.
func (r *Registry) assignID() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	return r.nextID
}

// replace swaps in the actions of a new run, discarding the previous run's
// set. The id counter keeps counting across runs.
func (r *Registry) replace(actions []*models.AgentAction) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions = make(map[int64]*models.AgentAction, len(actions))
	for _, a := range actions {
		r.actions[a.ID] = a
	}
}

// logOutcome appends an audit entry under the registry lock.
func (r *Registry) logOutcome(a *models.AgentAction, outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.recordLog(a, outcome)
}

// recordLog appends an audit entry; callers must hold the mutex.
func (r *Registry) recordLog(a *models.AgentAction, outcome string) {
	r.log = append(r.log, models.ActionLogEntry{
		Timestamp:  time.Now(),
		ActionID:   a.ID,
		ActionType: a.ActionType,
		Action:     a.Description,
		Outcome:    outcome,
	})
}

// resolve transitions a pending action to the given status.
func (r *Registry) resolve(id int64, status models.ActionStatus, outcome string) (models.AgentAction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.actions[id]
	if !ok {
		return models.AgentAction{}, &models.ActionNotFoundError{ID: id}
	}
	if a.Status != models.StatusPending {
		return models.AgentAction{}, &models.InvalidStateError{ID: id, Status: a.Status}
	}
	a.Status = status
	r.recordLog(a, outcome)
	return *a, nil
}

// Approve marks a pending action as executed.
func (r *Registry) Approve(id int64) (models.AgentAction, error) {
	return r.resolve(id, models.StatusExecuted, "approved")
}

// Reject marks a pending action as rejected.
func (r *Registry) Reject(id int64) (models.AgentAction, error) {
	return r.resolve(id, models.StatusRejected, "rejected")
}

// Pending returns the currently pending actions ordered by id.
func (r *Registry) Pending() []models.AgentAction {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.AgentAction, 0, len(r.actions))
	for _, a := range r.actions {
		if a.Status == models.StatusPending {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ExecutedCount returns how many tracked actions have been executed.
func (r *Registry) ExecutedCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for _, a := range r.actions {
		if a.Status == models.StatusExecuted {
			n++
		}
	}
	return n
}

// Log returns a copy of the audit log, oldest first.
func (r *Registry) Log() []models.ActionLogEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.ActionLogEntry, len(r.log))
	copy(out, r.log)
	return out
}
