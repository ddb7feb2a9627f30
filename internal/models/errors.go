package models

import "fmt"

// InvalidDataError reports a malformed or inconsistent snapshot input, such as
// negative counts or occupied exceeding total.
type InvalidDataError struct {
	Field  string
	Reason string
}

func (e *InvalidDataError) Error() string {
	return fmt.Sprintf("invalid data: %s: %s", e.Field, e.Reason)
}

// InsufficientHistoryError reports that too few historical points exist to
// compute a forecast.
type InsufficientHistoryError struct {
	Have int
	Need int
}

func (e *InsufficientHistoryError) Error() string {
	return fmt.Sprintf("insufficient history: have %d points, need %d", e.Have, e.Need)
}

// ActionNotFoundError reports an approve/reject call with an unknown action id.
type ActionNotFoundError struct {
	ID int64
}

func (e *ActionNotFoundError) Error() string {
	return fmt.Sprintf("action %d not found", e.ID)
}

// InvalidStateError reports an approve/reject call against an action that is
// no longer pending.
type InvalidStateError struct {
	ID     int64
	Status ActionStatus
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("action %d already %s", e.ID, e.Status)
}
