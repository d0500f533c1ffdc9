package types

import "github.com/m-mizutani/goerr/v2"

// ActionStatus represents the status of a mitigation action
type ActionStatus string

const (
	ActionStatusPlanned    ActionStatus = "Planned"
	ActionStatusInProgress ActionStatus = "In Progress"
	ActionStatusCompleted  ActionStatus = "Completed"
	ActionStatusOverdue    ActionStatus = "Overdue"
	ActionStatusCancelled  ActionStatus = "Cancelled"
)

// AllActionStatuses returns all valid action statuses
func AllActionStatuses() []ActionStatus {
	return []ActionStatus{
		ActionStatusPlanned,
		ActionStatusInProgress,
		ActionStatusCompleted,
		ActionStatusOverdue,
		ActionStatusCancelled,
	}
}

// IsValid checks if the action status is valid
func (s ActionStatus) IsValid() bool {
	switch s {
	case ActionStatusPlanned,
		ActionStatusInProgress,
		ActionStatusCompleted,
		ActionStatusOverdue,
		ActionStatusCancelled:
		return true
	default:
		return false
	}
}

// String returns the string representation of the action status
func (s ActionStatus) String() string {
	return string(s)
}

// ParseActionStatus parses a string into an ActionStatus
func ParseActionStatus(s string) (ActionStatus, error) {
	status := ActionStatus(s)
	if !status.IsValid() {
		return "", goerr.New("invalid action status",
			goerr.V("status", s), goerr.V("valid", AllActionStatuses()))
	}
	return status, nil
}
