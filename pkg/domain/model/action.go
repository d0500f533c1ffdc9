package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/secmon-lab/briareus/pkg/domain/types"
)

// MitigationAction is a planned or in-progress remediation for a risk.
// Completed actions freeze their contribution to residual score reduction;
// cancelled actions are excluded from it.
type MitigationAction struct {
	ID                    types.ActionID
	Description           string
	ResponsiblePerson     string
	ResponsibleDepartment string
	Deadline              time.Time
	Status                types.ActionStatus
	Progress              int // percentage [0,100]
	CostEstimate          *float64
	ExpectedRiskReduction *int // percentage [0,100]
	Notes                 string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// Validate checks the action fields
func (m *MitigationAction) Validate() error {
	if err := m.ID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid action ID")
	}
	if !m.Status.IsValid() {
		return goerr.New("invalid action status", goerr.V("action_id", m.ID), goerr.V("status", m.Status))
	}
	if m.Progress < 0 || m.Progress > 100 {
		return goerr.New("action progress must be between 0 and 100",
			goerr.V("action_id", m.ID), goerr.V("progress", m.Progress))
	}
	if m.ExpectedRiskReduction != nil && (*m.ExpectedRiskReduction < 0 || *m.ExpectedRiskReduction > 100) {
		return goerr.New("expected risk reduction must be between 0 and 100",
			goerr.V("action_id", m.ID), goerr.V("expected_risk_reduction", *m.ExpectedRiskReduction))
	}
	return nil
}

// IsOverdue reports whether the action deadline has passed without
// completion. The clock is passed in so callers control "now".
func (m *MitigationAction) IsOverdue(now time.Time) bool {
	return now.After(m.Deadline) && m.Status != types.ActionStatusCompleted
}
