package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/secmon-lab/briareus/pkg/domain/types"
)

// ExistingControl is a safeguard already in place for a risk. Controls are
// immutable once tested; their effectiveness only reduces the residual
// score, never the inherent score.
type ExistingControl struct {
	ID            types.ControlID
	Description   string
	Type          types.ControlType
	Effectiveness types.ControlEffectiveness
	LastTested    *time.Time
	Department    string
}

// Validate checks the control fields
func (c *ExistingControl) Validate() error {
	if err := c.ID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid control ID")
	}
	if !c.Type.IsValid() {
		return goerr.New("invalid control type", goerr.V("control_id", c.ID), goerr.V("type", c.Type))
	}
	if !c.Effectiveness.IsValid() {
		return goerr.New("invalid control effectiveness", goerr.V("control_id", c.ID), goerr.V("effectiveness", c.Effectiveness))
	}
	return nil
}
