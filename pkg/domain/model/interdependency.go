package model

import (
	"github.com/m-mizutani/goerr/v2"

	"github.com/secmon-lab/briareus/pkg/domain/types"
)

// DefaultImpactMultiplier applies when a wire or file representation
// omits the multiplier. Only an explicit zero disables amplification.
const DefaultImpactMultiplier = 1.0

// ImpactMultiplierOrDefault resolves an optional multiplier from a
// hydration source: nil means unspecified and takes the default.
func ImpactMultiplierOrDefault(v *float64) float64 {
	if v == nil {
		return DefaultImpactMultiplier
	}
	return *v
}

// Interdependency is a directed relation between two risks: when the
// source risk materializes it affects the target's impact (multiplier)
// and likelihood (probability increase).
type Interdependency struct {
	SourceID            types.RiskID
	TargetID            types.RiskID
	Kind                types.RelationKind
	ImpactMultiplier    float64 // applied multiplicatively to the target's impact
	ProbabilityIncrease float64 // additive likelihood boost, fraction [0,1]
	Description         string
	Validated           bool
}

// Validate checks the edge fields. Self-loops are structural violations
// and must never enter the graph.
func (d *Interdependency) Validate() error {
	if err := d.SourceID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid source risk ID")
	}
	if err := d.TargetID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid target risk ID")
	}
	if d.SourceID == d.TargetID {
		return goerr.New("interdependency cannot be a self-loop",
			goerr.V("source", d.SourceID), goerr.V("target", d.TargetID))
	}
	if d.ImpactMultiplier < 0 {
		return goerr.New("impact multiplier must not be negative",
			goerr.V("source", d.SourceID), goerr.V("target", d.TargetID),
			goerr.V("multiplier", d.ImpactMultiplier))
	}
	if d.ProbabilityIncrease < 0 || d.ProbabilityIncrease > 1 {
		return goerr.New("probability increase must be between 0 and 1",
			goerr.V("source", d.SourceID), goerr.V("target", d.TargetID),
			goerr.V("probability_increase", d.ProbabilityIncrease))
	}
	return nil
}
