package model

import (
	"github.com/m-mizutani/goerr/v2"

	"github.com/secmon-lab/briareus/pkg/domain/types"
)

// Impact dimension weights. They sum to 1.0 so the weighted overall score
// stays on the same 1-5 scale as the individual ordinals.
const (
	weightFinancial    = 0.40
	weightOperational  = 0.25
	weightRegulatory   = 0.20
	weightReputational = 0.15
)

// ImpactAssessment holds the multi-dimensional impact of a risk. Each
// dimension is an ordinal on a fixed 1-5 scale.
type ImpactAssessment struct {
	Financial          types.ImpactLevel
	Operational        types.ImpactLevel
	Regulatory         types.ImpactLevel
	Reputational       types.ImpactLevel
	FinancialAmountMin *float64
	FinancialAmountMax *float64
	Narrative          string
}

// Validate checks that every dimension holds a value in [1,5]
func (a *ImpactAssessment) Validate() error {
	if err := a.Financial.Validate(); err != nil {
		return goerr.Wrap(err, "invalid financial impact", goerr.V("dimension", types.DimensionFinancial))
	}
	if err := a.Operational.Validate(); err != nil {
		return goerr.Wrap(err, "invalid operational impact", goerr.V("dimension", types.DimensionOperational))
	}
	if err := a.Regulatory.Validate(); err != nil {
		return goerr.Wrap(err, "invalid regulatory impact", goerr.V("dimension", types.DimensionRegulatory))
	}
	if err := a.Reputational.Validate(); err != nil {
		return goerr.Wrap(err, "invalid reputational impact", goerr.V("dimension", types.DimensionReputational))
	}
	return nil
}

// OverallScore returns the weighted impact score truncated to an integer.
// With all dimensions in [1,5] and weights summing to 1.0 the result is
// also in [1,5].
func (a *ImpactAssessment) OverallScore() int {
	weighted := float64(a.Financial.Int())*weightFinancial +
		float64(a.Operational.Int())*weightOperational +
		float64(a.Regulatory.Int())*weightRegulatory +
		float64(a.Reputational.Int())*weightReputational
	return int(weighted)
}

// MaxImpact returns the highest ordinal across all dimensions
func (a *ImpactAssessment) MaxImpact() types.ImpactLevel {
	maxLevel := a.Financial
	for _, level := range []types.ImpactLevel{a.Operational, a.Regulatory, a.Reputational} {
		if level > maxLevel {
			maxLevel = level
		}
	}
	return maxLevel
}

// MaxDimension returns the dimension with the greatest ordinal. Ties are
// broken by declaration order: the first maximal dimension wins.
func (a *ImpactAssessment) MaxDimension() types.ImpactDimension {
	dimensions := []struct {
		name  types.ImpactDimension
		level types.ImpactLevel
	}{
		{types.DimensionFinancial, a.Financial},
		{types.DimensionOperational, a.Operational},
		{types.DimensionRegulatory, a.Regulatory},
		{types.DimensionReputational, a.Reputational},
	}

	result := dimensions[0]
	for _, d := range dimensions[1:] {
		if d.level > result.level {
			result = d
		}
	}
	return result.name
}
