package types

import (
	"github.com/m-mizutani/goerr/v2"
)

// LikelihoodLevel is an ordinal likelihood on a fixed 1-5 scale
type LikelihoodLevel int

// Likelihood scale
const (
	LikelihoodVeryLow  LikelihoodLevel = 1
	LikelihoodLow      LikelihoodLevel = 2
	LikelihoodMedium   LikelihoodLevel = 3
	LikelihoodHigh     LikelihoodLevel = 4
	LikelihoodVeryHigh LikelihoodLevel = 5
)

// Validate checks if the likelihood level is within the 1-5 scale
func (l LikelihoodLevel) Validate() error {
	if l < LikelihoodVeryLow || l > LikelihoodVeryHigh {
		return goerr.New("likelihood must be between 1 and 5", goerr.V("likelihood", int(l)))
	}
	return nil
}

// Int returns the ordinal value of the likelihood level
func (l LikelihoodLevel) Int() int {
	return int(l)
}

// Label returns the human readable name of the likelihood level
func (l LikelihoodLevel) Label() string {
	switch l {
	case LikelihoodVeryLow:
		return "Very Low"
	case LikelihoodLow:
		return "Low"
	case LikelihoodMedium:
		return "Medium"
	case LikelihoodHigh:
		return "High"
	case LikelihoodVeryHigh:
		return "Very High"
	default:
		return "Unknown"
	}
}

// ImpactLevel is an ordinal impact on a fixed 1-5 scale
type ImpactLevel int

// Impact scale
const (
	ImpactNegligible ImpactLevel = 1
	ImpactMinor      ImpactLevel = 2
	ImpactModerate   ImpactLevel = 3
	ImpactMajor      ImpactLevel = 4
	ImpactCritical   ImpactLevel = 5
)

// Validate checks if the impact level is within the 1-5 scale
func (i ImpactLevel) Validate() error {
	if i < ImpactNegligible || i > ImpactCritical {
		return goerr.New("impact must be between 1 and 5", goerr.V("impact", int(i)))
	}
	return nil
}

// Int returns the ordinal value of the impact level
func (i ImpactLevel) Int() int {
	return int(i)
}

// Label returns the human readable name of the impact level
func (i ImpactLevel) Label() string {
	switch i {
	case ImpactNegligible:
		return "Negligible"
	case ImpactMinor:
		return "Minor"
	case ImpactModerate:
		return "Moderate"
	case ImpactMajor:
		return "Major"
	case ImpactCritical:
		return "Critical"
	default:
		return "Unknown"
	}
}

// ImpactDimension identifies one of the four impact assessment dimensions
type ImpactDimension string

const (
	DimensionFinancial    ImpactDimension = "Financial"
	DimensionOperational  ImpactDimension = "Operational"
	DimensionRegulatory   ImpactDimension = "Regulatory"
	DimensionReputational ImpactDimension = "Reputational"
)

// String returns the string representation of the impact dimension
func (d ImpactDimension) String() string {
	return string(d)
}
