package types

// SeverityTier classifies a risk by its residual score
type SeverityTier string

const (
	SeverityLow      SeverityTier = "Low"
	SeverityMedium   SeverityTier = "Medium"
	SeverityHigh     SeverityTier = "High"
	SeverityCritical SeverityTier = "Critical"

	// SeverityAcceptable is a bucket for risks whose tier does not match
	// any of the four scored tiers. It is a defensive default and is not
	// produced by TierForScore.
	SeverityAcceptable SeverityTier = "Acceptable"
)

// Severity tier breakpoints on the residual score scale [1,25].
// Lower bounds are inclusive.
const (
	severityLowMax    = 6
	severityMediumMax = 12
	severityHighMax   = 18
)

// TierForScore derives the severity tier from a residual score
func TierForScore(score int) SeverityTier {
	switch {
	case score <= severityLowMax:
		return SeverityLow
	case score <= severityMediumMax:
		return SeverityMedium
	case score <= severityHighMax:
		return SeverityHigh
	default:
		return SeverityCritical
	}
}

// AllSeverityTiers returns the tiers in descending order of severity,
// including the Acceptable fallback bucket
func AllSeverityTiers() []SeverityTier {
	return []SeverityTier{
		SeverityCritical,
		SeverityHigh,
		SeverityMedium,
		SeverityLow,
		SeverityAcceptable,
	}
}

// IsValid checks if the severity tier is one of the scored tiers
func (s SeverityTier) IsValid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	default:
		return false
	}
}

// String returns the string representation of the severity tier
func (s SeverityTier) String() string {
	return string(s)
}
