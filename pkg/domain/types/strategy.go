package types

import "github.com/m-mizutani/goerr/v2"

// MitigationStrategy represents the standard risk treatment strategies
type MitigationStrategy string

const (
	StrategyAvoid    MitigationStrategy = "Avoid"
	StrategyReduce   MitigationStrategy = "Reduce"
	StrategyTransfer MitigationStrategy = "Transfer"
	StrategyAccept   MitigationStrategy = "Accept"
)

// IsValid checks if the mitigation strategy is valid
func (m MitigationStrategy) IsValid() bool {
	switch m {
	case StrategyAvoid, StrategyReduce, StrategyTransfer, StrategyAccept:
		return true
	default:
		return false
	}
}

// String returns the string representation of the mitigation strategy
func (m MitigationStrategy) String() string {
	return string(m)
}

// ParseMitigationStrategy parses a string into a MitigationStrategy
func ParseMitigationStrategy(s string) (MitigationStrategy, error) {
	strategy := MitigationStrategy(s)
	if !strategy.IsValid() {
		return "", goerr.New("invalid mitigation strategy", goerr.V("strategy", s),
			goerr.V("valid", []MitigationStrategy{StrategyAvoid, StrategyReduce, StrategyTransfer, StrategyAccept}))
	}
	return strategy, nil
}
