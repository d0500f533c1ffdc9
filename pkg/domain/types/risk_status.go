package types

import "github.com/m-mizutani/goerr/v2"

// RiskStatus represents the lifecycle status of a risk
type RiskStatus string

const (
	RiskStatusIdentified        RiskStatus = "Identified"
	RiskStatusUnderAssessment   RiskStatus = "Under Assessment"
	RiskStatusApproved          RiskStatus = "Approved"
	RiskStatusMitigationPlanned RiskStatus = "Mitigation Planned"
	RiskStatusUnderControl      RiskStatus = "Under Control"
	RiskStatusClosed            RiskStatus = "Closed"
)

// AllRiskStatuses returns all valid risk statuses in lifecycle order
func AllRiskStatuses() []RiskStatus {
	return []RiskStatus{
		RiskStatusIdentified,
		RiskStatusUnderAssessment,
		RiskStatusApproved,
		RiskStatusMitigationPlanned,
		RiskStatusUnderControl,
		RiskStatusClosed,
	}
}

// IsValid checks if the risk status is valid
func (s RiskStatus) IsValid() bool {
	switch s {
	case RiskStatusIdentified,
		RiskStatusUnderAssessment,
		RiskStatusApproved,
		RiskStatusMitigationPlanned,
		RiskStatusUnderControl,
		RiskStatusClosed:
		return true
	default:
		return false
	}
}

// Normalize returns the status, treating empty as RiskStatusIdentified.
func (s RiskStatus) Normalize() RiskStatus {
	if s == "" {
		return RiskStatusIdentified
	}
	return s
}

// String returns the string representation of the risk status
func (s RiskStatus) String() string {
	return string(s)
}

// ParseRiskStatus parses a string into a RiskStatus
func ParseRiskStatus(s string) (RiskStatus, error) {
	status := RiskStatus(s)
	if !status.IsValid() {
		return "", goerr.New("invalid risk status",
			goerr.V("status", s), goerr.V("valid", AllRiskStatuses()))
	}
	return status, nil
}
