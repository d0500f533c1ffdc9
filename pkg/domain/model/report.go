package model

import (
	"time"

	"github.com/secmon-lab/briareus/pkg/domain/types"
)

// RiskScore is the flat, serializable scoring record for a single risk.
// The presentation layer renders these without depending on the Risk
// entity itself.
type RiskScore struct {
	RiskID                  types.RiskID       `json:"risk_id"`
	Name                    string             `json:"name"`
	Category                types.Category     `json:"category"`
	InherentScore           int                `json:"inherent_score"`
	ResidualScore           int                `json:"residual_score"`
	SeverityTier            types.SeverityTier `json:"severity_tier"`
	AmplifiedImpact         float64            `json:"amplified_impact"`
	AppetiteExceeded        bool               `json:"appetite_exceeded"`
	EscalationRequired      bool               `json:"escalation_required"`
	NeedsMitigation         bool               `json:"needs_mitigation"`
	MitigationEffectiveness float64            `json:"mitigation_effectiveness"`
	AffectedProcessCount    int                `json:"affected_process_count"`
	Status                  types.RiskStatus   `json:"status"`
	Version                 int                `json:"version"`
}

// CentralityScore ranks a risk by how many other risks it affects
type CentralityScore struct {
	RiskID types.RiskID `json:"risk_id"`
	Score  float64      `json:"score"`
}

// Chain is a simple directed path through the interdependency graph,
// representing a cause-effect cascade
type Chain []types.RiskID

// AssessmentReport is the full output of a catalogue assessment: an
// ordered ranking, a tier partition, an escalation list, and centrality
// ranking. Every field is serializable to a flat record shape.
type AssessmentReport struct {
	GeneratedAt time.Time                             `json:"generated_at"`
	GeneratedBy string                                `json:"generated_by"`
	Ranking     []RiskScore                           `json:"ranking"`
	Tiers       map[types.SeverityTier][]types.RiskID `json:"tiers"`
	Escalations []types.RiskID                        `json:"escalations"`
	Centrality  []CentralityScore                     `json:"centrality"`
}
