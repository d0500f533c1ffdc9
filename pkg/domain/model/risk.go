package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/secmon-lab/briareus/pkg/domain/types"
)

// Residual score reduction parameters. Control and action discounts are
// applied as two independent multiplicative factors, each capped on its
// own, so a large control set combined with a large mitigation plan can
// never drive the residual score to zero.
const (
	strongControlReduction   = 0.15
	moderateControlReduction = 0.08
	maxControlReduction      = 0.60
	maxActionReduction       = 0.50
)

// Residual score at or above this value means the risk needs mitigation.
const mitigationScoreThreshold = 13

// Risk is the central entity of the catalogue. Inherent and residual
// scores and the severity tier are always derived from the risk state;
// they are never stored as ground truth.
type Risk struct {
	ID          types.RiskID
	Name        string
	Category    types.Category
	Description string

	Owner                  string
	OwnerDepartment        string
	ContributingDepartment string

	Causes            []string
	Triggers          []string
	AffectedProcesses []string

	Likelihood types.LikelihoodLevel
	Impact     ImpactAssessment

	ExistingControls   []ExistingControl
	MitigationStrategy types.MitigationStrategy
	MitigationActions  []MitigationAction

	LinkedRiskIDs []types.RiskID
	Dependencies  []Interdependency

	QuantitativeLossMin *float64
	QuantitativeLossMax *float64
	Probability         *float64

	Status               types.RiskStatus
	AppetiteExceeded     bool
	EscalationRequired   bool
	LastReviewedAt       time.Time
	NextReviewDue        *time.Time

	CreatedBy string
	CreatedAt time.Time
	UpdatedBy string
	UpdatedAt time.Time
	Version   int
	Notes     string
}

// Validate checks the structural invariants of the risk. Out-of-range
// ordinals fail fast and are never silently clamped.
func (r *Risk) Validate() error {
	if err := r.ID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid risk ID")
	}
	if r.Name == "" {
		return goerr.New("risk name is required", goerr.V("risk_id", r.ID))
	}
	if !r.Category.IsValid() {
		return goerr.New("invalid risk category", goerr.V("risk_id", r.ID), goerr.V("category", r.Category))
	}
	if err := r.Likelihood.Validate(); err != nil {
		return goerr.Wrap(err, "invalid likelihood", goerr.V("risk_id", r.ID))
	}
	if err := r.Impact.Validate(); err != nil {
		return goerr.Wrap(err, "invalid impact assessment", goerr.V("risk_id", r.ID))
	}
	if !r.Status.Normalize().IsValid() {
		return goerr.New("invalid risk status", goerr.V("risk_id", r.ID), goerr.V("status", r.Status))
	}
	if r.MitigationStrategy != "" && !r.MitigationStrategy.IsValid() {
		return goerr.New("invalid mitigation strategy", goerr.V("risk_id", r.ID), goerr.V("strategy", r.MitigationStrategy))
	}
	for i := range r.ExistingControls {
		if err := r.ExistingControls[i].Validate(); err != nil {
			return goerr.Wrap(err, "invalid existing control", goerr.V("risk_id", r.ID))
		}
	}
	for i := range r.MitigationActions {
		if err := r.MitigationActions[i].Validate(); err != nil {
			return goerr.Wrap(err, "invalid mitigation action", goerr.V("risk_id", r.ID))
		}
	}
	for i := range r.Dependencies {
		if err := r.Dependencies[i].Validate(); err != nil {
			return goerr.Wrap(err, "invalid interdependency", goerr.V("risk_id", r.ID))
		}
	}
	return nil
}

// InherentScore is the risk magnitude before accounting for controls or
// mitigation: likelihood times overall impact, range [1,25].
func (r *Risk) InherentScore() int {
	return r.Likelihood.Int() * r.Impact.OverallScore()
}

// ResidualScore is the risk magnitude after discounting for existing
// controls and completed mitigation actions.
func (r *Risk) ResidualScore() int {
	inherent := r.InherentScore()
	factor := 1.0

	if len(r.ExistingControls) > 0 {
		var strong, moderate int
		for i := range r.ExistingControls {
			switch r.ExistingControls[i].Effectiveness {
			case types.ControlEffectivenessStrong:
				strong++
			case types.ControlEffectivenessModerate:
				moderate++
			}
		}
		reduction := float64(strong)*strongControlReduction + float64(moderate)*moderateControlReduction
		if reduction > maxControlReduction {
			reduction = maxControlReduction
		}
		factor *= 1.0 - reduction
	}

	if len(r.MitigationActions) > 0 {
		var sum int
		var completed bool
		for i := range r.MitigationActions {
			if r.MitigationActions[i].Status != types.ActionStatusCompleted {
				continue
			}
			completed = true
			if reduction := r.MitigationActions[i].ExpectedRiskReduction; reduction != nil {
				sum += *reduction
			}
		}
		if completed {
			reduction := float64(sum) / 100
			if reduction > maxActionReduction {
				reduction = maxActionReduction
			}
			factor *= 1.0 - reduction
		}
	}

	return int(float64(inherent) * factor)
}

// SeverityTier classifies the risk by its residual score
func (r *Risk) SeverityTier() types.SeverityTier {
	return types.TierForScore(r.ResidualScore())
}

// NeedsMitigation reports whether the risk requires mitigation: a high or
// critical residual score, or the organization's risk appetite exceeded.
func (r *Risk) NeedsMitigation() bool {
	return r.ResidualScore() >= mitigationScoreThreshold || r.AppetiteExceeded
}

// MitigationEffectiveness is the percentage of the risk's mitigation
// actions that are completed. A risk with no actions yields 0, not an
// error.
func (r *Risk) MitigationEffectiveness() float64 {
	if len(r.MitigationActions) == 0 {
		return 0
	}
	var completed int
	for i := range r.MitigationActions {
		if r.MitigationActions[i].Status == types.ActionStatusCompleted {
			completed++
		}
	}
	return float64(completed) / float64(len(r.MitigationActions)) * 100
}

// HasOverdueAction reports whether any mitigation action is past its
// deadline without completion
func (r *Risk) HasOverdueAction(now time.Time) bool {
	for i := range r.MitigationActions {
		if r.MitigationActions[i].IsOverdue(now) {
			return true
		}
	}
	return false
}

// Touch records a mutation: it stamps the actor and time and increments
// the version counter.
func (r *Risk) Touch(actor string, now time.Time) {
	r.UpdatedBy = actor
	r.UpdatedAt = now
	r.Version++
}
