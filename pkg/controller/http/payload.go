package http

import (
	"time"

	"github.com/secmon-lab/briareus/pkg/domain/model"
	"github.com/secmon-lab/briareus/pkg/domain/types"
)

// Wire shapes for the REST surface. Scores and tiers appear on responses
// only; they are derived on read and never accepted from a client.

type impactPayload struct {
	Financial          int      `json:"financial"`
	Operational        int      `json:"operational"`
	Regulatory         int      `json:"regulatory"`
	Reputational       int      `json:"reputational"`
	FinancialAmountMin *float64 `json:"financial_amount_min,omitempty"`
	FinancialAmountMax *float64 `json:"financial_amount_max,omitempty"`
	Narrative          string   `json:"narrative,omitempty"`
}

type controlPayload struct {
	ID            string     `json:"id"`
	Description   string     `json:"description,omitempty"`
	Type          string     `json:"type"`
	Effectiveness string     `json:"effectiveness"`
	LastTested    *time.Time `json:"last_tested,omitempty"`
	Department    string     `json:"department,omitempty"`
}

type actionPayload struct {
	ID                    string    `json:"id"`
	Description           string    `json:"description,omitempty"`
	ResponsiblePerson     string    `json:"responsible_person,omitempty"`
	ResponsibleDepartment string    `json:"responsible_department,omitempty"`
	Deadline              time.Time `json:"deadline"`
	Status                string    `json:"status"`
	Progress              int       `json:"progress"`
	CostEstimate          *float64  `json:"cost_estimate,omitempty"`
	ExpectedRiskReduction *int      `json:"expected_risk_reduction,omitempty"`
	Notes                 string    `json:"notes,omitempty"`
	CreatedAt             time.Time `json:"created_at,omitempty"`
	UpdatedAt             time.Time `json:"updated_at,omitempty"`
}

// ImpactMultiplier is a pointer: an omitted field takes the model
// default while an explicit 0 stays expressible.
type edgePayload struct {
	SourceID            string   `json:"source_id"`
	TargetID            string   `json:"target_id"`
	Kind                string   `json:"kind"`
	ImpactMultiplier    *float64 `json:"impact_multiplier"`
	ProbabilityIncrease float64  `json:"probability_increase"`
	Description         string   `json:"description,omitempty"`
	Validated           bool     `json:"validated"`
}

type riskPayload struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description,omitempty"`

	Owner                  string `json:"owner,omitempty"`
	OwnerDepartment        string `json:"owner_department,omitempty"`
	ContributingDepartment string `json:"contributing_department,omitempty"`

	Causes            []string `json:"causes,omitempty"`
	Triggers          []string `json:"triggers,omitempty"`
	AffectedProcesses []string `json:"affected_processes,omitempty"`

	Likelihood int           `json:"likelihood"`
	Impact     impactPayload `json:"impact"`

	ExistingControls   []controlPayload `json:"existing_controls,omitempty"`
	MitigationStrategy string           `json:"mitigation_strategy,omitempty"`
	MitigationActions  []actionPayload  `json:"mitigation_actions,omitempty"`

	LinkedRiskIDs []string      `json:"linked_risk_ids,omitempty"`
	Dependencies  []edgePayload `json:"dependencies,omitempty"`

	QuantitativeLossMin *float64 `json:"quantitative_loss_min,omitempty"`
	QuantitativeLossMax *float64 `json:"quantitative_loss_max,omitempty"`
	Probability         *float64 `json:"probability,omitempty"`

	Status             string     `json:"status,omitempty"`
	AppetiteExceeded   bool       `json:"appetite_exceeded"`
	EscalationRequired bool       `json:"escalation_required"`
	LastReviewedAt     time.Time  `json:"last_reviewed_at,omitempty"`
	NextReviewDue      *time.Time `json:"next_review_due,omitempty"`

	CreatedBy string    `json:"created_by,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedBy string    `json:"updated_by,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
	Version   int       `json:"version,omitempty"`
	Notes     string    `json:"notes,omitempty"`

	InherentScore   int    `json:"inherent_score,omitempty"`
	ResidualScore   int    `json:"residual_score,omitempty"`
	SeverityTier    string `json:"severity_tier,omitempty"`
	NeedsMitigation bool   `json:"needs_mitigation,omitempty"`
}

func (p *riskPayload) toRisk() model.Risk {
	risk := model.Risk{
		ID:          types.RiskID(p.ID),
		Name:        p.Name,
		Category:    types.Category(p.Category),
		Description: p.Description,

		Owner:                  p.Owner,
		OwnerDepartment:        p.OwnerDepartment,
		ContributingDepartment: p.ContributingDepartment,

		Causes:            p.Causes,
		Triggers:          p.Triggers,
		AffectedProcesses: p.AffectedProcesses,

		Likelihood: types.LikelihoodLevel(p.Likelihood),
		Impact: model.ImpactAssessment{
			Financial:          types.ImpactLevel(p.Impact.Financial),
			Operational:        types.ImpactLevel(p.Impact.Operational),
			Regulatory:         types.ImpactLevel(p.Impact.Regulatory),
			Reputational:       types.ImpactLevel(p.Impact.Reputational),
			FinancialAmountMin: p.Impact.FinancialAmountMin,
			FinancialAmountMax: p.Impact.FinancialAmountMax,
			Narrative:          p.Impact.Narrative,
		},

		MitigationStrategy: types.MitigationStrategy(p.MitigationStrategy),

		QuantitativeLossMin: p.QuantitativeLossMin,
		QuantitativeLossMax: p.QuantitativeLossMax,
		Probability:         p.Probability,

		Status:             types.RiskStatus(p.Status),
		AppetiteExceeded:   p.AppetiteExceeded,
		EscalationRequired: p.EscalationRequired,
		LastReviewedAt:     p.LastReviewedAt,
		NextReviewDue:      p.NextReviewDue,
		Version:            p.Version,
		Notes:              p.Notes,
	}

	for _, c := range p.ExistingControls {
		risk.ExistingControls = append(risk.ExistingControls, model.ExistingControl{
			ID:            types.ControlID(c.ID),
			Description:   c.Description,
			Type:          types.ControlType(c.Type),
			Effectiveness: types.ControlEffectiveness(c.Effectiveness),
			LastTested:    c.LastTested,
			Department:    c.Department,
		})
	}
	for _, a := range p.MitigationActions {
		risk.MitigationActions = append(risk.MitigationActions, model.MitigationAction{
			ID:                    types.ActionID(a.ID),
			Description:           a.Description,
			ResponsiblePerson:     a.ResponsiblePerson,
			ResponsibleDepartment: a.ResponsibleDepartment,
			Deadline:              a.Deadline,
			Status:                types.ActionStatus(a.Status),
			Progress:              a.Progress,
			CostEstimate:          a.CostEstimate,
			ExpectedRiskReduction: a.ExpectedRiskReduction,
			Notes:                 a.Notes,
			CreatedAt:             a.CreatedAt,
			UpdatedAt:             a.UpdatedAt,
		})
	}
	for _, id := range p.LinkedRiskIDs {
		risk.LinkedRiskIDs = append(risk.LinkedRiskIDs, types.RiskID(id))
	}
	for _, e := range p.Dependencies {
		risk.Dependencies = append(risk.Dependencies, e.toEdge())
	}

	return risk
}

func fromRisk(risk *model.Risk) riskPayload {
	p := riskPayload{
		ID:          risk.ID.String(),
		Name:        risk.Name,
		Category:    risk.Category.String(),
		Description: risk.Description,

		Owner:                  risk.Owner,
		OwnerDepartment:        risk.OwnerDepartment,
		ContributingDepartment: risk.ContributingDepartment,

		Causes:            risk.Causes,
		Triggers:          risk.Triggers,
		AffectedProcesses: risk.AffectedProcesses,

		Likelihood: risk.Likelihood.Int(),
		Impact: impactPayload{
			Financial:          risk.Impact.Financial.Int(),
			Operational:        risk.Impact.Operational.Int(),
			Regulatory:         risk.Impact.Regulatory.Int(),
			Reputational:       risk.Impact.Reputational.Int(),
			FinancialAmountMin: risk.Impact.FinancialAmountMin,
			FinancialAmountMax: risk.Impact.FinancialAmountMax,
			Narrative:          risk.Impact.Narrative,
		},

		MitigationStrategy: risk.MitigationStrategy.String(),

		QuantitativeLossMin: risk.QuantitativeLossMin,
		QuantitativeLossMax: risk.QuantitativeLossMax,
		Probability:         risk.Probability,

		Status:             risk.Status.String(),
		AppetiteExceeded:   risk.AppetiteExceeded,
		EscalationRequired: risk.EscalationRequired,
		LastReviewedAt:     risk.LastReviewedAt,
		NextReviewDue:      risk.NextReviewDue,

		CreatedBy: risk.CreatedBy,
		CreatedAt: risk.CreatedAt,
		UpdatedBy: risk.UpdatedBy,
		UpdatedAt: risk.UpdatedAt,
		Version:   risk.Version,
		Notes:     risk.Notes,

		InherentScore:   risk.InherentScore(),
		ResidualScore:   risk.ResidualScore(),
		SeverityTier:    risk.SeverityTier().String(),
		NeedsMitigation: risk.NeedsMitigation(),
	}

	for _, c := range risk.ExistingControls {
		p.ExistingControls = append(p.ExistingControls, controlPayload{
			ID:            c.ID.String(),
			Description:   c.Description,
			Type:          c.Type.String(),
			Effectiveness: c.Effectiveness.String(),
			LastTested:    c.LastTested,
			Department:    c.Department,
		})
	}
	for _, a := range risk.MitigationActions {
		p.MitigationActions = append(p.MitigationActions, actionPayload{
			ID:                    a.ID.String(),
			Description:           a.Description,
			ResponsiblePerson:     a.ResponsiblePerson,
			ResponsibleDepartment: a.ResponsibleDepartment,
			Deadline:              a.Deadline,
			Status:                a.Status.String(),
			Progress:              a.Progress,
			CostEstimate:          a.CostEstimate,
			ExpectedRiskReduction: a.ExpectedRiskReduction,
			Notes:                 a.Notes,
			CreatedAt:             a.CreatedAt,
			UpdatedAt:             a.UpdatedAt,
		})
	}
	for _, id := range risk.LinkedRiskIDs {
		p.LinkedRiskIDs = append(p.LinkedRiskIDs, id.String())
	}
	for _, e := range risk.Dependencies {
		p.Dependencies = append(p.Dependencies, fromEdge(e))
	}

	return p
}

func (p *edgePayload) toEdge() model.Interdependency {
	return model.Interdependency{
		SourceID:            types.RiskID(p.SourceID),
		TargetID:            types.RiskID(p.TargetID),
		Kind:                types.RelationKind(p.Kind),
		ImpactMultiplier:    model.ImpactMultiplierOrDefault(p.ImpactMultiplier),
		ProbabilityIncrease: p.ProbabilityIncrease,
		Description:         p.Description,
		Validated:           p.Validated,
	}
}

func fromEdge(edge model.Interdependency) edgePayload {
	return edgePayload{
		SourceID:            edge.SourceID.String(),
		TargetID:            edge.TargetID.String(),
		Kind:                edge.Kind.String(),
		ImpactMultiplier:    &edge.ImpactMultiplier,
		ProbabilityIncrease: edge.ProbabilityIncrease,
		Description:         edge.Description,
		Validated:           edge.Validated,
	}
}
