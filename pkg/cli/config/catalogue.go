package config

import (
	"os"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"

	"github.com/secmon-lab/briareus/pkg/domain/model"
	"github.com/secmon-lab/briareus/pkg/domain/types"
)

// Catalogue is the TOML representation of a risk catalogue. It is the
// file-based counterpart of the repository: the assess and validate
// commands work directly from it without a running server.
type Catalogue struct {
	Risks        []CatalogueRisk       `toml:"risk"`
	Dependencies []CatalogueDependency `toml:"dependency"`
}

// CatalogueRisk is a single risk entry in the catalogue file
type CatalogueRisk struct {
	ID          string `toml:"id"`
	Name        string `toml:"name"`
	Category    string `toml:"category"`
	Description string `toml:"description"`

	Owner                  string `toml:"owner"`
	OwnerDepartment        string `toml:"owner_department"`
	ContributingDepartment string `toml:"contributing_department"`

	Causes            []string `toml:"causes"`
	Triggers          []string `toml:"triggers"`
	AffectedProcesses []string `toml:"affected_processes"`

	Likelihood int             `toml:"likelihood"`
	Impact     CatalogueImpact `toml:"impact"`

	Controls           []CatalogueControl `toml:"control"`
	MitigationStrategy string             `toml:"mitigation_strategy"`
	Actions            []CatalogueAction  `toml:"action"`

	Status           string `toml:"status"`
	AppetiteExceeded bool   `toml:"appetite_exceeded"`
	Notes            string `toml:"notes"`
}

// CatalogueImpact holds the per-dimension impact ordinals of a risk
type CatalogueImpact struct {
	Financial          int      `toml:"financial"`
	Operational        int      `toml:"operational"`
	Regulatory         int      `toml:"regulatory"`
	Reputational       int      `toml:"reputational"`
	FinancialAmountMin *float64 `toml:"financial_amount_min"`
	FinancialAmountMax *float64 `toml:"financial_amount_max"`
	Narrative          string   `toml:"narrative"`
}

// CatalogueControl is an existing control entry
type CatalogueControl struct {
	ID            string     `toml:"id"`
	Description   string     `toml:"description"`
	Type          string     `toml:"type"`
	Effectiveness string     `toml:"effectiveness"`
	LastTested    *time.Time `toml:"last_tested"`
	Department    string     `toml:"department"`
}

// CatalogueAction is a mitigation action entry
type CatalogueAction struct {
	ID                    string    `toml:"id"`
	Description           string    `toml:"description"`
	ResponsiblePerson     string    `toml:"responsible_person"`
	ResponsibleDepartment string    `toml:"responsible_department"`
	Deadline              time.Time `toml:"deadline"`
	Status                string    `toml:"status"`
	Progress              int       `toml:"progress"`
	CostEstimate          *float64  `toml:"cost_estimate"`
	ExpectedRiskReduction *int      `toml:"expected_risk_reduction"`
	Notes                 string    `toml:"notes"`
}

// CatalogueDependency is a directed interdependency entry between two
// risks in the catalogue
type CatalogueDependency struct {
	Source              string   `toml:"source"`
	Target              string   `toml:"target"`
	Kind                string   `toml:"kind"`
	ImpactMultiplier    *float64 `toml:"impact_multiplier"`
	ProbabilityIncrease float64  `toml:"probability_increase"`
	Description         string   `toml:"description"`
	Validated           bool     `toml:"validated"`
}

// LoadCatalogue reads and decodes a catalogue file
func LoadCatalogue(path string) (*Catalogue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, goerr.Wrap(ErrCatalogueNotFound, path, goerr.V(CataloguePathKey, path))
		}
		return nil, goerr.Wrap(err, "failed to read catalogue file", goerr.V(CataloguePathKey, path))
	}

	var catalogue Catalogue
	if err := toml.Unmarshal(data, &catalogue); err != nil {
		return nil, goerr.Wrap(ErrInvalidCatalogue, err.Error(), goerr.V(CataloguePathKey, path))
	}

	return &catalogue, nil
}

// ToRisk converts the catalogue entry into the domain entity
func (r *CatalogueRisk) ToRisk() *model.Risk {
	risk := &model.Risk{
		ID:          types.RiskID(r.ID),
		Name:        r.Name,
		Category:    types.Category(r.Category),
		Description: r.Description,

		Owner:                  r.Owner,
		OwnerDepartment:        r.OwnerDepartment,
		ContributingDepartment: r.ContributingDepartment,

		Causes:            r.Causes,
		Triggers:          r.Triggers,
		AffectedProcesses: r.AffectedProcesses,

		Likelihood: types.LikelihoodLevel(r.Likelihood),
		Impact: model.ImpactAssessment{
			Financial:          types.ImpactLevel(r.Impact.Financial),
			Operational:        types.ImpactLevel(r.Impact.Operational),
			Regulatory:         types.ImpactLevel(r.Impact.Regulatory),
			Reputational:       types.ImpactLevel(r.Impact.Reputational),
			FinancialAmountMin: r.Impact.FinancialAmountMin,
			FinancialAmountMax: r.Impact.FinancialAmountMax,
			Narrative:          r.Impact.Narrative,
		},

		MitigationStrategy: types.MitigationStrategy(r.MitigationStrategy),

		Status:           types.RiskStatus(r.Status).Normalize(),
		AppetiteExceeded: r.AppetiteExceeded,
		Notes:            r.Notes,
	}

	for _, c := range r.Controls {
		risk.ExistingControls = append(risk.ExistingControls, model.ExistingControl{
			ID:            types.ControlID(c.ID),
			Description:   c.Description,
			Type:          types.ControlType(c.Type),
			Effectiveness: types.ControlEffectiveness(c.Effectiveness),
			LastTested:    c.LastTested,
			Department:    c.Department,
		})
	}
	for _, a := range r.Actions {
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
		})
	}

	return risk
}

// ToEdge converts the catalogue entry into the domain edge
func (d *CatalogueDependency) ToEdge() model.Interdependency {
	return model.Interdependency{
		SourceID:            types.RiskID(d.Source),
		TargetID:            types.RiskID(d.Target),
		Kind:                types.RelationKind(d.Kind).Normalize(),
		ImpactMultiplier:    model.ImpactMultiplierOrDefault(d.ImpactMultiplier),
		ProbabilityIncrease: d.ProbabilityIncrease,
		Description:         d.Description,
		Validated:           d.Validated,
	}
}

// parseEnums checks the free-form enum strings of a catalogue entry so a
// typo in the file is reported with the list of accepted values, not just
// a failed validation downstream. Optional fields may be empty.
func (r *CatalogueRisk) parseEnums() error {
	if _, err := types.ParseCategory(r.Category); err != nil {
		return err
	}
	if r.Status != "" {
		if _, err := types.ParseRiskStatus(r.Status); err != nil {
			return err
		}
	}
	if r.MitigationStrategy != "" {
		if _, err := types.ParseMitigationStrategy(r.MitigationStrategy); err != nil {
			return err
		}
	}
	for i := range r.Controls {
		if _, err := types.ParseControlType(r.Controls[i].Type); err != nil {
			return err
		}
		if _, err := types.ParseControlEffectiveness(r.Controls[i].Effectiveness); err != nil {
			return err
		}
	}
	for i := range r.Actions {
		if _, err := types.ParseActionStatus(r.Actions[i].Status); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks the catalogue as a whole: every entry must be valid on
// its own, risk IDs must be unique, and every dependency must reference
// risks declared in the same file.
func (c *Catalogue) Validate() error {
	riskIDs := make(map[string]bool)
	for i := range c.Risks {
		if err := c.Risks[i].parseEnums(); err != nil {
			return goerr.Wrap(ErrInvalidCatalogue, err.Error(), goerr.V(RiskIDKey, c.Risks[i].ID))
		}
		risk := c.Risks[i].ToRisk()
		if err := risk.Validate(); err != nil {
			return goerr.Wrap(ErrInvalidCatalogue, err.Error(), goerr.V(RiskIDKey, c.Risks[i].ID))
		}
		if riskIDs[c.Risks[i].ID] {
			return goerr.Wrap(ErrDuplicateRiskID, c.Risks[i].ID, goerr.V(RiskIDKey, c.Risks[i].ID))
		}
		riskIDs[c.Risks[i].ID] = true
	}

	for i := range c.Dependencies {
		edge := c.Dependencies[i].ToEdge()
		if err := edge.Validate(); err != nil {
			return goerr.Wrap(ErrInvalidCatalogue, err.Error(),
				goerr.V(SourceIDKey, c.Dependencies[i].Source),
				goerr.V(TargetIDKey, c.Dependencies[i].Target))
		}
		if !riskIDs[c.Dependencies[i].Source] {
			return goerr.Wrap(ErrUnknownRiskRef, c.Dependencies[i].Source,
				goerr.V(SourceIDKey, c.Dependencies[i].Source))
		}
		if !riskIDs[c.Dependencies[i].Target] {
			return goerr.Wrap(ErrUnknownRiskRef, c.Dependencies[i].Target,
				goerr.V(TargetIDKey, c.Dependencies[i].Target))
		}
	}

	return nil
}
