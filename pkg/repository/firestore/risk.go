package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/secmon-lab/briareus/pkg/domain/model"
	"github.com/secmon-lab/briareus/pkg/domain/types"
)

// Nested entities are stored as subdocuments on the risk document,
// matching the store's persisted representation (JSON-encoded nested
// fields, flattened scalars).
type impactDocument struct {
	Financial          int      `firestore:"financial"`
	Operational        int      `firestore:"operational"`
	Regulatory         int      `firestore:"regulatory"`
	Reputational       int      `firestore:"reputational"`
	FinancialAmountMin *float64 `firestore:"financial_amount_min"`
	FinancialAmountMax *float64 `firestore:"financial_amount_max"`
	Narrative          string   `firestore:"narrative"`
}

type controlDocument struct {
	ID            string     `firestore:"id"`
	Description   string     `firestore:"description"`
	Type          string     `firestore:"type"`
	Effectiveness string     `firestore:"effectiveness"`
	LastTested    *time.Time `firestore:"last_tested"`
	Department    string     `firestore:"department"`
}

type actionDocument struct {
	ID                    string    `firestore:"id"`
	Description           string    `firestore:"description"`
	ResponsiblePerson     string    `firestore:"responsible_person"`
	ResponsibleDepartment string    `firestore:"responsible_department"`
	Deadline              time.Time `firestore:"deadline"`
	Status                string    `firestore:"status"`
	Progress              int       `firestore:"progress"`
	CostEstimate          *float64  `firestore:"cost_estimate"`
	ExpectedRiskReduction *int      `firestore:"expected_risk_reduction"`
	Notes                 string    `firestore:"notes"`
	CreatedAt             time.Time `firestore:"created_at"`
	UpdatedAt             time.Time `firestore:"updated_at"`
}

type riskDocument struct {
	ID          string `firestore:"id"`
	Name        string `firestore:"name"`
	Category    string `firestore:"category"`
	Description string `firestore:"description"`

	Owner                  string `firestore:"owner"`
	OwnerDepartment        string `firestore:"owner_department"`
	ContributingDepartment string `firestore:"contributing_department"`

	Causes            []string `firestore:"causes"`
	Triggers          []string `firestore:"triggers"`
	AffectedProcesses []string `firestore:"affected_processes"`

	Likelihood int            `firestore:"likelihood"`
	Impact     impactDocument `firestore:"impact"`

	ExistingControls   []controlDocument `firestore:"existing_controls"`
	MitigationStrategy string            `firestore:"mitigation_strategy"`
	MitigationActions  []actionDocument  `firestore:"mitigation_actions"`

	LinkedRiskIDs []string `firestore:"linked_risk_ids"`

	QuantitativeLossMin *float64 `firestore:"quantitative_loss_min"`
	QuantitativeLossMax *float64 `firestore:"quantitative_loss_max"`
	Probability         *float64 `firestore:"probability"`

	Status             string     `firestore:"status"`
	AppetiteExceeded   bool       `firestore:"appetite_exceeded"`
	EscalationRequired bool       `firestore:"escalation_required"`
	LastReviewedAt     time.Time  `firestore:"last_reviewed_at"`
	NextReviewDue      *time.Time `firestore:"next_review_due"`

	CreatedBy string    `firestore:"created_by"`
	CreatedAt time.Time `firestore:"created_at"`
	UpdatedBy string    `firestore:"updated_by"`
	UpdatedAt time.Time `firestore:"updated_at"`
	Version   int       `firestore:"version"`
	Notes     string    `firestore:"notes"`

	// Cached derived values for store-side queries. The engine never
	// reads these back as ground truth.
	ResidualScore int    `firestore:"residual_score"`
	SeverityTier  string `firestore:"severity_tier"`
}

type riskRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newRiskRepository(client *firestore.Client) *riskRepository {
	return &riskRepository{client: client}
}

func (r *riskRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_risks"
	}
	return "risks"
}

func toRiskDocument(risk *model.Risk) *riskDocument {
	doc := &riskDocument{
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
		Impact: impactDocument{
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

		ResidualScore: risk.ResidualScore(),
		SeverityTier:  risk.SeverityTier().String(),
	}

	for _, control := range risk.ExistingControls {
		doc.ExistingControls = append(doc.ExistingControls, controlDocument{
			ID:            control.ID.String(),
			Description:   control.Description,
			Type:          control.Type.String(),
			Effectiveness: control.Effectiveness.String(),
			LastTested:    control.LastTested,
			Department:    control.Department,
		})
	}
	for _, action := range risk.MitigationActions {
		doc.MitigationActions = append(doc.MitigationActions, actionDocument{
			ID:                    action.ID.String(),
			Description:           action.Description,
			ResponsiblePerson:     action.ResponsiblePerson,
			ResponsibleDepartment: action.ResponsibleDepartment,
			Deadline:              action.Deadline,
			Status:                action.Status.String(),
			Progress:              action.Progress,
			CostEstimate:          action.CostEstimate,
			ExpectedRiskReduction: action.ExpectedRiskReduction,
			Notes:                 action.Notes,
			CreatedAt:             action.CreatedAt,
			UpdatedAt:             action.UpdatedAt,
		})
	}
	for _, id := range risk.LinkedRiskIDs {
		doc.LinkedRiskIDs = append(doc.LinkedRiskIDs, id.String())
	}

	return doc
}

func fromRiskDocument(doc *riskDocument) *model.Risk {
	risk := &model.Risk{
		ID:          types.RiskID(doc.ID),
		Name:        doc.Name,
		Category:    types.Category(doc.Category),
		Description: doc.Description,

		Owner:                  doc.Owner,
		OwnerDepartment:        doc.OwnerDepartment,
		ContributingDepartment: doc.ContributingDepartment,

		Causes:            doc.Causes,
		Triggers:          doc.Triggers,
		AffectedProcesses: doc.AffectedProcesses,

		Likelihood: types.LikelihoodLevel(doc.Likelihood),
		Impact: model.ImpactAssessment{
			Financial:          types.ImpactLevel(doc.Impact.Financial),
			Operational:        types.ImpactLevel(doc.Impact.Operational),
			Regulatory:         types.ImpactLevel(doc.Impact.Regulatory),
			Reputational:       types.ImpactLevel(doc.Impact.Reputational),
			FinancialAmountMin: doc.Impact.FinancialAmountMin,
			FinancialAmountMax: doc.Impact.FinancialAmountMax,
			Narrative:          doc.Impact.Narrative,
		},

		MitigationStrategy: types.MitigationStrategy(doc.MitigationStrategy),

		QuantitativeLossMin: doc.QuantitativeLossMin,
		QuantitativeLossMax: doc.QuantitativeLossMax,
		Probability:         doc.Probability,

		Status:             types.RiskStatus(doc.Status),
		AppetiteExceeded:   doc.AppetiteExceeded,
		EscalationRequired: doc.EscalationRequired,
		LastReviewedAt:     doc.LastReviewedAt,
		NextReviewDue:      doc.NextReviewDue,

		CreatedBy: doc.CreatedBy,
		CreatedAt: doc.CreatedAt,
		UpdatedBy: doc.UpdatedBy,
		UpdatedAt: doc.UpdatedAt,
		Version:   doc.Version,
		Notes:     doc.Notes,
	}

	for _, control := range doc.ExistingControls {
		risk.ExistingControls = append(risk.ExistingControls, model.ExistingControl{
			ID:            types.ControlID(control.ID),
			Description:   control.Description,
			Type:          types.ControlType(control.Type),
			Effectiveness: types.ControlEffectiveness(control.Effectiveness),
			LastTested:    control.LastTested,
			Department:    control.Department,
		})
	}
	for _, action := range doc.MitigationActions {
		risk.MitigationActions = append(risk.MitigationActions, model.MitigationAction{
			ID:                    types.ActionID(action.ID),
			Description:           action.Description,
			ResponsiblePerson:     action.ResponsiblePerson,
			ResponsibleDepartment: action.ResponsibleDepartment,
			Deadline:              action.Deadline,
			Status:                types.ActionStatus(action.Status),
			Progress:              action.Progress,
			CostEstimate:          action.CostEstimate,
			ExpectedRiskReduction: action.ExpectedRiskReduction,
			Notes:                 action.Notes,
			CreatedAt:             action.CreatedAt,
			UpdatedAt:             action.UpdatedAt,
		})
	}
	for _, id := range doc.LinkedRiskIDs {
		risk.LinkedRiskIDs = append(risk.LinkedRiskIDs, types.RiskID(id))
	}

	return risk
}

func (r *riskRepository) Create(ctx context.Context, risk *model.Risk) (*model.Risk, error) {
	ref := r.client.Collection(r.collection()).Doc(risk.ID.String())

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		_, err := tx.Get(ref)
		if err == nil {
			return goerr.Wrap(ErrAlreadyExists, "risk already exists", goerr.V("risk_id", risk.ID))
		}
		if status.Code(err) != codes.NotFound {
			return goerr.Wrap(err, "failed to check risk existence", goerr.V("risk_id", risk.ID))
		}
		return tx.Set(ref, toRiskDocument(risk))
	})
	if err != nil {
		return nil, err
	}

	return risk, nil
}

func (r *riskRepository) Get(ctx context.Context, id types.RiskID) (*model.Risk, error) {
	snapshot, err := r.client.Collection(r.collection()).Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "risk not found", goerr.V("risk_id", id))
		}
		return nil, goerr.Wrap(err, "failed to get risk", goerr.V("risk_id", id))
	}

	var doc riskDocument
	if err := snapshot.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to decode risk document", goerr.V("risk_id", id))
	}
	return fromRiskDocument(&doc), nil
}

func (r *riskRepository) List(ctx context.Context) ([]*model.Risk, error) {
	iter := r.client.Collection(r.collection()).OrderBy("id", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	var risks []*model.Risk
	for {
		snapshot, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate risks")
		}

		var doc riskDocument
		if err := snapshot.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to decode risk document")
		}
		risks = append(risks, fromRiskDocument(&doc))
	}

	return risks, nil
}

func (r *riskRepository) Update(ctx context.Context, risk *model.Risk) (*model.Risk, error) {
	ref := r.client.Collection(r.collection()).Doc(risk.ID.String())

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		_, err := tx.Get(ref)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return goerr.Wrap(ErrNotFound, "risk not found", goerr.V("risk_id", risk.ID))
			}
			return goerr.Wrap(err, "failed to get risk", goerr.V("risk_id", risk.ID))
		}
		return tx.Set(ref, toRiskDocument(risk))
	})
	if err != nil {
		return nil, err
	}

	return risk, nil
}

func (r *riskRepository) Delete(ctx context.Context, id types.RiskID) error {
	ref := r.client.Collection(r.collection()).Doc(id.String())

	return r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		_, err := tx.Get(ref)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return goerr.Wrap(ErrNotFound, "risk not found", goerr.V("risk_id", id))
			}
			return goerr.Wrap(err, "failed to get risk", goerr.V("risk_id", id))
		}
		return tx.Delete(ref)
	})
}
