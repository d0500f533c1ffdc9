package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"

	"github.com/secmon-lab/briareus/pkg/domain/interfaces"
	"github.com/secmon-lab/briareus/pkg/domain/model"
	"github.com/secmon-lab/briareus/pkg/domain/types"
)

// RiskUseCase manages the risk catalogue: creation, mutation with
// optimistic versioning, and interdependency registration.
type RiskUseCase struct {
	repo  interfaces.Repository
	clock func() time.Time
}

// CreateRisk validates and stores a new risk. Missing control and action
// IDs are generated; the version counter starts at 1.
func (uc *RiskUseCase) CreateRisk(ctx context.Context, actor string, risk *model.Risk) (*model.Risk, error) {
	fillGeneratedIDs(risk)

	if err := risk.Validate(); err != nil {
		return nil, goerr.Wrap(ErrInvalidRisk, err.Error(), goerr.V("risk_id", risk.ID))
	}

	now := uc.clock()
	risk.Status = risk.Status.Normalize()
	risk.CreatedBy = actor
	risk.CreatedAt = now
	risk.UpdatedBy = actor
	risk.UpdatedAt = now
	risk.Version = 1
	if risk.LastReviewedAt.IsZero() {
		risk.LastReviewedAt = now
	}

	created, err := uc.repo.Risk().Create(ctx, risk)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create risk", goerr.V("risk_id", risk.ID))
	}

	// Register edges declared inline on the risk
	for _, edge := range risk.Dependencies {
		if err := uc.repo.Edge().Add(ctx, edge); err != nil {
			return nil, goerr.Wrap(err, "failed to register interdependency",
				goerr.V("source", edge.SourceID), goerr.V("target", edge.TargetID))
		}
	}

	return created, nil
}

// UpdateRisk validates and stores a mutation of an existing risk. The
// caller must pass the version it read; a mismatch with the stored
// version fails with ErrVersionConflict (last-write-wins is not applied
// silently).
func (uc *RiskUseCase) UpdateRisk(ctx context.Context, actor string, risk *model.Risk) (*model.Risk, error) {
	if err := risk.Validate(); err != nil {
		return nil, goerr.Wrap(ErrInvalidRisk, err.Error(), goerr.V("risk_id", risk.ID))
	}

	current, err := uc.repo.Risk().Get(ctx, risk.ID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get risk", goerr.V("risk_id", risk.ID))
	}
	if current.Version != risk.Version {
		return nil, goerr.Wrap(ErrVersionConflict, "risk was modified concurrently",
			goerr.V("risk_id", risk.ID),
			goerr.V("expected_version", risk.Version),
			goerr.V("stored_version", current.Version))
	}

	risk.CreatedBy = current.CreatedBy
	risk.CreatedAt = current.CreatedAt
	risk.Touch(actor, uc.clock())

	updated, err := uc.repo.Risk().Update(ctx, risk)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update risk", goerr.V("risk_id", risk.ID))
	}
	return updated, nil
}

// GetRisk retrieves a risk by ID
func (uc *RiskUseCase) GetRisk(ctx context.Context, id types.RiskID) (*model.Risk, error) {
	risk, err := uc.repo.Risk().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get risk", goerr.V("risk_id", id))
	}
	return risk, nil
}

// ListRisks returns all risks in the catalogue
func (uc *RiskUseCase) ListRisks(ctx context.Context) ([]*model.Risk, error) {
	risks, err := uc.repo.Risk().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list risks")
	}
	return risks, nil
}

// DeleteRisk removes a risk from the catalogue
func (uc *RiskUseCase) DeleteRisk(ctx context.Context, id types.RiskID) error {
	if err := uc.repo.Risk().Delete(ctx, id); err != nil {
		return goerr.Wrap(err, "failed to delete risk", goerr.V("risk_id", id))
	}
	return nil
}

// AddDependency validates and stores an interdependency edge. Self-loops
// and out-of-range fields are rejected before anything is stored. The
// referenced risks are not required to exist yet: the graph may be built
// incrementally before the full catalogue is loaded.
func (uc *RiskUseCase) AddDependency(ctx context.Context, edge model.Interdependency) error {
	edge.Kind = edge.Kind.Normalize()
	if err := edge.Validate(); err != nil {
		return goerr.Wrap(ErrInvalidEdge, err.Error(),
			goerr.V("source", edge.SourceID), goerr.V("target", edge.TargetID))
	}

	if err := uc.repo.Edge().Add(ctx, edge); err != nil {
		return goerr.Wrap(err, "failed to store interdependency",
			goerr.V("source", edge.SourceID), goerr.V("target", edge.TargetID))
	}
	return nil
}

// ListDependencies returns all interdependency edges in insertion order
func (uc *RiskUseCase) ListDependencies(ctx context.Context) ([]model.Interdependency, error) {
	edges, err := uc.repo.Edge().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list interdependencies")
	}
	return edges, nil
}

func fillGeneratedIDs(risk *model.Risk) {
	for i := range risk.ExistingControls {
		if risk.ExistingControls[i].ID == "" {
			risk.ExistingControls[i].ID = types.ControlID(uuid.NewString())
		}
	}
	for i := range risk.MitigationActions {
		if risk.MitigationActions[i].ID == "" {
			risk.MitigationActions[i].ID = types.ActionID(uuid.NewString())
		}
	}
}
