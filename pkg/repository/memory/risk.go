package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/m-mizutani/goerr/v2"

	"github.com/secmon-lab/briareus/pkg/domain/model"
	"github.com/secmon-lab/briareus/pkg/domain/types"
)

type riskRepository struct {
	mu    sync.RWMutex
	risks map[types.RiskID]*model.Risk
}

func newRiskRepository() *riskRepository {
	return &riskRepository{
		risks: make(map[types.RiskID]*model.Risk),
	}
}

// copyRisk deep-copies a risk so callers never share mutable state with
// the store
func copyRisk(r *model.Risk) *model.Risk {
	copied := *r

	copied.Causes = append([]string(nil), r.Causes...)
	copied.Triggers = append([]string(nil), r.Triggers...)
	copied.AffectedProcesses = append([]string(nil), r.AffectedProcesses...)
	copied.ExistingControls = append([]model.ExistingControl(nil), r.ExistingControls...)
	copied.MitigationActions = append([]model.MitigationAction(nil), r.MitigationActions...)
	copied.LinkedRiskIDs = append([]types.RiskID(nil), r.LinkedRiskIDs...)
	copied.Dependencies = append([]model.Interdependency(nil), r.Dependencies...)

	return &copied
}

func (r *riskRepository) Create(ctx context.Context, risk *model.Risk) (*model.Risk, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.risks[risk.ID]; exists {
		return nil, goerr.Wrap(ErrAlreadyExists, "risk already exists", goerr.V("risk_id", risk.ID))
	}

	created := copyRisk(risk)
	r.risks[created.ID] = created
	return copyRisk(created), nil
}

func (r *riskRepository) Get(ctx context.Context, id types.RiskID) (*model.Risk, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	risk, exists := r.risks[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "risk not found", goerr.V("risk_id", id))
	}
	return copyRisk(risk), nil
}

func (r *riskRepository) List(ctx context.Context) ([]*model.Risk, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*model.Risk, 0, len(r.risks))
	for _, risk := range r.risks {
		result = append(result, copyRisk(risk))
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (r *riskRepository) Update(ctx context.Context, risk *model.Risk) (*model.Risk, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.risks[risk.ID]; !exists {
		return nil, goerr.Wrap(ErrNotFound, "risk not found", goerr.V("risk_id", risk.ID))
	}

	updated := copyRisk(risk)
	r.risks[updated.ID] = updated
	return copyRisk(updated), nil
}

func (r *riskRepository) Delete(ctx context.Context, id types.RiskID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.risks[id]; !exists {
		return goerr.Wrap(ErrNotFound, "risk not found", goerr.V("risk_id", id))
	}

	delete(r.risks, id)
	return nil
}
