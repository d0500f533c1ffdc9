package memory

import (
	"context"
	"sync"

	"github.com/secmon-lab/briareus/pkg/domain/model"
	"github.com/secmon-lab/briareus/pkg/domain/types"
)

// edgeRepository keeps edges in a single insertion-ordered slice.
// Duplicate edges between the same pair are retained.
type edgeRepository struct {
	mu    sync.RWMutex
	edges []model.Interdependency
}

func newEdgeRepository() *edgeRepository {
	return &edgeRepository{}
}

func (r *edgeRepository) Add(ctx context.Context, edge model.Interdependency) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.edges = append(r.edges, edge)
	return nil
}

func (r *edgeRepository) List(ctx context.Context) ([]model.Interdependency, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]model.Interdependency, len(r.edges))
	copy(result, r.edges)
	return result, nil
}

func (r *edgeRepository) ListBySource(ctx context.Context, sourceID types.RiskID) ([]model.Interdependency, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []model.Interdependency
	for _, edge := range r.edges {
		if edge.SourceID == sourceID {
			result = append(result, edge)
		}
	}
	return result, nil
}
