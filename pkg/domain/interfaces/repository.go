package interfaces

import (
	"context"

	"github.com/secmon-lab/briareus/pkg/domain/model"
	"github.com/secmon-lab/briareus/pkg/domain/types"
)

// RiskRepository provides CRUD operations for Risk entities
type RiskRepository interface {
	Create(ctx context.Context, risk *model.Risk) (*model.Risk, error)
	Get(ctx context.Context, id types.RiskID) (*model.Risk, error)
	List(ctx context.Context) ([]*model.Risk, error)
	Update(ctx context.Context, risk *model.Risk) (*model.Risk, error)
	Delete(ctx context.Context, id types.RiskID) error
}

// EdgeRepository stores interdependency edges between risks. Insertion
// order is preserved; duplicate edges between the same pair are retained.
type EdgeRepository interface {
	Add(ctx context.Context, edge model.Interdependency) error
	List(ctx context.Context) ([]model.Interdependency, error)
	ListBySource(ctx context.Context, sourceID types.RiskID) ([]model.Interdependency, error)
}

// Repository is the aggregated persistence interface (the Risk Store)
type Repository interface {
	Risk() RiskRepository
	Edge() EdgeRepository
	Close() error
}
