package memory

import (
	"github.com/m-mizutani/goerr/v2"

	"github.com/secmon-lab/briareus/pkg/domain/interfaces"
)

// Repository errors
var (
	ErrNotFound      = goerr.New("not found")
	ErrAlreadyExists = goerr.New("already exists")
)

// Repository is an in-memory implementation of interfaces.Repository,
// mainly for development and tests
type Repository struct {
	risk *riskRepository
	edge *edgeRepository
}

var _ interfaces.Repository = &Repository{}

// New creates an empty in-memory repository
func New() *Repository {
	return &Repository{
		risk: newRiskRepository(),
		edge: newEdgeRepository(),
	}
}

// Risk returns the risk repository
func (r *Repository) Risk() interfaces.RiskRepository {
	return r.risk
}

// Edge returns the interdependency edge repository
func (r *Repository) Edge() interfaces.EdgeRepository {
	return r.edge
}

// Close is a no-op for the in-memory repository
func (r *Repository) Close() error {
	return nil
}
