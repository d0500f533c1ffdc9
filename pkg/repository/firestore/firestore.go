package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"

	"github.com/secmon-lab/briareus/pkg/domain/interfaces"
)

// Repository errors
var (
	ErrNotFound      = goerr.New("not found")
	ErrAlreadyExists = goerr.New("already exists")
)

// Firestore is the Firestore-backed implementation of
// interfaces.Repository
type Firestore struct {
	client *firestore.Client
	risk   *riskRepository
	edge   *edgeRepository
}

var _ interfaces.Repository = &Firestore{}

// Option configures the Firestore repository
type Option func(*Firestore)

// WithCollectionPrefix prefixes all collection names, so multiple
// deployments can share one database
func WithCollectionPrefix(prefix string) Option {
	return func(f *Firestore) {
		f.risk.collectionPrefix = prefix
		f.edge.collectionPrefix = prefix
	}
}

// New creates a Firestore repository for the given project and database
func New(ctx context.Context, projectID, databaseID string, opts ...Option) (*Firestore, error) {
	var client *firestore.Client
	var err error
	if databaseID != "" {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	} else {
		client, err = firestore.NewClient(ctx, projectID)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("projectID", projectID), goerr.V("databaseID", databaseID))
	}

	f := &Firestore{
		client: client,
		risk:   newRiskRepository(client),
		edge:   newEdgeRepository(client),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

// Risk returns the risk repository
func (f *Firestore) Risk() interfaces.RiskRepository {
	return f.risk
}

// Edge returns the interdependency edge repository
func (f *Firestore) Edge() interfaces.EdgeRepository {
	return f.edge
}

// Close releases the underlying client
func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}
