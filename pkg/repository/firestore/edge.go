package firestore

import (
	"context"
	"sort"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/secmon-lab/briareus/pkg/domain/model"
	"github.com/secmon-lab/briareus/pkg/domain/types"
)

// ImpactMultiplier is a pointer so documents written without the field
// hydrate to the model default rather than zero.
type edgeDocument struct {
	Seq                 int64    `firestore:"seq"`
	SourceID            string   `firestore:"source_id"`
	TargetID            string   `firestore:"target_id"`
	Kind                string   `firestore:"kind"`
	ImpactMultiplier    *float64 `firestore:"impact_multiplier"`
	ProbabilityIncrease float64  `firestore:"probability_increase"`
	Description         string   `firestore:"description"`
	Validated           bool     `firestore:"validated"`
}

type edgeRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newEdgeRepository(client *firestore.Client) *edgeRepository {
	return &edgeRepository{client: client}
}

func (r *edgeRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_edges"
	}
	return "edges"
}

func (r *edgeRepository) counterCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_counters"
	}
	return "counters"
}

// nextSeq assigns a monotonically increasing sequence number so the
// insertion order of edges survives round trips through the store
func (r *edgeRepository) nextSeq(ctx context.Context) (int64, error) {
	counterRef := r.client.Collection(r.counterCollection()).Doc("edge_counter")

	var seq int64
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(counterRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				seq = 1
				return tx.Set(counterRef, map[string]interface{}{
					"value": seq,
				})
			}
			return goerr.Wrap(err, "failed to get edge counter")
		}

		value, err := doc.DataAt("value")
		if err != nil {
			return goerr.Wrap(err, "failed to get edge counter value")
		}

		seq = value.(int64) + 1
		return tx.Update(counterRef, []firestore.Update{
			{Path: "value", Value: seq},
		})
	})
	if err != nil {
		return 0, goerr.Wrap(err, "failed to assign edge sequence")
	}

	return seq, nil
}

func (r *edgeRepository) Add(ctx context.Context, edge model.Interdependency) error {
	seq, err := r.nextSeq(ctx)
	if err != nil {
		return err
	}

	doc := &edgeDocument{
		Seq:                 seq,
		SourceID:            edge.SourceID.String(),
		TargetID:            edge.TargetID.String(),
		Kind:                edge.Kind.String(),
		ImpactMultiplier:    &edge.ImpactMultiplier,
		ProbabilityIncrease: edge.ProbabilityIncrease,
		Description:         edge.Description,
		Validated:           edge.Validated,
	}

	if _, _, err := r.client.Collection(r.collection()).Add(ctx, doc); err != nil {
		return goerr.Wrap(err, "failed to add edge",
			goerr.V("source", edge.SourceID), goerr.V("target", edge.TargetID))
	}
	return nil
}

func fromEdgeDocument(doc *edgeDocument) model.Interdependency {
	return model.Interdependency{
		SourceID:            types.RiskID(doc.SourceID),
		TargetID:            types.RiskID(doc.TargetID),
		Kind:                types.RelationKind(doc.Kind),
		ImpactMultiplier:    model.ImpactMultiplierOrDefault(doc.ImpactMultiplier),
		ProbabilityIncrease: doc.ProbabilityIncrease,
		Description:         doc.Description,
		Validated:           doc.Validated,
	}
}

func (r *edgeRepository) List(ctx context.Context) ([]model.Interdependency, error) {
	iter := r.client.Collection(r.collection()).OrderBy("seq", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	var edges []model.Interdependency
	for {
		snapshot, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate edges")
		}

		var doc edgeDocument
		if err := snapshot.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to decode edge document")
		}
		edges = append(edges, fromEdgeDocument(&doc))
	}

	return edges, nil
}

func (r *edgeRepository) ListBySource(ctx context.Context, sourceID types.RiskID) ([]model.Interdependency, error) {
	// Sorted client-side by seq to avoid a composite index on
	// (source_id, seq)
	iter := r.client.Collection(r.collection()).
		Where("source_id", "==", sourceID.String()).
		Documents(ctx)
	defer iter.Stop()

	type seqEdge struct {
		seq  int64
		edge model.Interdependency
	}
	var found []seqEdge
	for {
		snapshot, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate edges", goerr.V("source", sourceID))
		}

		var doc edgeDocument
		if err := snapshot.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to decode edge document")
		}
		found = append(found, seqEdge{seq: doc.Seq, edge: fromEdgeDocument(&doc)})
	}

	sort.Slice(found, func(i, j int) bool { return found[i].seq < found[j].seq })

	edges := make([]model.Interdependency, len(found))
	for i, se := range found {
		edges[i] = se.edge
	}
	return edges, nil
}
