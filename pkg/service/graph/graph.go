package graph

import (
	"sort"

	"github.com/m-mizutani/goerr/v2"

	"github.com/secmon-lab/briareus/pkg/domain/model"
	"github.com/secmon-lab/briareus/pkg/domain/types"
)

// DefaultMaxDepth bounds chain discovery when the caller does not supply
// a depth
const DefaultMaxDepth = 5

// Engine tracks directed cause-effect relationships between risks and
// answers propagation queries. It is a build-once, query-many snapshot
// structure: inserts are monotonic and there is no internal locking, so
// concurrent readers are safe as long as no insert runs alongside them.
type Engine struct {
	sources   []types.RiskID
	adjacency map[types.RiskID][]model.Interdependency
}

// New creates an empty interdependency engine
func New() *Engine {
	return &Engine{
		adjacency: make(map[types.RiskID][]model.Interdependency),
	}
}

// Build creates an engine from an edge collection. Invalid edges abort
// the build; the caller gets the offending edge in the error context.
func Build(edges []model.Interdependency) (*Engine, error) {
	e := New()
	for _, edge := range edges {
		if err := e.AddDependency(edge); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// AddDependency appends an edge to the source's outgoing list. Self-loops
// are rejected and never mutate the graph. Duplicate edges between the
// same pair with different relation kinds are permitted and all retained.
func (e *Engine) AddDependency(edge model.Interdependency) error {
	if err := edge.Validate(); err != nil {
		return goerr.Wrap(err, "rejected interdependency")
	}

	if _, exists := e.adjacency[edge.SourceID]; !exists {
		e.sources = append(e.sources, edge.SourceID)
	}
	e.adjacency[edge.SourceID] = append(e.adjacency[edge.SourceID], edge)
	return nil
}

// Len returns the number of edges in the graph
func (e *Engine) Len() int {
	var n int
	for _, edges := range e.adjacency {
		n += len(edges)
	}
	return n
}

// Downstream returns the target IDs of all outgoing edges from the given
// risk, in insertion order. Unknown IDs yield an empty list, not an
// error: the graph may be built incrementally before all risks are known.
func (e *Engine) Downstream(riskID types.RiskID) []types.RiskID {
	edges, exists := e.adjacency[riskID]
	if !exists {
		return nil
	}
	targets := make([]types.RiskID, len(edges))
	for i, edge := range edges {
		targets[i] = edge.TargetID
	}
	return targets
}

// Upstream returns every source with an edge targeting the given risk.
// This is a full scan over all edges: catalogues are expected to hold
// hundreds of risks, not millions, so no reverse index is kept.
func (e *Engine) Upstream(riskID types.RiskID) []types.RiskID {
	var upstream []types.RiskID
	for _, source := range e.sources {
		for _, edge := range e.adjacency[source] {
			if edge.TargetID == riskID {
				upstream = append(upstream, source)
				break
			}
		}
	}
	return upstream
}

// AmplifiedImpact compounds the base impact with the multiplier of every
// edge targeting the given risk, across all upstream sources. The result
// is not re-clamped to the 1-5 impact scale; the caller decides how to
// fold it back into a bounded score.
func (e *Engine) AmplifiedImpact(riskID types.RiskID, baseImpact float64) float64 {
	multiplier := 1.0
	for _, source := range e.sources {
		for _, edge := range e.adjacency[source] {
			if edge.TargetID == riskID {
				multiplier *= edge.ImpactMultiplier
			}
		}
	}
	return baseImpact * multiplier
}

// FindChains enumerates all simple directed paths beginning at the given
// risk by depth-first traversal. A path is emitted when the current node
// has no unvisited downstream edges or the depth limit is reached, so a
// cycle truncates the chain instead of looping. Every emitted chain
// carries at most maxDepth edges (maxDepth+1 nodes); depth-truncated
// paths are emitted, not dropped. maxDepth <= 0 uses DefaultMaxDepth.
func (e *Engine) FindChains(startID types.RiskID, maxDepth int) []model.Chain {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	var chains []model.Chain
	visited := make(map[types.RiskID]bool)

	var traverse func(path []types.RiskID, depth int)
	traverse = func(path []types.RiskID, depth int) {
		current := path[len(path)-1]

		var next []types.RiskID
		if depth < maxDepth {
			for _, edge := range e.adjacency[current] {
				if !visited[edge.TargetID] {
					next = append(next, edge.TargetID)
				}
			}
		}

		if len(next) == 0 {
			chain := make(model.Chain, len(path))
			copy(chain, path)
			chains = append(chains, chain)
			return
		}

		for _, target := range next {
			visited[target] = true
			traverse(append(path, target), depth+1)
			visited[target] = false
		}
	}

	visited[startID] = true
	traverse([]types.RiskID{startID}, 0)
	return chains
}

// Centrality scores every source node by its fan-out: the direct edge
// count plus half the depth-2 fan-out. The indirect term is deliberately
// not deduplicated, so a risk reachable via two direct targets counts
// twice. Results are sorted descending; ties keep insertion order.
func (e *Engine) Centrality() []model.CentralityScore {
	scores := make([]model.CentralityScore, 0, len(e.sources))
	for _, source := range e.sources {
		edges := e.adjacency[source]
		direct := len(edges)

		var indirect int
		for _, edge := range edges {
			indirect += len(e.adjacency[edge.TargetID])
		}

		scores = append(scores, model.CentralityScore{
			RiskID: source,
			Score:  float64(direct) + float64(indirect)*0.5,
		})
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Score > scores[j].Score
	})
	return scores
}
