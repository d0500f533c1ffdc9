package graph_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/secmon-lab/briareus/pkg/domain/model"
	"github.com/secmon-lab/briareus/pkg/domain/types"
	"github.com/secmon-lab/briareus/pkg/service/graph"
)

func edge(source, target types.RiskID, multiplier float64) model.Interdependency {
	return model.Interdependency{
		SourceID:         source,
		TargetID:         target,
		Kind:             types.RelationTriggers,
		ImpactMultiplier: multiplier,
	}
}

func TestAddDependencyRejectsSelfLoop(t *testing.T) {
	engine := graph.New()

	gt.Error(t, engine.AddDependency(edge("a", "a", 1.5)))
	gt.Value(t, engine.Len()).Equal(0)
	gt.Array(t, engine.Downstream("a")).Length(0)
}

func TestAddDependencyRejectsInvalidEdgeWithoutMutation(t *testing.T) {
	engine := graph.New()
	gt.NoError(t, engine.AddDependency(edge("a", "b", 1.2)))

	bad := edge("a", "c", -1.0)
	gt.Error(t, engine.AddDependency(bad))

	gt.Value(t, engine.Len()).Equal(1)
	gt.Array(t, engine.Downstream("a")).Equal([]types.RiskID{"b"})
}

func TestDownstreamKeepsInsertionOrder(t *testing.T) {
	engine := graph.New()
	gt.NoError(t, engine.AddDependency(edge("a", "c", 1.0)))
	gt.NoError(t, engine.AddDependency(edge("a", "b", 1.0)))
	gt.NoError(t, engine.AddDependency(edge("a", "d", 1.0)))

	gt.Array(t, engine.Downstream("a")).Equal([]types.RiskID{"c", "b", "d"})
}

func TestDownstreamUnknownRisk(t *testing.T) {
	engine := graph.New()
	gt.Array(t, engine.Downstream("ghost")).Length(0)
	gt.Array(t, engine.Upstream("ghost")).Length(0)
}

func TestUpstream(t *testing.T) {
	engine := graph.New()
	gt.NoError(t, engine.AddDependency(edge("a", "c", 1.0)))
	gt.NoError(t, engine.AddDependency(edge("b", "c", 1.0)))
	gt.NoError(t, engine.AddDependency(edge("c", "d", 1.0)))

	gt.Array(t, engine.Upstream("c")).Equal([]types.RiskID{"a", "b"})
	gt.Array(t, engine.Upstream("a")).Length(0)
}

func TestAmplifiedImpact(t *testing.T) {
	engine := graph.New()
	gt.NoError(t, engine.AddDependency(edge("a", "c", 2.0)))
	gt.NoError(t, engine.AddDependency(edge("b", "c", 1.5)))

	gt.Value(t, engine.AmplifiedImpact("c", 10)).Equal(30.0)

	// No incoming edges leaves the base impact untouched
	gt.Value(t, engine.AmplifiedImpact("a", 10)).Equal(10.0)
	gt.Value(t, engine.AmplifiedImpact("ghost", 4)).Equal(4.0)
}

func TestAmplifiedImpactCountsParallelEdges(t *testing.T) {
	engine := graph.New()
	gt.NoError(t, engine.AddDependency(edge("a", "b", 2.0)))
	gt.NoError(t, engine.AddDependency(edge("a", "b", 1.5)))

	gt.Value(t, engine.AmplifiedImpact("b", 1)).Equal(3.0)
}

func TestFindChainsLinear(t *testing.T) {
	engine := graph.New()
	gt.NoError(t, engine.AddDependency(edge("a", "b", 1.0)))
	gt.NoError(t, engine.AddDependency(edge("b", "c", 1.0)))

	chains := engine.FindChains("a", 5)
	gt.Array(t, chains).Length(1)
	gt.Array(t, []types.RiskID(chains[0])).Equal([]types.RiskID{"a", "b", "c"})
}

func TestFindChainsBranching(t *testing.T) {
	engine := graph.New()
	gt.NoError(t, engine.AddDependency(edge("a", "b", 1.0)))
	gt.NoError(t, engine.AddDependency(edge("a", "c", 1.0)))
	gt.NoError(t, engine.AddDependency(edge("b", "d", 1.0)))

	chains := engine.FindChains("a", 5)
	gt.Array(t, chains).Length(2)
	gt.Array(t, []types.RiskID(chains[0])).Equal([]types.RiskID{"a", "b", "d"})
	gt.Array(t, []types.RiskID(chains[1])).Equal([]types.RiskID{"a", "c"})
}

func TestFindChainsCycleTruncates(t *testing.T) {
	engine := graph.New()
	gt.NoError(t, engine.AddDependency(edge("a", "b", 1.0)))
	gt.NoError(t, engine.AddDependency(edge("b", "a", 1.0)))

	chains := engine.FindChains("a", 5)
	gt.Array(t, chains).Length(1)
	gt.Array(t, []types.RiskID(chains[0])).Equal([]types.RiskID{"a", "b"})
}

func TestFindChainsDepthLimit(t *testing.T) {
	engine := graph.New()
	gt.NoError(t, engine.AddDependency(edge("a", "b", 1.0)))
	gt.NoError(t, engine.AddDependency(edge("b", "c", 1.0)))
	gt.NoError(t, engine.AddDependency(edge("c", "d", 1.0)))

	chains := engine.FindChains("a", 2)
	gt.Array(t, chains).Length(1)
	gt.Array(t, []types.RiskID(chains[0])).Equal([]types.RiskID{"a", "b", "c"})
}

func TestFindChainsIsolatedStart(t *testing.T) {
	engine := graph.New()
	gt.NoError(t, engine.AddDependency(edge("a", "b", 1.0)))

	chains := engine.FindChains("ghost", 5)
	gt.Array(t, chains).Length(1)
	gt.Array(t, []types.RiskID(chains[0])).Equal([]types.RiskID{"ghost"})
}

func TestCentralityOrdering(t *testing.T) {
	engine := graph.New()
	// hub fans out to three targets, one of which fans out further
	gt.NoError(t, engine.AddDependency(edge("hub", "a", 1.0)))
	gt.NoError(t, engine.AddDependency(edge("hub", "b", 1.0)))
	gt.NoError(t, engine.AddDependency(edge("hub", "c", 1.0)))
	gt.NoError(t, engine.AddDependency(edge("a", "d", 1.0)))

	scores := engine.Centrality()
	gt.Array(t, scores).Length(2)

	// hub: 3 direct + 0.5 * 1 indirect = 3.5
	gt.Value(t, scores[0].RiskID).Equal(types.RiskID("hub"))
	gt.Value(t, scores[0].Score).Equal(3.5)
	gt.Value(t, scores[1].RiskID).Equal(types.RiskID("a"))
	gt.Value(t, scores[1].Score).Equal(1.0)
}

func TestCentralityCountsSharedTargetsTwice(t *testing.T) {
	engine := graph.New()
	gt.NoError(t, engine.AddDependency(edge("a", "b", 1.0)))
	gt.NoError(t, engine.AddDependency(edge("a", "c", 1.0)))
	gt.NoError(t, engine.AddDependency(edge("b", "x", 1.0)))
	gt.NoError(t, engine.AddDependency(edge("c", "x", 1.0)))
	gt.NoError(t, engine.AddDependency(edge("x", "y", 1.0)))

	scores := engine.Centrality()

	// a reaches x through both b and c; the indirect hop is counted per
	// path: 2 direct + 0.5 * (1 + 1) = 3
	gt.Value(t, scores[0].RiskID).Equal(types.RiskID("a"))
	gt.Value(t, scores[0].Score).Equal(3.0)
}

func TestBuild(t *testing.T) {
	engine, err := graph.Build([]model.Interdependency{
		edge("a", "b", 1.2),
		edge("b", "c", 1.1),
	})
	gt.NoError(t, err).Required()
	gt.Value(t, engine.Len()).Equal(2)

	_, err = graph.Build([]model.Interdependency{edge("a", "a", 1.0)})
	gt.Error(t, err)
}
