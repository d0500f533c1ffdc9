package prioritize_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/secmon-lab/briareus/pkg/domain/model"
	"github.com/secmon-lab/briareus/pkg/domain/types"
	"github.com/secmon-lab/briareus/pkg/service/prioritize"
)

// scoredRisk builds a risk whose inherent and residual scores equal
// likelihood * impact with no reductions
func scoredRisk(id types.RiskID, likelihood, impact int) *model.Risk {
	return &model.Risk{
		ID:         id,
		Name:       string(id),
		Category:   types.CategoryOperational,
		Likelihood: types.LikelihoodLevel(likelihood),
		Impact: model.ImpactAssessment{
			Financial:    types.ImpactLevel(impact),
			Operational:  types.ImpactLevel(impact),
			Regulatory:   types.ImpactLevel(impact),
			Reputational: types.ImpactLevel(impact),
		},
	}
}

func ids(risks []*model.Risk) []types.RiskID {
	result := make([]types.RiskID, len(risks))
	for i, r := range risks {
		result[i] = r.ID
	}
	return result
}

func TestRankByResidualScore(t *testing.T) {
	p := prioritize.New()

	risks := []*model.Risk{
		scoredRisk("low", 2, 2),    // 4
		scoredRisk("high", 4, 5),   // 20
		scoredRisk("medium", 3, 3), // 9
	}

	ranked := p.Rank(risks)
	gt.Array(t, ids(ranked)).Equal([]types.RiskID{"high", "medium", "low"})

	// Input order is untouched
	gt.Array(t, ids(risks)).Equal([]types.RiskID{"low", "high", "medium"})
}

func TestRankAppetiteTieBreak(t *testing.T) {
	p := prioritize.New()

	first := scoredRisk("first", 4, 5)
	second := scoredRisk("second", 4, 5)
	second.AppetiteExceeded = true

	ranked := p.Rank([]*model.Risk{first, second})
	gt.Array(t, ids(ranked)).Equal([]types.RiskID{"second", "first"})
}

func TestRankProcessCountTieBreak(t *testing.T) {
	p := prioritize.New()

	narrow := scoredRisk("narrow", 3, 4)
	wide := scoredRisk("wide", 3, 4)
	wide.AffectedProcesses = []string{"settlement", "forecasting", "procurement"}

	ranked := p.Rank([]*model.Risk{narrow, wide})
	gt.Array(t, ids(ranked)).Equal([]types.RiskID{"wide", "narrow"})
}

func TestRankMitigationGapTieBreak(t *testing.T) {
	p := prioritize.New()

	deadline := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)

	mitigated := scoredRisk("mitigated", 3, 4)
	mitigated.MitigationActions = []model.MitigationAction{
		{ID: "a1", Deadline: deadline, Status: types.ActionStatusCompleted},
	}
	unmitigated := scoredRisk("unmitigated", 3, 4)
	unmitigated.MitigationActions = []model.MitigationAction{
		{ID: "a1", Deadline: deadline, Status: types.ActionStatusPlanned},
	}

	ranked := p.Rank([]*model.Risk{mitigated, unmitigated})
	gt.Array(t, ids(ranked)).Equal([]types.RiskID{"unmitigated", "mitigated"})
}

func TestRankIsStable(t *testing.T) {
	p := prioritize.New()

	risks := []*model.Risk{
		scoredRisk("alpha", 4, 5),
		scoredRisk("beta", 4, 5),
		scoredRisk("gamma", 4, 5),
	}

	ranked := p.Rank(risks)
	gt.Array(t, ids(ranked)).Equal([]types.RiskID{"alpha", "beta", "gamma"})
}

func TestCategorizeAlwaysFillsAllBuckets(t *testing.T) {
	p := prioritize.New()

	buckets := p.Categorize(nil)
	gt.Value(t, len(buckets)).Equal(5)
	for _, tier := range types.AllSeverityTiers() {
		bucket, exists := buckets[tier]
		gt.Bool(t, exists).True()
		gt.Array(t, bucket).Length(0)
	}
}

func TestCategorize(t *testing.T) {
	p := prioritize.New()

	risks := []*model.Risk{
		scoredRisk("low", 1, 5),      // 5
		scoredRisk("medium", 2, 5),   // 10
		scoredRisk("high", 3, 5),     // 15
		scoredRisk("critical", 4, 5), // 20
	}

	buckets := p.Categorize(risks)
	gt.Array(t, ids(buckets[types.SeverityLow])).Equal([]types.RiskID{"low"})
	gt.Array(t, ids(buckets[types.SeverityMedium])).Equal([]types.RiskID{"medium"})
	gt.Array(t, ids(buckets[types.SeverityHigh])).Equal([]types.RiskID{"high"})
	gt.Array(t, ids(buckets[types.SeverityCritical])).Equal([]types.RiskID{"critical"})
	gt.Array(t, buckets[types.SeverityAcceptable]).Length(0)
}

func TestEscalationCandidates(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	p := prioritize.New()

	calm := scoredRisk("calm", 2, 3) // 6

	critical := scoredRisk("critical", 4, 5) // 20

	appetite := scoredRisk("appetite", 2, 3)
	appetite.AppetiteExceeded = true

	overdue := scoredRisk("overdue", 2, 3)
	overdue.MitigationActions = []model.MitigationAction{
		{ID: "a1", Deadline: now.Add(-time.Hour), Status: types.ActionStatusInProgress},
	}

	candidates := p.EscalationCandidates([]*model.Risk{calm, critical, appetite, overdue}, now)
	gt.Array(t, ids(candidates)).Equal([]types.RiskID{"critical", "appetite", "overdue"})
}

func TestEscalationThresholdOverride(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	risk := scoredRisk("elevated", 3, 5) // 15, High but not Critical

	gt.Array(t, prioritize.New().EscalationCandidates([]*model.Risk{risk}, now)).Length(0)

	strict := prioritize.New(prioritize.WithEscalationThreshold(15))
	gt.Array(t, strict.EscalationCandidates([]*model.Risk{risk}, now)).Length(1)
}
