package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/secmon-lab/briareus/pkg/domain/interfaces"
	"github.com/secmon-lab/briareus/pkg/domain/model"
	"github.com/secmon-lab/briareus/pkg/domain/types"
	"github.com/secmon-lab/briareus/pkg/service/graph"
	"github.com/secmon-lab/briareus/pkg/service/prioritize"
	"github.com/secmon-lab/briareus/pkg/utils/logging"
)

// AssessmentUseCase runs the scoring and interdependency engine over the
// stored catalogue and produces flat, serializable reports.
type AssessmentUseCase struct {
	repo        interfaces.Repository
	prioritizer *prioritize.Prioritizer
	clock       func() time.Time
}

// Assess scores every risk in the catalogue, applies graph amplification,
// ranks the result, partitions it by severity tier, and selects
// escalation candidates. The actor is recorded for output attribution
// only; it is never authenticated here.
func (uc *AssessmentUseCase) Assess(ctx context.Context, actor string) (*model.AssessmentReport, error) {
	risks, err := uc.repo.Risk().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load risk catalogue")
	}

	engine, err := uc.buildGraph(ctx)
	if err != nil {
		return nil, err
	}

	now := uc.clock()
	ranked := uc.prioritizer.Rank(risks)

	ranking := make([]model.RiskScore, len(ranked))
	for i, r := range ranked {
		ranking[i] = model.RiskScore{
			RiskID:                  r.ID,
			Name:                    r.Name,
			Category:                r.Category,
			InherentScore:           r.InherentScore(),
			ResidualScore:           r.ResidualScore(),
			SeverityTier:            r.SeverityTier(),
			AmplifiedImpact:         engine.AmplifiedImpact(r.ID, float64(r.Impact.OverallScore())),
			AppetiteExceeded:        r.AppetiteExceeded,
			EscalationRequired:      r.EscalationRequired,
			NeedsMitigation:         r.NeedsMitigation(),
			MitigationEffectiveness: r.MitigationEffectiveness(),
			AffectedProcessCount:    len(r.AffectedProcesses),
			Status:                  r.Status.Normalize(),
			Version:                 r.Version,
		}
	}

	tiers := make(map[types.SeverityTier][]types.RiskID)
	for tier, bucket := range uc.prioritizer.Categorize(ranked) {
		ids := make([]types.RiskID, len(bucket))
		for i, r := range bucket {
			ids[i] = r.ID
		}
		tiers[tier] = ids
	}

	candidates := uc.prioritizer.EscalationCandidates(ranked, now)
	escalations := make([]types.RiskID, len(candidates))
	for i, r := range candidates {
		escalations[i] = r.ID
	}

	logging.From(ctx).Info("assessment completed",
		"risks", len(risks),
		"edges", engine.Len(),
		"escalations", len(escalations),
	)

	return &model.AssessmentReport{
		GeneratedAt: now,
		GeneratedBy: actor,
		Ranking:     ranking,
		Tiers:       tiers,
		Escalations: escalations,
		Centrality:  engine.Centrality(),
	}, nil
}

// Chains discovers propagation chains starting at the given risk.
// maxDepth <= 0 uses the engine default.
func (uc *AssessmentUseCase) Chains(ctx context.Context, startID types.RiskID, maxDepth int) ([]model.Chain, error) {
	engine, err := uc.buildGraph(ctx)
	if err != nil {
		return nil, err
	}
	return engine.FindChains(startID, maxDepth), nil
}

// Centrality ranks risks by how many other risks they affect
func (uc *AssessmentUseCase) Centrality(ctx context.Context) ([]model.CentralityScore, error) {
	engine, err := uc.buildGraph(ctx)
	if err != nil {
		return nil, err
	}
	return engine.Centrality(), nil
}

// Score computes the scoring record for a single risk
func (uc *AssessmentUseCase) Score(ctx context.Context, id types.RiskID) (*model.RiskScore, error) {
	r, err := uc.repo.Risk().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get risk", goerr.V("risk_id", id))
	}

	engine, err := uc.buildGraph(ctx)
	if err != nil {
		return nil, err
	}

	return &model.RiskScore{
		RiskID:                  r.ID,
		Name:                    r.Name,
		Category:                r.Category,
		InherentScore:           r.InherentScore(),
		ResidualScore:           r.ResidualScore(),
		SeverityTier:            r.SeverityTier(),
		AmplifiedImpact:         engine.AmplifiedImpact(r.ID, float64(r.Impact.OverallScore())),
		AppetiteExceeded:        r.AppetiteExceeded,
		EscalationRequired:      r.EscalationRequired,
		NeedsMitigation:         r.NeedsMitigation(),
		MitigationEffectiveness: r.MitigationEffectiveness(),
		AffectedProcessCount:    len(r.AffectedProcesses),
		Status:                  r.Status.Normalize(),
		Version:                 r.Version,
	}, nil
}

func (uc *AssessmentUseCase) buildGraph(ctx context.Context) (*graph.Engine, error) {
	edges, err := uc.repo.Edge().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load interdependencies")
	}

	engine, err := graph.Build(edges)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build interdependency graph")
	}
	return engine, nil
}
