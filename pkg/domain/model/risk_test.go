package model_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/secmon-lab/briareus/pkg/domain/model"
	"github.com/secmon-lab/briareus/pkg/domain/types"
)

func intPtr(v int) *int {
	return &v
}

func baseRisk() *model.Risk {
	return &model.Risk{
		ID:         "fx-volatility",
		Name:       "FX Volatility",
		Category:   types.CategoryMarket,
		Likelihood: types.LikelihoodHigh,
		Impact: model.ImpactAssessment{
			Financial:    types.ImpactCritical,
			Operational:  types.ImpactModerate,
			Regulatory:   types.ImpactMinor,
			Reputational: types.ImpactMinor,
		},
	}
}

func TestOverallScoreTruncates(t *testing.T) {
	risk := baseRisk()

	// 5*0.40 + 3*0.25 + 2*0.20 + 2*0.15 = 3.45
	gt.Value(t, risk.Impact.OverallScore()).Equal(3)
}

func TestOverallScoreBounds(t *testing.T) {
	low := model.ImpactAssessment{Financial: 1, Operational: 1, Regulatory: 1, Reputational: 1}
	gt.Value(t, low.OverallScore()).Equal(1)

	high := model.ImpactAssessment{Financial: 5, Operational: 5, Regulatory: 5, Reputational: 5}
	gt.Value(t, high.OverallScore()).Equal(5)
}

func TestMaxDimensionTieBreak(t *testing.T) {
	// Operational and Regulatory share the maximum; the first declared
	// dimension wins
	impact := model.ImpactAssessment{Financial: 2, Operational: 4, Regulatory: 4, Reputational: 1}
	gt.Value(t, impact.MaxDimension()).Equal(types.DimensionOperational)
	gt.Value(t, impact.MaxImpact()).Equal(types.ImpactMajor)
}

func TestInherentScore(t *testing.T) {
	risk := baseRisk()
	gt.Value(t, risk.InherentScore()).Equal(12)
}

func TestResidualScoreWithoutReductions(t *testing.T) {
	risk := baseRisk()
	gt.Value(t, risk.ResidualScore()).Equal(risk.InherentScore())
}

func TestResidualScoreWithStrongControl(t *testing.T) {
	risk := baseRisk()
	risk.ExistingControls = []model.ExistingControl{
		{ID: "hedging-policy", Type: types.ControlTypePreventive, Effectiveness: types.ControlEffectivenessStrong},
	}

	// floor(12 * 0.85) = 10
	gt.Value(t, risk.ResidualScore()).Equal(10)
	gt.Value(t, risk.SeverityTier()).Equal(types.SeverityMedium)
	gt.Bool(t, risk.NeedsMitigation()).False()
}

func TestControlReductionCapSaturates(t *testing.T) {
	withControls := func(strong int) *model.Risk {
		risk := baseRisk()
		for i := 0; i < strong; i++ {
			risk.ExistingControls = append(risk.ExistingControls, model.ExistingControl{
				ID:            types.ControlID("ctrl"),
				Type:          types.ControlTypePreventive,
				Effectiveness: types.ControlEffectivenessStrong,
			})
		}
		return risk
	}

	// Four strong controls reach the 0.60 cap; a fifth adds nothing
	gt.Value(t, withControls(5).ResidualScore()).Equal(withControls(4).ResidualScore())
}

func TestWeakControlsDoNotReduce(t *testing.T) {
	risk := baseRisk()
	risk.ExistingControls = []model.ExistingControl{
		{ID: "awareness-training", Type: types.ControlTypeDetective, Effectiveness: types.ControlEffectivenessWeak},
		{ID: "quarterly-review", Type: types.ControlTypeDetective, Effectiveness: types.ControlEffectivenessWeak},
	}
	gt.Value(t, risk.ResidualScore()).Equal(risk.InherentScore())
}

func TestActionReductionOnlyWhenCompleted(t *testing.T) {
	deadline := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)

	risk := baseRisk()
	risk.MitigationActions = []model.MitigationAction{
		{ID: "diversify", Deadline: deadline, Status: types.ActionStatusInProgress, ExpectedRiskReduction: intPtr(40)},
	}
	gt.Value(t, risk.ResidualScore()).Equal(risk.InherentScore())

	risk.MitigationActions[0].Status = types.ActionStatusCompleted
	// floor(12 * 0.60) = 7
	gt.Value(t, risk.ResidualScore()).Equal(7)
}

func TestActionReductionCap(t *testing.T) {
	deadline := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)

	risk := baseRisk()
	risk.MitigationActions = []model.MitigationAction{
		{ID: "a1", Deadline: deadline, Status: types.ActionStatusCompleted, ExpectedRiskReduction: intPtr(40)},
		{ID: "a2", Deadline: deadline, Status: types.ActionStatusCompleted, ExpectedRiskReduction: intPtr(40)},
	}

	// Combined 80% is capped at 50%: floor(12 * 0.5) = 6
	gt.Value(t, risk.ResidualScore()).Equal(6)
	gt.Value(t, risk.SeverityTier()).Equal(types.SeverityLow)
}

func TestResidualNeverExceedsInherent(t *testing.T) {
	deadline := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)

	risk := baseRisk()
	risk.ExistingControls = []model.ExistingControl{
		{ID: "c1", Type: types.ControlTypePreventive, Effectiveness: types.ControlEffectivenessModerate},
	}
	risk.MitigationActions = []model.MitigationAction{
		{ID: "a1", Deadline: deadline, Status: types.ActionStatusCompleted, ExpectedRiskReduction: intPtr(20)},
	}

	gt.Bool(t, risk.ResidualScore() <= risk.InherentScore()).True()
	gt.Bool(t, risk.ResidualScore() >= 0).True()
}

func TestScoringIsIdempotent(t *testing.T) {
	risk := baseRisk()
	risk.ExistingControls = []model.ExistingControl{
		{ID: "c1", Type: types.ControlTypePreventive, Effectiveness: types.ControlEffectivenessStrong},
	}

	first := risk.ResidualScore()
	for i := 0; i < 10; i++ {
		gt.Value(t, risk.ResidualScore()).Equal(first)
	}
}

func TestNeedsMitigation(t *testing.T) {
	risk := baseRisk()
	risk.Likelihood = types.LikelihoodVeryHigh
	risk.Impact = model.ImpactAssessment{Financial: 5, Operational: 5, Regulatory: 5, Reputational: 5}

	// 5 * 5 = 25
	gt.Bool(t, risk.NeedsMitigation()).True()

	risk = baseRisk()
	gt.Bool(t, risk.NeedsMitigation()).False()

	risk.AppetiteExceeded = true
	gt.Bool(t, risk.NeedsMitigation()).True()
}

func TestMitigationEffectiveness(t *testing.T) {
	deadline := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)

	risk := baseRisk()
	gt.Value(t, risk.MitigationEffectiveness()).Equal(0.0)

	risk.MitigationActions = []model.MitigationAction{
		{ID: "a1", Deadline: deadline, Status: types.ActionStatusCompleted},
		{ID: "a2", Deadline: deadline, Status: types.ActionStatusPlanned},
	}
	gt.Value(t, risk.MitigationEffectiveness()).Equal(50.0)
}

func TestHasOverdueAction(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	risk := baseRisk()
	risk.MitigationActions = []model.MitigationAction{
		{ID: "a1", Deadline: now.Add(-24 * time.Hour), Status: types.ActionStatusInProgress},
	}
	gt.Bool(t, risk.HasOverdueAction(now)).True()

	// Completion clears the overdue state even past the deadline
	risk.MitigationActions[0].Status = types.ActionStatusCompleted
	gt.Bool(t, risk.HasOverdueAction(now)).False()

	risk.MitigationActions[0].Status = types.ActionStatusInProgress
	risk.MitigationActions[0].Deadline = now.Add(24 * time.Hour)
	gt.Bool(t, risk.HasOverdueAction(now)).False()
}

func TestRiskValidate(t *testing.T) {
	t.Run("valid risk passes", func(t *testing.T) {
		gt.NoError(t, baseRisk().Validate())
	})

	t.Run("out-of-range likelihood fails", func(t *testing.T) {
		risk := baseRisk()
		risk.Likelihood = 6
		gt.Error(t, risk.Validate())
	})

	t.Run("out-of-range impact fails", func(t *testing.T) {
		risk := baseRisk()
		risk.Impact.Regulatory = 0
		gt.Error(t, risk.Validate())
	})

	t.Run("missing name fails", func(t *testing.T) {
		risk := baseRisk()
		risk.Name = ""
		gt.Error(t, risk.Validate())
	})

	t.Run("unknown category fails", func(t *testing.T) {
		risk := baseRisk()
		risk.Category = "Astrology"
		gt.Error(t, risk.Validate())
	})

	t.Run("self-loop dependency fails", func(t *testing.T) {
		risk := baseRisk()
		risk.Dependencies = []model.Interdependency{
			{SourceID: risk.ID, TargetID: risk.ID, Kind: types.RelationTriggers, ImpactMultiplier: 1.2},
		}
		gt.Error(t, risk.Validate())
	})

	t.Run("invalid action progress fails", func(t *testing.T) {
		risk := baseRisk()
		risk.MitigationActions = []model.MitigationAction{
			{ID: "a1", Status: types.ActionStatusPlanned, Progress: 120},
		}
		gt.Error(t, risk.Validate())
	})
}

func TestTouchIncrementsVersion(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	risk := baseRisk()
	risk.Version = 3
	risk.Touch("alice", now)

	gt.Value(t, risk.Version).Equal(4)
	gt.Value(t, risk.UpdatedBy).Equal("alice")
	gt.Value(t, risk.UpdatedAt).Equal(now)
}

func TestInterdependencyValidate(t *testing.T) {
	cases := []struct {
		name    string
		edge    model.Interdependency
		wantErr bool
	}{
		{
			name: "valid edge",
			edge: model.Interdependency{
				SourceID: "a", TargetID: "b",
				Kind: types.RelationAmplifies, ImpactMultiplier: 1.5, ProbabilityIncrease: 0.2,
			},
		},
		{
			name:    "self loop",
			edge:    model.Interdependency{SourceID: "a", TargetID: "a", Kind: types.RelationTriggers, ImpactMultiplier: 1.0},
			wantErr: true,
		},
		{
			name:    "negative multiplier",
			edge:    model.Interdependency{SourceID: "a", TargetID: "b", Kind: types.RelationTriggers, ImpactMultiplier: -0.5},
			wantErr: true,
		},
		{
			name:    "probability increase above one",
			edge:    model.Interdependency{SourceID: "a", TargetID: "b", Kind: types.RelationTriggers, ImpactMultiplier: 1.0, ProbabilityIncrease: 1.5},
			wantErr: true,
		},
		{
			name:    "invalid source ID",
			edge:    model.Interdependency{SourceID: "Not Valid", TargetID: "b", Kind: types.RelationTriggers, ImpactMultiplier: 1.0},
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.edge.Validate()
			if tc.wantErr {
				gt.Error(t, err)
			} else {
				gt.NoError(t, err)
			}
		})
	}
}

func TestImpactMultiplierOrDefault(t *testing.T) {
	gt.Value(t, model.ImpactMultiplierOrDefault(nil)).Equal(1.0)

	zero := 0.0
	gt.Value(t, model.ImpactMultiplierOrDefault(&zero)).Equal(0.0)

	boosted := 2.5
	gt.Value(t, model.ImpactMultiplierOrDefault(&boosted)).Equal(2.5)
}
