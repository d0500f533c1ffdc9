package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/secmon-lab/briareus/pkg/cli/config"
	"github.com/secmon-lab/briareus/pkg/domain/model"
	"github.com/secmon-lab/briareus/pkg/domain/types"
	"github.com/secmon-lab/briareus/pkg/repository/memory"
	"github.com/secmon-lab/briareus/pkg/service/prioritize"
	"github.com/secmon-lab/briareus/pkg/usecase"
	"github.com/secmon-lab/briareus/pkg/utils/safe"
)

func cmdAssess() *cli.Command {
	var cataloguePath string
	var actor string
	var escalationThreshold int
	var outputJSON bool

	return &cli.Command{
		Name:    "assess",
		Aliases: []string{"a"},
		Usage:   "Score and rank a catalogue file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "catalogue",
				Aliases:     []string{"c"},
				Usage:       "Path to the risk catalogue file (TOML)",
				Required:    true,
				Sources:     cli.EnvVars("BRIAREUS_CATALOGUE"),
				Destination: &cataloguePath,
			},
			&cli.StringFlag{
				Name:        "actor",
				Usage:       "Name recorded as the report generator",
				Value:       "local",
				Sources:     cli.EnvVars("BRIAREUS_ACTOR"),
				Destination: &actor,
			},
			&cli.IntFlag{
				Name:        "escalation-threshold",
				Usage:       "Residual score at or above which a risk is escalated",
				Value:       prioritize.DefaultEscalationThreshold,
				Sources:     cli.EnvVars("BRIAREUS_ESCALATION_THRESHOLD"),
				Destination: &escalationThreshold,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "Emit the report as JSON instead of a table",
				Destination: &outputJSON,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			catalogue, err := config.LoadCatalogue(cataloguePath)
			if err != nil {
				return err
			}
			if err := catalogue.Validate(); err != nil {
				return err
			}

			repo := memory.New()
			defer safe.Close(ctx, repo)

			uc := usecase.New(repo,
				usecase.WithEscalationThreshold(escalationThreshold),
			)

			for i := range catalogue.Risks {
				if _, err := uc.Risk.CreateRisk(ctx, actor, catalogue.Risks[i].ToRisk()); err != nil {
					return goerr.Wrap(err, "failed to load risk", goerr.V("risk_id", catalogue.Risks[i].ID))
				}
			}
			for i := range catalogue.Dependencies {
				if err := uc.Risk.AddDependency(ctx, catalogue.Dependencies[i].ToEdge()); err != nil {
					return goerr.Wrap(err, "failed to load dependency",
						goerr.V("source", catalogue.Dependencies[i].Source),
						goerr.V("target", catalogue.Dependencies[i].Target))
				}
			}

			report, err := uc.Assessment.Assess(ctx, actor)
			if err != nil {
				return goerr.Wrap(err, "assessment failed")
			}

			if outputJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}

			printReport(report)
			return nil
		},
	}
}

var tierColors = map[types.SeverityTier]*color.Color{
	types.SeverityCritical: color.New(color.FgRed, color.Bold),
	types.SeverityHigh:     color.New(color.FgYellow, color.Bold),
	types.SeverityMedium:   color.New(color.FgYellow),
	types.SeverityLow:      color.New(color.FgGreen),
}

func tierLabel(tier types.SeverityTier) string {
	if c, ok := tierColors[tier]; ok {
		return c.Sprint(tier.String())
	}
	return tier.String()
}

func printReport(report *model.AssessmentReport) {
	header := color.New(color.Bold, color.Underline)

	header.Printf("Risk Ranking (%d risks)\n", len(report.Ranking))
	for i, score := range report.Ranking {
		marker := " "
		if score.NeedsMitigation {
			marker = color.RedString("!")
		}
		fmt.Printf("%3d. %s %-32s %-10s inherent=%2d residual=%2d amplified=%5.1f %s\n",
			i+1, marker, score.RiskID, tierLabel(score.SeverityTier),
			score.InherentScore, score.ResidualScore, score.AmplifiedImpact,
			score.Category)
	}

	fmt.Println()
	header.Println("Severity Tiers")
	for _, tier := range types.AllSeverityTiers() {
		ids := report.Tiers[tier]
		fmt.Printf("  %-10s %d\n", tierLabel(tier), len(ids))
	}

	fmt.Println()
	header.Printf("Escalations (%d)\n", len(report.Escalations))
	if len(report.Escalations) == 0 {
		fmt.Println("  none")
	}
	for _, id := range report.Escalations {
		fmt.Printf("  %s\n", color.RedString(id.String()))
	}

	if len(report.Centrality) > 0 {
		fmt.Println()
		header.Println("Centrality")
		for _, score := range report.Centrality {
			fmt.Printf("  %-32s %5.1f\n", score.RiskID, score.Score)
		}
	}

	fmt.Println()
	fmt.Printf("Generated at %s by %s\n",
		report.GeneratedAt.Format("2006-01-02 15:04:05 MST"), report.GeneratedBy)
}
