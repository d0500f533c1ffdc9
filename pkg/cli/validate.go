package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/secmon-lab/briareus/pkg/cli/config"
	"github.com/secmon-lab/briareus/pkg/utils/logging"
)

func cmdValidate() *cli.Command {
	var cataloguePath string

	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Validate a catalogue file without running an assessment",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "catalogue",
				Aliases:     []string{"c"},
				Usage:       "Path to the risk catalogue file (TOML)",
				Required:    true,
				Sources:     cli.EnvVars("BRIAREUS_CATALOGUE"),
				Destination: &cataloguePath,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			catalogue, err := config.LoadCatalogue(cataloguePath)
			if err != nil {
				return err
			}
			if err := catalogue.Validate(); err != nil {
				return err
			}

			for i := range catalogue.Risks {
				risk := catalogue.Risks[i].ToRisk()
				fmt.Printf("  %-32s likelihood=%-9s max_impact=%s (%s)\n",
					risk.ID,
					risk.Likelihood.Label(),
					risk.Impact.MaxImpact().Label(),
					risk.Impact.MaxDimension())
			}

			logger.Info("Catalogue validation passed",
				"path", cataloguePath,
				"risks", len(catalogue.Risks),
				"dependencies", len(catalogue.Dependencies),
			)
			return nil
		},
	}
}
