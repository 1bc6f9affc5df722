package cli

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/torplabs/torp/pkg/scenario"
)

var (
	scenarioNameFlag = &cli.StringFlag{
		Name:    "name",
		Aliases: []string{"n"},
		Usage:   "Scenario name (see: scenario list)",
	}

	scenarioAllFlag = &cli.BoolFlag{
		Name:  "all",
		Usage: "Run every scenario in the library",
	}

	scenarioCmd = &cli.Command{
		Name:    "scenario",
		Aliases: []string{"s"},
		Usage:   "Named acceptance scenarios for the scoring pipeline",
		Subcommands: []*cli.Command{
			{
				Name:    "list",
				Usage:   "List available scenarios",
				Aliases: []string{"l"},
				Action:  cmdScenarioList,
			},
			{
				Name:    "run",
				Usage:   "Run one scenario (or all of them) and report pass/fail",
				Aliases: []string{"r"},
				Action:  cmdScenarioRun,
				Flags: []cli.Flag{
					scenarioNameFlag,
					scenarioAllFlag,
				},
			},
		},
	}
)

type scenarioListItem struct {
	// Key is what `scenario run --name` accepts.
	Key         string `json:"key" yaml:"key"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
}

func scenarioListItems() []scenarioListItem {
	items := make([]scenarioListItem, 0)
	for _, key := range scenario.List() {
		s, ok := scenario.Get(key)
		if !ok {
			continue
		}
		items = append(items, scenarioListItem{
			Key:         key,
			Name:        s.Name,
			Description: s.Description,
		})
	}
	return items
}

func cmdScenarioList(c *cli.Context) error {
	return encode(scenarioListItems())
}

func cmdScenarioRun(c *cli.Context) error {
	cfg := getConfig(c)

	if c.Bool(scenarioAllFlag.Name) {
		results, err := scenario.RunAll(c.Context, cfg.Engine, cfg.Conf.Workers)
		if err != nil {
			return fmt.Errorf("failed to run scenarios: %w", err)
		}
		if err := encode(results); err != nil {
			return err
		}
		for _, r := range results {
			if !r.Passed {
				return fmt.Errorf("scenario failed: %s: %v", r.Scenario, r.Failures)
			}
		}
		return nil
	}

	name := c.String(scenarioNameFlag.Name)
	if name == "" {
		return cli.ShowSubcommandHelp(c)
	}

	r, err := scenario.Run(cfg.Engine, name)
	if err != nil {
		return fmt.Errorf("failed to run scenario %s: %w", name, err)
	}
	if err := encode(r); err != nil {
		return err
	}
	if !r.Passed {
		return fmt.Errorf("scenario failed: %s: %v", r.Scenario, r.Failures)
	}
	return nil
}
