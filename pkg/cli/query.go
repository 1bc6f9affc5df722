package cli

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/torplabs/torp/pkg/data"
)

const queryResultLimitDefault = 100

var (
	queryLimitFlag = &cli.IntFlag{
		Name:     "limit",
		Usage:    "Limits number of results returned",
		Value:    queryResultLimitDefault,
		Required: false,
	}

	queryGradeFlag = &cli.StringFlag{
		Name:  "grade",
		Usage: "Filter by final grade [A+, A, B, C, D, F]",
	}

	queryContractorFlag = &cli.StringFlag{
		Name:  "contractor",
		Usage: "Fuzzy match on contractor legal id",
	}

	queryIDFlag = &cli.StringFlag{
		Name:     "id",
		Usage:    "Analysis id",
		Required: true,
	}

	queryCmd = &cli.Command{
		Name:    "query",
		Aliases: []string{"q"},
		Usage:   "Query stored analyses",
		Subcommands: []*cli.Command{
			{
				Name:    "list",
				Usage:   "List stored analyses, newest first",
				Aliases: []string{"l"},
				Action:  cmdQueryList,
				Flags: []cli.Flag{
					queryGradeFlag,
					queryContractorFlag,
					queryLimitFlag,
				},
			},
			{
				Name:    "get",
				Usage:   "Get the full stored analysis document",
				Aliases: []string{"g"},
				Action:  cmdQueryGet,
				Flags: []cli.Flag{
					queryIDFlag,
				},
			},
			{
				Name:   "stats",
				Usage:  "Aggregate stats over stored analyses",
				Action: cmdQueryStats,
			},
		},
	}
)

func cmdQueryList(c *cli.Context) error {
	cfg := getConfig(c)

	limit := c.Int(queryLimitFlag.Name)
	if limit <= 0 || limit > queryResultLimitDefault {
		limit = queryResultLimitDefault
	}

	list, err := data.ListAnalyses(cfg.DB, data.AnalysisQuery{
		Grade:      c.String(queryGradeFlag.Name),
		Contractor: c.String(queryContractorFlag.Name),
		Limit:      limit,
	})
	if err != nil {
		return fmt.Errorf("failed to list analyses: %w", err)
	}

	return encode(list)
}

func cmdQueryGet(c *cli.Context) error {
	val := c.String(queryIDFlag.Name)
	if val == "" {
		return cli.ShowSubcommandHelp(c)
	}

	cfg := getConfig(c)

	res, err := data.GetAnalysis(cfg.DB, val)
	if err != nil {
		return fmt.Errorf("failed to get analysis: %w", err)
	}
	if res == nil {
		return fmt.Errorf("analysis not found: %s", val)
	}

	return encode(res)
}

type statsReport struct {
	Summary *data.StatsSummary `json:"summary" yaml:"summary"`
	Grades  map[string]int64   `json:"grades" yaml:"grades"`
	Flags   map[string]int64   `json:"flags" yaml:"flags"`
}

func cmdQueryStats(c *cli.Context) error {
	cfg := getConfig(c)

	summary, err := data.GetSummary(cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to get summary: %w", err)
	}

	grades, err := data.GetGradeDistribution(cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to get grade distribution: %w", err)
	}

	flags, err := data.GetFlagCounts(cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to get flag counts: %w", err)
	}

	return encode(&statsReport{
		Summary: summary,
		Grades:  grades,
		Flags:   flags,
	})
}
