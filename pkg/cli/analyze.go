package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/torplabs/torp/pkg/data"
	"github.com/torplabs/torp/pkg/scoring"
)

var (
	analyzeFileFlag = &cli.StringFlag{
		Name:    "file",
		Aliases: []string{"f"},
		Usage:   "Path to a quote input file (json or yaml)",
	}

	analyzeDirFlag = &cli.StringFlag{
		Name:    "dir",
		Aliases: []string{"d"},
		Usage:   "Directory of quote input files, analyzed as a batch",
	}

	analyzeSaveFlag = &cli.BoolFlag{
		Name:  "save",
		Usage: "Persist the analysis result in the local database",
	}

	analyzeCmd = &cli.Command{
		Name:    "analyze",
		Aliases: []string{"a"},
		Usage:   "Score a contractor quote (or a directory of quotes)",
		Action:  cmdAnalyze,
		Flags: []cli.Flag{
			analyzeFileFlag,
			analyzeDirFlag,
			analyzeSaveFlag,
		},
	}
)

func cmdAnalyze(c *cli.Context) error {
	file := c.String(analyzeFileFlag.Name)
	dir := c.String(analyzeDirFlag.Name)

	if file == "" && dir == "" {
		return cli.ShowSubcommandHelp(c)
	}

	cfg := getConfig(c)

	if dir != "" {
		return analyzeDir(c.Context, cfg, dir, c.Bool(analyzeSaveFlag.Name))
	}

	in, err := readInputFile(file)
	if err != nil {
		return err
	}

	res, err := cfg.Engine.Analyze(*in)
	if err != nil {
		return fmt.Errorf("failed to analyze %s: %w", file, err)
	}

	if c.Bool(analyzeSaveFlag.Name) {
		if err := data.SaveAnalysis(cfg.DB, res); err != nil {
			return fmt.Errorf("failed to save analysis: %w", err)
		}
		slog.Debug("analysis saved", "id", res.ID)
	}

	return encode(res)
}

func analyzeDir(ctx context.Context, cfg *appConfig, dir string, save bool) error {
	files, err := listInputFiles(dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no input files found in: %s", dir)
	}

	inputs := make([]scoring.ScoringInput, 0, len(files))
	for _, f := range files {
		in, err := readInputFile(f)
		if err != nil {
			return err
		}
		inputs = append(inputs, *in)
	}

	slog.Debug("analyzing batch", "files", len(inputs), "workers", cfg.Conf.Workers)

	results, err := cfg.Engine.AnalyzeBatch(ctx, inputs, cfg.Conf.Workers)
	if err != nil {
		return fmt.Errorf("batch analysis failed: %w", err)
	}

	if save {
		for _, r := range results {
			if err := data.SaveAnalysis(cfg.DB, r); err != nil {
				return fmt.Errorf("failed to save analysis %s: %w", r.ID, err)
			}
		}
	}

	return encode(results)
}

func listInputFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read dir: %s: %w", dir, err)
	}

	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".json", ".yaml", ".yml":
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

func readInputFile(path string) (*scoring.ScoringInput, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file: %s: %w", path, err)
	}

	var in scoring.ScoringInput
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &in); err != nil {
			return nil, fmt.Errorf("failed to parse yaml input: %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(b, &in); err != nil {
			return nil, fmt.Errorf("failed to parse json input: %s: %w", path, err)
		}
	}

	return &in, nil
}
