// Command cli runs assessments through the scoring engine from the
// terminal: a built-in demo, scorecard generation from a JSON
// assessment file, and gap analysis.
package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	urfave "github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/ChatchaiTritham/EdcellenceEdPEx/internal/sampledata"
	"github.com/ChatchaiTritham/EdcellenceEdPEx/internal/scoring"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

var (
	version = "v0.0.1-default"
	commit  = ""

	outputFormat = formatJSON

	debugFlag = &urfave.BoolFlag{
		Name:  "debug",
		Usage: "Prints verbose logs (optional, default: false)",
	}

	formatFlag = &urfave.StringFlag{
		Name:  "format",
		Usage: "Output format [json, yaml]",
		Value: formatJSON,
	}

	fileFlag = &urfave.StringFlag{
		Name:     "file",
		Aliases:  []string{"f"},
		Usage:    "Path to the assessment JSON file",
		Required: true,
	}

	noHealthFlag = &urfave.BoolFlag{
		Name:  "no-integration-health",
		Usage: "Skip the cross-category integration health index",
	}
)

func main() {
	initLogging(false)

	app := newApp()
	if err := app.Run(os.Args); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func newApp() *urfave.App {
	return &urfave.App{
		Name:                 "edpex",
		Version:              fmt.Sprintf("%s (%s)", version, commit),
		Compiled:             time.Now(),
		EnableBashCompletion: true,
		HideHelpCommand:      true,
		Usage:                "CLI for organizational excellence scoring",
		Flags: []urfave.Flag{
			debugFlag,
			formatFlag,
		},
		Commands: []*urfave.Command{
			demoCmd,
			scorecardCmd,
			gapsCmd,
		},
		Before: func(c *urfave.Context) error {
			if c.Bool(debugFlag.Name) {
				initLogging(true)
			}

			f := c.String(formatFlag.Name)
			if f == formatYAML || f == "yml" {
				outputFormat = formatYAML
			}
			return nil
		},
	}
}

var demoCmd = &urfave.Command{
	Name:  "demo",
	Usage: "Score the built-in sample assessment end to end",
	Action: func(c *urfave.Context) error {
		assessment := sampledata.SampleAssessment()
		return runAssessment(assessment, true)
	},
}

var scorecardCmd = &urfave.Command{
	Name:  "scorecard",
	Usage: "Generate a scorecard from an assessment JSON file",
	Flags: []urfave.Flag{
		fileFlag,
		noHealthFlag,
	},
	Action: func(c *urfave.Context) error {
		assessment, err := sampledata.LoadAssessment(c.String(fileFlag.Name))
		if err != nil {
			return err
		}
		return runAssessment(assessment, !c.Bool(noHealthFlag.Name))
	},
}

var gapsCmd = &urfave.Command{
	Name:  "gaps",
	Usage: "Run a gap analysis against the default targets",
	Flags: []urfave.Flag{
		fileFlag,
	},
	Action: func(c *urfave.Context) error {
		assessment, err := sampledata.LoadAssessment(c.String(fileFlag.Name))
		if err != nil {
			return err
		}

		scorer, err := scoring.NewOrganizationalScorer(scoring.ScorerConfig{})
		if err != nil {
			return err
		}

		records := scorer.GapAnalysis(assessment.ItemScores, nil, nil, nil)
		return encode(map[string]any{
			"organization": assessment.Organization,
			"period":       assessment.Period,
			"gaps":         records,
		})
	},
}

func runAssessment(assessment *sampledata.Assessment, includeHealth bool) error {
	scorer, err := scoring.NewOrganizationalScorer(scoring.ScorerConfig{})
	if err != nil {
		return err
	}

	card, err := scorer.GenerateScorecard(assessment.CategoryMeans(), includeHealth)
	if err != nil {
		return err
	}

	return encode(map[string]any{
		"organization": assessment.Organization,
		"period":       assessment.Period,
		"scorecard":    card,
	})
}

func initLogging(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(h))
}

func encode(v any) error {
	if outputFormat == formatYAML {
		return yaml.NewEncoder(os.Stdout).Encode(v)
	}
	e := json.NewEncoder(os.Stdout)
	e.SetIndent("", "  ")
	return e.Encode(v)
}
