// recipectl 在終端機直接執行食譜解析流程，方便除錯目錄與拼字修正
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"recipe-assistant/internal/app"
	"recipe-assistant/internal/core/catalog"
	"recipe-assistant/internal/core/query"
	"recipe-assistant/internal/infrastructure/config"
	"recipe-assistant/internal/pkg/common"

	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "recipectl",
		Usage: "Query the recipe assistant pipeline from the command line",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "warn",
			},
			&cli.StringFlag{
				Name:    "catalog",
				Aliases: []string{"c"},
				Usage:   "Path to a recipe catalog YAML file (embedded catalog when empty)",
				EnvVars: []string{"CATALOG_PATH"},
			},
		},
		Before: setupLogger,
		After: func(*cli.Context) error {
			common.Sync()
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "ask",
				Usage:     "Resolve a prompt through every tier and print the reply",
				ArgsUsage: "<prompt...>",
				Action:    askCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "tie-policy",
						Usage: "Local tie policy (all, first)",
					},
					&cli.BoolFlag{
						Name:  "show-tier",
						Usage: "Print the tier that produced the reply",
					},
				},
			},
			{
				Name:      "explain",
				Usage:     "Show tokens, spelling corrections and local match scores for a prompt",
				ArgsUsage: "<prompt...>",
				Action:    explainCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "tie-policy",
						Usage: "Local tie policy (all, first)",
						Value: string(catalog.TieAll),
					},
				},
			},
			{
				Name:   "vocab",
				Usage:  "List the spelling correction vocabulary",
				Action: vocabCommand,
			},
		},
	}
}

func setupLogger(c *cli.Context) error {
	level := strings.ToLower(c.String("log-level"))
	switch level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", level)
	}
	return common.InitLogger(level, "")
}

func promptFrom(c *cli.Context) (string, error) {
	prompt := strings.Join(c.Args().Slice(), " ")
	if query.IsBlank(prompt) {
		return "", errors.New(common.MissingPromptMessage)
	}
	return prompt, nil
}

func askCommand(c *cli.Context) error {
	prompt, err := promptFrom(c)
	if err != nil {
		return err
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	if path := c.String("catalog"); path != "" {
		cfg.Catalog.Path = path
	}
	if policy := c.String("tie-policy"); policy != "" {
		cfg.Catalog.TiePolicy = policy
	}
	cfg.Metrics.Enabled = false

	application, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer application.Close()

	result, err := application.Resolver.Resolve(context.Background(), prompt)
	if err != nil {
		return err
	}

	out := c.App.Writer
	if c.Bool("show-tier") {
		fmt.Fprintf(out, "[%s]\n", result.Tier)
	}
	fmt.Fprintln(out, result.Reply)
	return nil
}

func explainCommand(c *cli.Context) error {
	prompt, err := promptFrom(c)
	if err != nil {
		return err
	}

	cat, err := catalog.Load(c.String("catalog"))
	if err != nil {
		return err
	}
	policy, err := catalog.ParseTiePolicy(c.String("tie-policy"))
	if err != nil {
		return err
	}

	q := query.NewParser(query.NewCorrector(cat.Vocabulary())).Parse(prompt)
	matcher := catalog.NewMatcher(cat, policy)

	out := c.App.Writer
	fmt.Fprintf(out, "tokens:    %s\n", strings.Join(q.Tokens, " "))
	fmt.Fprintf(out, "corrected: %s\n", strings.Join(q.Corrected, " "))
	fmt.Fprintln(out, "scores:")
	for _, s := range matcher.Scores(q.Corrected) {
		fmt.Fprintf(out, "  %-24s %d\n", s.Recipe.Name, s.Score)
	}

	matches := matcher.Match(q.Corrected)
	if len(matches) == 0 {
		fmt.Fprintln(out, "local match: none")
		return nil
	}
	names := make([]string, 0, len(matches))
	for _, r := range matches {
		names = append(names, r.Name)
	}
	fmt.Fprintf(out, "local match: %s\n", strings.Join(names, ", "))
	return nil
}

func vocabCommand(c *cli.Context) error {
	cat, err := catalog.Load(c.String("catalog"))
	if err != nil {
		return err
	}
	for _, word := range cat.Vocabulary() {
		fmt.Fprintln(c.App.Writer, word)
	}
	return nil
}
