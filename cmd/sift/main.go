// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/poiesic/sift"
	"github.com/poiesic/sift/ai"
	"github.com/poiesic/sift/core"
	"github.com/poiesic/sift/extract"
	"github.com/poiesic/sift/intent"
	"github.com/poiesic/sift/research"
	"github.com/poiesic/sift/websearch"
)

func main() {
	// Missing .env is fine, environment may be set directly.
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "sift",
		Usage: "Intent-driven relevance extraction for research documents",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "extract",
				Usage:  "Select the most relevant documents from a JSON file",
				Action: extractCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "intent",
						Aliases:  []string{"i"},
						Usage:    "Intent profile name",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "input",
						Usage:    "JSON file with an array of documents (- for stdin)",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "embedding-host",
						Usage: "Embedding service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:  "embedding-model",
						Usage: "Embedding model name",
						Value: "embeddinggemma",
					},
					&cli.IntFlag{
						Name:  "top-n",
						Usage: "Maximum number of documents to return",
						Value: extract.DefaultTopN,
					},
					&cli.Float64Flag{
						Name:  "min-score",
						Usage: "Weighted similarity threshold for ranked selection",
						Value: extract.DefaultMinScore,
					},
					&cli.BoolFlag{
						Name:  "cluster",
						Usage: "Select from the densest document group instead of ranking",
					},
					&cli.StringFlag{
						Name:  "profiles",
						Usage: "YAML file with intent profiles (overrides builtins)",
					},
				},
			},
			{
				Name:   "research",
				Usage:  "Run web searches and extract the relevant results",
				Action: researchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "intent",
						Aliases:  []string{"i"},
						Usage:    "Intent profile name",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "queries",
						Usage:    "JSON file with an array of research queries (- for stdin)",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "embedding-host",
						Usage: "Embedding service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:  "embedding-model",
						Usage: "Embedding model name",
						Value: "embeddinggemma",
					},
					&cli.IntFlag{
						Name:  "top-n",
						Usage: "Maximum number of documents to return",
						Value: extract.DefaultTopN,
					},
					&cli.IntFlag{
						Name:  "pool-size",
						Usage: "Concurrent search workers",
						Value: 4,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts per search",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
				},
			},
			{
				Name:   "profiles",
				Usage:  "List available intent profiles",
				Action: profilesCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "profiles",
						Usage: "YAML file with intent profiles (overrides builtins)",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}

func extractCommand(c *cli.Context) error {
	ctx := context.Background()

	docs, err := readDocuments(c.String("input"))
	if err != nil {
		return err
	}

	workspace, err := openWorkspace(c)
	if err != nil {
		return err
	}
	defer workspace.Close()

	extractor, err := workspace.NewExtractor(ctx, c.String("intent"))
	if err != nil {
		return fmt.Errorf("failed to create extractor: %w", err)
	}

	params := extract.DefaultParams()
	params.TopN = c.Int("top-n")
	params.MinScore = float32(c.Float64("min-score"))
	params.Cluster = c.Bool("cluster")

	selected := extractor.Extract(ctx, docs, params)
	return writeJSON(os.Stdout, selected)
}

func researchCommand(c *cli.Context) error {
	ctx := context.Background()

	queries, err := readQueries(c.String("queries"))
	if err != nil {
		return err
	}

	searcher, err := searcherFromEnv()
	if err != nil {
		return err
	}

	workspace, err := openWorkspace(c)
	if err != nil {
		return err
	}
	defer workspace.Close()

	pipeline, err := workspace.NewResearchPipeline(ctx, searcher, c.String("intent"),
		research.WithPoolSize(c.Int("pool-size")),
		research.WithRetry(c.Int("max-retries"), c.Duration("retry-delay")),
	)
	if err != nil {
		return fmt.Errorf("failed to create research pipeline: %w", err)
	}
	defer pipeline.Release()

	params := extract.DefaultParams()
	params.TopN = c.Int("top-n")

	report, err := pipeline.Run(ctx, queries, params)
	if err != nil {
		return fmt.Errorf("research run failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Completed topics: %s\n", strings.Join(report.CompletedTopics, ", "))
	if report.FailedQueries > 0 {
		fmt.Fprintf(os.Stderr, "Failed queries: %d\n", report.FailedQueries)
	}
	return writeJSON(os.Stdout, report.Documents)
}

func profilesCommand(c *cli.Context) error {
	store, err := profileStore(c.String("profiles"))
	if err != nil {
		return err
	}

	for _, name := range store.Names() {
		profile, err := store.Lookup(name)
		if err != nil {
			return err
		}
		fmt.Printf("%s\t%d priority\t%d exclude\n",
			name, len(profile.HighPriority), len(profile.Exclude))
	}
	return nil
}

func openWorkspace(c *cli.Context) (*sift.Workspace, error) {
	store, err := profileStore(c.String("profiles"))
	if err != nil {
		return nil, err
	}

	config := ai.NewConfig(
		ai.WithHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
	)
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}

	workspace, err := sift.NewWorkspace(c.String("db"),
		sift.WithAIConfig(config),
		sift.WithProfiles(store),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open workspace: %w", err)
	}
	return workspace, nil
}

func profileStore(path string) (intent.Store, error) {
	if path == "" {
		return intent.BuiltinStore(), nil
	}
	store, err := intent.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load profiles: %w", err)
	}
	return store, nil
}

// envKey names the i-th search API key variable: TAVILY_API_KEY, then
// TAVILY_API_KEY2 through TAVILY_API_KEY12.
func envKey(i int) string {
	if i <= 1 {
		return "TAVILY_API_KEY"
	}
	return fmt.Sprintf("TAVILY_API_KEY%d", i)
}

// searcherFromEnv builds the web search client from the TAVILY_API_KEY
// environment variables.
func searcherFromEnv() (websearch.Searcher, error) {
	keys := make([]string, 0, 12)
	for i := 1; i <= 12; i++ {
		keys = append(keys, os.Getenv(envKey(i)))
	}

	client, err := websearch.NewClient(keys)
	if err != nil {
		return nil, fmt.Errorf("failed to create search client: %w", err)
	}
	return client, nil
}

func readDocuments(path string) ([]core.Document, error) {
	data, err := readInput(path)
	if err != nil {
		return nil, err
	}
	var docs []core.Document
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("failed to parse documents: %w", err)
	}
	return docs, nil
}

func readQueries(path string) ([]research.Query, error) {
	data, err := readInput(path)
	if err != nil {
		return nil, err
	}
	var queries []research.Query
	if err := json.Unmarshal(data, &queries); err != nil {
		return nil, fmt.Errorf("failed to parse queries: %w", err)
	}
	return queries, nil
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func writeJSON(w *os.File, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
