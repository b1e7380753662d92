// Command cohort turns an interaction log into a community-colored graph
// rendering. Without a subcommand it runs the full pipeline: generate a
// synthetic log, build the graph, label communities, write the DOT file,
// rasterize it with Graphviz, and open the image.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/cohortgraph/cohort/pkg/algorithms"
	"github.com/cohortgraph/cohort/pkg/config"
	"github.com/cohortgraph/cohort/pkg/gen"
	"github.com/cohortgraph/cohort/pkg/graph"
	"github.com/cohortgraph/cohort/pkg/ingest"
	"github.com/cohortgraph/cohort/pkg/logging"
	"github.com/cohortgraph/cohort/pkg/metrics"
	"github.com/cohortgraph/cohort/pkg/parallel"
	"github.com/cohortgraph/cohort/pkg/render"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(),
			"Usage: %s [-config file] [generate|analyze|render]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := logging.NewJSONLogger(os.Stderr, logging.ParseLevel(cfg.LogLevel)).
		With(logging.RunID(uuid.NewString()))

	command := "pipeline"
	if args := flag.Args(); len(args) > 0 {
		command = args[0]
	}

	ctx := context.Background()
	switch command {
	case "generate":
		err = runGenerate(cfg, logger)
	case "analyze":
		err = runAnalyze(ctx, cfg, logger)
	case "render":
		err = runRender(ctx, cfg, logger)
	case "pipeline":
		err = runPipeline(ctx, cfg, logger)
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		logger.Error("run failed", logging.Operation(command), logging.Error(err))
		os.Exit(1)
	}
}

// runGenerate writes a synthetic interaction log to cfg.Input.
func runGenerate(cfg *config.Config, logger logging.Logger) error {
	timer := logging.StartTimer(logger, "interaction log generated",
		logging.Component("gen"), logging.Path(cfg.Input))

	pool := parallel.NewWorkerPool(cfg.Workers, logger)
	defer pool.Close()

	users := gen.NewUsernameGenerator(cfg.Generate.Seed).UniqueBatch(cfg.Generate.Users, pool)

	f, err := os.Create(cfg.Input)
	if err != nil {
		return err
	}
	defer f.Close()

	rng := rand.New(rand.NewSource(cfg.Generate.Seed))
	if err := gen.WriteInteractionLog(f, users, cfg.Generate.Interactions, rng); err != nil {
		timer.EndError(err)
		return err
	}

	timer.End(logging.Int("users", len(users)), logging.Int("interactions", cfg.Generate.Interactions))
	return nil
}

// runAnalyze builds the graph, labels communities, writes the DOT file, and
// prints the community report.
func runAnalyze(ctx context.Context, cfg *config.Config, logger logging.Logger) error {
	registry := metrics.NewRegistry()

	g, labeling, err := buildAndLabel(ctx, cfg, logger, registry)
	if err != nil {
		return err
	}

	desc, err := render.Describe(g, labeling)
	if err != nil {
		return err
	}

	f, err := os.Create(cfg.Output.Dot)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := render.WriteDOT(f, desc); err != nil {
		return err
	}
	logger.Info("graph description written", logging.Path(cfg.Output.Dot))

	return printReport(g, labeling, logger)
}

// runRender rasterizes an existing DOT file and opens the result.
func runRender(ctx context.Context, cfg *config.Config, logger logging.Logger) error {
	if err := render.RenderPNG(ctx, cfg.Output.Dot, cfg.Output.Image); err != nil {
		return err
	}
	logger.Info("image rendered", logging.Path(cfg.Output.Image))

	if cfg.OpenImage {
		if err := render.OpenFile(cfg.Output.Image); err != nil {
			// A missing viewer shouldn't fail the run; the image exists.
			logger.Warn("could not open image", logging.Error(err))
		}
	}
	return nil
}

// runPipeline is the default end-to-end flow.
func runPipeline(ctx context.Context, cfg *config.Config, logger logging.Logger) error {
	if err := runGenerate(cfg, logger); err != nil {
		return err
	}
	if err := runAnalyze(ctx, cfg, logger); err != nil {
		return err
	}
	return runRender(ctx, cfg, logger)
}

func buildAndLabel(ctx context.Context, cfg *config.Config, logger logging.Logger, registry *metrics.Registry) (*graph.Graph, *algorithms.Labeling, error) {
	rc, err := ingest.Open(cfg.Input)
	if err != nil {
		return nil, nil, err
	}
	defer rc.Close()

	builder := ingest.NewBuilder(cfg.Workers, logger, registry)
	g, err := builder.Build(ctx, rc)
	if err != nil {
		return nil, nil, err
	}

	timer := logging.StartTimer(logger, "communities labeled", logging.Component("algorithms"))
	labelStart := time.Now()
	labeling := algorithms.Label(g)
	registry.RecordLabeling(time.Since(labelStart), len(labeling.Communities), labeling.SingletonCount)
	timer.End(logging.Int("communities", len(labeling.Communities)),
		logging.Int("singletons", labeling.SingletonCount))

	return g, labeling, nil
}
