// Command eval measures Hit Rate and MRR of the retrieval and reranking stages.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"admissions-rag/internal/app"
	"admissions-rag/internal/config"
	"admissions-rag/internal/eval"
	"admissions-rag/internal/storage"
)

const modeBoth = "both"

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	flags := flag.NewFlagSet("eval", flag.ContinueOnError)
	mode := flags.String("mode", modeBoth, "ranker to evaluate: retrieval, reranked or both")
	setPath := flags.String("set", "", "evaluation set (JSON or YAML); defaults to EVAL_SET_PATH")
	outDir := flags.String("out", "", "directory for the per-item CSV reports; defaults to EVAL_RESULTS_DIR")
	if err := flags.Parse(args); err != nil {
		return err
	}

	modes, err := parseModes(*mode)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	app.SetupLogging(cfg, os.Stderr)

	if *setPath == "" {
		*setPath = cfg.EvalSetPath
	}
	if *outDir == "" {
		*outDir = cfg.EvalResultsDir
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	items, err := eval.LoadItems(*setPath)
	if err != nil {
		return fmt.Errorf("failed to load evaluation set: %w", err)
	}
	slog.Info("Evaluation set loaded", "path", *setPath, "items", len(items))

	db, err := storage.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		_ = db.Close()
	}()
	if err := storage.Migrate(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	runs := storage.NewEvalRepo(db)

	store, err := app.OpenStore(cfg)
	if err != nil {
		return fmt.Errorf("failed to open document store: %w", err)
	}

	embedder, closeCache, err := app.NewEmbedder(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}
	defer closeCache()

	engine := app.NewPipeline(cfg, store, embedder).Engine

	for _, m := range modes {
		var ranker eval.Ranker
		topK := cfg.EvalTopK
		if m == eval.ModeReranked {
			topK = cfg.RerankTopK
			ranker = eval.TwoStageRanker(engine.Retriever(), engine.Reranker(), cfg.RetrievalTopN, topK)
		} else {
			ranker = eval.RetrievalRanker(engine.Retriever(), topK)
		}

		report, err := eval.Evaluate(ctx, items, ranker)
		if err != nil {
			return fmt.Errorf("failed to evaluate %s: %w", m, err)
		}
		report.Mode = m
		report.TopK = topK

		fmt.Printf("\n=== %s ===\n", m)
		if err := eval.WriteTable(os.Stdout, report); err != nil {
			return fmt.Errorf("failed to print report: %w", err)
		}

		path, err := eval.ExportCSV(*outDir, report)
		if err != nil {
			return fmt.Errorf("failed to export report: %w", err)
		}

		runID, err := eval.Save(ctx, runs, report)
		if err != nil {
			return fmt.Errorf("failed to store evaluation run: %w", err)
		}

		slog.Info("Evaluation complete", "mode", m, "hit_rate", report.HitRate, "mrr", report.MRR, "csv", path, "run_id", runID)
	}
	return nil
}

func parseModes(mode string) ([]string, error) {
	switch mode {
	case eval.ModeRetrieval, eval.ModeReranked:
		return []string{mode}, nil
	case modeBoth:
		return []string{eval.ModeRetrieval, eval.ModeReranked}, nil
	default:
		return nil, fmt.Errorf("unknown mode %q: want %s, %s or %s", mode, eval.ModeRetrieval, eval.ModeReranked, modeBoth)
	}
}
