// Command build embeds the processed admissions data and writes it to the document store.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"admissions-rag/internal/app"
	"admissions-rag/internal/config"
	"admissions-rag/internal/ingest"
	"admissions-rag/internal/storage"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	flags := flag.NewFlagSet("build", flag.ContinueOnError)
	enrich := flags.Bool("enrich", false, "read the raw files and enrich their content before building")
	writeEnriched := flags.Bool("write-enriched", false, "enrich the raw files into the processed files and exit")
	statsOnly := flags.Bool("stats", false, "print corpus statistics without building")
	if err := flags.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	app.SetupLogging(cfg, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *writeEnriched {
		counts, err := ingest.WriteEnriched(ctx, cfg.DataDir)
		if err != nil {
			return fmt.Errorf("failed to write enriched files: %w", err)
		}
		for sourceType, n := range counts {
			fmt.Printf("%s: %d records enriched\n", sourceType, n)
		}
		return nil
	}

	docs, err := ingest.LoadDocuments(ctx, cfg.DataDir, *enrich)
	if err != nil {
		return fmt.Errorf("failed to load documents: %w", err)
	}
	if len(docs) == 0 {
		return fmt.Errorf("no documents found in %s", cfg.DataDir)
	}

	stats := ingest.ComputeStats(docs, cfg.EmbeddingModelName)
	printJSON(stats)
	if *statsOnly {
		return nil
	}

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

	store, err := app.OpenStore(cfg)
	if err != nil {
		return fmt.Errorf("failed to open document store: %w", err)
	}

	embedder, closeCache, err := app.NewEmbedder(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}
	defer closeCache()

	builder := ingest.NewBuilder(
		embedder,
		store,
		storage.NewPassageRepo(db),
		cfg.CollectionName,
		cfg.EmbeddingVectorSize,
		cfg.EmbeddingModelName,
	)

	result, err := builder.Build(ctx, docs)
	if err != nil {
		return fmt.Errorf("failed to build collection: %w", err)
	}
	if result.Skipped {
		slog.Info("Collection already built, nothing to do", "collection", cfg.CollectionName, "existing", result.Existing)
	} else {
		slog.Info("Collection built", "collection", cfg.CollectionName, "inserted", result.Inserted, "batches", result.Batches)
	}
	printJSON(result)
	return nil
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		slog.Error("Failed to print result", "error", err)
	}
}
