// Command ask answers admissions questions typed on the terminal.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"admissions-rag/internal/app"
	"admissions-rag/internal/config"
	"admissions-rag/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	app.SetupLogging(cfg, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := app.OpenStore(cfg)
	if err != nil {
		return fmt.Errorf("failed to open document store: %w", err)
	}

	embedder, closeCache, err := app.NewEmbedder(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}
	defer closeCache()

	pipeline := app.NewPipeline(cfg, store, embedder)
	answerService := service.NewAnswerService(pipeline.Engine)

	fmt.Fprintln(os.Stderr, "Đang tải mô hình...")
	if err := answerService.Initialize(ctx, pipeline.ReadinessChecks(cfg)...); err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}

	fmt.Println("Trợ lý tuyển sinh. Nhập câu hỏi, hoặc 'exit' để thoát.")
	if err := repl(ctx, answerService, os.Stdin, os.Stdout); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	return nil
}

func repl(ctx context.Context, answerService service.AnswerService, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "\n> ")
		if !scanner.Scan() {
			return scanner.Err()
		}

		question := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(question) {
		case "":
			continue
		case "exit", "quit":
			return nil
		}

		resp, err := answerService.Ask(ctx, service.AskRequest{Question: question})
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			fmt.Fprintf(out, "Lỗi: %v\n", err)
			continue
		}
		fmt.Fprintln(out, resp.Rendered)
	}
}
