package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/studypdf/studypdf/internal/api"
	"github.com/studypdf/studypdf/internal/config"
	"github.com/studypdf/studypdf/internal/docstore"
	"github.com/studypdf/studypdf/internal/groq"
	"github.com/studypdf/studypdf/internal/pipeline"
	"github.com/studypdf/studypdf/internal/processor"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Completion backend and reduction pipeline.
	gq := groq.NewClient(cfg.GroqURL, cfg.GroqAPIKey, cfg.GroqModel, cfg.HTTPTimeout)
	proc := processor.New(gq, log, cfg.MaxContextTokens, cfg.MaxSummaryChunks)

	// In-memory state and worker pool.
	docs := docstore.NewStore(cfg.DocTTL)
	jobs := pipeline.NewJobStore(cfg.JobTTL)
	orch := pipeline.NewOrchestrator(docs, proc, jobs, log, cfg.WorkerCount, cfg.MaxQueueSize)
	orch.Start(ctx)

	srv := api.NewServer(docs, orch, jobs, proc, gq, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.HTTPTimeout + 30*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		orch.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		gq.Close()
	}()

	log.Info("starting studypdf", "port", cfg.Port, "model", cfg.GroqModel)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
