package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/orgcontext/internal/api"
	"github.com/dgallion1/orgcontext/internal/assemble"
	"github.com/dgallion1/orgcontext/internal/config"
	"github.com/dgallion1/orgcontext/internal/metricdoc"
	"github.com/dgallion1/orgcontext/internal/orgchart"
	"github.com/dgallion1/orgcontext/internal/orgindex"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// Optional alias table for exact short-name resolution.
	var aliases map[string]string
	if cfg.AliasTablePath != "" {
		var err error
		aliases, err = orgchart.LoadAliases(cfg.AliasTablePath)
		if err != nil {
			log.Error("failed to load alias table", "error", err)
			os.Exit(1)
		}
	}

	loader := orgindex.NewLoader(cfg.OrgChartPath, aliases, log)
	// Build eagerly: a malformed org chart is the one fatal condition,
	// and it must surface at startup, not on first request.
	if _, err := loader.Get(); err != nil {
		log.Error("org index build failed", "error", err)
		os.Exit(1)
	}

	registry := metricdoc.DefaultRegistry()
	if cfg.MetricRegistryPath != "" {
		var err error
		registry, err = metricdoc.LoadRegistry(cfg.MetricRegistryPath)
		if err != nil {
			log.Error("failed to load metric registry", "error", err)
			os.Exit(1)
		}
	}

	resolver, err := metricdoc.NewResolver(registry, cfg.MetricDocsDir, cfg.DocCacheSize, cfg.MetricCharLimit, log)
	if err != nil {
		log.Error("failed to create metric resolver", "error", err)
		os.Exit(1)
	}

	var refdoc *assemble.ReferenceDoc
	if cfg.ReferenceDocPath != "" {
		refdoc, err = assemble.LoadReferenceDoc(cfg.ReferenceDocPath, cfg.MinimalOverviewLimit)
		if err != nil {
			log.Warn("reference document unavailable, assembling without it", "error", err)
		}
	}

	assembler := assemble.New(loader, resolver, refdoc, cfg.TokenDivisor, log)
	srv := api.NewServer(assembler, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Info("starting orgcontext", "port", cfg.Port)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
