package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/csg33k/masterdash/internal/adapters/pdf"
	sqliteadapter "github.com/csg33k/masterdash/internal/adapters/sqlite"
	"github.com/csg33k/masterdash/internal/adapters/static"
	"github.com/csg33k/masterdash/internal/config"
	"github.com/csg33k/masterdash/internal/handlers"
	"github.com/csg33k/masterdash/internal/i18n"
	"github.com/csg33k/masterdash/internal/ports"
)

func main() {
	config.LoadDotEnv()
	cfg, err := config.Load(os.Args[1:], os.Getenv)
	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bundled, err := static.New()
	if err != nil {
		log.Fatalf("failed to load datasets: %v", err)
	}
	var data ports.Dataset = bundled
	if cfg.DataSource == config.SourceSQLite {
		repo, err := sqliteadapter.New(ctx, cfg.DBPath, bundled)
		if err != nil {
			log.Fatalf("failed to open database: %v", err)
		}
		defer repo.Close()
		data = repo
	}

	catalog, err := i18n.Load()
	if err != nil {
		log.Fatalf("failed to load translations: %v", err)
	}

	h := handlers.New(data, catalog, pdf.Generator{}, cfg.DefaultLang)
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           h.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdown); err != nil {
			slog.Warn("shutdown", "err", err)
		}
	}()

	slog.Info("master data dashboard running",
		"url", "http://localhost:"+cfg.Port,
		"source", cfg.DataSource,
		"lang", cfg.DefaultLang,
	)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}
