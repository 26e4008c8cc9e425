package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	sqliteadapter "github.com/csg33k/masterdash/internal/adapters/sqlite"
	"github.com/csg33k/masterdash/internal/adapters/static"
	"github.com/csg33k/masterdash/internal/config"
	"github.com/csg33k/masterdash/internal/i18n"
	"github.com/csg33k/masterdash/internal/ports"
)

var (
	lang       string
	dataSource string
	dbPath     string
	verbose    bool
)

var RootCmd = &cobra.Command{
	Use:   "masterdata",
	Short: "Browse and export the master datasets from a terminal",
	PersistentPreRun: func(*cobra.Command, []string) {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
	SilenceUsage: true,
}

func init() {
	config.LoadDotEnv()
	RootCmd.PersistentFlags().StringVar(&lang, "lang", envOr("DEFAULT_LANG", "jp"), "output language")
	RootCmd.PersistentFlags().StringVar(&dataSource, "data-source", envOr("DATA_SOURCE", config.SourceStatic), "static or sqlite")
	RootCmd.PersistentFlags().StringVar(&dbPath, "db", envOr("DB_PATH", ":memory:"), "SQLite database path for the sqlite source")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	RootCmd.AddCommand(ListCmd, ExportCmd)
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// session is everything a subcommand needs to build a grid.
type session struct {
	data  ports.Dataset
	loc   *i18n.Localizer
	close func() error
}

func open(ctx context.Context) (*session, error) {
	catalog, err := i18n.Load()
	if err != nil {
		return nil, err
	}
	bundled, err := static.New()
	if err != nil {
		return nil, err
	}
	s := &session{data: bundled, loc: catalog.Localizer(lang), close: func() error { return nil }}
	switch dataSource {
	case config.SourceStatic:
	case config.SourceSQLite:
		repo, err := sqliteadapter.New(ctx, dbPath, bundled)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		s.data, s.close = repo, repo.Close
	default:
		return nil, fmt.Errorf("unknown data source %q", dataSource)
	}
	slog.Debug("session opened", "source", dataSource, "lang", s.loc.Lang())
	return s, nil
}
