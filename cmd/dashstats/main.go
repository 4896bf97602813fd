// dashstats corre un ciclo de estadísticas del dashboard para un actor e imprime el snapshot.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"campus-dashboard/internal/adapters/campusapi"
	"campus-dashboard/internal/adapters/storage/memory"
	"campus-dashboard/internal/adapters/storage/postgres"
	"campus-dashboard/internal/domain/ownership"
	"campus-dashboard/internal/domain/stats"
	"campus-dashboard/internal/platform/logger"
	"campus-dashboard/internal/ports/campus"

	"github.com/spf13/cobra"
)

var errNoActor = errors.New("--id or --username is required")

type options struct {
	id       string
	username string

	apiURL    string
	apiKey    string
	apiHeader string
	dsn       string
	demo      bool
	timeout   time.Duration

	strict   bool
	logLevel string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "dashstats",
		Short: "Compute faculty dashboard stats for one actor",
		Long: `Fetch courses, announcements and events from the campus backend,
keep the records owned by the given actor and print the counts as JSON.

Source selection: --api-url, then --dsn, then --demo.
Any fetch or shape failure prints the zero snapshot; with --strict the
command also exits non-zero.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStats(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.id, "id", "", "actor id")
	f.StringVar(&opts.username, "username", "", "actor username")
	f.StringVar(&opts.apiURL, "api-url", "", "campus backend base URL")
	f.StringVar(&opts.apiKey, "api-key", "", "campus backend API key")
	f.StringVar(&opts.apiHeader, "api-key-header", "X-Api-Key", "header carrying the API key")
	f.StringVar(&opts.dsn, "dsn", "", "Postgres DSN")
	f.BoolVar(&opts.demo, "demo", false, "use built-in demo data")
	f.DurationVar(&opts.timeout, "timeout", 10*time.Second, "timeout for the whole cycle")
	f.BoolVar(&opts.strict, "strict", false, "exit non-zero when the cycle fails")
	f.StringVar(&opts.logLevel, "log-level", "warn", "debug, info, warn or error")

	return cmd
}

func runStats(cmd *cobra.Command, opts *options) error {
	if strings.TrimSpace(opts.id) == "" && strings.TrimSpace(opts.username) == "" {
		return errNoActor
	}

	log, err := logger.New(logger.Options{
		Level:  logger.ParseLevel(opts.logLevel),
		Format: logger.FormatText,
		App:    "dashstats",
		Output: "stderr",
	})
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
	defer cancel()

	src, closeFn, err := openSource(ctx, opts)
	if err != nil {
		return err
	}
	defer closeFn()

	svc := stats.NewService(src, log.Named("stats"))
	actor := ownership.Actor{ID: strings.TrimSpace(opts.id), Username: strings.TrimSpace(opts.username)}

	snap, cycleErr := svc.Compute(ctx, actor)

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return err
	}

	// la falla ya quedó logueada por el servicio, con su cycle_id
	if cycleErr != nil && opts.strict {
		return cycleErr
	}
	return nil
}

func openSource(ctx context.Context, opts *options) (campus.Source, func(), error) {
	noop := func() {}

	switch {
	case opts.apiURL != "":
		c, err := campusapi.NewClient(campusapi.Config{
			BaseURL:      opts.apiURL,
			APIKey:       opts.apiKey,
			APIKeyHeader: opts.apiHeader,
			Timeout:      opts.timeout,
		})
		if err != nil {
			return nil, noop, err
		}
		return c, noop, nil
	case opts.dsn != "":
		db, err := postgres.Open(ctx, opts.dsn)
		if err != nil {
			return nil, noop, fmt.Errorf("open postgres: %w", err)
		}
		return postgres.NewSource(db), func() { _ = db.Close() }, nil
	case opts.demo:
		return memory.NewDemoSource(), noop, nil
	default:
		return nil, noop, errors.New("one of --api-url, --dsn or --demo is required")
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
