package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/subcommands"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/simbank_ledger/internal/adapters/audit"
	"github.com/SscSPs/simbank_ledger/internal/adapters/database/pgsql"
	portssvc "github.com/SscSPs/simbank_ledger/internal/core/ports/services"
	"github.com/SscSPs/simbank_ledger/internal/core/services"
	"github.com/SscSPs/simbank_ledger/internal/platform/config"
	"github.com/SscSPs/simbank_ledger/pkg/database"
)

// env is the per-invocation wiring shared by every command.
type env struct {
	cfg      *config.Config
	logger   *slog.Logger
	pool     *pgxpool.Pool
	store    *pgsql.Store
	services *portssvc.ServiceContainer
}

// openEnv loads configuration and connects to the PostgreSQL ledger. The CLI never uses the
// in-memory store: it would vanish with the process.
func openEnv(ctx context.Context) (*env, error) {
	logger := slogStderr()
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.StoreDriver != config.StorePostgres {
		return nil, fmt.Errorf("simbank_admin requires STORE_DRIVER=%s", config.StorePostgres)
	}

	pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, true, logger)
	if err != nil {
		return nil, err
	}
	store := pgsql.NewStore(pool)
	return &env{
		cfg:    cfg,
		logger: logger,
		pool:   pool,
		store:  store,
		// Admin operations never quote prices; audit records go straight to the log.
		services: services.NewServiceContainer(cfg, services.Dependencies{Store: store, Sink: audit.NewLogSink()}),
	}, nil
}

func (e *env) close() { database.ClosePgxPool(e.pool, e.logger) }

// run opens the environment, executes fn and maps its error onto an exit status.
func run(ctx context.Context, fn func(ctx context.Context, e *env) error) subcommands.ExitStatus {
	e, err := openEnv(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer e.close()

	if err := fn(ctx, e); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func slogStderr() *slog.Logger { return slog.New(slog.NewJSONHandler(os.Stderr, nil)) }
