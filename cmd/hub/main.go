// Package main is the composition root for the Merit Café Hub: it loads
// configuration, opens the chosen storage backend, restores the roster and
// voucher log, and wires the command/query handlers the host UI drives.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/merit-hub/merit-cafe-hub/config"
	"github.com/merit-hub/merit-cafe-hub/internal/application/command"
	"github.com/merit-hub/merit-cafe-hub/internal/application/query"
	"github.com/merit-hub/merit-cafe-hub/internal/application/session"
	"github.com/merit-hub/merit-cafe-hub/internal/domain/shared"
	"github.com/merit-hub/merit-cafe-hub/internal/domain/voucher"
	"github.com/merit-hub/merit-cafe-hub/internal/infrastructure/identifier"
	"github.com/merit-hub/merit-cafe-hub/internal/infrastructure/messaging"
	"github.com/merit-hub/merit-cafe-hub/internal/infrastructure/persistence/file"
	"github.com/merit-hub/merit-cafe-hub/internal/infrastructure/persistence/kv"
	"github.com/merit-hub/merit-cafe-hub/internal/infrastructure/persistence/postgres"
	redisstore "github.com/merit-hub/merit-cafe-hub/internal/infrastructure/persistence/redis"
	"github.com/merit-hub/merit-cafe-hub/internal/infrastructure/persistence/state"
	"github.com/merit-hub/merit-cafe-hub/pkg/logger"
)

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "merit-cafe-hub: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.New(os.Stdout, logger.ParseLevel(cfg.LogLevel))
	log.Info("starting merit café hub",
		logger.String("storage", string(cfg.Storage)),
		logger.Int("threshold", cfg.Threshold),
		logger.Int("amount_pence", cfg.AmountPence))

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		// Storage must never block the session: fall back to memory-only.
		log.Warn("storage backend unavailable, running in-memory", logger.Err(err))
		store, closeStore = kv.NewMemory(), func() {}
	}
	defer closeStore()

	stateManager := state.NewManager(store, log)
	rosterStore := stateManager.LoadRoster(ctx)
	ledger := stateManager.LoadLedger(ctx)

	policy := voucher.Policy{
		Threshold:   cfg.Threshold,
		AmountPence: cfg.AmountPence,
	}

	bus := messaging.NewEventBus(log)
	bus.Subscribe(shared.EventVoucherIssued, func(event shared.Event) {
		log.Info("event", logger.String("type", string(event.EventType())),
			logger.String("aggregate_id", event.AggregateID()))
	})

	issue := command.NewIssueVoucherHandler(
		rosterStore, ledger, policy,
		identifier.NewUUID(), time.Now,
		stateManager, bus, log,
	)
	adjust := command.NewAdjustCommendationsHandler(rosterStore, stateManager, bus, log)
	toggle := command.NewToggleRedeemedHandler(ledger, stateManager, bus, log)
	rename := command.NewRenameStudentHandler(rosterStore, stateManager, bus, log)

	students := query.NewGetStudentHandler(rosterStore)
	eligibility := query.NewGetEligibilityHandler(rosterStore, policy)
	vouchers := query.NewListVouchersHandler(ledger)

	sess := session.New()

	// The hub has no network or CLI surface; the host UI drives the
	// handlers directly. Hold them in the app struct it embeds.
	app := &App{
		Session:     sess,
		Issue:       issue,
		Adjust:      adjust,
		Toggle:      toggle,
		Rename:      rename,
		Students:    students,
		Eligibility: eligibility,
		Vouchers:    vouchers,
	}

	log.Info("state restored",
		logger.Int("students", len(app.Students.Roster())),
		logger.Int("vouchers", len(app.Vouchers.Handle())))

	return nil
}

// App bundles the wired handlers and session context for the host UI.
type App struct {
	Session     *session.Context
	Issue       *command.IssueVoucherHandler
	Adjust      *command.AdjustCommendationsHandler
	Toggle      *command.ToggleRedeemedHandler
	Rename      *command.RenameStudentHandler
	Students    *query.GetStudentHandler
	Eligibility *query.GetEligibilityHandler
	Vouchers    *query.ListVouchersHandler
}

// openStore opens the configured storage backend.
func openStore(ctx context.Context, cfg *config.Config) (kv.Store, func(), error) {
	switch cfg.Storage {
	case config.StorageMemory:
		return kv.NewMemory(), func() {}, nil

	case config.StorageFile:
		s, err := file.Open(cfg.FilePath)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { _ = s.Close() }, nil

	case config.StorageRedis:
		rc := redisstore.DefaultConfig()
		rc.Host = cfg.RedisHost
		rc.Port = cfg.RedisPort
		rc.Password = cfg.RedisPass
		rc.DB = cfg.RedisDB
		rc.DialTimeout = cfg.RedisTimeout
		s, err := redisstore.New(rc)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { _ = s.Close() }, nil

	case config.StoragePostgres:
		s, err := postgres.New(ctx, postgres.DefaultConfig(cfg.PostgresURL))
		if err != nil {
			return nil, nil, err
		}
		return s, func() { s.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage)
	}
}
