package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/spf13/cobra"

	"github.com/questforge/questforge/internal/config"
	"github.com/questforge/questforge/internal/notify"
	"github.com/questforge/questforge/internal/orchestrators/account"
	"github.com/questforge/questforge/internal/orchestrators/dungeon"
	"github.com/questforge/questforge/internal/orchestrators/party"
	"github.com/questforge/questforge/internal/orchestrators/shop"
	"github.com/questforge/questforge/internal/orchestrators/tasks"
	"github.com/questforge/questforge/internal/pkg/clock"
	"github.com/questforge/questforge/internal/pkg/idgen"
	qredis "github.com/questforge/questforge/internal/redis"
	"github.com/questforge/questforge/internal/repositories/world"
	"github.com/questforge/questforge/internal/storage"
)

// app wires the whole stack for one CLI invocation: load state, sweep
// missed deadlines, run the command, flush.
type app struct {
	cfg    *config.Config
	log    *slog.Logger
	client qredis.Client
	repo   *world.Repository
	rec    *notify.Recorder

	account account.Service
	tasks   tasks.Service
	party   party.Service
	shop    shop.Service
	dungeon dungeon.Service
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))

	client, err := qredis.NewClient(cfg.RedisAddr, nil)
	if err != nil {
		return nil, err
	}

	store, err := storage.NewRedis(&storage.Config{
		Client:    client,
		KeyPrefix: cfg.RedisKeyPrefix,
	})
	if err != nil {
		return nil, err
	}

	repo, err := world.New(&world.Config{Store: store, Logger: log})
	if err != nil {
		return nil, err
	}
	repo.Load(ctx)

	rec := notify.NewRecorder()
	sink := notify.Multi{rec, &notify.Slog{Logger: log}}
	clk := clock.New()

	a := &app{cfg: cfg, log: log, client: client, repo: repo, rec: rec}

	if a.account, err = account.NewOrchestrator(&account.Config{
		Repo: repo, Notifier: sink, Logger: log,
	}); err != nil {
		return nil, err
	}
	if a.tasks, err = tasks.NewOrchestrator(&tasks.Config{
		Repo: repo, IDGenerator: idgen.NewPrefixed("task"), Clock: clk,
		Notifier: sink, Logger: log,
	}); err != nil {
		return nil, err
	}
	if a.party, err = party.NewOrchestrator(&party.Config{
		Repo: repo, IDGenerator: idgen.NewPrefixed("party"),
		Notifier: sink, Logger: log,
	}); err != nil {
		return nil, err
	}
	if a.shop, err = shop.NewOrchestrator(&shop.Config{
		Repo: repo, Notifier: sink, Logger: log,
	}); err != nil {
		return nil, err
	}
	// Quest ids have no ordering requirement, unlike task ids.
	if a.dungeon, err = dungeon.NewOrchestrator(&dungeon.Config{
		Repo: repo, IDGenerator: idgen.NewUUID("quest"), Clock: clk,
		Roller: dice.DefaultRoller, Notifier: sink, Logger: log,
		CounterDelay: cfg.CounterDelay,
	}); err != nil {
		return nil, err
	}

	return a, nil
}

// sweep applies any deadline penalties that accrued since the last run
func (a *app) sweep(ctx context.Context) {
	if _, err := a.tasks.Sweep(ctx, &tasks.SweepInput{}); err != nil {
		a.log.Warn("deadline sweep failed", "error", err)
	}
}

// close drains pending writes and disconnects
func (a *app) close(ctx context.Context) {
	a.repo.Close(ctx)
	if err := a.client.Close(); err != nil {
		a.log.Warn("failed to close redis client", "error", err)
	}
}

// printNotifications shows everything the engine had to say, in order
func (a *app) printNotifications() {
	for _, n := range a.rec.All() {
		prefix := map[notify.Kind]string{
			notify.KindSuccess: "[+]",
			notify.KindError:   "[!]",
			notify.KindInfo:    "[i]",
			notify.KindLevelUp: "[*]",
		}[n.Kind]
		line := fmt.Sprintf("%s %s", prefix, n.Message)
		if n.Coins > 0 || n.Exp > 0 {
			line += fmt.Sprintf(" (+%d coins, +%d XP)", n.Coins, n.Exp)
		}
		fmt.Println(line)
	}
}

// run wraps a command body with the standard lifecycle
func run(fn func(ctx context.Context, a *app, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.close(ctx)

		a.sweep(ctx)
		err = fn(ctx, a, args)
		a.printNotifications()
		return err
	}
}
