package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/pokebase/backend/internal/adapter/postgres"
	"github.com/pokebase/backend/internal/adapter/postgres/catalog"
	"github.com/pokebase/backend/internal/adapter/provider/pokeapi"
	"github.com/pokebase/backend/internal/app"
	"github.com/pokebase/backend/internal/app/seeder"
	"github.com/pokebase/backend/internal/config"
)

// Repo must satisfy the pipeline's storage surface.
var _ seeder.CatalogRepo = (*catalog.Repo)(nil)

func main() {
	var (
		configPath  string
		seederPath  string
		phases      []string
		listPhases  bool
		dryRun      bool
		showVersion bool
	)
	pflag.StringVar(&configPath, "config", "", "path to application config file")
	pflag.StringVar(&seederPath, "seeder-config", "", "path to seeder config file")
	pflag.StringSliceVar(&phases, "phase", nil, "run only the named phases (repeatable)")
	pflag.BoolVar(&listPhases, "list-phases", false, "print phase names and exit")
	pflag.BoolVar(&dryRun, "dry-run", false, "crawl and report without writing")
	pflag.BoolVar(&showVersion, "version", false, "print version and exit")
	pflag.Parse()

	if showVersion {
		fmt.Println(app.BuildVersion())
		return
	}

	if err := run(configPath, seederPath, phases, listPhases, dryRun); err != nil {
		fmt.Fprintln(os.Stderr, "seeder:", err)
		os.Exit(1)
	}
}

func run(configPath, seederPath string, phases []string, listPhases, dryRun bool) error {
	if configPath != "" {
		os.Setenv("CONFIG_PATH", configPath)
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	seedCfg, err := seeder.LoadConfig(seederPath)
	if err != nil {
		return err
	}
	if dryRun {
		seedCfg.DryRun = true
	}

	logger := app.NewLogger(cfg.Log)
	logger.Info("seeder starting", "version", app.BuildVersion())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	txm := postgres.NewTxManager(pool)
	repo := catalog.New(pool, txm, logger)

	stats := seeder.NewStats()
	cache := pokeapi.NewCache()
	client, err := pokeapi.NewClient(pokeapi.Config{
		BaseURL:        seedCfg.BaseURL,
		Strategy:       pokeapi.Strategy(seedCfg.Transport),
		ProxyBaseURL:   seedCfg.ProxyBaseURL,
		TunnelHost:     seedCfg.TunnelHost,
		TunnelPort:     seedCfg.TunnelPort,
		TunnelUser:     seedCfg.TunnelUser,
		TunnelPassword: seedCfg.TunnelPassword,
		RetryLimit:     seedCfg.RetryLimit,
		RetryDelay:     seedCfg.RetryDelay,
		PacingDelay:    seedCfg.PacingDelay,
		PageSize:       seedCfg.PageSize,
		MaxPages:       seedCfg.MaxPages,
	}, cache, stats, logger)
	if err != nil {
		return err
	}

	pipeline := seeder.New(*seedCfg, client, repo, stats, logger, cache.Purge)

	if listPhases {
		fmt.Println(strings.Join(pipeline.PhaseNames(), "\n"))
		return nil
	}

	if err := pipeline.Run(ctx, phases); err != nil {
		logger.Error("seeding run failed", "error", err)
		fmt.Fprint(os.Stderr, pipeline.Ledger().Summary())
		return err
	}

	fmt.Fprint(os.Stderr, pipeline.Ledger().Summary())
	return nil
}
