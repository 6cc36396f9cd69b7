package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/alexanderramin/contractwatch/internal/benchmark"
	"github.com/alexanderramin/contractwatch/internal/cli"
	"github.com/alexanderramin/contractwatch/internal/config"
	"github.com/alexanderramin/contractwatch/internal/db"
	"github.com/alexanderramin/contractwatch/internal/repository"
	"github.com/alexanderramin/contractwatch/internal/scoring"
	"github.com/alexanderramin/contractwatch/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logger := config.NewLogger(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	// Open database
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	contractRepo := repository.NewSQLiteContractRepo(database)
	vendorRepo := repository.NewSQLiteVendorRepo(database)
	milestoneRepo := repository.NewSQLiteMilestoneRepo(database)
	paymentRepo := repository.NewSQLitePaymentRepo(database)
	changeOrderRepo := repository.NewSQLiteChangeOrderRepo(database)
	issueRepo := repository.NewSQLiteIssueRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	// Engines are stateless apart from config and clock
	engine := scoring.NewContractEngine(cfg.Scoring)
	generator := scoring.NewAlertGenerator(scoring.DefaultAlertRules(cfg.Scoring), scoring.SystemClock{}, logger)
	bench := benchmark.NewEngine(benchmark.DefaultTables())
	observer := service.NewLogUseCaseObserver(logger)

	app := &cli.App{
		Contracts:  service.NewContractService(contractRepo, milestoneRepo, paymentRepo, changeOrderRepo, issueRepo, engine, generator, uow, observer),
		Scoring:    service.NewScoringService(engine, uow, observer),
		Vendors:    service.NewVendorService(vendorRepo, contractRepo, milestoneRepo, engine, uow, observer),
		Alerts:     service.NewAlertService(contractRepo, milestoneRepo, engine, generator, uow, observer),
		Benchmarks: service.NewBenchmarkService(contractRepo, paymentRepo, vendorRepo, bench, observer),
		Stats:      service.NewStatsService(contractRepo, vendorRepo, milestoneRepo, issueRepo, changeOrderRepo, engine),
		Import:     service.NewImportService(uow, observer),
		Export:     service.NewExportService(contractRepo, vendorRepo, milestoneRepo, engine, generator, observer),
	}

	// Prompts and the dashboard need a terminal on both ends.
	app.IsInteractive = func() bool {
		return isTerminal(os.Stdin.Fd()) && isTerminal(os.Stdout.Fd())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Execute root command
	return cli.NewRootCmd(app).ExecuteContext(ctx)
}

func isTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
