package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/billingfox/ozonator/internal/archive"
	"github.com/billingfox/ozonator/internal/cache"
	"github.com/billingfox/ozonator/internal/config"
	"github.com/billingfox/ozonator/internal/demand"
	"github.com/billingfox/ozonator/internal/repository/postgres"
	"github.com/billingfox/ozonator/internal/sales"
	"github.com/billingfox/ozonator/internal/seller"
	"github.com/billingfox/ozonator/internal/service"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Database connection string",
		Required: true,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

func buildUpdateService(cfg *config.Config) (*service.UpdateService, error) {
	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sellerClient, err := seller.NewClient(cfg.Seller)
	if err != nil {
		return nil, err
	}

	demandCache, err := cache.NewDemandCache(cfg.Cache)
	if err != nil {
		return nil, err
	}
	archiveStore, err := archive.NewStore(cfg.Archive)
	if err != nil {
		return nil, err
	}
	locker := service.NewNoopLocker()
	if cfg.Update.LockEnabled {
		rdb, err := cache.NewRedisClient(cfg.Cache)
		if err != nil {
			return nil, err
		}
		locker = service.NewRedisLocker(rdb, time.Duration(cfg.Update.LockTTLSeconds)*time.Second)
	}

	return service.NewUpdateService(
		sellerClient,
		sales.NewFetcher(sellerClient, cfg.Update.EnrichWorkers),
		postgres.NewProductRepository(db),
		postgres.NewStockRepository(db),
		postgres.NewTransitRepository(db),
		postgres.NewSalesRepository(db),
		postgres.NewUpdateInfoRepository(db),
		archiveStore,
		demandCache,
		locker,
		service.UpdateConfig{
			Cooldown: time.Duration(cfg.Update.CooldownSeconds) * time.Second,
			WaitOpts: seller.ReportWaitOptions{
				Interval:    time.Duration(cfg.Update.PollIntervalSeconds) * time.Second,
				MaxAttempts: cfg.Update.PollMaxAttempts,
			},
			SalesPeriod: time.Duration(cfg.Update.SalesPeriodDays) * 24 * time.Hour,
		},
	), nil
}

func runUpdate(c *cli.Context) error {
	cfg := config.Load()
	svc, err := buildUpdateService(cfg)
	if err != nil {
		return err
	}

	report, runErr := svc.Run(c.Context)
	if report != nil {
		out, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
	}
	return runErr
}

func printDemand(c *cli.Context) error {
	cfg := config.Load()
	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	svc := service.NewDemandService(
		postgres.NewStockRepository(db),
		postgres.NewSalesRepository(db),
		postgres.NewTransitRepository(db),
		postgres.NewProductRepository(db),
		demand.NewReconciler(demand.IdentityLabels),
		cache.NewNoopDemandCache(),
	)

	table, err := svc.Table(c.Context)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(table, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func applySchema(c *cli.Context) error {
	db, err := sql.Open("pgx", c.String("db-url"))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(c.Context); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	if err := postgres.ApplySchema(c.Context, db); err != nil {
		return err
	}
	fmt.Println("schema applied")
	return nil
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "ozonator",
		Usage: "Pull seller data and inspect the replenishment view",
		Commands: []*cli.Command{
			{
				Name:   "run",
				Usage:  "Run the full data update and print the stage report",
				Action: runUpdate,
			},
			{
				Name:   "demand",
				Usage:  "Print the reconciled demand table as JSON",
				Action: printDemand,
			},
			{
				Name:  "schema",
				Usage: "Create the database tables when missing",
				Flags: []cli.Flag{
					newDBURLFlag(),
				},
				Action: applySchema,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
