// Command seed creates and populates the operational source database with a
// reproducible synthetic B2B dataset.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/Sha661nk/B2B-ETL-Pipeline/internal/config"
	"github.com/Sha661nk/B2B-ETL-Pipeline/internal/seed"
)

func main() {
	opts := seed.DefaultOptions()

	dsn := flag.String("dsn", "", "source database DSN (defaults to env "+config.EnvSourceDSN+")")
	create := flag.Bool("create", true, "create source tables if they do not exist")
	flag.Int64Var(&opts.Seed, "seed", opts.Seed, "random seed; same seed reproduces the same dataset")
	flag.IntVar(&opts.Companies, "companies", opts.Companies, "number of companies and suppliers")
	flag.IntVar(&opts.Customers, "customers", opts.Customers, "number of end customers")
	flag.IntVar(&opts.Products, "products", opts.Products, "number of products")
	flag.IntVar(&opts.Orders, "orders", opts.Orders, "number of orders")
	flag.IntVar(&opts.Campaigns, "campaigns", opts.Campaigns, "number of marketing campaigns")
	flag.IntVar(&opts.WeblogEntries, "weblog", opts.WeblogEntries, "number of weblog entries")
	flag.Parse()

	_ = godotenv.Load()

	target := *dsn
	if target == "" {
		target = os.Getenv(config.EnvSourceDSN)
	}
	if target == "" {
		fmt.Fprintf(os.Stderr, "no DSN: pass -dsn or set %s\n", config.EnvSourceDSN)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, target)
	if err != nil {
		log.Fatalf("connect: %v", err)
	}
	defer pool.Close()

	if *create {
		if err := seed.EnsureTables(ctx, pool); err != nil {
			log.Fatalf("%v", err)
		}
	}
	if err := seed.New(pool, opts.Seed, log.Default()).Run(ctx, opts); err != nil {
		log.Fatalf("%v", err)
	}
}
