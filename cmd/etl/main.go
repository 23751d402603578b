package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/Sha661nk/B2B-ETL-Pipeline/internal/config"
	"github.com/Sha661nk/B2B-ETL-Pipeline/internal/metrics"
	"github.com/Sha661nk/B2B-ETL-Pipeline/internal/metrics/prompush"
	"github.com/Sha661nk/B2B-ETL-Pipeline/internal/pipeline"
	"github.com/Sha661nk/B2B-ETL-Pipeline/internal/storage"

	// register all backends with the storage factory.
	// config specifies which to use but we need to build in support for all of them.
	_ "github.com/Sha661nk/B2B-ETL-Pipeline/internal/storage/all"
)

// main is the entry point for the warehouse refresh binary. It loads the
// pipeline config, optionally initializes a metrics backend, and executes
// one full refresh.
func main() {
	var (
		cfgPath           string
		metricsBackendFlg string
		pushGatewayURLFlg string
		validate          bool
	)

	flag.StringVar(&cfgPath, "config", "configs/pipeline.json", "pipeline config JSON path")
	flag.StringVar(&metricsBackendFlg, "metrics-backend", "", "metrics backend to use (prompush, none); overrides the config file")
	flag.StringVar(&pushGatewayURLFlg, "pushgateway-url", "", "Pushgateway base URL; overrides the config file and env PUSHGATEWAY_URL")
	flag.BoolVar(&validate, "validate", false, "validate the configuration and exit")
	verbose := flag.Bool("v", false, "enable verbose logs")

	flag.Parse()

	// A local .env can carry ETL_SOURCE_DSN / ETL_TARGET_DSN overrides.
	// Missing file is fine.
	_ = godotenv.Load()

	p, err := config.Load(cfgPath)
	if err != nil {
		fatalf("%v", err)
	}

	// Validate pipeline config.
	issues := config.ValidatePipeline(p)
	hasError := false
	for _, iss := range issues {
		fmt.Fprintf(os.Stderr, "%s: %s: %s\n", iss.Severity, iss.Path, iss.Message)
		if iss.Severity == config.SeverityError {
			hasError = true
		}
	}
	if hasError {
		log.Printf("Configuration is invalid: %v", cfgPath)
		os.Exit(1)
	}

	// If validate flag is set, only validate the configuration and exit
	if validate {
		log.Printf("Configuration is valid: %v", cfgPath)
		os.Exit(0)
	}

	// Decide metrics backend: flag → config → env.
	backendName := metricsBackendFlg
	if backendName == "" {
		backendName = p.Metrics.Backend
	}
	if backendName == "" {
		backendName = os.Getenv("METRICS_BACKEND")
	}
	switch backendName {
	case "prompush":
		// Decide Pushgateway URL: flag → config → env.
		gwURL := pushGatewayURLFlg
		if gwURL == "" {
			gwURL = p.Metrics.PushgatewayURL
		}
		if gwURL == "" {
			gwURL = os.Getenv("PUSHGATEWAY_URL")
		}
		if gwURL == "" {
			gwURL = "http://localhost:9091"
		}

		jobName := p.Job
		if jobName == "" {
			jobName = "etl_job"
		}

		log.Printf("metrics: url=%v backend=%v job_name=%v", gwURL, backendName, jobName)
		metrics.SetBackend(prompush.New(gwURL, jobName))
		defer func() {
			if err := metrics.Flush(); err != nil {
				log.Printf("metrics: flush error: %v", err)
			}
		}()

	case "", "none":
		// metrics disabled; nop backend remains
		if *verbose {
			log.Printf("metrics: disabled (backend=%q)", backendName)
		}

	default:
		log.Printf("metrics: unknown backend %q; metrics disabled", backendName)
	}

	ctx := context.Background()
	start := time.Now()

	if *verbose {
		log.Printf("pipeline: job=%s target=%s backends=%v", p.Job, p.Target.Kind, storage.ListKinds())
	}

	res, err := pipeline.New(p, log.Default()).Run(ctx)
	if err != nil {
		log.Fatalf("%v", err)
	}

	for table, n := range res.TableRows {
		log.Printf("loaded: table=%s rows=%d", table, n)
	}
	if *verbose {
		log.Printf("completed run=%s in %s", res.RunID, time.Since(start).Truncate(time.Millisecond))
	}
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
