package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"erpload/internal/config"
	"erpload/internal/etl"
	"erpload/internal/metrics"
	"erpload/internal/metrics/datadog"
	"erpload/internal/metrics/prompush"

	// register all backends with the storage factory.
	// config specifies which to use but we need to build in support for all of them.
	_ "erpload/internal/storage/all"
)

// main is the entry point for the loader binary. It loads the pipeline
// config, optionally initializes a metrics backend, and executes the run.
func main() {
	var (
		cfgPath           string
		metricsBackendFlg string
		pushGatewayURLFlg string
		dogstatsdAddrFlg  string
		validateOnly      bool
	)

	flag.StringVar(&cfgPath, "config", "configs/pipelines/erp.json", "pipeline config JSON path")
	flag.StringVar(&metricsBackendFlg, "metrics-backend", "", "metrics backend to use (pushgateway, datadog, none)")
	flag.StringVar(&pushGatewayURLFlg, "pushgateway-url", "", "Pushgateway base URL (overrides env PUSHGATEWAY_URL)")
	flag.StringVar(&dogstatsdAddrFlg, "dogstatsd-addr", "", "DogStatsD address (overrides env DOGSTATSD_ADDR)")
	flag.BoolVar(&validateOnly, "validate", false, "validate the configuration and exit")
	verbose := flag.Bool("v", false, "enable verbose logs")

	flag.Parse()

	// .env is optional; environment already set wins.
	if err := godotenv.Load(); err == nil && *verbose {
		log.Printf("env: loaded .env")
	}

	p, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("%v", err)
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
	if validateOnly {
		log.Printf("Configuration is valid: %v", cfgPath)
		os.Exit(0)
	}

	setupMetrics(p.Job, metricsBackendFlg, pushGatewayURLFlg, dogstatsdAddrFlg, *verbose)
	defer func() {
		if err := metrics.Flush(); err != nil {
			log.Printf("metrics: flush error: %v", err)
		}
	}()

	ctx := context.Background()
	start := time.Now()

	sum, err := etl.Run(ctx, p)
	if err != nil {
		log.Fatalf("%v", err)
	}
	printSummary(sum)

	if *verbose {
		log.Printf("completed in %s", time.Since(start).Truncate(time.Millisecond))
	}
	if sum.Failed() {
		os.Exit(1)
	}
}

// setupMetrics installs the requested metrics backend. Flag wins over env;
// unknown or failed backends degrade to the nop default.
func setupMetrics(job, backendName, gwURLFlag, ddAddrFlag string, verbose bool) {
	if backendName == "" {
		backendName = os.Getenv("METRICS_BACKEND")
	}
	if job == "" {
		job = "erpload"
	}

	switch backendName {
	case "pushgateway":
		gwURL := gwURLFlag
		if gwURL == "" {
			gwURL = os.Getenv("PUSHGATEWAY_URL")
		}
		if gwURL == "" {
			gwURL = "http://localhost:9091"
		}

		b, err := prompush.NewBackend(job, gwURL)
		if err != nil {
			log.Printf("metrics: failed to init prom push backend: %v; using nop", err)
			return
		}
		log.Printf("metrics: backend=pushgateway url=%v job=%v", gwURL, job)
		metrics.SetBackend(b)

	case "datadog":
		addr := ddAddrFlag
		if addr == "" {
			addr = os.Getenv("DOGSTATSD_ADDR")
		}
		if addr == "" {
			addr = "127.0.0.1:8125"
		}

		b, err := datadog.NewBackend(datadog.Config{
			Addr:       addr,
			Namespace:  "erpload.",
			GlobalTags: []string{"job:" + job},
		})
		if err != nil {
			log.Printf("metrics: failed to init datadog backend: %v; using nop", err)
			return
		}
		log.Printf("metrics: backend=datadog addr=%v job=%v", addr, job)
		metrics.SetBackend(b)

	case "", "none":
		// metrics disabled; nop backend remains
		if verbose {
			log.Printf("metrics: disabled (backend=%q)", backendName)
		}

	default:
		log.Printf("metrics: unknown backend %q; metrics disabled", backendName)
	}
}

// printSummary writes the per-entity outcome table to stdout.
func printSummary(s etl.Summary) {
	fmt.Printf("run %s (%s) finished in %s\n",
		s.RunID, s.Job, s.Elapsed.Truncate(time.Millisecond))
	for _, e := range s.Entities {
		if e.Err != nil {
			fmt.Printf("  %-12s FAILED: %v\n", e.Entity, e.Err)
			continue
		}
		fmt.Printf("  %-12s parsed=%d skipped=%d accepted=%d rejected=%d inserted=%d\n",
			e.Entity, e.Parsed, e.ParseSkipped, e.Accepted, e.RejectedTotal(), e.Inserted)
		for reason, n := range e.Rejected {
			if n > 0 {
				fmt.Printf("    %-10s %s=%d\n", "", reason, n)
			}
		}
	}
}
