package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/anrid/world-population/pkg/dashboard"
	"github.com/anrid/world-population/pkg/logger"
	"github.com/anrid/world-population/pkg/stats"
)

const (
	defaultDataFile = "WorldPopulation.csv"
	defaultAddr     = "127.0.0.1:8050"
)

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func main() {
	dataPath := flag.String("data", envOr("POPULATION_DATA", defaultDataFile), "path or URL of the population CSV / XLSX / XLS file")
	addr := flag.String("addr", envOr("POPULATION_ADDR", defaultAddr), "listen address")
	logLevel := flag.String("log-level", envOr("POPULATION_LOG_LEVEL", "info"), "debug, info, warn or error")
	debug := flag.Bool("debug", false, "shorthand for -log-level=debug")
	flag.Parse()

	if !logger.SetLevel(*logLevel) {
		logger.Warnf("unknown log level %q, using info", *logLevel)
	}
	if *debug {
		logger.SetLevel("debug")
	}

	ds, err := stats.Load(*dataPath)
	if err != nil {
		if errors.Is(err, stats.ErrEmptyDataset) {
			logger.Errorf("The dataset is empty. Please check the file %s", *dataPath)
		} else {
			logger.Errorf("error loading data: %v", err)
		}
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := dashboard.NewServer(dashboard.NewContext(ds), dashboard.DefaultRegistry(), *addr)
	if err := srv.ListenAndServe(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Errorf("error running server: %v", err)
		os.Exit(1)
	}
}
