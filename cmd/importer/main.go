package main

import (
	"context"
	"flag"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iIonel/EventReport/internal/config"
	"github.com/iIonel/EventReport/internal/fema"
	"github.com/iIonel/EventReport/internal/repository"
	"github.com/iIonel/EventReport/pkg/logger"
	"github.com/iIonel/EventReport/pkg/postgres"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.LoadImporterConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	var (
		opts = options{today: 50, tomorrow: 50}
		seed uint64
	)
	flag.BoolVar(&opts.clear, "clear", false, "clear existing events before import")
	flag.BoolVar(&opts.clear, "c", false, "shorthand for -clear")
	flag.IntVar(&opts.limit, "limit", 0, "limit number of imported disasters (0 imports all)")
	flag.IntVar(&opts.limit, "l", 0, "shorthand for -limit")
	flag.BoolVar(&opts.yes, "yes", false, "skip confirmation prompts")
	flag.BoolVar(&opts.yes, "y", false, "shorthand for -yes")
	flag.IntVar(&opts.today, "today", opts.today, "number of events moved to today's date")
	flag.IntVar(&opts.today, "t", opts.today, "shorthand for -today")
	flag.IntVar(&opts.tomorrow, "tomorrow", opts.tomorrow, "number of events moved to tomorrow's date")
	flag.StringVar(&cfg.FemaURL, "fema-url", cfg.FemaURL, "FEMA disaster declarations endpoint")
	flag.DurationVar(&cfg.HTTPTimeout, "timeout", cfg.HTTPTimeout, "FEMA request timeout")
	flag.Uint64Var(&seed, "seed", 0, "random seed for locations, alert codes and dates (0 picks one)")
	flag.Parse()

	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := postgres.NewPostgresDB(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer db.Close()

	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	log.WithField("seed", seed).Debug("Random seed")

	im := &importer{
		source:      fema.NewClient(cfg.FemaURL, log, fema.WithTimeout(cfg.HTTPTimeout)),
		store:       repository.NewEventImportRepository(db),
		transformer: fema.NewTransformer(rand.New(rand.NewPCG(seed, seed>>1)), time.Now),
		in:          os.Stdin,
		out:         os.Stdout,
		now:         time.Now,
		logger:      log,
	}

	if _, err := im.run(ctx, opts); err != nil {
		log.WithError(err).Error("FEMA import failed")
		db.Close()
		stop()
		os.Exit(1)
	}
}
