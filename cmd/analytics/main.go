package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/iIonel/EventReport/internal/analytics"
	"github.com/iIonel/EventReport/internal/client"
	"github.com/iIonel/EventReport/internal/config"
	"github.com/iIonel/EventReport/internal/models"
	"github.com/iIonel/EventReport/pkg/logger"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.LoadClientConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	format := FormatJSON
	follow := false
	flag.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "REST API base url")
	flag.StringVar(&cfg.Token, "token", cfg.Token, "API key sent as Bearer token")
	flag.StringVar(&cfg.Range, "range", cfg.Range, "time range: 7d, 30d, 90d or all")
	flag.StringVar(&cfg.Timezone, "tz", cfg.Timezone, "timezone for month, weekday and hour buckets")
	flag.StringVar(&cfg.Schedule, "schedule", cfg.Schedule, `cron expression for repeated runs, e.g. "@every 5m"`)
	flag.DurationVar(&cfg.HTTPTimeout, "timeout", cfg.HTTPTimeout, "HTTP request timeout")
	flag.StringVar(&format, "format", format, "output format: json (analytics report) or geojson (event map)")
	flag.BoolVar(&follow, "follow", follow, "keep running and refresh on every pushed event")
	flag.Parse()

	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, format, follow, log); err != nil {
		fmt.Fprintln(os.Stderr, client.UserMessage(err))
		log.WithError(err).Debug("Analytics run failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.ClientConfig, format string, follow bool, log *logrus.Logger) error {
	timeRange, err := analytics.ParseTimeRange(cfg.Range)
	if err != nil {
		return err
	}
	loc, err := config.LoadLocation(cfg.Timezone)
	if err != nil {
		return err
	}

	session := client.NewSession()
	if cfg.Token != "" {
		if err := session.SignIn(cfg.Token); err != nil {
			return err
		}
	}

	api := client.New(cfg.BaseURL,
		client.WithTimeout(cfg.HTTPTimeout),
		client.WithCredentials(session),
		client.WithLogger(log),
	)
	fetcher := analytics.NewFetcher(api, log)
	loader := analytics.NewLoader(fetcher, log, analytics.WithLocation(loc))

	r, err := newRunner(fetcher, loader, timeRange, format, os.Stdout, log)
	if err != nil {
		return err
	}

	if cfg.Schedule == "" && !follow {
		return r.runOnce(ctx)
	}

	if follow {
		feed, err := client.NewFeed(cfg.BaseURL, session, log)
		if err != nil {
			return err
		}
		go func() {
			err := feed.Run(ctx, func(event models.Event) { r.onPush(ctx, event) })
			if err != nil && ctx.Err() == nil {
				log.WithError(err).Error("Live feed stopped")
			}
		}()
		log.WithField("url", feed.URL()).Info("Following live events")
	}

	if err := r.runOnce(ctx); err != nil {
		log.WithError(err).Error(client.UserMessage(err))
	}

	if cfg.Schedule != "" {
		scheduler := cron.New(cron.WithLocation(loc))
		_, err := scheduler.AddFunc(cfg.Schedule, func() {
			if err := r.runOnce(ctx); err != nil {
				log.WithError(err).Error(client.UserMessage(err))
			}
		})
		if err != nil {
			return fmt.Errorf("invalid schedule %q: %w", cfg.Schedule, err)
		}
		scheduler.Start()
		log.WithField("schedule", cfg.Schedule).Info("Analytics scheduler started")
		defer func() { <-scheduler.Stop().Done() }()
	}

	<-ctx.Done()
	log.Info("Analytics stopped")
	return nil
}
