package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/gurinder1988/footyfeed/pkg/cache"
	"github.com/gurinder1988/footyfeed/pkg/db"
	"github.com/gurinder1988/footyfeed/pkg/fetch"
	"github.com/gurinder1988/footyfeed/pkg/refresh"
	"github.com/gurinder1988/footyfeed/pkg/server"
	"github.com/gurinder1988/footyfeed/pkg/settings"
	"github.com/gurinder1988/footyfeed/pkg/sources"
)

type Opts struct {
	ConfigPath string `long:"config" short:"c" default:"config.toml" env:"FOOTYFEED_CONFIG_PATH"`
	Debug      bool   `long:"debug"`
	Once       bool   `long:"once" description:"Run a single refresh, print the result and exit"`
	Check      bool   `long:"check" description:"Validate that every configured source is reachable and exit"`
}

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	log.SetFormatter(&log.TextFormatter{
		TimestampFormat: time.RFC3339,
		FullTimestamp:   true,
	})

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Parse args
	opts := Opts{}
	_, err := flags.Parse(&opts)
	if err != nil {
		log.WithError(err).Fatal("failed to parse command line arguments")
	}

	if opts.Debug {
		log.SetLevel(log.DebugLevel)
	}

	log.WithFields(log.Fields{
		"version": version,
		"commit":  commit,
		"date":    date,
	}).Info("running footyfeed")

	// Load TOML file
	log.Debugf("loading configuration %q", opts.ConfigPath)
	cfg, err := LoadConfig(opts.ConfigPath)
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration file")
	}

	if cfg.Log.Filename != "" {
		log.Infof("writing logs to %s", cfg.Log.Filename)
		log.SetOutput(&lumberjack.Logger{
			Filename:   cfg.Log.Filename,
			MaxSize:    cfg.Log.MaxSize,
			MaxBackups: cfg.Log.MaxBackups,
			MaxAge:     cfg.Log.MaxAge,
			Compress:   cfg.Log.Compress,
		})
	}

	registry := sources.NewRegistry(cfg.Sources)

	if opts.Check {
		if err := check(ctx, cfg.Fetch, registry.All()); err != nil {
			log.WithError(err).Fatal("source check failed")
		}
		return
	}

	storage, err := openStorage(cfg)
	if err != nil {
		log.WithError(err).Fatal("failed to open storage")
	}

	defer func() {
		if err := storage.Close(); err != nil {
			log.WithError(err).Error("failed to close storage")
		}
	}()

	fetcher := fetch.NewFetcher(cfg.Fetch)

	controller := refresh.New(ctx, refresh.Deps{
		Fetcher:     fetch.NewPool(fetcher, cfg.Fetch.Concurrency),
		Cache:       cache.NewStore(storage, cfg.Cache.TTL),
		Preferences: settings.NewStore(storage),
		Sources:     registry,
	})
	defer controller.Close()

	if opts.Once {
		if err := controller.Refresh().Wait(ctx); err != nil {
			log.WithError(err).Error("refresh interrupted")
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(controller.Status()); err != nil {
			log.WithError(err).Error("failed to print status")
		}
		return
	}

	group, ctx := errgroup.WithContext(ctx)

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(nil)))

	group.Go(func() error {
		defer func() {
			log.Info("shutting down cron")
			c.Stop()
		}()

		_, err := c.AddFunc(cfg.Refresh.Schedule, func() {
			log.Debug("running scheduled refresh")
			if err := controller.Refresh().Wait(ctx); err != nil {
				log.WithError(err).Debug("scheduled refresh interrupted")
			}
		})
		if err != nil {
			return err
		}

		log.Debugf("refreshing on schedule %q", cfg.Refresh.Schedule)

		// Perform initial refresh after restart
		controller.Refresh()

		c.Start()

		<-ctx.Done()
		return ctx.Err()
	})

	// Run web server
	srv := server.New(cfg.Server, controller, registry)

	group.Go(func() error {
		log.Infof("running listener at %s", srv.Addr)
		return srv.ListenAndServe()
	})

	group.Go(func() error {
		// Shutdown web server
		defer func() {
			log.Info("shutting down web server")

			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.WithError(err).Error("server shutdown failed")
			}
		}()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-stop:
			cancel()
			return nil
		}
	})

	if err := group.Wait(); err != nil && (err != context.Canceled && err != http.ErrServerClosed) {
		log.WithError(err).Error("wait error")
	}

	log.Info("gracefully stopped")
}

func openStorage(cfg *Config) (db.Storage, error) {
	switch cfg.Cache.Backend {
	case backendRedis:
		log.Debug("using redis storage")
		return db.NewRedis(cfg.Cache.RedisURL)
	default:
		log.Debugf("using badger storage at %s", cfg.Database.Dir)
		return db.NewBadger(&cfg.Database)
	}
}
