package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	currencieshttp "service-currencies/internal/api/http/currencies"
	"service-currencies/internal/api/http/middleware"
	rateshttp "service-currencies/internal/api/http/rates"
	usershttp "service-currencies/internal/api/http/users"
	"service-currencies/internal/clients/cbr"
	"service-currencies/internal/logging"
	"service-currencies/internal/repository/db"
	"service-currencies/internal/repository/migrations"
	currsvc "service-currencies/internal/service/currencies"
	"service-currencies/internal/service/logger"
	ratesvc "service-currencies/internal/service/rates"
	usersvc "service-currencies/internal/service/users"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context) error {
	// env
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("не удалось загрузить конфиг: %w", err)
	}

	logging.Init(cfg.Debug)
	defer logging.Sync()

	// DB
	bdb, err := db.Open(cfg.DBType, cfg.DBDSN)
	if err != nil {
		return fmt.Errorf("не удалось подключиться к БД: %w", err)
	}
	defer func() { _ = bdb.Close() }()

	dbCtx, cancelDB := context.WithTimeout(ctx, 5*time.Second)
	defer cancelDB()
	if err := migrations.New(bdb, cfg.DBType).Setup(dbCtx); err != nil {
		return fmt.Errorf("ensure tables: %w", err)
	}

	// storages
	currencyStorage := db.NewCurrencyStorage(bdb)
	userStorage := db.NewUserStorage(bdb)
	linkStorage := db.NewUserCurrencyStorage(bdb)
	reqLogStorage := db.NewRequestLogStorage(bdb)

	// services
	currencyService := currsvc.New(cbr.New(cfg.FeedURL), currencyStorage, linkStorage)
	userService := usersvc.New(userStorage)
	ratesService := ratesvc.New(currencyStorage)
	reqLogger := logger.New(reqLogStorage)

	if err := userService.Seed(ctx, cfg.SeedUsers); err != nil {
		return fmt.Errorf("seed users: %w", err)
	}

	// instant fetch
	if err := currencyService.SyncFromFeed(ctx, cfg.Codes); err != nil {
		logging.Warn("initial sync failed", zap.Error(err))
	} else {
		logging.Info("rates updated", zap.Strings("codes", cfg.Codes))
	}

	// cron
	loc, err := time.LoadLocation(cfg.Location)
	if err != nil {
		return fmt.Errorf("load location %s: %w", cfg.Location, err)
	}
	scheduler := cron.New(
		cron.WithLocation(loc),
		cron.WithParser(cron.NewParser(cron.Minute|cron.Hour|cron.Dom|cron.Month|cron.Dow)),
	)

	// HTTP
	router := mux.NewRouter()
	router.Use(middleware.RequestID, middleware.Audit(reqLogger))
	currencieshttp.New(currencyService, cfg.Codes).Register(router)
	usershttp.New(userService).Register(router)
	rateshttp.New(ratesService).Register(router)

	g, gctx := errgroup.WithContext(ctx)

	_, err = scheduler.AddFunc(cfg.CronSpec, func() {
		if err := currencyService.SyncFromFeed(gctx, cfg.Codes); err != nil {
			logging.Warn("scheduled sync failed", zap.Error(err))
		} else {
			logging.Info("rates updated", zap.Strings("codes", cfg.Codes))
		}
	})
	if err != nil {
		return fmt.Errorf("add cron func: %w", err)
	}

	g.Go(func() error {
		return runCron(gctx, scheduler)
	})

	g.Go(func() error {
		return serveHTTP(gctx, ":"+cfg.HTTPPort, router)
	})

	logging.Info("running, stop with Ctrl+C / SIGTERM")
	return g.Wait()
}

func runCron(ctx context.Context, c *cron.Cron) error {
	c.Start()
	defer func() {
		stopCtx := c.Stop()
		<-stopCtx.Done()
	}()

	<-ctx.Done()
	return nil
}

func serveHTTP(ctx context.Context, addr string, h http.Handler) error {
	srv := &http.Server{Addr: addr, Handler: h}
	go func() {
		<-ctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutCtx)
	}()

	logging.Info("HTTP listening", zap.String("addr", addr))
	err := srv.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
