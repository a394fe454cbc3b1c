package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"

	"github.com/totegamma/rerum-inbox/client"
	"github.com/totegamma/rerum-inbox/internal/config"
	"github.com/totegamma/rerum-inbox/internal/infra/cache"
	"github.com/totegamma/rerum-inbox/internal/infra/database"
	"github.com/totegamma/rerum-inbox/internal/infra/gateway"
	"github.com/totegamma/rerum-inbox/internal/infra/memory"
	"github.com/totegamma/rerum-inbox/internal/infra/repository"
	"github.com/totegamma/rerum-inbox/internal/present/rest"
	inboxmw "github.com/totegamma/rerum-inbox/internal/present/rest/middleware"
	"github.com/totegamma/rerum-inbox/internal/service"
	"github.com/totegamma/rerum-inbox/internal/telemetry"
	"github.com/totegamma/rerum-inbox/internal/usecase"
)

var version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to the configuration file")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	conf, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if conf.Server.EnableTrace {
		shutdown, err := telemetry.SetupTraceProvider(ctx, conf.Server.TraceEndpoint, version)
		if err != nil {
			slog.Error("failed to setup tracing", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = shutdown(ctx)
		}()
	}

	store, err := newStore(conf.Server)
	if err != nil {
		slog.Error("failed to open store", slog.String("store", conf.Server.Store), slog.String("error", err.Error()))
		os.Exit(1)
	}

	var readCache cache.Cache
	if conf.Server.MemcachedAddr != "" {
		readCache = cache.NewMemcacheCache(database.NewMemcached(conf.Server.MemcachedAddr), conf.Server.CacheTTL)
	} else {
		readCache = cache.NewLocalCache(conf.Server.CacheTTL)
	}
	store = cache.NewCachedStore(store, readCache)

	var notifier usecase.AnnouncementNotifier
	var subscriber rest.Subscriber
	if conf.Server.RedisAddr != "" {
		rdb, err := database.NewRedis(conf.Server.RedisAddr, conf.Server.RedisPassword, conf.Server.RedisDB)
		if err != nil {
			slog.Error("failed to connect redis", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer rdb.Close()
		signalService := service.NewSignalService(rdb)
		notifier = signalService
		subscriber = signalService
	}

	inboxUC := usecase.NewInboxUsecase(conf.Inbox, store, notifier)
	handler := rest.NewHandler(inboxUC, subscriber)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	if conf.Server.EnableTrace {
		e.Use(otelecho.Middleware(telemetry.ServiceName))
	}
	if conf.Server.EnableMetrics {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		e.Use(inboxmw.NewMetrics(reg).Middleware)
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	}

	handler.RegisterRoutes(e)

	go func() {
		slog.Info(
			"inbox listening",
			slog.String("listen", conf.Server.Listen),
			slog.String("store", conf.Server.Store),
			slog.String("idRoot", conf.Inbox.IDRoot),
		)
		if err := e.Start(conf.Server.Listen); err != nil && err != http.ErrServerClosed {
			slog.Error("server stopped", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown failed", slog.String("error", err.Error()))
	}
}

func newStore(conf config.Server) (usecase.AnnouncementStore, error) {
	switch conf.Store {
	case config.StoreFirebase:
		return gateway.NewFirebaseGateway(client.New(conf.FirebaseURL), conf.FirebaseTypeField), nil
	case config.StorePostgres:
		db, err := database.NewPostgres(conf.PostgresDsn)
		if err != nil {
			return nil, err
		}
		if err := database.MigratePostgres(db); err != nil {
			return nil, err
		}
		return repository.NewAnnouncementRepository(db), nil
	default:
		return memory.NewStore(), nil
	}
}
