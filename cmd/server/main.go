package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iota-uz/refconsole/internal/server"
	"github.com/iota-uz/refconsole/modules"
	"github.com/iota-uz/refconsole/modules/usergroups/services"
	"github.com/iota-uz/refconsole/pkg/application"
	"github.com/iota-uz/refconsole/pkg/configuration"
	"github.com/iota-uz/refconsole/pkg/eventbus"
	"github.com/iota-uz/refconsole/pkg/intl"
	"github.com/iota-uz/refconsole/pkg/logging"
	"github.com/iota-uz/refconsole/pkg/metrics"
	"github.com/iota-uz/refconsole/pkg/refapi"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			configuration.Use().Unload()
			log.Println(r)
			debug.PrintStack()
			os.Exit(1)
		}
	}()

	conf := configuration.Use()
	logger := conf.Logger()
	defer conf.Unload()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if conf.OpenTelemetry.Enabled {
		tracingCleanup := logging.SetupTracing(ctx, conf.OpenTelemetry.ServiceName, conf.OpenTelemetry.TempoURL)
		defer tracingCleanup()
		logger.Info("OpenTelemetry tracing enabled, exporting to Tempo at " + conf.OpenTelemetry.TempoURL)
	}

	client, err := refapi.NewClient(refapi.Options{
		BaseURL:         conf.Upstream.BaseURL,
		Authorization:   conf.Upstream.Authorization,
		Timeout:         conf.Upstream.Timeout,
		RequestIDHeader: conf.RequestIDHeader,
	})
	if err != nil {
		panic(err)
	}

	// The database only backs the action log.
	var pool *pgxpool.Pool
	if conf.ActionLogEnabled {
		connectCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		pool, err = pgxpool.New(connectCtx, conf.Database.Opts)
		cancel()
		if err != nil {
			panic(err)
		}
		defer pool.Close()
	}

	app := application.New(&application.ApplicationOptions{
		Pool:     pool,
		Bundle:   application.LoadBundle(),
		EventBus: eventbus.NewEventPublisher(logger),
		Logger:   logger,
	})
	app.RegisterLocaleFiles(&intl.LocaleFiles)
	if err := modules.Load(app, modules.BuiltInModules(conf, client)...); err != nil {
		log.Fatalf("failed to load modules: %v", err)
	}
	if pool != nil {
		if err := app.Migrations().Run(ctx); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
	}

	app.RegisterControllers(metrics.NewHealthController())
	if conf.Prometheus.Enabled {
		app.RegisterControllers(metrics.NewPrometheusController(conf.Prometheus.Path))
	}

	memberships := app.Service(services.MembershipService{}).(*services.MembershipService)
	go memberships.RunSweeper(ctx, time.Minute)

	serverInstance, err := server.Default(&server.DefaultOptions{
		Logger:        logger,
		Configuration: conf,
		Application:   app,
		Pool:          pool,
	})
	if err != nil {
		log.Fatalf("failed to create server: %v", err)
	}
	log.Printf("Listening on: %s\n", conf.SocketAddress)
	if err := serverInstance.Start(ctx, conf.SocketAddress); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
