package main

import (
	"context"
	"database/sql"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"cuenca_gateway/internal/adapters/observability"
	"cuenca_gateway/internal/adapters/soap"
	"cuenca_gateway/internal/app"
	"cuenca_gateway/internal/shared"
	mysqlrepo "cuenca_gateway/internal/storage/mysql"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := shared.Load()

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel, "sweeper")
	observability.Serve(cfg.MetricsAddr, observability.InitRegistry())

	log.Info().
		Str("endpoint", cfg.Endpoint(app.SvcRelaciones)).
		Int("workers", cfg.SweepWorkers).
		Dur("interval", cfg.SweepInterval).
		Msg("sweeper starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		log.Fatal().Err(err).Msg("schema check failed")
	}

	clients := app.Clients(cfg.Endpoint,
		soap.WithTimeout(cfg.SOAPTimeout),
		soap.WithStrict(cfg.SOAPStrict),
		soap.WithRateLimit(cfg.SOAPRPS),
		soap.WithLogger(log.Logger))
	g := app.NewGateway(func(svc string) *soap.Client { return clients[svc] }, nil, 0)
	sw := app.NewSweeper(g, repo, cfg.SweepWorkers)

	// without an interval the sweeper runs once, e.g. from cron
	if cfg.SweepInterval <= 0 {
		if _, err := sw.Run(ctx); err != nil {
			log.Fatal().Err(err).Msg("sweep failed")
		}
		return
	}

	t := time.NewTicker(cfg.SweepInterval)
	defer t.Stop()
	for {
		if _, err := sw.Run(ctx); err != nil && ctx.Err() == nil {
			log.Error().Err(err).Msg("sweep failed")
		}
		select {
		case <-ctx.Done():
			log.Info().Msg("sweeper stopped")
			return
		case <-t.C:
		}
	}
}
