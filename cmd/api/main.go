package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	server "cuenca_gateway/internal/adapters/http_server"
	"cuenca_gateway/internal/adapters/observability"
	redisad "cuenca_gateway/internal/adapters/redis"
	"cuenca_gateway/internal/adapters/soap"
	"cuenca_gateway/internal/app"
	"cuenca_gateway/internal/domain"
	"cuenca_gateway/internal/shared"
	mysqlrepo "cuenca_gateway/internal/storage/mysql"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel, "api")

	// soap clients, one per remote service
	clients := app.Clients(cfg.Endpoint,
		soap.WithTimeout(cfg.SOAPTimeout),
		soap.WithStrict(cfg.SOAPStrict),
		soap.WithRateLimit(cfg.SOAPRPS),
		soap.WithLogger(log.Logger))
	for svc, c := range clients {
		log.Debug().Str("service", svc).Str("endpoint", c.Endpoint()).Msg("soap endpoint")
	}

	cache, closeCache := openCache(ctx, redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB))
	defer closeCache()

	g := app.NewGateway(func(svc string) *soap.Client { return clients[svc] }, cache, cfg.CacheTTL)
	h := &server.Handlers{G: g, Details: app.NewDetailService(g, cfg.SweepWorkers)}

	// audit db is optional too: without it the admin routes are not mounted
	if cfg.MySQLDSN != "" {
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("sql.Open failed")
		}
		defer db.Close()
		if err := db.PingContext(ctx); err != nil {
			log.Warn().Err(err).Msg("db ping failed, admin routes disabled")
		} else {
			repo := mysqlrepo.New(db)
			if err := repo.EnsureSchema(ctx); err != nil {
				log.Fatal().Err(err).Msg("schema check failed")
			}
			h.Sweeper = app.NewSweeper(g, repo, cfg.SweepWorkers)
			log.Info().Msg("database connection ok")
		}
	}

	// http
	srv := server.New(server.Options{Timeout: cfg.SOAPTimeout + 15*time.Second, CORSOrigins: cfg.CORSOrigins})
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(h)

	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux(), ReadHeaderTimeout: 10 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown failed")
		}
	}()

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("http server failed")
	}
	log.Info().Msg("API stopped")
}

// openCache returns nil when Redis does not answer; the gateway then reads
// through to SOAP. The client is closed right away in that case.
func openCache(ctx context.Context, rc *redisad.Cache) (domain.Cache, func()) {
	if err := rc.Ping(ctx); err != nil {
		log.Warn().Err(err).Msg("redis unavailable, lookups are not cached")
		_ = rc.Close()
		return nil, func() {}
	}
	return rc, func() { _ = rc.Close() }
}
