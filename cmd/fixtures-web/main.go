package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/mohameedmagdii/Fotmob-Leagues-Extraction/httpapp"
	"github.com/mohameedmagdii/Fotmob-Leagues-Extraction/internal/application/service"
	"github.com/mohameedmagdii/Fotmob-Leagues-Extraction/internal/config"
	"github.com/mohameedmagdii/Fotmob-Leagues-Extraction/internal/domain/ports"
	"github.com/mohameedmagdii/Fotmob-Leagues-Extraction/internal/infrastructures/db/memory"
	"github.com/mohameedmagdii/Fotmob-Leagues-Extraction/internal/infrastructures/db/postgres"
	postgresrepo "github.com/mohameedmagdii/Fotmob-Leagues-Extraction/internal/infrastructures/db/postgres/repo"
	exportredis "github.com/mohameedmagdii/Fotmob-Leagues-Extraction/internal/infrastructures/db/redis"
	"github.com/mohameedmagdii/Fotmob-Leagues-Extraction/internal/infrastructures/fotmob"
	fotmobclient "github.com/mohameedmagdii/Fotmob-Leagues-Extraction/internal/infrastructures/fotmob/http/client"
	"github.com/mohameedmagdii/Fotmob-Leagues-Extraction/internal/infrastructures/tracing"
	"github.com/mohameedmagdii/Fotmob-Leagues-Extraction/internal/lib/logger"
	"github.com/mohameedmagdii/Fotmob-Leagues-Extraction/internal/transport/http/handlers"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load(".env")

	cfg := config.MustLoad()
	log := logger.Setup(cfg.Log.Level)
	defer func() {
		_ = log.Sync()
	}()

	tp, err := tracing.InitTracer("fixtures-web", cfg.Jaeger)
	if err != nil {
		log.Fatal("failed to init tracer", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			log.Warn("failed to shutdown tracer provider", zap.Error(err))
		}
	}()

	log.Info("fixtures-web starting", zap.String("http_addr", cfg.HTTP.Address()), zap.String("env", cfg.Env))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var exports ports.ExportStore = memory.NewExportStore()
	if cfg.Redis.Enabled() {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Warn("failed to close redis client", zap.Error(err))
			}
		}()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatal("failed to connect redis", zap.Error(err), zap.String("addr", cfg.Redis.Addr))
		}
		exports = exportredis.NewExportStore(redisClient)
		log.Info("session exports stored in redis", zap.String("addr", cfg.Redis.Addr))
	}

	var history ports.FetchHistory
	if cfg.DB.Enabled() {
		dsn := cfg.DB.DatabaseURL()
		if cfg.DB.Migrate {
			if err := postgres.Migrate(dsn); err != nil {
				log.Fatal("failed to migrate database", zap.Error(err))
			}
		}
		repo, err := postgresrepo.New(ctx, dsn)
		if err != nil {
			log.Fatal("failed to connect postgres", zap.Error(err))
		}
		defer repo.Close()
		history = repo
		log.Info("fetch history enabled")
	}

	fotmobClient := fotmobclient.NewClient(
		cfg.Fotmob.BaseURL,
		cfg.Fotmob.CountryCode,
		&http.Client{Timeout: cfg.Fotmob.Timeout},
	)
	leagueService := service.NewLeagueService(log, fotmob.NewSource(fotmobClient), exports, history, cfg.Export.TTL)
	leagueHandler := handlers.NewLeagueHandler(log, leagueService, cfg.Fotmob.Timeout)

	app := httpapp.New(log, cfg.HTTP.Address(), httpapp.Timeouts{
		Read:     cfg.HTTP.ReadTimeout,
		Write:    cfg.HTTP.WriteTimeout,
		Shutdown: cfg.HTTP.ShutdownTimeout,
	}, func(r chi.Router) {
		leagueHandler.Register(r)
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Run()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
		app.Stop()
	case err := <-errCh:
		if err != nil {
			log.Error("http server stopped", zap.Error(err))
		}
	}
}
