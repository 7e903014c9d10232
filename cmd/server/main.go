// Command server runs the nestora rental marketplace API.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/nestora/nestora-api/auth"
	"github.com/nestora/nestora-api/auth/password"
	"github.com/nestora/nestora-api/auth/token"
	"github.com/nestora/nestora-api/authz"
	"github.com/nestora/nestora-api/config"
	"github.com/nestora/nestora-api/database"
	"github.com/nestora/nestora-api/logger"
	"github.com/nestora/nestora-api/observability"
	"github.com/nestora/nestora-api/server"
	"github.com/nestora/nestora-api/user"
)

const serviceName = "nestora-api"

func main() {
	var cfg config.App
	if err := config.Load(serviceName, &cfg); err != nil {
		logger.Fatal("Failed to load configuration", map[string]interface{}{
			"error": err.Error(),
		})
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		logger.Fatal("Invalid configuration", map[string]interface{}{
			"error": err.Error(),
		})
	}

	logger.Init(cfg.Logging)
	log := logger.New(&cfg.Logging, serviceName)
	logger.SetGlobalLogger(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	prov, err := observability.Setup(ctx, cfg.Observability, serviceName)
	if err != nil {
		log.Fatal("Failed to initialize observability", map[string]interface{}{
			"error": err.Error(),
		})
	}
	defer func() {
		if err := prov.Shutdown(context.Background()); err != nil {
			log.Warn("Observability shutdown failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}()

	var (
		store user.Store
		db    *database.DB
	)
	if cfg.Database.Enabled {
		db, err = database.Open(ctx, cfg.Database, log)
		if err != nil {
			log.Fatal("Failed to connect to database", map[string]interface{}{
				"error": err.Error(),
			})
		}
		defer db.Close()

		if cfg.Database.AutoMigrate {
			if err := db.AutoMigrate(&user.User{}); err != nil {
				log.Fatal("Migration failed", map[string]interface{}{
					"error": err.Error(),
				})
			}
		}
		store = user.NewGormStore(db.GormDB)
	} else {
		if cfg.IsProduction() {
			log.Fatal("Database must be enabled in production")
		}
		log.Warn("Database disabled, using in-memory store")
		store = user.NewMemoryStore()
	}

	tokens, err := token.NewService(cfg.Auth.JWT)
	if err != nil {
		log.Fatal("Failed to initialize token service", map[string]interface{}{
			"error": err.Error(),
		})
	}

	var metrics *observability.AuthMetrics
	if cfg.Observability.Enabled {
		metrics, err = observability.NewAuthMetrics(observability.Meter(serviceName))
		if err != nil {
			log.Fatal("Failed to create auth metrics", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	hasher := password.NewHasher(cfg.Auth.Password)
	authSvc := auth.NewService(store, hasher, tokens, log).WithMetrics(metrics)

	deps := server.Deps{
		Auth:     authSvc,
		Tokens:   tokens,
		Identity: auth.NewIdentityLoader(store),
		Policy:   authz.DefaultPolicy(),
		Metrics:  metrics,
	}
	if db != nil {
		deps.DB = db
	}
	srv := server.New(cfg.Server, deps, log)

	if err := srv.Start(ctx); err != nil {
		log.Fatal("Failed to start server", map[string]interface{}{
			"error": err.Error(),
		})
	}

	<-ctx.Done()
	log.Info("Shutdown signal received")

	if err := srv.Stop(context.Background()); err != nil {
		log.Error("Server stopped with error", map[string]interface{}{
			"error": err.Error(),
		})
		os.Exit(1)
	}
}
