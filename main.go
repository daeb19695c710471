// package main provides the entry point for the cms-auth microservice: it loads
// configuration, connects to ArangoDB and serves the auth REST and GraphQL API.
package main

import (
	"context"

	"github.com/joho/godotenv"
	"github.com/ortelius/cms-auth/database"
	gqlschema "github.com/ortelius/cms-auth/graphql"
	"github.com/ortelius/cms-auth/internal/api"
	"github.com/ortelius/cms-auth/internal/config"
	"github.com/ortelius/cms-auth/restapi/modules/auth"
	"github.com/ortelius/cms-auth/util"
	"go.uber.org/zap"
)

func main() {
	// A missing .env is normal outside local development
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		util.InitLogger("info").Sugar().Fatalf("Invalid configuration: %v", err)
	}

	logger := util.InitLogger(cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	if envErr != nil {
		logger.Debug("No .env file loaded", zap.Error(envErr))
	}

	tokens, err := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL, cfg.Issuer)
	if err != nil {
		logger.Sugar().Fatalf("Invalid token configuration: %v", err)
	}

	var store auth.Store
	switch cfg.Database.Driver {
	case config.DriverMemory:
		logger.Warn("Using in-memory user store, accounts are lost on restart")
		store = database.NewMemoryStore()
	default:
		// Initialize database connection
		db, err := database.InitializeDatabase(context.Background(), cfg.Database, logger)
		if err != nil {
			logger.Sugar().Fatalf("Database initialization failed: %v", err)
		}
		store = database.NewUserStore(db)
	}

	svc := auth.NewService(store, auth.NewHasher(cfg.BcryptCost), tokens, logger)

	// Initialize GraphQL schema
	schema, err := gqlschema.CreateSchema(svc)
	if err != nil {
		logger.Sugar().Fatalf("Failed to create GraphQL schema: %v", err)
	}

	app := api.NewFiberApp(api.Options{
		Config:    cfg,
		Service:   svc,
		Schema:    schema,
		Logger:    logger,
		AccessLog: true,
	})

	// Start server
	logger.Sugar().Infof("Starting server on port %s", cfg.Port)
	logger.Sugar().Infof("Auth endpoints available at %s/auth", cfg.BasePath)
	logger.Sugar().Infof("GraphQL endpoint available at %s/graphql", cfg.BasePath)
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Sugar().Fatalf("Failed to start server: %v", err)
	}
}
