package config

import (
	"context"
	"fmt"

	"github.com/LuizVictorr/Achadoos-Amazon/docstore"
	"go.uber.org/zap"
)

// InitStore connects the document store selected by STORE_DRIVER.
func InitStore(ctx context.Context, cfg *Config, log *zap.Logger) (docstore.Store, error) {
	switch cfg.StoreDriver {
	case DriverFirebase:
		store, err := docstore.NewFirebaseStore(ctx, docstore.FirebaseConfig{
			DatabaseURL:     cfg.FirebaseDatabaseURL,
			CredentialsFile: cfg.FirebaseCredentialsFile,
			Timeout:         cfg.StoreTimeout,
		})
		if err != nil {
			return nil, err
		}
		log.Info("firebase realtime database client ready", zap.String("url", cfg.FirebaseDatabaseURL))
		return store, nil

	case DriverMongo:
		store, err := docstore.NewMongoStore(ctx, docstore.MongoConfig{
			URL:              cfg.MongoURL,
			Database:         cfg.MongoDatabase,
			OperationTimeout: cfg.StoreTimeout,
		})
		if err != nil {
			return nil, err
		}
		log.Info("mongodb connection established", zap.String("database", cfg.MongoDatabase))
		return store, nil

	case DriverPostgres:
		store, err := docstore.NewPostgresStore(docstore.PostgresConfig{
			DSN:         cfg.DatabaseURL,
			Silent:      cfg.IsProduction(),
			AutoMigrate: !cfg.IsProduction(),
		})
		if err != nil {
			return nil, err
		}
		log.Info("postgres document table connected (GORM)")
		return store, nil

	case DriverMemory:
		if cfg.SeedFile == "" {
			log.Warn("CATALOG_SEED_FILE not set, serving an empty in-memory catalogue")
			return docstore.NewMemoryStore(), nil
		}
		store, err := docstore.LoadMemoryStore(cfg.SeedFile)
		if err != nil {
			return nil, err
		}
		log.Info("in-memory catalogue loaded", zap.String("file", cfg.SeedFile))
		return store, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}

// CloseStore closes the store and logs the outcome.
func CloseStore(store docstore.Store, log *zap.Logger) {
	if store == nil {
		return
	}
	if err := store.Close(); err != nil {
		log.Warn("failed to close document store", zap.Error(err))
		return
	}
	log.Info("document store connection closed")
}
