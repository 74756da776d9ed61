package main

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"

	"motoride/internal/adapter/repository"
	domainrepo "motoride/internal/domain/repository"
	"motoride/internal/infrastructure/database"
	"motoride/pkg/config"
	"motoride/pkg/logger"
)

const driverFirestore = "firestore"

type stores struct {
	listings domainrepo.ListingRepository
	apiKeys  domainrepo.APIKeyRepository
	close    func() error
}

// openStores connects the repository backend selected by DB_DRIVER. SQL backends are
// migrated when migrate is set; an in-memory SQLite database is always migrated.
func openStores(ctx context.Context, cfg *config.Config, migrate bool) (*stores, error) {
	if cfg.DBDriver == driverFirestore {
		if cfg.FirestoreProjectID == "" {
			return nil, fmt.Errorf("FIRESTORE_PROJECT_ID is required for the firestore driver")
		}
		var opts []option.ClientOption
		if cfg.FirestoreCredentialsJSON != "" {
			opts = append(opts, option.WithCredentialsJSON([]byte(cfg.FirestoreCredentialsJSON)))
		}
		client, err := firestore.NewClient(ctx, cfg.FirestoreProjectID, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create Firestore client: %w", err)
		}
		logger.Info("Using Firestore project %s", cfg.FirestoreProjectID)
		return &stores{
			listings: repository.NewFirestoreListingRepository(client),
			apiKeys:  repository.NewFirestoreAPIKeyRepository(client),
			close:    client.Close,
		}, nil
	}

	db, err := database.Open(ctx, cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if migrate || database.IsMemory(cfg.DBDriver, cfg.DatabaseURL) {
		if err := database.Migrate(ctx, db); err != nil {
			db.Close()
			return nil, err
		}
		logger.Info("Schema is up to date")
	}
	logger.Info("Using %s store", cfg.DBDriver)
	return &stores{
		listings: repository.NewSQLListingRepository(db),
		apiKeys:  repository.NewSQLAPIKeyRepository(db),
		close:    db.Close,
	}, nil
}
