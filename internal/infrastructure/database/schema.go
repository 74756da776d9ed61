package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

const (
	APIKeysTable    = "it315_api_key_api_keys"
	MotorSpecsTable = "it315_api_key_motor_specs"
)

// The DDL is restricted to the subset Postgres, MySQL and SQLite share.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS ` + APIKeysTable + ` (
		id VARCHAR(64) PRIMARY KEY,
		name VARCHAR(256) NOT NULL,
		hashed_key TEXT NOT NULL,
		last4 VARCHAR(4) NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		revoked BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE TABLE IF NOT EXISTS ` + MotorSpecsTable + ` (
		id VARCHAR(64) PRIMARY KEY,
		api_key_id VARCHAR(64),
		motor_name VARCHAR(256),
		front_view TEXT,
		side_view TEXT,
		back_view TEXT,
		description TEXT,
		monthly_price VARCHAR(50),
		fully_paid_price VARCHAR(50),
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (api_key_id) REFERENCES ` + APIKeysTable + `(id) ON DELETE CASCADE
	)`,
}

// Migrate creates the API key and motor spec tables when missing.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
