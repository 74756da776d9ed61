package repository

import (
	"context"
	"database/sql"
	stderrors "errors"

	"github.com/jmoiron/sqlx"

	"motoride/internal/domain/entity"
	"motoride/internal/domain/repository"
	"motoride/internal/infrastructure/database"
	"motoride/pkg/errors"
)

type sqlAPIKeyRepository struct {
	db *sqlx.DB
}

func NewSQLAPIKeyRepository(db *sqlx.DB) repository.APIKeyRepository {
	return &sqlAPIKeyRepository{
		db: db,
	}
}

func (r *sqlAPIKeyRepository) Create(ctx context.Context, key *entity.APIKey) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO `+database.APIKeysTable+` (id, name, hashed_key, last4, created_at, revoked)
		VALUES (:id, :name, :hashed_key, :last4, :created_at, :revoked)
	`, key)
	if err != nil {
		return errors.Internal("Failed to create API key", err)
	}
	return nil
}

func (r *sqlAPIKeyRepository) GetByID(ctx context.Context, id string) (*entity.APIKey, error) {
	var key entity.APIKey
	query := `SELECT id, name, hashed_key, last4, created_at, revoked FROM ` + database.APIKeysTable + ` WHERE id = ?`
	if err := r.db.GetContext(ctx, &key, r.db.Rebind(query), id); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFound("API key", err)
		}
		return nil, errors.Internal("Failed to get API key", err)
	}
	return &key, nil
}

func (r *sqlAPIKeyRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM `+database.APIKeysTable+` WHERE id = ?`), id)
	if err != nil {
		return errors.Internal("Failed to delete API key", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errors.NotFound("API key", nil)
	}
	return nil
}
