package repository

import (
	"context"
	"database/sql"
	stderrors "errors"
	"strings"

	"github.com/jmoiron/sqlx"

	"motoride/internal/domain/entity"
	"motoride/internal/domain/repository"
	"motoride/internal/domain/service"
	"motoride/internal/infrastructure/database"
	"motoride/pkg/errors"
)

const listingColumns = `m.id, m.api_key_id, k.name AS api_key_name, m.motor_name,
	m.front_view, m.side_view, m.back_view, m.description,
	m.monthly_price, m.fully_paid_price, m.created_at`

const listingFrom = ` FROM ` + database.MotorSpecsTable + ` m
	LEFT JOIN ` + database.APIKeysTable + ` k ON m.api_key_id = k.id`

type sqlListingRepository struct {
	db *sqlx.DB
}

func NewSQLListingRepository(db *sqlx.DB) repository.ListingRepository {
	return &sqlListingRepository{
		db: db,
	}
}

func (r *sqlListingRepository) List(ctx context.Context, filter repository.ListingFilter) ([]entity.Listing, error) {
	query := `SELECT ` + listingColumns + listingFrom
	var args []interface{}

	term := strings.ToLower(strings.TrimSpace(filter.Search))
	if term != "" {
		query += ` WHERE LOWER(m.description) LIKE ? OR LOWER(k.name) LIKE ? OR LOWER(m.motor_name) LIKE ?`
		pattern := "%" + term + "%"
		args = append(args, pattern, pattern, pattern)
	}

	var listings []entity.Listing
	if err := r.db.SelectContext(ctx, &listings, r.db.Rebind(query), args...); err != nil {
		return nil, errors.Internal("Failed to fetch listings", err)
	}

	// LIKE treats % and _ in the term as wildcards; the predicate drops those false hits.
	if term != "" {
		listings = service.FilterListings(listings, term, service.MatchesStore)
	}
	return listings, nil
}

func (r *sqlListingRepository) GetByID(ctx context.Context, id string) (*entity.Listing, error) {
	var listing entity.Listing
	query := `SELECT ` + listingColumns + listingFrom + ` WHERE m.id = ?`
	if err := r.db.GetContext(ctx, &listing, r.db.Rebind(query), id); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFound("Listing", err)
		}
		return nil, errors.Internal("Failed to get listing", err)
	}
	return &listing, nil
}

func (r *sqlListingRepository) Latest(ctx context.Context, limit int) ([]entity.Listing, error) {
	query := `SELECT ` + listingColumns + listingFrom + ` ORDER BY m.created_at DESC LIMIT ?`
	var listings []entity.Listing
	if err := r.db.SelectContext(ctx, &listings, r.db.Rebind(query), limit); err != nil {
		return nil, errors.Internal("Failed to fetch latest listings", err)
	}
	return listings, nil
}

func (r *sqlListingRepository) Create(ctx context.Context, listing *entity.Listing) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO `+database.MotorSpecsTable+`
			(id, api_key_id, motor_name, front_view, side_view, back_view, description, monthly_price, fully_paid_price, created_at)
		VALUES
			(:id, :api_key_id, :motor_name, :front_view, :side_view, :back_view, :description, :monthly_price, :fully_paid_price, :created_at)
	`, listing)
	if err != nil {
		return errors.Internal("Failed to create listing", err)
	}
	return nil
}

func (r *sqlListingRepository) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return errors.Internal("Listing store unreachable", err)
	}
	return nil
}
