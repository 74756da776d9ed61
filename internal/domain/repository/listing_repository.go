package repository

import (
	"context"

	"motoride/internal/domain/entity"
)

type ListingFilter struct {
	Search string
}

type ListingRepository interface {
	// List returns every listing matching filter, joined with the owning key's name.
	// Ordering is left to the caller.
	List(ctx context.Context, filter ListingFilter) ([]entity.Listing, error)
	GetByID(ctx context.Context, id string) (*entity.Listing, error)
	Latest(ctx context.Context, limit int) ([]entity.Listing, error)
	Create(ctx context.Context, listing *entity.Listing) error
	Ping(ctx context.Context) error
}

type APIKeyRepository interface {
	Create(ctx context.Context, key *entity.APIKey) error
	GetByID(ctx context.Context, id string) (*entity.APIKey, error)
	// Delete removes the key and, through the foreign key, every listing it owns.
	Delete(ctx context.Context, id string) error
}
