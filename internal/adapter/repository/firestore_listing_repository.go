package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"motoride/internal/domain/entity"
	"motoride/internal/domain/repository"
	"motoride/internal/domain/service"
	"motoride/pkg/errors"
)

const (
	motorSpecsCollection = "motor_specs"
	apiKeysCollection    = "api_keys"
)

type firestoreListingRepository struct {
	client *firestore.Client
}

func NewFirestoreListingRepository(client *firestore.Client) repository.ListingRepository {
	return &firestoreListingRepository{
		client: client,
	}
}

// keyNames loads every API key name so listings can carry their owner's display name.
func (r *firestoreListingRepository) keyNames(ctx context.Context) (map[string]string, error) {
	docs, err := r.client.Collection(apiKeysCollection).Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(docs))
	for _, doc := range docs {
		var key entity.APIKey
		if err := doc.DataTo(&key); err != nil {
			return nil, err
		}
		names[doc.Ref.ID] = key.Name
	}
	return names, nil
}

func (r *firestoreListingRepository) collect(ctx context.Context, iter *firestore.DocumentIterator) ([]entity.Listing, error) {
	defer iter.Stop()

	names, err := r.keyNames(ctx)
	if err != nil {
		return nil, err
	}

	var listings []entity.Listing
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var listing entity.Listing
		if err := doc.DataTo(&listing); err != nil {
			return nil, err
		}
		listing.ID = doc.Ref.ID
		if listing.OwnerKeyID != nil {
			if name, ok := names[*listing.OwnerKeyID]; ok {
				listing.OwnerName = entity.StringPtr(name)
			}
		}
		listings = append(listings, listing)
	}
	return listings, nil
}

func (r *firestoreListingRepository) List(ctx context.Context, filter repository.ListingFilter) ([]entity.Listing, error) {
	// Firestore has no substring query, so the whole collection is read and filtered here.
	listings, err := r.collect(ctx, r.client.Collection(motorSpecsCollection).Documents(ctx))
	if err != nil {
		return nil, errors.Internal("Failed to fetch listings", err)
	}
	return service.FilterListings(listings, filter.Search, service.MatchesStore), nil
}

func (r *firestoreListingRepository) GetByID(ctx context.Context, id string) (*entity.Listing, error) {
	doc, err := r.client.Collection(motorSpecsCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Listing", err)
		}
		return nil, errors.Internal("Failed to get listing", err)
	}

	var listing entity.Listing
	if err := doc.DataTo(&listing); err != nil {
		return nil, errors.Internal("Failed to parse listing data", err)
	}
	listing.ID = doc.Ref.ID

	if listing.OwnerKeyID != nil {
		keyDoc, err := r.client.Collection(apiKeysCollection).Doc(*listing.OwnerKeyID).Get(ctx)
		if err == nil {
			var key entity.APIKey
			if keyDoc.DataTo(&key) == nil {
				listing.OwnerName = entity.StringPtr(key.Name)
			}
		} else if status.Code(err) != codes.NotFound {
			return nil, errors.Internal("Failed to get listing owner", err)
		}
	}

	return &listing, nil
}

func (r *firestoreListingRepository) Latest(ctx context.Context, limit int) ([]entity.Listing, error) {
	query := r.client.Collection(motorSpecsCollection).OrderBy("createdAt", firestore.Desc).Limit(limit)
	listings, err := r.collect(ctx, query.Documents(ctx))
	if err != nil {
		return nil, errors.Internal("Failed to fetch latest listings", err)
	}
	return listings, nil
}

func (r *firestoreListingRepository) Create(ctx context.Context, listing *entity.Listing) error {
	if listing.ID == "" {
		listing.ID = r.client.Collection(motorSpecsCollection).NewDoc().ID
	}
	if _, err := r.client.Collection(motorSpecsCollection).Doc(listing.ID).Set(ctx, listing); err != nil {
		return errors.Internal("Failed to create listing", err)
	}
	return nil
}

func (r *firestoreListingRepository) Ping(ctx context.Context) error {
	if _, err := r.client.Collection(apiKeysCollection).Limit(1).Documents(ctx).GetAll(); err != nil {
		return errors.Internal("Listing store unreachable", err)
	}
	return nil
}
