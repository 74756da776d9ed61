package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"motoride/internal/domain/entity"
	"motoride/internal/domain/repository"
	"motoride/pkg/errors"
)

type firestoreAPIKeyRepository struct {
	client *firestore.Client
}

func NewFirestoreAPIKeyRepository(client *firestore.Client) repository.APIKeyRepository {
	return &firestoreAPIKeyRepository{
		client: client,
	}
}

func (r *firestoreAPIKeyRepository) Create(ctx context.Context, key *entity.APIKey) error {
	if key.ID == "" {
		key.ID = r.client.Collection(apiKeysCollection).NewDoc().ID
	}
	if _, err := r.client.Collection(apiKeysCollection).Doc(key.ID).Set(ctx, key); err != nil {
		return errors.Internal("Failed to create API key", err)
	}
	return nil
}

func (r *firestoreAPIKeyRepository) GetByID(ctx context.Context, id string) (*entity.APIKey, error) {
	doc, err := r.client.Collection(apiKeysCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("API key", err)
		}
		return nil, errors.Internal("Failed to get API key", err)
	}
	var key entity.APIKey
	if err := doc.DataTo(&key); err != nil {
		return nil, errors.Internal("Failed to parse API key data", err)
	}
	return &key, nil
}

// Delete emulates the relational cascade: owned listings go in the same batch as the key.
func (r *firestoreAPIKeyRepository) Delete(ctx context.Context, id string) error {
	ref := r.client.Collection(apiKeysCollection).Doc(id)
	owned, err := r.client.Collection(motorSpecsCollection).Where("apiKeyId", "==", id).Documents(ctx).GetAll()
	if err != nil {
		return errors.Internal("Failed to list owned listings", err)
	}

	err = r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(ref); err != nil {
			return err
		}
		for _, doc := range owned {
			if err := tx.Delete(doc.Ref); err != nil {
				return err
			}
		}
		return tx.Delete(ref)
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("API key", err)
		}
		return errors.Internal("Failed to delete API key", err)
	}
	return nil
}
