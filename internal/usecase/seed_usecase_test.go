package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"motoride/internal/adapter/repository"
	domainrepo "motoride/internal/domain/repository"
	"motoride/internal/infrastructure/database"
)

func keyMatches(t *testing.T, keys domainrepo.APIKeyRepository, id, raw string) bool {
	t.Helper()
	key, err := keys.GetByID(context.Background(), id)
	require.NoError(t, err)
	return bcrypt.CompareHashAndPassword([]byte(key.HashedKey), []byte(raw)) == nil
}

func TestSeedIsRepeatable(t *testing.T) {
	ctx := context.Background()
	db, err := database.Open(ctx, database.DriverSQLite, "file::memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(ctx, db))

	keys := repository.NewSQLAPIKeyRepository(db)
	listings := repository.NewSQLListingRepository(db)
	uc := NewSeedUseCase(keys, listings)

	data, err := database.DefaultSeed()
	require.NoError(t, err)

	first, err := uc.Seed(ctx, data)
	require.NoError(t, err)
	assert.Equal(t, 3, first.Listings)
	assert.Equal(t, "test-api-key-1", first.APIKeyID)

	assert.True(t, keyMatches(t, keys, first.APIKeyID, first.RawKey))

	second, err := uc.Seed(ctx, data)
	require.NoError(t, err)
	assert.NotEqual(t, first.RawKey, second.RawKey)

	assert.False(t, keyMatches(t, keys, first.APIKeyID, first.RawKey), "old key no longer verifies")
	assert.True(t, keyMatches(t, keys, second.APIKeyID, second.RawKey))

	all, err := listings.List(ctx, domainrepo.ListingFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	for _, l := range all {
		assert.Equal(t, "Test Store", *l.OwnerName)
	}

	latest, err := NewListingUseCase(listings).Featured(ctx)
	require.NoError(t, err)
	assert.Equal(t, "moto-3", latest[0].ID)
}
