package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"motoride/internal/domain/entity"
	"motoride/internal/domain/repository"
	"motoride/internal/infrastructure/database"
	"motoride/pkg/errors"
	"motoride/pkg/logger"
)

// SeedUseCase loads the demo store. Re-seeding replaces the key and, through the cascade,
// every listing it owned.
type SeedUseCase struct {
	apiKeyRepo  repository.APIKeyRepository
	listingRepo repository.ListingRepository
	now         func() time.Time
}

func NewSeedUseCase(apiKeyRepo repository.APIKeyRepository, listingRepo repository.ListingRepository) *SeedUseCase {
	return &SeedUseCase{
		apiKeyRepo:  apiKeyRepo,
		listingRepo: listingRepo,
		now:         time.Now,
	}
}

type SeedResult struct {
	APIKeyID string
	RawKey   string
	Listings int
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return entity.StringPtr(s)
}

func (uc *SeedUseCase) Seed(ctx context.Context, data *database.SeedData) (*SeedResult, error) {
	if _, err := uc.apiKeyRepo.GetByID(ctx, data.APIKey.ID); err == nil {
		logger.Info("Replacing existing seed key %s", data.APIKey.ID)
		if err := uc.apiKeyRepo.Delete(ctx, data.APIKey.ID); err != nil {
			return nil, err
		}
	} else if !errors.IsNotFound(err) {
		return nil, err
	}

	raw := "mr_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	hashed, err := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Internal("Failed to hash api key", err)
	}

	now := uc.now().UTC()
	key := &entity.APIKey{
		ID:        data.APIKey.ID,
		Name:      data.APIKey.Name,
		HashedKey: string(hashed),
		Last4:     raw[len(raw)-4:],
		CreatedAt: now,
	}
	if err := uc.apiKeyRepo.Create(ctx, key); err != nil {
		return nil, err
	}

	for i, m := range data.Motorcycles {
		listing := &entity.Listing{
			ID:          m.ID,
			OwnerKeyID:  entity.StringPtr(key.ID),
			Name:        optional(m.Name),
			Description: optional(m.Description),
			ListingImages: entity.ListingImages{
				Front: optional(m.FrontView),
				Side:  optional(m.SideView),
				Back:  optional(m.BackView),
			},
			MonthlyPrice:   optional(m.MonthlyPrice),
			FullyPaidPrice: optional(m.FullyPaidPrice),
			// Later entries are newer so the seeded order survives a newest-first sort.
			CreatedAt: now.Add(time.Duration(i) * time.Second),
		}
		if err := uc.listingRepo.Create(ctx, listing); err != nil {
			return nil, err
		}
	}

	logger.Info("Seeded api key %s with %d motorcycles", key.ID, len(data.Motorcycles))
	return &SeedResult{APIKeyID: key.ID, RawKey: raw, Listings: len(data.Motorcycles)}, nil
}
