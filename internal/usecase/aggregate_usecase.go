package usecase

import (
	"context"
	stderrors "errors"

	"golang.org/x/sync/errgroup"

	"motoride/internal/domain/entity"
	"motoride/internal/domain/repository"
	"motoride/internal/domain/service"
	"motoride/pkg/errors"
	"motoride/pkg/logger"
)

const rateLimitMessage = "Rate limit exceeded. Please try again later."

// AggregateUseCase combines the store's listings with the external catalog.
type AggregateUseCase struct {
	listingRepo repository.ListingRepository
	external    service.CatalogSource
}

func NewAggregateUseCase(listingRepo repository.ListingRepository, external service.CatalogSource) *AggregateUseCase {
	return &AggregateUseCase{
		listingRepo: listingRepo,
		external:    external,
	}
}

// MergeAll returns local listings (newest first) followed by external ones, each tagged
// with its source. A failing external source leaves the local half intact; a failing
// store fails the whole call.
func (uc *AggregateUseCase) MergeAll(ctx context.Context) ([]entity.Listing, error) {
	var (
		local       []entity.Listing
		external    []entity.CatalogEntry
		externalErr error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		listings, err := uc.listingRepo.List(gctx, repository.ListingFilter{})
		if err != nil {
			return storeFailure("Failed to fetch listings", err)
		}
		local = listings
		return nil
	})
	g.Go(func() error {
		external, externalErr = uc.external.FetchCatalog(gctx)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	service.SortListings(local, entity.SortNewest)
	merged := make([]entity.Listing, 0, len(local)+len(external))
	for _, l := range local {
		merged = append(merged, l.WithSource(entity.SourceLocal))
	}

	if externalErr != nil {
		logger.Warn("external catalog unavailable, serving local listings only: %v", externalErr)
		return merged, nil
	}
	for _, e := range external {
		merged = append(merged, e.ToListing())
	}
	return merged, nil
}

// Lookup checks the store first and falls back to the external catalog on a miss.
func (uc *AggregateUseCase) Lookup(ctx context.Context, id string) (*entity.Listing, error) {
	listing, err := uc.listingRepo.GetByID(ctx, id)
	if err == nil {
		l := listing.WithSource(entity.SourceLocal)
		return &l, nil
	}
	if !errors.IsNotFound(err) {
		return nil, storeFailure("Failed to fetch listing", err)
	}
	return uc.External(ctx, id)
}

// External looks id up in the external catalog only.
func (uc *AggregateUseCase) External(ctx context.Context, id string) (*entity.Listing, error) {
	entries, err := uc.external.FetchCatalog(ctx)
	if err != nil {
		if stderrors.Is(err, service.ErrRateLimited) {
			return nil, errors.TooManyRequests(rateLimitMessage, err)
		}
		return nil, errors.BadGateway("Failed to fetch from external API", err)
	}

	entry, ok := service.FindCatalogEntryByID(entries, id)
	if !ok {
		return nil, errors.NotFound("Motorcycle", nil)
	}
	l := entry.ToListing()
	return &l, nil
}
