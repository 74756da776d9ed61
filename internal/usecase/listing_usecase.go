package usecase

import (
	"context"
	stderrors "errors"

	"motoride/internal/domain/entity"
	"motoride/internal/domain/repository"
	"motoride/internal/domain/service"
	"motoride/pkg/errors"
	"motoride/pkg/logger"
)

const featuredCount = 3

type ListingUseCase struct {
	listingRepo repository.ListingRepository
}

func NewListingUseCase(listingRepo repository.ListingRepository) *ListingUseCase {
	return &ListingUseCase{
		listingRepo: listingRepo,
	}
}

type ListingQuery struct {
	Search string `query:"search"`
	Sort   string `query:"sort"`
}

// ListListings validates the sort key and returns the filtered, ordered listing set.
func (uc *ListingUseCase) ListListings(ctx context.Context, q ListingQuery) ([]entity.Listing, error) {
	key, err := entity.ParseSortKey(q.Sort)
	if err != nil {
		return nil, errors.BadRequest("Invalid sort parameter. Use newest, price or name", err)
	}
	return uc.Search(ctx, q.Search, key)
}

// Search filters by term and orders by key. Never returns a partial set.
func (uc *ListingUseCase) Search(ctx context.Context, term string, key entity.SortKey) ([]entity.Listing, error) {
	listings, err := uc.listingRepo.List(ctx, repository.ListingFilter{Search: term})
	if err != nil {
		logger.Error("Error fetching listings: %v", err)
		return nil, storeFailure("Failed to fetch listings", err)
	}

	service.SortListings(listings, key)
	for i := range listings {
		listings[i].Source = entity.SourceLocal
	}
	return listings, nil
}

func (uc *ListingUseCase) GetListing(ctx context.Context, id string) (*entity.Listing, error) {
	listing, err := uc.listingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, err
		}
		return nil, storeFailure("Failed to fetch listing", err)
	}
	listing.Source = entity.SourceLocal
	return listing, nil
}

// Featured returns the newest listings for the home page.
func (uc *ListingUseCase) Featured(ctx context.Context) ([]entity.Listing, error) {
	listings, err := uc.listingRepo.Latest(ctx, featuredCount)
	if err != nil {
		return nil, storeFailure("Failed to fetch featured listings", err)
	}
	for i := range listings {
		listings[i].Source = entity.SourceLocal
	}
	return listings, nil
}

func (uc *ListingUseCase) Ping(ctx context.Context) error {
	return uc.listingRepo.Ping(ctx)
}

// storeFailure keeps the message the caller chose while preserving the underlying cause.
func storeFailure(message string, err error) error {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) && appErr.Err != nil {
		err = appErr.Err
	}
	return errors.Internal(message, err)
}
