package service

import (
	"context"
	"errors"

	"motoride/internal/domain/entity"
)

// ErrRateLimited is returned by a CatalogSource when the upstream refuses the call for quota reasons.
var ErrRateLimited = errors.New("catalog upstream rate limited")

// ErrCatalogFormat is returned when an upstream payload is none of the accepted shapes.
var ErrCatalogFormat = errors.New("invalid catalog response format")

// CatalogSource is the secondary, externally sourced listing set.
type CatalogSource interface {
	FetchCatalog(ctx context.Context) ([]entity.CatalogEntry, error)
}
