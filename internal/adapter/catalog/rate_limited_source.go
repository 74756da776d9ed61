package catalog

import (
	"context"

	"motoride/internal/domain/entity"
	"motoride/internal/domain/service"
	"motoride/internal/infrastructure/ratelimit"
	"motoride/pkg/logger"
)

const upstreamKey = "catalog"

// RateLimitedSource caps how often the wrapped source is called. Refused calls fail with
// service.ErrRateLimited without reaching the upstream.
type RateLimitedSource struct {
	next    service.CatalogSource
	limiter *ratelimit.RateLimiter
}

func NewRateLimitedSource(next service.CatalogSource, limiter *ratelimit.RateLimiter) *RateLimitedSource {
	return &RateLimitedSource{
		next:    next,
		limiter: limiter,
	}
}

func (s *RateLimitedSource) FetchCatalog(ctx context.Context) ([]entity.CatalogEntry, error) {
	if ok, retryAfter := s.limiter.Allow(upstreamKey); !ok {
		logger.With("upstream", upstreamKey, "retryAfter", retryAfter).Warn("catalog call refused")
		return nil, service.ErrRateLimited
	}
	return s.next.FetchCatalog(ctx)
}
