// Package browse keeps the listing page's view state: the fetched set plus the
// (search, sort, page) tuple the visible page is derived from.
package browse

import (
	"context"

	"motoride/internal/domain/entity"
	"motoride/internal/domain/service"
	"motoride/pkg/logger"
	"motoride/pkg/utils"
)

const PageSize = 12

// Fetcher retrieves the store-filtered, store-sorted listing set.
type Fetcher interface {
	ListListings(ctx context.Context, search string, sort entity.SortKey) ([]entity.Listing, error)
}

type FetcherFunc func(ctx context.Context, search string, sort entity.SortKey) ([]entity.Listing, error)

func (f FetcherFunc) ListListings(ctx context.Context, search string, sort entity.SortKey) ([]entity.Listing, error) {
	return f(ctx, search, sort)
}

type State struct {
	fetcher  Fetcher
	listings []entity.Listing
	search   string
	sort     entity.SortKey
	page     int
	loaded   bool
	err      error
}

type View struct {
	Items       []entity.Listing `json:"items"`
	Search      string           `json:"search"`
	Sort        entity.SortKey   `json:"sort"`
	Page        int              `json:"page"`
	TotalPages  int              `json:"totalPages"`
	TotalItems  int              `json:"totalItems"`
	HasPrevious bool             `json:"hasPrevious"`
	HasNext     bool             `json:"hasNext"`
	Error       string           `json:"error,omitempty"`
}

func NewState(fetcher Fetcher) *State {
	return &State{
		fetcher: fetcher,
		sort:    entity.SortNewest,
		page:    1,
	}
}

// Load fetches with the current search and sort. Any previously fetched set is dropped
// when the fetch fails.
func (s *State) Load(ctx context.Context) error {
	listings, err := s.fetcher.ListListings(ctx, s.search, s.sort)
	s.loaded = true
	if err != nil {
		logger.Error("browse fetch failed (search=%q sort=%s): %v", s.search, s.sort, err)
		s.listings = nil
		s.err = err
		return err
	}
	s.listings = listings
	s.err = nil
	return nil
}

// SetSearch changes the term, resets to page 1 and refetches. An unchanged term is a no-op
// unless the last fetch failed.
func (s *State) SetSearch(ctx context.Context, term string) error {
	if s.loaded && s.err == nil && term == s.search {
		return s.err
	}
	s.search = term
	s.page = 1
	return s.Load(ctx)
}

// SetSort changes the sort key, resets to page 1 and refetches. An unchanged key is a no-op
// unless the last fetch failed.
func (s *State) SetSort(ctx context.Context, key entity.SortKey) error {
	if s.loaded && s.err == nil && key == s.sort {
		return s.err
	}
	s.sort = key
	s.page = 1
	return s.Load(ctx)
}

// Query sets search and sort together, refetching once when either changed, nothing has
// been loaded yet, or the last fetch failed.
func (s *State) Query(ctx context.Context, term string, key entity.SortKey) error {
	if s.loaded && s.err == nil && term == s.search && key == s.sort {
		return s.err
	}
	s.search = term
	s.sort = key
	s.page = 1
	return s.Load(ctx)
}

// SetPage moves to page without refetching. Out-of-range pages are clamped.
func (s *State) SetPage(page int) {
	s.page = utils.ClampPage(page, utils.TotalPages(len(s.working()), PageSize))
}

func (s *State) working() []entity.Listing {
	if s.search == "" {
		return s.listings
	}
	return service.FilterListings(s.listings, s.search, service.MatchesLocal)
}

// View derives the visible page from the current state.
func (s *State) View() View {
	v := View{
		Search: s.search,
		Sort:   s.sort,
		Items:  []entity.Listing{},
	}
	if s.err != nil {
		v.Page = 1
		v.Error = "Failed to fetch listings"
		return v
	}

	working := s.working()
	v.TotalItems = len(working)
	v.TotalPages = utils.TotalPages(len(working), PageSize)
	v.Page = utils.ClampPage(s.page, v.TotalPages)

	start := (v.Page - 1) * PageSize
	end := start + PageSize
	if end > len(working) {
		end = len(working)
	}
	if start < end {
		v.Items = working[start:end]
	}
	v.HasPrevious = v.Page > 1
	v.HasNext = v.Page < v.TotalPages
	return v
}

func (s *State) Err() error {
	return s.err
}
