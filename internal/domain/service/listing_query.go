package service

import (
	"sort"
	"strconv"
	"strings"

	"motoride/internal/domain/entity"
)

func containsFold(s *string, term string) bool {
	return s != nil && strings.Contains(strings.ToLower(*s), term)
}

// MatchesStore is the store-side search predicate: description, owning key name or listing
// name contains term, case-insensitively. An empty term matches everything.
func MatchesStore(l *entity.Listing, term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	return containsFold(l.Description, term) || containsFold(l.OwnerName, term) || containsFold(l.Name, term)
}

// MatchesLocal is the browse-page predicate: description, id or listing name.
func MatchesLocal(l *entity.Listing, term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	id := l.ID
	return containsFold(l.Description, term) || containsFold(&id, term) || containsFold(l.Name, term)
}

// FilterListings returns the listings accepted by match, preserving order.
func FilterListings(listings []entity.Listing, term string, match func(*entity.Listing, string) bool) []entity.Listing {
	out := make([]entity.Listing, 0, len(listings))
	for i := range listings {
		if match(&listings[i], term) {
			out = append(out, listings[i])
		}
	}
	return out
}

// PriceAsInt parses a price for ordering. Missing or unparsable values are 0, so "5,555"
// sorts with the free listings.
func PriceAsInt(p *string) int {
	if p == nil {
		return 0
	}
	s := strings.TrimSpace(*p)
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return 0
}

// SortListings orders listings in place. Sorting is stable so equal keys keep store order.
func SortListings(listings []entity.Listing, key entity.SortKey) {
	switch key {
	case entity.SortNewest:
		sort.SliceStable(listings, func(i, j int) bool {
			return listings[i].CreatedAt.After(listings[j].CreatedAt)
		})
	case entity.SortPrice:
		sort.SliceStable(listings, func(i, j int) bool {
			return PriceAsInt(listings[i].MonthlyPrice) < PriceAsInt(listings[j].MonthlyPrice)
		})
	case entity.SortName:
		sort.SliceStable(listings, func(i, j int) bool {
			return entity.Deref(listings[i].OwnerName) < entity.Deref(listings[j].OwnerName)
		})
	}
}
