package service

import (
	"strings"

	"motoride/internal/domain/entity"
)

// FindCatalogEntryByName returns the first entry whose brandname, name or processor contains term,
// case-insensitively.
func FindCatalogEntryByName(entries []entity.CatalogEntry, term string) (*entity.CatalogEntry, bool) {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return nil, false
	}
	for i := range entries {
		e := &entries[i]
		for _, field := range []string{e.Brandname, e.Name, e.Processor} {
			if field != "" && strings.Contains(strings.ToLower(field), term) {
				return e, true
			}
		}
	}
	return nil, false
}

// FindCatalogEntryByID returns the entry with the given id.
func FindCatalogEntryByID(entries []entity.CatalogEntry, id string) (*entity.CatalogEntry, bool) {
	for i := range entries {
		if entries[i].ID == id {
			return &entries[i], true
		}
	}
	return nil, false
}

// CatalogBrands lists the display titles of entries, skipping blanks.
func CatalogBrands(entries []entity.CatalogEntry) []string {
	brands := make([]string, 0, len(entries))
	for _, e := range entries {
		if t := e.Title(); t != "" {
			brands = append(brands, t)
		}
	}
	return brands
}
