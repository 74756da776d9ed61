package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"motoride/internal/domain/entity"
)

func catalogFixture() []entity.CatalogEntry {
	return []entity.CatalogEntry{
		{ID: "MTR-001", Brandname: "HONDA PCX 150", Processor: "150cc Single Cylinder"},
		{ID: "MTR-002", Brandname: "HONDA CL500", Processor: "471cc Parallel-Twin"},
		{ID: "MTR-005", Brandname: "Kawasaki Ninja 400", Processor: "399cc Parallel-Twin"},
		{ID: "MTR-006", Name: "Vespa Primavera"},
	}
}

func TestFindCatalogEntryByName(t *testing.T) {
	entries := catalogFixture()

	e, ok := FindCatalogEntryByName(entries, "ninja")
	require.True(t, ok)
	assert.Equal(t, "MTR-005", e.ID)

	e, ok = FindCatalogEntryByName(entries, "parallel-twin")
	require.True(t, ok)
	assert.Equal(t, "MTR-002", e.ID, "first match in catalog order")

	e, ok = FindCatalogEntryByName(entries, "VESPA")
	require.True(t, ok)
	assert.Equal(t, "MTR-006", e.ID)

	_, ok = FindCatalogEntryByName(entries, "ducati")
	assert.False(t, ok)

	_, ok = FindCatalogEntryByName(entries, "   ")
	assert.False(t, ok)
}

func TestFindCatalogEntryByID(t *testing.T) {
	e, ok := FindCatalogEntryByID(catalogFixture(), "MTR-002")
	require.True(t, ok)
	assert.Equal(t, "HONDA CL500", e.Brandname)

	_, ok = FindCatalogEntryByID(catalogFixture(), "moto-1")
	assert.False(t, ok)
}

func TestCatalogBrands(t *testing.T) {
	entries := append(catalogFixture(), entity.CatalogEntry{ID: "blank"})
	assert.Equal(t, []string{"HONDA PCX 150", "HONDA CL500", "Kawasaki Ninja 400", "Vespa Primavera"}, CatalogBrands(entries))
}
