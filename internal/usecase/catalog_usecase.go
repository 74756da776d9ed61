package usecase

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"motoride/internal/domain/entity"
	"motoride/internal/domain/service"
	"motoride/pkg/errors"
)

// CatalogUseCase serves the mock external catalog and the product-name search over it.
type CatalogUseCase struct {
	source service.CatalogSource
}

func NewCatalogUseCase(source service.CatalogSource) *CatalogUseCase {
	return &CatalogUseCase{
		source: source,
	}
}

func (uc *CatalogUseCase) List(ctx context.Context) ([]entity.CatalogEntry, error) {
	entries, err := uc.source.FetchCatalog(ctx)
	if err != nil {
		return nil, errors.Internal("Failed to load catalog", err)
	}
	return entries, nil
}

// SearchByName returns the first entry whose brand, name or engine mentions name.
func (uc *CatalogUseCase) SearchByName(ctx context.Context, name string) (*entity.CatalogEntry, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errors.BadRequest("Please enter a motorcycle brand or model", nil)
	}

	entries, err := uc.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, errors.NotFound("Catalog data", nil)
	}

	entry, ok := service.FindCatalogEntryByName(entries, name)
	if !ok {
		available := strings.Join(service.CatalogBrands(entries), ", ")
		return nil, errors.New(errors.CodeNotFound,
			fmt.Sprintf("Motorcycle %q not found. Available: %s", strings.TrimSpace(name), available),
			http.StatusNotFound, nil)
	}
	return entry, nil
}
