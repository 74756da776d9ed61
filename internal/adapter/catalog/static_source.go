package catalog

import (
	"context"
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"motoride/internal/domain/entity"
)

//go:embed catalog.yaml
var defaultCatalog []byte

type catalogFile struct {
	Motorcycles []entity.CatalogEntry `yaml:"motorcycles"`
}

// StaticSource serves a fixed catalog held in memory.
type StaticSource struct {
	entries []entity.CatalogEntry
}

func NewStaticSource(entries []entity.CatalogEntry) *StaticSource {
	return &StaticSource{entries: entries}
}

// LoadStaticSource parses a YAML catalog document.
func LoadStaticSource(data []byte) (*StaticSource, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	return NewStaticSource(f.Motorcycles), nil
}

// DefaultStaticSource is the built-in five-model catalog.
func DefaultStaticSource() *StaticSource {
	src, err := LoadStaticSource(defaultCatalog)
	if err != nil {
		panic(err)
	}
	return src
}

func (s *StaticSource) FetchCatalog(ctx context.Context) ([]entity.CatalogEntry, error) {
	out := make([]entity.CatalogEntry, len(s.entries))
	copy(out, s.entries)
	return out, nil
}
