package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"

	"motoride/internal/domain/entity"
	"motoride/internal/domain/service"
)

// ParseCatalog normalises the shapes the upstream has been seen to return: a bare array,
// {"items": [...]} or {"results": [...]}. Anything else is a format error.
func ParseCatalog(body []byte) ([]entity.CatalogEntry, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty body", service.ErrCatalogFormat)
	}

	switch trimmed[0] {
	case '[':
		var entries []entity.CatalogEntry
		if err := json.Unmarshal(trimmed, &entries); err != nil {
			return nil, fmt.Errorf("%w: %v", service.ErrCatalogFormat, err)
		}
		return entries, nil

	case '{':
		var envelope map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			return nil, fmt.Errorf("%w: %v", service.ErrCatalogFormat, err)
		}
		for _, key := range []string{"items", "results"} {
			raw, ok := envelope[key]
			if !ok {
				continue
			}
			raw = bytes.TrimSpace(raw)
			if len(raw) == 0 || raw[0] != '[' {
				continue
			}
			var entries []entity.CatalogEntry
			if err := json.Unmarshal(raw, &entries); err != nil {
				return nil, fmt.Errorf("%w: %s: %v", service.ErrCatalogFormat, key, err)
			}
			return entries, nil
		}
	}

	return nil, fmt.Errorf("%w: expected array of items", service.ErrCatalogFormat)
}
