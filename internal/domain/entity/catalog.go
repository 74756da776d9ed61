package entity

import (
	"strings"
	"time"
)

// CatalogEntry is one record of the external motorcycle catalog. The spec fields reuse the
// upstream's hardware-catalog names (processor = engine, graphic = power, ...).
type CatalogEntry struct {
	ID        string    `json:"id" yaml:"id"`
	ImageURL  string    `json:"imageUrl,omitempty" yaml:"imageUrl"`
	Brandname string    `json:"brandname,omitempty" yaml:"brandname"`
	Name      string    `json:"name,omitempty" yaml:"name"`
	Processor string    `json:"processor,omitempty" yaml:"processor"`
	Graphic   string    `json:"graphic,omitempty" yaml:"graphic"`
	Display   string    `json:"display,omitempty" yaml:"display"`
	RAM       string    `json:"ram,omitempty" yaml:"ram"`
	Storage   string    `json:"storage,omitempty" yaml:"storage"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
}

// Title is the brand name, or the upstream `name` field for catalogs that use it instead.
func (e CatalogEntry) Title() string {
	if e.Brandname != "" {
		return e.Brandname
	}
	return e.Name
}

// ToListing maps the entry onto the listing shape. Catalog entries carry no prices.
func (e CatalogEntry) ToListing() Listing {
	l := Listing{
		ID:        e.ID,
		CreatedAt: e.CreatedAt,
		Source:    SourceExternal,
	}
	if t := e.Title(); t != "" {
		l.Name = StringPtr(t)
	}

	var specs []string
	for _, s := range []string{e.Processor, e.Graphic, e.Display, e.RAM, e.Storage} {
		if s != "" {
			specs = append(specs, s)
		}
	}
	if len(specs) > 0 {
		l.Description = StringPtr(strings.Join(specs, ", "))
	}
	if e.ImageURL != "" {
		l.Front = StringPtr(e.ImageURL)
	}
	return l
}
