package entity

import (
	"fmt"
	"time"
)

type Source string

const (
	SourceLocal    Source = "local"
	SourceExternal Source = "external"
)

type SortKey string

const (
	SortNewest SortKey = "newest"
	SortPrice  SortKey = "price"
	SortName   SortKey = "name"
)

// ParseSortKey maps the `sort` query value to a SortKey. Empty means newest.
func ParseSortKey(s string) (SortKey, error) {
	switch SortKey(s) {
	case "":
		return SortNewest, nil
	case SortNewest, SortPrice, SortName:
		return SortKey(s), nil
	}
	return "", fmt.Errorf("unknown sort key %q", s)
}

type PaymentMethod string

const (
	MethodMonthly PaymentMethod = "monthly"
	MethodFull    PaymentMethod = "full"
)

// ListingImages are the three fixed view slots. The carousel indexes them by position.
type ListingImages struct {
	Front *string `json:"front,omitempty" db:"front_view" firestore:"frontView"`
	Side  *string `json:"side,omitempty" db:"side_view" firestore:"sideView"`
	Back  *string `json:"back,omitempty" db:"back_view" firestore:"backView"`
}

// Slots returns the images in front, side, back order, nil for absent ones.
func (i ListingImages) Slots() [3]*string {
	return [3]*string{i.Front, i.Side, i.Back}
}

type Listing struct {
	ID          string  `json:"id" db:"id" firestore:"id"`
	OwnerKeyID  *string `json:"ownerKeyId" db:"api_key_id" firestore:"apiKeyId"`
	OwnerName   *string `json:"apiKeyName" db:"api_key_name" firestore:"-"`
	Name        *string `json:"name,omitempty" db:"motor_name" firestore:"motorName"`
	Description *string `json:"description" db:"description" firestore:"description"`

	ListingImages `json:"images"`

	MonthlyPrice   *string   `json:"monthlyPrice" db:"monthly_price" firestore:"monthlyPrice"`
	FullyPaidPrice *string   `json:"fullyPaidPrice" db:"fully_paid_price" firestore:"fullyPaidPrice"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at" firestore:"createdAt"`
	Source         Source    `json:"source,omitempty" db:"-" firestore:"-"`
}

// Price returns the raw price string for method, or "" when absent.
func (l *Listing) Price(method PaymentMethod) string {
	var p *string
	switch method {
	case MethodMonthly:
		p = l.MonthlyPrice
	case MethodFull:
		p = l.FullyPaidPrice
	}
	if p == nil {
		return ""
	}
	return *p
}

// DisplayName prefers the listing's own name and falls back to the owning key's name.
func (l *Listing) DisplayName() string {
	if l.Name != nil && *l.Name != "" {
		return *l.Name
	}
	if l.OwnerName != nil {
		return *l.OwnerName
	}
	return ""
}

// WithSource returns a copy of l tagged with s.
func (l Listing) WithSource(s Source) Listing {
	l.Source = s
	return l
}

func StringPtr(s string) *string {
	return &s
}

func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
