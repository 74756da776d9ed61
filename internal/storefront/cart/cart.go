package cart

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"motoride/internal/domain/entity"
)

const TaxRate = 0.12

var (
	ErrPriceUnavailable = errors.New("Price not available")
	ErrNotInCart        = errors.New("item not in cart")
	ErrEmpty            = errors.New("cart is empty")
)

// Cart keeps items in insertion order.
type Cart struct {
	items []entity.CartItem
}

type Totals struct {
	Items    []entity.CartItem `json:"items"`
	Count    int               `json:"count"`
	Subtotal float64           `json:"subtotal"`
	Tax      float64           `json:"tax"`
	Total    float64           `json:"total"`
}

func New() *Cart {
	return &Cart{}
}

// UnitPrice is the price a listing goes into the cart at: fully paid, falling back to monthly.
func UnitPrice(l *entity.Listing) (float64, bool) {
	for _, p := range []*string{l.FullyPaidPrice, l.MonthlyPrice} {
		if p == nil {
			continue
		}
		if v, err := strconv.ParseFloat(strings.TrimSpace(*p), 64); err == nil && v > 0 {
			return v, true
		}
	}
	return 0, false
}

func (c *Cart) find(listingID string) int {
	for i := range c.items {
		if c.items[i].ListingID == listingID {
			return i
		}
	}
	return -1
}

// Add puts one unit of l in the cart, or bumps the quantity when it is already there.
func (c *Cart) Add(l *entity.Listing) (entity.CartItem, error) {
	if i := c.find(l.ID); i >= 0 {
		c.items[i].Quantity++
		return c.items[i], nil
	}
	price, ok := UnitPrice(l)
	if !ok {
		return entity.CartItem{}, ErrPriceUnavailable
	}
	item := entity.CartItem{
		ListingID: l.ID,
		Name:      l.DisplayName(),
		UnitPrice: price,
		Quantity:  1,
	}
	c.items = append(c.items, item)
	return item, nil
}

// UpdateQuantity adds delta to the item's quantity. Reaching zero removes the item.
func (c *Cart) UpdateQuantity(listingID string, delta int) error {
	i := c.find(listingID)
	if i < 0 {
		return ErrNotInCart
	}
	q := c.items[i].Quantity + delta
	if q <= 0 {
		c.items = append(c.items[:i], c.items[i+1:]...)
		return nil
	}
	c.items[i].Quantity = q
	return nil
}

func (c *Cart) Remove(listingID string) error {
	i := c.find(listingID)
	if i < 0 {
		return ErrNotInCart
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
	return nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func (c *Cart) Totals() Totals {
	t := Totals{Items: append([]entity.CartItem{}, c.items...)}
	for _, item := range c.items {
		t.Count += item.Quantity
		t.Subtotal += item.LineTotal()
	}
	t.Subtotal = round2(t.Subtotal)
	t.Tax = round2(t.Subtotal * TaxRate)
	t.Total = round2(t.Subtotal + t.Tax)
	return t
}

// Checkout returns the final totals and empties the cart.
func (c *Cart) Checkout() (Totals, error) {
	if len(c.items) == 0 {
		return Totals{}, ErrEmpty
	}
	t := c.Totals()
	c.items = nil
	return t, nil
}

func (c *Cart) Len() int {
	return len(c.items)
}
