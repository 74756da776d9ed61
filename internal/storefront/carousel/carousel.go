// Package carousel implements the detail page image carousel and its fullscreen overlay.
package carousel

import (
	"errors"
	"fmt"
	"sync"

	"motoride/internal/domain/entity"
)

var (
	ErrNoImages   = errors.New("listing has no images")
	ErrOutOfRange = errors.New("image index out of range")
)

type Trigger string

const (
	TriggerButton   Trigger = "button"
	TriggerBackdrop Trigger = "backdrop"
	TriggerEscape   Trigger = "escape"
)

func ParseTrigger(s string) (Trigger, error) {
	switch t := Trigger(s); t {
	case TriggerButton, TriggerBackdrop, TriggerEscape:
		return t, nil
	case "":
		return TriggerButton, nil
	}
	return "", fmt.Errorf("unknown close trigger %q", s)
}

var slotLabels = [3]string{"Front View", "Side View", "Back View"}

type Image struct {
	URL   string `json:"url"`
	Label string `json:"label"`
}

// ScrollLock suspends page scrolling until the returned release func is called.
type ScrollLock interface {
	Suspend() (release func())
}

type Carousel struct {
	images  []Image
	current int
	lock    ScrollLock
	open    bool
	release func()
	closed  Trigger
}

// New builds a carousel over the listing's present image slots, in front, side, back order.
func New(images entity.ListingImages, lock ScrollLock) *Carousel {
	c := &Carousel{lock: lock}
	for i, url := range images.Slots() {
		if url == nil || *url == "" {
			continue
		}
		c.images = append(c.images, Image{URL: *url, Label: slotLabels[i]})
	}
	return c
}

func (c *Carousel) Len() int {
	return len(c.images)
}

func (c *Carousel) Index() int {
	return c.current
}

// Current returns the image on display, false for a placeholder carousel.
func (c *Carousel) Current() (Image, bool) {
	if len(c.images) == 0 {
		return Image{}, false
	}
	return c.images[c.current], true
}

func (c *Carousel) Next() error {
	n := len(c.images)
	if n == 0 {
		return ErrNoImages
	}
	c.current = (c.current + 1) % n
	return nil
}

func (c *Carousel) Previous() error {
	n := len(c.images)
	if n == 0 {
		return ErrNoImages
	}
	c.current = (c.current - 1 + n) % n
	return nil
}

func (c *Carousel) JumpTo(i int) error {
	if len(c.images) == 0 {
		return ErrNoImages
	}
	if i < 0 || i >= len(c.images) {
		return fmt.Errorf("%w: %d not in [0,%d]", ErrOutOfRange, i, len(c.images)-1)
	}
	c.current = i
	return nil
}

// Controls reports whether navigation arrows and position indicators exist at all.
func (c *Carousel) Controls() bool {
	return len(c.images) > 1
}

// OpenFullscreen shows the current image in the overlay and suspends page scroll.
// Opening an already open overlay changes nothing.
func (c *Carousel) OpenFullscreen() error {
	if len(c.images) == 0 {
		return ErrNoImages
	}
	if c.open {
		return nil
	}

	release := func() {}
	if c.lock != nil {
		release = c.lock.Suspend()
	}
	var once sync.Once
	c.release = func() { once.Do(release) }
	c.open = true
	c.closed = ""
	return nil
}

// Close dismisses the overlay. Every trigger funnels into the same release, so scroll is
// restored exactly once however many triggers fire.
func (c *Carousel) Close(trigger Trigger) {
	if !c.open {
		return
	}
	c.open = false
	c.closed = trigger
	c.release()
}

func (c *Carousel) Fullscreen() bool {
	return c.open
}

// State is the serialisable snapshot of a carousel.
type State struct {
	Images     []Image `json:"images"`
	Index      int     `json:"index"`
	Current    *Image  `json:"current,omitempty"`
	Controls   bool    `json:"controls"`
	Indicators []bool  `json:"indicators,omitempty"`
	Fullscreen bool    `json:"fullscreen"`
	ClosedBy   Trigger `json:"closedBy,omitempty"`
}

func (c *Carousel) State() State {
	s := State{
		Images:     append([]Image{}, c.images...),
		Index:      c.current,
		Controls:   c.Controls(),
		Fullscreen: c.open,
		ClosedBy:   c.closed,
	}
	if img, ok := c.Current(); ok {
		s.Current = &img
	}
	if s.Controls {
		s.Indicators = make([]bool, len(c.images))
		s.Indicators[c.current] = true
	}
	return s
}
