package format

import (
	"fmt"

	"github.com/mithrel/showcase/pkg/api"
)

// Carousel steps through a media list one item at a time. Stepping stops at
// either end; it never wraps.
type Carousel struct {
	Items []api.MediaItem
	index int
}

func NewCarousel(items []api.MediaItem) *Carousel {
	return &Carousel{Items: items}
}

// Current returns the selected item.
func (c *Carousel) Current() (api.MediaItem, bool) {
	if len(c.Items) == 0 {
		return api.MediaItem{}, false
	}
	return c.Items[c.index], true
}

func (c *Carousel) Index() int { return c.index }

func (c *Carousel) HasPrev() bool { return c.index > 0 }

func (c *Carousel) HasNext() bool { return c.index+1 < len(c.Items) }

// Prev moves back one item and reports whether it moved.
func (c *Carousel) Prev() bool {
	if !c.HasPrev() {
		return false
	}
	c.index--
	return true
}

// Next moves forward one item and reports whether it moved.
func (c *Carousel) Next() bool {
	if !c.HasNext() {
		return false
	}
	c.index++
	return true
}

// Position renders the 1-based position, e.g. "2 / 5".
func (c *Carousel) Position() string {
	if len(c.Items) == 0 {
		return "0 / 0"
	}
	return fmt.Sprintf("%d / %d", c.index+1, len(c.Items))
}
