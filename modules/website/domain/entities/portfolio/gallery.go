package portfolio

import "errors"

var ErrEmptyGallery = errors.New("gallery has no items")

// Lightbox is a cursor over an ordered set of projects. Next and Prev
// wrap around, so a single-item gallery stays on its only item and the
// last item's successor is the first.
type Lightbox struct {
	items []Project
	index int
}

func OpenLightbox(items []Project, index int) (*Lightbox, error) {
	if len(items) == 0 {
		return nil, ErrEmptyGallery
	}
	if index < 0 || index >= len(items) {
		index = 0
	}
	return &Lightbox{items: items, index: index}, nil
}

func (l *Lightbox) Current() Project {
	return l.items[l.index]
}

func (l *Lightbox) Index() int {
	return l.index
}

func (l *Lightbox) Len() int {
	return len(l.items)
}

func (l *Lightbox) Next() Project {
	l.index = (l.index + 1) % len(l.items)
	return l.items[l.index]
}

func (l *Lightbox) Prev() Project {
	l.index = (l.index - 1 + len(l.items)) % len(l.items)
	return l.items[l.index]
}

// Carousel is the same wraparound cursor with relative jumps, used by
// the scrolling showcase strip.
type Carousel struct {
	size  int
	index int
}

func NewCarousel(size int) (*Carousel, error) {
	if size <= 0 {
		return nil, ErrEmptyGallery
	}
	return &Carousel{size: size}, nil
}

func (c *Carousel) Index() int {
	return c.index
}

// Jump moves to an absolute slide, clamping out-of-range targets to the
// nearest edge.
func (c *Carousel) Jump(index int) int {
	if index < 0 {
		index = 0
	}
	if index >= c.size {
		index = c.size - 1
	}
	c.index = index
	return c.index
}

// Offset moves by a relative number of slides, wrapping in both
// directions.
func (c *Carousel) Offset(delta int) int {
	c.index = ((c.index+delta)%c.size + c.size) % c.size
	return c.index
}
