package pagination

import (
	"fmt"
	"net/url"
	"strconv"
)

// Control is the view model of the pagination bar
type Control struct {
	Page          int
	Size          int
	TotalPages    int
	TotalElements int64
	Sizes         []int

	path  string
	query url.Values
}

// NewControl builds the control for a page rendered at path. Extra query
// values (filters) are kept on every link.
func NewControl[T any](p Page[T], path string, query url.Values) Control {
	size := p.Size
	if size <= 0 {
		size = DefaultSize
	}
	q := url.Values{}
	for k, v := range query {
		if k != "page" && k != "size" {
			q[k] = v
		}
	}
	return Control{
		Page:          p.Number,
		Size:          size,
		TotalPages:    p.TotalPages,
		TotalElements: p.TotalElements,
		Sizes:         Sizes,
		path:          path,
		query:         q,
	}
}

func (c Control) CanPrev() bool { return c.Page > 0 }

func (c Control) CanNext() bool { return c.Page < c.TotalPages-1 }

func (c Control) LastPage() int { return max(c.TotalPages-1, 0) }

// Label renders "Page X of Y"; an empty result reads "Page 0 of 0"
func (c Control) Label() string {
	current := c.Page + 1
	if c.TotalPages == 0 {
		current = 0
	}
	return fmt.Sprintf("Page %d of %d", current, c.TotalPages)
}

// Start is the 1-based index of the first row shown
func (c Control) Start() int64 {
	if c.TotalElements == 0 {
		return 0
	}
	return int64(c.Page*c.Size) + 1
}

// End is the 1-based index of the last row shown
func (c Control) End() int64 {
	return min(int64((c.Page+1)*c.Size), c.TotalElements)
}

// Showing renders "Showing start-end of total"
func (c Control) Showing() string {
	return fmt.Sprintf("Showing %d-%d of %d", c.Start(), c.End(), c.TotalElements)
}

// PageURL links to page n at the current size
func (c Control) PageURL(n int) string {
	return c.link(n, c.Size)
}

// SizeURL links to size s; changing size resets to the first page
func (c Control) SizeURL(s int) string {
	return c.link(0, s)
}

func (c Control) PrevURL() string { return c.PageURL(max(c.Page-1, 0)) }

func (c Control) NextURL() string { return c.PageURL(min(c.Page+1, c.LastPage())) }

func (c Control) FirstURL() string { return c.PageURL(0) }

func (c Control) LastURL() string { return c.PageURL(c.LastPage()) }

func (c Control) link(page, size int) string {
	q := url.Values{}
	for k, v := range c.query {
		q[k] = v
	}
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))
	return c.path + "?" + q.Encode()
}
