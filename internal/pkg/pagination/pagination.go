package pagination

import (
	"bytes"
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// DefaultSize is the default number of items per page
const DefaultSize = 10

// MaxSize is the maximum number of items per page
const MaxSize = 100

// Sizes are the page sizes offered by the page-size selector
var Sizes = []int{10, 20, 50, 100}

// Params is a 0-based page request. A zero Size means "everything".
type Params struct {
	Page int `json:"page"`
	Size int `json:"size"`
}

// All requests the unpaginated collection
var All = Params{}

// Paged reports whether the request asks for a window
func (p Params) Paged() bool { return p.Size > 0 }

// Query renders the params as backend query parameters
func (p Params) Query() url.Values {
	q := url.Values{}
	if p.Paged() {
		q.Set("page", strconv.Itoa(p.Page))
		q.Set("size", strconv.Itoa(p.Size))
	}
	return q
}

// GetParams extracts pagination parameters from request
func GetParams(c *fiber.Ctx) Params {
	page, _ := strconv.Atoi(c.Query("page", "0"))
	size, _ := strconv.Atoi(c.Query("size", strconv.Itoa(DefaultSize)))

	if page < 0 {
		page = 0
	}
	if size < 1 {
		size = DefaultSize
	}
	if size > MaxSize {
		size = MaxSize
	}

	return Params{Page: page, Size: size}
}

// Page is a normalized list response
type Page[T any] struct {
	Items         []T   `json:"items"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Number        int   `json:"number"`
	Size          int   `json:"size"`
}

type envelope[T any] struct {
	Content       []T    `json:"content"`
	TotalElements *int64 `json:"totalElements"`
	TotalPages    *int   `json:"totalPages"`
	Number        *int   `json:"number"`
	Size          *int   `json:"size"`
}

// Normalize decodes either a bare JSON array or a paged envelope into a Page.
// Arrays are windowed locally; envelope fields override the caller's state.
func Normalize[T any](raw []byte, p Params) (Page[T], error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return FromSlice([]T{}, p), nil
	}

	if trimmed[0] == '[' {
		var all []T
		if err := json.Unmarshal(trimmed, &all); err != nil {
			return Page[T]{}, err
		}
		return FromSlice(all, p), nil
	}

	var env envelope[T]
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return Page[T]{}, err
	}

	page := Page[T]{Items: env.Content, Number: p.Page, Size: p.Size}
	if page.Items == nil {
		page.Items = []T{}
	}
	if env.Number != nil {
		page.Number = *env.Number
	}
	if env.Size != nil && *env.Size > 0 {
		page.Size = *env.Size
	}
	if env.TotalElements != nil {
		page.TotalElements = *env.TotalElements
	} else {
		page.TotalElements = int64(len(page.Items))
	}
	if env.TotalPages != nil {
		page.TotalPages = *env.TotalPages
	} else {
		page.TotalPages = pagesFor(page.TotalElements, page.Size)
	}
	return page, nil
}

// FromSlice windows a full collection. Out-of-range pages are empty.
func FromSlice[T any](all []T, p Params) Page[T] {
	total := len(all)
	if !p.Paged() {
		return Page[T]{Items: all, TotalElements: int64(total), TotalPages: pagesFor(int64(total), total), Size: total}
	}

	start := min(p.Page*p.Size, total)
	end := min(start+p.Size, total)
	return Page[T]{
		Items:         all[start:end],
		TotalElements: int64(total),
		TotalPages:    pagesFor(int64(total), p.Size),
		Number:        p.Page,
		Size:          p.Size,
	}
}

func pagesFor(total int64, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	return int((total + int64(size) - 1) / int64(size))
}
