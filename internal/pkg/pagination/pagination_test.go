package pagination

import (
	"net/url"
	"strconv"
	"strings"
	"testing"
)

type item struct {
	ID int `json:"id"`
}

func arrayOf(n int) []byte {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = `{"id":` + strconv.Itoa(i) + `}`
	}
	return []byte("[" + strings.Join(parts, ",") + "]")
}

func TestNormalizeArray(t *testing.T) {
	page, err := Normalize[item](arrayOf(25), Params{Page: 1, Size: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.TotalElements != 25 || page.TotalPages != 3 {
		t.Fatalf("expected 25 elements over 3 pages, got %d / %d", page.TotalElements, page.TotalPages)
	}
	if len(page.Items) != 10 || page.Items[0].ID != 10 || page.Items[9].ID != 19 {
		t.Fatalf("expected items[10:20], got %+v", page.Items)
	}
}

func TestNormalizeArrayOutOfRange(t *testing.T) {
	page, err := Normalize[item](arrayOf(5), Params{Page: 3, Size: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Items) != 0 {
		t.Fatalf("expected empty window, got %d items", len(page.Items))
	}
	if page.TotalPages != 1 {
		t.Fatalf("expected 1 page, got %d", page.TotalPages)
	}
}

func TestNormalizeEnvelope(t *testing.T) {
	raw := []byte(`{"content":[{"id":1},{"id":2}],"totalElements":42,"totalPages":5,"number":2,"size":20}`)
	page, err := Normalize[item](raw, Params{Page: 0, Size: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.TotalElements != 42 || page.TotalPages != 5 {
		t.Fatalf("expected envelope totals, got %d / %d", page.TotalElements, page.TotalPages)
	}
	if page.Number != 2 || page.Size != 20 {
		t.Fatalf("expected server page state to win, got number %d size %d", page.Number, page.Size)
	}
	if len(page.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(page.Items))
	}
}

func TestNormalizeEnvelopeWithoutState(t *testing.T) {
	page, err := Normalize[item]([]byte(`{"content":[],"totalElements":0,"totalPages":0}`), Params{Page: 4, Size: 50})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Number != 4 || page.Size != 50 {
		t.Fatalf("expected caller state to be kept, got %d / %d", page.Number, page.Size)
	}
	if page.Items == nil {
		t.Fatalf("expected non-nil empty items")
	}
}

func TestNormalizeUnpaged(t *testing.T) {
	page, err := Normalize[item](arrayOf(12), All)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Items) != 12 || page.TotalPages != 1 {
		t.Fatalf("expected the full list on one page, got %d items / %d pages", len(page.Items), page.TotalPages)
	}
}

func TestNormalizeEmptyBody(t *testing.T) {
	page, err := Normalize[item](nil, Params{Size: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.TotalPages != 0 || len(page.Items) != 0 {
		t.Fatalf("expected empty page, got %+v", page)
	}
}

func TestControl(t *testing.T) {
	tests := []struct {
		name    string
		page    Page[item]
		canPrev bool
		canNext bool
		label   string
		showing string
	}{
		{"First of three", Page[item]{Number: 0, Size: 10, TotalPages: 3, TotalElements: 25}, false, true, "Page 1 of 3", "Showing 1-10 of 25"},
		{"Middle", Page[item]{Number: 1, Size: 10, TotalPages: 3, TotalElements: 25}, true, true, "Page 2 of 3", "Showing 11-20 of 25"},
		{"Last", Page[item]{Number: 2, Size: 10, TotalPages: 3, TotalElements: 25}, true, false, "Page 3 of 3", "Showing 21-25 of 25"},
		{"Empty", Page[item]{Number: 0, Size: 10}, false, false, "Page 0 of 0", "Showing 0-0 of 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewControl(tt.page, "/deposits", nil)
			if c.CanPrev() != tt.canPrev || c.CanNext() != tt.canNext {
				t.Errorf("CanPrev/CanNext = %v/%v, want %v/%v", c.CanPrev(), c.CanNext(), tt.canPrev, tt.canNext)
			}
			if c.Label() != tt.label {
				t.Errorf("Label() = %q, want %q", c.Label(), tt.label)
			}
			if c.Showing() != tt.showing {
				t.Errorf("Showing() = %q, want %q", c.Showing(), tt.showing)
			}
		})
	}
}

func TestControlLinks(t *testing.T) {
	c := NewControl(Page[item]{Number: 2, Size: 20, TotalPages: 4, TotalElements: 70}, "/withdrawals", url.Values{"status": {"PENDING"}, "page": {"9"}})

	next, err := url.Parse(c.NextURL())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next.Path != "/withdrawals" || next.Query().Get("page") != "3" || next.Query().Get("status") != "PENDING" {
		t.Fatalf("unexpected next link %s", c.NextURL())
	}

	size, _ := url.Parse(c.SizeURL(50))
	if size.Query().Get("page") != "0" || size.Query().Get("size") != "50" {
		t.Fatalf("size change must reset page, got %s", c.SizeURL(50))
	}
}
