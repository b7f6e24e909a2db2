// Package pagination computes the windowed page controls shown under the
// result table.
package pagination

import "strconv"

const (
	// MaxUnwindowed is the largest page count rendered without ellipses
	MaxUnwindowed = 10
	// Radius is the number of pages shown on each side of the current page
	Radius = 2
)

// Item is one pagination control: a page number or an ellipsis marker
type Item struct {
	Page     int  `json:"page,omitempty"`
	Ellipsis bool `json:"ellipsis,omitempty"`
	Active   bool `json:"active,omitempty"`
}

// Label returns the text shown for the control
func (i Item) Label() string {
	if i.Ellipsis {
		return "..."
	}
	return strconv.Itoa(i.Page)
}

// Clickable reports whether selecting the control changes the page.
// The active page is already selected.
func (i Item) Clickable() bool {
	return !i.Ellipsis && !i.Active
}

// Window returns the controls for current within totalPages.
// Up to MaxUnwindowed pages every page is listed; beyond that the first and
// last pages are pinned around a window of Radius pages either side of the
// current one, with an ellipsis wherever the window does not touch them.
func Window(current, totalPages int) []Item {
	if totalPages < 1 {
		totalPages = 1
	}

	items := make([]Item, 0, 2*Radius+5)
	add := func(p int) {
		items = append(items, Item{Page: p, Active: p == current})
	}

	if totalPages <= MaxUnwindowed {
		for p := 1; p <= totalPages; p++ {
			add(p)
		}
		return items
	}

	add(1)
	start := max(2, current-Radius)
	end := min(totalPages-1, current+Radius)
	if start > 2 {
		items = append(items, Item{Ellipsis: true})
	}
	for p := start; p <= end; p++ {
		add(p)
	}
	if end < totalPages-1 {
		items = append(items, Item{Ellipsis: true})
	}
	add(totalPages)
	return items
}

// Labels flattens items to their display text
func Labels(items []Item) []string {
	labels := make([]string, len(items))
	for i, item := range items {
		labels[i] = item.Label()
	}
	return labels
}
