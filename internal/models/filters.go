package models

import (
	"fmt"
	"net/url"
)

// ContentFilters is the shared filter/sort vocabulary for public content
// listings. The HTTP boundary and the content store both validate against
// it so neither can drift on what values are legal.
type ContentFilters struct {
	Search   string   // case-insensitive substring over title, excerpt, author
	Category Category // empty or "all" = no restriction
	Kind     Kind     // empty or "all" = no restriction
	Sort     Sort     // empty = newest
}

// Validate rejects any category/kind/sort value outside its closed
// enumeration. Missing fields mean "no restriction" (category, kind) or the
// documented default (sort = newest).
func (f *ContentFilters) Validate() error {
	if f.Category != "" && f.Category != "all" && !ValidCategory(f.Category) {
		return fmt.Errorf("invalid category %q", f.Category)
	}
	if f.Kind != "" && f.Kind != "all" && !ValidKind(f.Kind) {
		return fmt.Errorf("invalid type %q", f.Kind)
	}
	if f.Sort != "" && !ValidSort(f.Sort) {
		return fmt.Errorf("invalid sort %q", f.Sort)
	}
	return nil
}

// FiltersFromQuery parses listing filters from URL query parameters and
// validates them.
func FiltersFromQuery(q url.Values) (*ContentFilters, error) {
	f := &ContentFilters{
		Search:   q.Get("search"),
		Category: Category(q.Get("category")),
		Kind:     Kind(q.Get("type")),
		Sort:     Sort(q.Get("sort")),
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// HasCategory reports whether the category filter restricts the listing.
func (f *ContentFilters) HasCategory() bool {
	return f.Category != "" && f.Category != "all"
}

// HasKind reports whether the kind filter restricts the listing.
func (f *ContentFilters) HasKind() bool {
	return f.Kind != "" && f.Kind != "all"
}
