package models

// FilterAll is the sentinel that disables a single filter dimension.
const FilterAll = "all"

// SortKey selects the comparator applied after filtering.
type SortKey string

const (
	SortNewest    SortKey = "newest"
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
)

// ParseSortKey maps a query value onto a SortKey, defaulting to newest.
func ParseSortKey(s string) SortKey {
	switch SortKey(s) {
	case SortPriceAsc, SortPriceDesc:
		return SortKey(s)
	default:
		return SortNewest
	}
}

// FilterState captures the storefront's filter dimensions. Zero-valued
// string dimensions are treated like FilterAll; price bounds are clamped to
// the catalog range by the engine.
type FilterState struct {
	Category string  `json:"category"`
	Color    string  `json:"color"`
	Fabric   string  `json:"fabric"`
	MinPrice float64 `json:"minPrice"`
	MaxPrice float64 `json:"maxPrice"`
}

// NewFilterState returns the cleared filter state for a catalog whose most
// expensive product costs maxPrice.
func NewFilterState(maxPrice float64) FilterState {
	return FilterState{
		Category: FilterAll,
		Color:    FilterAll,
		Fabric:   FilterAll,
		MinPrice: 0,
		MaxPrice: maxPrice,
	}
}

// FilterMetadata is the facet data a client needs to render filter controls.
type FilterMetadata struct {
	Categories []Category `json:"categories"`
	Colors     []string   `json:"colors"`
	Fabrics    []string   `json:"fabrics"`
	MinPrice   float64    `json:"minPrice"`
	MaxPrice   float64    `json:"maxPrice"`
}
