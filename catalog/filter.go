package catalog

import (
	"sort"
	"strconv"

	"github.com/HaiderNafees/ElysianThreads/models"
)

// Derive computes the filtered, sorted product list for the storefront. It
// is a pure function: the input slice is never modified and the result is
// always non-nil, so an empty result is distinguishable from "not computed".
//
// The filters compose with logical AND and each one is an independent
// predicate over a single record, so application order is irrelevant. Price
// bounds are clamped to [0, max catalog price]. Sorting happens strictly
// after filtering and is stable: products with equal sort keys keep their
// relative catalog order.
func Derive(products []models.Product, f models.FilterState, key models.SortKey) []models.Product {
	minPrice, maxPrice := clampPriceRange(products, f.MinPrice, f.MaxPrice)

	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if !filterValue(f.Category) && p.Category != f.Category {
			continue
		}
		if !filterValue(f.Color) && !p.HasColor(f.Color) {
			continue
		}
		if !filterValue(f.Fabric) && p.Fabric != f.Fabric {
			continue
		}
		if p.Price < minPrice || p.Price > maxPrice {
			continue
		}
		out = append(out, p)
	}

	switch key {
	case models.SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case models.SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	default:
		// newest: descending numeric id, a proxy for insertion order.
		sort.SliceStable(out, func(i, j int) bool { return numericID(out[i].ID) > numericID(out[j].ID) })
	}
	return out
}

// filterValue reports whether a string dimension is cleared. An empty value
// counts as cleared so a zero FilterState behaves like "all".
func filterValue(v string) bool {
	return v == "" || v == models.FilterAll
}

func clampPriceRange(products []models.Product, min, max float64) (float64, float64) {
	var catalogMax float64
	for _, p := range products {
		if p.Price > catalogMax {
			catalogMax = p.Price
		}
	}
	if min < 0 {
		min = 0
	}
	if max > catalogMax {
		max = catalogMax
	}
	return min, max
}

// numericID parses a product id for the newest comparator. Ids that fail to
// parse sort as 0, i.e. oldest; the stable sort keeps their seed order.
func numericID(id string) int {
	n, err := strconv.Atoi(id)
	if err != nil {
		return 0
	}
	return n
}
