package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"log"

	"github.com/HaiderNafees/ElysianThreads/models"
)

//go:embed data/products.json
var productsJSON []byte

//go:embed data/categories.json
var categoriesJSON []byte

// Store holds the read-only catalog. It is fully built by Load and never
// mutated afterwards, so it is safe to share without locking.
type Store struct {
	products   []models.Product
	byID       map[string]models.Product
	categories []models.Category
	catByID    map[string]models.Category
	maxPrice   float64
	colors     []string
	fabrics    []string
}

// Load parses and validates the embedded catalog seed.
func Load() (*Store, error) {
	var products []models.Product
	if err := json.Unmarshal(productsJSON, &products); err != nil {
		return nil, fmt.Errorf("parse products seed: %w", err)
	}
	var categories []models.Category
	if err := json.Unmarshal(categoriesJSON, &categories); err != nil {
		return nil, fmt.Errorf("parse categories seed: %w", err)
	}
	return build(products, categories)
}

func build(products []models.Product, categories []models.Category) (*Store, error) {
	s := &Store{
		products:   products,
		byID:       make(map[string]models.Product, len(products)),
		categories: categories,
		catByID:    make(map[string]models.Category, len(categories)),
	}

	for _, c := range categories {
		if !models.ValidCategoryID(c.ID) {
			return nil, fmt.Errorf("category %q: unknown id", c.ID)
		}
		s.catByID[c.ID] = c
	}

	seenColor := map[string]bool{}
	seenFabric := map[string]bool{}
	for _, p := range products {
		if err := validateProduct(p); err != nil {
			return nil, err
		}
		if _, dup := s.byID[p.ID]; dup {
			return nil, fmt.Errorf("product %q: duplicate id", p.ID)
		}
		s.byID[p.ID] = p
		if p.Price > s.maxPrice {
			s.maxPrice = p.Price
		}
		for _, c := range p.Colors {
			if !seenColor[c] {
				seenColor[c] = true
				s.colors = append(s.colors, c)
			}
		}
		if !seenFabric[p.Fabric] {
			seenFabric[p.Fabric] = true
			s.fabrics = append(s.fabrics, p.Fabric)
		}
	}
	return s, nil
}

func validateProduct(p models.Product) error {
	switch {
	case p.ID == "":
		return fmt.Errorf("product with empty id")
	case p.Price < 0:
		return fmt.Errorf("product %q: negative price", p.ID)
	case !models.ValidCategoryID(p.Category):
		return fmt.Errorf("product %q: unknown category %q", p.ID, p.Category)
	case len(p.Images) == 0:
		return fmt.Errorf("product %q: no images", p.ID)
	case p.Stock < 0:
		return fmt.Errorf("product %q: negative stock", p.ID)
	case len(p.Colors) == 0:
		return fmt.Errorf("product %q: no colors", p.ID)
	case p.Rating < 0 || p.Rating > 5:
		return fmt.Errorf("product %q: rating %.1f out of range", p.ID, p.Rating)
	case p.ReviewCount < 0:
		return fmt.Errorf("product %q: negative review count", p.ID)
	}
	return nil
}

// Products returns a copy of the full catalog in seed order.
func (s *Store) Products() []models.Product {
	out := make([]models.Product, len(s.products))
	copy(out, s.products)
	return out
}

// Product looks a record up by id.
func (s *Store) Product(id string) (models.Product, bool) {
	p, ok := s.byID[id]
	return p, ok
}

func (s *Store) Categories() []models.Category {
	out := make([]models.Category, len(s.categories))
	copy(out, s.categories)
	return out
}

func (s *Store) Category(id string) (models.Category, bool) {
	c, ok := s.catByID[id]
	return c, ok
}

// MaxPrice is the price of the most expensive product, the upper bound for
// price-range filters.
func (s *Store) MaxPrice() float64 { return s.maxPrice }

// Colors returns the distinct colour facet values in first-seen order.
func (s *Store) Colors() []string {
	out := make([]string, len(s.colors))
	copy(out, s.colors)
	return out
}

// Fabrics returns the distinct fabric facet values in first-seen order.
func (s *Store) Fabrics() []string {
	out := make([]string, len(s.fabrics))
	copy(out, s.fabrics)
	return out
}

// FilterMetadata bundles the facet data the storefront's filter sidebar
// renders from.
func (s *Store) FilterMetadata() models.FilterMetadata {
	return models.FilterMetadata{
		Categories: s.Categories(),
		Colors:     s.Colors(),
		Fabrics:    s.Fabrics(),
		MinPrice:   0,
		MaxPrice:   s.maxPrice,
	}
}

var defaultStore *Store

// Init loads the embedded catalog into the package-wide store. Called once
// from main; a broken seed is a startup failure.
func Init() {
	s, err := Load()
	if err != nil {
		log.Fatalf("❌ Failed to load catalog: %v", err)
	}
	defaultStore = s
	log.Printf("✅ Catalog loaded: %d products, %d categories", len(s.products), len(s.categories))
}

// Default returns the store populated by Init.
func Default() *Store { return defaultStore }
