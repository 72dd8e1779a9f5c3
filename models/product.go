package models

// Category ids are a closed set shared by products and category records.
const (
	CategoryNewArrivals     = "new-arrivals"
	CategoryLuxuryFormals   = "luxury-formals"
	CategoryEverydayComfort = "everyday-comfort"
)

// CategoryIDs lists every valid category id in display order.
var CategoryIDs = []string{
	CategoryNewArrivals,
	CategoryLuxuryFormals,
	CategoryEverydayComfort,
}

func ValidCategoryID(id string) bool {
	for _, c := range CategoryIDs {
		if c == id {
			return true
		}
	}
	return false
}

// ImageRef points at a hosted product image.
type ImageRef struct {
	ID       string `json:"id"`
	ImageURL string `json:"imageUrl"`
	Hint     string `json:"imageHint,omitempty"`
}

// Product is an immutable catalog record, loaded once at startup and never
// mutated at runtime.
type Product struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Price       float64    `json:"price"`
	Category    string     `json:"category"`
	Images      []ImageRef `json:"images"`
	Stock       int        `json:"stock"`
	Description string     `json:"description"`
	Details     string     `json:"details"`
	Fabric      string     `json:"fabric"`
	Colors      []string   `json:"colors"`
	Rating      float64    `json:"rating"`
	ReviewCount int        `json:"reviewCount"`
}

// HasColor reports set membership over the product's colour list.
func (p Product) HasColor(color string) bool {
	for _, c := range p.Colors {
		if c == color {
			return true
		}
	}
	return false
}

type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}
