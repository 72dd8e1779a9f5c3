package storefront_controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/assert/v2"

	"github.com/HaiderNafees/ElysianThreads/catalog"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	catalog.Init()

	router := gin.New()
	store := router.Group("/store")
	store.GET("/products", GetProducts)
	store.GET("/products/filters", GetFilterMetadata)
	store.GET("/products/:id", GetProductByID)
	store.GET("/categories", GetCategories)
	store.GET("/categories/:id", GetCategoryByID)
	return router
}

type envelope struct {
	Message string          `json:"message"`
	Error   bool            `json:"error"`
	Count   *int            `json:"count"`
	Data    json.RawMessage `json:"data"`
}

func get(t *testing.T, router *gin.Engine, url string) (int, envelope) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	router.ServeHTTP(w, req)

	var body envelope
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return w.Code, body
}

func productIDs(t *testing.T, data json.RawMessage) []string {
	t.Helper()
	var products []struct {
		ID    string  `json:"id"`
		Price float64 `json:"price"`
	}
	if err := json.Unmarshal(data, &products); err != nil {
		t.Fatalf("decode products: %v", err)
	}
	ids := make([]string, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	return ids
}

func TestGetProductsDefaultsToNewest(t *testing.T) {
	router := newTestRouter(t)

	code, body := get(t, router, "/store/products")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, false, body.Error)
	assert.Equal(t, len(catalog.Default().Products()), *body.Count)

	ids := productIDs(t, body.Data)
	// newest first: highest numeric id leads
	assert.Equal(t, "12", ids[0])
	assert.Equal(t, "1", ids[len(ids)-1])
}

func TestGetProductsSortsByPrice(t *testing.T) {
	router := newTestRouter(t)

	code, body := get(t, router, "/store/products?sortBy=price-asc")
	assert.Equal(t, http.StatusOK, code)

	var products []struct {
		Price float64 `json:"price"`
	}
	err := json.Unmarshal(body.Data, &products)
	assert.Equal(t, nil, err)
	for i := 1; i < len(products); i++ {
		if products[i].Price < products[i-1].Price {
			t.Fatalf("prices not ascending at index %d", i)
		}
	}
}

func TestGetProductsFiltersByCategory(t *testing.T) {
	router := newTestRouter(t)

	code, body := get(t, router, "/store/products?category=new-arrivals")
	assert.Equal(t, http.StatusOK, code)
	assert.NotEqual(t, 0, *body.Count)

	var products []struct {
		Category string `json:"category"`
	}
	err := json.Unmarshal(body.Data, &products)
	assert.Equal(t, nil, err)
	for _, p := range products {
		assert.Equal(t, "new-arrivals", p.Category)
	}
}

func TestGetProductsEmptyResultIsOK(t *testing.T) {
	router := newTestRouter(t)

	code, body := get(t, router, "/store/products?minPrice=99998&maxPrice=99999")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, false, body.Error)
	assert.Equal(t, 0, *body.Count)
}

func TestGetProductsAllClearsFilter(t *testing.T) {
	router := newTestRouter(t)

	_, all := get(t, router, "/store/products?category=all&color=all&fabric=all")
	_, none := get(t, router, "/store/products")
	assert.Equal(t, *none.Count, *all.Count)
}

func TestGetProductByID(t *testing.T) {
	router := newTestRouter(t)

	code, body := get(t, router, "/store/products/1")
	assert.Equal(t, http.StatusOK, code)
	var product struct {
		ID string `json:"id"`
	}
	err := json.Unmarshal(body.Data, &product)
	assert.Equal(t, nil, err)
	assert.Equal(t, "1", product.ID)

	code, body = get(t, router, "/store/products/does-not-exist")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, true, body.Error)
}

func TestGetCategories(t *testing.T) {
	router := newTestRouter(t)

	code, body := get(t, router, "/store/categories")
	assert.Equal(t, http.StatusOK, code)
	var categories []struct {
		ID string `json:"id"`
	}
	err := json.Unmarshal(body.Data, &categories)
	assert.Equal(t, nil, err)
	assert.Equal(t, 3, len(categories))

	code, _ = get(t, router, "/store/categories/"+categories[0].ID)
	assert.Equal(t, http.StatusOK, code)
	code, _ = get(t, router, "/store/categories/menswear")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestGetFilterMetadata(t *testing.T) {
	router := newTestRouter(t)

	code, body := get(t, router, "/store/products/filters")
	assert.Equal(t, http.StatusOK, code)

	var meta struct {
		Categories []struct {
			ID string `json:"id"`
		} `json:"categories"`
		Colors   []string `json:"colors"`
		Fabrics  []string `json:"fabrics"`
		MinPrice float64  `json:"minPrice"`
		MaxPrice float64  `json:"maxPrice"`
	}
	err := json.Unmarshal(body.Data, &meta)
	assert.Equal(t, nil, err)
	assert.Equal(t, 3, len(meta.Categories))
	assert.NotEqual(t, 0, len(meta.Colors))
	assert.NotEqual(t, 0, len(meta.Fabrics))
	assert.Equal(t, float64(0), meta.MinPrice)
	assert.Equal(t, catalog.Default().MaxPrice(), meta.MaxPrice)
}
