package models

// CatalogEntry is the slimmed product view sent to the recommendation
// collaborator.
type CatalogEntry struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// RecommendationRequest is the contract with the generative-text service.
type RecommendationRequest struct {
	BrowsingHistory []string       `json:"browsingHistory"`
	ProductCatalog  []CatalogEntry `json:"productCatalog"`
}

// RecommendationResponse carries product ids drawn from the catalog.
type RecommendationResponse struct {
	Recommendations []string `json:"recommendations"`
}
