package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/HaiderNafees/ElysianThreads/cache"
	"github.com/HaiderNafees/ElysianThreads/catalog"
	"github.com/HaiderNafees/ElysianThreads/models"
)

const recommendationSystemPrompt = "You are an expert fashion consultant providing personalized product recommendations based on a user's browsing history and a product catalog."

// RecommendationService builds the request contract for the generative-text
// collaborator and validates what comes back. The model itself is an
// external concern; this service only owns the request/response shapes.
type RecommendationService struct {
	generator Generator
	catalog   *catalog.Store
}

func NewRecommendationService(generator Generator, cat *catalog.Store) *RecommendationService {
	return &RecommendationService{generator: generator, catalog: cat}
}

// BuildRequest assembles the contract request from browsing history and the
// slimmed catalog.
func (s *RecommendationService) BuildRequest(browsingHistory []string) models.RecommendationRequest {
	products := s.catalog.Products()
	entries := make([]models.CatalogEntry, 0, len(products))
	for _, p := range products {
		entries = append(entries, models.CatalogEntry{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Category:    p.Category,
		})
	}
	return models.RecommendationRequest{
		BrowsingHistory: browsingHistory,
		ProductCatalog:  entries,
	}
}

// Recommend returns catalog product ids the user might like. Responses are
// cached per browsing history; ids the model invents are dropped.
func (s *RecommendationService) Recommend(ctx context.Context, browsingHistory []string) (models.RecommendationResponse, error) {
	if cached, ok := cache.GetRecommendations(ctx, browsingHistory); ok {
		return cached, nil
	}

	req := s.BuildRequest(browsingHistory)
	raw, err := s.generator.Complete(ctx, buildPrompt(req), map[string]any{
		"system": recommendationSystemPrompt,
	})
	if err != nil {
		return models.RecommendationResponse{}, fmt.Errorf("recommendation generation failed: %w", err)
	}

	resp := models.RecommendationResponse{
		Recommendations: s.validIDs(parseRecommendations(raw)),
	}
	cache.SetRecommendations(ctx, browsingHistory, resp)
	return resp, nil
}

func buildPrompt(req models.RecommendationRequest) string {
	var b strings.Builder
	b.WriteString("Given the following browsing history:\n")
	for _, id := range req.BrowsingHistory {
		fmt.Fprintf(&b, "- %s\n", id)
	}
	b.WriteString("\nAnd the following product catalog:\n")
	for _, e := range req.ProductCatalog {
		fmt.Fprintf(&b, "- ID: %s, Name: %s, Description: %s, Category: %s\n", e.ID, e.Name, e.Description, e.Category)
	}
	b.WriteString("\nRecommend products (by ID) from the product catalog that the user might be interested in, based on their browsing history. Return ONLY a JSON array of product ID strings.")
	return b.String()
}

// parseRecommendations accepts either a bare JSON array of ids or the
// wrapped {"recommendations": [...]} object, tolerating surrounding prose.
func parseRecommendations(raw string) []string {
	raw = strings.TrimSpace(raw)

	var wrapped models.RecommendationResponse
	if err := json.Unmarshal([]byte(raw), &wrapped); err == nil && wrapped.Recommendations != nil {
		return wrapped.Recommendations
	}

	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start < 0 || end <= start {
		log.Printf("⚠️ Recommender returned no parseable id list")
		return nil
	}
	var ids []string
	if err := json.Unmarshal([]byte(raw[start:end+1]), &ids); err != nil {
		log.Printf("⚠️ Recommender id list unparseable: %v", err)
		return nil
	}
	return ids
}

// validIDs keeps only ids present in the catalog, deduplicated, preserving
// the model's ranking.
func (s *RecommendationService) validIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if _, ok := s.catalog.Product(id); ok {
			out = append(out, id)
		}
	}
	return out
}

var recommendations *RecommendationService

// InitRecommendations wires the package-wide service. Called once from main.
func InitRecommendations(generator Generator, cat *catalog.Store) {
	recommendations = NewRecommendationService(generator, cat)
	log.Printf("✅ Recommendation service initialized (model: %s)", generator.Model())
}

// Recommendations returns the service configured by InitRecommendations.
func Recommendations() *RecommendationService { return recommendations }
