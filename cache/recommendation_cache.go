package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"github.com/HaiderNafees/ElysianThreads/config"
	"github.com/HaiderNafees/ElysianThreads/models"
)

const TTL = 10 * time.Minute

// ── Recommendation response cache ───────────────────────────────────────────
// Keyed by the browsing history: the same history gets the same answer for a
// while instead of a fresh model call. Degrades to a miss when Redis is not
// connected.

func recommendationKey(browsingHistory []string) string {
	sum := sha256.Sum256([]byte(strings.Join(browsingHistory, "\x00")))
	return "rec:" + hex.EncodeToString(sum[:16])
}

func GetRecommendations(ctx context.Context, browsingHistory []string) (models.RecommendationResponse, bool) {
	if config.RedisClient == nil {
		return models.RecommendationResponse{}, false
	}
	raw, err := config.RedisClient.Get(ctx, recommendationKey(browsingHistory)).Result()
	if err != nil {
		return models.RecommendationResponse{}, false
	}
	var resp models.RecommendationResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return models.RecommendationResponse{}, false
	}
	return resp, true
}

func SetRecommendations(ctx context.Context, browsingHistory []string, resp models.RecommendationResponse) {
	if config.RedisClient == nil {
		return
	}
	raw, err := json.Marshal(resp)
	if err != nil {
		return
	}
	config.RedisClient.Set(ctx, recommendationKey(browsingHistory), raw, TTL)
}

// Invalidate drops every cached recommendation (catalog reload, model swap).
func Invalidate(ctx context.Context) {
	if config.RedisClient == nil {
		return
	}
	iter := config.RedisClient.Scan(ctx, 0, "rec:*", 0).Iterator()
	for iter.Next(ctx) {
		config.RedisClient.Del(ctx, iter.Val())
	}
}
