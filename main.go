package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/HaiderNafees/ElysianThreads/catalog"
	"github.com/HaiderNafees/ElysianThreads/config"
	"github.com/HaiderNafees/ElysianThreads/routes"
	"github.com/HaiderNafees/ElysianThreads/services"
	"github.com/HaiderNafees/ElysianThreads/store"
)

func init() {
	_ = godotenv.Load()
}

func main() {
	// ✅ Session tokens
	if os.Getenv("JWT_SECRET") == "" {
		log.Fatal("❌ JWT_SECRET environment variable not set")
	}

	// Embedded catalog
	catalog.Init()

	// Redis connection (rate limiting + recommendation cache)
	config.ConnectRedis()

	// Document store backend
	var client store.DocumentClient
	if os.Getenv("STORE_BACKEND") == "memory" {
		log.Println("⚠️ Using in-memory document store, data will not persist")
		client = store.NewMemoryClient()
	} else {
		config.InitFirebase()
		client = store.NewFirestoreClient(config.FirestoreDB)
		defer config.CloseFirestore()
	}

	emitter := services.NewErrorEmitter()
	emitter.Subscribe(services.LogListener)

	services.InitSessions(client, emitter, catalog.Default())

	// ✅ Recommendation generator
	generator, err := services.NewGeneratorFromEnv()
	if err != nil {
		log.Fatalf("Failed to initialize recommendation generator: %v", err)
	}
	log.Printf("✅ Recommendation generator ready (model: %s)", generator.Model())
	services.InitRecommendations(generator, catalog.Default())

	corsCfg := cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:3001"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-CSRF-Token", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	router := gin.Default()
	router.Use(cors.New(corsCfg))

	// Register API routes
	api := router.Group("/api/v1")

	routes.SetupStorefrontRoutes(api)
	routes.SetupAuthRoutes(api)
	routes.SetupUserRoutes(api)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	fmt.Printf("🚀 Server is running on http://localhost:%s\n", port)
	router.Run(":" + port)
}
