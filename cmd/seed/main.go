package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/HaiderNafees/ElysianThreads/catalog"
	"github.com/HaiderNafees/ElysianThreads/config"
	"github.com/HaiderNafees/ElysianThreads/store"
)

// init loads environment variables
func init() {
	_ = godotenv.Load()
}

// main seeds a demo cart and wishlist for a user
// Usage: go run cmd/seed/main.go -uid <firebase-uid>
// This is a standalone CLI tool, not part of the main application
func main() {
	uid := flag.String("uid", "", "user id to seed documents for")
	flag.Parse()
	if *uid == "" {
		log.Fatal("❌ -uid is required")
	}

	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Println("ELYSIAN THREADS - Demo Data Seeder")
	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Println()

	catalog.Init()
	config.InitFirebase()
	defer config.CloseFirestore()
	client := store.NewFirestoreClient(config.FirestoreDB)
	log.Println("✓ Connected to document store")

	ctx := context.Background()
	products := catalog.Default().Products()
	if len(products) < 4 {
		log.Fatal("❌ Catalog too small to seed from")
	}

	// Two cart lines and two saved products from the embedded catalog
	for i, p := range products[:2] {
		path := store.DocPath(store.UserCollectionPath(*uid, store.KindCart), p.ID)
		err := client.SetDocument(ctx, path, map[string]any{
			"productId": p.ID,
			"quantity":  i + 1,
		}, true)
		if err != nil {
			log.Fatalf("Failed to seed cart item %s: %v", p.ID, err)
		}
		log.Printf("✓ Cart: %s x%d", p.Name, i+1)
	}

	for _, p := range products[2:4] {
		path := store.DocPath(store.UserCollectionPath(*uid, store.KindWishlist), p.ID)
		err := client.SetDocument(ctx, path, map[string]any{
			"productId": p.ID,
		}, true)
		if err != nil {
			log.Fatalf("Failed to seed wishlist item %s: %v", p.ID, err)
		}
		log.Printf("✓ Wishlist: %s", p.Name)
	}

	fmt.Println()
	fmt.Printf("✅ Seeded demo data for user %s\n", *uid)
}
