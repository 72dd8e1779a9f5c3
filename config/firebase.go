package config

import (
	"context"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go"
	"firebase.google.com/go/auth"
	"google.golang.org/api/option"
)

var (
	FirebaseApp *firebase.App
	AuthClient  *auth.Client
	FirestoreDB *firestore.Client
)

// InitFirebase connects the Firebase app, the auth client used to verify ID
// tokens, and the Firestore client backing per-user documents.
func InitFirebase() {
	ctx := context.Background()

	credsJSON := os.Getenv("FIREBASE_CREDENTIALS_JSON")
	if credsJSON == "" {
		log.Fatal("❌ FIREBASE_CREDENTIALS_JSON must be set")
	}
	projectID := os.Getenv("FIREBASE_PROJECT_ID")
	if projectID == "" {
		log.Fatal("❌ FIREBASE_PROJECT_ID must be set")
	}

	opt := option.WithCredentialsJSON([]byte(credsJSON))
	cfg := &firebase.Config{ProjectID: projectID}

	var err error
	FirebaseApp, err = firebase.NewApp(ctx, cfg, opt)
	if err != nil {
		log.Fatalf("❌ Error initializing Firebase app: %v", err)
	}

	AuthClient, err = FirebaseApp.Auth(ctx)
	if err != nil {
		log.Fatalf("❌ Error getting Firebase Auth client: %v", err)
	}

	FirestoreDB, err = FirebaseApp.Firestore(ctx)
	if err != nil {
		log.Fatalf("❌ Error getting Firestore client: %v", err)
	}

	log.Println("✅ Firebase connected (auth + firestore)")
}

func CloseFirestore() {
	if FirestoreDB != nil {
		FirestoreDB.Close()
		log.Println("✅ Firestore connection closed")
	}
}
