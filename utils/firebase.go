// utils/firebase.go
package utils

import (
	"context"
	"fmt"

	"mentorship/config"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

var (
	FirebaseApp     *firebase.App
	FCMClient       *messaging.Client
	FirestoreClient *firestore.Client
)

// FirebaseInit initializes the Firebase App, the Messaging client and,
// when the mentor store is Firestore, the Firestore client.
func FirebaseInit(ctx context.Context) error {
	var opts []option.ClientOption
	if path := config.AppConfig.FirebaseCredentialsFile; path != "" {
		opts = append(opts, option.WithCredentialsFile(path))
	}

	var fbConfig *firebase.Config
	if id := config.AppConfig.FirebaseProjectID; id != "" {
		fbConfig = &firebase.Config{ProjectID: id}
	}

	app, err := firebase.NewApp(ctx, fbConfig, opts...)
	if err != nil {
		return fmt.Errorf("firebase: error initializing app: %w", err)
	}
	FirebaseApp = app

	client, err := app.Messaging(ctx)
	if err != nil {
		return fmt.Errorf("firebase: error getting Messaging client: %w", err)
	}
	FCMClient = client

	if config.AppConfig.MentorStore == "firestore" {
		fs, err := app.Firestore(ctx)
		if err != nil {
			return fmt.Errorf("firebase: error getting Firestore client: %w", err)
		}
		FirestoreClient = fs
	}
	return nil
}
