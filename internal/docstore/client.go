package docstore

import (
	"context"
	"errors"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
)

const (
	requestsCollection = "delivery_requests"
	statusCollection   = "deliverystatus"
	usersCollection    = "users"
)

var (
	ErrStoreNotReady   = errors.New("document store not initialized")
	ErrNotFound        = errors.New("document not found")
	ErrAlreadyResolved = errors.New("request already resolved")
	ErrBadTransition   = errors.New("invalid status transition")
)

// NewClient opens a Firestore client through the firebase app, matching how
// the project id is resolved for auth.
func NewClient(ctx context.Context, projectID string) (*firestore.Client, error) {
	if projectID == "" {
		return nil, errors.New("FIREBASE_PROJECT_ID is not set")
	}
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID})
	if err != nil {
		return nil, err
	}
	return app.Firestore(ctx)
}
