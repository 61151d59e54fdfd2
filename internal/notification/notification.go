package notification

import (
	"context"
	
	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"github.com/rs/zerolog/log"
)

const collectionNotifications = "notifications"

// Sender writes a notification to wherever the bidder reads it from.
type Sender interface {
	SendNotification(ctx context.Context, notification *Notification) error
}

// NotificationService stores notifications in Firestore, where clients listen for them.
type NotificationService struct {
	client *firestore.Client
}

func NewNotificationService(ctx context.Context, firebaseApp *firebase.App) (*NotificationService, error) {
	firestoreClient, err := firebaseApp.Firestore(ctx)
	if err != nil {
		log.Err(err).Msg("failed to create firestore client 😣")
		return nil, err
	}
	
	return &NotificationService{
		client: firestoreClient,
	}, nil
}

// Close releases the Firestore client.
func (s *NotificationService) Close() error {
	return s.client.Close()
}
