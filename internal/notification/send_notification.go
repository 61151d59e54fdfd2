package notification

import (
	"context"
	"time"
	
	"github.com/rs/zerolog/log"
)

func (s *NotificationService) SendNotification(ctx context.Context, notification *Notification) error {
	createdAt := notification.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	
	// Create a new document in the Firestore collection
	_, _, err := s.client.Collection(collectionNotifications).Add(ctx, map[string]interface{}{
		"recipientID": notification.RecipientID,
		"category":    notification.Category,
		"message":     notification.Message,
		"itemID":      notification.ItemID,
		"isRead":      notification.IsRead,
		"createdAt":   createdAt,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to send notification")
		return err
	}
	
	log.Info().
		Str("recipient_id", notification.RecipientID).
		Str("category", notification.Category).
		Int64("item_id", notification.ItemID).
		Msg("notification sent successfully")
	return nil
}

// LogSender only logs notifications. It stands in for Firestore when no Firebase
// credentials are configured.
type LogSender struct{}

func (LogSender) SendNotification(_ context.Context, notification *Notification) error {
	log.Info().
		Str("recipient_id", notification.RecipientID).
		Str("category", notification.Category).
		Int64("item_id", notification.ItemID).
		Str("message", notification.Message).
		Msg("notification")
	return nil
}
