package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
	
	"github.com/Mohamed-Ahmed-12/auction-platform/internal/notification"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
)

// PayloadSendNotification contain all data of the task that we want to store in Redis.
type PayloadSendNotification struct {
	RecipientID string    `json:"recipient_id"`
	Category    string    `json:"category"`
	Message     string    `json:"message"`
	ItemID      int64     `json:"item_id"`
	CreatedAt   time.Time `json:"created_at"`
}

func (distributor *RedisTaskDistributor) DistributeTaskSendNotification(
	ctx context.Context,
	payload *PayloadSendNotification,
	opts ...asynq.Option,
) error {
	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal task payload: %w", err)
	}
	
	task := asynq.NewTask(TaskSendNotification, jsonPayload, opts...)
	info, err := distributor.client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("failed to enqueue task: %w", err)
	}
	
	log.Info().Str("type", task.Type()).Bytes("payload", task.Payload()).Str("queue", info.Queue).Int("max_retry", info.MaxRetry).Msg("task enqueued")
	
	return nil
}

func (processor *RedisTaskProcessor) ProcessTaskSendNotification(
	ctx context.Context,
	task *asynq.Task,
) error {
	var payload PayloadSendNotification
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", asynq.SkipRetry)
	}
	
	err := processor.sender.SendNotification(ctx, &notification.Notification{
		RecipientID: payload.RecipientID,
		Category:    payload.Category,
		Message:     payload.Message,
		ItemID:      payload.ItemID,
		IsRead:      false,
		CreatedAt:   payload.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to send notification to user ID %s: %w", payload.RecipientID, err)
	}
	
	log.Info().Str("type", task.Type()).Bytes("payload", task.Payload()).
		Int64("item_id", payload.ItemID).Msg("task processed")
	
	return nil
}
