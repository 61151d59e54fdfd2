package worker

import (
	"context"
	"time"
	
	"github.com/hibiken/asynq"
)

const notificationMaxRetry = 3

// TaskDeliverer hands auction result notifications to the task queue, which retries
// failed deliveries in the background.
type TaskDeliverer struct {
	distributor TaskDistributor
	now         func() time.Time
}

func NewTaskDeliverer(distributor TaskDistributor) *TaskDeliverer {
	return &TaskDeliverer{
		distributor: distributor,
		now:         time.Now,
	}
}

func (d *TaskDeliverer) Deliver(ctx context.Context, userID, category, message string, itemID int64) error {
	opts := []asynq.Option{
		asynq.MaxRetry(notificationMaxRetry),
		asynq.Queue(QueueCritical),
	}
	
	return d.distributor.DistributeTaskSendNotification(ctx, &PayloadSendNotification{
		RecipientID: userID,
		Category:    category,
		Message:     message,
		ItemID:      itemID,
		CreatedAt:   d.now(),
	}, opts...)
}
