package worker

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
	
	"github.com/Mohamed-Ahmed-12/auction-platform/internal/notification"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/require"
)

type fakeDistributor struct {
	payloads []*PayloadSendNotification
	opts     [][]asynq.Option
}

func (f *fakeDistributor) DistributeTaskSendNotification(_ context.Context, payload *PayloadSendNotification, opts ...asynq.Option) error {
	f.payloads = append(f.payloads, payload)
	f.opts = append(f.opts, opts)
	return nil
}

type fakeSender struct {
	sent []*notification.Notification
	err  error
}

func (f *fakeSender) SendNotification(_ context.Context, n *notification.Notification) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, n)
	return nil
}

func TestTaskDelivererEnqueuesCriticalTask(t *testing.T) {
	distributor := &fakeDistributor{}
	deliverer := NewTaskDeliverer(distributor)
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	deliverer.now = func() time.Time { return now }
	
	err := deliverer.Deliver(context.Background(), "user-1", "AUCTION_WON", "You won", 42)
	require.NoError(t, err)
	
	require.Len(t, distributor.payloads, 1)
	require.Equal(t, &PayloadSendNotification{
		RecipientID: "user-1",
		Category:    "AUCTION_WON",
		Message:     "You won",
		ItemID:      42,
		CreatedAt:   now,
	}, distributor.payloads[0])
	
	var maxRetry int
	var queue string
	for _, opt := range distributor.opts[0] {
		switch opt.Type() {
		case asynq.MaxRetryOpt:
			maxRetry = opt.Value().(int)
		case asynq.QueueOpt:
			queue = opt.Value().(string)
		}
	}
	require.Equal(t, 3, maxRetry)
	require.Equal(t, QueueCritical, queue)
}

func TestProcessTaskSendNotification(t *testing.T) {
	sender := &fakeSender{}
	processor := &RedisTaskProcessor{sender: sender}
	
	payload, err := json.Marshal(PayloadSendNotification{
		RecipientID: "user-2",
		Category:    "AUCTION_LOST",
		Message:     "You did not win",
		ItemID:      7,
	})
	require.NoError(t, err)
	
	err = processor.ProcessTaskSendNotification(context.Background(), asynq.NewTask(TaskSendNotification, payload))
	require.NoError(t, err)
	require.Len(t, sender.sent, 1)
	require.Equal(t, "user-2", sender.sent[0].RecipientID)
	require.Equal(t, int64(7), sender.sent[0].ItemID)
	require.False(t, sender.sent[0].IsRead)
}

func TestProcessTaskSendNotificationMalformedPayload(t *testing.T) {
	processor := &RedisTaskProcessor{sender: &fakeSender{}}
	
	err := processor.ProcessTaskSendNotification(context.Background(), asynq.NewTask(TaskSendNotification, []byte("{")))
	require.ErrorIs(t, err, asynq.SkipRetry)
}

func TestProcessTaskSendNotificationSenderFailure(t *testing.T) {
	processor := &RedisTaskProcessor{sender: &fakeSender{err: errors.New("firestore unavailable")}}
	
	payload, err := json.Marshal(PayloadSendNotification{RecipientID: "user-3", ItemID: 1})
	require.NoError(t, err)
	
	err = processor.ProcessTaskSendNotification(context.Background(), asynq.NewTask(TaskSendNotification, payload))
	require.Error(t, err)
	require.NotErrorIs(t, err, asynq.SkipRetry)
}
