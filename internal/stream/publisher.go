package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
	
	"github.com/Mohamed-Ahmed-12/auction-platform/internal/bidding"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/rs/zerolog/log"
)

const (
	StreamName    = "AUCTION_EVENTS"
	subjectPrefix = "auction.events"
)

// Publisher archives closures on a JetStream stream.
type Publisher struct {
	js jetstream.JetStream
}

// NewPublisher creates the AUCTION_EVENTS stream if it does not exist yet.
func NewPublisher(ctx context.Context, nc *nats.Conn) (*Publisher, error) {
	js, err := jetstream.New(nc)
	if err != nil {
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}
	
	_, err = js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:        StreamName,
		Description: "Accepted bids and item closures",
		Subjects:    []string{subjectPrefix + ".*"},
		Storage:     jetstream.FileStorage,
		Retention:   jetstream.LimitsPolicy,
		MaxAge:      30 * 24 * time.Hour,
		Duplicates:  10 * time.Minute,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create stream %s: %w", StreamName, err)
	}
	log.Info().Str("stream", StreamName).Msg("JetStream stream ready ✅")
	
	return &Publisher{js: js}, nil
}

func (p *Publisher) HandleClosure(ctx context.Context, closure bidding.Closure) error {
	for _, event := range ClosureEvents(closure) {
		if err := p.publish(ctx, event); err != nil {
			return err
		}
	}
	return nil
}

func (p *Publisher) publish(ctx context.Context, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", event.Type, err)
	}
	
	ack, err := p.js.Publish(ctx, subject(event.ItemID), data, jetstream.WithMsgID(event.ID))
	if err != nil {
		return fmt.Errorf("failed to publish %s event of item ID %d: %w", event.Type, event.ItemID, err)
	}
	
	log.Debug().
		Str("event_id", event.ID).
		Str("stream", ack.Stream).
		Uint64("seq", ack.Sequence).
		Bool("duplicate", ack.Duplicate).
		Msg("event archived")
	return nil
}
