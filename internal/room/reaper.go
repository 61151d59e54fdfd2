package room

import (
	"context"
	"errors"
	"time"
	
	db "github.com/Mohamed-Ahmed-12/auction-platform/internal/db/sqlc"
	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"
)

// ItemReader reads the authoritative state of an item.
type ItemReader interface {
	GetItemByID(ctx context.Context, id int64) (db.Item, error)
}

// Reaper periodically drains rooms whose item has been closed for longer than drainAfter,
// and rooms whose item no longer exists.
type Reaper struct {
	hub        *Hub
	store      ItemReader
	drainAfter time.Duration
	interval   time.Duration
	scheduler  gocron.Scheduler
	now        func() time.Time
}

func NewReaper(hub *Hub, store ItemReader, drainAfter, interval time.Duration) (*Reaper, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}
	
	return &Reaper{
		hub:        hub,
		store:      store,
		drainAfter: drainAfter,
		interval:   interval,
		scheduler:  scheduler,
		now:        time.Now,
	}, nil
}

// Start schedules the sweep job.
func (r *Reaper) Start() error {
	_, err := r.scheduler.NewJob(
		gocron.DurationJob(r.interval),
		gocron.NewTask(
			func() {
				ctx, cancel := context.WithTimeout(context.Background(), r.interval)
				defer cancel()
				
				if drained := r.Sweep(ctx); drained > 0 {
					log.Info().
						Str("job", "drain_closed_rooms").
						Int("rooms", drained).
						Msg("drained rooms of closed items")
				}
			},
		),
	)
	if err != nil {
		return err
	}
	
	r.scheduler.Start()
	return nil
}

// Stop shuts the scheduler down.
func (r *Reaper) Stop() error {
	return r.scheduler.Shutdown()
}

// Sweep drains every room that is due and returns how many it drained.
func (r *Reaper) Sweep(ctx context.Context) int {
	drained := 0
	
	for _, itemID := range r.hub.ItemIDs() {
		item, err := r.store.GetItemByID(ctx, itemID)
		if err != nil {
			if errors.Is(err, db.ErrRecordNotFound) {
				r.hub.CloseRoom(itemID, CloseItemNotFound, "Item not found")
				drained++
				continue
			}
			
			log.Err(err).Int64("item_id", itemID).Msg("failed to read item while sweeping rooms")
			continue
		}
		
		if item.IsActive || item.ClosedAt == nil {
			continue
		}
		
		if r.now().Sub(*item.ClosedAt) >= r.drainAfter {
			r.hub.CloseRoom(itemID, CloseItemClosed, "Item was ended")
			drained++
		}
	}
	
	return drained
}
