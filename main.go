package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"
	
	firebase "firebase.google.com/go/v4"
	"github.com/Mohamed-Ahmed-12/auction-platform/api"
	"github.com/Mohamed-Ahmed-12/auction-platform/internal/bidding"
	"github.com/Mohamed-Ahmed-12/auction-platform/internal/db/memstore"
	db "github.com/Mohamed-Ahmed-12/auction-platform/internal/db/sqlc"
	"github.com/Mohamed-Ahmed-12/auction-platform/internal/notification"
	"github.com/Mohamed-Ahmed-12/auction-platform/internal/room"
	"github.com/Mohamed-Ahmed-12/auction-platform/internal/stream"
	"github.com/Mohamed-Ahmed-12/auction-platform/internal/util"
	"github.com/Mohamed-Ahmed-12/auction-platform/internal/worker"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"google.golang.org/api/option"
)

const shutdownTimeout = 30 * time.Second

func main() {
	// Load configurations
	config, err := util.LoadConfig("./app.env")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config file 😣")
	}
	
	if config.IsDevelopment() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	log.Info().Str("store_driver", config.StoreDriver).Msg("configurations loaded successfully ✅")
	
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	
	store, closeStore := newStore(ctx, config)
	defer closeStore()
	
	redisDb := redis.NewClient(&redis.Options{
		Addr:     config.RedisServerAddress,
		Password: "", // no password set
		DB:       0,  // use default DB
	})
	defer redisDb.Close()
	
	redisOpt := asynq.RedisClientOpt{
		Addr: config.RedisServerAddress,
	}
	
	sender, closeSender := newNotificationSender(ctx, config)
	defer closeSender()
	
	taskProcessor := worker.NewRedisTaskProcessor(redisOpt, sender)
	if err = taskProcessor.Start(); err != nil {
		log.Fatal().Err(err).Msg("failed to start task processor 😣")
	}
	defer taskProcessor.Shutdown()
	log.Info().Msg("task processor started ✅")
	
	taskDistributor := worker.NewTaskDistributor(redisOpt)
	defer taskDistributor.Close()
	
	handlers := []bidding.ClosureHandler{
		bidding.NewResultNotifier(store, worker.NewTaskDeliverer(taskDistributor)),
	}
	
	if config.NatsURL != "" {
		natsConn, err := nats.Connect(config.NatsURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to NATS 😣")
		}
		defer natsConn.Drain()
		
		publisher, err := stream.NewPublisher(ctx, natsConn)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to set up event stream 😣")
		}
		handlers = append(handlers, publisher)
		log.Info().Str("url", config.NatsURL).Msg("connected to NATS ✅")
	}
	
	arbiter := bidding.NewArbiter(store, config.StoreTimeout, handlers...)
	hub := room.NewHub()
	
	g, gCtx := errgroup.WithContext(ctx)
	
	if config.RoomRelayEnabled {
		relay := room.NewRedisRelay(redisDb, hub)
		hub.UseRelay(relay)
		g.Go(func() error {
			if err := relay.Run(gCtx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}
	
	reaper, err := room.NewReaper(hub, store, config.RoomDrainAfter, config.RoomSweepInterval)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create room reaper 😣")
	}
	if err = reaper.Start(); err != nil {
		log.Fatal().Err(err).Msg("failed to start room reaper 😣")
	}
	defer reaper.Stop()
	
	server, err := api.NewServer(store, hub, arbiter, &config)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create HTTP server 😣")
	}
	
	g.Go(func() error {
		log.Info().Str("address", config.HTTPServerAddress).Msg("HTTP server listening ✅")
		return server.Start(config.HTTPServerAddress)
	})
	
	g.Go(func() error {
		<-gCtx.Done()
		log.Info().Msg("shutting down HTTP server")
		
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	
	if err = g.Wait(); err != nil {
		log.Error().Err(err).Msg("server stopped with error 😣")
		return
	}
	log.Info().Msg("server stopped gracefully")
}

func newStore(ctx context.Context, config util.Config) (db.Store, func()) {
	if config.StoreDriver == util.StoreDriverMemory {
		log.Warn().Msg("using in-memory store, data is lost on restart")
		return memstore.New(), func() {}
	}
	
	// Create connection pool
	connPool, err := pgxpool.New(ctx, config.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to validate db connection string 😣")
	}
	
	pingErr := connPool.Ping(ctx)
	if pingErr != nil {
		log.Fatal().Err(pingErr).Msg("failed to connect to db 😣")
	}
	log.Info().Msg("connected to db ✅")
	
	return db.NewStore(connPool), connPool.Close
}

func newNotificationSender(ctx context.Context, config util.Config) (notification.Sender, func()) {
	if config.FirebaseCredentialsFile == "" {
		log.Warn().Msg("FIREBASE_CREDENTIALS_FILE is not set, notifications are only logged")
		return notification.LogSender{}, func() {}
	}
	
	firebaseApp, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(config.FirebaseCredentialsFile))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize firebase app 😣")
	}
	
	service, err := notification.NewNotificationService(ctx, firebaseApp)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create notification service 😣")
	}
	log.Info().Msg("notification service created successfully ✅")
	
	return service, func() {
		if err := service.Close(); err != nil {
			log.Err(err).Msg("failed to close firestore client")
		}
	}
}
