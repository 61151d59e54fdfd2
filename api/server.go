package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"time"
	
	"github.com/Mohamed-Ahmed-12/auction-platform/internal/bidding"
	db "github.com/Mohamed-Ahmed-12/auction-platform/internal/db/sqlc"
	"github.com/Mohamed-Ahmed-12/auction-platform/internal/room"
	"github.com/Mohamed-Ahmed-12/auction-platform/internal/token"
	"github.com/Mohamed-Ahmed-12/auction-platform/internal/util"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	dbStore    db.Store
	tokenMaker token.Maker
	config     *util.Config
	hub        *room.Hub
	arbiter    *bidding.Arbiter
	upgrader   websocket.Upgrader
}

// NewServer creates a new HTTP server and set up routing.
func NewServer(store db.Store, hub *room.Hub, arbiter *bidding.Arbiter, config *util.Config) (*Server, error) {
	// Create a new JWT token maker
	tokenMaker, err := token.NewJWTMaker(config.TokenSecretKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create token maker: %w", err)
	}
	log.Info().Msg("Token maker created successfully ✅")
	
	server := &Server{
		dbStore:    store,
		tokenMaker: tokenMaker,
		config:     config,
		hub:        hub,
		arbiter:    arbiter,
	}
	server.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     server.checkOrigin,
	}
	
	server.setupRouter()
	return server, nil
}

// setupRouter configures the HTTP server routes.
func (server *Server) setupRouter() *gin.Engine {
	if server.config.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     server.config.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))
	
	router.GET("/health", server.healthCheck)
	
	// Bidding room, one per item
	router.GET("/ws/place-bid/:itemID", optionalAuthMiddleware(server.tokenMaker), server.placeBidSocket)
	
	v1 := router.Group("/v1")
	
	itemGroup := v1.Group("/items")
	{
		itemGroup.GET(":itemID", server.getItem)
		itemGroup.GET(":itemID/bids", server.listItemBids)
		itemGroup.GET(":itemID/room", server.getItemRoom)
		itemGroup.GET(":itemID/stream", server.streamItemEvents)
	}
	
	if server.config.IsDevelopment() {
		devGroup := v1.Group("/dev")
		{
			devGroup.POST("/items", server.seedItem)
			devGroup.POST("/tokens", server.issueDevToken)
		}
	}
	
	server.router = router
	return router
}

// checkOrigin accepts requests without an Origin header and those from an allowed origin.
func (server *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	
	return slices.Contains(server.config.AllowedOrigins, "*") ||
		slices.Contains(server.config.AllowedOrigins, origin)
}

type pinger interface {
	Ping(ctx context.Context) error
}

func (server *Server) healthCheck(c *gin.Context) {
	if p, ok := server.dbStore.(pinger); ok {
		ctx, cancel := context.WithTimeout(c, server.config.StoreTimeout)
		defer cancel()
		
		if err := p.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, errorResponse(fmt.Errorf("database unavailable: %w", err)))
			return
		}
	}
	
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"rooms":  len(server.hub.ItemIDs()),
	})
}

// Start runs the HTTP server on a specific address.
func (server *Server) Start(address string) error {
	server.httpServer = &http.Server{
		Addr:              address,
		Handler:           server.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	
	err := server.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown stops accepting requests and waits for in-flight ones.
// Hijacked WebSocket connections are not tracked by net/http; they end when their rooms are drained.
func (server *Server) Shutdown(ctx context.Context) error {
	if server.httpServer == nil {
		return nil
	}
	return server.httpServer.Shutdown(ctx)
}
