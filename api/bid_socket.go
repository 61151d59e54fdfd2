package api

import (
	"context"
	"errors"
	"strconv"
	"time"
	
	"github.com/Mohamed-Ahmed-12/auction-platform/internal/bidding"
	db "github.com/Mohamed-Ahmed-12/auction-platform/internal/db/sqlc"
	"github.com/Mohamed-Ahmed-12/auction-platform/internal/room"
	"github.com/Mohamed-Ahmed-12/auction-platform/internal/util"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const closeWriteWait = time.Second

// placeBidSocket upgrades the request and binds the connection to the item's room.
// Refusals happen after the upgrade, as a close frame with a policy code,
// so the client can read why it was turned away.
func (server *Server) placeBidSocket(c *gin.Context) {
	conn, err := server.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// The upgrader has already replied with an HTTP error.
		log.Debug().Err(err).Msg("websocket upgrade failed")
		return
	}
	
	bidder, ok := server.resolveBidder(c)
	if !ok {
		closeWithPolicy(conn, room.CloseAnonymousNotAllowed, "Anonymous users are not allowed")
		return
	}
	
	itemID, err := parseItemID(c.Param("itemID"))
	if err != nil {
		closeWithPolicy(conn, room.CloseItemNotFound, "Item not found")
		return
	}
	
	ctx, cancel := context.WithTimeout(c.Request.Context(), server.config.StoreTimeout)
	item, err := server.dbStore.GetItemByID(ctx, itemID)
	cancel()
	if err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			closeWithPolicy(conn, room.CloseItemNotFound, "Item not found")
			return
		}
		
		log.Err(err).Int64("item_id", itemID).Msg("failed to load item for bidding room")
		closeWithPolicy(conn, websocket.CloseInternalServerErr, "Failed to load item")
		return
	}
	
	if !item.IsActive {
		closeWithPolicy(conn, room.CloseItemClosed, "Item was ended")
		return
	}
	
	newBidSession(server, conn, itemID, bidder).run(c.Request.Context())
}

// resolveBidder returns the principal of the request. Anonymous requests get a guest
// identity when anonymous bidders are allowed, and are refused otherwise.
func (server *Server) resolveBidder(c *gin.Context) (bidding.Bidder, bool) {
	if payload := principalFrom(c); payload != nil {
		name := payload.Name
		if name == "" {
			name = payload.Subject
		}
		return bidding.Bidder{ID: payload.Subject, Name: name}, true
	}
	
	if !server.config.AllowAnonymousBidders {
		return bidding.Bidder{}, false
	}
	
	userID, name := util.GenerateGuest()
	return bidding.Bidder{ID: userID, Name: name}, true
}

func closeWithPolicy(conn *websocket.Conn, code int, reason string) {
	msg := websocket.FormatCloseMessage(code, reason)
	if err := conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(closeWriteWait)); err != nil {
		log.Debug().Err(err).Int("code", code).Msg("failed to write close frame")
	}
	conn.Close()
}

func parseItemID(raw string) (int64, error) {
	itemID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || itemID <= 0 {
		return 0, ErrInvalidItemID
	}
	return itemID, nil
}
