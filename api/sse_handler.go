package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"
	
	db "github.com/Mohamed-Ahmed-12/auction-platform/internal/db/sqlc"
	"github.com/Mohamed-Ahmed-12/auction-platform/internal/room"
	"github.com/Mohamed-Ahmed-12/auction-platform/internal/util"
	"github.com/gin-gonic/gin"
)

const sseKeepAlive = 25 * time.Second

//	@Summary		Stream item events via Server-Sent Events
//	@Description	Follows the item's room without bidding. Presence of spectators is not announced.
//	@Tags			items
//	@Produce		text/event-stream
//	@Param			itemID	path		int		true	"ID of the item"
//	@Success		200		{string}	string	"Event stream. Data will be sent as SSE events with format: 'event: {eventType}\ndata: {jsonData}'"
//	@Failure		400		{object}	object	"Invalid item ID format"
//	@Failure		404		{object}	object	"Item not found"
//	@Router			/items/{itemID}/stream [get]
func (server *Server) streamItemEvents(c *gin.Context) {
	itemID, err := parseItemID(c.Param("itemID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}
	
	item, err := server.dbStore.GetItemByID(c, itemID)
	if err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, errorResponse(fmt.Errorf("item ID %d not found", itemID)))
			return
		}
		c.JSON(http.StatusInternalServerError, errorResponse(fmt.Errorf("failed to get item: %w", err)))
		return
	}
	
	// SSE headers
	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Status(http.StatusOK)
	
	if !item.IsActive {
		fmt.Fprintf(c.Writer, "event: %s\ndata: {\"item_id\":%d}\n\n", room.MessageTypeItemClosed, itemID)
		c.Writer.Flush()
		return
	}
	
	member := room.NewMember(util.GenerateMemberID(), "", "", server.config.MemberBufferSize)
	member.Spectator = true
	membership := server.hub.Join(itemID, member)
	defer membership.Leave()
	
	keepAlive := time.NewTicker(sseKeepAlive)
	defer keepAlive.Stop()
	
	c.Writer.Flush()
	for {
		select {
		case msg := <-member.Outbound():
			fmt.Fprintf(c.Writer, "event: %s\ndata: %s\n\n", msg.Type, msg.Data)
			c.Writer.Flush()
		case <-keepAlive.C:
			fmt.Fprint(c.Writer, ": keep-alive\n\n")
			c.Writer.Flush()
		case <-member.Done():
			return
		case <-c.Request.Context().Done():
			return
		}
	}
}
