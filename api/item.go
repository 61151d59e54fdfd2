package api

import (
	"errors"
	"fmt"
	"net/http"
	
	"github.com/Mohamed-Ahmed-12/auction-platform/internal/bidding"
	db "github.com/Mohamed-Ahmed-12/auction-platform/internal/db/sqlc"
	"github.com/gin-gonic/gin"
)

//	@Summary		Get item details
//	@Description	Retrieves an item with its last accepted bid, the minimum next bid while it is open, and its result once closed.
//	@Tags			items
//	@Produce		json
//	@Param			itemID	path		int				true	"ID of the item"
//	@Success		200		{object}	itemResponse	"Details of the item"
//	@Failure		400		"Invalid item ID"
//	@Failure		404		"Item not found"
//	@Router			/items/{itemID} [get]
func (server *Server) getItem(c *gin.Context) {
	itemID, err := parseItemID(c.Param("itemID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}
	
	item, err := server.dbStore.GetItemByID(c, itemID)
	if err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			err = fmt.Errorf("item ID %d not found", itemID)
			c.JSON(http.StatusNotFound, errorResponse(err))
			return
		}
		
		err = fmt.Errorf("failed to get item: %w", err)
		c.JSON(http.StatusInternalServerError, errorResponse(err))
		return
	}
	
	resp := itemResponse{Item: item}
	
	var lastBid *db.Bid
	bid, err := server.dbStore.GetLastBidByItemID(c, itemID)
	switch {
	case err == nil:
		lastBid = &bid
		record := newBidRecord(bid)
		resp.LastBid = &record
	case !errors.Is(err, db.ErrRecordNotFound):
		err = fmt.Errorf("failed to get last bid: %w", err)
		c.JSON(http.StatusInternalServerError, errorResponse(err))
		return
	}
	
	if item.IsActive {
		floor := bidding.Floor(item, lastBid).StringFixed(2)
		resp.MinimumBid = &floor
	} else {
		result, err := server.dbStore.GetAuctionResultByItemID(c, itemID)
		if err != nil && !errors.Is(err, db.ErrRecordNotFound) {
			err = fmt.Errorf("failed to get auction result: %w", err)
			c.JSON(http.StatusInternalServerError, errorResponse(err))
			return
		}
		if err == nil {
			resp.AuctionResult = &result
		}
	}
	
	c.JSON(http.StatusOK, resp)
}

//	@Summary		List bids of an item
//	@Description	Lists the accepted bids of an item, oldest first.
//	@Tags			items
//	@Produce		json
//	@Param			itemID	path	int			true	"ID of the item"
//	@Success		200		{array}	bidRecord	"Accepted bids"
//	@Router			/items/{itemID}/bids [get]
func (server *Server) listItemBids(c *gin.Context) {
	itemID, err := parseItemID(c.Param("itemID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}
	
	bids, err := server.dbStore.ListBidsByItemID(c, itemID)
	if err != nil {
		err = fmt.Errorf("failed to list bids: %w", err)
		c.JSON(http.StatusInternalServerError, errorResponse(err))
		return
	}
	
	records := make([]bidRecord, 0, len(bids))
	for _, bid := range bids {
		records = append(records, newBidRecord(bid))
	}
	
	c.JSON(http.StatusOK, records)
}

//	@Summary		Get room of an item
//	@Description	Reports how many connections this instance holds in the item's room, split into bidders and spectators.
//	@Tags			items
//	@Produce		json
//	@Param			itemID	path	int	true	"ID of the item"
//	@Router			/items/{itemID}/room [get]
func (server *Server) getItemRoom(c *gin.Context) {
	itemID, err := parseItemID(c.Param("itemID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}
	
	bidders, spectators := server.hub.Census(itemID)
	c.JSON(http.StatusOK, gin.H{
		"item_id":    itemID,
		"members":    bidders + spectators,
		"bidders":    bidders,
		"spectators": spectators,
	})
}
