package api

import (
	"fmt"
	"net/http"
	
	db "github.com/Mohamed-Ahmed-12/auction-platform/internal/db/sqlc"
	"github.com/Mohamed-Ahmed-12/auction-platform/internal/validator"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

type seedItemRequest struct {
	Title        string          `json:"title" binding:"required"`
	StartPrice   decimal.Decimal `json:"start_price"`
	MinIncrement decimal.Decimal `json:"min_increment"`
}

// seedItem creates an open item. Only routed in development.
func (server *Server) seedItem(c *gin.Context) {
	var req seedItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}
	
	if err := validator.ValidateItemTitle(req.Title); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}
	if err := validator.ValidateItemPricing(req.StartPrice, req.MinIncrement); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}
	
	item, err := server.dbStore.CreateItem(c, db.CreateItemParams{
		Title:        req.Title,
		StartPrice:   req.StartPrice,
		MinIncrement: req.MinIncrement,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse(fmt.Errorf("failed to create item: %w", err)))
		return
	}
	
	log.Info().Int64("item_id", item.ID).Str("title", item.Title).Msg("item seeded")
	c.JSON(http.StatusCreated, item)
}

type issueDevTokenRequest struct {
	UserID string `json:"user_id" binding:"required"`
	Name   string `json:"name"`
}

// issueDevToken signs an access token for any user. Only routed in development,
// where no identity provider issues them.
func (server *Server) issueDevToken(c *gin.Context) {
	var req issueDevTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}
	
	accessToken, payload, err := server.tokenMaker.CreateToken(req.UserID, req.Name, server.config.AccessTokenDuration)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse(fmt.Errorf("failed to create access token: %w", err)))
		return
	}
	
	c.JSON(http.StatusCreated, gin.H{
		"access_token": accessToken,
		"expires_at":   payload.ExpiresAt.Time,
	})
}
