package api

import (
	"errors"
	
	"github.com/gin-gonic/gin"
)

var (
	ErrInvalidItemID = errors.New("item ID must be a positive integer")
)

func errorResponse(err error) gin.H {
	return gin.H{"error": err.Error()}
}
