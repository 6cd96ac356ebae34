package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Chat endpoint
	ChatHandler gin.HandlerFunc

	// Shop endpoints
	GetShopHandler   gin.HandlerFunc
	ListShopsHandler gin.HandlerFunc

	// Reservation admin endpoints
	ListReservationsHandler  gin.HandlerFunc
	CancelReservationHandler gin.HandlerFunc

	// Health endpoint
	HealthHandler gin.HandlerFunc
}
