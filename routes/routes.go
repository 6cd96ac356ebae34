package routes

import (
	"time"

	"bookline/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires all endpoints onto the router.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", hb.HealthHandler)

	api := r.Group("/api/shops")
	{
		api.GET("", hb.ListShopsHandler)
		api.GET("/:shopID", hb.GetShopHandler)
		api.POST("/:shopID/chat", hb.ChatHandler)
		api.GET("/:shopID/reservations", hb.ListReservationsHandler)
		api.POST("/:shopID/reservations/cancel", hb.CancelReservationHandler)
	}
}
