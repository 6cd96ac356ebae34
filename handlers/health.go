package handlers

import (
	"net/http"
	"time"

	"bookline/database"
	"bookline/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports liveness plus the state of the backing stores.
func HealthHandler(c *gin.Context) {
	ctx := c.Request.Context()
	status := http.StatusOK
	checks := gin.H{}

	if database.MongoClient != nil {
		if err := database.MongoClient.Ping(ctx, nil); err != nil {
			checks["mongo"] = "down"
			status = http.StatusServiceUnavailable
		} else {
			checks["mongo"] = "ok"
		}
	}
	if utils.ShopCacheClient != nil {
		if err := utils.ShopCacheClient.Ping(ctx).Err(); err != nil {
			checks["redis"] = "down"
		} else {
			checks["redis"] = "ok"
		}
	}

	c.JSON(status, gin.H{
		"status": http.StatusText(status),
		"time":   time.Now().UTC().Format(time.RFC3339),
		"checks": checks,
	})
}
