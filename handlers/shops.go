package handlers

import (
	"net/http"

	shopRepo "bookline/database/repository/shop"
	"bookline/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewGetShopHandler returns a shop's public profile.
func NewGetShopHandler(repo shopRepo.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		shopID := c.Param("shopID")
		shop, err := repo.GetShop(c.Request.Context(), shopID)
		if err == shopRepo.ErrShopNotFound {
			utils.JSONError(c, http.StatusNotFound, "shop not found", "")
			return
		}
		if err != nil {
			utils.GetLogger().Error("Get shop failed",
				zap.String("shopID", shopID), zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "failed to load shop", "")
			return
		}
		c.JSON(http.StatusOK, shop)
	}
}

// NewListShopsHandler lists all registered shops.
func NewListShopsHandler(repo shopRepo.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		shops, err := repo.ListShops(c.Request.Context())
		if err != nil {
			utils.GetLogger().Error("List shops failed", zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "failed to list shops", "")
			return
		}
		c.JSON(http.StatusOK, gin.H{"shops": shops, "count": len(shops)})
	}
}
