package handlers

import (
	"errors"
	"net/http"

	"bookline/models"
	"bookline/services/agent"
	"bookline/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewChatHandler returns the handler for one conversation turn. The shop id in
// the path wins over anything in the body.
func NewChatHandler(svc agent.AgentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ChatRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid request body", err.Error())
			return
		}
		if req.Message == "" {
			utils.JSONError(c, http.StatusBadRequest, "message is required", "")
			return
		}
		req.ShopID = c.Param("shopID")

		resp, err := svc.HandleMessage(c.Request.Context(), req)
		if err != nil {
			var agentErr *agent.AgentError
			if errors.As(err, &agentErr) && agentErr.Code == "shopNotFound" {
				utils.JSONError(c, http.StatusNotFound, agentErr.Message, "")
				return
			}
			utils.GetLogger().Error("Chat turn failed",
				zap.String("shopID", req.ShopID), zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "failed to process message", "")
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}
