package handlers

import (
	"net/http"

	reservationRepo "bookline/database/repository/reservation"
	"bookline/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ReservationAdminHandler exposes a shop's reservation book outside the
// conversational flow.
type ReservationAdminHandler struct {
	Repo reservationRepo.Repository
}

func NewReservationAdminHandler(repo reservationRepo.Repository) *ReservationAdminHandler {
	return &ReservationAdminHandler{Repo: repo}
}

// ListReservations returns a shop's reservations, newest first. Cancelled rows
// are included only when ?include_cancelled=true.
func (h *ReservationAdminHandler) ListReservations(c *gin.Context) {
	shopID := c.Param("shopID")
	includeCancelled := c.Query("include_cancelled") == "true"

	rows, err := h.Repo.ListByShop(c.Request.Context(), shopID, includeCancelled)
	if err != nil {
		utils.GetLogger().Error("List reservations failed",
			zap.String("shopID", shopID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to list reservations", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"shop_id": shopID, "reservations": rows, "count": len(rows)})
}

// CancelReservation cancels one reservation by id, phone, or email, in that
// priority order.
func (h *ReservationAdminHandler) CancelReservation(c *gin.Context) {
	shopID := c.Param("shopID")

	var body struct {
		ReservationID string `json:"reservation_id"`
		Phone         string `json:"phone"`
		Email         string `json:"email"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if body.ReservationID == "" && body.Phone == "" && body.Email == "" {
		utils.JSONError(c, http.StatusBadRequest, "one of reservation_id, phone, or email is required", "")
		return
	}

	cancelled, err := h.Repo.CancelByKey(c.Request.Context(), shopID, reservationRepo.CancelKey{
		ReservationID: body.ReservationID,
		Phone:         body.Phone,
		Email:         body.Email,
	})
	if err == reservationRepo.ErrNotFound {
		utils.JSONError(c, http.StatusNotFound, "no active reservation matches", "")
		return
	}
	if err != nil {
		utils.GetLogger().Error("Cancel reservation failed",
			zap.String("shopID", shopID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to cancel reservation", "")
		return
	}
	c.JSON(http.StatusOK, cancelled)
}
