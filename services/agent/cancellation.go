package agent

import (
	"context"
	"fmt"

	reservationRepo "bookline/database/repository/reservation"
	"bookline/models"
	"bookline/utils"
	"bookline/validation"

	"go.uber.org/zap"
)

const askForIdentifierReply = `I need some information to find your reservation. Please provide:
1. Your Reservation ID (starts with RES...), OR
2. Your phone number, OR
3. Your email address

Which would you like to use?`

// handleCancellation routes a cancellation-intent message. An in-progress
// reservation conversation is abandoned in place; otherwise an existing
// confirmed reservation is located by id, then phone, then email, falling back
// to the session's known contact details.
func (svc *DefaultAgentService) handleCancellation(ctx context.Context, shop *models.Shop, sess *models.AgentSession, message string) *models.ChatResponse {
	if sess.State != models.StateIdle {
		sess.ClearReservation()
		sess.TrimHistory()
		reply := "I've cancelled your ongoing reservation process. Let me know if you'd like to start over."
		svc.finishTurn(ctx, sess, reply)
		return &models.ChatResponse{
			Response:  reply,
			ShopID:    shop.ID,
			ShopName:  shop.Name,
			SessionID: sess.SessionID,
			Success:   true,
		}
	}
	return svc.cancelExistingReservation(ctx, shop, sess, message)
}

func (svc *DefaultAgentService) cancelExistingReservation(ctx context.Context, shop *models.Shop, sess *models.AgentSession, message string) *models.ChatResponse {
	key := reservationRepo.CancelKey{
		ReservationID: validation.ExtractReservationID(message),
		Phone:         validation.ExtractPhone(message),
		Email:         validation.ExtractEmail(message),
	}
	if key.ReservationID == "" && key.Phone == "" && key.Email == "" {
		if sess.UserPhone != "" {
			key.Phone = sess.UserPhone
		} else if sess.UserEmail != "" {
			key.Email = sess.UserEmail
		}
	}

	if key.ReservationID == "" && key.Phone == "" && key.Email == "" {
		svc.finishTurn(ctx, sess, askForIdentifierReply)
		return &models.ChatResponse{
			Response:      askForIdentifierReply,
			ShopID:        shop.ID,
			ShopName:      shop.Name,
			SessionID:     sess.SessionID,
			Success:       true,
			NeedsMoreInfo: true,
		}
	}

	cancelled, err := svc.Reservations.CancelByKey(ctx, shop.ID, key)
	switch {
	case err == nil:
		reply := fmt.Sprintf(`CANCELLATION SUCCESSFUL

Your reservation has been cancelled:

Reservation ID: %s
Name: %s
Date: %s
Time: %s

We hope to see you another time.`, cancelled.ID, cancelled.CustomerName, cancelled.Date, cancelled.Time)
		sess.ClearReservation()
		sess.TrimHistory()
		svc.finishTurn(ctx, sess, reply)
		return &models.ChatResponse{
			Response:      reply,
			ShopID:        shop.ID,
			ShopName:      shop.Name,
			SessionID:     sess.SessionID,
			Success:       true,
			ReservationID: cancelled.ID,
		}

	case err == reservationRepo.ErrNotFound:
		reply := fmt.Sprintf(`RESERVATION NOT FOUND

I couldn't find an active reservation with the %s.

Please check your information and try again, or contact the shop directly.`, describeCancelKey(key))
		svc.finishTurn(ctx, sess, reply)
		return &models.ChatResponse{
			Response:  reply,
			ShopID:    shop.ID,
			ShopName:  shop.Name,
			SessionID: sess.SessionID,
			Success:   false,
		}

	default:
		utils.GetLogger().Error("Cancellation lookup failed",
			zap.String("shopID", shop.ID), zap.Error(err))
		reply := "Sorry, there was an error processing your cancellation. Please try again or contact the shop directly."
		svc.finishTurn(ctx, sess, reply)
		return &models.ChatResponse{
			Response:  reply,
			ShopID:    shop.ID,
			ShopName:  shop.Name,
			SessionID: sess.SessionID,
			Success:   false,
		}
	}
}

func describeCancelKey(key reservationRepo.CancelKey) string {
	switch {
	case key.ReservationID != "":
		return "Reservation ID: " + key.ReservationID
	case key.Phone != "":
		return "phone number: " + key.Phone
	default:
		return "email: " + key.Email
	}
}
