package agent

import (
	"context"
	"fmt"
	"time"

	reservationRepo "bookline/database/repository/reservation"
	"bookline/models"
	"bookline/utils"
	"bookline/validation"

	"go.uber.org/zap"
)

// moveToConfirmation snapshots the completed draft plus the session's contact
// fields as the pending reservation and answers with the deterministic
// summary.
func (svc *DefaultAgentService) moveToConfirmation(ctx context.Context, shop *models.Shop, sess *models.AgentSession) *models.ChatResponse {
	pending := sess.Draft
	if pending.CustomerName == "" {
		pending.CustomerName = sess.UserName
	}
	if pending.Phone == "" {
		pending.Phone = sess.UserPhone
	}
	if pending.Email == "" {
		pending.Email = sess.UserEmail
	}

	sess.Pending = &pending
	sess.State = models.StateAwaitingConfirmation

	reply := buildReservationSummary(shop, sess, pending)
	svc.finishTurn(ctx, sess, reply)
	return &models.ChatResponse{
		Response:          reply,
		ShopID:            shop.ID,
		ShopName:          shop.Name,
		SessionID:         sess.SessionID,
		Success:           true,
		NeedsConfirmation: true,
	}
}

// processConfirmation resolves a yes/no reply to the pending snapshot. An
// affirmative re-validates the slot against current hours and policy and
// re-checks capacity before saving; the availability seen at summary time is
// never trusted.
func (svc *DefaultAgentService) processConfirmation(ctx context.Context, shop *models.Shop, sess *models.AgentSession, lower string) *models.ChatResponse {
	if sess.Pending == nil {
		sess.ClearReservation()
		reply := "I don't see a pending reservation. Let's start over."
		svc.finishTurn(ctx, sess, reply)
		return &models.ChatResponse{
			Response:  reply,
			ShopID:    shop.ID,
			ShopName:  shop.Name,
			SessionID: sess.SessionID,
			Success:   false,
		}
	}

	if !containsAny(lower, confirmWords) {
		sess.ClearReservation()
		sess.TrimHistory()
		reply := "No problem. Let me know if you'd like to change anything or start over."
		svc.finishTurn(ctx, sess, reply)
		return &models.ChatResponse{
			Response:  reply,
			ShopID:    shop.ID,
			ShopName:  shop.Name,
			SessionID: sess.SessionID,
			Success:   true,
		}
	}

	pending := *sess.Pending
	policy := effectivePolicy(shop)

	if ok, reason, _ := svc.Slots.ValidateSlot(pending.Date, pending.Time, policy, shop.OperatingHours); !ok {
		sess.ClearReservation()
		reply := fmt.Sprintf("I'm sorry, but that time doesn't work: %s. Would you like to choose a different time?", reason)
		if base, err := time.ParseInLocation("2006-01-02 15:04", pending.Date+" "+pending.Time, time.Local); err == nil {
			if alternatives := svc.Slots.AlternativeSlots(base, shop.OperatingHours); len(alternatives) > 0 {
				reply += "\n\nHere are some available options:\n" + validation.FormatSlots(alternatives)
			}
		}
		svc.finishTurn(ctx, sess, reply)
		return &models.ChatResponse{
			Response:  reply,
			ShopID:    shop.ID,
			ShopName:  shop.Name,
			SessionID: sess.SessionID,
			Success:   false,
		}
	}

	available, err := svc.Reservations.CheckAvailability(ctx, shop.ID, pending.Date, pending.Time, policy.MaxPerSlot)
	if err != nil {
		utils.GetLogger().Error("Availability check failed",
			zap.String("shopID", shop.ID), zap.Error(err))
	}
	if err == nil && !available {
		return svc.rejectSlotTaken(ctx, shop, sess)
	}

	// Fill contact gaps from the session before the save.
	if pending.Phone == "" {
		pending.Phone = sess.UserPhone
	}
	if pending.CustomerName == "" {
		pending.CustomerName = sess.UserName
	}
	if pending.Email == "" {
		pending.Email = sess.UserEmail
	}

	saved, err := svc.Reservations.Reserve(ctx, shop.ID, pending, policy.MaxPerSlot)
	if err == reservationRepo.ErrSlotFull {
		return svc.rejectSlotTaken(ctx, shop, sess)
	}
	if err != nil {
		utils.GetLogger().Error("Reservation save failed",
			zap.String("shopID", shop.ID), zap.Error(err))
		sess.ClearReservation()
		reply := "Sorry, we encountered an error while saving your reservation. Please try again."
		svc.finishTurn(ctx, sess, reply)
		return &models.ChatResponse{
			Response:  reply,
			ShopID:    shop.ID,
			ShopName:  shop.Name,
			SessionID: sess.SessionID,
			Success:   false,
		}
	}

	reply := fmt.Sprintf(`RESERVATION CONFIRMED

Your appointment has been booked successfully.

Reservation ID: %s
Date: %s
Time: %s
Party Size: %d people

Please save your Reservation ID: %s for any changes or cancellations.

We look forward to seeing you.`, saved.ID, saved.Date, saved.Time, saved.PartySize, saved.ID)

	sess.ClearReservation()
	sess.TrimHistory()
	svc.finishTurn(ctx, sess, reply)
	return &models.ChatResponse{
		Response:      reply,
		ShopID:        shop.ID,
		ShopName:      shop.Name,
		SessionID:     sess.SessionID,
		Success:       true,
		ReservationID: saved.ID,
	}
}

func (svc *DefaultAgentService) rejectSlotTaken(ctx context.Context, shop *models.Shop, sess *models.AgentSession) *models.ChatResponse {
	sess.ClearReservation()
	sess.TrimHistory()
	reply := "That time slot is no longer available. Would you like to try a different time?"
	svc.finishTurn(ctx, sess, reply)
	return &models.ChatResponse{
		Response:  reply,
		ShopID:    shop.ID,
		ShopName:  shop.Name,
		SessionID: sess.SessionID,
		Success:   false,
	}
}

// buildReservationSummary is the deterministic confirmation prompt; no text
// generation is involved in this step.
func buildReservationSummary(shop *models.Shop, sess *models.AgentSession, pending models.ReservationDraft) string {
	name := pending.CustomerName
	if name == "" {
		name = "Customer"
	}
	email := pending.Email
	if email == "" {
		email = "Not provided"
	}
	phone := pending.Phone
	if phone == "" {
		phone = "Not provided"
	}
	return fmt.Sprintf(`Reservation Summary for %s

Customer Information:
- Name: %s
- Email: %s
- Phone: %s

Appointment Details:
- Date: %s
- Time: %s
- Party Size: %d people

Please reply 'YES' to confirm this reservation, or 'NO' to make changes.`,
		shop.Name, name, email, phone, pending.Date, pending.Time, pending.PartySize)
}
