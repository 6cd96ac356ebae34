package agent

import (
	"context"
	"strings"

	shopRepo "bookline/database/repository/shop"
	"bookline/models"
	"bookline/utils"
	"bookline/validation"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const emergencyReply = "I'm here to help. What can I assist you with today?"

var cancellationWords = []string{
	"cancel", "stop", "nevermind", "never mind", "leave it",
	"don't want", "delete reservation",
}

// summaryTriggerWords gate the move from collecting to the confirmation
// summary; confirmWords answer the pending summary itself.
var summaryTriggerWords = []string{
	"yes", "confirm", "ok", "okay", "sure", "yep", "yeah",
	"go ahead", "please do", "book it", "reserve",
}

var confirmWords = []string{
	"yes", "yep", "confirm", "yeah", "sure", "ok", "okay", "please",
}

func containsAny(lower string, words []string) bool {
	for _, w := range words {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

// HandleMessage runs one conversation turn. Turns for the same session are
// serialized on the session's turn lock; any panic inside the turn rolls the
// session back to its pre-turn snapshot and answers with a generic reply.
func (svc *DefaultAgentService) HandleMessage(ctx context.Context, req models.ChatRequest) (resp *models.ChatResponse, err error) {
	logger := utils.GetLogger()

	shop, err := svc.Shops.GetShop(ctx, req.ShopID)
	if err != nil {
		if err == shopRepo.ErrShopNotFound {
			return nil, NewShopNotFoundError(req.ShopID)
		}
		return nil, err
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	release := svc.Sessions.Acquire(sessionID)
	defer release()

	sess := svc.Sessions.Get(ctx, sessionID, shop.ID)
	snapshot := snapshotSession(sess)

	defer func() {
		if r := recover(); r != nil {
			logger.Error("Panic inside chat turn",
				zap.Any("panic", r), zap.String("sessionID", sessionID))
			restored := snapshot
			restored.AppendMessage("user", req.Message, historyLimit())
			restored.AppendMessage("assistant", emergencyReply, historyLimit())
			svc.Sessions.Put(ctx, &restored)
			resp = &models.ChatResponse{
				Response:  emergencyReply,
				ShopID:    shop.ID,
				ShopName:  shop.Name,
				SessionID: sessionID,
				Success:   false,
			}
			err = nil
		}
	}()

	sess.MergeContact(normalizeHints(req))
	sess.AppendMessage("user", req.Message, historyLimit())

	lower := strings.ToLower(strings.TrimSpace(req.Message))

	if containsAny(lower, cancellationWords) {
		return svc.handleCancellation(ctx, shop, sess, req.Message), nil
	}

	extracted := svc.Extractor.Extract(req.Message)
	if extracted != (models.ReservationDraft{}) {
		sess.Draft.Merge(extracted)
		if sess.State == models.StateIdle {
			sess.State = models.StateCollectingInfo
		}
	}

	if sess.State != models.StateAwaitingConfirmation && sess.Draft.Complete() && containsAny(lower, summaryTriggerWords) {
		return svc.moveToConfirmation(ctx, shop, sess), nil
	}

	if sess.State == models.StateAwaitingConfirmation {
		return svc.processConfirmation(ctx, shop, sess, lower), nil
	}

	reply := svc.composeReply(ctx, shop, sess, req.Message)
	svc.finishTurn(ctx, sess, reply)

	return &models.ChatResponse{
		Response:      reply,
		ShopID:        shop.ID,
		ShopName:      shop.Name,
		SessionID:     sess.SessionID,
		Success:       true,
		NeedsMoreInfo: sess.State == models.StateCollectingInfo && !sess.Draft.Complete(),
	}, nil
}

// finishTurn records the assistant reply and persists the session.
func (svc *DefaultAgentService) finishTurn(ctx context.Context, sess *models.AgentSession, reply string) {
	sess.AppendMessage("assistant", reply, historyLimit())
	sess.MessageCount++
	svc.Sessions.Put(ctx, sess)
}

// normalizeHints runs the contact hints through the field validators and
// returns only the values that pass, normalized. Bad hints are dropped rather
// than rejected; the conversation can still collect them later.
func normalizeHints(req models.ChatRequest) (name, email, phone string) {
	if req.UserName != "" {
		if ok, v := validation.ValidateName(req.UserName); ok {
			name = v
		}
	}
	if req.UserEmail != "" {
		if ok, v := validation.ValidateEmail(req.UserEmail); ok {
			email = v
		}
	}
	if req.UserPhone != "" {
		if ok, v := validation.ValidatePhone(req.UserPhone); ok {
			phone = v
		}
	}
	return name, email, phone
}

func snapshotSession(sess *models.AgentSession) models.AgentSession {
	snapshot := *sess
	snapshot.History = append([]models.ChatMessage(nil), sess.History...)
	if sess.Pending != nil {
		pending := *sess.Pending
		snapshot.Pending = &pending
	}
	return snapshot
}
