package agent

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	reservationRepo "bookline/database/repository/reservation"
	sessionRepo "bookline/database/repository/session"
	shopRepo "bookline/database/repository/shop"
	"bookline/models"
	"bookline/session"
)

type mockCompleter struct {
	reply string
	err   error
	panic bool
}

func (m *mockCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	if m.panic {
		panic("completer blew up")
	}
	return m.reply, m.err
}

func testShop() models.Shop {
	return models.Shop{
		ID:       "shop-1",
		Name:     "Tony's Barbershop",
		Category: "barbershop",
		OperatingHours: map[string]string{
			"monday":    "9:00 AM - 9:00 PM",
			"tuesday":   "9:00 AM - 9:00 PM",
			"wednesday": "9:00 AM - 9:00 PM",
			"thursday":  "9:00 AM - 9:00 PM",
			"friday":    "9:00 AM - 9:00 PM",
			"saturday":  "9:00 AM - 9:00 PM",
			"sunday":    "closed",
		},
		Policy: models.ReservationPolicy{
			MaxPerSlot:             2,
			MinBookingHoursAdvance: 1,
			MaxAdvanceBookingDays:  30,
			MaxPartySize:           20,
		},
		Services: []models.Service{
			{Name: "Haircut", Price: 25, DurationMinutes: 30},
		},
	}
}

// Wednesday noon; "tomorrow" resolves to Thursday 2026-03-05.
var turnClock = time.Date(2026, time.March, 4, 12, 0, 0, 0, time.Local)

func newTestAgent(completer *mockCompleter) (*DefaultAgentService, *reservationRepo.InMemoryReservationRepo) {
	reservations := reservationRepo.NewInMemoryReservationRepo()
	svc := NewDefaultAgentService(
		shopRepo.NewInMemoryShopRepo(testShop()),
		reservations,
		session.NewStoreWithTimeout(sessionRepo.NewInMemorySessionRepo(), 30*time.Minute),
		completer,
	)
	svc.Extractor.Now = func() time.Time { return turnClock }
	svc.Slots.Now = func() time.Time { return turnClock }
	return svc, reservations
}

func sendMessage(t *testing.T, svc *DefaultAgentService, sessionID, message string) *models.ChatResponse {
	t.Helper()
	resp, err := svc.HandleMessage(context.Background(), models.ChatRequest{
		ShopID:    "shop-1",
		SessionID: sessionID,
		Message:   message,
		UserName:  "Sam Jones",
		UserPhone: "5551234567",
	})
	if err != nil {
		t.Fatalf("HandleMessage(%q) error = %v", message, err)
	}
	return resp
}

func TestFullBookingFlow(t *testing.T) {
	svc, _ := newTestAgent(&mockCompleter{reply: "What date works for you? I can check our availability."})

	first := sendMessage(t, svc, "sess-1", "I'd like a table for 2 people tomorrow at 7pm")
	if first.NeedsConfirmation {
		t.Fatalf("first turn should not ask for confirmation yet")
	}

	summary := sendMessage(t, svc, "sess-1", "yes book it")
	if !summary.NeedsConfirmation {
		t.Fatalf("expected confirmation summary, got %q", summary.Response)
	}
	if !strings.Contains(summary.Response, "Please reply 'YES' to confirm") {
		t.Fatalf("summary missing confirmation instruction: %q", summary.Response)
	}
	if !strings.Contains(summary.Response, "2026-03-05") || !strings.Contains(summary.Response, "19:00") {
		t.Fatalf("summary missing extracted slot: %q", summary.Response)
	}

	confirmed := sendMessage(t, svc, "sess-1", "YES")
	if !confirmed.Success || confirmed.ReservationID == "" {
		t.Fatalf("confirmation failed: %+v", confirmed)
	}
	if !strings.Contains(confirmed.Response, "RESERVATION CONFIRMED") {
		t.Fatalf("receipt missing, got %q", confirmed.Response)
	}

	sess := svc.Sessions.Get(context.Background(), "sess-1", "shop-1")
	if sess.State != models.StateIdle || sess.Pending != nil {
		t.Fatalf("session not reset after booking: state=%q pending=%v", sess.State, sess.Pending)
	}
	if sess.Draft != (models.ReservationDraft{}) {
		t.Fatalf("draft not cleared: %+v", sess.Draft)
	}
}

func TestNoAtConfirmationClearsEverything(t *testing.T) {
	svc, _ := newTestAgent(&mockCompleter{reply: "Happy to help with your booking today."})

	sendMessage(t, svc, "sess-1", "book for 4 people tomorrow at 3pm")
	summary := sendMessage(t, svc, "sess-1", "yes go ahead")
	if !summary.NeedsConfirmation {
		t.Fatalf("expected summary, got %q", summary.Response)
	}

	declined := sendMessage(t, svc, "sess-1", "no")
	if !strings.Contains(declined.Response, "No problem") {
		t.Fatalf("decline reply = %q", declined.Response)
	}

	sess := svc.Sessions.Get(context.Background(), "sess-1", "shop-1")
	if sess.Pending != nil || sess.Draft != (models.ReservationDraft{}) {
		t.Fatalf("decline left state behind: draft=%+v pending=%v", sess.Draft, sess.Pending)
	}

	// A later message starts extraction fresh, with no leaked fields.
	sendMessage(t, svc, "sess-1", "next week at 5pm")
	sess = svc.Sessions.Get(context.Background(), "sess-1", "shop-1")
	if sess.Draft.PartySize != 0 {
		t.Fatalf("party size leaked from abandoned draft: %d", sess.Draft.PartySize)
	}
	if sess.Draft.Time != "17:00" {
		t.Fatalf("new extraction missing: %+v", sess.Draft)
	}
}

func TestConfirmationRechecksCapacity(t *testing.T) {
	svc, reservations := newTestAgent(&mockCompleter{reply: "Certainly, let me check that for you."})

	// Fill the slot from another session between summary and confirmation.
	sendMessage(t, svc, "sess-1", "table for 2 tomorrow at 7pm")
	summary := sendMessage(t, svc, "sess-1", "yes book it")
	if !summary.NeedsConfirmation {
		t.Fatalf("expected summary, got %q", summary.Response)
	}
	for i := 0; i < 2; i++ {
		_, err := reservations.Reserve(context.Background(), "shop-1", models.ReservationDraft{
			Date: "2026-03-05", Time: "19:00", PartySize: 2,
		}, 2)
		if err != nil {
			t.Fatalf("competing Reserve() error = %v", err)
		}
	}

	resp := sendMessage(t, svc, "sess-1", "yes")
	if resp.Success {
		t.Fatalf("confirmation should fail on a full slot")
	}
	if !strings.Contains(resp.Response, "no longer available") {
		t.Fatalf("reply = %q", resp.Response)
	}

	sess := svc.Sessions.Get(context.Background(), "sess-1", "shop-1")
	if sess.Pending != nil || sess.State != models.StateIdle {
		t.Fatalf("session not cleared after capacity rejection")
	}
}

func TestConfirmationRejectsClosedDay(t *testing.T) {
	svc, _ := newTestAgent(&mockCompleter{reply: "Certainly, let me check that for you."})

	// 2026-03-08 is a Sunday, when the shop is closed.
	sendMessage(t, svc, "sess-1", "table for 2 on 08-03-2026 at 7pm")
	summary := sendMessage(t, svc, "sess-1", "yes book it")
	if !summary.NeedsConfirmation {
		t.Fatalf("expected summary, got %q", summary.Response)
	}

	resp := sendMessage(t, svc, "sess-1", "yes")
	if resp.Success {
		t.Fatalf("confirmation should fail on a closed day")
	}
	if !strings.Contains(resp.Response, "closed on Sunday") {
		t.Fatalf("reply = %q", resp.Response)
	}
}

func TestCancelOngoingReservation(t *testing.T) {
	svc, _ := newTestAgent(&mockCompleter{reply: "Happy to help with your booking today."})

	sendMessage(t, svc, "sess-1", "book a haircut tomorrow at 2pm")
	resp := sendMessage(t, svc, "sess-1", "actually cancel that")
	if !strings.Contains(resp.Response, "cancelled your ongoing reservation process") {
		t.Fatalf("reply = %q", resp.Response)
	}

	sess := svc.Sessions.Get(context.Background(), "sess-1", "shop-1")
	if sess.State != models.StateIdle || sess.Draft != (models.ReservationDraft{}) {
		t.Fatalf("ongoing cancellation left state: %q %+v", sess.State, sess.Draft)
	}
}

func TestCancelExistingByID(t *testing.T) {
	svc, reservations := newTestAgent(&mockCompleter{reply: "Happy to help with your booking today."})

	saved, err := reservations.Reserve(context.Background(), "shop-1", models.ReservationDraft{
		CustomerName: "Sam Jones", Phone: "+1 (555) 123-4567",
		Date: "2026-03-05", Time: "19:00", PartySize: 2,
	}, 4)
	if err != nil {
		t.Fatalf("Reserve() error = %v", err)
	}

	resp := sendMessage(t, svc, "sess-1", "please cancel reservation "+saved.ID)
	if !strings.Contains(resp.Response, "CANCELLATION SUCCESSFUL") {
		t.Fatalf("reply = %q", resp.Response)
	}
	if resp.ReservationID != saved.ID {
		t.Fatalf("cancelled id = %q, want %q", resp.ReservationID, saved.ID)
	}
}

func TestCancelFallsBackToSessionPhone(t *testing.T) {
	svc, reservations := newTestAgent(&mockCompleter{reply: "Happy to help with your booking today."})

	// The stored phone matches the normalized form of the contact hint.
	_, err := reservations.Reserve(context.Background(), "shop-1", models.ReservationDraft{
		CustomerName: "Sam Jones", Phone: "+1 (555) 123-4567",
		Date: "2026-03-05", Time: "19:00", PartySize: 2,
	}, 4)
	if err != nil {
		t.Fatalf("Reserve() error = %v", err)
	}

	resp := sendMessage(t, svc, "sess-1", "I need to cancel my booking")
	if !strings.Contains(resp.Response, "CANCELLATION SUCCESSFUL") {
		t.Fatalf("reply = %q", resp.Response)
	}
}

func TestCancelWithoutIdentifierAsks(t *testing.T) {
	svc, _ := newTestAgent(&mockCompleter{reply: "Happy to help with your booking today."})

	resp, err := svc.HandleMessage(context.Background(), models.ChatRequest{
		ShopID:    "shop-1",
		SessionID: "sess-1",
		Message:   "cancel my reservation",
	})
	if err != nil {
		t.Fatalf("HandleMessage() error = %v", err)
	}
	if !resp.NeedsMoreInfo {
		t.Fatalf("expected identifier prompt, got %+v", resp)
	}
	if !strings.Contains(resp.Response, "Reservation ID") {
		t.Fatalf("reply = %q", resp.Response)
	}
}

func TestUnknownShop(t *testing.T) {
	svc, _ := newTestAgent(&mockCompleter{reply: "ok"})

	_, err := svc.HandleMessage(context.Background(), models.ChatRequest{
		ShopID:  "ghost",
		Message: "hello",
	})
	var agentErr *AgentError
	if !errors.As(err, &agentErr) || agentErr.Code != "shopNotFound" {
		t.Fatalf("error = %v, want shopNotFound", err)
	}
}

func TestCompleterFailureFallsBack(t *testing.T) {
	svc, _ := newTestAgent(&mockCompleter{err: errors.New("model unavailable")})

	resp := sendMessage(t, svc, "sess-1", "hello there")
	if !strings.Contains(resp.Response, "Welcome to Tony's Barbershop") {
		t.Fatalf("fallback greeting missing, got %q", resp.Response)
	}
}

func TestDegenerateCompletionFallsBack(t *testing.T) {
	svc, _ := newTestAgent(&mockCompleter{reply: "Okay"})

	resp := sendMessage(t, svc, "sess-1", "what are your prices?")
	if !strings.Contains(resp.Response, "Here are our rates") {
		t.Fatalf("fallback rates missing, got %q", resp.Response)
	}
}

func TestPanicRollsBackSession(t *testing.T) {
	completer := &mockCompleter{reply: "What date works for you? I can check."}
	svc, _ := newTestAgent(completer)

	sendMessage(t, svc, "sess-1", "table for 3 tomorrow")
	before := svc.Sessions.Get(context.Background(), "sess-1", "shop-1")

	completer.panic = true
	resp := sendMessage(t, svc, "sess-1", "tell me something")
	if resp.Success {
		t.Fatalf("panicked turn reported success")
	}
	if resp.Response != emergencyReply {
		t.Fatalf("reply = %q, want generic apology", resp.Response)
	}

	after := svc.Sessions.Get(context.Background(), "sess-1", "shop-1")
	if after.Draft != before.Draft || after.State != before.State {
		t.Fatalf("session mutated by failed turn: before=%+v after=%+v", before.Draft, after.Draft)
	}
	last := after.History[len(after.History)-1]
	if last.Role != "assistant" || last.Content != emergencyReply {
		t.Fatalf("history missing apology exchange: %+v", last)
	}
}

func TestContactHintsAreNormalized(t *testing.T) {
	svc, _ := newTestAgent(&mockCompleter{reply: "Happy to help with your booking today."})

	sendMessage(t, svc, "sess-1", "hello")
	sess := svc.Sessions.Get(context.Background(), "sess-1", "shop-1")
	if sess.UserName != "Sam Jones" {
		t.Fatalf("name = %q", sess.UserName)
	}
	if sess.UserPhone != "+1 (555) 123-4567" {
		t.Fatalf("phone = %q, want normalized form", sess.UserPhone)
	}
}
