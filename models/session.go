package models

import "time"

// DialogueState is the current phase of a reservation conversation.
type DialogueState string

const (
	StateIdle                 DialogueState = ""
	StateCollectingInfo       DialogueState = "collecting_info"
	StateAwaitingConfirmation DialogueState = "awaiting_confirmation"
)

// ChatMessage is one entry in a session's bounded conversation log.
type ChatMessage struct {
	Role      string    `bson:"role" json:"role"` // "user" or "assistant"
	Content   string    `bson:"content" json:"content"`
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
}

// AgentSession holds the dialogue state for one conversation with one shop.
// The pending snapshot is set only while State is awaiting_confirmation.
type AgentSession struct {
	SessionID    string            `bson:"session_id" json:"session_id"`
	ShopID       string            `bson:"shop_id" json:"shop_id"`
	State        DialogueState     `bson:"reservation_state" json:"reservation_state"`
	Draft        ReservationDraft  `bson:"reservation_data" json:"reservation_data"`
	Pending      *ReservationDraft `bson:"pending_reservation,omitempty" json:"pending_reservation,omitempty"`
	UserName     string            `bson:"user_name,omitempty" json:"user_name,omitempty"`
	UserEmail    string            `bson:"user_email,omitempty" json:"user_email,omitempty"`
	UserPhone    string            `bson:"user_phone,omitempty" json:"user_phone,omitempty"`
	History      []ChatMessage     `bson:"history" json:"history"`
	MessageCount int               `bson:"message_count" json:"message_count"`
	CreatedAt    time.Time         `bson:"created_at" json:"created_at"`
	LastActivity time.Time         `bson:"last_activity" json:"last_activity"`
}

// MergeContact fills in contact fields from non-empty hints. Existing values
// are only replaced, never cleared.
func (s *AgentSession) MergeContact(name, email, phone string) {
	if name != "" {
		s.UserName = name
	}
	if email != "" {
		s.UserEmail = email
	}
	if phone != "" {
		s.UserPhone = phone
	}
}

// ClearReservation drops the accumulated draft and any pending snapshot and
// returns the session to idle.
func (s *AgentSession) ClearReservation() {
	s.State = StateIdle
	s.Draft = ReservationDraft{}
	s.Pending = nil
}

// AppendMessage adds a message to the history, evicting the oldest entries
// beyond maxLen.
func (s *AgentSession) AppendMessage(role, content string, maxLen int) {
	s.History = append(s.History, ChatMessage{Role: role, Content: content, Timestamp: time.Now()})
	if maxLen > 0 && len(s.History) > maxLen {
		s.History = s.History[len(s.History)-maxLen:]
	}
}

// TrimHistory keeps at most the last message, used to reset context after a
// completed reservation or cancellation.
func (s *AgentSession) TrimHistory() {
	if len(s.History) > 1 {
		s.History = s.History[len(s.History)-1:]
	}
}
