package models

// ChatRequest is one inbound message for a shop's assistant. SessionID may be
// empty on the first turn; contact hints are optional and merged into the
// session monotonically.
type ChatRequest struct {
	ShopID    string `json:"shop_id"`
	SessionID string `json:"session_id,omitempty"`
	Message   string `json:"message"`
	UserName  string `json:"user_name,omitempty"`
	UserEmail string `json:"user_email,omitempty"`
	UserPhone string `json:"user_phone,omitempty"`
}

// ChatResponse is the outcome of one dialogue turn.
type ChatResponse struct {
	Response          string `json:"response"`
	ShopID            string `json:"shop_id"`
	ShopName          string `json:"shop_name"`
	SessionID         string `json:"session_id"`
	Success           bool   `json:"success"`
	NeedsConfirmation bool   `json:"needs_confirmation,omitempty"`
	NeedsMoreInfo     bool   `json:"needs_more_info,omitempty"`
	ReservationID     string `json:"reservation_id,omitempty"`
}
