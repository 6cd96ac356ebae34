package models

import "time"

// Reservation statuses. Cancelled rows are kept, never deleted.
const (
	ReservationConfirmed = "confirmed"
	ReservationCancelled = "cancelled"
)

// Reservation represents a confirmed reservation row in a shop's partition.
type Reservation struct {
	ID           string    `bson:"id" json:"id"`                       // Human-presentable identifier, e.g. RES17091234561234
	ShopID       string    `bson:"shop_id" json:"shop_id"`             // Owning tenant
	CustomerName string    `bson:"customer_name" json:"customer_name"`
	Phone        string    `bson:"phone" json:"phone"`
	Email        string    `bson:"email,omitempty" json:"email,omitempty"`
	Date         string    `bson:"date" json:"date"`                   // "2006-01-02"
	Time         string    `bson:"time" json:"time"`                   // "15:04", minute resolution
	PartySize    int       `bson:"party_size" json:"party_size"`
	ServiceType  string    `bson:"service_type" json:"service_type"`
	Status       string    `bson:"status" json:"status"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
}

// ReservationDraft is the partial reservation accumulated across dialogue
// turns. It is embedded in the session and only becomes a Reservation on a
// confirmed save.
type ReservationDraft struct {
	ServiceType  string `bson:"service_type,omitempty" json:"service_type,omitempty"`
	PartySize    int    `bson:"party_size,omitempty" json:"party_size,omitempty"`
	Date         string `bson:"date,omitempty" json:"date,omitempty"`
	Time         string `bson:"time,omitempty" json:"time,omitempty"`
	CustomerName string `bson:"customer_name,omitempty" json:"customer_name,omitempty"`
	Phone        string `bson:"phone,omitempty" json:"phone,omitempty"`
	Email        string `bson:"email,omitempty" json:"email,omitempty"`
}

// Merge copies the non-empty fields of other into d, last-seen-wins.
func (d *ReservationDraft) Merge(other ReservationDraft) {
	if other.ServiceType != "" {
		d.ServiceType = other.ServiceType
	}
	if other.PartySize > 0 {
		d.PartySize = other.PartySize
	}
	if other.Date != "" {
		d.Date = other.Date
	}
	if other.Time != "" {
		d.Time = other.Time
	}
	if other.CustomerName != "" {
		d.CustomerName = other.CustomerName
	}
	if other.Phone != "" {
		d.Phone = other.Phone
	}
	if other.Email != "" {
		d.Email = other.Email
	}
}

// Complete reports whether the draft carries everything needed for a summary.
func (d ReservationDraft) Complete() bool {
	return d.Date != "" && d.Time != "" && d.PartySize > 0
}
