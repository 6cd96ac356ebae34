package models

// Service is a single entry in a shop's service catalogue.
type Service struct {
	Name            string  `bson:"name" json:"name"`
	Price           float64 `bson:"price" json:"price"`
	DurationMinutes int     `bson:"duration_minutes" json:"duration_minutes"`
}

// ReservationPolicy holds the per-shop booking rules.
type ReservationPolicy struct {
	MaxPerSlot             int `bson:"max_reservations_per_slot" json:"max_reservations_per_slot"`
	MinBookingHoursAdvance int `bson:"min_booking_hours_advance" json:"min_booking_hours_advance"`
	MaxAdvanceBookingDays  int `bson:"max_advance_booking_days" json:"max_advance_booking_days"`
	MaxPartySize           int `bson:"max_party_size" json:"max_party_size"`
}

// Shop is the tenant context: display details, operating hours, policy and
// service catalogue. Read-only to the agent core.
type Shop struct {
	ID       string            `bson:"id" json:"id"`
	Name     string            `bson:"name" json:"name"`
	Category string            `bson:"category" json:"category"`
	Address  string            `bson:"address,omitempty" json:"address,omitempty"`
	Phone    string            `bson:"phone,omitempty" json:"phone,omitempty"`
	// OperatingHours maps a lowercase weekday name ("monday") to a display
	// string like "9:00 AM - 7:00 PM", or "closed".
	OperatingHours map[string]string `bson:"operating_hours" json:"operating_hours"`
	Policy         ReservationPolicy `bson:"reservation_policy" json:"reservation_policy"`
	Services       []Service         `bson:"services" json:"services"`
}
