package reservationRepo

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"bookline/models"
)

// Sentinel errors returned by reservation repositories.
var (
	ErrNotFound = errors.New("reservation not found")
	ErrSlotFull = errors.New("slot is at capacity")
)

// CancelKey identifies a reservation for cancellation. Exactly one key is
// used, in priority order id > phone > email; phone and email select the most
// recently created confirmed reservation.
type CancelKey struct {
	ReservationID string
	Phone         string
	Email         string
}

// Repository is the per-tenant reservation store. All operations are scoped to
// one shop; a shop never sees another shop's rows.
type Repository interface {
	// CheckAvailability reports whether the (date, time) slot has confirmed
	// reservations below capacity.
	CheckAvailability(ctx context.Context, shopID, date, timeOfDay string, capacity int) (bool, error)

	// Reserve atomically re-checks capacity for the draft's slot and inserts a
	// confirmed reservation. Returns ErrSlotFull when the slot is already at
	// capacity; concurrent callers can never overfill a slot.
	Reserve(ctx context.Context, shopID string, draft models.ReservationDraft, capacity int) (*models.Reservation, error)

	// CancelByKey flips the matched confirmed reservation to cancelled and
	// returns it. Nonexistent or already-cancelled rows return ErrNotFound.
	CancelByKey(ctx context.Context, shopID string, key CancelKey) (*models.Reservation, error)

	// FindByID returns a reservation regardless of status.
	FindByID(ctx context.Context, shopID, reservationID string) (*models.Reservation, error)

	// ListByShop returns the shop's reservations, confirmed only unless
	// includeCancelled is set, newest first.
	ListByShop(ctx context.Context, shopID string, includeCancelled bool) ([]models.Reservation, error)
}

// NewReservationID generates a human-presentable reservation identifier:
// "RES" + unix seconds + four random digits. Collisions within a tenant are
// negligible at conversational booking rates.
func NewReservationID() string {
	return fmt.Sprintf("RES%d%04d", time.Now().Unix(), rand.Intn(9000)+1000)
}
