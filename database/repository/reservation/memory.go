package reservationRepo

import (
	"context"
	"sync"
	"time"

	"bookline/models"
)

// InMemoryReservationRepo implements Repository with a mutex-guarded map. It
// backs tests and local development without a MongoDB instance; one lock
// around check-and-insert gives the same atomicity Reserve has in Mongo.
type InMemoryReservationRepo struct {
	mu   sync.Mutex
	rows map[string][]models.Reservation // shop id -> rows, append order
}

func NewInMemoryReservationRepo() *InMemoryReservationRepo {
	return &InMemoryReservationRepo{rows: make(map[string][]models.Reservation)}
}

func (repo *InMemoryReservationRepo) CheckAvailability(ctx context.Context, shopID, date, timeOfDay string, capacity int) (bool, error) {
	if date == "" || timeOfDay == "" {
		return false, nil
	}
	repo.mu.Lock()
	defer repo.mu.Unlock()
	return repo.confirmedCount(shopID, date, timeOfDay) < capacity, nil
}

func (repo *InMemoryReservationRepo) confirmedCount(shopID, date, timeOfDay string) int {
	count := 0
	for _, r := range repo.rows[shopID] {
		if r.Date == date && r.Time == timeOfDay && r.Status == models.ReservationConfirmed {
			count++
		}
	}
	return count
}

func (repo *InMemoryReservationRepo) Reserve(ctx context.Context, shopID string, draft models.ReservationDraft, capacity int) (*models.Reservation, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if repo.confirmedCount(shopID, draft.Date, draft.Time) >= capacity {
		return nil, ErrSlotFull
	}

	now := time.Now()
	res := models.Reservation{
		ID:           NewReservationID(),
		ShopID:       shopID,
		CustomerName: draft.CustomerName,
		Phone:        draft.Phone,
		Email:        draft.Email,
		Date:         draft.Date,
		Time:         draft.Time,
		PartySize:    draft.PartySize,
		ServiceType:  draft.ServiceType,
		Status:       models.ReservationConfirmed,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if res.CustomerName == "" {
		res.CustomerName = "Customer"
	}
	if res.ServiceType == "" {
		res.ServiceType = "General"
	}
	repo.rows[shopID] = append(repo.rows[shopID], res)
	out := res
	return &out, nil
}

func (repo *InMemoryReservationRepo) CancelByKey(ctx context.Context, shopID string, key CancelKey) (*models.Reservation, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	rows := repo.rows[shopID]
	best := -1
	for i, r := range rows {
		if r.Status != models.ReservationConfirmed {
			continue
		}
		switch {
		case key.ReservationID != "":
			if r.ID != key.ReservationID {
				continue
			}
		case key.Phone != "":
			if r.Phone != key.Phone {
				continue
			}
		case key.Email != "":
			if r.Email != key.Email {
				continue
			}
		default:
			return nil, ErrNotFound
		}
		// Most recent wins; equal timestamps fall to the later insert.
		if best < 0 || !rows[i].CreatedAt.Before(rows[best].CreatedAt) {
			best = i
		}
	}
	if best < 0 {
		return nil, ErrNotFound
	}

	rows[best].Status = models.ReservationCancelled
	rows[best].UpdatedAt = time.Now()
	out := rows[best]
	return &out, nil
}

func (repo *InMemoryReservationRepo) FindByID(ctx context.Context, shopID, reservationID string) (*models.Reservation, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	for _, r := range repo.rows[shopID] {
		if r.ID == reservationID {
			out := r
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (repo *InMemoryReservationRepo) ListByShop(ctx context.Context, shopID string, includeCancelled bool) ([]models.Reservation, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	var out []models.Reservation
	rows := repo.rows[shopID]
	for i := len(rows) - 1; i >= 0; i-- {
		if !includeCancelled && rows[i].Status != models.ReservationConfirmed {
			continue
		}
		out = append(out, rows[i])
	}
	return out, nil
}
