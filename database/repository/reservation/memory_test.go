package reservationRepo

import (
	"context"
	"sync"
	"testing"
	"time"

	"bookline/models"
)

func draft(phone string) models.ReservationDraft {
	return models.ReservationDraft{
		CustomerName: "Sam Jones",
		Phone:        phone,
		Email:        "sam@example.com",
		Date:         "2026-03-12",
		Time:         "18:00",
		PartySize:    2,
		ServiceType:  "Dinner Reservation",
	}
}

func TestReserveCapacityUnderConcurrency(t *testing.T) {
	const capacity = 4
	const attempts = 32
	repo := NewInMemoryReservationRepo()
	ctx := context.Background()

	var wg sync.WaitGroup
	results := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Reserve(ctx, "shop-1", draft("5551234567"), capacity)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	succeeded, rejected := 0, 0
	for err := range results {
		switch err {
		case nil:
			succeeded++
		case ErrSlotFull:
			rejected++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if succeeded != capacity {
		t.Fatalf("succeeded = %d, want exactly %d", succeeded, capacity)
	}
	if rejected != attempts-capacity {
		t.Fatalf("rejected = %d, want %d", rejected, attempts-capacity)
	}

	ok, err := repo.CheckAvailability(ctx, "shop-1", "2026-03-12", "18:00", capacity)
	if err != nil {
		t.Fatalf("CheckAvailability() error = %v", err)
	}
	if ok {
		t.Fatalf("slot should be full")
	}
}

func TestCancelFreesSlot(t *testing.T) {
	const capacity = 1
	repo := NewInMemoryReservationRepo()
	ctx := context.Background()

	res, err := repo.Reserve(ctx, "shop-1", draft("5551234567"), capacity)
	if err != nil {
		t.Fatalf("Reserve() error = %v", err)
	}
	if ok, _ := repo.CheckAvailability(ctx, "shop-1", res.Date, res.Time, capacity); ok {
		t.Fatalf("slot should be full after reserve")
	}

	cancelled, err := repo.CancelByKey(ctx, "shop-1", CancelKey{ReservationID: res.ID})
	if err != nil {
		t.Fatalf("CancelByKey() error = %v", err)
	}
	if cancelled.Status != models.ReservationCancelled {
		t.Fatalf("status = %q, want cancelled", cancelled.Status)
	}
	if ok, _ := repo.CheckAvailability(ctx, "shop-1", res.Date, res.Time, capacity); !ok {
		t.Fatalf("slot should be free after cancellation")
	}

	// Second cancellation of the same id must fail.
	if _, err := repo.CancelByKey(ctx, "shop-1", CancelKey{ReservationID: res.ID}); err != ErrNotFound {
		t.Fatalf("second cancel error = %v, want ErrNotFound", err)
	}
}

func TestCancelByPhonePicksMostRecentConfirmed(t *testing.T) {
	repo := NewInMemoryReservationRepo()
	ctx := context.Background()

	older, err := repo.Reserve(ctx, "shop-1", draft("5551234567"), 10)
	if err != nil {
		t.Fatalf("Reserve() error = %v", err)
	}
	// An already-cancelled row for the same phone must never match.
	if _, err := repo.CancelByKey(ctx, "shop-1", CancelKey{ReservationID: older.ID}); err != nil {
		t.Fatalf("CancelByKey() error = %v", err)
	}

	d := draft("5551234567")
	d.Time = "20:00"
	newer, err := repo.Reserve(ctx, "shop-1", d, 10)
	if err != nil {
		t.Fatalf("Reserve() error = %v", err)
	}
	// Make creation order unambiguous.
	repo.mu.Lock()
	for i := range repo.rows["shop-1"] {
		if repo.rows["shop-1"][i].ID == newer.ID {
			repo.rows["shop-1"][i].CreatedAt = repo.rows["shop-1"][i].CreatedAt.Add(time.Second)
		}
	}
	repo.mu.Unlock()

	got, err := repo.CancelByKey(ctx, "shop-1", CancelKey{Phone: "5551234567"})
	if err != nil {
		t.Fatalf("CancelByKey(phone) error = %v", err)
	}
	if got.ID != newer.ID {
		t.Fatalf("cancelled %s, want most recent %s", got.ID, newer.ID)
	}
}

func TestTenantIsolation(t *testing.T) {
	repo := NewInMemoryReservationRepo()
	ctx := context.Background()

	res, err := repo.Reserve(ctx, "shop-1", draft("5551234567"), 4)
	if err != nil {
		t.Fatalf("Reserve() error = %v", err)
	}
	if _, err := repo.FindByID(ctx, "shop-2", res.ID); err != ErrNotFound {
		t.Fatalf("cross-tenant lookup error = %v, want ErrNotFound", err)
	}
	if _, err := repo.CancelByKey(ctx, "shop-2", CancelKey{Phone: "5551234567"}); err != ErrNotFound {
		t.Fatalf("cross-tenant cancel error = %v, want ErrNotFound", err)
	}
}

func TestListByShopHidesCancelled(t *testing.T) {
	repo := NewInMemoryReservationRepo()
	ctx := context.Background()

	a, _ := repo.Reserve(ctx, "shop-1", draft("5551230001"), 10)
	d := draft("5551230002")
	d.Time = "19:00"
	if _, err := repo.Reserve(ctx, "shop-1", d, 10); err != nil {
		t.Fatalf("Reserve() error = %v", err)
	}
	if _, err := repo.CancelByKey(ctx, "shop-1", CancelKey{ReservationID: a.ID}); err != nil {
		t.Fatalf("CancelByKey() error = %v", err)
	}

	confirmed, err := repo.ListByShop(ctx, "shop-1", false)
	if err != nil {
		t.Fatalf("ListByShop() error = %v", err)
	}
	if len(confirmed) != 1 {
		t.Fatalf("confirmed rows = %d, want 1", len(confirmed))
	}
	all, err := repo.ListByShop(ctx, "shop-1", true)
	if err != nil {
		t.Fatalf("ListByShop(all) error = %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("all rows = %d, want 2", len(all))
	}
}
