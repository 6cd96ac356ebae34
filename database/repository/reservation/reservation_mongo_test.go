package reservationRepo

import (
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"
)

func duplicateKeyErr() error {
	return mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}
}

func TestIncrementSlotRetriesAfterCounterCreateRace(t *testing.T) {
	// Two first bookings race on creating the counter row: the loser's
	// upsert hits the unique index, but the slot is at 1/N capacity. The
	// retry without the upsert must book it, not report the slot full.
	calls := 0
	err := incrementSlot(func(upsert bool) (*mongo.UpdateResult, error) {
		calls++
		if upsert {
			return nil, duplicateKeyErr()
		}
		return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
	})
	if err != nil {
		t.Fatalf("incrementSlot() error = %v, want retried update to succeed", err)
	}
	if calls != 2 {
		t.Fatalf("update attempts = %d, want 2", calls)
	}
}

func TestIncrementSlotFullAfterRetry(t *testing.T) {
	// The counter row exists by the retry but capacity is exhausted, so
	// the guarded update matches nothing.
	err := incrementSlot(func(upsert bool) (*mongo.UpdateResult, error) {
		if upsert {
			return nil, duplicateKeyErr()
		}
		return &mongo.UpdateResult{}, nil
	})
	if err != ErrSlotFull {
		t.Fatalf("incrementSlot() error = %v, want ErrSlotFull", err)
	}
}

func TestIncrementSlotFullWhenGuardMisses(t *testing.T) {
	err := incrementSlot(func(upsert bool) (*mongo.UpdateResult, error) {
		return &mongo.UpdateResult{}, nil
	})
	if err != ErrSlotFull {
		t.Fatalf("incrementSlot() error = %v, want ErrSlotFull", err)
	}
}

func TestIncrementSlotWrapsOtherErrors(t *testing.T) {
	boom := errors.New("network down")
	err := incrementSlot(func(upsert bool) (*mongo.UpdateResult, error) {
		return nil, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("incrementSlot() error = %v, want wrapped %v", err, boom)
	}
}
