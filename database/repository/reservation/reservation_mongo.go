package reservationRepo

import (
	"context"
	"fmt"
	"time"

	"bookline/database"
	"bookline/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	dbName          = "bookline"
	reservationColl = "reservations"
	slotCounterColl = "slot_counters"
)

// slotCounter tracks the confirmed-reservation count for one (shop, date,
// time) slot. The conditional increment against it is what makes Reserve
// atomic under concurrent confirmations.
type slotCounter struct {
	ShopID string `bson:"shop_id"`
	Date   string `bson:"date"`
	Time   string `bson:"time"`
	Count  int    `bson:"count"`
}

// MongoReservationRepo implements Repository on MongoDB.
type MongoReservationRepo struct {
	coll  *mongo.Collection
	slots *mongo.Collection
}

func NewMongoReservationRepo() *MongoReservationRepo {
	db := database.MongoClient.Database(dbName)
	repo := &MongoReservationRepo{
		coll:  db.Collection(reservationColl),
		slots: db.Collection(slotCounterColl),
	}
	repo.ensureIndexes()
	return repo
}

func (repo *MongoReservationRepo) ensureIndexes() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, _ = repo.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "shop_id", Value: 1}, {Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "shop_id", Value: 1}, {Key: "phone", Value: 1}}},
		{Keys: bson.D{{Key: "shop_id", Value: 1}, {Key: "email", Value: 1}}},
		{Keys: bson.D{{Key: "shop_id", Value: 1}, {Key: "date", Value: 1}, {Key: "time", Value: 1}}},
	})
	_, _ = repo.slots.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "shop_id", Value: 1}, {Key: "date", Value: 1}, {Key: "time", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
}

func (repo *MongoReservationRepo) CheckAvailability(ctx context.Context, shopID, date, timeOfDay string, capacity int) (bool, error) {
	if date == "" || timeOfDay == "" {
		return false, nil
	}
	count, err := repo.coll.CountDocuments(ctx, bson.M{
		"shop_id": shopID,
		"date":    date,
		"time":    timeOfDay,
		"status":  models.ReservationConfirmed,
	})
	if err != nil {
		return false, fmt.Errorf("availability count failed: %w", err)
	}
	return count < int64(capacity), nil
}

// incrementSlot applies the capacity-guarded counter increment. apply runs
// the update with or without the upsert. When two first bookings for a slot
// race on creating the counter row, the loser's upsert trips the unique index;
// the row exists by then, so the guarded update is retried without the upsert
// and the capacity filter alone decides. A duplicate key here never means the
// slot is full.
func incrementSlot(apply func(upsert bool) (*mongo.UpdateResult, error)) error {
	upd, err := apply(true)
	if mongo.IsDuplicateKeyError(err) {
		upd, err = apply(false)
	}
	if err != nil {
		return fmt.Errorf("slot counter update failed: %w", err)
	}
	if upd.MatchedCount == 0 && upd.UpsertedID == nil {
		return ErrSlotFull
	}
	return nil
}

// Reserve runs the capacity check and insert as one transaction: a guarded
// increment on the slot counter, then the reservation insert. A counter
// already at capacity matches nothing, which maps to ErrSlotFull.
func (repo *MongoReservationRepo) Reserve(ctx context.Context, shopID string, draft models.ReservationDraft, capacity int) (*models.Reservation, error) {
	now := time.Now()
	res := &models.Reservation{
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

	client := repo.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return nil, fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) (interface{}, error) {
		filter := bson.M{
			"shop_id": shopID,
			"date":    res.Date,
			"time":    res.Time,
			"count":   bson.M{"$lt": capacity},
		}
		update := bson.M{"$inc": bson.M{"count": 1}}
		if err := incrementSlot(func(upsert bool) (*mongo.UpdateResult, error) {
			return repo.slots.UpdateOne(sc, filter, update, options.Update().SetUpsert(upsert))
		}); err != nil {
			return nil, err
		}
		if _, err := repo.coll.InsertOne(sc, res); err != nil {
			return nil, fmt.Errorf("insert reservation failed: %w", err)
		}
		return nil, nil
	}

	// WithTransaction retries transient write conflicts; ErrSlotFull is a
	// plain error and surfaces immediately.
	if _, err := sess.WithTransaction(ctx, txnFn); err != nil {
		return nil, err
	}

	return res, nil
}

func (repo *MongoReservationRepo) CancelByKey(ctx context.Context, shopID string, key CancelKey) (*models.Reservation, error) {
	var filter bson.M
	switch {
	case key.ReservationID != "":
		filter = bson.M{"shop_id": shopID, "id": key.ReservationID, "status": models.ReservationConfirmed}
	case key.Phone != "":
		filter = bson.M{"shop_id": shopID, "phone": key.Phone, "status": models.ReservationConfirmed}
	case key.Email != "":
		filter = bson.M{"shop_id": shopID, "email": key.Email, "status": models.ReservationConfirmed}
	default:
		return nil, ErrNotFound
	}

	client := repo.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return nil, fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	var cancelled models.Reservation
	txnFn := func(sc mongo.SessionContext) (interface{}, error) {
		opts := options.FindOneAndUpdate().
			SetSort(bson.D{{Key: "created_at", Value: -1}}).
			SetReturnDocument(options.After)
		update := bson.M{"$set": bson.M{
			"status":     models.ReservationCancelled,
			"updated_at": time.Now(),
		}}
		if err := repo.coll.FindOneAndUpdate(sc, filter, update, opts).Decode(&cancelled); err != nil {
			if err == mongo.ErrNoDocuments {
				return nil, ErrNotFound
			}
			return nil, fmt.Errorf("cancel update failed: %w", err)
		}
		// Free the capacity unit so the slot can be rebooked.
		_, err := repo.slots.UpdateOne(sc, bson.M{
			"shop_id": shopID,
			"date":    cancelled.Date,
			"time":    cancelled.Time,
			"count":   bson.M{"$gt": 0},
		}, bson.M{"$inc": bson.M{"count": -1}})
		if err != nil {
			return nil, fmt.Errorf("slot counter decrement failed: %w", err)
		}
		return nil, nil
	}

	if _, err := sess.WithTransaction(ctx, txnFn); err != nil {
		return nil, err
	}

	return &cancelled, nil
}

func (repo *MongoReservationRepo) FindByID(ctx context.Context, shopID, reservationID string) (*models.Reservation, error) {
	var res models.Reservation
	err := repo.coll.FindOne(ctx, bson.M{"shop_id": shopID, "id": reservationID}).Decode(&res)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find reservation failed: %w", err)
	}
	return &res, nil
}

func (repo *MongoReservationRepo) ListByShop(ctx context.Context, shopID string, includeCancelled bool) ([]models.Reservation, error) {
	filter := bson.M{"shop_id": shopID}
	if !includeCancelled {
		filter["status"] = models.ReservationConfirmed
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := repo.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list reservations failed: %w", err)
	}
	defer cur.Close(ctx)

	var out []models.Reservation
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode reservations failed: %w", err)
	}
	return out, nil
}
