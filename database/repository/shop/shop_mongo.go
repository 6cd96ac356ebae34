package shopRepo

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
	dbName   = "bookline"
	shopColl = "shops"
)

// MongoShopRepo implements Repository on MongoDB.
type MongoShopRepo struct {
	coll *mongo.Collection
}

func NewMongoShopRepo() *MongoShopRepo {
	repo := &MongoShopRepo{
		coll: database.MongoClient.Database(dbName).Collection(shopColl),
	}
	repo.ensureIndexes()
	return repo
}

func (repo *MongoShopRepo) ensureIndexes() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, _ = repo.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
}

func (repo *MongoShopRepo) GetShop(ctx context.Context, shopID string) (*models.Shop, error) {
	var shop models.Shop
	err := repo.coll.FindOne(ctx, bson.M{"id": shopID}).Decode(&shop)
	if err == mongo.ErrNoDocuments {
		return nil, ErrShopNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find shop failed: %w", err)
	}
	return &shop, nil
}

func (repo *MongoShopRepo) UpsertShop(ctx context.Context, shop *models.Shop) error {
	filter := bson.M{"id": shop.ID}
	update := bson.M{"$set": shop}
	_, err := repo.coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert shop failed: %w", err)
	}
	return nil
}

func (repo *MongoShopRepo) ListShops(ctx context.Context) ([]models.Shop, error) {
	cur, err := repo.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list shops failed: %w", err)
	}
	defer cur.Close(ctx)

	var out []models.Shop
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode shops failed: %w", err)
	}
	return out, nil
}
