package sessionRepo

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
	dbName      = "bookline"
	sessionColl = "agent_sessions"
)

// MongoSessionRepo implements Repository on MongoDB.
type MongoSessionRepo struct {
	coll *mongo.Collection
}

func NewMongoSessionRepo() *MongoSessionRepo {
	repo := &MongoSessionRepo{
		coll: database.MongoClient.Database(dbName).Collection(sessionColl),
	}
	repo.ensureIndexes()
	return repo
}

func (repo *MongoSessionRepo) ensureIndexes() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, _ = repo.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "session_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "last_activity", Value: 1}}},
	})
}

func (repo *MongoSessionRepo) Get(ctx context.Context, sessionID string) (*models.AgentSession, error) {
	var session models.AgentSession
	err := repo.coll.FindOne(ctx, bson.M{"session_id": sessionID}).Decode(&session)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find session failed: %w", err)
	}
	return &session, nil
}

func (repo *MongoSessionRepo) Upsert(ctx context.Context, session *models.AgentSession) error {
	filter := bson.M{"session_id": session.SessionID}
	update := bson.M{"$set": session}
	_, err := repo.coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert session failed: %w", err)
	}
	return nil
}

func (repo *MongoSessionRepo) Delete(ctx context.Context, sessionID string) error {
	_, err := repo.coll.DeleteOne(ctx, bson.M{"session_id": sessionID})
	if err != nil {
		return fmt.Errorf("delete session failed: %w", err)
	}
	return nil
}
