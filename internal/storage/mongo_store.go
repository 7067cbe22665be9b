package storage

import (
	"context"
	"crypto/tls"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore is the production DocumentStore. Documents are addressed by a
// user_id field with a unique index, and merges map directly onto $set with
// an upsert so the document is created on first save.
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

func NewMongoStore(ctx context.Context, mongoURI, dbName string) (*MongoStore, error) {
	tlsCfg := &tls.Config{
		MinVersion: tls.VersionTLS12,
		MaxVersion: tls.VersionTLS12,
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI).SetTLSConfig(tlsCfg))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	db := client.Database(dbName)

	// Best-effort index.
	_, _ = db.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})

	return &MongoStore{client: client, db: db}, nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *MongoStore) Get(ctx context.Context, collection, id string, dest interface{}) error {
	err := s.db.Collection(collection).FindOne(ctx, bson.M{"user_id": id}).Decode(dest)
	if err == mongo.ErrNoDocuments {
		return ErrNotFound
	}
	return err
}

func (s *MongoStore) Merge(ctx context.Context, collection, id string, fields map[string]interface{}) error {
	set := bson.M{}
	for k, v := range fields {
		set[k] = v
	}

	_, err := s.db.Collection(collection).UpdateOne(
		ctx,
		bson.M{"user_id": id},
		bson.M{"$set": set, "$setOnInsert": bson.M{"user_id": id}},
		options.Update().SetUpsert(true),
	)
	return err
}

func (s *MongoStore) Delete(ctx context.Context, collection, id string) error {
	_, err := s.db.Collection(collection).DeleteOne(ctx, bson.M{"user_id": id})
	return err
}
