package storage

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Phlair/civ7-modding-tools-sub000/pkg/document"
	"github.com/Phlair/civ7-modding-tools-sub000/pkg/errors"
)

// MongoConfig holds MongoDB connection settings.
type MongoConfig struct {
	URI        string // connection string, e.g. mongodb://localhost:27017
	Database   string // defaults to "civmod"
	Collection string // defaults to "mods"
}

// MongoStore persists documents in a MongoDB collection, one record per
// mod id.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

type mongoRecord struct {
	ID   string         `bson:"_id"`
	Data map[string]any `bson:"data"`
}

// NewMongoStore connects to MongoDB and returns a collection-backed
// store. The connection is verified with a ping before returning.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.Database == "" {
		cfg.Database = "civmod"
	}
	if cfg.Collection == "" {
		cfg.Collection = "mods"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	return &MongoStore{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

func (s *MongoStore) Load(ctx context.Context, id string) (*document.Store, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}

	var rec mongoRecord
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&rec)
	if err == mongo.ErrNoDocuments {
		return nil, errors.New(errors.ErrCodeDocumentNotFound, "no document saved as %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("load document %s: %w", id, err)
	}
	return document.FromTree(rec.Data), nil
}

func (s *MongoStore) Save(ctx context.Context, id string, doc *document.Store) error {
	if err := checkID(id); err != nil {
		return err
	}

	rec := mongoRecord{ID: id, Data: document.StripElementKeys(doc.Tree())}
	opts := options.Replace().SetUpsert(true)
	if _, err := s.coll.ReplaceOne(ctx, bson.M{"_id": id}, rec, opts); err != nil {
		return fmt.Errorf("save document %s: %w", id, err)
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}

	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("delete document %s: %w", id, err)
	}
	return nil
}

func (s *MongoStore) List(ctx context.Context) ([]string, error) {
	opts := options.Find().SetProjection(bson.M{"_id": 1}).SetSort(bson.M{"_id": 1})
	cursor, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer cursor.Close(ctx)

	var ids []string
	for cursor.Next(ctx) {
		var rec struct {
			ID string `bson:"_id"`
		}
		if err := cursor.Decode(&rec); err != nil {
			return nil, fmt.Errorf("decode document id: %w", err)
		}
		ids = append(ids, rec.ID)
	}
	return ids, cursor.Err()
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
