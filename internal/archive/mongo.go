// internal/archive/mongo.go
package archive

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore persists extraction records in a MongoDB collection.
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
}

type mongoRecord struct {
	ID            string    `bson:"_id"`
	URL           string    `bson:"url"`
	Strategy      string    `bson:"strategy"`
	ImageCount    int       `bson:"image_count"`
	VideoCount    int       `bson:"video_count"`
	DocumentCount int       `bson:"document_count"`
	Payload       string    `bson:"payload"`
	CreatedAt     time.Time `bson:"created_at"`
}

// NewMongoStore connects to the MongoDB archive at the DSN.
func NewMongoStore(opts Options) (*MongoStore, error) {
	if opts.DSN == "" {
		return nil, fmt.Errorf("mongodb archive requires a connection string")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(opts.DSN))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return &MongoStore{
		client:     client,
		collection: client.Database(opts.Database).Collection(opts.Collection),
	}, nil
}

// Save implements Store.
func (s *MongoStore) Save(ctx context.Context, record *Record) error {
	doc := mongoRecord{
		ID:            record.ID,
		URL:           record.URL,
		Strategy:      record.Strategy,
		ImageCount:    record.ImageCount,
		VideoCount:    record.VideoCount,
		DocumentCount: record.DocumentCount,
		Payload:       string(record.Payload),
		CreatedAt:     record.CreatedAt,
	}
	if _, err := s.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil
		}
		return fmt.Errorf("failed to insert archive record: %w", err)
	}
	return nil
}

// Recent implements Store.
func (s *MongoStore) Recent(ctx context.Context, limit int) ([]Record, error) {
	findOpts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := s.collection.Find(ctx, bson.D{}, findOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to query archive: %w", err)
	}
	defer cursor.Close(ctx)

	var records []Record
	for cursor.Next(ctx) {
		var doc mongoRecord
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode archive record: %w", err)
		}
		records = append(records, Record{
			ID:            doc.ID,
			URL:           doc.URL,
			Strategy:      doc.Strategy,
			ImageCount:    doc.ImageCount,
			VideoCount:    doc.VideoCount,
			DocumentCount: doc.DocumentCount,
			Payload:       []byte(doc.Payload),
			CreatedAt:     doc.CreatedAt,
		})
	}
	return records, cursor.Err()
}

// Close implements Store.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}
