package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"name-address-db/backend/internal/constants"
	"name-address-db/backend/internal/records"
	apperrors "name-address-db/backend/pkg/errors"
	"name-address-db/backend/pkg/logger"
)

// recordDocument is the stored shape of a record
type recordDocument struct {
	ID      primitive.ObjectID `bson:"_id,omitempty"`
	Name    string             `bson:"name"`
	Address string             `bson:"address"`
}

var _ records.Store = (*MongoStore)(nil)

// MongoStore implements records.Store on a MongoDB collection
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
	logger     *zap.Logger
}

// MongoConfig holds MongoDB connection configuration
type MongoConfig struct {
	URI      string
	Database string
}

// NewMongo connects to MongoDB and verifies the primary is reachable
func NewMongo(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, apperrors.NewStoreConnectionFailed("mongodb", err)
	}

	// Verify connectivity
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, apperrors.NewStoreConnectionFailed("mongodb", err)
	}

	s := &MongoStore{
		client:     client,
		collection: client.Database(cfg.Database).Collection(constants.RecordsCollection),
		logger:     logger.Get(),
	}
	s.logger.Info("MongoDB store connected",
		zap.String("database", cfg.Database),
		zap.String("collection", constants.RecordsCollection),
	)

	return s, nil
}

// Close disconnects the client
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// AddRecord inserts a document for name/address and reports whether a
// document for name existed before the insert
func (s *MongoStore) AddRecord(ctx context.Context, name, address string) (bool, error) {
	existed := true
	err := s.collection.FindOne(ctx, bson.M{"name": name}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		existed = false
	} else if err != nil {
		return false, apperrors.NewStoreOperationFailed("lookup", err)
	}

	res, err := s.collection.InsertOne(ctx, recordDocument{Name: name, Address: address})
	if err != nil {
		return false, apperrors.NewStoreOperationFailed("insert", err)
	}

	s.logger.Debug("Record inserted",
		zap.Any("id", res.InsertedID),
		zap.String("name", name),
		zap.Bool("existed", existed),
	)

	return existed, nil
}

// FindByName returns all documents whose name matches exactly, in natural order
func (s *MongoStore) FindByName(ctx context.Context, name string) ([]records.Record, error) {
	cursor, err := s.collection.Find(ctx, bson.M{"name": name})
	if err != nil {
		return nil, apperrors.NewStoreOperationFailed("find", err)
	}

	var docs []recordDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, apperrors.NewStoreOperationFailed("decode", err)
	}

	out := make([]records.Record, 0, len(docs))
	for _, doc := range docs {
		out = append(out, records.Record{
			ID:      doc.ID.Hex(),
			Name:    doc.Name,
			Address: doc.Address,
		})
	}

	return out, nil
}
