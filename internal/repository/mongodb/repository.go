package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/x/mongo/driver/topology"
	"go.uber.org/zap"

	"github.com/mamadbah2/shipment-tracker/internal/config"
	"github.com/mamadbah2/shipment-tracker/internal/domain/models"
)

// ShipmentRepository stores shipment records in a MongoDB collection.
type ShipmentRepository struct {
	coll   *mongo.Collection
	logger *zap.Logger
}

// NewShipmentRepository connects to MongoDB and verifies the connection.
func NewShipmentRepository(ctx context.Context, cfg config.MongoDBConfig, logger *zap.Logger) (*ShipmentRepository, error) {
	connectCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	clientOptions := options.Client().
		ApplyURI(cfg.URI).
		SetServerSelectionTimeout(cfg.ConnectTimeout)
	client, err := mongo.Connect(connectCtx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return NewFromCollection(client.Database(cfg.DBName).Collection(cfg.Collection), logger), nil
}

// NewFromCollection wraps an existing collection handle.
func NewFromCollection(coll *mongo.Collection, logger *zap.Logger) *ShipmentRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ShipmentRepository{coll: coll, logger: logger}
}

// ListAll returns every shipment in insertion order.
func (r *ShipmentRepository) ListAll(ctx context.Context) ([]models.ShipmentRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

	cursor, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, classify("find shipments", err, false)
	}
	defer cursor.Close(ctx)

	records := make([]models.ShipmentRecord, 0)
	if err := cursor.All(ctx, &records); err != nil {
		return nil, classify("decode shipments", err, false)
	}

	r.logger.Debug("shipments loaded", zap.Int("count", len(records)))
	return records, nil
}

// Insert persists a new record and returns its assigned identity.
func (r *ShipmentRepository) Insert(ctx context.Context, record models.ShipmentRecord) (primitive.ObjectID, error) {
	record.ID = primitive.NewObjectID()

	if _, err := r.coll.InsertOne(ctx, record); err != nil {
		return primitive.NilObjectID, classify("insert shipment", err, true)
	}

	r.logger.Debug("shipment inserted", zap.String("id", record.ID.Hex()), zap.String("tracker_id", record.TrackerID))
	return record.ID, nil
}

// Ping checks the underlying deployment is reachable.
func (r *ShipmentRepository) Ping(ctx context.Context) error {
	if err := r.coll.Database().Client().Ping(ctx, nil); err != nil {
		return classify("ping mongodb", err, false)
	}
	return nil
}

// Close closes the MongoDB connection.
func (r *ShipmentRepository) Close(ctx context.Context) error {
	return r.coll.Database().Client().Disconnect(ctx)
}

// classify maps driver errors onto the store taxonomy. Reads only fail as
// unavailable; writes fail as unavailable when the deployment could not be
// reached and as write errors otherwise.
func classify(op string, err error, write bool) error {
	if !write || unreachable(err) {
		return fmt.Errorf("%s: %w: %w", op, models.ErrStoreUnavailable, err)
	}
	return fmt.Errorf("%s: %w: %w", op, models.ErrStoreWrite, err)
}

func unreachable(err error) bool {
	var selectionErr topology.ServerSelectionError
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return true
	case errors.Is(err, mongo.ErrClientDisconnected):
		return true
	case errors.As(err, &selectionErr):
		return true
	case mongo.IsNetworkError(err), mongo.IsTimeout(err):
		return true
	}
	return false
}
