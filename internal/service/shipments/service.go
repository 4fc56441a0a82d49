package shipments

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/mamadbah2/shipment-tracker/internal/domain/models"
)

// Store is the persistence contract for shipment records.
type Store interface {
	ListAll(ctx context.Context) ([]models.ShipmentRecord, error)
	Insert(ctx context.Context, record models.ShipmentRecord) (primitive.ObjectID, error)
	Ping(ctx context.Context) error
}

// Service lists and registers shipments.
type Service struct {
	store  Store
	logger *zap.Logger
}

// NewService wires a new shipment service.
func NewService(store Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger}
}

// List returns every stored shipment. The result is never nil on success.
func (s *Service) List(ctx context.Context) ([]models.ShipmentRecord, error) {
	records, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list shipments: %w", err)
	}
	if records == nil {
		records = []models.ShipmentRecord{}
	}
	return records, nil
}

// Submit stores the request as-is. Fields are not validated.
func (s *Service) Submit(ctx context.Context, req models.SubmitRequest) (primitive.ObjectID, error) {
	id, err := s.store.Insert(ctx, req.Record())
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("submit shipment %s: %w", req.TrackerID, err)
	}

	s.logger.Info("shipment registered",
		zap.String("id", id.Hex()),
		zap.String("tracker_id", req.TrackerID))
	return id, nil
}

// Healthy reports whether the store answers.
func (s *Service) Healthy(ctx context.Context) error {
	return s.store.Ping(ctx)
}
