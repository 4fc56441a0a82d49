// Package memory provides a process-local shipment store for development
// runs and tests. Contents are lost when the process exits.
package memory

import (
	"context"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mamadbah2/shipment-tracker/internal/domain/models"
)

// ShipmentRepository keeps shipment records in insertion order.
type ShipmentRepository struct {
	mu      sync.RWMutex
	records []models.ShipmentRecord
}

// NewShipmentRepository returns an empty store.
func NewShipmentRepository() *ShipmentRepository {
	return &ShipmentRepository{}
}

// ListAll returns a copy of every stored record.
func (r *ShipmentRepository) ListAll(ctx context.Context) ([]models.ShipmentRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("list shipments: %w: %w", models.ErrStoreUnavailable, err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.ShipmentRecord, len(r.records))
	copy(out, r.records)
	return out, nil
}

// Insert appends the record with a fresh identity.
func (r *ShipmentRepository) Insert(ctx context.Context, record models.ShipmentRecord) (primitive.ObjectID, error) {
	if err := ctx.Err(); err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert shipment: %w: %w", models.ErrStoreUnavailable, err)
	}

	record.ID = primitive.NewObjectID()

	r.mu.Lock()
	r.records = append(r.records, record)
	r.mu.Unlock()

	return record.ID, nil
}

// Ping always succeeds.
func (r *ShipmentRepository) Ping(context.Context) error { return nil }

// Close is a no-op.
func (r *ShipmentRepository) Close(context.Context) error { return nil }
