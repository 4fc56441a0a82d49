package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/mamadbah2/shipment-tracker/internal/domain/models"
)

// Response messages are part of the public API.
const (
	MsgShipmentSaved      = "Shipment saved successfully"
	MsgSaveFailed         = "Error saving shipment"
	MsgRetrieveFailed     = "Error retrieving shipments"
	MsgInvalidRequestBody = "Invalid request body"
)

// ShipmentService describes the operations the HTTP layer can perform.
type ShipmentService interface {
	List(ctx context.Context) ([]models.ShipmentRecord, error)
	Submit(ctx context.Context, req models.SubmitRequest) (primitive.ObjectID, error)
	Healthy(ctx context.Context) error
}

// ShipmentHandler exposes the shipment endpoints.
type ShipmentHandler struct {
	svc    ShipmentService
	logger *zap.Logger
}

// NewShipmentHandler constructs the HTTP handler adapter.
func NewShipmentHandler(svc ShipmentService, logger *zap.Logger) *ShipmentHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ShipmentHandler{svc: svc, logger: logger}
}

// List returns every stored shipment.
func (h *ShipmentHandler) List(c *gin.Context) {
	records, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.logger.Error("failed listing shipments", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: MsgRetrieveFailed, Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, records)
}

// Submit stores a shipment exactly as received. Scalars are cast to strings;
// only a body that is not JSON at all is rejected with 400.
func (h *ShipmentHandler) Submit(c *gin.Context) {
	var body submitBody
	// An empty body registers an empty shipment, like a JSON object with no fields.
	if err := c.ShouldBindJSON(&body); err != nil && !errors.Is(err, io.EOF) {
		if malformed(err) {
			h.logger.Warn("invalid submit payload", zap.Error(err))
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: MsgInvalidRequestBody, Error: err.Error()})
			return
		}
		h.logger.Error("failed casting shipment", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: MsgSaveFailed, Error: err.Error()})
		return
	}

	req := body.request()
	if _, err := h.svc.Submit(c.Request.Context(), req); err != nil {
		h.logger.Error("failed saving shipment", zap.Error(err), zap.String("tracker_id", req.TrackerID))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: MsgSaveFailed, Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, models.MessageResponse{Message: MsgShipmentSaved})
}

// malformed reports whether err comes from the JSON syntax rather than from
// the values inside a well-formed document.
func malformed(err error) bool {
	var syntaxErr *json.SyntaxError
	return errors.As(err, &syntaxErr) || errors.Is(err, io.ErrUnexpectedEOF)
}

// Health reports store reachability.
func (h *ShipmentHandler) Health(c *gin.Context) {
	if err := h.svc.Healthy(c.Request.Context()); err != nil {
		h.logger.Warn("health check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
